package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts rs/zerolog to the core logger interface. Every entry
// carries the component it was created for.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger builds the logger for a component. With APP_ENV=dev the
// output is human-readable console text; everywhere else it is JSON lines.
func NewZerologLogger(component string) Logger {
	var out io.Writer = os.Stdout
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(out).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

// Debugw attaches the fields as structured keys on a debug entry.
func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
