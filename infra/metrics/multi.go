package metrics

import coremetrics "github.com/ouestbat/chantier/core/metrics"

// MultiSink fanouts planning records to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordRun(rec coremetrics.RunRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordItems forwards the records to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordItems(recs []coremetrics.ItemRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordItems(recs); err != nil {
			return err
		}
	}
	return nil
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(coremetrics.RunRecord) error      { return nil }
func (NopSink) RecordItems([]coremetrics.ItemRecord) error { return nil }
