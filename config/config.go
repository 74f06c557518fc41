package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ouestbat/chantier/core/plan"
	"github.com/ouestbat/chantier/infra/metrics"
	"github.com/ouestbat/chantier/infra/mqtt"
)

// Config is the full service configuration.
type Config struct {
	Plan    plan.Config    `json:"plan"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
}

// Load reads the configuration file, applies CH_-prefixed environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides. The callback rewrites "__" into the
	// koanf path delimiter, so the provider splits on ".".
	if err := k.Load(env.Provider("CH_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "ch_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Plan.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Plan.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when no
// file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Plan.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	return cfg
}
