// Package config loads predikt's own TOML configuration file, following the
// teacher's use of BurntSushi/toml for its TQW data files.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/predikt/internal/predikterr"
)

// Method names the default recognizer a command should use when one is not
// given explicitly on the command line.
type Method string

const (
	MethodLL1  Method = "ll1"
	MethodSLR1 Method = "slr1"
	MethodBoth Method = "both"
)

// Config is predikt's top-level configuration, loaded from a TOML file.
type Config struct {
	// DefaultMethod is used by `predikt run` when --method is not given.
	DefaultMethod Method `toml:"default_method"`

	// HistoryDB is the path to the sqlite run-history database.
	HistoryDB string `toml:"history_db"`

	Server ServerConfig `toml:"server"`
}

// ServerConfig holds `predikt serve`'s settings.
type ServerConfig struct {
	Bind       string `toml:"bind"`
	JWTSecret  string `toml:"jwt_secret"`
	TokenTTLMs int64  `toml:"token_ttl_ms"`
}

// Default returns the configuration predikt runs with when no config file is
// given.
func Default() Config {
	return Config{
		DefaultMethod: MethodBoth,
		HistoryDB:     "predikt_history.db",
		Server: ServerConfig{
			Bind:       "127.0.0.1:8080",
			TokenTTLMs: 15 * 60 * 1000,
		},
	}
}

// Load reads and parses the TOML config file at path over top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, predikterr.WrapLoad(err, "could not read config file "+path, "")
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, predikterr.WrapLoad(err, "config file "+path+" is not valid TOML", "")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks that the method name is one predikt recognizes.
func (c Config) Validate() error {
	switch c.DefaultMethod {
	case MethodLL1, MethodSLR1, MethodBoth:
		return nil
	default:
		return predikterr.Configf("default_method must be one of ll1, slr1, both (got %q)", c.DefaultMethod)
	}
}
