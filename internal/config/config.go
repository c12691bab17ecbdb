// Package config loads the anvil.yml manifest.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/simonhull/firebird-suite/anvil/forge"
)

// DefaultName is the manifest looked up in the working directory.
const DefaultName = "anvil"

// Operation is one manifest entry: render Template and apply it to Path.
// Path may itself be a template, e.g. "models/{{ name|snakecase }}.go".
type Operation struct {
	Action   string `mapstructure:"action"`
	Template string `mapstructure:"template"`
	Path     string `mapstructure:"path"`
}

// Config is the contents of anvil.yml.
type Config struct {
	Templates  string      `mapstructure:"templates"`
	Data       []string    `mapstructure:"data"`
	LogLevel   string      `mapstructure:"log_level"`
	Operations []Operation `mapstructure:"operations"`

	// File is the manifest that was read, or "" when defaults are in use.
	File string `mapstructure:"-"`
}

// Load reads the manifest at path. With an empty path it looks for
// anvil.yml in the working directory and falls back to defaults when there
// is none. ANVIL_TEMPLATES, ANVIL_DATA and ANVIL_LOG_LEVEL override the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("templates", "templates")
	v.SetDefault("data", []string{})
	v.SetDefault("log_level", "warn")

	v.SetEnvPrefix("ANVIL")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every operation names a known action, a template and a path.
func (c *Config) Validate() error {
	var problems []string
	for i, op := range c.Operations {
		switch forge.Kind(op.Action) {
		case forge.KindAppend, forge.KindGenerate:
		default:
			problems = append(problems, fmt.Sprintf("operations[%d]: unknown action %q (want append or generate)", i, op.Action))
		}
		if strings.TrimSpace(op.Template) == "" {
			problems = append(problems, fmt.Sprintf("operations[%d]: template is required", i))
		}
		if strings.TrimSpace(op.Path) == "" {
			problems = append(problems, fmt.Sprintf("operations[%d]: path is required", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}
