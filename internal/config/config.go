// Package config loads CLI settings from defaults, an optional f2f.yaml file
// and F2F_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log    LogConfig
	Forms  FormsConfig
	Theme  ThemeConfig
	Output OutputConfig
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// FormsConfig points at the form sources.
type FormsConfig struct {
	File      string
	OpenAPI   string
	Operation string
}

// ThemeConfig holds page theming.
type ThemeConfig struct {
	Name       string
	Variant    string
	Stylesheet string
	Tokens     map[string]string
}

// OutputConfig selects how submission output is printed.
type OutputConfig struct {
	Format string
}

// Output formats.
const (
	FormatTerm = "term"
	FormatHTML = "html"
)

// Load reads configuration. An explicit path must exist; without one, f2f.yaml
// in the working directory is read when present. Callers apply their own
// overrides and then call Validate.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("forms.file", "")
	v.SetDefault("forms.openapi", "")
	v.SetDefault("forms.operation", "")
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")
	v.SetDefault("theme.stylesheet", "")
	v.SetDefault("theme.tokens", map[string]string{})
	v.SetDefault("output.format", FormatTerm)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("f2f")
	}

	v.SetEnvPrefix("F2F")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Output.Format {
	case FormatTerm, FormatHTML:
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output.Format)
	}
	if c.Forms.OpenAPI != "" && c.Forms.Operation == "" {
		return errors.New("config: forms.operation is required with forms.openapi")
	}
	return nil
}
