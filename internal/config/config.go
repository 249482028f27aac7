package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mehditeymorian/lrutil/internal/include"
)

// Formats are the accepted values of Config.Format.
var Formats = []string{"pretty", "json", "yaml"}

// Config represents the lrutil configuration
type Config struct {
	OutDir    string    `mapstructure:"out_dir"`
	Root      string    `mapstructure:"root"`
	Format    string    `mapstructure:"format"`
	Color     bool      `mapstructure:"color"`
	ReportDir string    `mapstructure:"report_dir"`
	Includes  []Include `mapstructure:"includes"`
}

// Include is one generated package to splice into the module.
type Include struct {
	Module string `mapstructure:"module"`
	Public bool   `mapstructure:"public"`
	Source string `mapstructure:"source"`
}

// Spec converts i to an inclusion declaration.
func (i Include) Spec() include.Spec {
	return include.Spec{Module: i.Module, Public: i.Public, Source: i.Source}
}

// Specs returns every configured inclusion in declaration order.
func (c *Config) Specs() []include.Spec {
	specs := make([]include.Spec, 0, len(c.Includes))
	for _, inc := range c.Includes {
		specs = append(specs, inc.Spec())
	}
	return specs
}

// Load reads lrutil.yaml. An empty path searches the working directory and
// falls back to defaults when no file exists; an explicit path must exist.
// Every key can be overridden by an LRUTIL_ prefixed environment variable.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("out_dir", "./gen")
	v.SetDefault("root", ".")
	v.SetDefault("format", "pretty")
	v.SetDefault("color", true)
	v.SetDefault("report_dir", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lrutil")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LRUTIL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values that viper cannot type-check.
func Validate(cfg *Config) error {
	if err := ValidateFormat(cfg.Format); err != nil {
		return err
	}
	for i, inc := range cfg.Includes {
		if err := include.ValidateModule(inc.Module); err != nil {
			return fmt.Errorf("includes[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidateFormat reports whether format is one of Formats.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (expected pretty|json|yaml)", format)
}
