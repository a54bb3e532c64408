// Package config holds the settings of a conversion run: where the page comes
// from, how the request looks, where files are written and the calendar
// metadata. Values come from DefaultConfig, optionally overlaid by a YAML file
// and then by command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultURL            = "https://en.wikipedia.org/wiki/Public_holidays_in_Nepal"
	DefaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	DefaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	DefaultAcceptLanguage = "en-US,en;q=0.9"
	DefaultDebugPath      = "debug.html"
	DefaultOutputPath     = "public/nepali-holidays.ics"
	DefaultTableClass     = "wikitable"

	DefaultCalendarName        = "Nepali Holidays"
	DefaultCalendarDescription = "Nepali holidays extracted from Wikipedia"
	DefaultProductID           = "-//Nepali Holidays//example.com//"
	DefaultVersion             = "2.0"

	DefaultLogLevel = "info"
)

// Source describes the page request
type Source struct {
	URL            string `yaml:"url" json:"url"`
	UserAgent      string `yaml:"user_agent" json:"user_agent"`
	Accept         string `yaml:"accept" json:"accept"`
	AcceptLanguage string `yaml:"accept_language" json:"accept_language"`

	// DebugPath receives the raw page on every run. Empty disables the capture.
	DebugPath string `yaml:"debug_path" json:"debug_path"`

	// TableClass selects the tables to extract
	TableClass string `yaml:"table_class" json:"table_class"`
}

// Output describes where the calendar is written
type Output struct {
	Path string `yaml:"path" json:"path"`
}

// Calendar holds the fixed calendar header metadata
type Calendar struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	ProductID   string `yaml:"product_id" json:"product_id"`
	Version     string `yaml:"version" json:"version"`
}

// Config is the top-level run configuration
type Config struct {
	Source   Source   `yaml:"source" json:"source"`
	Output   Output   `yaml:"output" json:"output"`
	Calendar Calendar `yaml:"calendar" json:"calendar"`
	LogLevel string   `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		Source: Source{
			URL:            DefaultURL,
			UserAgent:      DefaultUserAgent,
			Accept:         DefaultAccept,
			AcceptLanguage: DefaultAcceptLanguage,
			DebugPath:      DefaultDebugPath,
			TableClass:     DefaultTableClass,
		},
		Output: Output{
			Path: DefaultOutputPath,
		},
		Calendar: Calendar{
			Name:        DefaultCalendarName,
			Description: DefaultCalendarDescription,
			ProductID:   DefaultProductID,
			Version:     DefaultVersion,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Normalize fills zero values with defaults. DebugPath is left alone so a
// config file can disable the capture with an empty string.
func (c *Config) Normalize() {
	d := DefaultConfig()

	if c.Source.URL == "" {
		c.Source.URL = d.Source.URL
	}
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = d.Source.UserAgent
	}
	if c.Source.Accept == "" {
		c.Source.Accept = d.Source.Accept
	}
	if c.Source.AcceptLanguage == "" {
		c.Source.AcceptLanguage = d.Source.AcceptLanguage
	}
	if c.Source.TableClass == "" {
		c.Source.TableClass = d.Source.TableClass
	}
	if c.Output.Path == "" {
		c.Output.Path = d.Output.Path
	}
	if c.Calendar.Name == "" {
		c.Calendar.Name = d.Calendar.Name
	}
	if c.Calendar.Description == "" {
		c.Calendar.Description = d.Calendar.Description
	}
	if c.Calendar.ProductID == "" {
		c.Calendar.ProductID = d.Calendar.ProductID
	}
	if c.Calendar.Version == "" {
		c.Calendar.Version = d.Calendar.Version
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate reports settings that cannot produce a run
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return errors.New("source url is empty")
	}
	if c.Output.Path == "" {
		return errors.New("output path is empty")
	}
	return nil
}

// Load returns the defaults when path is empty. Otherwise it reads the YAML file
// at path over the defaults; keys missing from the file keep their default.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
