/*
Package config loads runtime settings for the server and CLI.

FILE FORMAT (YAML):

	address: ":8080"
	tables:
	  current: data/salary_scales.json
	  previous: data/old_salary_scales.json
	  database: ""            # when set, tables are read from this SQLite file
	editions:
	  current:
	    name: current salary scale
	    note: Effective October 1, 2023 to September 30, 2026.
	  previous:
	    name: previous salary scale
	cors:
	  allowedOrigins: ["http://localhost:5173"]
	logging:
	  level: info             # debug, info, warn, error
	  format: json            # json or console
	  outputFile: ""

A missing file is not an error: defaults are returned. The defaults point at
the bundled sample tables and label both editions as sample data.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/StephenDWright/TeacherApps1/scale"
)

const (
	DefaultAddress      = ":8080"
	DefaultCurrentPath  = "data/salary_scales.json"
	DefaultPreviousPath = "data/old_salary_scales.json"
)

// SampleDataNote labels the bundled tables. They are illustrative amounts,
// not a published scale; set editions.*.name and note when real tables are
// configured.
const SampleDataNote = "Sample amounts for demonstration only. Replace the table files with the published scale before relying on a discrepancy."

// Config is the full runtime configuration.
type Config struct {
	Address  string         `yaml:"address"`
	Tables   TablesConfig   `yaml:"tables"`
	Editions EditionsConfig `yaml:"editions"`
	CORS     CORSConfig     `yaml:"cors"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TablesConfig says where the salary scales come from.
type TablesConfig struct {
	Current  string `yaml:"current"`
	Previous string `yaml:"previous"`
	Database string `yaml:"database"`
}

// EditionConfig is the display text for one edition.
type EditionConfig struct {
	Name string `yaml:"name"`
	Note string `yaml:"note"`
}

// EditionsConfig holds display text for both editions.
type EditionsConfig struct {
	Current  EditionConfig `yaml:"current"`
	Previous EditionConfig `yaml:"previous"`
}

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	OutputFile string `yaml:"outputFile"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Address: DefaultAddress,
		Tables: TablesConfig{
			Current:  DefaultCurrentPath,
			Previous: DefaultPreviousPath,
		},
		Editions: EditionsConfig{
			Current: EditionConfig{
				Name: "current salary scale (sample data)",
				Note: SampleDataNote,
			},
			Previous: EditionConfig{
				Name: "previous salary scale (sample data)",
				Note: SampleDataNote,
			},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load reads the YAML file at path over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	def := Default()
	if c.Address == "" {
		c.Address = def.Address
	}
	if c.Tables.Database == "" {
		if c.Tables.Current == "" || c.Tables.Previous == "" {
			return fmt.Errorf("tables.current and tables.previous are required unless tables.database is set")
		}
	}
	if c.Editions.Current.Name == "" {
		c.Editions.Current.Name = def.Editions.Current.Name
	}
	if c.Editions.Previous.Name == "" {
		c.Editions.Previous.Name = def.Editions.Previous.Name
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
	return nil
}

// EditionInfo converts the configured display text to scale metadata.
func (c *Config) EditionInfo() map[scale.Edition]scale.EditionInfo {
	return map[scale.Edition]scale.EditionInfo{
		scale.EditionCurrent:  {Name: c.Editions.Current.Name, Note: c.Editions.Current.Note},
		scale.EditionPrevious: {Name: c.Editions.Previous.Name, Note: c.Editions.Previous.Note},
	}
}
