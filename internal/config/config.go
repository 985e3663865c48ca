package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for a pricebench run.
type Config struct {
	// Pipeline inputs
	InputDir       string `yaml:"input"`
	HospitalsPath  string `yaml:"hospitals"`
	ProceduresPath string `yaml:"procedures"`
	FocusHospital  string `yaml:"focus_hospital"`
	OutputDir      string `yaml:"output"`

	// Load command
	DSN      string
	FilePath string
	Force    bool
	Activate bool

	LogFormat string // "text" or "json"
}

// LoadFromFile reads a YAML config file and merges its non-empty values into
// Config. Flags win over file values, so only unset fields are filled.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc Config
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.InputDir == "" {
		c.InputDir = fc.InputDir
	}
	if c.HospitalsPath == "" {
		c.HospitalsPath = fc.HospitalsPath
	}
	if c.ProceduresPath == "" {
		c.ProceduresPath = fc.ProceduresPath
	}
	if c.FocusHospital == "" {
		c.FocusHospital = fc.FocusHospital
	}
	if c.OutputDir == "" {
		c.OutputDir = fc.OutputDir
	}
	return nil
}

// ValidateRun checks the fields the run and plan commands need.
func (c *Config) ValidateRun() error {
	if c.InputDir == "" {
		return fmt.Errorf("--input is required")
	}
	if info, err := os.Stat(c.InputDir); err != nil {
		return fmt.Errorf("input dir not accessible: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("input %s is not a directory", c.InputDir)
	}
	if c.HospitalsPath == "" {
		return fmt.Errorf("--hospitals is required")
	}
	if c.ProceduresPath == "" {
		return fmt.Errorf("--procedures is required")
	}
	if c.FocusHospital == "" {
		return fmt.Errorf("--focus-hospital is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("--output is required")
	}
	return nil
}

// ValidateLoad checks the fields the load command needs.
func (c *Config) ValidateLoad() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or PRICEBENCH_DB_URL is required")
	}
	return nil
}
