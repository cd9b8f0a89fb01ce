package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OtherTypeKey is the type-table entry used when a raw label matches
// nothing else.
const OtherTypeKey = "OTHER"

// Config carries everything the scraper needs at runtime. It is loaded
// once from YAML and passed explicitly into the components that need it;
// there is no package-level settings state.
type Config struct {
	// Sources are the listing-page URLs to scrape.
	Sources []string `yaml:"sources"`

	// BaseURL is prefixed to every relative document href.
	BaseURL string `yaml:"base_url"`

	// Types maps sanitized raw labels (e.g. "HOTARARE") to normalized
	// type codes. Must contain an "OTHER" fallback entry.
	Types map[string]string `yaml:"types"`

	// Months maps lower-case Romanian month names to 1..12.
	Months map[string]int `yaml:"months"`

	// MandatoryFields lists the Article fields that must be populated
	// for a record to be kept.
	MandatoryFields []string `yaml:"mandatory_fields"`

	// RowGroupSelector is the CSS selector matching one <table> per
	// article on a listing page.
	RowGroupSelector string `yaml:"row_group_selector"`

	WorkerCount int    `yaml:"workers"`
	DBPath      string `yaml:"db_path"`
	OutputDir   string `yaml:"output_dir"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.RowGroupSelector == "" {
		cfg.RowGroupSelector = "table"
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parts of the config the extractor cannot run without.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base_url is required")
	}
	if len(c.Types) == 0 {
		return fmt.Errorf("config: types table is required")
	}
	if _, ok := c.Types[OtherTypeKey]; !ok {
		return fmt.Errorf("config: types table is missing the %q fallback entry", OtherTypeKey)
	}
	if len(c.Months) == 0 {
		return fmt.Errorf("config: months table is required")
	}
	for name, num := range c.Months {
		if num < 1 || num > 12 {
			return fmt.Errorf("config: month %q maps to %d, want 1..12", name, num)
		}
	}
	return nil
}
