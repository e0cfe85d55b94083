package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr" toml:"addr"`
		RateLimit   float64  `yaml:"rate_limit" toml:"rate_limit"`
		CORSOrigins []string `yaml:"cors_origins" toml:"cors_origins"`
		LogLevel    string   `yaml:"log_level" toml:"log_level"`
	} `yaml:"server" toml:"server"`
	Customers struct {
		Count int `yaml:"count" toml:"count"`
		// Seed is a pointer so an explicit 0 is kept; nil means 42.
		Seed *int64 `yaml:"seed" toml:"seed"`
	} `yaml:"customers" toml:"customers"`
	// ReferenceDate pins the end of the registration window (YYYY-MM-DD).
	// Empty means the wall clock at generation time.
	ReferenceDate string `yaml:"reference_date" toml:"reference_date"`
	Charts        struct {
		Points int           `yaml:"points" toml:"points"`
		Series int           `yaml:"series" toml:"series"`
		Panels []PanelConfig `yaml:"panels" toml:"panels"`
	} `yaml:"charts" toml:"charts"`
	Menu        []string `yaml:"menu" toml:"menu"`
	RefreshCron string   `yaml:"refresh_cron" toml:"refresh_cron"`
}

type PanelConfig struct {
	Name       string  `yaml:"name" toml:"name"`
	Title      string  `yaml:"title" toml:"title"`
	Volatility float64 `yaml:"volatility" toml:"volatility"`
	Seed       int64   `yaml:"seed" toml:"seed"`
	Style      string  `yaml:"style" toml:"style"`
	Column     int     `yaml:"column" toml:"column"`
}

// Load reads config from a YAML or TOML file (picked by extension), then
// applies environment variable overrides and defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := decode(path, data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// Environment variable overrides
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DASHBOARD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DASHBOARD_LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
	if v := os.Getenv("DASHBOARD_CUSTOMERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DASHBOARD_CUSTOMERS: %w", err)
		}
		cfg.Customers.Count = n
	}
	if v := os.Getenv("DASHBOARD_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DASHBOARD_SEED: %w", err)
		}
		cfg.Customers.Seed = &n
	}
	if v := os.Getenv("DASHBOARD_REFERENCE_DATE"); v != "" {
		cfg.ReferenceDate = v
	}
	if v := os.Getenv("DASHBOARD_REFRESH_CRON"); v != "" {
		cfg.RefreshCron = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 20
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Customers.Count == 0 {
		cfg.Customers.Count = 100
	}
	if cfg.Customers.Seed == nil {
		seed := int64(42)
		cfg.Customers.Seed = &seed
	}
	if cfg.Charts.Points == 0 {
		cfg.Charts.Points = 20
	}
	if cfg.Charts.Series == 0 {
		cfg.Charts.Series = 3
	}
	if len(cfg.Charts.Panels) == 0 {
		cfg.Charts.Panels = DefaultPanels()
	}
	for i := range cfg.Charts.Panels {
		p := &cfg.Charts.Panels[i]
		if p.Style == "" {
			p.Style = "area"
		}
		if p.Title == "" {
			p.Title = p.Name
		}
		if p.Column == 0 {
			p.Column = i%2 + 1
		}
	}
	if len(cfg.Menu) == 0 {
		cfg.Menu = []string{"Home", "Warehouse", "Query Optimization and Processing", "Storage", "Contact Us"}
	}
}

// DefaultPanels is the four-chart analytics tab.
func DefaultPanels() []PanelConfig {
	return []PanelConfig{
		{Name: "data1", Title: "C1", Volatility: 0.5, Seed: 42, Style: "area", Column: 1},
		{Name: "data2", Title: "C2", Volatility: 0.8, Seed: 43, Style: "bar", Column: 2},
		{Name: "data3", Title: "C3", Volatility: 0.3, Seed: 44, Style: "area", Column: 1},
		{Name: "data4", Title: "C4", Volatility: 0.4, Seed: 45, Style: "area", Column: 2},
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Customers.Count <= 0 {
		return fmt.Errorf("customers.count must be positive")
	}
	if c.Charts.Points <= 0 {
		return fmt.Errorf("charts.points must be positive")
	}
	if c.Charts.Series <= 0 {
		return fmt.Errorf("charts.series must be positive")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	switch strings.ToLower(c.Server.LogLevel) {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("server.log_level %q is not one of debug, info, warn, error, off", c.Server.LogLevel)
	}
	if c.ReferenceDate != "" {
		if _, err := time.Parse(dateLayout, c.ReferenceDate); err != nil {
			return fmt.Errorf("reference_date: %w", err)
		}
	}

	seen := make(map[string]bool, len(c.Charts.Panels))
	for _, p := range c.Charts.Panels {
		if p.Name == "" {
			return fmt.Errorf("charts.panels: name is required")
		}
		if seen[p.Name] {
			return fmt.Errorf("charts.panels: duplicate name %q", p.Name)
		}
		seen[p.Name] = true
		if p.Style != "area" && p.Style != "bar" {
			return fmt.Errorf("charts.panels[%s]: style %q must be area or bar", p.Name, p.Style)
		}
		if p.Volatility < 0 {
			return fmt.Errorf("charts.panels[%s]: volatility must not be negative", p.Name)
		}
		if p.Column != 1 && p.Column != 2 {
			return fmt.Errorf("charts.panels[%s]: column must be 1 or 2", p.Name)
		}
	}
	return nil
}

// CustomerSeed returns the configured customer seed.
func (c *Config) CustomerSeed() int64 {
	if c.Customers.Seed == nil {
		return 42
	}
	return *c.Customers.Seed
}

// ReferenceTime returns the pinned reference date when set, otherwise now.
func (c *Config) ReferenceTime(now time.Time) time.Time {
	if c.ReferenceDate == "" {
		return now
	}
	t, err := time.ParseInLocation(dateLayout, c.ReferenceDate, now.Location())
	if err != nil {
		return now
	}
	return t
}
