package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pratico-web/internal/bracketcheck"
)

// DefaultAPIBase is used when neither the config file nor API_BASE set one.
const DefaultAPIBase = "https://pratico-admin-api.onrender.com"

// Config holds runtime settings for both web front-ends.
type Config struct {
	APIBaseURL    string `yaml:"api_base_url"`
	AdminAddr     string `yaml:"admin_addr"`
	LandingAddr   string `yaml:"landing_addr"`
	TokenCookie   string `yaml:"token_cookie"`
	BracketPolicy string `yaml:"bracket_policy"`
	LogLevel      string `yaml:"log_level"`
}

// Load reads an optional YAML file, applies environment overrides and fills
// defaults. An empty path yields defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	if _, err := bracketcheck.ParsePolicy(cfg.BracketPolicy); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("API_BASE"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("ADMIN_ADDR"); v != "" {
		c.AdminAddr = v
	}
	if v := os.Getenv("LANDING_ADDR"); v != "" {
		c.LandingAddr = v
	}
	if v := os.Getenv("BRACKET_POLICY"); v != "" {
		c.BracketPolicy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBase
	}
	if c.AdminAddr == "" {
		c.AdminAddr = ":3000"
	}
	if c.LandingAddr == "" {
		c.LandingAddr = ":3001"
	}
	if c.TokenCookie == "" {
		c.TokenCookie = "token"
	}
	if c.BracketPolicy == "" {
		c.BracketPolicy = string(bracketcheck.PolicyOff)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Policy returns the parsed bracket validation policy. Load already rejected
// unknown values.
func (c *Config) Policy() bracketcheck.Policy {
	p, _ := bracketcheck.ParsePolicy(c.BracketPolicy)
	return p
}
