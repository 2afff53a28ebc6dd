package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the full application configuration loaded from file/env.
// It is constructed once at startup and treated as immutable afterwards.
type Config struct {
	Server     ServerConfig  `mapstructure:"server"`
	Confluence ServiceConfig `mapstructure:"confluence"`
	Jira       ServiceConfig `mapstructure:"jira"`
}

// ServerConfig holds process-level options.
type ServerConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	Transport string `mapstructure:"transport"`
	Listen    string `mapstructure:"listen"`
}

// ServiceConfig describes one Atlassian backend: its base URL and the
// personal access token used as a bearer credential.
type ServiceConfig struct {
	URL      string `mapstructure:"url"`
	APIToken string `mapstructure:"api_token"`
}

// Configured reports whether both the URL and token are present.
func (s ServiceConfig) Configured() bool {
	return s.URL != "" && s.APIToken != ""
}

func (s ServiceConfig) validate(name string) error {
	hasURL := s.URL != ""
	hasToken := s.APIToken != ""
	if hasURL != hasToken {
		return fmt.Errorf("config: %s: url and api token must be set together", name)
	}
	return nil
}

// envBindings maps viper keys to the environment variables each backend uses.
var envBindings = map[string]string{
	"confluence.url":       "CONFLUENCE_URL",
	"confluence.api_token": "CONFLUENCE_API_TOKEN",
	"jira.url":             "JIRA_URL",
	"jira.api_token":       "JIRA_API_TOKEN",
}

// Load reads configuration from the provided directory or file and from
// environment variables. Environment variables win over file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if path != "" {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			v.AddConfigPath(path)
		} else {
			v.SetConfigFile(path)
		}
	} else {
		v.AddConfigPath(".")
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}

	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.transport", "stdio")
	v.SetDefault("server.listen", ":8093")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.applyNetrc()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	c.Confluence.URL = NormalizeURL(c.Confluence.URL)
	c.Jira.URL = NormalizeURL(c.Jira.URL)

	if err := c.Confluence.validate("confluence"); err != nil {
		return err
	}

	if err := c.Jira.validate("jira"); err != nil {
		return err
	}

	if !c.Confluence.Configured() && !c.Jira.Configured() {
		return fmt.Errorf("config: no backend configured: set CONFLUENCE_URL/CONFLUENCE_API_TOKEN or JIRA_URL/JIRA_API_TOKEN")
	}

	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	if c.Server.Listen == "" {
		c.Server.Listen = ":8093"
	}

	return nil
}

// applyNetrc fills missing API tokens from ~/.netrc entries matching the
// service host. Netrc passwords hold the personal access token.
func (c *Config) applyNetrc() {
	for _, svc := range []*ServiceConfig{&c.Confluence, &c.Jira} {
		if svc.URL == "" || svc.APIToken != "" {
			continue
		}
		if token, err := lookupNetrcToken(svc.URL); err == nil && token != "" {
			svc.APIToken = token
		}
	}
}

// NormalizeURL trims whitespace and trailing slashes and defaults the scheme
// to https when none is given. Empty input stays empty.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}

	return strings.TrimRight(trimmed, "/")
}
