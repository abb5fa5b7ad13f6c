// Configuration management for the application.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultDeployment   = "gpt-5.1"
	defaultMCPServerURL = "https://learn.microsoft.com/api/mcp"
	defaultMaxToolCalls = 10
	defaultToolTimeout  = 60 * time.Second
)

// Config holds all application configuration. It is built once at startup
// and never mutated afterwards.
type Config struct {
	// Environment variables
	Endpoint     string
	Deployment   string
	MCPServerURL string
	APIKey       string

	// Command-line flags
	MaxToolCalls int
	ToolTimeout  time.Duration
	Verbose      bool
}

// fileConfig is the optional YAML config file shape. Environment variables
// and flags take precedence over values set here.
type fileConfig struct {
	Endpoint           string `yaml:"endpoint"`
	Deployment         string `yaml:"deployment"`
	MCPServerURL       string `yaml:"mcp_server_url"`
	MaxToolCalls       int    `yaml:"max_tool_calls"`
	ToolTimeoutSeconds int    `yaml:"tool_timeout_seconds"`
}

// ParseConfig parses command-line flags, the optional config file, and
// environment variables to create a Config.
func ParseConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	var (
		configPath   = flag.String("config", "", "Optional YAML config file")
		maxToolCalls = flag.Int("max_tool_calls", 0, "Max tool calls per turn (0 = use config/default)")
		toolTimeout  = flag.Duration("tool_timeout", 0, "Per tool-call timeout (0 = use config/default)")
		verbose      = flag.Bool("verbose", false, "Verbose diagnostics logging")
	)
	flag.Parse()

	return buildConfig(*configPath, *maxToolCalls, *toolTimeout, *verbose, os.Getenv)
}

// buildConfig resolves configuration with precedence flags > env > file > defaults.
func buildConfig(configPath string, maxToolCalls int, toolTimeout time.Duration, verbose bool, getenv func(string) string) (*Config, error) {
	config := &Config{
		Deployment:   defaultDeployment,
		MCPServerURL: defaultMCPServerURL,
		MaxToolCalls: defaultMaxToolCalls,
		ToolTimeout:  defaultToolTimeout,
		Verbose:      verbose,
	}

	if strings.TrimSpace(configPath) != "" {
		if err := applyConfigFile(config, configPath); err != nil {
			return nil, err
		}
	}

	if v := strings.TrimSpace(getenv("AZURE_AI_ENDPOINT")); v != "" {
		config.Endpoint = v
	}
	if v := strings.TrimSpace(getenv("AZURE_AI_DEPLOYMENT")); v != "" {
		config.Deployment = v
	}
	if v := strings.TrimSpace(getenv("MCP_SERVER_URL")); v != "" {
		config.MCPServerURL = v
	}
	config.APIKey = strings.TrimSpace(getenv("AZURE_AI_API_KEY"))

	if maxToolCalls > 0 {
		config.MaxToolCalls = maxToolCalls
	}
	if toolTimeout > 0 {
		config.ToolTimeout = toolTimeout
	}

	if config.Endpoint == "" {
		return nil, errors.New("AZURE_AI_ENDPOINT is required")
	}
	if config.MaxToolCalls <= 0 {
		config.MaxToolCalls = defaultMaxToolCalls
	}
	if config.ToolTimeout <= 0 {
		config.ToolTimeout = defaultToolTimeout
	}
	return config, nil
}

// applyConfigFile overlays non-empty values from a YAML config file.
func applyConfigFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if v := strings.TrimSpace(fc.Endpoint); v != "" {
		config.Endpoint = v
	}
	if v := strings.TrimSpace(fc.Deployment); v != "" {
		config.Deployment = v
	}
	if v := strings.TrimSpace(fc.MCPServerURL); v != "" {
		config.MCPServerURL = v
	}
	if fc.MaxToolCalls > 0 {
		config.MaxToolCalls = fc.MaxToolCalls
	}
	if fc.ToolTimeoutSeconds > 0 {
		config.ToolTimeout = time.Duration(fc.ToolTimeoutSeconds) * time.Second
	}
	return nil
}
