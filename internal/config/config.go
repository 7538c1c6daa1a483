// Package config loads and validates Azure DevOps settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/martinb35/Bugger/internal/common"
	"github.com/spf13/viper"
)

// Config holds everything needed to talk to Azure DevOps. It is loaded once
// at startup and passed explicitly to constructors.
type Config struct {
	Organization string
	Project      string
	UserEmail    string
	PAT          string
	AIEnabled    bool
}

// Load reads Azure DevOps configuration with this precedence:
// 1. Viper configuration (from config file)
// 2. Direct environment variables (AZURE_DEVOPS_*)
func Load() (*Config, error) {
	cfg := &Config{
		Organization: viper.GetString("azure.organization"),
		Project:      viper.GetString("azure.project"),
		UserEmail:    viper.GetString("azure.user_email"),
		PAT:          viper.GetString("azure.pat"),
	}

	if cfg.Organization == "" {
		cfg.Organization = os.Getenv("AZURE_DEVOPS_ORG")
	}
	if cfg.Project == "" {
		cfg.Project = os.Getenv("AZURE_DEVOPS_PROJECT")
	}
	if cfg.UserEmail == "" {
		cfg.UserEmail = os.Getenv("AZURE_DEVOPS_USER_EMAIL")
	}
	if cfg.PAT == "" {
		cfg.PAT = os.Getenv("AZURE_DEVOPS_PAT")
	}

	// Optional AI enrichment flag; nothing consumes it yet.
	cfg.AIEnabled = viper.GetString("ai.openai_api_key") != "" ||
		os.Getenv("OPENAI_API_KEY") != ""

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required settings are present.
func (c *Config) Validate() error {
	var missing []string
	if c.Organization == "" {
		missing = append(missing, "AZURE_DEVOPS_ORG")
	}
	if c.Project == "" {
		missing = append(missing, "AZURE_DEVOPS_PROJECT")
	}
	if c.UserEmail == "" {
		missing = append(missing, "AZURE_DEVOPS_USER_EMAIL")
	}
	if c.PAT == "" {
		missing = append(missing, "AZURE_DEVOPS_PAT")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

// BaseURL returns the organization/project root of the Azure DevOps REST API.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("https://dev.azure.com/%s/%s", c.Organization, c.Project)
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
