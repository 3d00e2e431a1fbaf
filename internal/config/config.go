// Package config loads the project configuration that drives catalog
// filtering and post-clone scaffolding.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DefaultConfigFile is the config filename looked up in the working directory
const DefaultConfigFile = "upmsync.json"

// Scaffolding holds the post-clone scaffolding toggles and inputs
type Scaffolding struct {
	CreateAssemblyDefinition bool   `json:"create_assembly_definition"`
	CreatePackageManifest    bool   `json:"create_package_manifest"`
	CopyTemplateFiles        bool   `json:"copy_template_files"`
	TemplateDir              string `json:"template_dir,omitempty"`
	ExcludeSubstring         string `json:"exclude_substring"`
}

// Config represents the tool configuration
type Config struct {
	TargetDir         string      `json:"target_dir"`
	OrganizationName  string      `json:"organization_name"`
	AuthorName        string      `json:"author_name"`
	UnityVersion      string      `json:"unity_version"`
	Description       string      `json:"description,omitempty"`
	DependencyName    string      `json:"dependency_name"`
	DependencyVersion string      `json:"dependency_version"`
	Scaffolding       Scaffolding `json:"scaffolding"`
}

// DefaultConfig provides default configuration values
func DefaultConfig() *Config {
	return &Config{
		TargetDir:         "Assets/Packages",
		OrganizationName:  "UnityEssentials",
		AuthorName:        "UnityEssentials",
		UnityVersion:      "2021.3",
		DependencyName:    "com.unity.nuget.newtonsoft-json",
		DependencyVersion: "3.0.2",
		Scaffolding: Scaffolding{
			CreateAssemblyDefinition: true,
			CreatePackageManifest:    true,
			CopyTemplateFiles:        false,
			ExcludeSubstring:         "Unity",
		},
	}
}

// Load loads configuration from a file, falling back to defaults when the
// file does not exist. A .env file in the working directory is loaded first
// so environment overrides (UPM_TARGET_DIR, UPM_ORGANIZATION) apply either way.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.MergeDefaults()
	cfg.applyEnv()
	return cfg, nil
}

// Save saves configuration to a file
func Save(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeDefaults merges default values for unset fields
func (c *Config) MergeDefaults() {
	def := DefaultConfig()
	if c.TargetDir == "" {
		c.TargetDir = def.TargetDir
	}
	if c.OrganizationName == "" {
		c.OrganizationName = def.OrganizationName
	}
	if c.AuthorName == "" {
		c.AuthorName = c.OrganizationName
	}
	if c.UnityVersion == "" {
		c.UnityVersion = def.UnityVersion
	}
	if c.DependencyName == "" {
		c.DependencyName = def.DependencyName
		if c.DependencyVersion == "" {
			c.DependencyVersion = def.DependencyVersion
		}
	}
}

// applyEnv applies environment variable overrides on top of file values
func (c *Config) applyEnv() {
	c.TargetDir = getEnv("UPM_TARGET_DIR", c.TargetDir)
	c.OrganizationName = getEnv("UPM_ORGANIZATION", c.OrganizationName)
	c.AuthorName = getEnv("UPM_AUTHOR", c.AuthorName)
	c.UnityVersion = getEnv("UPM_UNITY_VERSION", c.UnityVersion)
	c.Scaffolding.TemplateDir = getEnv("UPM_TEMPLATE_DIR", c.Scaffolding.TemplateDir)
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
