// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for sirseer-scout with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Named preset (--preset)
//  3. Environment variables
//  4. Configuration file
//  5. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .sirseer-scout.yaml (current directory)
//   - .sirseer-scout.yml (current directory)
//   - ~/.sirseer/scout.yaml
//   - ~/.sirseer/scout.yml
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".sirseer-scout.yaml",
			".sirseer-scout.yml",
			filepath.Join(os.Getenv("HOME"), ".sirseer", "scout.yaml"),
			filepath.Join(os.Getenv("HOME"), ".sirseer", "scout.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Output.URLsFile = expandPath(cfg.Output.URLsFile)
	cfg.Output.RecordsFile = expandPath(cfg.Output.RecordsFile)
	cfg.Output.MetadataDir = expandPath(cfg.Output.MetadataDir)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

// ApplyPreset merges the named preset into the search and output sections
// and returns the preset's search text. An unknown name is an error.
func (c *Config) ApplyPreset(name string) (string, error) {
	preset, ok := c.Presets[name]
	if !ok {
		return "", fmt.Errorf("unknown preset %q", name)
	}

	if len(preset.Extensions) > 0 {
		c.Search.Extensions = preset.Extensions
	}
	if len(preset.ExcludeOrgs) > 0 {
		c.Search.ExcludeOrgs = preset.ExcludeOrgs
	}
	if len(preset.ExcludeUsers) > 0 {
		c.Search.ExcludeUsers = preset.ExcludeUsers
	}
	if preset.PageSize > 0 {
		c.Search.PageSize = preset.PageSize
	}
	if preset.URLsFile != "" {
		c.Output.URLsFile = expandPath(preset.URLsFile)
	}

	return preset.Text, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
	if user := os.Getenv("SCOUT_USER"); user != "" {
		cfg.GitHub.Username = user
	}

	if pageSize := os.Getenv("SCOUT_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Search.PageSize = size
		}
	}
	if branch := os.Getenv("SCOUT_BRANCH"); branch != "" {
		cfg.Search.Branch = branch
	}
	if resolve := os.Getenv("SCOUT_RESOLVE_BRANCH"); resolve != "" {
		cfg.Search.ResolveBranch = parseBool(resolve)
	}

	if output := os.Getenv("SCOUT_OUTPUT"); output != "" {
		cfg.Output.URLsFile = output
	}
	if dir := os.Getenv("SCOUT_METADATA_DIR"); dir != "" {
		cfg.Output.MetadataDir = dir
	}

	if level := os.Getenv("SCOUT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Validate checks if the configuration contains valid values. It should be
// called after flags have been applied so that bad flag values are caught too.
func (c *Config) Validate() error {
	if c.Search.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", c.Search.PageSize)
	}
	if c.Search.PageSize > 100 {
		return fmt.Errorf("page size %d exceeds GitHub API limit of 100", c.Search.PageSize)
	}
	if c.Search.MaxPages < 0 {
		return fmt.Errorf("max pages cannot be negative, got: %d", c.Search.MaxPages)
	}
	if c.Search.Sort == "" {
		return fmt.Errorf("sort key cannot be empty")
	}
	if c.Search.Branch == "" {
		return fmt.Errorf("branch cannot be empty")
	}
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	if c.Search.ResolveBranch && c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty when resolving branches")
	}
	if c.GitHub.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got: %s", c.GitHub.Timeout)
	}
	if c.Output.URLsFile == "" {
		return fmt.Errorf("URL output file cannot be empty")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q, want console or json", c.Log.Format)
	}
	return nil
}
