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

// Package config types define the configuration structures used throughout
// sirseer-scout. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for sirseer-scout.
type Config struct {
	GitHub  GitHubConfig           `yaml:"github"`
	Search  SearchConfig           `yaml:"search"`
	Output  OutputConfig           `yaml:"output"`
	Log     LogConfig              `yaml:"log"`
	Presets map[string]PresetConfig `yaml:"presets"`
}

// GitHubConfig contains endpoints and credential settings. Custom endpoints
// allow GitHub Enterprise deployments.
type GitHubConfig struct {
	APIEndpoint     string        `yaml:"api_endpoint"`
	GraphQLEndpoint string        `yaml:"graphql_endpoint"`
	WebURL          string        `yaml:"web_url"`
	TokenEnv        string        `yaml:"token_env"`
	Username        string        `yaml:"username"`
	Timeout         time.Duration `yaml:"timeout"`
}

// SearchConfig holds defaults for the search command.
type SearchConfig struct {
	Sort          string   `yaml:"sort"`
	PageSize      int      `yaml:"page_size"`
	MaxPages      int      `yaml:"max_pages"`
	Branch        string   `yaml:"branch"`
	ResolveBranch bool     `yaml:"resolve_branch"`
	Extensions    []string `yaml:"extensions"`
	ExcludeOrgs   []string `yaml:"exclude_orgs"`
	ExcludeUsers  []string `yaml:"exclude_users"`
}

// OutputConfig controls where results are persisted.
type OutputConfig struct {
	URLsFile    string `yaml:"urls_file"`
	RecordsFile string `yaml:"records_file"`
	Overwrite   bool   `yaml:"overwrite"`
	MetadataDir string `yaml:"metadata_dir"`
	ShowMatches bool   `yaml:"show_matches"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// PresetConfig is a named, reusable search. Empty fields fall back to the
// search section; non-empty filter lists replace it.
type PresetConfig struct {
	Text         string   `yaml:"text"`
	Extensions   []string `yaml:"extensions"`
	ExcludeOrgs  []string `yaml:"exclude_orgs"`
	ExcludeUsers []string `yaml:"exclude_users"`
	URLsFile     string   `yaml:"urls_file"`
	PageSize     int      `yaml:"page_size"`
}

// Defaults shared by the config and the CLI.
const (
	DefaultSort     = "indexed"
	DefaultPageSize = 30
	DefaultBranch   = "master"
	DefaultURLsFile = "urls.txt"
	DefaultLogLevel = "info"
)

// DefaultConfig returns a Config with sensible defaults for public GitHub.com.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			WebURL:          "https://github.com",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Search: SearchConfig{
			Sort:     DefaultSort,
			PageSize: DefaultPageSize,
			Branch:   DefaultBranch,
		},
		Output: OutputConfig{
			URLsFile: DefaultURLsFile,
		},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Presets: make(map[string]PresetConfig),
	}
}
