// Package config provides YAML/env configuration for ktrawler.
package config

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidPageSize is returned when github.page_size is outside 1..100.
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
	// ErrUnknownAPI is returned for an unsupported github.api value.
	ErrUnknownAPI = errors.New("unknown GitHub API")
	// ErrUnknownFormat is returned for an unsupported report.format value.
	ErrUnknownFormat = errors.New("unknown report format")
	// ErrInvalidDuration is returned for a negative cooldown.
	ErrInvalidDuration = errors.New("cooldown must not be negative")
	// ErrInvalidMaxRepoCount is returned when analysis.max_repo_count is not positive.
	ErrInvalidMaxRepoCount = errors.New("max repo count must be positive")
)

// Supported values of github.api.
const (
	APIREST    = "rest"
	APIGraphQL = "graphql"
)

// Supported values of report.format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

// Config is the top-level configuration struct for ktrawler.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	GitHub   GitHubConfig   `mapstructure:"github"`
	Corpus   CorpusConfig   `mapstructure:"corpus"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Report   ReportConfig   `mapstructure:"report"`
}

// GitHubConfig holds repository discovery settings.
type GitHubConfig struct {
	Token    string `mapstructure:"token"`
	API      string `mapstructure:"api"`
	Query    string `mapstructure:"query"`
	PageSize int    `mapstructure:"page_size"`
	BaseURL  string `mapstructure:"base_url"`
}

// CorpusConfig holds local working copy settings.
type CorpusConfig struct {
	CloneCooldown          time.Duration `mapstructure:"clone_cooldown"`
	UpdateCooldown         time.Duration `mapstructure:"update_cooldown"`
	GitBinary              string        `mapstructure:"git_binary"`
	ContinueOnCloneFailure bool          `mapstructure:"continue_on_clone_failure"`
}

// AnalysisConfig holds crawler settings.
type AnalysisConfig struct {
	TestDataDir       string `mapstructure:"test_data_dir"`
	ExcludedReposFile string `mapstructure:"excluded_repos_file"`
	PrivateReposFile  string `mapstructure:"private_repos_file"`
	MaxRepoCount      int    `mapstructure:"max_repo_count"`
}

// ReportConfig holds output settings.
type ReportConfig struct {
	Format string `mapstructure:"format"`
}

// Validate checks the configuration for values the survey cannot run with.
func (c *Config) Validate() error {
	if c.GitHub.PageSize < 1 || c.GitHub.PageSize > DefaultPageSize {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, c.GitHub.PageSize)
	}

	switch c.GitHub.API {
	case APIREST, APIGraphQL:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAPI, c.GitHub.API)
	}

	if err := ValidateFormat(c.Report.Format); err != nil {
		return err
	}

	if c.Corpus.CloneCooldown < 0 || c.Corpus.UpdateCooldown < 0 {
		return ErrInvalidDuration
	}

	if c.Analysis.MaxRepoCount < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxRepoCount, c.Analysis.MaxRepoCount)
	}

	return nil
}

// ValidateFormat checks a report format name.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML, FormatHTML:
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
