package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	fileBaseName = ".ktrawler"
	fileFormat   = "yaml"
	envPrefix    = "KTRAWLER"
)

// Load resolves the ktrawler configuration. Values come from the defaults,
// then the YAML file, then KTRAWLER_* variables (github.page_size is read
// from KTRAWLER_GITHUB_PAGE_SIZE). An empty path looks for .ktrawler.yaml in
// the working directory and in $HOME; finding none is fine.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(fileFormat)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(fileBaseName)
		for _, dir := range searchDirs() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func searchDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}

	return dirs
}

// setDefaults registers every key so that environment variables are picked
// up by Unmarshal even when no file mentions the key.
func setDefaults(v *viper.Viper) {
	defaults := map[string]any{
		"github.token":     "",
		"github.api":       DefaultAPI,
		"github.query":     DefaultQuery,
		"github.page_size": DefaultPageSize,
		"github.base_url":  "",

		"corpus.clone_cooldown":            DefaultCloneCooldown,
		"corpus.update_cooldown":           DefaultUpdateCooldown,
		"corpus.git_binary":                DefaultGitBinary,
		"corpus.continue_on_clone_failure": false,

		"analysis.test_data_dir":       DefaultTestDataDir,
		"analysis.excluded_repos_file": DefaultExcludedReposFile,
		"analysis.private_repos_file":  DefaultPrivateReposFile,
		"analysis.max_repo_count":      DefaultMaxRepoCount,

		"report.format": DefaultFormat,
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
