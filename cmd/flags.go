package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/ktrawler/internal/config"
)

// legacyFlags are the survey options that used to be spelled with one dash.
var legacyFlags = []string{"local", "stats-only", "only-analyze", "max-repo-count"}

// normalizeLegacyFlags rewrites "-local" style options to "--local" so that
// existing invocations keep working.
func normalizeLegacyFlags(args []string) []string {
	out := make([]string, len(args))

	for i, arg := range args {
		out[i] = arg
		if arg == "--" {
			copy(out[i:], args[i:])
			break
		}

		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
			continue
		}

		name, _, _ := strings.Cut(arg[1:], "=")
		for _, legacy := range legacyFlags {
			if name == legacy {
				out[i] = "-" + arg
				break
			}
		}
	}

	return out
}

// newLogger creates the diagnostics logger. --verbose lowers the level to Debug.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the configuration and applies the flags the user set
// explicitly on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Report.Format, _ = flags.GetString("format")
	}

	if flags.Lookup("api") != nil && flags.Changed("api") {
		cfg.GitHub.API, _ = flags.GetString("api")
	}

	if flags.Lookup("max-repo-count") != nil && flags.Changed("max-repo-count") {
		cfg.Analysis.MaxRepoCount, _ = flags.GetInt("max-repo-count")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}
