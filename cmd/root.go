// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/ktrawler/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "ktrawler [flags] <corpus-directory-path>",
	Short: "A CLI tool to survey Kotlin construct usage across GitHub repositories.",
	Long: `ktrawler discovers Kotlin repositories on GitHub, keeps a local clone of each
under the corpus directory and counts how often language constructs
(classes, enums, lambdas, labeled jumps, variance annotations, ...) are used.
The report is written to standard output.`,
	Args: cobra.ExactArgs(1),
	Run:  runSurvey,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetArgs(normalizeLegacyFlags(os.Args[1:]))

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Persistent flags, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: .ktrawler.yaml in the working or home directory)")
	rootCmd.PersistentFlags().String("format", config.DefaultFormat, "Report format: text, json, yaml or html")
	rootCmd.PersistentFlags().Bool("color", false, "Colorize the text report")

	rootCmd.Flags().Bool("local", false, "Use local repository versions, do not update from GitHub")
	rootCmd.Flags().Bool("stats-only", false, "Don't track individual usages, only their counts")
	rootCmd.Flags().Bool("only-analyze", false, "Only analyze the given directory as one project, no interaction with GitHub")
	rootCmd.Flags().Int("max-repo-count", config.DefaultMaxRepoCount, "Maximum number of repositories to analyze")
	rootCmd.Flags().String("api", config.DefaultAPI, "GitHub API used for discovery: rest or graphql")
}
