package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/ktrawler/internal/syntax/kotlin"
	"github.com/naka-gawa/ktrawler/internal/usecase"
)

var compareCmd = &cobra.Command{
	Use:   "compare <path>=<label> [<path>=<label>...]",
	Short: "Compares property getter usage across local projects as a markdown table",
	Long: `Analyzes each given project on its own and prints, per project, how many
'val' declarations have a custom getter and how many of those getters use an
expression body, for plain and overriding properties.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger := newLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		targets := make([]usecase.CompareTarget, 0, len(args))
		for _, arg := range args {
			target, err := usecase.ParseCompareTarget(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid target %q: %v\n", arg, err)
				os.Exit(1)
			}
			targets = append(targets, target)
		}

		parallel, _ := cmd.Flags().GetInt("parallel")
		comparer := usecase.NewComparer(kotlin.NewParser(), cfg.Analysis.TestDataDir, parallel, logger)

		rows, err := comparer.Compare(ctx, targets)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to compare projects: %v\n", err)
			os.Exit(1)
		}

		if err := usecase.WriteComparison(os.Stdout, rows); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write comparison: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().IntP("parallel", "p", runtime.NumCPU(), "Number of projects analyzed at once")
}
