package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "shrinker",
		Short: "Catalog images and shrink them to fit a size budget",
		Long: `Shrinker catalogs the JPEG and PNG files under a directory tree and
reduces each one to fit within a byte-size budget.

Oversized images go through a staged ladder of fallback transformations:
downscaling first, then lossy re-encoding at decreasing quality, stopping
as soon as the file fits the budget.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newCompressCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
