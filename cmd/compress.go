package cmd

import (
	"fmt"

	"github.com/imgworks/shrinker/internal/catalog"
	"github.com/imgworks/shrinker/internal/codec"
	"github.com/imgworks/shrinker/internal/compress"
	"github.com/spf13/cobra"
)

func newCompressCmd() *cobra.Command {
	var root string
	var catalogPath string
	var configPath string
	var reportPath string
	var extensions []string
	var budget uint64
	var resizeTrigger uint32
	var resizeTarget uint32
	var jpegLadder []int
	var pngLevel int

	defaults := compress.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Shrink cataloged images to fit the size budget",
		Long: `Scans a directory tree (or loads a saved catalog) and runs the compression
ladder against every image over the size budget.

Images wider than the resize trigger are downscaled first, then re-encoded
at decreasing quality until they fit. Each file is replaced atomically; a
failure mid-pipeline leaves the original untouched and processing moves on
to the next image. The command exits non-zero if any image failed, after
the full pass completes.`,
		Example: `  # Compress everything under ./photos to the default 250 KB budget
  shrinker compress --root ./photos

  # Use a 100 KB budget and save a run report
  shrinker compress --root ./photos --budget 102400 --report run.yaml

  # Reuse a saved catalog instead of rescanning
  shrinker compress --catalog catalog.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := defaults
			if configPath != "" {
				loaded, err := compress.LoadOptions(configPath)
				if err != nil {
					return err
				}
				opts = loaded
			}

			// Explicit flags win over the config file.
			if cmd.Flags().Changed("budget") {
				opts.BudgetBytes = budget
			}
			if cmd.Flags().Changed("resize-trigger") {
				opts.ResizeTriggerWidth = resizeTrigger
			}
			if cmd.Flags().Changed("resize-target") {
				opts.ResizeTargetWidth = resizeTarget
			}
			if cmd.Flags().Changed("jpeg-qualities") {
				opts.JPEGQualityLadder = jpegLadder
			}
			if cmd.Flags().Changed("png-level") {
				opts.PNGCompressionLevel = pngLevel
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			cdc := codec.New()

			var cat *catalog.Catalog
			var err error
			if catalogPath != "" {
				cat, err = catalog.Load(catalogPath)
				if err != nil {
					return fmt.Errorf("failed to load catalog: %w", err)
				}
			} else {
				cat, err = catalog.Build(root, cdc, catalog.BuilderOptions{Allowlist: extensions})
				if err != nil {
					return fmt.Errorf("failed to build catalog: %w", err)
				}
			}

			report := compress.Run(cmd.Context(), cat, cdc, opts)

			if reportPath != "" {
				if err := compress.SaveReport(report, reportPath); err != nil {
					return err
				}
				fmt.Printf("Run report saved to: %s\n", reportPath)
			}

			compress.PrintSummary(report)

			if report.Failed() {
				return fmt.Errorf("%d of %d images failed", report.Summary.Failed, report.Summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Directory tree to scan and compress")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Saved catalog to process instead of scanning (.jsonl or .parquet)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file with ladder options")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML run report to this file")
	cmd.Flags().StringSliceVar(&extensions, "extensions", catalog.DefaultAllowlist(), "Image file extensions to catalog")
	cmd.Flags().Uint64Var(&budget, "budget", defaults.BudgetBytes, "Size budget in bytes")
	cmd.Flags().Uint32Var(&resizeTrigger, "resize-trigger", defaults.ResizeTriggerWidth, "Pixel width above which images are downscaled")
	cmd.Flags().Uint32Var(&resizeTarget, "resize-target", defaults.ResizeTargetWidth, "Pixel width images are downscaled to")
	cmd.Flags().IntSliceVar(&jpegLadder, "jpeg-qualities", defaults.JPEGQualityLadder, "JPEG re-encode qualities, tried in order")
	cmd.Flags().IntVar(&pngLevel, "png-level", defaults.PNGCompressionLevel, "PNG re-encode compression level (0-9)")

	return cmd
}
