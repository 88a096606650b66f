package cmd

import (
	"fmt"

	"github.com/imgworks/shrinker/internal/catalog"
	"github.com/imgworks/shrinker/internal/codec"
	"github.com/imgworks/shrinker/internal/sizefmt"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var root string
	var output string
	var extensions []string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Catalog the images under a directory tree",
		Long: `Recursively scans a directory tree, classifies files by extension, probes
image dimensions, and writes the resulting catalog.

Files whose dimension probe fails are logged and skipped without aborting
the scan. The output format is selected by extension: .jsonl or .parquet.`,
		Example: `  # Scan the current directory into a JSONL catalog
  shrinker scan --root . --output catalog.jsonl

  # Scan a photo library into a Parquet catalog
  shrinker scan --root ~/Pictures --output catalog.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Build(root, codec.New(), catalog.BuilderOptions{Allowlist: extensions})
			if err != nil {
				return fmt.Errorf("failed to build catalog: %w", err)
			}

			if err := catalog.Save(cat, output); err != nil {
				return fmt.Errorf("failed to save catalog: %w", err)
			}

			fmt.Printf("Cataloged %d images (%s) to %s\n", cat.Len(), sizefmt.Format(cat.TotalBytes()), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Directory tree to scan")
	cmd.Flags().StringVar(&output, "output", "catalog.jsonl", "Catalog output file (.jsonl or .parquet)")
	cmd.Flags().StringSliceVar(&extensions, "extensions", catalog.DefaultAllowlist(), "Image file extensions to catalog")

	return cmd
}
