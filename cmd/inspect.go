package cmd

import (
	"fmt"

	"github.com/imgworks/shrinker/internal/catalog"
	"github.com/imgworks/shrinker/internal/sizefmt"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var catalogPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print records from a saved catalog",
		Long: `Inspect records from a saved catalog file.

Sizes shown are re-read from disk at load time; records whose file no
longer exists are dropped.`,
		Example: `  # Show the first 10 records
  shrinker inspect --catalog catalog.parquet

  # Show everything
  shrinker inspect --catalog catalog.jsonl --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			shown := 0
			for _, rec := range cat.Records {
				if limit > 0 && shown >= limit {
					break
				}
				fmt.Println(rec.String())
				shown++
			}

			fmt.Printf("\n%d of %d records shown, %s total\n", shown, cat.Len(), sizefmt.Format(cat.TotalBytes()))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file to inspect (.jsonl or .parquet) (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum records to print (0 for all)")

	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}
