package compress

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SaveReport writes the run report to a YAML file.
func SaveReport(report *Report, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// PrintSummary writes a human-readable run summary to stdout.
func PrintSummary(report *Report) {
	s := report.Summary

	fmt.Println("\n========================================")
	fmt.Println("Compression Summary")
	fmt.Println("========================================")
	fmt.Printf("Budget:             %s\n", report.Budget)
	fmt.Printf("Total Records:      %d\n", s.Total)
	fmt.Printf("Compressed:         %d\n", s.Compressed)
	fmt.Printf("Skipped (in budget): %d\n", s.Skipped)
	fmt.Printf("Failed:             %d\n", s.Failed)
	fmt.Printf("Still Over Budget:  %d\n", s.OverBudget)
	fmt.Println()
	fmt.Printf("Size Before:        %s\n", s.SizeBefore)
	fmt.Printf("Size After:         %s\n", s.SizeAfter)

	if s.Failed > 0 {
		fmt.Println()
		fmt.Println("Failures:")

		failures := make([]Result, 0, s.Failed)
		for _, res := range report.Results {
			if res.Outcome == OutcomeFailed {
				failures = append(failures, res)
			}
		}
		sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })

		for _, res := range failures {
			fmt.Printf("  %s (%s): %s\n", res.Path, res.Stage, res.Err)
		}
	}
	fmt.Println("========================================")
}
