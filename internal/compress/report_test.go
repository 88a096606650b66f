package compress

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSaveReport(t *testing.T) {
	report := &Report{
		Root:        "/photos",
		BudgetBytes: 256000,
		Budget:      "250.00 KB",
		Timestamp:   "2026-08-28T10:00:00Z",
		Results: []Result{
			{Path: "/photos/a.jpg", Format: "jpeg", OriginalBytes: 300000, FinalBytes: 200000, Outcome: OutcomeCompressed},
			{Path: "/photos/b.png", Format: "png", OriginalBytes: 1000, FinalBytes: 1000, Outcome: OutcomeSkipped},
			{Path: "/photos/c.jpg", Format: "jpeg", OriginalBytes: 400000, FinalBytes: 400000, Outcome: OutcomeFailed, Stage: StageDecode, Err: "bad image"},
		},
	}
	report.Summary = summarize(report.Results)

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := SaveReport(report, path); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var loaded Report
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Report is not valid YAML: %v", err)
	}

	if len(loaded.Results) != 3 {
		t.Fatalf("Loaded %d results, want 3", len(loaded.Results))
	}
	if loaded.Summary.Compressed != 1 || loaded.Summary.Skipped != 1 || loaded.Summary.Failed != 1 {
		t.Errorf("Summary = %+v, want 1/1/1", loaded.Summary)
	}
	if loaded.Results[2].Stage != StageDecode || loaded.Results[2].Err != "bad image" {
		t.Errorf("Failure detail lost: %+v", loaded.Results[2])
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{OriginalBytes: 100, FinalBytes: 60, Outcome: OutcomeCompressed, OverBudget: false},
		{OriginalBytes: 200, FinalBytes: 150, Outcome: OutcomeCompressed, OverBudget: true},
		{OriginalBytes: 50, FinalBytes: 50, Outcome: OutcomeSkipped},
		{OriginalBytes: 75, FinalBytes: 75, Outcome: OutcomeFailed},
	}

	s := summarize(results)

	if s.Total != 4 || s.Compressed != 2 || s.Skipped != 1 || s.Failed != 1 || s.OverBudget != 1 {
		t.Errorf("Summary = %+v", s)
	}
	if s.BytesBefore != 425 || s.BytesAfter != 335 {
		t.Errorf("Bytes = %d/%d, want 425/335", s.BytesBefore, s.BytesAfter)
	}
}
