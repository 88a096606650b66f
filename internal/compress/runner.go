package compress

import (
	"context"
	"log/slog"
	"time"

	"github.com/imgworks/shrinker/internal/catalog"
	"github.com/imgworks/shrinker/internal/codec"
	"github.com/imgworks/shrinker/internal/sizefmt"
)

// Summary aggregates a run's per-record results.
type Summary struct {
	Total       int    `yaml:"total"`
	Compressed  int    `yaml:"compressed"`
	Skipped     int    `yaml:"skipped"`
	Failed      int    `yaml:"failed"`
	OverBudget  int    `yaml:"over_budget"`
	BytesBefore uint64 `yaml:"bytes_before"`
	BytesAfter  uint64 `yaml:"bytes_after"`
	SizeBefore  string `yaml:"size_before"`
	SizeAfter   string `yaml:"size_after"`
}

// Report is the append-only result log of one compression run.
type Report struct {
	Root        string   `yaml:"root"`
	BudgetBytes uint64   `yaml:"budget_bytes"`
	Budget      string   `yaml:"budget"`
	Timestamp   string   `yaml:"timestamp"`
	Results     []Result `yaml:"results"`
	Summary     Summary  `yaml:"summary"`
}

// Failed reports whether any record in the run failed.
func (r *Report) Failed() bool {
	return r.Summary.Failed > 0
}

// Run processes the catalog as an ordered task queue with a single worker:
// each record is fully handled, gate through commit or failure, before the
// next begins. Records within budget are reported as skipped and their
// files are never opened for writing. Per-record failures never stop the
// run.
func Run(ctx context.Context, cat *catalog.Catalog, cdc codec.Codec, opts Options) *Report {
	report := &Report{
		Root:        cat.Root,
		BudgetBytes: opts.BudgetBytes,
		Budget:      sizefmt.Format(opts.BudgetBytes),
		Timestamp:   time.Now().Format(time.RFC3339),
		Results:     make([]Result, 0, cat.Len()),
	}

	compressor := NewCompressor(cdc, opts)

	for _, rec := range cat.Records {
		if !ShouldCompress(rec, opts.BudgetBytes) {
			slog.Debug("Within budget, skipping", "path", rec.Path, "size", rec.Size)
			report.Results = append(report.Results, Result{
				Path:          rec.Path,
				Format:        rec.Format,
				OriginalBytes: rec.SizeBytes,
				FinalBytes:    rec.SizeBytes,
				OriginalSize:  rec.Size,
				FinalSize:     rec.Size,
				Outcome:       OutcomeSkipped,
			})
			continue
		}

		res := compressor.Compress(ctx, rec)
		report.Results = append(report.Results, res)

		switch res.Outcome {
		case OutcomeFailed:
			slog.Warn("Compression failed", "path", res.Path, "stage", res.Stage, "error", res.Err)
		default:
			slog.Info("Compressed", "path", res.Path, "before", res.OriginalSize, "after", res.FinalSize, "over_budget", res.OverBudget)
		}
	}

	report.Summary = summarize(report.Results)
	return report
}

func summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, res := range results {
		s.BytesBefore += res.OriginalBytes
		s.BytesAfter += res.FinalBytes
		switch res.Outcome {
		case OutcomeCompressed:
			s.Compressed++
			if res.OverBudget {
				s.OverBudget++
			}
		case OutcomeSkipped:
			s.Skipped++
		case OutcomeFailed:
			s.Failed++
		}
	}
	s.SizeBefore = sizefmt.Format(s.BytesBefore)
	s.SizeAfter = sizefmt.Format(s.BytesAfter)
	return s
}
