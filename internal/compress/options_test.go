package compress

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.BudgetBytes != 256000 {
		t.Errorf("BudgetBytes = %d, want 256000", opts.BudgetBytes)
	}
	if opts.ResizeTriggerWidth != 1500 || opts.ResizeTargetWidth != 1400 {
		t.Errorf("Resize widths = %d/%d, want 1500/1400", opts.ResizeTriggerWidth, opts.ResizeTargetWidth)
	}
	if len(opts.JPEGQualityLadder) != 2 || opts.JPEGQualityLadder[0] != 80 || opts.JPEGQualityLadder[1] != 60 {
		t.Errorf("JPEGQualityLadder = %v, want [80 60]", opts.JPEGQualityLadder)
	}
	if opts.PNGCompressionLevel != 9 {
		t.Errorf("PNGCompressionLevel = %d, want 9", opts.PNGCompressionLevel)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("Default options invalid: %v", err)
	}
}

func TestLoadOptionsPartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte("budget_bytes: 102400\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}

	if opts.BudgetBytes != 102400 {
		t.Errorf("BudgetBytes = %d, want 102400", opts.BudgetBytes)
	}
	// Unspecified fields keep their defaults.
	if opts.ResizeTriggerWidth != 1500 {
		t.Errorf("ResizeTriggerWidth = %d, want default 1500", opts.ResizeTriggerWidth)
	}
	if opts.PNGCompressionLevel != 9 {
		t.Errorf("PNGCompressionLevel = %d, want default 9", opts.PNGCompressionLevel)
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	if _, err := LoadOptions("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing config, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{name: "defaults", mutate: func(o *Options) {}, wantErr: false},
		{name: "zero budget", mutate: func(o *Options) { o.BudgetBytes = 0 }, wantErr: true},
		{name: "zero target width", mutate: func(o *Options) { o.ResizeTargetWidth = 0 }, wantErr: true},
		{name: "target above trigger", mutate: func(o *Options) { o.ResizeTargetWidth = 1600 }, wantErr: true},
		{name: "quality too high", mutate: func(o *Options) { o.JPEGQualityLadder = []int{101} }, wantErr: true},
		{name: "quality too low", mutate: func(o *Options) { o.JPEGQualityLadder = []int{0} }, wantErr: true},
		{name: "png level out of range", mutate: func(o *Options) { o.PNGCompressionLevel = 10 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
