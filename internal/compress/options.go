// Package compress decides which cataloged images need shrinking and runs
// the staged transformation ladder that shrinks them.
package compress

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options configures one compression run.
type Options struct {
	// BudgetBytes is the maximum acceptable file size after compression.
	BudgetBytes uint64 `yaml:"budget_bytes"`

	// ResizeTriggerWidth is the pixel width above which the resize stage
	// runs; ResizeTargetWidth is the width it scales down to.
	ResizeTriggerWidth uint32 `yaml:"resize_trigger_width"`
	ResizeTargetWidth  uint32 `yaml:"resize_target_width"`

	// JPEGQualityLadder holds the qualities tried in order once resizing
	// alone has not met the budget.
	JPEGQualityLadder []int `yaml:"jpeg_quality_ladder"`

	// PNGCompressionLevel is the single re-encode level for PNG. The PNG
	// ladder has one stage; a PNG may finish over budget and that is still
	// a success.
	PNGCompressionLevel int `yaml:"png_compression_level"`
}

// DefaultOptions returns the standard ladder configuration.
func DefaultOptions() Options {
	return Options{
		BudgetBytes:         250 * 1024,
		ResizeTriggerWidth:  1500,
		ResizeTargetWidth:   1400,
		JPEGQualityLadder:   []int{80, 60},
		PNGCompressionLevel: 9,
	}
}

// LoadOptions reads a YAML options file over the defaults: fields absent
// from the file keep their default values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}

	return opts, nil
}

// Validate rejects configurations the ladder cannot run with.
func (o Options) Validate() error {
	if o.BudgetBytes == 0 {
		return fmt.Errorf("budget must be positive")
	}
	if o.ResizeTargetWidth == 0 || o.ResizeTargetWidth > o.ResizeTriggerWidth {
		return fmt.Errorf("resize target width %d must be positive and not exceed the trigger width %d",
			o.ResizeTargetWidth, o.ResizeTriggerWidth)
	}
	for _, q := range o.JPEGQualityLadder {
		if q < 1 || q > 100 {
			return fmt.Errorf("jpeg quality %d out of range 1-100", q)
		}
	}
	if o.PNGCompressionLevel < 0 || o.PNGCompressionLevel > 9 {
		return fmt.Errorf("png compression level %d out of range 0-9", o.PNGCompressionLevel)
	}
	return nil
}
