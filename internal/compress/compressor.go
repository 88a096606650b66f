package compress

import (
	"context"
	"image"
	"os"

	"github.com/imgworks/shrinker/internal/catalog"
	"github.com/imgworks/shrinker/internal/codec"
	"github.com/imgworks/shrinker/internal/sizefmt"
)

// Stage names the pipeline step a failure occurred in.
type Stage string

const (
	StageRead   Stage = "read"
	StageDecode Stage = "decode"
	StageResize Stage = "resize"
	StageEncode Stage = "encode"
	StageCommit Stage = "commit"
)

// Outcome classifies how a record's processing ended.
type Outcome string

const (
	// OutcomeCompressed means the ladder ran to completion and the file
	// holds the smallest buffer produced. The final size may still exceed
	// the budget (PNG has a single-stage ladder); that is accepted.
	OutcomeCompressed Outcome = "compressed"

	// OutcomeSkipped means the record was already within budget and its
	// file was never opened for writing.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means a stage errored. The original file is untouched.
	OutcomeFailed Outcome = "failed"
)

// Result records the outcome of processing one catalog record.
type Result struct {
	Path          string       `yaml:"path"`
	Format        codec.Format `yaml:"format"`
	OriginalBytes uint64       `yaml:"original_bytes"`
	FinalBytes    uint64       `yaml:"final_bytes"`
	OriginalSize  string       `yaml:"original_size"`
	FinalSize     string       `yaml:"final_size"`
	Outcome       Outcome      `yaml:"outcome"`
	Stage         Stage        `yaml:"stage,omitempty"`
	Err           string       `yaml:"error,omitempty"`
	OverBudget    bool         `yaml:"over_budget,omitempty"`
}

// Quality used to measure the effect of the resize stage on a JPEG before
// the quality ladder runs.
const jpegMeasureQuality = 90

// PNG re-encode level used for the resize-stage measurement; the ladder
// stage applies the configured (maximum) level.
const pngMeasureLevel = 6

// Compressor applies the transformation ladder to individual records.
type Compressor struct {
	codec codec.Codec
	opts  Options
}

// NewCompressor returns a compressor running the ladder described by opts
// against the given codec.
func NewCompressor(cdc codec.Codec, opts Options) *Compressor {
	return &Compressor{codec: cdc, opts: opts}
}

// Compress runs the staged ladder against one record and commits the
// smallest buffer produced, stopping early once a stage's output fits the
// budget. The committed size on disk never exceeds the original size. On
// failure at any stage the original file is byte-for-byte untouched and the
// failing stage is named in the result.
func (c *Compressor) Compress(ctx context.Context, rec catalog.ImageRecord) Result {
	original, err := os.ReadFile(rec.Path)
	if err != nil {
		return c.fail(rec, StageRead, err)
	}

	best := original
	fits := func() bool { return uint64(len(best)) <= c.opts.BudgetBytes }

	// Pixels the re-encode ladder works from: the resized image when the
	// resize stage ran, otherwise the original decoded lazily.
	var img image.Image

	if rec.Width > c.opts.ResizeTriggerWidth {
		if err := ctx.Err(); err != nil {
			return c.fail(rec, StageResize, err)
		}
		decoded, err := c.codec.Decode(original)
		if err != nil {
			return c.fail(rec, StageDecode, err)
		}
		img = c.codec.Resize(decoded, c.opts.ResizeTargetWidth, true)

		buf, err := c.codec.Encode(img, rec.Format, c.measureSetting(rec.Format))
		if err != nil {
			return c.fail(rec, StageResize, err)
		}
		if len(buf) < len(best) {
			best = buf
		}
	}

	if !fits() {
		if img == nil {
			decoded, err := c.codec.Decode(original)
			if err != nil {
				return c.fail(rec, StageDecode, err)
			}
			img = decoded
		}
		for _, setting := range c.ladder(rec.Format) {
			if err := ctx.Err(); err != nil {
				return c.fail(rec, StageEncode, err)
			}
			buf, err := c.codec.Encode(img, rec.Format, setting)
			if err != nil {
				return c.fail(rec, StageEncode, err)
			}
			if len(buf) < len(best) {
				best = buf
			}
			if fits() {
				break
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return c.fail(rec, StageCommit, err)
	}

	// Commit only when a stage actually shrank the file; rewriting the
	// original bytes would be a pointless write.
	if len(best) < len(original) {
		if err := c.codec.WriteAtomic(rec.Path, best); err != nil {
			return c.fail(rec, StageCommit, err)
		}
	}

	info, err := os.Stat(rec.Path)
	if err != nil {
		return c.fail(rec, StageCommit, err)
	}
	final := uint64(info.Size())

	return Result{
		Path:          rec.Path,
		Format:        rec.Format,
		OriginalBytes: rec.SizeBytes,
		FinalBytes:    final,
		OriginalSize:  rec.Size,
		FinalSize:     sizefmt.Format(final),
		Outcome:       OutcomeCompressed,
		OverBudget:    final > c.opts.BudgetBytes,
	}
}

func (c *Compressor) measureSetting(format codec.Format) int {
	if format == codec.PNG {
		return pngMeasureLevel
	}
	return jpegMeasureQuality
}

// ladder returns the format's re-encode settings in order. JPEG descends
// the quality ladder; PNG has the single maximum-compression stage.
func (c *Compressor) ladder(format codec.Format) []int {
	if format == codec.PNG {
		return []int{c.opts.PNGCompressionLevel}
	}
	return c.opts.JPEGQualityLadder
}

func (c *Compressor) fail(rec catalog.ImageRecord, stage Stage, err error) Result {
	return Result{
		Path:          rec.Path,
		Format:        rec.Format,
		OriginalBytes: rec.SizeBytes,
		FinalBytes:    rec.SizeBytes,
		OriginalSize:  rec.Size,
		FinalSize:     rec.Size,
		Outcome:       OutcomeFailed,
		Stage:         stage,
		Err:           err.Error(),
	}
}
