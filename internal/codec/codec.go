// Package codec provides the image primitives the compression pipeline is
// built on: dimension probing, decoding, downscaling, re-encoding, and
// atomic file replacement.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// Format identifies an image encoding.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
)

// FormatForPath maps a file path to its image format by extension,
// case-insensitively. Returns false for anything outside {.jpg, .jpeg, .png}.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return JPEG, true
	case ".png":
		return PNG, true
	default:
		return "", false
	}
}

// Dimensions holds a probed image's pixel size.
type Dimensions struct {
	Width  uint32
	Height uint32
}

// Codec is the capability surface consumed by the catalog builder and the
// compression pipeline. Implementations must never enlarge in Resize when
// noUpscale is set, and WriteAtomic must leave the destination untouched on
// failure.
type Codec interface {
	Probe(path string) (Dimensions, error)
	Decode(data []byte) (image.Image, error)
	Resize(img image.Image, targetWidth uint32, noUpscale bool) image.Image
	Encode(img image.Image, format Format, qualityOrLevel int) ([]byte, error)
	WriteAtomic(path string, data []byte) error
}

// Std implements Codec with the standard image codecs and
// golang.org/x/image resampling.
type Std struct{}

// New returns the standard codec.
func New() *Std {
	return &Std{}
}

// Probe reads just enough of the file to report its pixel dimensions.
func (s *Std) Probe(path string) (Dimensions, error) {
	file, err := os.Open(path)
	if err != nil {
		return Dimensions{}, err
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return Dimensions{}, fmt.Errorf("failed to decode image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Dimensions{}, fmt.Errorf("non-positive dimensions %dx%d", cfg.Width, cfg.Height)
	}

	return Dimensions{Width: uint32(cfg.Width), Height: uint32(cfg.Height)}, nil
}

// Decode decodes an encoded image buffer.
func (s *Std) Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Resize scales img to targetWidth preserving aspect ratio. With noUpscale
// set, an image already at or below targetWidth is returned unchanged.
func (s *Std) Resize(img image.Image, targetWidth uint32, noUpscale bool) image.Image {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	if noUpscale && srcW <= int(targetWidth) {
		return img
	}

	targetHeight := int(math.Round(float64(srcH) * float64(targetWidth) / float64(srcW)))
	if targetHeight < 1 {
		targetHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(targetWidth), targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// Encode re-encodes img in the given format. For JPEG, qualityOrLevel is
// the quality 1-100. For PNG it is the compression level 0-9, mapped onto
// the standard encoder's levels (9 = best compression).
func (s *Std) Encode(img image.Image, format Format, qualityOrLevel int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case JPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: qualityOrLevel}); err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
	case PNG:
		enc := png.Encoder{CompressionLevel: pngLevel(qualityOrLevel)}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return buf.Bytes(), nil
}

func pngLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level >= 9:
		return png.BestCompression
	case level <= 3:
		return png.BestSpeed
	default:
		return png.DefaultCompression
	}
}

// WriteAtomic replaces the file at path with data. The buffer is written to
// a temporary file in the same directory and renamed over the original, so
// a failure mid-write cannot corrupt or truncate the destination.
func (s *Std) WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".shrinker-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
