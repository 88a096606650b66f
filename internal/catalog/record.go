// Package catalog builds and persists ordered collections of image
// records found under a directory tree.
package catalog

import (
	"fmt"
	"path/filepath"

	"github.com/imgworks/shrinker/internal/codec"
	"github.com/imgworks/shrinker/internal/sizefmt"
)

// ImageRecord describes a single image file. Path is the primary key within
// a catalog; no two records share one. SizeBytes is the authoritative byte
// count for any size decision; Size is the formatted display string derived
// from it. Width and Height are zero when dimensions are unknown, otherwise
// both are positive.
//
// The persisted form intentionally omits SizeBytes: the display string is
// for human inspection only and loaders recover the exact byte count by
// re-statting the file.
type ImageRecord struct {
	Name      string       `json:"name" parquet:"name"`
	Path      string       `json:"path" parquet:"path"`
	Size      string       `json:"size" parquet:"size"`
	Format    codec.Format `json:"extension" parquet:"extension"`
	Width     uint32       `json:"width" parquet:"width"`
	Height    uint32       `json:"height" parquet:"height"`
	SizeBytes uint64       `json:"-" parquet:"-"`
}

// NewRecord builds a record for a file, deriving Name from the path and the
// display size from the byte count.
func NewRecord(path string, sizeBytes uint64, format codec.Format, width, height uint32) ImageRecord {
	return ImageRecord{
		Name:      filepath.Base(path),
		Path:      path,
		Size:      sizefmt.Format(sizeBytes),
		Format:    format,
		Width:     width,
		Height:    height,
		SizeBytes: sizeBytes,
	}
}

func (r ImageRecord) String() string {
	if r.Width > 0 {
		return fmt.Sprintf("%s (%s, %dx%d, %s)", r.Path, r.Format, r.Width, r.Height, r.Size)
	}
	return fmt.Sprintf("%s (%s, %s)", r.Path, r.Format, r.Size)
}

// Catalog is an ordered collection of image records. Order is the traversal
// order of the scan that produced it; it only matters for reproducible
// logging. A catalog is built fresh per run and consumed once: after a
// record's file is rewritten, its SizeBytes is stale.
type Catalog struct {
	Root    string
	Records []ImageRecord
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.Records)
}

// TotalBytes sums the byte sizes of all records as of scan time.
func (c *Catalog) TotalBytes() uint64 {
	var total uint64
	for _, r := range c.Records {
		total += r.SizeBytes
	}
	return total
}
