package catalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/imgworks/shrinker/internal/codec"
)

// Prober reports the pixel dimensions of an image file.
type Prober interface {
	Probe(path string) (codec.Dimensions, error)
}

// BuilderOptions configures a catalog scan.
type BuilderOptions struct {
	// Allowlist holds the file extensions (with leading dot) treated as
	// images. Matching is case-insensitive. Empty means DefaultAllowlist.
	Allowlist []string
}

// DefaultAllowlist returns the extensions cataloged by default.
func DefaultAllowlist() []string {
	return []string{".jpg", ".jpeg", ".png"}
}

// Build walks the tree rooted at root and returns a catalog with one record
// per regular file whose extension matches the allowlist. Records appear in
// traversal order. Unreadable directory entries and files whose dimension
// probe fails are logged and skipped; neither aborts the scan.
func Build(root string, prober Prober, opts BuilderOptions) (*Catalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	allowed := make(map[string]bool)
	allowlist := opts.Allowlist
	if len(allowlist) == 0 {
		allowlist = DefaultAllowlist()
	}
	for _, ext := range allowlist {
		allowed[strings.ToLower(ext)] = true
	}

	cat := &Catalog{Root: root}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !allowed[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		format, ok := codec.FormatForPath(path)
		if !ok {
			slog.Debug("Allowlisted extension has no codec", "path", path)
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			slog.Warn("Skipping entry, stat failed", "path", path, "error", err)
			return nil
		}

		dims, err := prober.Probe(path)
		if err != nil {
			slog.Warn("Skipping entry, dimension probe failed", "path", path, "error", err)
			return nil
		}

		rec := NewRecord(path, uint64(fi.Size()), format, dims.Width, dims.Height)
		cat.Records = append(cat.Records, rec)
		slog.Debug("Cataloged image", "path", path, "size", rec.Size, "width", rec.Width, "height", rec.Height)

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, walkErr)
	}

	slog.Info("Catalog built", "root", root, "records", cat.Len())
	return cat, nil
}
