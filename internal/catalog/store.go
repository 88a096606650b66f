package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Save serializes the catalog to path. The format is selected by extension:
// .jsonl writes one JSON object per line, .parquet writes a Parquet file.
// Byte counts are not persisted; Load recovers them by re-statting files.
func Save(cat *Catalog, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return saveParquet(cat, path)
	case ".jsonl", ".json":
		return saveJSONL(cat, path)
	default:
		return fmt.Errorf("unsupported catalog format: %s (supported: .parquet, .jsonl)", filepath.Ext(path))
	}
}

// Load reads a catalog previously written by Save. The persisted size string
// is display-only, so each record's authoritative byte count is recovered by
// statting the file; records whose file no longer exists are dropped with a
// warning.
func Load(path string) (*Catalog, error) {
	var (
		records []ImageRecord
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		records, err = loadParquet(path)
	case ".jsonl", ".json":
		records, err = loadJSONL(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s (supported: .parquet, .jsonl)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	cat := &Catalog{}
	for _, rec := range records {
		info, err := os.Stat(rec.Path)
		if err != nil {
			slog.Warn("Dropping catalog record, file not accessible", "path", rec.Path, "error", err)
			continue
		}
		rec.SizeBytes = uint64(info.Size())
		cat.Records = append(cat.Records, rec)
	}

	slog.Debug("Catalog loaded", "path", path, "records", cat.Len())
	return cat, nil
}

func saveJSONL(cat *Catalog, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, rec := range cat.Records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode record %s: %w", rec.Path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush catalog file: %w", err)
	}

	return nil
}

func loadJSONL(path string) ([]ImageRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var records []ImageRecord
	scanner := bufio.NewScanner(file)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec ImageRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse record at line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	return records, nil
}

func saveParquet(cat *Catalog, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[ImageRecord](file)
	if len(cat.Records) > 0 {
		if _, err := writer.Write(cat.Records); err != nil {
			return fmt.Errorf("failed to write parquet rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

func loadParquet(path string) ([]ImageRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[ImageRecord](pf)
	defer reader.Close()

	var records []ImageRecord
	rows := make([]ImageRecord, 128)
	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	return records, nil
}
