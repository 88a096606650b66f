package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imgworks/shrinker/internal/catalog"
	"github.com/imgworks/shrinker/internal/codec"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Root: "/photos",
		Records: []catalog.ImageRecord{
			catalog.NewRecord("/photos/a.jpg", 300000, codec.JPEG, 2000, 1000),
			catalog.NewRecord("/photos/b.png", 1024, codec.PNG, 64, 48),
		},
	}
}

func TestHandleCatalog(t *testing.T) {
	handler := New(testCatalog())

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	handler.HandleCatalog(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp struct {
		Root      string                `json:"root"`
		Count     int                   `json:"count"`
		TotalSize string                `json:"total_size"`
		Records   []catalog.ImageRecord `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}

	if resp.Root != "/photos" || resp.Count != 2 {
		t.Errorf("Response = %s/%d, want /photos/2", resp.Root, resp.Count)
	}
	if resp.TotalSize != "293.97 KB" {
		t.Errorf("TotalSize = %q, want 293.97 KB", resp.TotalSize)
	}
	if len(resp.Records) != 2 || resp.Records[0].Path != "/photos/a.jpg" {
		t.Errorf("Records = %+v", resp.Records)
	}
}

func TestHandleCatalogMethodNotAllowed(t *testing.T) {
	handler := New(testCatalog())

	req := httptest.NewRequest(http.MethodPost, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	handler.HandleCatalog(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, want 405", rec.Code)
	}
}

func TestRescanSwapsSnapshot(t *testing.T) {
	handler := New(testCatalog())

	handler.Rescan(&catalog.Catalog{Root: "/other"})

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	handler.HandleCatalog(rec, req)

	var resp struct {
		Root  string `json:"root"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if resp.Root != "/other" || resp.Count != 0 {
		t.Errorf("Response = %s/%d, want /other/0", resp.Root, resp.Count)
	}
}
