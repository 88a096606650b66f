// Package handlers exposes a scanned catalog over a read-only HTTP API.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/imgworks/shrinker/internal/catalog"
	"github.com/imgworks/shrinker/internal/sizefmt"
	"github.com/imgworks/shrinker/internal/storage"
)

// Handler serves catalog snapshots.
type Handler struct {
	store *storage.SnapshotStore
}

// New returns a handler serving the given catalog snapshot.
func New(cat *catalog.Catalog) *Handler {
	return &Handler{store: storage.New(cat)}
}

// Rescan swaps in a fresh catalog snapshot.
func (h *Handler) Rescan(cat *catalog.Catalog) {
	h.store.Set(cat)
}

type catalogResponse struct {
	Root      string                `json:"root"`
	Count     int                   `json:"count"`
	TotalSize string                `json:"total_size"`
	Records   []catalog.ImageRecord `json:"records"`
}

// HandleCatalog serves the current catalog as JSON.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cat := h.store.Get()

	resp := catalogResponse{
		Root:      cat.Root,
		Count:     cat.Len(),
		TotalSize: sizefmt.Format(cat.TotalBytes()),
		Records:   cat.Records,
	}
	h.writeJSON(w, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
