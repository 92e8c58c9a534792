package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mnakagawa/kakei/internal/assets"
	"github.com/mnakagawa/kakei/internal/models"
	"github.com/mnakagawa/kakei/internal/storage"
)

// AssetService handles the asset snapshot history.
type AssetService struct {
	repo       *assets.Repository
	categories []string
	now        func() time.Time
}

// NewAssetService creates an AssetService over the given store with the
// six configured category names.
func NewAssetService(store storage.RowStore, categories []string) *AssetService {
	return &AssetService{
		repo:       assets.NewRepository(store, categories),
		categories: categories,
		now:        time.Now,
	}
}

type snapshotJSON struct {
	Date   string           `json:"date"`
	Values map[string]int64 `json:"values"`
	Total  int64            `json:"total"`
	Change string           `json:"change"`
}

type listSnapshotsResponse struct {
	Categories []string         `json:"categories"`
	Snapshots  []snapshotJSON   `json:"snapshots"`
	Previous   map[string]int64 `json:"previous"`
}

// ListSnapshots returns the snapshot history filtered by the window query
// parameter (30d, 180d, 365d or all; default all), plus the carry-forward
// values the entry form pre-fills with.
func (s *AssetService) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	window := assets.WindowAll
	if q := r.URL.Query().Get("window"); q != "" {
		parsed, err := assets.ParseWindow(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "window must be one of 30d, 180d, 365d, all")
			return
		}
		window = parsed
	}

	h := s.repo.Load(r.Context())
	filtered := h.FilterByWindow(window, s.now())

	out := make([]snapshotJSON, 0, len(filtered))
	for _, snap := range filtered {
		out = append(out, snapshotToJSON(snap))
	}
	writeJSON(w, http.StatusOK, listSnapshotsResponse{
		Categories: s.categories,
		Snapshots:  out,
		Previous:   h.PreviousValues(),
	})
}

type createSnapshotRequest struct {
	Date   string           `json:"date,omitempty"`
	Values map[string]int64 `json:"values"`
}

// CreateSnapshot builds a snapshot from the entered values (zero means
// "carry the previous value forward") and appends it to the history.
func (s *AssetService) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req createSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	known := make(map[string]bool, len(s.categories))
	for _, c := range s.categories {
		known[c] = true
	}
	for name, v := range req.Values {
		if !known[name] {
			writeError(w, http.StatusBadRequest, "unknown category: "+name)
			return
		}
		if v < 0 {
			writeError(w, http.StatusBadRequest, "amounts must not be negative")
			return
		}
	}

	date := s.now()
	if req.Date != "" {
		parsed, err := time.Parse(models.DateFormat, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	ctx := r.Context()
	h := s.repo.Load(ctx)
	snap := h.Build(date, req.Values)

	if err := s.repo.Append(ctx, snap); err != nil {
		slog.Error("Snapshot append failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save snapshot")
		return
	}
	h.Append(snap)

	slog.Info("Snapshot recorded",
		"date", snap.Date.Format(models.DateFormat),
		"total", snap.Total,
		"change", snap.Change,
	)
	writeJSON(w, http.StatusCreated, snapshotToJSON(snap))
}

func snapshotToJSON(s models.Snapshot) snapshotJSON {
	return snapshotJSON{
		Date:   s.Date.Format(models.DateFormat),
		Values: s.Values,
		Total:  s.Total,
		Change: s.Change,
	}
}
