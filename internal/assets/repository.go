package assets

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mnakagawa/kakei/internal/models"
	"github.com/mnakagawa/kakei/internal/storage"
)

// Repository persists the snapshot history through a storage.RowStore.
type Repository struct {
	store      storage.RowStore
	categories []string
}

// NewRepository creates a Repository over the given store using the six
// configured category names as the middle columns.
func NewRepository(store storage.RowStore, categories []string) *Repository {
	return &Repository{store: store, categories: categories}
}

func (r *Repository) table() storage.Table {
	return storage.AssetTable(r.categories)
}

// Load reads the full snapshot history. Any read or parse failure
// degrades to an empty history with a warning; reads never surface hard
// errors.
func (r *Repository) Load(ctx context.Context) *History {
	rows, err := r.store.ReadAll(ctx, r.table())
	if err != nil {
		slog.Warn("Asset history read failed, starting from an empty table", "error", err)
		return NewHistory(r.categories)
	}

	h := NewHistory(r.categories)
	for _, row := range rows {
		s, err := r.snapshotFromRow(row)
		if err != nil {
			slog.Warn("Asset history malformed, starting from an empty table", "error", err)
			return NewHistory(r.categories)
		}
		h.snaps = append(h.snaps, s)
	}
	return h
}

// Append adds one snapshot row to the backing table.
func (r *Repository) Append(ctx context.Context, s models.Snapshot) error {
	row := storage.Row{
		models.ColSnapshotDate: s.Date.Format(models.DateFormat),
		models.ColTotal:        strconv.FormatInt(s.Total, 10),
		models.ColChange:       s.Change,
	}
	for _, c := range r.categories {
		row[c] = strconv.FormatInt(s.Values[c], 10)
	}
	return r.store.AppendRows(ctx, r.table(), []storage.Row{row})
}

func (r *Repository) snapshotFromRow(row storage.Row) (models.Snapshot, error) {
	date, err := time.Parse(models.DateFormat, row[models.ColSnapshotDate])
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("bad %s value %q: %w", models.ColSnapshotDate, row[models.ColSnapshotDate], err)
	}

	values := make(map[string]int64, len(r.categories))
	for _, c := range r.categories {
		v, err := parseAmount(row[c])
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("bad %s value %q: %w", c, row[c], err)
		}
		values[c] = v
	}
	total, err := parseAmount(row[models.ColTotal])
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("bad %s value %q: %w", models.ColTotal, row[models.ColTotal], err)
	}

	return models.Snapshot{
		Date:   date,
		Values: values,
		Total:  total,
		Change: row[models.ColChange],
	}, nil
}

// parseAmount reads a yen cell; an empty cell counts as zero, matching
// how the spreadsheet rendered absent values.
func parseAmount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
