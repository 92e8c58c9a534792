package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mnakagawa/kakei/internal/storage/csvstore"
)

func newTestRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := csvstore.New(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewRepository(store, testCategories), dir
}

func TestAssetRepositoryRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first := snapshot("2026-08-01", 100, 200, 300, 0, 0, 0)
	first.Change = "initial"
	if err := repo.Append(ctx, first); err != nil {
		t.Fatalf("failed to append first snapshot: %v", err)
	}
	second := snapshot("2026-08-15", 150, 200, 300, 0, 0, 0)
	second.Change = "+8.3%"
	if err := repo.Append(ctx, second); err != nil {
		t.Fatalf("failed to append second snapshot: %v", err)
	}

	h := repo.Load(ctx)
	all := h.All()
	if len(all) != 2 {
		t.Fatalf("loaded %d snapshots, want 2", len(all))
	}
	if !all[0].Date.Equal(first.Date) || all[0].Total != 600 || all[0].Change != "initial" {
		t.Errorf("first snapshot mismatch: %+v", all[0])
	}
	if all[1].Change != "+8.3%" {
		t.Errorf("second Change = %q, want +8.3%%", all[1].Change)
	}
	if got := all[1].Values[testCategories[0]]; got != 150 {
		t.Errorf("second %s = %d, want 150", testCategories[0], got)
	}
}

func TestAssetRepositoryLoadMissingTable(t *testing.T) {
	repo, _ := newTestRepo(t)

	h := repo.Load(context.Background())
	if len(h.All()) != 0 {
		t.Errorf("loaded %d snapshots from a missing table, want 0", len(h.All()))
	}
}

func TestAssetRepositoryLoadMalformedTable(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Append(ctx, snapshot("2026-08-01", 100, 0, 0, 0, 0, 0)); err != nil {
		t.Fatalf("failed to append snapshot: %v", err)
	}

	// Corrupt the date cell in place; the whole load degrades to empty.
	path := filepath.Join(dir, "assets.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read table file: %v", err)
	}
	if err := os.WriteFile(path, []byte(string(data)+"garbage,1,2,3,4,5,6,21,none\n"), 0o644); err != nil {
		t.Fatalf("failed to corrupt table file: %v", err)
	}

	if got := len(repo.Load(ctx).All()); got != 0 {
		t.Errorf("loaded %d snapshots from a malformed table, want 0", got)
	}
}

func TestAssetRepositoryEmptyCellsParseAsZero(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Append(ctx, snapshot("2026-08-01", 100, 0, 0, 0, 0, 0)); err != nil {
		t.Fatalf("failed to append snapshot: %v", err)
	}

	path := filepath.Join(dir, "assets.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read table file: %v", err)
	}
	if err := os.WriteFile(path, []byte(string(data)+"2026-08-02,,,,,,,,\n"), 0o644); err != nil {
		t.Fatalf("failed to extend table file: %v", err)
	}

	all := repo.Load(ctx).All()
	if len(all) != 2 {
		t.Fatalf("loaded %d snapshots, want 2", len(all))
	}
	if all[1].Total != 0 {
		t.Errorf("Total parsed from empty cell = %d, want 0", all[1].Total)
	}
	for c, v := range all[1].Values {
		if v != 0 {
			t.Errorf("Values[%s] parsed from empty cell = %d, want 0", c, v)
		}
	}
}
