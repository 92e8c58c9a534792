package assets

import (
	"fmt"
	"time"

	"github.com/mnakagawa/kakei/internal/models"
)

// Window selects how far back the snapshot history is shown.
type Window string

// Supported display windows.
const (
	Window30d  Window = "30d"
	Window180d Window = "180d"
	Window365d Window = "365d"
	WindowAll  Window = "all"
)

// ParseWindow converts a query-string value into a Window.
func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case Window30d, Window180d, Window365d, WindowAll:
		return w, nil
	default:
		return "", fmt.Errorf("unknown window %q", s)
	}
}

func (w Window) days() int {
	switch w {
	case Window30d:
		return 30
	case Window180d:
		return 180
	case Window365d:
		return 365
	default:
		return 0
	}
}

// FilterByWindow returns the snapshots whose date is on or after today
// minus the window, preserving their present order. There is no upper
// bound, so future-dated snapshots are always included. WindowAll returns
// everything unchanged.
func (h *History) FilterByWindow(w Window, today time.Time) []models.Snapshot {
	if w == WindowAll {
		return h.All()
	}
	start := today.AddDate(0, 0, -w.days())
	var out []models.Snapshot
	for _, s := range h.snaps {
		if !s.Date.Before(start) {
			out = append(out, s)
		}
	}
	return out
}
