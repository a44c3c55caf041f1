package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func TestScoreboardCyclesLevels(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, r := range []storage.RunRecord{
		{LevelID: "01-meadow", Score: 3, Ticks: 600},
		{LevelID: "01-meadow", Score: 5, Ticks: 4500},
		{LevelID: "02-caverns", Score: 2, Ticks: 100},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	levels := []LevelInfo{{ID: "01-meadow", Title: "Meadow"}, {ID: "02-caverns", Title: "Caverns"}}
	m := NewScoreboardModel(levels, store, 100, 30)

	if len(m.runs) != 2 || m.runs[0].Score != 5 {
		t.Fatalf("meadow runs = %+v", m.runs)
	}
	view := m.View()
	for _, want := range []string{"BEST RUNS - Meadow", "runs 2  best 5  avg 4.0", "1:15"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(keyMsg("l"))
	m = next.(ScoreboardModel)
	if m.cursor != 1 || len(m.runs) != 1 {
		t.Errorf("after next: cursor=%d runs=%d", m.cursor, len(m.runs))
	}

	next, _ = m.Update(keyMsg("l"))
	m = next.(ScoreboardModel)
	if m.cursor != 0 {
		t.Errorf("cursor should wrap to the first level, got %d", m.cursor)
	}

	next, _ = m.Update(keyMsg("esc"))
	if !next.(ScoreboardModel).IsGoingBack() || next.View() != "" {
		t.Error("esc should go back")
	}
}

func TestScoreboardWithoutRuns(t *testing.T) {
	m := NewScoreboardModel([]LevelInfo{{ID: "x", Title: "X"}}, nil, 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Errorf("expected the empty message:\n%s", m.View())
	}
}

func TestRunTime(t *testing.T) {
	tests := map[int]string{0: "0:00", 59: "0:00", 60: "0:01", 4500: "1:15", 36000: "10:00"}
	for ticks, want := range tests {
		if got := runTime(ticks); got != want {
			t.Errorf("runTime(%d) = %q, expected %q", ticks, got, want)
		}
	}
}
