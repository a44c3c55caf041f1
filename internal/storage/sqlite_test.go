package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "runs.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestTopRunsOrdering(t *testing.T) {
	store := openTemp(t)

	runs := []RunRecord{
		{LevelID: "01-meadow", Score: 2, Ticks: 900},
		{LevelID: "01-meadow", Score: 5, Ticks: 1200},
		{LevelID: "01-meadow", Score: 5, Ticks: 600, Difficulty: "hard"},
		{LevelID: "02-caverns", Score: 9, Ticks: 300},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%+v) failed: %v", r, err)
		}
	}

	top, err := store.TopRuns("01-meadow", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	wantTicks := []int{600, 1200, 900}
	for i, r := range top {
		if r.Ticks != wantTicks[i] {
			t.Errorf("run %d: ticks = %d, expected %d", i, r.Ticks, wantTicks[i])
		}
	}
	if top[0].Difficulty != "hard" || top[1].Difficulty != "normal" {
		t.Errorf("difficulty not stored: %q, %q", top[0].Difficulty, top[1].Difficulty)
	}

	limited, err := store.TopRuns("01-meadow", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d runs", len(limited))
	}
}

func TestBestScore(t *testing.T) {
	store := openTemp(t)

	best, err := store.BestScore("unknown")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for an unplayed level, got %d", best)
	}

	for _, score := range []int{3, 7, 1} {
		if _, err := store.SaveRun(RunRecord{LevelID: "03-tower", Score: score}); err != nil {
			t.Fatal(err)
		}
	}
	best, err = store.BestScore("03-tower")
	if err != nil {
		t.Fatal(err)
	}
	if best != 7 {
		t.Errorf("Expected best score 7, got %d", best)
	}
}

func TestSaveRunRequiresLevel(t *testing.T) {
	store := openTemp(t)
	if _, err := store.SaveRun(RunRecord{Score: 1}); err == nil {
		t.Error("SaveRun should reject an empty level id")
	}
}

func TestClearRuns(t *testing.T) {
	store := openTemp(t)
	store.SaveRun(RunRecord{LevelID: "a", Score: 1})
	store.SaveRun(RunRecord{LevelID: "b", Score: 2})

	if err := store.ClearRuns("a"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns("a", 10); len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns("b", 10); len(runs) != 1 {
		t.Errorf("Clearing one level should keep the others, got %d", len(runs))
	}
}

func TestAllLevelStats(t *testing.T) {
	store := openTemp(t)
	store.SaveRun(RunRecord{LevelID: "a", Score: 2})
	store.SaveRun(RunRecord{LevelID: "a", Score: 4})
	store.SaveRun(RunRecord{LevelID: "b", Score: 1})

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(stats))
	}
	a := stats["a"]
	if a.Runs != 2 || a.BestScore != 4 || a.AvgScore != 3 {
		t.Errorf("stats[a] = %+v", a)
	}
	if a.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}
