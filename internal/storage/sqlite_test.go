package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/delta-legacy/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	runs := []RunRecord{
		{CatalogID: "delta", Player: "Ada", Score: 540, Duration: 4 * time.Minute, CreatedAt: base},
		{CatalogID: "delta", Player: "Bea", Score: 600, Duration: 5 * time.Minute, CreatedAt: base.Add(time.Minute)},
		{CatalogID: "delta", Player: "Cy", Score: 600, Duration: 3 * time.Minute, CreatedAt: base.Add(2 * time.Minute)},
		{CatalogID: "other", Player: "Dee", Score: 900, CreatedAt: base},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("delta", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Equal scores go to the faster run.
	wantOrder := []string{"Cy", "Bea", "Ada"}
	for i, want := range wantOrder {
		if top[i].Player != want {
			t.Errorf("top[%d].Player = %q, want %q", i, top[i].Player, want)
		}
	}
	if top[0].Duration != 3*time.Minute {
		t.Errorf("Duration = %v, want 3m", top[0].Duration)
	}
	if !top[2].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", top[2].CreatedAt, base)
	}
	if top[0].ID == "" {
		t.Error("SaveRun() should assign an id")
	}

	limited, err := store.TopRuns("delta", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d runs", len(limited))
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("delta")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty catalog, got %d", best)
	}

	for _, score := range []int{300, 550, 410} {
		if _, err := store.SaveRun(RunRecord{CatalogID: "delta", Player: "Ada", Score: score}); err != nil {
			t.Fatal(err)
		}
	}

	best, err = store.BestScore("delta")
	if err != nil {
		t.Fatal(err)
	}
	if best != 550 {
		t.Errorf("BestScore() = %d, want 550", best)
	}
}

func TestStoreRunByID(t *testing.T) {
	store := openTestStore(t)

	sum := progress.Summary{
		PlayerLabel: "Ada",
		Score:       590,
		Rank:        progress.RankLegendaryHistorian,
		Elapsed:     95 * time.Second,
		Completed:   6,
		Attempts:    7,
		Hints:       2,
	}
	run := NewRun("delta", sum, time.Now())

	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatal(err)
	}
	if id != run.ID {
		t.Errorf("SaveRun() id = %q, want %q", id, run.ID)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	if got.Player != "Ada" || got.Score != 590 || got.Rank != progress.RankLegendaryHistorian {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.Stages != 6 || got.Attempts != 7 || got.Hints != 2 || got.Duration != 95*time.Second {
		t.Errorf("counters = %+v", got)
	}

	missing, err := store.RunByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v", missing, err)
	}
}

func TestStoreCatalogStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.CatalogStats("delta")
	if err != nil {
		t.Fatal(err)
	}
	if empty.Runs != 0 || empty.BestScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	last := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store.SaveRun(RunRecord{CatalogID: "delta", Player: "Ada", Score: 500, Duration: 2 * time.Minute, CreatedAt: last.Add(-time.Hour)})
	store.SaveRun(RunRecord{CatalogID: "delta", Player: "Bea", Score: 600, Duration: 90 * time.Second, CreatedAt: last})

	stats, err := store.CatalogStats("delta")
	if err != nil {
		t.Fatalf("CatalogStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 600 || stats.AvgScore != 550 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Fastest != 90*time.Second {
		t.Errorf("Fastest = %v, want 1m30s", stats.Fastest)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, want %v", stats.LastPlayed, last)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{CatalogID: "delta", Player: "Ada", Score: 100})
	store.SaveRun(RunRecord{CatalogID: "delta", Player: "Bea", Score: 200})
	store.SaveRun(RunRecord{CatalogID: "other", Player: "Cy", Score: 300})

	if err := store.ClearRuns("delta"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("delta", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	other, _ := store.TopRuns("other", 10)
	if len(other) != 1 {
		t.Errorf("Expected other catalog untouched, got %d runs", len(other))
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store1, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store1.SaveRun(RunRecord{CatalogID: "delta", Player: "Ada", Score: 420}); err != nil {
		t.Fatal(err)
	}
	store1.Close()

	store2, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store2.Close()

	best, _ := store2.BestScore("delta")
	if best != 420 {
		t.Errorf("Expected persisted score 420, got %d", best)
	}
}
