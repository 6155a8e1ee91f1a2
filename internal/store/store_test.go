package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(factID string, total int) RunEventData {
	return RunEventData{
		BaseFactID:        factID,
		Subject:           "Polity",
		PolicyVersion:     "v1.0.0",
		Factor:            15,
		Seed:              42,
		MainCount:         10,
		HighImpactCount:   20,
		ContextualCount:   6,
		TypeCounts:        map[string]int{"single_mcq": 4, "match_following": 2},
		Failures:          []string{"high_impact map_based: boom"},
		DuplicatesRemoved: 3,
		Total:             total,
		Duration:          1500 * time.Millisecond,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// In-memory databases report "memory" for journal_mode.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='generation_run_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "generation_run_events" {
		t.Errorf("table name = %q, want 'generation_run_events'", name)
	}
}

func TestAppendRunRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	seq, err := repo.AppendRun(ctx, sampleRun("polity-art21", 33))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if seq != 1 {
		t.Errorf("sequence = %d, want 1", seq)
	}

	runs, err := repo.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}

	got := runs[0]
	if got.BaseFactID != "polity-art21" || got.Subject != "Polity" {
		t.Errorf("fact = %q/%q", got.BaseFactID, got.Subject)
	}
	if got.Seed != 42 || got.Factor != 15 || got.Total != 33 {
		t.Errorf("seed/factor/total = %d/%d/%d", got.Seed, got.Factor, got.Total)
	}
	if got.TypeCounts["single_mcq"] != 4 || got.TypeCounts["match_following"] != 2 {
		t.Errorf("type counts = %v", got.TypeCounts)
	}
	if len(got.Failures) != 1 {
		t.Errorf("failures = %v", got.Failures)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("duration = %v, want 1.5s", got.Duration)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestAppendRunPreservesLargeSeed(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	data := sampleRun("big-seed", 1)
	data.Seed = 1<<63 + 7
	if _, err := repo.AppendRun(ctx, data); err != nil {
		t.Fatalf("append: %v", err)
	}

	runs, err := repo.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if runs[0].Seed != data.Seed {
		t.Errorf("seed = %d, want %d", runs[0].Seed, data.Seed)
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.AppendRun(ctx, sampleRun("fact", i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	runs, err := repo.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("runs = %d, want 3", len(runs))
	}
	for i, want := range []int{4, 3, 2} {
		if runs[i].Total != want {
			t.Errorf("runs[%d].Total = %d, want %d", i, runs[i].Total, want)
		}
	}

	all, err := repo.RecentRuns(ctx, 0)
	if err != nil {
		t.Fatalf("recent all: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("all runs = %d, want 5", len(all))
	}
}

func TestRunsForFact(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "a"} {
		if _, err := repo.AppendRun(ctx, sampleRun(id, 1)); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	runs, err := repo.RunsForFact(ctx, "a")
	if err != nil {
		t.Fatalf("runs for fact: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].Sequence <= runs[1].Sequence {
		t.Errorf("expected newest first, got %d then %d", runs[0].Sequence, runs[1].Sequence)
	}
}

func TestSequenceSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.RunRepo().AppendRun(ctx, sampleRun("x", 1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	seq, err := s.RunRepo().AppendRun(ctx, sampleRun("x", 2))
	if err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	if seq != 2 {
		t.Errorf("sequence after reopen = %d, want 2", seq)
	}

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("FACTFORGE_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPathFromXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FACTFORGE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if want := filepath.Join(dir, "factforge", "runs.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
