package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/achandy/harmony/internal/models"
	"github.com/achandy/harmony/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatal(err)
	}

	return db
}

func TestSyncRunRepository(t *testing.T) {
	repo := NewSyncRunRepository(newTestDB(t))

	result := &models.SyncResult{
		PlaylistName: "Workout Mix",
		TotalTracks:  3,
		SyncedTracks: 1,
		Failed:       []string{"zebra waltz - quartet nine"},
	}

	run, err := repo.Record("Spotify", "Apple Music", result)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if run.ID == "" {
		t.Error("expected generated id")
	}

	t.Run("get", func(t *testing.T) {
		got, err := repo.Get(run.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.PlaylistName != "Workout Mix" || got.SyncedTracks != 1 {
			t.Errorf("unexpected run %+v", got)
		}
		if len(got.Failed) != 1 || got.Failed[0] != "zebra waltz - quartet nine" {
			t.Errorf("Failed = %v", got.Failed)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		if _, err := repo.Get("nope"); err == nil {
			t.Error("expected error for unknown id")
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		// Ensure a later timestamp for ordering.
		time.Sleep(5 * time.Millisecond)
		second := &models.SyncResult{PlaylistName: "Chill", TotalTracks: 2, SyncedTracks: 2}
		if _, err := repo.Record("Apple Music", "Spotify", second); err != nil {
			t.Fatal(err)
		}

		runs, err := repo.List(10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("got %d runs, want 2", len(runs))
		}
		if runs[0].PlaylistName != "Chill" {
			t.Errorf("runs[0] = %q, want newest first", runs[0].PlaylistName)
		}
	})

	t.Run("list respects limit", func(t *testing.T) {
		runs, err := repo.List(1)
		if err != nil {
			t.Fatal(err)
		}
		if len(runs) != 1 {
			t.Errorf("got %d runs, want 1", len(runs))
		}
	})
}

func TestSyncRunRepositoryEmptyFailures(t *testing.T) {
	repo := NewSyncRunRepository(newTestDB(t))

	run, err := repo.Record("Spotify", "Apple Music", &models.SyncResult{PlaylistName: "Mix"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Failed) != 0 {
		t.Errorf("Failed = %v, want empty", got.Failed)
	}
}
