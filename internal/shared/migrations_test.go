package shared

import "testing"

func TestRunMigrations(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	// sync_runs table exists after migration
	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='sync_runs'").Scan(&name)
	if err != nil {
		t.Fatalf("expected sync_runs table: %v", err)
	}

	// running again is a no-op
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 applied migration, got %d", count)
	}
}

func TestRollbackMigration(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := RollbackMigration(db); err == nil {
		t.Error("expected error rolling back with no migrations table")
	}

	if err := RunMigrations(db); err != nil {
		t.Fatal(err)
	}

	if err := RollbackMigration(db); err != nil {
		t.Fatalf("RollbackMigration() error = %v", err)
	}

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='sync_runs'").Scan(&name)
	if err == nil {
		t.Error("expected sync_runs table to be dropped")
	}

	if err := RollbackMigration(db); err == nil {
		t.Error("expected error with no migrations to rollback")
	}
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations() error = %v", err)
	}

	if len(migrations) == 0 {
		t.Fatal("expected at least one migration")
	}

	for i, m := range migrations {
		if m.Up == "" || m.Down == "" {
			t.Errorf("migration %d has empty script", m.Version)
		}
		if i > 0 && migrations[i-1].Version >= m.Version {
			t.Error("migrations not sorted by version")
		}
	}
}
