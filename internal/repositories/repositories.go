// package repositories provides the persistence layer for sync history.
//
// Sync runs are recorded in SQLite so past invocations can be inspected from
// the CLI without re-querying either streaming service.
package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/achandy/harmony/internal/models"
	"github.com/achandy/harmony/internal/shared"
)

// SyncRun is one recorded sync invocation.
type SyncRun struct {
	ID            string
	SourceService string
	TargetService string
	PlaylistName  string
	TotalTracks   int
	SyncedTracks  int
	Failed        []string
	CreatedAt     time.Time
}

// SyncRunRepository stores and lists sync runs.
type SyncRunRepository struct {
	db *sql.DB
}

// NewSyncRunRepository creates a new SyncRunRepository with the given database connection
func NewSyncRunRepository(db *sql.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Record inserts a row for a completed sync invocation and returns it.
func (r *SyncRunRepository) Record(sourceService, targetService string, result *models.SyncResult) (*SyncRun, error) {
	failed, err := json.Marshal(result.Failed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode failures: %w", err)
	}

	run := &SyncRun{
		ID:            shared.GenerateID(),
		SourceService: sourceService,
		TargetService: targetService,
		PlaylistName:  result.PlaylistName,
		TotalTracks:   result.TotalTracks,
		SyncedTracks:  result.SyncedTracks,
		Failed:        result.Failed,
		CreatedAt:     time.Now(),
	}

	query := `
		INSERT INTO sync_runs (id, source_service, target_service, playlist_name, total_tracks, synced_tracks, failed_tracks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		run.ID,
		run.SourceService,
		run.TargetService,
		run.PlaylistName,
		run.TotalTracks,
		run.SyncedTracks,
		string(failed),
		run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sync run: %w", err)
	}

	return run, nil
}

// List returns the most recent sync runs, newest first.
func (r *SyncRunRepository) List(limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, source_service, target_service, playlist_name, total_tracks, synced_tracks, failed_tracks, created_at
		FROM sync_runs
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []SyncRun
	for rows.Next() {
		var run SyncRun
		var failed string
		if err := rows.Scan(
			&run.ID,
			&run.SourceService,
			&run.TargetService,
			&run.PlaylistName,
			&run.TotalTracks,
			&run.SyncedTracks,
			&failed,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}

		if err := json.Unmarshal([]byte(failed), &run.Failed); err != nil {
			return nil, fmt.Errorf("failed to decode failures: %w", err)
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Get retrieves a single sync run by id.
func (r *SyncRunRepository) Get(id string) (*SyncRun, error) {
	query := `
		SELECT id, source_service, target_service, playlist_name, total_tracks, synced_tracks, failed_tracks, created_at
		FROM sync_runs
		WHERE id = ?
	`

	var run SyncRun
	var failed string
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.SourceService,
		&run.TargetService,
		&run.PlaylistName,
		&run.TotalTracks,
		&run.SyncedTracks,
		&failed,
		&run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sync run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sync run: %w", err)
	}

	if err := json.Unmarshal([]byte(failed), &run.Failed); err != nil {
		return nil, fmt.Errorf("failed to decode failures: %w", err)
	}

	return &run, nil
}
