package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/achandy/harmony/internal/formatter"
	"github.com/achandy/harmony/internal/repositories"
	"github.com/achandy/harmony/internal/shared"
)

// History lists recorded sync runs, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database (run 'harmony setup' first): %w", err)
	}
	defer db.Close()

	repo := repositories.NewSyncRunRepository(db)
	runs, err := repo.List(limit)
	if err != nil {
		return fmt.Errorf("failed to list sync runs: %w", err)
	}

	if useJSON {
		return r.writeJSON(runs, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Sync History (%d)", len(runs)))
	r.writePlain("%s", formatter.HistoryToText(runs))
	return nil
}
