package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/achandy/harmony/internal/formatter"
	"github.com/achandy/harmony/internal/matching"
	"github.com/achandy/harmony/internal/models"
	"github.com/achandy/harmony/internal/repositories"
	"github.com/achandy/harmony/internal/services"
	"github.com/achandy/harmony/internal/shared"
	"github.com/achandy/harmony/internal/tasks"
	"github.com/achandy/harmony/internal/ui"
)

// SyncRun runs a full playlist sync from the source service to the target.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	playlistArg := cmd.String("playlist")
	sourceName := cmd.String("source")
	targetName := cmd.String("target")
	save := cmd.Bool("save")

	source, err := r.resolveService(sourceName)
	if err != nil {
		return err
	}
	target, err := r.resolveService(targetName)
	if err != nil {
		return err
	}
	if source == target {
		return fmt.Errorf("%w: source and target must differ", shared.ErrInvalidFlag)
	}

	playlist, err := r.findSourcePlaylist(ctx, source, playlistArg)
	if err != nil {
		return err
	}

	r.logger.Info("starting sync", "playlist", playlist.Name, "source", source.Name(), "target", target.Name())
	r.writePlain("Syncing '%s' from %s to %s...\n\n", playlist.Name, source.Name(), target.Name())

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchSource:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ResolvePlaylist:
				r.writePlain("🎯 %s\n", update.Message)
			case tasks.DiffTracks:
				r.writePlain("🔎 %s\n", update.Message)
			case tasks.ResolveTracks:
				r.writePlain("   %s\n", update.Message)
			case tasks.SubmitBatch:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	engine := tasks.NewEngine(source, target, r.config.Sync)
	result, err := engine.Sync(ctx, *playlist, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete!")
	r.writePlain("%s", formatter.ResultToText(result))

	if save && len(result.Failed) > 0 {
		path, err := formatter.WriteResultCSV(result, "")
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		r.writePlain("\n✓ Unresolved tracks written to %s\n", path)
	}

	r.recordRun(source.Name(), target.Name(), result)
	return nil
}

// SyncUI launches the interactive terminal UI for playlist sync.
func (r *Runner) SyncUI(ctx context.Context, cmd *cli.Command) error {
	source, err := r.resolveService(cmd.String("source"))
	if err != nil {
		return err
	}
	target, err := r.resolveService(cmd.String("target"))
	if err != nil {
		return err
	}
	if source == target {
		return fmt.Errorf("%w: source and target must differ", shared.ErrInvalidFlag)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/harmony-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	engine := tasks.NewEngine(source, target, r.config.Sync)
	model := ui.NewModel(ctx, source, target, engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// findSourcePlaylist resolves a playlist flag value against the source
// service's library, by ID first and then by fuzzy name match.
func (r *Runner) findSourcePlaylist(ctx context.Context, source services.StreamingService, arg string) (*models.Playlist, error) {
	playlists, err := source.GetUserPlaylists(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s playlists: %w", source.Name(), err)
	}

	for i := range playlists {
		if playlists[i].ID == arg {
			return &playlists[i], nil
		}
	}

	if match := matching.FindBestMatch(arg, playlists); match != nil {
		return match, nil
	}

	return nil, fmt.Errorf("%w: no playlist matching '%s' on %s", shared.ErrPlaylistNotFound, arg, source.Name())
}

// recordRun persists a completed sync to the history database. Failure to
// record is logged but never fails the sync itself.
func (r *Runner) recordRun(sourceService, targetService string, result *models.SyncResult) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warn("failed to open history database", "error", err)
		return
	}
	defer db.Close()

	repo := repositories.NewSyncRunRepository(db)
	run, err := repo.Record(sourceService, targetService, result)
	if err != nil {
		r.logger.Warn("failed to record sync run", "error", err)
		return
	}

	r.logger.Info("sync run recorded", "id", run.ID)
}
