// package tasks implements the playlist sync pipeline between two streaming
// services.
//
// The core abstraction is Engine, which orchestrates one sync invocation:
// fetch the source playlist, find or create the matching target playlist,
// diff tracks, resolve the missing ones against the target catalog, and
// submit them in a single batch. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/achandy/harmony/internal/matching"
	"github.com/achandy/harmony/internal/models"
	"github.com/achandy/harmony/internal/services"
	"github.com/achandy/harmony/internal/shared"
)

const (
	playlistFetchLimit = 50
	trackFetchLimit    = 100
)

// Engine syncs playlists from a source service to a target service.
//
// An Engine owns no state across invocations; every Sync call fetches
// playlists fresh so decisions are never made on stale membership.
type Engine struct {
	source   services.StreamingService
	target   services.StreamingService
	resolver *TrackResolver
	limiter  *rate.Limiter
}

// NewEngine creates a sync engine between the two services. The rate limit
// from cfg paces catalog search calls; zero means unlimited.
func NewEngine(source, target services.StreamingService, cfg shared.SyncConfig) *Engine {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Engine{
		source:   source,
		target:   target,
		resolver: NewTrackResolver(target),
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Sync copies the contents of sourcePlaylist onto the target service.
//
// Tracks already present on the target (exactly or as fuzzy duplicates) are
// skipped. The rest are resolved by catalog search and added in one batch at
// the end; a track that cannot be resolved is recorded as failed without
// aborting the run. Fetch and batch-submission failures abort the whole
// invocation.
func (e *Engine) Sync(ctx context.Context, sourcePlaylist models.Playlist, progress chan<- ProgressUpdate) (*models.SyncResult, error) {
	if e.source == nil || e.target == nil {
		return nil, fmt.Errorf("%w: sync engine requires both services", shared.ErrServiceUnavailable)
	}

	result := &models.SyncResult{PlaylistName: sourcePlaylist.Name}

	e.sendProgress(progress, fetchSourceUpdate(sourcePlaylist.Name))

	sourceTracks, err := e.source.GetPlaylistTracks(ctx, sourcePlaylist.ID, trackFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source tracks: %w", err)
	}
	result.TotalTracks = len(sourceTracks)

	targetID, existingTracks, err := e.resolveTargetPlaylist(ctx, sourcePlaylist.Name, progress)
	if err != nil {
		return nil, err
	}

	existingKeys := make([]models.TrackKey, 0, len(existingTracks))
	existingSet := make(map[models.TrackKey]struct{}, len(existingTracks))
	for _, t := range existingTracks {
		key := t.Key()
		existingKeys = append(existingKeys, key)
		existingSet[key] = struct{}{}
	}

	e.sendProgress(progress, diffTracksUpdate(len(existingKeys)))

	total := len(sourceTracks)
	for i, track := range sourceTracks {
		key := track.Key()

		if _, ok := existingSet[key]; ok {
			continue
		}
		if matching.IsDuplicate(key, existingKeys) {
			continue
		}

		e.sendProgress(progress, resolveTrackUpdate(i+1, total, &track))

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		id, err := e.resolver.Resolve(ctx, track.Name, track.Artist)
		if err != nil || id == "" {
			result.Failed = append(result.Failed, key.String())
			continue
		}

		result.ResolvedIDs = append(result.ResolvedIDs, id)

		// Later source tracks duplicating this one must not be re-resolved.
		existingKeys = append(existingKeys, key)
		existingSet[key] = struct{}{}
	}

	if len(result.ResolvedIDs) > 0 {
		e.sendProgress(progress, submitBatchUpdate(len(result.ResolvedIDs)))

		if err := e.target.AddTracksToPlaylist(ctx, targetID, result.ResolvedIDs); err != nil {
			return result, fmt.Errorf("failed to add tracks to playlist: %w", err)
		}
		result.SyncedTracks = len(result.ResolvedIDs)
	}

	e.sendProgress(progress, reportUpdate(result))
	return result, nil
}

// resolveTargetPlaylist finds the target playlist whose name best matches the
// source playlist's, fetching its current tracks. When nothing scores above
// the match threshold a new playlist is created and treated as empty.
func (e *Engine) resolveTargetPlaylist(ctx context.Context, name string, progress chan<- ProgressUpdate) (string, []models.Track, error) {
	playlists, err := e.target.GetUserPlaylists(ctx, playlistFetchLimit)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list target playlists: %w", err)
	}

	if match := matching.FindBestMatch(name, playlists); match != nil {
		e.sendProgress(progress, matchedPlaylistUpdate(match))

		tracks, err := e.target.GetPlaylistTracks(ctx, match.ID, trackFetchLimit)
		if err != nil {
			return "", nil, fmt.Errorf("failed to fetch target tracks: %w", err)
		}
		return match.ID, tracks, nil
	}

	description := fmt.Sprintf("Synced from %s", e.source.Name())
	id, err := e.target.CreatePlaylist(ctx, name, description)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create target playlist: %w", err)
	}

	e.sendProgress(progress, createdPlaylistUpdate(name, id))
	return id, nil, nil
}
