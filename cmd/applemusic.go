package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/achandy/harmony/internal/services"
	"github.com/achandy/harmony/internal/shared"
)

// AppleMusicPlaylists lists the user's Apple Music library playlists.
func (r *Runner) AppleMusicPlaylists(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.applemusic == nil {
		return fmt.Errorf("%w: Apple Music service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("fetching up to %v apple music playlists", limit)

	playlists, err := r.applemusic.GetUserPlaylists(ctx, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Apple Music Playlists (%d)", len(playlists)))
	for i, pl := range playlists {
		r.writePlain("%d. %s (ID: %s)\n", i+1, pl.Name, pl.ID)
	}

	return nil
}

// AppleMusicTracks lists the tracks in an Apple Music library playlist.
func (r *Runner) AppleMusicTracks(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.applemusic == nil {
		return fmt.Errorf("%w: Apple Music service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("fetching tracks for apple music playlist %v", playlistID)

	tracks, err := r.applemusic.GetPlaylistTracks(ctx, playlistID, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Tracks (%d)", len(tracks)))
	for i, track := range tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Name)
	}

	return nil
}

// AppleMusicRotation shows the user's heavy rotation history.
func (r *Runner) AppleMusicRotation(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	svc, ok := r.applemusic.(*services.AppleMusicService)
	if !ok {
		return fmt.Errorf("%w: Apple Music service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("fetching heavy rotation history")

	tracks, err := svc.HeavyRotation(ctx, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Heavy Rotation (%d)", len(tracks)))
	for i, track := range tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Name)
	}

	return nil
}
