package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/achandy/harmony/internal/shared"
)

// SpotifyPlaylists lists the authenticated user's Spotify playlists.
func (r *Runner) SpotifyPlaylists(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("fetching up to %v spotify playlists", limit)

	playlists, err := r.spotify.GetUserPlaylists(ctx, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Spotify Playlists (%d)", len(playlists)))
	for i, pl := range playlists {
		r.writePlain("%d. %s (ID: %s)\n", i+1, pl.Name, pl.ID)
	}

	return nil
}

// SpotifyTracks lists the tracks in a Spotify playlist.
func (r *Runner) SpotifyTracks(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("fetching tracks for spotify playlist %v", playlistID)

	tracks, err := r.spotify.GetPlaylistTracks(ctx, playlistID, limit)
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
