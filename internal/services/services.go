// package services defines interface StreamingService for interacting with
// music streaming HTTP APIs
//
// Spotify, Apple Music
package services

import (
	"context"

	"github.com/achandy/harmony/internal/models"
)

// StreamingService defines the interface for music streaming providers that
// the sync engine reads playlists from and writes playlists to.
type StreamingService interface {
	// Name returns the display name of the service (e.g., "Spotify", "Apple Music")
	Name() string

	// Profile returns the service's catalog search configuration, consumed
	// by the track resolver to navigate the service-native result shape.
	Profile() SearchProfile

	// Search performs a best-effort catalog search. A query with no results
	// returns the service's empty result structure, never an error.
	Search(ctx context.Context, query string, types []string, limit int) (map[string]any, error)

	// GetUserPlaylists lists the authenticated user's playlists.
	GetUserPlaylists(ctx context.Context, limit int) ([]models.Playlist, error)

	// GetPlaylistTracks retrieves the tracks of a playlist. An empty playlist
	// yields an empty slice, not an error; missing track metadata is replaced
	// with the Unknown placeholders.
	GetPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]models.Track, error)

	// CreatePlaylist creates a new playlist and returns its id. Not
	// idempotent; callers must check GetUserPlaylists first to avoid
	// duplicate creation.
	CreatePlaylist(ctx context.Context, name, description string) (string, error)

	// AddTracksToPlaylist adds the given track ids to a playlist in one
	// call. Fails on any non-success outcome with no partial-success
	// reporting.
	AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error
}

// SearchProfile describes how to interpret a service's search response.
// Additional services plug into the resolver by declaring their own profile
// rather than by adding branches to the resolver itself.
type SearchProfile struct {
	// SongTypes holds the item-type tags to request for song searches.
	SongTypes []string

	// ResultPath is the sequence of keys from the response root to the list
	// of result items.
	ResultPath []string

	// ArtistPath is the sequence of keys from one result item to its artist
	// name string. Only consulted when ExtraFallbacks is set.
	ArtistPath []string

	// ExtraFallbacks enables the additional resolver search strategies for
	// services with strict search semantics.
	ExtraFallbacks bool
}
