// package models defines the data contracts shared by the sync engine and the service clients
package models

import "strings"

// Placeholder values substituted for missing metadata before any comparison.
const (
	UnknownTrack  = "Unknown Track"
	UnknownArtist = "Unknown Artist"
)

// Track represents one musical recording as known to a streaming service.
//
// ID is the service-specific identifier and is only set for tracks obtained
// directly from a service; it is never part of a comparison.
type Track struct {
	ID     string
	Name   string
	Artist string
}

// Playlist is a playlist reference on a streaming service.
type Playlist struct {
	ID   string
	Name string
}

// TrackKey is the comparison identity of a track: a lower-cased, trimmed
// (name, artist) pair. Keys are recomputed per comparison, never persisted.
type TrackKey struct {
	Name   string
	Artist string
}

// NewTrackKey derives the comparison key for a track.
//
// Empty name or artist values are replaced with the Unknown placeholders so a
// key is never empty.
func NewTrackKey(name, artist string) TrackKey {
	if name == "" {
		name = UnknownTrack
	}
	if artist == "" {
		artist = UnknownArtist
	}
	return TrackKey{
		Name:   strings.ToLower(strings.TrimSpace(name)),
		Artist: strings.ToLower(strings.TrimSpace(artist)),
	}
}

// Key returns the track's comparison key.
func (t Track) Key() TrackKey {
	return NewTrackKey(t.Name, t.Artist)
}

func (k TrackKey) String() string {
	return k.Name + " - " + k.Artist
}

// SyncResult is the per-playlist outcome of one sync invocation.
//
// ResolvedIDs holds the target-service identifiers that were submitted to the
// target playlist; Failed holds descriptors of source tracks that could not be
// resolved. Neither is persisted beyond reporting.
type SyncResult struct {
	PlaylistName string
	TotalTracks  int
	SyncedTracks int
	ResolvedIDs  []string
	Failed       []string
}
