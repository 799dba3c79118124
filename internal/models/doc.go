// Package models defines the domain entities passed between the CLI, the
// streaming service clients, and the playlist sync engine.
//
//   - [Track] : song metadata as returned by a service
//   - [TrackKey] : the normalized comparison identity of a track
//   - [Playlist] : playlist reference (id + display name)
//   - [SyncResult] : per-playlist sync outcome (totals, resolved ids, failures)
//
// All values are owned by a single sync invocation; nothing in this package is
// retained across invocations.
package models
