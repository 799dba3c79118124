package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/achandy/harmony/internal/models"
	"github.com/achandy/harmony/internal/services"
	"github.com/achandy/harmony/internal/shared"
)

// mockService implements services.StreamingService for engine and resolver tests.
type mockService struct {
	name           string
	profile        services.SearchProfile
	playlists      []models.Playlist
	playlistsErr   error
	playlistTracks map[string][]models.Track
	tracksErr      error
	searchFn       func(query string, types []string, limit int) (map[string]any, error)
	searchCalls    []string
	createdID      string
	createErr      error
	createdNames   []string
	added          map[string][]string
	addErr         error
}

func (m *mockService) Name() string {
	if m.name == "" {
		return "Mock"
	}
	return m.name
}

func (m *mockService) Profile() services.SearchProfile {
	return m.profile
}

func (m *mockService) Search(_ context.Context, query string, types []string, limit int) (map[string]any, error) {
	m.searchCalls = append(m.searchCalls, query)
	if m.searchFn != nil {
		return m.searchFn(query, types, limit)
	}
	return map[string]any{}, nil
}

func (m *mockService) GetUserPlaylists(_ context.Context, _ int) ([]models.Playlist, error) {
	return m.playlists, m.playlistsErr
}

func (m *mockService) GetPlaylistTracks(_ context.Context, playlistID string, _ int) ([]models.Track, error) {
	if m.tracksErr != nil {
		return nil, m.tracksErr
	}
	return m.playlistTracks[playlistID], nil
}

func (m *mockService) CreatePlaylist(_ context.Context, name, _ string) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.createdNames = append(m.createdNames, name)
	if m.createdID == "" {
		return "created-1", nil
	}
	return m.createdID, nil
}

func (m *mockService) AddTracksToPlaylist(_ context.Context, playlistID string, trackIDs []string) error {
	if m.addErr != nil {
		return m.addErr
	}
	if m.added == nil {
		m.added = make(map[string][]string)
	}
	m.added[playlistID] = append(m.added[playlistID], trackIDs...)
	return nil
}

var trackProfile = services.SearchProfile{
	SongTypes:  []string{"track"},
	ResultPath: []string{"tracks", "items"},
}

// trackResult builds a search response in the tracks.items shape.
func trackResult(ids ...string) map[string]any {
	items := make([]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]any{"id": id})
	}
	return map[string]any{"tracks": map[string]any{"items": items}}
}

func TestEngineSync(t *testing.T) {
	ctx := context.Background()

	t.Run("skips duplicates, adds resolved, records failures", func(t *testing.T) {
		source := &mockService{
			name: "Spotify",
			playlistTracks: map[string][]models.Track{
				"sp1": {
					{ID: "s1", Name: "Existing Song", Artist: "Artist A"},
					{ID: "s2", Name: "New Song", Artist: "Artist B"},
					{ID: "s3", Name: "Zebra Waltz", Artist: "Quartet Nine"},
				},
			},
		}
		target := &mockService{
			name:      "Apple Music",
			profile:   trackProfile,
			playlists: []models.Playlist{{ID: "tp1", Name: "Workout Mix"}},
			playlistTracks: map[string][]models.Track{
				"tp1": {{ID: "t1", Name: "Existing Song", Artist: "Artist A"}},
			},
			searchFn: func(query string, _ []string, _ int) (map[string]any, error) {
				if strings.Contains(query, "New Song") {
					return trackResult("new1"), nil
				}
				return trackResult(), nil
			},
		}

		engine := NewEngine(source, target, shared.SyncConfig{})
		result, err := engine.Sync(ctx, models.Playlist{ID: "sp1", Name: "Workout Mix"}, nil)
		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}

		if result.TotalTracks != 3 {
			t.Errorf("TotalTracks = %d, want 3", result.TotalTracks)
		}
		if result.SyncedTracks != 1 {
			t.Errorf("SyncedTracks = %d, want 1", result.SyncedTracks)
		}
		if len(result.Failed) != 1 {
			t.Fatalf("Failed = %v, want one entry", result.Failed)
		}
		if !strings.Contains(result.Failed[0], "zebra waltz") {
			t.Errorf("Failed[0] = %q, want the unresolvable track", result.Failed[0])
		}
		if got := target.added["tp1"]; len(got) != 1 || got[0] != "new1" {
			t.Errorf("added = %v, want [new1]", got)
		}
	})

	t.Run("second run syncs nothing", func(t *testing.T) {
		tracks := []models.Track{
			{Name: "Song One", Artist: "Artist One"},
			{Name: "Song Two", Artist: "Artist Two"},
		}
		source := &mockService{
			playlistTracks: map[string][]models.Track{"sp1": tracks},
		}
		target := &mockService{
			profile:        trackProfile,
			playlists:      []models.Playlist{{ID: "tp1", Name: "Mix"}},
			playlistTracks: map[string][]models.Track{"tp1": tracks},
		}

		engine := NewEngine(source, target, shared.SyncConfig{})
		result, err := engine.Sync(ctx, models.Playlist{ID: "sp1", Name: "Mix"}, nil)
		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}

		if result.SyncedTracks != 0 || len(result.Failed) != 0 {
			t.Errorf("expected nothing to sync, got %+v", result)
		}
		if len(target.added) != 0 {
			t.Errorf("AddTracksToPlaylist should not have been called, got %v", target.added)
		}
		if len(target.searchCalls) != 0 {
			t.Errorf("no searches expected, got %v", target.searchCalls)
		}
	})

	t.Run("creates playlist when no name matches", func(t *testing.T) {
		source := &mockService{
			playlistTracks: map[string][]models.Track{
				"sp1": {{Name: "Song One", Artist: "Artist One"}},
			},
		}
		target := &mockService{
			profile: trackProfile,
			searchFn: func(string, []string, int) (map[string]any, error) {
				return trackResult("r1"), nil
			},
		}

		engine := NewEngine(source, target, shared.SyncConfig{})
		result, err := engine.Sync(ctx, models.Playlist{ID: "sp1", Name: "Brand New"}, nil)
		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}

		if len(target.createdNames) != 1 || target.createdNames[0] != "Brand New" {
			t.Errorf("createdNames = %v, want [Brand New]", target.createdNames)
		}
		if got := target.added["created-1"]; len(got) != 1 || got[0] != "r1" {
			t.Errorf("added = %v, want [r1] on the created playlist", got)
		}
		if result.SyncedTracks != 1 {
			t.Errorf("SyncedTracks = %d, want 1", result.SyncedTracks)
		}
	})

	t.Run("repeated source track resolved once", func(t *testing.T) {
		track := models.Track{Name: "Song One", Artist: "Artist One"}
		source := &mockService{
			playlistTracks: map[string][]models.Track{
				"sp1": {track, track},
			},
		}
		target := &mockService{
			profile: trackProfile,
			searchFn: func(string, []string, int) (map[string]any, error) {
				return trackResult("r1"), nil
			},
		}

		engine := NewEngine(source, target, shared.SyncConfig{})
		result, err := engine.Sync(ctx, models.Playlist{ID: "sp1", Name: "Mix"}, nil)
		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}

		if len(target.searchCalls) != 1 {
			t.Errorf("searchCalls = %v, want exactly one", target.searchCalls)
		}
		if result.SyncedTracks != 1 {
			t.Errorf("SyncedTracks = %d, want 1", result.SyncedTracks)
		}
	})

	t.Run("batch submission failure aborts", func(t *testing.T) {
		source := &mockService{
			playlistTracks: map[string][]models.Track{
				"sp1": {{Name: "Song One", Artist: "Artist One"}},
			},
		}
		target := &mockService{
			profile: trackProfile,
			searchFn: func(string, []string, int) (map[string]any, error) {
				return trackResult("r1"), nil
			},
			addErr: errors.New("boom"),
		}

		engine := NewEngine(source, target, shared.SyncConfig{})
		result, err := engine.Sync(ctx, models.Playlist{ID: "sp1", Name: "Mix"}, nil)
		if err == nil {
			t.Fatal("expected error from batch submission")
		}
		if result.SyncedTracks != 0 {
			t.Errorf("SyncedTracks = %d, want 0 after failed submit", result.SyncedTracks)
		}
	})

	t.Run("source fetch failure aborts", func(t *testing.T) {
		source := &mockService{tracksErr: errors.New("boom")}
		target := &mockService{profile: trackProfile}

		engine := NewEngine(source, target, shared.SyncConfig{})
		if _, err := engine.Sync(ctx, models.Playlist{ID: "sp1", Name: "Mix"}, nil); err == nil {
			t.Fatal("expected error from source fetch")
		}
	})

	t.Run("target listing failure aborts", func(t *testing.T) {
		source := &mockService{
			playlistTracks: map[string][]models.Track{"sp1": {{Name: "Song", Artist: "Artist"}}},
		}
		target := &mockService{profile: trackProfile, playlistsErr: errors.New("boom")}

		engine := NewEngine(source, target, shared.SyncConfig{})
		if _, err := engine.Sync(ctx, models.Playlist{ID: "sp1", Name: "Mix"}, nil); err == nil {
			t.Fatal("expected error from target playlist listing")
		}
	})

	t.Run("progress updates do not block", func(t *testing.T) {
		source := &mockService{
			playlistTracks: map[string][]models.Track{
				"sp1": {{Name: "Song One", Artist: "Artist One"}},
			},
		}
		target := &mockService{
			profile: trackProfile,
			searchFn: func(string, []string, int) (map[string]any, error) {
				return trackResult("r1"), nil
			},
		}

		// Unbuffered channel nobody reads from; updates must be dropped.
		progress := make(chan ProgressUpdate)

		engine := NewEngine(source, target, shared.SyncConfig{RequestsPerSecond: 100})
		if _, err := engine.Sync(ctx, models.Playlist{ID: "sp1", Name: "Mix"}, progress); err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
	})
}
