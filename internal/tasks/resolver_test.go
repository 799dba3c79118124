package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/achandy/harmony/internal/services"
)

var songsProfile = services.SearchProfile{
	SongTypes:      []string{"songs"},
	ResultPath:     []string{"results", "songs", "data"},
	ArtistPath:     []string{"attributes", "artistName"},
	ExtraFallbacks: true,
}

// songResult builds a search response in the results.songs.data shape.
func songResult(items ...map[string]any) map[string]any {
	data := make([]any, 0, len(items))
	for _, item := range items {
		data = append(data, item)
	}
	return map[string]any{
		"results": map[string]any{
			"songs": map[string]any{"data": data},
		},
	}
}

func song(id, artist string) map[string]any {
	return map[string]any{
		"id":         id,
		"attributes": map[string]any{"artistName": artist},
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("full query hit", func(t *testing.T) {
		svc := &mockService{
			profile: songsProfile,
			searchFn: func(query string, types []string, limit int) (map[string]any, error) {
				if limit != 1 {
					t.Errorf("limit = %d, want 1", limit)
				}
				if types[0] != "songs" {
					t.Errorf("types = %v", types)
				}
				return songResult(song("s1", "Artist")), nil
			},
		}

		id, err := NewTrackResolver(svc).Resolve(ctx, "Song", "Artist")
		if err != nil {
			t.Fatal(err)
		}
		if id != "s1" {
			t.Errorf("id = %q, want s1", id)
		}
		if len(svc.searchCalls) != 1 || svc.searchCalls[0] != "Song Artist" {
			t.Errorf("searchCalls = %v", svc.searchCalls)
		}
	})

	t.Run("artist scan fallback", func(t *testing.T) {
		svc := &mockService{
			profile: songsProfile,
			searchFn: func(query string, _ []string, limit int) (map[string]any, error) {
				if limit == 1 {
					return songResult(), nil
				}
				return songResult(
					song("x1", "Somebody Else"),
					song("x2", "The Artist & Friends"),
				), nil
			},
		}

		id, err := NewTrackResolver(svc).Resolve(ctx, "Song", "Artist")
		if err != nil {
			t.Fatal(err)
		}
		if id != "x2" {
			t.Errorf("id = %q, want x2 via artist containment", id)
		}
		if len(svc.searchCalls) != 2 || svc.searchCalls[1] != "Song" {
			t.Errorf("searchCalls = %v, want name-only second query", svc.searchCalls)
		}
	})

	t.Run("simplified query fallback", func(t *testing.T) {
		svc := &mockService{
			profile: songsProfile,
			searchFn: func(query string, _ []string, _ int) (map[string]any, error) {
				if query == "Song Artist" {
					return songResult(song("s9", "Artist")), nil
				}
				return songResult(), nil
			},
		}

		id, err := NewTrackResolver(svc).Resolve(ctx, "Song (Live at Venue)", "Artist")
		if err != nil {
			t.Fatal(err)
		}
		if id != "s9" {
			t.Errorf("id = %q, want s9 from simplified query", id)
		}
		if len(svc.searchCalls) != 3 {
			t.Fatalf("searchCalls = %v, want three strategies", svc.searchCalls)
		}
		if svc.searchCalls[2] != "Song Artist" {
			t.Errorf("third query = %q, want parentheses stripped", svc.searchCalls[2])
		}
	})

	t.Run("no fallbacks without the profile flag", func(t *testing.T) {
		svc := &mockService{
			profile: trackProfile,
			searchFn: func(string, []string, int) (map[string]any, error) {
				return trackResult(), nil
			},
		}

		id, err := NewTrackResolver(svc).Resolve(ctx, "Song", "Artist")
		if err != nil {
			t.Fatal(err)
		}
		if id != "" {
			t.Errorf("id = %q, want none", id)
		}
		if len(svc.searchCalls) != 1 {
			t.Errorf("searchCalls = %v, want a single strategy", svc.searchCalls)
		}
	})

	t.Run("search error propagates", func(t *testing.T) {
		wantErr := errors.New("boom")
		svc := &mockService{
			profile: songsProfile,
			searchFn: func(string, []string, int) (map[string]any, error) {
				return nil, wantErr
			},
		}

		if _, err := NewTrackResolver(svc).Resolve(ctx, "Song", "Artist"); !errors.Is(err, wantErr) {
			t.Errorf("err = %v, want %v", err, wantErr)
		}
	})

	t.Run("malformed response shape yields none", func(t *testing.T) {
		svc := &mockService{
			profile: trackProfile,
			searchFn: func(string, []string, int) (map[string]any, error) {
				return map[string]any{"tracks": "bogus"}, nil
			},
		}

		id, err := NewTrackResolver(svc).Resolve(ctx, "Song", "Artist")
		if err != nil {
			t.Fatal(err)
		}
		if id != "" {
			t.Errorf("id = %q, want none", id)
		}
	})
}
