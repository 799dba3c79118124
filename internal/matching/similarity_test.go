package matching

import (
	"testing"

	"github.com/achandy/harmony/internal/models"
)

func TestRatio(t *testing.T) {
	tc := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "abc", b: "abc", want: 1},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "abc", b: "", want: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got != tt.want {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	t.Run("near miss scores high", func(t *testing.T) {
		got := Ratio("drums and guiter", "drum and guitar!")
		if got <= 0.8 {
			t.Errorf("Ratio() = %v, want > 0.8", got)
		}
	})

	t.Run("multi-byte input stays in range", func(t *testing.T) {
		pairs := [][2]string{
			{"ééé", "aaa"},
			{"beyoncé", "beyonce"},
			{"björk", "bjork"},
		}
		for _, p := range pairs {
			got := Ratio(p[0], p[1])
			if got < 0 || got > 1 {
				t.Errorf("Ratio(%q, %q) = %v, want within [0, 1]", p[0], p[1], got)
			}
		}

		if got := Ratio("beyoncé", "beyonce"); got != 0.75 {
			t.Errorf("Ratio(%q, %q) = %v, want 0.75", "beyoncé", "beyonce", got)
		}
	})
}

func TestFindBestMatch(t *testing.T) {
	playlists := []models.Playlist{
		{ID: "1", Name: "Lifts"},
		{ID: "2", Name: "Drum and Guitar!"},
		{ID: "3", Name: "Playlists 2"},
	}

	t.Run("close name matches", func(t *testing.T) {
		got := FindBestMatch("Drums and Guiter", playlists)
		if got == nil {
			t.Fatal("expected a match, got nil")
		}
		if got.ID != "2" {
			t.Errorf("matched playlist %q, want %q", got.Name, "Drum and Guitar!")
		}
	})

	t.Run("distant name yields no match", func(t *testing.T) {
		if got := FindBestMatch("Something Else", playlists); got != nil {
			t.Errorf("expected nil, matched %q", got.Name)
		}
	})

	t.Run("empty candidate list", func(t *testing.T) {
		if got := FindBestMatch("Anything", nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("exact match ignores case", func(t *testing.T) {
		got := FindBestMatch("LIFTS", playlists)
		if got == nil || got.ID != "1" {
			t.Fatalf("expected Lifts, got %v", got)
		}
	})
}

func TestIsDuplicate(t *testing.T) {
	existing := []models.TrackKey{
		models.NewTrackKey("Song One", "Artist One"),
		models.NewTrackKey("Another Song", "Someone"),
	}

	tc := []struct {
		name string
		key  models.TrackKey
		want bool
	}{
		{
			name: "exact raw match",
			key:  models.NewTrackKey("Song One", "Artist One"),
			want: true,
		},
		{
			name: "case variant",
			key:  models.NewTrackKey("SONG ONE", "ARTIST ONE"),
			want: true,
		},
		{
			name: "remix suffix matches via normalization",
			key:  models.NewTrackKey("Song One (Remix)", "Artist One"),
			want: true,
		},
		{
			name: "unrelated track",
			key:  models.NewTrackKey("Different Song", "Other Artist"),
			want: false,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(tt.key, existing); got != tt.want {
				t.Errorf("IsDuplicate(%v) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}

	t.Run("empty existing set", func(t *testing.T) {
		if IsDuplicate(models.NewTrackKey("Song", "Artist"), nil) {
			t.Error("expected false against empty set")
		}
	})
}
