package models

import "testing"

func TestNewTrackKey(t *testing.T) {
	tc := []struct {
		name   string
		title  string
		artist string
		want   TrackKey
	}{
		{
			name:   "lowercases and trims",
			title:  "  Song Title ",
			artist: " Artist Name  ",
			want:   TrackKey{Name: "song title", Artist: "artist name"},
		},
		{
			name:   "missing title defaults",
			title:  "",
			artist: "Artist",
			want:   TrackKey{Name: "unknown track", Artist: "artist"},
		},
		{
			name:   "missing artist defaults",
			title:  "Song",
			artist: "",
			want:   TrackKey{Name: "song", Artist: "unknown artist"},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTrackKey(tt.title, tt.artist)
			if got != tt.want {
				t.Errorf("NewTrackKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrackKey_String(t *testing.T) {
	k := NewTrackKey("Song One", "Artist One")
	if got := k.String(); got != "song one - artist one" {
		t.Errorf("String() = %q", got)
	}
}
