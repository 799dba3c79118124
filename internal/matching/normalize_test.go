package matching

import "testing"

func TestNormalize_Track(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips annotations and featuring clause",
			in:   "Song Title (feat. Another Artist) [Remix]",
			want: "song title",
		},
		{
			name: "strips brackets",
			in:   "Track Name [Live at Venue]",
			want: "track name",
		},
		{
			name: "removes special characters",
			in:   "What's Up?!",
			want: "whats up",
		},
		{
			name: "collapses whitespace",
			in:   "  Too   Many    Spaces ",
			want: "too many spaces",
		},
		{
			name: "featuring without punctuation",
			in:   "Song ft Someone Else",
			want: "song",
		},
		{
			name: "plain title unchanged",
			in:   "Simple Song",
			want: "simple song",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in, TrackRole); got != tt.want {
				t.Errorf("Normalize(%q, TrackRole) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Artist(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "the prefix stripped and co-artists sorted",
			in:   "The Artist Name & Another Artist",
			want: "another artist, artist name",
		},
		{
			name: "sorted list is stable",
			in:   "Artist1, Artist2, Artist3",
			want: "artist1, artist2, artist3",
		},
		{
			name: "unsorted list gets sorted",
			in:   "Zeta, Alpha",
			want: "alpha, zeta",
		},
		{
			name: "and separator",
			in:   "Second and First",
			want: "first, second",
		},
		{
			name: "single artist unchanged",
			in:   "Solo Artist",
			want: "solo artist",
		},
		{
			name: "keeps commas and ampersands through char strip",
			in:   "A.B. & C!",
			want: "ab, c",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in, ArtistRole); got != tt.want {
				t.Errorf("Normalize(%q, ArtistRole) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
