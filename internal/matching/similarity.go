package matching

import (
	"strings"

	"github.com/xrash/smetrics"

	"github.com/achandy/harmony/internal/models"
)

// Similarity thresholds. All comparisons are strictly greater-than.
const (
	playlistMatchThreshold = 0.8
	fuzzyNameThreshold     = 0.75
	fuzzyArtistThreshold   = 0.5
	weightedThreshold      = 0.7
)

// Ratio returns a similarity score in [0, 1] between two strings, computed
// from the Levenshtein edit distance normalized by the longer string's byte
// length. Distance and length are both measured in bytes so the score stays
// in range for multi-byte input. Identical strings score 1; strings sharing
// no characters score 0.
func Ratio(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}

	dist := smetrics.WagnerFischer(a, b, 1, 1, 1)
	return 1 - float64(dist)/float64(maxLen)
}

// FindBestMatch returns the playlist whose name is most similar to name, or
// nil when no playlist scores strictly above 0.8. Comparison is case-folded.
// Ties keep the first candidate encountered.
func FindBestMatch(name string, playlists []models.Playlist) *models.Playlist {
	lowered := strings.ToLower(name)

	bestIdx := -1
	bestScore := 0.0
	for i, p := range playlists {
		score := Ratio(lowered, strings.ToLower(p.Name))
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore <= playlistMatchThreshold {
		return nil
	}
	return &playlists[bestIdx]
}

// IsDuplicate reports whether key matches any of the existing keys under the
// layered comparison rules, checked in order for each existing key:
//
//  1. exact equality of the raw key
//  2. exact equality of the normalized key
//  3. raw name similarity > 0.75 and raw artist similarity > 0.5
//  4. the same thresholds on the normalized key
//  5. weighted 0.6*name + 0.4*artist similarity > 0.7, raw or normalized
//
// Keys are expected lower-cased and trimmed (see [models.NewTrackKey]).
func IsDuplicate(key models.TrackKey, existing []models.TrackKey) bool {
	normName := Normalize(key.Name, TrackRole)
	normArtist := Normalize(key.Artist, ArtistRole)

	for _, ex := range existing {
		if key == ex {
			return true
		}

		exNormName := Normalize(ex.Name, TrackRole)
		exNormArtist := Normalize(ex.Artist, ArtistRole)
		if normName == exNormName && normArtist == exNormArtist {
			return true
		}

		rawNameSim := Ratio(key.Name, ex.Name)
		rawArtistSim := Ratio(key.Artist, ex.Artist)
		if rawNameSim > fuzzyNameThreshold && rawArtistSim > fuzzyArtistThreshold {
			return true
		}

		normNameSim := Ratio(normName, exNormName)
		normArtistSim := Ratio(normArtist, exNormArtist)
		if normNameSim > fuzzyNameThreshold && normArtistSim > fuzzyArtistThreshold {
			return true
		}

		if 0.6*rawNameSim+0.4*rawArtistSim > weightedThreshold {
			return true
		}
		if 0.6*normNameSim+0.4*normArtistSim > weightedThreshold {
			return true
		}
	}

	return false
}
