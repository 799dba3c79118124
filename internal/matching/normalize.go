// package matching implements the text normalization and fuzzy comparison
// rules used to decide whether two tracks on different services are the same
// recording.
package matching

import (
	"regexp"
	"sort"
	"strings"
)

// Role selects the normalization rules for a piece of track metadata.
type Role int

const (
	// TrackRole normalizes a track title.
	TrackRole Role = iota
	// ArtistRole normalizes an artist credit, possibly listing several artists.
	ArtistRole
)

var (
	parensRe   = regexp.MustCompile(`\([^)]*\)`)
	bracketsRe = regexp.MustCompile(`\[[^\]]*\]`)

	// Matches a featuring marker and everything word-like after it. Greedy:
	// trailing co-artist text after the marker is stripped too.
	featuringRe = regexp.MustCompile(`(feat\.|ft\.|featuring|with|feat|ft)\s+[\p{L}\p{N}_\s,&]+`)

	trackCharsRe  = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	artistCharsRe = regexp.MustCompile(`[^\p{L}\p{N}_\s,&]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// artistSeparators are checked in priority order; the first one present wins.
var artistSeparators = []string{",", " & ", " and ", " with "}

// Normalize canonicalizes a track title or artist credit for comparison.
//
// Track titles lose parenthesized and bracketed annotations; artist credits
// lose a leading "the " and have multi-artist lists sorted so that ordering
// differences between services do not defeat equality. Featuring clauses are
// removed for both roles.
func Normalize(text string, role Role) string {
	normalized := strings.TrimSpace(strings.ToLower(text))

	if role == TrackRole {
		normalized = parensRe.ReplaceAllString(normalized, "")
		normalized = bracketsRe.ReplaceAllString(normalized, "")
	} else {
		normalized = strings.TrimPrefix(normalized, "the ")
	}

	normalized = featuringRe.ReplaceAllString(normalized, "")

	if role == ArtistRole {
		normalized = artistCharsRe.ReplaceAllString(normalized, "")
	} else {
		normalized = trackCharsRe.ReplaceAllString(normalized, "")
	}

	normalized = whitespaceRe.ReplaceAllString(normalized, " ")

	if role == ArtistRole {
		for _, sep := range artistSeparators {
			if strings.Contains(normalized, sep) {
				parts := strings.Split(normalized, sep)
				for i, p := range parts {
					parts[i] = strings.TrimSpace(p)
				}
				sort.Strings(parts)
				normalized = strings.Join(parts, ", ")
				break
			}
		}
	}

	return strings.TrimSpace(normalized)
}
