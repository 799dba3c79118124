package tasks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/achandy/harmony/internal/services"
)

const fallbackScanLimit = 5

var parentheticalRe = regexp.MustCompile(`\([^)]*\)`)

// TrackResolver finds a track's identifier on a target service by catalog
// search, trying progressively looser queries. The target's [services.SearchProfile]
// tells the resolver how to read the service-native response and whether the
// looser strategies apply.
type TrackResolver struct {
	target services.StreamingService
}

// NewTrackResolver creates a resolver searching against the given service.
func NewTrackResolver(target services.StreamingService) *TrackResolver {
	return &TrackResolver{target: target}
}

// Resolve searches the target catalog for a track and returns its id, or ""
// when no strategy produced a match. A search error is returned to the caller,
// which treats it as a resolution failure for that track only.
//
// Strategies, stopping at the first hit:
//
//  1. query "name artist", one result
//  2. (strict-search services only) query the name alone, scan up to five
//     results for an artist containment match in either direction
//  3. (strict-search services only) strip parenthetical content from the name
//     and re-query "name artist" for one result
func (r *TrackResolver) Resolve(ctx context.Context, name, artist string) (string, error) {
	profile := r.target.Profile()

	query := fmt.Sprintf("%s %s", name, artist)
	id, err := r.firstResultID(ctx, query, profile)
	if err != nil || id != "" {
		return id, err
	}

	if !profile.ExtraFallbacks {
		return "", nil
	}

	id, err = r.scanByArtist(ctx, name, artist, profile)
	if err != nil || id != "" {
		return id, err
	}

	simplified := strings.TrimSpace(parentheticalRe.ReplaceAllString(name, ""))
	query = fmt.Sprintf("%s %s", simplified, artist)
	return r.firstResultID(ctx, query, profile)
}

// firstResultID runs a single-result search and extracts the first item's id.
func (r *TrackResolver) firstResultID(ctx context.Context, query string, profile services.SearchProfile) (string, error) {
	result, err := r.target.Search(ctx, query, profile.SongTypes, 1)
	if err != nil {
		return "", err
	}

	items := navigateItems(result, profile.ResultPath)
	if len(items) == 0 {
		return "", nil
	}

	return itemID(items[0]), nil
}

// scanByArtist searches by track name alone and picks the first result whose
// artist contains, or is contained by, the wanted artist (case-insensitive).
func (r *TrackResolver) scanByArtist(ctx context.Context, name, artist string, profile services.SearchProfile) (string, error) {
	result, err := r.target.Search(ctx, name, profile.SongTypes, fallbackScanLimit)
	if err != nil {
		return "", err
	}

	wanted := strings.ToLower(artist)
	for _, item := range navigateItems(result, profile.ResultPath) {
		got := strings.ToLower(itemArtist(item, profile.ArtistPath))
		if got == "" {
			continue
		}
		if strings.Contains(got, wanted) || strings.Contains(wanted, got) {
			return itemID(item), nil
		}
	}

	return "", nil
}

// navigateItems walks a decoded JSON structure along path and returns the
// list found there, or nil when the shape does not match.
func navigateItems(result map[string]any, path []string) []any {
	var current any = result
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}

	items, ok := current.([]any)
	if !ok {
		return nil
	}
	return items
}

// itemID extracts the "id" field from a decoded result item.
func itemID(item any) string {
	m, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	id, _ := m["id"].(string)
	return id
}

// itemArtist walks a result item along path to its artist name string.
func itemArtist(item any, path []string) string {
	current := item
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = m[key]
	}
	artist, _ := current.(string)
	return artist
}
