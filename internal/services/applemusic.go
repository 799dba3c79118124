// Apple Music API implementation of [StreamingService]
//
// Apple Music API response types based on https://developer.apple.com/documentation/applemusicapi
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/achandy/harmony/internal/models"
	"github.com/achandy/harmony/internal/shared"
)

const (
	appleMusicBaseURL  = "https://api.music.apple.com/v1"
	developerTokenTTL  = 12 * time.Hour
	defaultStorefront  = "us"
	emptyPlaylistError = "No related resources found for tracks"
)

type appleMusicAttributes struct {
	Name       string `json:"name"`
	ArtistName string `json:"artistName"`
}

type appleMusicResource struct {
	ID         string               `json:"id"`
	Type       string               `json:"type"`
	Attributes appleMusicAttributes `json:"attributes"`
}

type appleMusicCollection struct {
	Data []appleMusicResource `json:"data"`
	Next string               `json:"next"`
}

// AppleMusicService implements [StreamingService] for the Apple Music API.
//
// Requests carry two tokens: a developer token (an ES256 JWT signed with the
// MusicKit private key) and the per-user Music-User-Token obtained through
// the MusicKit browser flow.
type AppleMusicService struct {
	developerToken string
	userToken      string
	storefront     string
	httpClient     *http.Client
	baseURL        string
}

// NewAppleMusicService creates a new Apple Music service, signing a fresh
// developer token from the configured key material.
func NewAppleMusicService(cfg shared.AppleMusicConfig) (*AppleMusicService, error) {
	devToken, err := GenerateDeveloperToken(cfg)
	if err != nil {
		return nil, err
	}

	storefront := cfg.Storefront
	if storefront == "" {
		storefront = defaultStorefront
	}

	return &AppleMusicService{
		developerToken: devToken,
		userToken:      cfg.MusicUserToken,
		storefront:     storefront,
		httpClient:     http.DefaultClient,
		baseURL:        appleMusicBaseURL,
	}, nil
}

// GenerateDeveloperToken signs an ES256 developer token valid for 12 hours
// from the MusicKit key referenced by the config.
func GenerateDeveloperToken(cfg shared.AppleMusicConfig) (string, error) {
	if cfg.TeamID == "" || cfg.KeyID == "" || cfg.PrivateKeyPath == "" {
		return "", fmt.Errorf("%w: apple music team_id, key_id and private_key_path required", shared.ErrMissingCredentials)
	}

	pemData, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return "", fmt.Errorf("failed to read private key: %w", err)
	}

	key, err := jwt.ParseECPrivateKeyFromPEM(pemData)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse private key: %v", shared.ErrInvalidCredentials, err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": cfg.TeamID,
		"iat": now.Unix(),
		"exp": now.Add(developerTokenTTL).Unix(),
	})
	token.Header["kid"] = cfg.KeyID

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign developer token: %w", err)
	}

	return signed, nil
}

func (s *AppleMusicService) Name() string {
	return "Apple Music"
}

// Profile returns the Apple Music search configuration. Catalog search is
// stricter than Spotify's, so the resolver's extra fallback strategies are
// enabled; results live under results.songs.data and a result's artist under
// attributes.artistName.
func (s *AppleMusicService) Profile() SearchProfile {
	return SearchProfile{
		SongTypes:      []string{"songs"},
		ResultPath:     []string{"results", "songs", "data"},
		ArtistPath:     []string{"attributes", "artistName"},
		ExtraFallbacks: true,
	}
}

// SetUserToken installs the Music-User-Token captured by the auth flow.
func (s *AppleMusicService) SetUserToken(token string) {
	s.userToken = token
}

// do performs an HTTP request with both Apple Music tokens attached.
func (s *AppleMusicService) do(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.developerToken)
	req.Header.Set("Content-Type", "application/json")
	if s.userToken != "" {
		req.Header.Set("Music-User-Token", s.userToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return resp, nil
}

// doRequest performs a request and decodes a 2xx response into result.
func (s *AppleMusicService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	resp, err := s.do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: apple music returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search performs a catalog search against the configured storefront. A
// failed search returns the empty result structure rather than an error so
// the resolver can fall through to its next strategy.
func (s *AppleMusicService) Search(ctx context.Context, query string, types []string, limit int) (map[string]any, error) {
	if limit <= 0 {
		limit = 1
	}

	endpoint := fmt.Sprintf("/catalog/%s/search?term=%s&types=%s&limit=%d",
		s.storefront, url.QueryEscape(query), url.QueryEscape(strings.Join(types, ",")), limit)

	empty := map[string]any{"results": map[string]any{}}

	resp, err := s.do(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return empty, nil
	}

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return empty, nil
	}

	return result, nil
}

// GetUserPlaylists retrieves the user's library playlists.
func (s *AppleMusicService) GetUserPlaylists(ctx context.Context, limit int) ([]models.Playlist, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	endpoint := fmt.Sprintf("/me/library/playlists?limit=%d", limit)

	var response appleMusicCollection
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, 0, len(response.Data))
	for _, p := range response.Data {
		playlists = append(playlists, models.Playlist{ID: p.ID, Name: p.Attributes.Name})
	}

	return playlists, nil
}

// GetPlaylistTracks retrieves the tracks of a library playlist. Apple Music
// answers 404 for a playlist with no tracks; that case is normalized to an
// empty slice.
func (s *AppleMusicService) GetPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]models.Track, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	endpoint := fmt.Sprintf("/me/library/playlists/%s/tracks?limit=%d", playlistID, limit)

	resp, err := s.do(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		data, _ := io.ReadAll(resp.Body)
		if strings.Contains(string(data), emptyPlaylistError) {
			return []models.Track{}, nil
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: apple music returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var response appleMusicCollection
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	tracks := make([]models.Track, 0, len(response.Data))
	for _, item := range response.Data {
		name := item.Attributes.Name
		if name == "" {
			name = models.UnknownTrack
		}
		artist := item.Attributes.ArtistName
		if artist == "" {
			artist = models.UnknownArtist
		}
		tracks = append(tracks, models.Track{ID: item.ID, Name: name, Artist: artist})
	}

	return tracks, nil
}

// CreatePlaylist creates a library playlist and returns its id.
func (s *AppleMusicService) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	body := map[string]any{
		"attributes": map[string]any{
			"name":        name,
			"description": description,
		},
	}

	var created appleMusicCollection
	if err := s.doRequest(ctx, "POST", "/me/library/playlists", body, &created); err != nil {
		return "", err
	}

	if len(created.Data) == 0 {
		return "", fmt.Errorf("%w: playlist creation returned no data", shared.ErrAPIRequest)
	}

	return created.Data[0].ID, nil
}

// AddTracksToPlaylist adds catalog songs to a library playlist in one call.
func (s *AppleMusicService) AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error {
	data := make([]map[string]string, 0, len(trackIDs))
	for _, id := range trackIDs {
		data = append(data, map[string]string{"id": id, "type": "songs"})
	}

	body := map[string]any{"data": data}
	endpoint := fmt.Sprintf("/me/library/playlists/%s/tracks", playlistID)

	return s.doRequest(ctx, "POST", endpoint, body, nil)
}

// HeavyRotation retrieves the user's most-played resources.
func (s *AppleMusicService) HeavyRotation(ctx context.Context, limit int) ([]models.Track, error) {
	if limit <= 0 || limit > 10 {
		limit = 10
	}

	endpoint := fmt.Sprintf("/me/history/heavy-rotation?limit=%d", limit)

	var response appleMusicCollection
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Data))
	for _, item := range response.Data {
		name := item.Attributes.Name
		if name == "" {
			name = models.UnknownTrack
		}
		artist := item.Attributes.ArtistName
		if artist == "" {
			artist = models.UnknownArtist
		}
		tracks = append(tracks, models.Track{ID: item.ID, Name: name, Artist: artist})
	}

	return tracks, nil
}
