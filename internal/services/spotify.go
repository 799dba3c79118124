// Spotify API implementation of [StreamingService]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/achandy/harmony/internal/models"
	"github.com/achandy/harmony/internal/shared"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyArtist represents a Spotify artist credit on a track.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	URI     string          `json:"uri"`
}

// SpotifyPlaylist represents a Spotify playlist object.
type SpotifyPlaylist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SpotifyPaginatedPlaylists represents a paginated response of playlists.
type SpotifyPaginatedPlaylists struct {
	Items []SpotifyPlaylist `json:"items"`
	Total int               `json:"total"`
	Next  *string           `json:"next"`
}

type spotifyPlaylistTrackItem struct {
	Track SpotifyTrack `json:"track"`
}

type spotifyPaginatedPlaylistTracks struct {
	Items []spotifyPlaylistTrackItem `json:"items"`
	Total int                        `json:"total"`
	Next  *string                    `json:"next"`
}

type spotifyUser struct {
	ID string `json:"id"`
}

// SpotifyService implements [StreamingService] for the Spotify Web API.
// Uses [oauth2] for authentication.
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	baseURL    string
	userID     string
}

// NewSpotifyService creates a new Spotify service with the given credentials.
// Saved tokens from a previous auth flow are picked up from the config.
func NewSpotifyService(cfg shared.SpotifyConfig) (*SpotifyService, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret required", shared.ErrMissingCredentials)
	}

	redirectURI := cfg.RedirectURI
	if redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-private",
			"playlist-read-private",
			"playlist-read-collaborative",
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	svc := &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
	}

	if cfg.AccessToken != "" {
		svc.token = &oauth2.Token{
			AccessToken:  cfg.AccessToken,
			RefreshToken: cfg.RefreshToken,
		}
	}

	return svc, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Profile returns the Spotify search configuration: track results live under
// tracks.items and the default strategy suffices.
func (s *SpotifyService) Profile() SearchProfile {
	return SearchProfile{
		SongTypes:  []string{"track"},
		ResultPath: []string{"tracks", "items"},
	}
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// OAuthConfig exposes the underlying [oauth2.Config] for the callback server
// to exchange the authorization code.
func (s *SpotifyService) OAuthConfig() *oauth2.Config {
	return s.config
}

// SetToken installs a token obtained from a completed auth flow.
func (s *SpotifyService) SetToken(token *oauth2.Token) {
	s.token = token
}

// doRequest performs an authenticated HTTP request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: run the spotify auth flow first", shared.ErrNotAuthenticated)
	}

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search performs a catalog search. No-result queries return the decoded
// empty response body, not an error.
func (s *SpotifyService) Search(ctx context.Context, query string, types []string, limit int) (map[string]any, error) {
	if limit <= 0 {
		limit = 1
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=%s&limit=%d",
		url.QueryEscape(query), url.QueryEscape(strings.Join(types, ",")), limit)

	var result map[string]any
	if err := s.doRequest(ctx, "GET", endpoint, nil, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// GetUserPlaylists retrieves the authenticated user's playlists.
func (s *SpotifyService) GetUserPlaylists(ctx context.Context, limit int) ([]models.Playlist, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/me/playlists?limit=%d", limit)

	var response SpotifyPaginatedPlaylists
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, 0, len(response.Items))
	for _, p := range response.Items {
		playlists = append(playlists, models.Playlist{ID: p.ID, Name: p.Name})
	}

	return playlists, nil
}

// GetPlaylistTracks retrieves the tracks of a playlist. Multi-artist credits
// are flattened to a comma-joined string; missing metadata is replaced with
// the Unknown placeholders.
func (s *SpotifyService) GetPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]models.Track, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d", playlistID, limit)

	var response spotifyPaginatedPlaylistTracks
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Items))
	for _, item := range response.Items {
		name := item.Track.Name
		if name == "" {
			name = models.UnknownTrack
		}

		var names []string
		for _, a := range item.Track.Artists {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}
		artist := strings.Join(names, ", ")
		if artist == "" {
			artist = models.UnknownArtist
		}

		tracks = append(tracks, models.Track{ID: item.Track.ID, Name: name, Artist: artist})
	}

	return tracks, nil
}

// CreatePlaylist creates a private playlist for the authenticated user and
// returns its id.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	userID, err := s.currentUserID(ctx)
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      false,
	}

	var created SpotifyPlaylist
	endpoint := fmt.Sprintf("/users/%s/playlists", userID)
	if err := s.doRequest(ctx, "POST", endpoint, body, &created); err != nil {
		return "", err
	}

	return created.ID, nil
}

// AddTracksToPlaylist adds tracks to a playlist in a single call.
func (s *SpotifyService) AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error {
	uris := make([]string, 0, len(trackIDs))
	for _, id := range trackIDs {
		if !strings.HasPrefix(id, "spotify:track:") {
			id = "spotify:track:" + id
		}
		uris = append(uris, id)
	}

	body := map[string]any{"uris": uris}
	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)

	return s.doRequest(ctx, "POST", endpoint, body, nil)
}

// currentUserID fetches and caches the authenticated user's id.
func (s *SpotifyService) currentUserID(ctx context.Context) (string, error) {
	if s.userID != "" {
		return s.userID, nil
	}

	var user spotifyUser
	if err := s.doRequest(ctx, "GET", "/me", nil, &user); err != nil {
		return "", err
	}

	s.userID = user.ID
	return s.userID, nil
}
