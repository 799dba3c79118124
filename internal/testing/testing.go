// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/achandy/harmony/internal/models"
	"github.com/achandy/harmony/internal/services"
)

// MockService is a configurable test double for [services.StreamingService].
type MockService struct {
	ServiceName string
	SvcProfile  services.SearchProfile
	Playlists   []models.Playlist
	Tracks      map[string][]models.Track
	SearchFn    func(query string, types []string, limit int) (map[string]any, error)
	CreatedID   string
	Added       map[string][]string
	Err         error
}

var _ services.StreamingService = (*MockService)(nil)

func (m *MockService) Name() string {
	if m.ServiceName == "" {
		return "mock"
	}
	return m.ServiceName
}

func (m *MockService) Profile() services.SearchProfile {
	return m.SvcProfile
}

func (m *MockService) Search(ctx context.Context, query string, types []string, limit int) (map[string]any, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.SearchFn != nil {
		return m.SearchFn(query, types, limit)
	}
	return map[string]any{}, nil
}

func (m *MockService) GetUserPlaylists(ctx context.Context, limit int) ([]models.Playlist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Playlists, nil
}

func (m *MockService) GetPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]models.Track, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tracks[playlistID], nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.CreatedID, nil
}

func (m *MockService) AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error {
	if m.Err != nil {
		return m.Err
	}
	if m.Added == nil {
		m.Added = map[string][]string{}
	}
	m.Added[playlistID] = append(m.Added[playlistID], trackIDs...)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
