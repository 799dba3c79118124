package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sync"
)

//go:embed musickit.html
var musickitFS embed.FS

// MusicKitResult contains the outcome of a MusicKit authorization flow.
type MusicKitResult struct {
	// UserToken is the Music-User-Token granted by the user.
	UserToken string
	err       error
}

func (m *MusicKitResult) Error() error {
	return m.err
}

// MusicKitHandler serves the embedded MusicKit authorization page and
// captures the Music-User-Token the page posts back after the user grants
// access. Implements the Handler interface for registration with a Router.
type MusicKitHandler struct {
	developerToken string
	tmpl           *template.Template
	resultChan     chan MusicKitResult
	once           sync.Once
}

// NewMusicKitHandler creates a handler that authorizes against Apple Music
// using the given developer token.
func NewMusicKitHandler(developerToken string) (*MusicKitHandler, error) {
	tmpl, err := template.ParseFS(musickitFS, "musickit.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse musickit page: %w", err)
	}

	return &MusicKitHandler{
		developerToken: developerToken,
		tmpl:           tmpl,
		resultChan:     make(chan MusicKitResult, 1),
	}, nil
}

// Routes returns the HTTP routes this handler serves.
func (h *MusicKitHandler) Routes() []string {
	return []string{"/applemusic", "/applemusic/token"}
}

// ServeHTTP renders the authorization page on GET and accepts the posted
// Music-User-Token on POST.
func (h *MusicKitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet:
		w.Header().Set("Content-Type", "text/html")
		if err := h.tmpl.Execute(w, map[string]string{"DeveloperToken": h.developerToken}); err != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	case r.Method == http.MethodPost:
		var payload struct {
			MusicUserToken string `json:"musicUserToken"`
			Error          string `json:"error"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if payload.MusicUserToken == "" {
			h.Send(MusicKitResult{err: fmt.Errorf("authorization failed: %s", payload.Error)})
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			return
		}

		h.Send(MusicKitResult{UserToken: payload.MusicUserToken})
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Send sends the MusicKit result through the channel (only once).
func (h *MusicKitHandler) Send(result MusicKitResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *MusicKitHandler) Result() <-chan MusicKitResult {
	return h.resultChan
}
