package tasks

import (
	"fmt"

	"github.com/achandy/harmony/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSource Phase = iota
	ResolvePlaylist
	DiffTracks
	ResolveTracks
	SubmitBatch
	Report
)

func (p Phase) String() string {
	switch p {
	case FetchSource:
		return "fetch_source"
	case ResolvePlaylist:
		return "resolve_playlist"
	case DiffTracks:
		return "diff_tracks"
	case ResolveTracks:
		return "resolve_tracks"
	case SubmitBatch:
		return "submit_batch"
	case Report:
		return "report"
	default:
		return ""
	}
}

func fetchSourceUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching source playlist (%s)...", name),
	}
}

func matchedPlaylistUpdate(pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolvePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found matching playlist: %s (ID: %s)", pl.Name, pl.ID),
		Data:    pl,
	}
}

func createdPlaylistUpdate(name, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolvePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("No matching playlist found. Created: %s (ID: %s)", name, id),
	}
}

func diffTracksUpdate(existing int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DiffTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Comparing against %d existing tracks...", existing),
	}
}

func resolveTrackUpdate(step, total int, tr *models.Track) ProgressUpdate {
	if tr == nil {
		return ProgressUpdate{
			Phase:   ResolveTracks,
			Step:    step,
			Total:   total,
			Message: "Searching for missing tracks...",
		}
	}
	return ProgressUpdate{
		Phase:   ResolveTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, tr.Artist, tr.Name),
	}
}

func submitBatchUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SubmitBatch,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Adding %d tracks to target playlist...", count),
	}
}

func reportUpdate(result *models.SyncResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Report,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Synced %d/%d tracks", result.SyncedTracks, result.TotalTracks),
		Data:    result,
	}
}
