package formatter

import (
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/achandy/harmony/internal/models"
	"github.com/achandy/harmony/internal/repositories"
	tu "github.com/achandy/harmony/internal/testing"
)

func sampleResult() *models.SyncResult {
	return &models.SyncResult{
		PlaylistName: "Workout Mix",
		TotalTracks:  3,
		SyncedTracks: 1,
		Failed:       []string{"zebra waltz - quartet nine"},
	}
}

func TestResultToText(t *testing.T) {
	out := string(ResultToText(sampleResult()))

	for _, want := range []string{"Workout Mix", "Tracks: 3", "Synced: 1", "Failed: 1", "zebra waltz"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResultToText_NoFailures(t *testing.T) {
	out := string(ResultToText(&models.SyncResult{PlaylistName: "Mix", TotalTracks: 2, SyncedTracks: 2}))

	if strings.Contains(out, "Unresolved") {
		t.Errorf("unexpected failure section:\n%s", out)
	}
}

func TestResultToCSV(t *testing.T) {
	data, err := ResultToCSV(sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if records[1][1] != "zebra waltz - quartet nine" {
		t.Errorf("row = %v", records[1])
	}
}

func TestWriteResultCSV(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "failed.csv")

		got, err := WriteResultCSV(sampleResult(), path)
		if err != nil {
			t.Fatal(err)
		}
		if got != path {
			t.Errorf("path = %q, want %q", got, path)
		}

		tu.AssertFileExists(t, path)
	})

	t.Run("default filename from playlist name", func(t *testing.T) {
		wd := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, wd)

		got, err := WriteResultCSV(sampleResult(), "")
		if err != nil {
			t.Fatal(err)
		}
		if got != "Workout Mix_failed.csv" {
			t.Errorf("path = %q, want %q", got, "Workout Mix_failed.csv")
		}

		tu.AssertFileExists(t, got)
		if content := tu.MustReadFile(t, got); !strings.Contains(content, "zebra waltz - quartet nine") {
			t.Errorf("csv missing failed track:\n%s", content)
		}
	})
}

func TestHistoryToText(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := string(HistoryToText(nil))
		if !strings.Contains(out, "No sync runs") {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("runs with failures", func(t *testing.T) {
		runs := []repositories.SyncRun{
			{
				SourceService: "Spotify",
				TargetService: "Apple Music",
				PlaylistName:  "Mix",
				TotalTracks:   3,
				SyncedTracks:  2,
				Failed:        []string{"lost track - nobody"},
				CreatedAt:     time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
			},
		}

		out := string(HistoryToText(runs))
		for _, want := range []string{"Spotify", "Apple Music", "Mix", "2026-05-01", "lost track"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}
