// package formatter renders sync results and history as plain text and CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/achandy/harmony/internal/models"
	"github.com/achandy/harmony/internal/repositories"
)

// ResultToText renders a SyncResult as a plain text report.
func ResultToText(result *models.SyncResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", result.PlaylistName))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n", result.TotalTracks))
	buf.WriteString(fmt.Sprintf("Synced: %d\n", result.SyncedTracks))
	buf.WriteString(fmt.Sprintf("Failed: %d\n", len(result.Failed)))

	if len(result.Failed) > 0 {
		buf.WriteString("\nUnresolved tracks:\n")
		for i, f := range result.Failed {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, f))
		}
	}

	return buf.Bytes()
}

// ResultToCSV renders a SyncResult's failed tracks as CSV with columns:
// Playlist, Track, Status
func ResultToCSV(result *models.SyncResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Playlist", "Track", "Status"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, f := range result.Failed {
		if err := writer.Write([]string{result.PlaylistName, f, "failed"}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteResultCSV writes the failed-track CSV next to the caller's working
// directory. Defaults to {playlist}_failed.csv.
func WriteResultCSV(result *models.SyncResult, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_failed.csv", result.PlaylistName)
	}

	data, err := ResultToCSV(result)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// HistoryToText renders recorded sync runs as a plain text table.
func HistoryToText(runs []repositories.SyncRun) []byte {
	var buf bytes.Buffer

	if len(runs) == 0 {
		buf.WriteString("No sync runs recorded.\n")
		return buf.Bytes()
	}

	for i, run := range runs {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s → %s: %q synced %s of %s\n",
			i+1,
			run.CreatedAt.Format("2006-01-02 15:04"),
			run.SourceService,
			run.TargetService,
			run.PlaylistName,
			strconv.Itoa(run.SyncedTracks),
			strconv.Itoa(run.TotalTracks),
		))
		for _, f := range run.Failed {
			buf.WriteString(fmt.Sprintf("   failed: %s\n", f))
		}
	}

	return buf.Bytes()
}
