package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/automat-io/automat/internal/models"
)

// WriteRunLog saves a batch run transcript: a header block followed by one
// line per log feed entry.
func WriteRunLog(header models.RunLog, entries []models.LogEntry) (*models.RunLog, error) {
	if err := EnsureGlobalLogsDir(); err != nil {
		return nil, fmt.Errorf("failed to ensure logs dir: %w", err)
	}

	logsDir, err := GlobalLogsDir()
	if err != nil {
		return nil, err
	}

	if header.EndedAt == "" {
		header.EndedAt = time.Now().UTC().Format(time.RFC3339)
	}

	filePath := filepath.Join(logsDir, header.RunID+".log")
	f, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "run_id: %s\n", header.RunID)
	fmt.Fprintf(w, "started_at: %s\n", header.StartedAt)
	fmt.Fprintf(w, "ended_at: %s\n", header.EndedAt)
	fmt.Fprintf(w, "succeeded: %d\n", header.Succeeded)
	fmt.Fprintf(w, "failed: %d\n", header.Failed)
	fmt.Fprintf(w, "status: %s\n", header.Status)
	fmt.Fprintln(w, "---")

	for _, e := range entries {
		fmt.Fprintf(w, "[%s] %-7s %s\n", e.Timestamp, e.Level, e.Message)
	}

	return &header, w.Flush()
}

// ListRunLogs returns the metadata of all saved runs, newest first.
func ListRunLogs() ([]*models.RunLog, error) {
	logsDir, err := GlobalLogsDir()
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(logsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	type savedRun struct {
		header  *models.RunLog
		written time.Time
	}
	var saved []savedRun
	for _, e := range dirEntries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") || e.Name() == TUILogFileName {
			continue
		}
		data, err := os.ReadFile(filepath.Join(logsDir, e.Name()))
		if err != nil {
			continue
		}
		header, _ := parseRunLog(string(data))
		if header == nil {
			continue
		}
		if header.RunID == "" {
			header.RunID = strings.TrimSuffix(e.Name(), ".log")
		}
		var written time.Time
		if info, err := e.Info(); err == nil {
			written = info.ModTime()
		}
		saved = append(saved, savedRun{header, written})
	}

	// StartedAt has second resolution; runs started in the same second are
	// ordered by when their transcript was written, then by ID.
	sort.SliceStable(saved, func(i, j int) bool {
		a, b := saved[i], saved[j]
		if a.header.StartedAt != b.header.StartedAt {
			return a.header.StartedAt > b.header.StartedAt
		}
		if !a.written.Equal(b.written) {
			return a.written.After(b.written)
		}
		return a.header.RunID > b.header.RunID
	})

	logs := make([]*models.RunLog, len(saved))
	for i, r := range saved {
		logs[i] = r.header
	}
	return logs, nil
}

// ReadRunLog reads a saved run and returns its header and transcript body.
func ReadRunLog(runID string) (*models.RunLog, string, error) {
	logsDir, err := GlobalLogsDir()
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(filepath.Join(logsDir, runID+".log"))
	if err != nil {
		return nil, "", fmt.Errorf("log not found: %w", err)
	}

	header, body := parseRunLog(string(data))
	if header == nil {
		return nil, "", fmt.Errorf("invalid log format")
	}
	return header, body, nil
}

func parseRunLog(content string) (*models.RunLog, string) {
	lines := strings.Split(content, "\n")
	header := &models.RunLog{}
	headerEnd := -1
	inHeader := false

	for i, line := range lines {
		if line == "---" {
			if !inHeader {
				inHeader = true
				continue
			}
			headerEnd = i
			break
		}
		if inHeader {
			parseRunLogHeaderLine(header, line)
		}
	}

	if headerEnd < 0 {
		return nil, ""
	}
	return header, strings.Join(lines[headerEnd+1:], "\n")
}

func parseRunLogHeaderLine(header *models.RunLog, line string) {
	k, v, ok := strings.Cut(line, ": ")
	if !ok {
		return
	}
	v = strings.TrimSpace(v)

	switch strings.TrimSpace(k) {
	case "run_id":
		header.RunID = v
	case "started_at":
		header.StartedAt = v
	case "ended_at":
		header.EndedAt = v
	case "succeeded":
		header.Succeeded, _ = strconv.Atoi(v)
	case "failed":
		header.Failed, _ = strconv.Atoi(v)
	case "status":
		header.Status = v
	}
}
