package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"rollcall/internal/config"
)

// resolveMeetingIDs merges the meeting list from CLI args, an optional
// line-delimited file, and the configuration, in that precedence order.
func resolveMeetingIDs(cfg *config.Config, args []string, meetingsFile string) ([]string, error) {
	if len(args) > 0 {
		return dedupeIDs(args), nil
	}
	if meetingsFile = strings.TrimSpace(meetingsFile); meetingsFile != "" {
		ids, err := readMeetingsFile(meetingsFile)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("meetings file %s contains no meeting ids", meetingsFile)
		}
		return ids, nil
	}
	if len(cfg.Report.MeetingIDs) > 0 {
		return dedupeIDs(cfg.Report.MeetingIDs), nil
	}
	return nil, errors.New("no meetings configured; set report.meeting_ids or pass --meetings-file")
}

// readMeetingsFile parses one meeting id per line. Blank lines and lines
// starting with # are skipped.
func readMeetingsFile(path string) ([]string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("open meetings file: %w", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read meetings file: %w", err)
	}
	return dedupeIDs(ids), nil
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
