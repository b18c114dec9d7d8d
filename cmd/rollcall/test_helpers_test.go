package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"rollcall/internal/config"
	"rollcall/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, zoomBaseURL, zoomAuthURL string, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	if zoomBaseURL != "" {
		opts = append([]testsupport.ConfigOption{testsupport.WithZoomEndpoints(zoomBaseURL, zoomAuthURL)}, opts...)
	}
	cfg := testsupport.NewConfig(t, opts...)

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	full := args
	if configPath != "" {
		full = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(full)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}

// newZoomStub serves the token endpoint plus canned meeting, occurrence, and
// participant payloads for one recurring meeting.
func newZoomStub(t *testing.T, meetingID, topic string, occurrences map[string][]map[string]string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "stub-token",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/report/meetings/"+meetingID, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"topic": topic})
	})
	mux.HandleFunc("/past_meetings/"+meetingID+"/instances", func(w http.ResponseWriter, r *http.Request) {
		var instances []map[string]string
		for uuid := range occurrences {
			instances = append(instances, map[string]string{
				"uuid":       uuid,
				"start_time": occurrenceStart(uuid),
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"meetings": instances})
	})
	for uuid, participants := range occurrences {
		participants := participants
		mux.HandleFunc("/report/meetings/"+uuid+"/participants", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"participants":    participants,
				"next_page_token": "",
			})
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// occurrenceStart derives a deterministic start timestamp from the uuid
// length so stubbed occurrences with distinct-length uuids land on their own
// report dates.
func occurrenceStart(uuid string) string {
	day := 1 + len(uuid)%27
	return fmt.Sprintf("2020-05-%02dT10:00:00Z", day)
}
