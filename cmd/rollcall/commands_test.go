package main

import (
	"testing"

	"rollcall/internal/testsupport"
)

func TestSyncCommandIngestsMeeting(t *testing.T) {
	server := newZoomStub(t, "7001", "Weekly Standup", map[string][]map[string]string{
		"occ-a": {
			{"id": "z1", "name": "Ann", "user_email": "ann@example.org"},
			{"id": "z2", "name": "Bob", "user_email": "bob@example.org"},
		},
		"occ-bb": {
			{"id": "z3", "name": "Ann", "user_email": "ann@example.org"},
		},
	})
	env := setupCLITestEnv(t, server.URL, server.URL+"/oauth/token")

	out, err := runCLI(t, []string{"sync", "7001"}, env.configPath)
	if err != nil {
		t.Fatalf("sync: %v\n%s", err, out)
	}
	requireContains(t, out, "Synced 7001 (Weekly Standup): 2 occurrences")
}

func TestSyncCommandFailsWithoutMeetings(t *testing.T) {
	env := setupCLITestEnv(t, "", "")

	_, err := runCLI(t, []string{"sync"}, env.configPath)
	if err == nil {
		t.Fatal("expected error when no meetings are configured")
	}
}

func TestParticipantsCommandListsRoster(t *testing.T) {
	server := newZoomStub(t, "7002", "Retro", map[string][]map[string]string{
		"occ-a": {
			{"id": "z1", "name": "Cara", "user_email": "cara@example.org"},
			{"id": "z2", "name": "Dan", "user_email": ""},
		},
	})
	env := setupCLITestEnv(t, server.URL, server.URL+"/oauth/token")

	if out, err := runCLI(t, []string{"sync", "7002"}, env.configPath); err != nil {
		t.Fatalf("sync: %v\n%s", err, out)
	}

	out, err := runCLI(t, []string{"participants", "occ-a"}, env.configPath)
	if err != nil {
		t.Fatalf("participants: %v\n%s", err, out)
	}
	requireContains(t, out, "Cara")
	requireContains(t, out, "cara@example.org")
	requireContains(t, out, "Dan")
}

func TestParticipantsCommandUnknownOccurrence(t *testing.T) {
	env := setupCLITestEnv(t, "", "")

	_, err := runCLI(t, []string{"participants", "missing"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown occurrence")
	}
}

func TestReportCommandDryRunPreviewsMatrix(t *testing.T) {
	server := newZoomStub(t, "7003", "All Hands", map[string][]map[string]string{
		"occ-a": {
			{"id": "z1", "name": "Eve", "user_email": "eve@example.org"},
			{"id": "z2", "name": "Finn", "user_email": "finn@example.org"},
		},
	})
	env := setupCLITestEnv(t, server.URL, server.URL+"/oauth/token", testsupport.WithMeetings("7003"))

	out, err := runCLI(t, []string{"report", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("report --dry-run: %v\n%s", err, out)
	}
	requireContains(t, out, "Meeting ID")
	requireContains(t, out, "All Hands")
	requireContains(t, out, "Dry run; skipping upload")
}

func TestReportCommandFailsWhenAllMeetingsFail(t *testing.T) {
	env := setupCLITestEnv(t, "http://127.0.0.1:1", "http://127.0.0.1:1/oauth/token", testsupport.WithMeetings("nope"))

	_, err := runCLI(t, []string{"report", "--dry-run"}, env.configPath)
	if err == nil {
		t.Fatal("expected error when every meeting fails to ingest")
	}
}

func TestReportCommandReadsMeetingsFile(t *testing.T) {
	server := newZoomStub(t, "7004", "Office Hours", map[string][]map[string]string{
		"occ-a": {
			{"id": "z1", "name": "Gus", "user_email": "gus@example.org"},
		},
	})
	env := setupCLITestEnv(t, server.URL, server.URL+"/oauth/token")

	meetingsPath := env.baseDir + "/meetings.txt"
	writeFile(t, meetingsPath, "# weekly meetings\n7004\n\n")

	out, err := runCLI(t, []string{"report", "--dry-run", "--meetings-file", meetingsPath}, env.configPath)
	if err != nil {
		t.Fatalf("report --meetings-file: %v\n%s", err, out)
	}
	requireContains(t, out, "Office Hours")
}
