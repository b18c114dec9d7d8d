package testsupport

import (
	"context"
	"testing"

	"rollcall/internal/config"
	"rollcall/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	db, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// SeedMeeting creates a meeting row for tests using the provided store.
func SeedMeeting(t testing.TB, db *store.Store, id, topic string) *store.Meeting {
	t.Helper()

	meeting, _, err := db.GetOrCreateMeeting(context.Background(), id, topic)
	if err != nil {
		t.Fatalf("store.GetOrCreateMeeting: %v", err)
	}
	return meeting
}

// SeedOccurrence creates an occurrence row for tests.
func SeedOccurrence(t testing.TB, db *store.Store, uuid, meetingID, startTime string) *store.Occurrence {
	t.Helper()

	occurrence, _, err := db.GetOrCreateOccurrence(context.Background(), uuid, meetingID, startTime)
	if err != nil {
		t.Fatalf("store.GetOrCreateOccurrence: %v", err)
	}
	return occurrence
}

// SeedParticipant creates a participant row for tests.
func SeedParticipant(t testing.TB, db *store.Store, zoomUserID, name, email string) *store.Participant {
	t.Helper()

	participant, err := db.CreateParticipant(context.Background(), zoomUserID, name, email)
	if err != nil {
		t.Fatalf("store.CreateParticipant: %v", err)
	}
	return participant
}
