package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetOrCreateMeeting returns the meeting with the given external id, creating
// it with the supplied topic when absent. The second return reports whether a
// new row was created; an existing meeting's topic is never updated.
func (s *Store) GetOrCreateMeeting(ctx context.Context, id, topic string) (*Meeting, bool, error) {
	res, err := s.execWithRetry(ctx,
		`INSERT INTO meetings (id, topic, created_at) VALUES (?, ?, ?)
         ON CONFLICT (id) DO NOTHING`,
		id, topic, nowTimestamp(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert meeting %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	meeting, err := s.GetMeeting(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return meeting, affected > 0, nil
}

// GetMeeting fetches a meeting by external id, returning nil when absent.
func (s *Store) GetMeeting(ctx context.Context, id string) (*Meeting, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, topic FROM meetings WHERE id = ?`, id)
	var meeting Meeting
	if err := row.Scan(&meeting.ID, &meeting.Topic); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select meeting %s: %w", id, err)
	}
	return &meeting, nil
}

// GetOrCreateOccurrence returns the occurrence with the given uuid, creating
// it when absent. Start time and meeting binding are fixed at creation.
func (s *Store) GetOrCreateOccurrence(ctx context.Context, uuid, meetingID, startTime string) (*Occurrence, bool, error) {
	res, err := s.execWithRetry(ctx,
		`INSERT INTO occurrences (uuid, meeting_id, start_time, resolved, created_at)
         VALUES (?, ?, ?, 0, ?)
         ON CONFLICT (uuid) DO NOTHING`,
		uuid, meetingID, startTime, nowTimestamp(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert occurrence %s: %w", uuid, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	occurrence, err := s.GetOccurrence(ctx, uuid)
	if err != nil {
		return nil, false, err
	}
	return occurrence, affected > 0, nil
}

// GetOccurrence fetches an occurrence by uuid, returning nil when absent.
func (s *Store) GetOccurrence(ctx context.Context, uuid string) (*Occurrence, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT uuid, meeting_id, start_time, resolved FROM occurrences WHERE uuid = ?`, uuid)
	occurrence, err := scanOccurrence(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select occurrence %s: %w", uuid, err)
	}
	return occurrence, nil
}

// OccurrencesForMeeting lists a meeting's known occurrences ordered by start
// time.
func (s *Store) OccurrencesForMeeting(ctx context.Context, meetingID string) ([]Occurrence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT uuid, meeting_id, start_time, resolved FROM occurrences
         WHERE meeting_id = ? ORDER BY start_time, uuid`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("select occurrences for %s: %w", meetingID, err)
	}
	defer rows.Close()

	var occurrences []Occurrence
	for rows.Next() {
		occurrence, err := scanOccurrence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan occurrence: %w", err)
		}
		occurrences = append(occurrences, *occurrence)
	}
	return occurrences, rows.Err()
}

// MarkOccurrenceResolved flips the occurrence's resolved flag. Idempotent;
// the flag is never reset.
func (s *Store) MarkOccurrenceResolved(ctx context.Context, uuid string) error {
	if _, err := s.execWithRetry(ctx,
		`UPDATE occurrences SET resolved = 1 WHERE uuid = ?`, uuid); err != nil {
		return fmt.Errorf("mark occurrence %s resolved: %w", uuid, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOccurrence(row scanner) (*Occurrence, error) {
	var occurrence Occurrence
	var resolved int
	if err := row.Scan(&occurrence.UUID, &occurrence.MeetingID, &occurrence.StartTime, &resolved); err != nil {
		return nil, err
	}
	occurrence.Resolved = resolved != 0
	return &occurrence, nil
}
