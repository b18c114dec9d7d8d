package store

import (
	"context"
	"fmt"
)

// EnsureAttendance records that a participant attended an occurrence. The
// (occurrence, participant) pair is unique; repeat calls collapse onto the
// existing link and report created=false.
func (s *Store) EnsureAttendance(ctx context.Context, occurrenceUUID, participantID string) (bool, error) {
	res, err := s.execWithRetry(ctx,
		`INSERT INTO attendance (occurrence_uuid, participant_id, created_at)
         VALUES (?, ?, ?)
         ON CONFLICT (occurrence_uuid, participant_id) DO NOTHING`,
		occurrenceUUID, participantID, nowTimestamp(),
	)
	if err != nil {
		return false, fmt.Errorf("insert attendance %s/%s: %w", occurrenceUUID, participantID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ParticipantsForOccurrence returns the participants linked to an occurrence
// in attendance-link creation order, which equals first-appearance order for
// a freshly ingested occurrence.
func (s *Store) ParticipantsForOccurrence(ctx context.Context, occurrenceUUID string) ([]Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.zoom_user_id, p.name, p.email
         FROM participants p
         JOIN attendance a ON a.participant_id = p.id
         WHERE a.occurrence_uuid = ?
         ORDER BY a.id`, occurrenceUUID)
	if err != nil {
		return nil, fmt.Errorf("select participants for %s: %w", occurrenceUUID, err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.ID, &p.ZoomUserID, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// AttendanceCount returns the number of attendance links for an occurrence.
func (s *Store) AttendanceCount(ctx context.Context, occurrenceUUID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM attendance WHERE occurrence_uuid = ?`, occurrenceUUID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attendance for %s: %w", occurrenceUUID, err)
	}
	return count, nil
}
