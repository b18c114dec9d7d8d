package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// FindParticipantByEmail returns the participant with the given non-empty
// email, or nil when no such row exists.
func (s *Store) FindParticipantByEmail(ctx context.Context, email string) (*Participant, error) {
	return s.findParticipant(ctx, `SELECT id, zoom_user_id, name, email FROM participants WHERE email = ? ORDER BY created_at LIMIT 1`, email)
}

// FindParticipantByName returns the participant with the given exact name
// (case-sensitive), or nil when no such row exists.
func (s *Store) FindParticipantByName(ctx context.Context, name string) (*Participant, error) {
	return s.findParticipant(ctx, `SELECT id, zoom_user_id, name, email FROM participants WHERE name = ? ORDER BY created_at LIMIT 1`, name)
}

// FindParticipantByTransientID returns the anonymous participant (empty name
// and email) recorded under the given session id, or nil when no such row
// exists. Named or emailed rows never match; their session id is incidental.
func (s *Store) FindParticipantByTransientID(ctx context.Context, zoomUserID string) (*Participant, error) {
	return s.findParticipant(ctx, `SELECT id, zoom_user_id, name, email FROM participants WHERE zoom_user_id = ? AND name = '' AND email = '' ORDER BY created_at LIMIT 1`, zoomUserID)
}

func (s *Store) findParticipant(ctx context.Context, query string, arg string) (*Participant, error) {
	row := s.db.QueryRowContext(ctx, query, arg)
	var p Participant
	if err := row.Scan(&p.ID, &p.ZoomUserID, &p.Name, &p.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select participant: %w", err)
	}
	return &p, nil
}

// CreateParticipant inserts a new participant row and returns it. The row id
// is generated here; zoomUserID, name, and email are stored as given, empty
// strings included.
func (s *Store) CreateParticipant(ctx context.Context, zoomUserID, name, email string) (*Participant, error) {
	p := Participant{
		ID:         uuid.NewString(),
		ZoomUserID: zoomUserID,
		Name:       name,
		Email:      email,
	}
	if _, err := s.execWithRetry(ctx,
		`INSERT INTO participants (id, zoom_user_id, name, email, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.ZoomUserID, p.Name, p.Email, nowTimestamp(),
	); err != nil {
		return nil, fmt.Errorf("insert participant: %w", err)
	}
	return &p, nil
}
