package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"rollcall/internal/logging"
	"rollcall/internal/store"
	"rollcall/internal/zoom"
)

// Resolver maps raw attendee records onto stable participant identities.
type Resolver struct {
	store  *store.Store
	logger *slog.Logger
}

// NewResolver constructs a resolver backed by the given store.
func NewResolver(s *store.Store, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:  s,
		logger: logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve returns the participant a raw attendee record belongs to, creating
// one when no existing identity matches. The second return reports whether a
// new row was created.
//
// Matching order: email when non-empty, then exact display name, then the
// transient session id alone. An email match wins even when the incoming name
// differs from the stored one; that is how a name change under a stable email
// is detected, and the stored name is left as originally recorded.
func (r *Resolver) Resolve(ctx context.Context, raw zoom.RawAttendee) (*store.Participant, bool, error) {
	if raw.UserEmail != "" {
		existing, err := r.store.FindParticipantByEmail(ctx, raw.UserEmail)
		if err != nil {
			return nil, false, fmt.Errorf("lookup by email: %w", err)
		}
		if existing != nil {
			return existing, false, nil
		}
		return r.create(ctx, raw)
	}

	if raw.Name != "" {
		existing, err := r.store.FindParticipantByName(ctx, raw.Name)
		if err != nil {
			return nil, false, fmt.Errorf("lookup by name: %w", err)
		}
		if existing != nil {
			return existing, false, nil
		}
		return r.create(ctx, raw)
	}

	// No email and no name: the transient session id is the only key left,
	// so a rejoin under the same id maps back to the same row.
	existing, err := r.store.FindParticipantByTransientID(ctx, raw.ID)
	if err != nil {
		return nil, false, fmt.Errorf("lookup by session id: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}
	return r.create(ctx, raw)
}

func (r *Resolver) create(ctx context.Context, raw zoom.RawAttendee) (*store.Participant, bool, error) {
	participant, err := r.store.CreateParticipant(ctx, raw.ID, raw.Name, raw.UserEmail)
	if err != nil {
		return nil, false, fmt.Errorf("create participant: %w", err)
	}
	r.logger.Info("new participant",
		logging.String("name", participant.Name),
		logging.String("email", participant.Email))
	return participant, true, nil
}
