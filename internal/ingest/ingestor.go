package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rollcall/internal/logging"
	"rollcall/internal/store"
	"rollcall/internal/zoom"
)

const (
	maxThrottleRetries = 3
	maxThrottleWait    = 2 * time.Minute
)

// Reporter is the remote reporting surface the ingestor consumes.
type Reporter interface {
	GetMeetingDetails(ctx context.Context, meetingID string) (*zoom.MeetingDetails, error)
	GetPastOccurrences(ctx context.Context, meetingID string) ([]zoom.Occurrence, error)
	GetParticipantsPage(ctx context.Context, occurrenceID, pageToken string) (*zoom.ParticipantsPage, error)
}

// Ingestor fetches attendance data from the reporting API and persists it.
type Ingestor struct {
	store    *store.Store
	reporter Reporter
	resolver *Resolver
	logger   *slog.Logger
	after    func(time.Duration) <-chan time.Time
}

// New constructs an ingestor over the given store and reporting client.
func New(s *store.Store, reporter Reporter, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		store:    s,
		reporter: reporter,
		resolver: NewResolver(s, logger),
		logger:   logging.NewComponentLogger(logger, "ingest"),
		after:    time.After,
	}
}

// FetchMeetingDetails returns the meeting for an external id, fetching its
// details from the reporting API only when the meeting is not yet known
// locally. Meetings are immutable once created.
func (i *Ingestor) FetchMeetingDetails(ctx context.Context, meetingID string) (*store.Meeting, error) {
	meeting, err := i.store.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting != nil {
		return meeting, nil
	}

	details, err := i.reporter.GetMeetingDetails(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	meeting, created, err := i.store.GetOrCreateMeeting(ctx, meetingID, details.Topic)
	if err != nil {
		return nil, err
	}
	if created {
		i.logger.Info("meeting discovered",
			logging.String(logging.FieldMeetingID, meetingID),
			logging.String("topic", details.Topic))
	}
	return meeting, nil
}

// FetchPastOccurrences lists a meeting's past occurrences from the reporting
// API, recording any new ones. Occurrence listings are not flagged as cached
// because new occurrences keep appearing as the meeting recurs; use
// CachedOccurrences to read the local listing without a remote call.
func (i *Ingestor) FetchPastOccurrences(ctx context.Context, meeting *store.Meeting) ([]store.Occurrence, error) {
	listed, err := i.reporter.GetPastOccurrences(ctx, meeting.ID)
	if err != nil {
		return nil, err
	}

	occurrences := make([]store.Occurrence, 0, len(listed))
	for _, entry := range listed {
		occurrence, _, err := i.store.GetOrCreateOccurrence(ctx, entry.UUID, meeting.ID, entry.StartTime)
		if err != nil {
			return nil, err
		}
		occurrences = append(occurrences, *occurrence)
	}
	i.logger.Info("occurrences listed",
		logging.String(logging.FieldMeetingID, meeting.ID),
		logging.Int("count", len(occurrences)))
	return occurrences, nil
}

// CachedOccurrences returns the locally known occurrences of a meeting
// without calling the remote API.
func (i *Ingestor) CachedOccurrences(ctx context.Context, meeting *store.Meeting) ([]store.Occurrence, error) {
	return i.store.OccurrencesForMeeting(ctx, meeting.ID)
}

// Participants returns the unique participants of an occurrence in
// first-appearance order. A resolved occurrence is served from the local
// attendance links; otherwise the full participant report is fetched,
// resolved, and persisted, and the occurrence is marked resolved as the final
// step so a failed fetch leaves it eligible for a clean retry.
func (i *Ingestor) Participants(ctx context.Context, occurrence *store.Occurrence) ([]store.Participant, error) {
	if occurrence.Resolved {
		return i.store.ParticipantsForOccurrence(ctx, occurrence.UUID)
	}

	raw, err := i.fetchAllPages(ctx, occurrence.UUID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	participants := make([]store.Participant, 0, len(raw))
	for _, record := range raw {
		participant, _, err := i.resolver.Resolve(ctx, record)
		if err != nil {
			return nil, err
		}
		if _, err := i.store.EnsureAttendance(ctx, occurrence.UUID, participant.ID); err != nil {
			return nil, err
		}
		if _, ok := seen[participant.ID]; ok {
			continue
		}
		seen[participant.ID] = struct{}{}
		participants = append(participants, *participant)
	}

	if err := i.store.MarkOccurrenceResolved(ctx, occurrence.UUID); err != nil {
		return nil, err
	}
	occurrence.Resolved = true

	i.logger.Info("occurrence ingested",
		logging.String(logging.FieldOccurrenceID, occurrence.UUID),
		logging.Int("raw_records", len(raw)),
		logging.Int("unique_participants", len(participants)))
	return participants, nil
}

// fetchAllPages walks the participant report in cursor order and concatenates
// the raw records. Any transport failure aborts the whole walk.
func (i *Ingestor) fetchAllPages(ctx context.Context, occurrenceID string) ([]zoom.RawAttendee, error) {
	var all []zoom.RawAttendee
	token := ""
	for {
		page, err := i.fetchPage(ctx, occurrenceID, token)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Participants...)
		if page.NextPageToken == "" {
			return all, nil
		}
		token = page.NextPageToken
	}
}

// fetchPage fetches one report page, retrying after the server's suggested
// delay when throttled. Other failures propagate immediately.
func (i *Ingestor) fetchPage(ctx context.Context, occurrenceID, token string) (*zoom.ParticipantsPage, error) {
	for attempt := 0; ; attempt++ {
		page, err := i.reporter.GetParticipantsPage(ctx, occurrenceID, token)
		if err == nil {
			return page, nil
		}

		var throttle *zoom.ThrottleError
		if !errors.As(err, &throttle) || attempt >= maxThrottleRetries {
			return nil, err
		}

		wait := throttle.RetryAfter
		if wait > maxThrottleWait {
			wait = maxThrottleWait
		}
		i.logger.Warn("throttled, backing off",
			logging.String(logging.FieldOccurrenceID, occurrenceID),
			logging.Duration("wait", wait),
			logging.Int("attempt", attempt+1))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-i.after(wait):
		}
	}
}

// IngestMeeting resolves one meeting end to end: details, past occurrences,
// and every occurrence's participants. Occurrences whose fetch fails are
// reported through the returned error; earlier occurrences keep whatever
// state they committed.
func (i *Ingestor) IngestMeeting(ctx context.Context, meetingID string) (*store.Meeting, []store.Occurrence, error) {
	meeting, err := i.FetchMeetingDetails(ctx, meetingID)
	if err != nil {
		return nil, nil, fmt.Errorf("meeting %s details: %w", meetingID, err)
	}

	occurrences, err := i.FetchPastOccurrences(ctx, meeting)
	if err != nil {
		return meeting, nil, fmt.Errorf("meeting %s occurrences: %w", meetingID, err)
	}

	for idx := range occurrences {
		if _, err := i.Participants(ctx, &occurrences[idx]); err != nil {
			return meeting, occurrences, fmt.Errorf("occurrence %s participants: %w", occurrences[idx].UUID, err)
		}
	}
	return meeting, occurrences, nil
}
