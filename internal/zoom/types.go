package zoom

// RawAttendee is one unresolved entry from the participant report. ID is a
// transient session identifier and may repeat or change across reconnects;
// Name and UserEmail may be empty.
type RawAttendee struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UserEmail string `json:"user_email"`
}

// ParticipantsPage is one page of the participant report. NextPageToken is
// empty on the final page.
type ParticipantsPage struct {
	Participants  []RawAttendee `json:"participants"`
	NextPageToken string        `json:"next_page_token"`
}

// MeetingDetails is the subset of the meeting report used for row naming.
type MeetingDetails struct {
	Topic string `json:"topic"`
}

// Occurrence is one past instance of a recurring meeting. StartTime is an
// ISO-8601 UTC timestamp of the form 2006-01-02T15:04:05Z.
type Occurrence struct {
	UUID      string `json:"uuid"`
	StartTime string `json:"start_time"`
}

type occurrencesResponse struct {
	Meetings []Occurrence `json:"meetings"`
}
