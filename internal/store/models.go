package store

// Meeting is a recurring meeting known to the report. Created on first
// successful detail fetch and immutable thereafter.
type Meeting struct {
	ID    string
	Topic string
}

// Occurrence is one time-stamped instance of a recurring meeting. StartTime
// keeps the raw ISO-8601 string the reporting API returned; the report layer
// parses it so one malformed timestamp cannot poison its siblings.
type Occurrence struct {
	UUID      string
	MeetingID string
	StartTime string
	Resolved  bool
}

// Participant is a resolved attendee identity, stable across sessions and
// occurrences. ZoomUserID holds the transient session id seen when the row
// was created; Name and Email may be empty.
type Participant struct {
	ID         string
	ZoomUserID string
	Name       string
	Email      string
}

// Run records one report execution, mirroring the run log the CLI writes at
// exit.
type Run struct {
	ID       int64
	RunTime  string
	ExitCode int
}
