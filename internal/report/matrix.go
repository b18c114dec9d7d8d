package report

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Column labels of the exported array.
const (
	ColumnMeetingID = "Meeting ID"
	ColumnName      = "Name"
	ColumnAverage   = "Average"
	ColumnLastFour  = "LastFour"
)

// startTimeLayout is the occurrence timestamp format the reporting API emits.
const startTimeLayout = "2006-01-02T15:04:05Z"

// ErrBadStartTime marks an occurrence whose start timestamp cannot be parsed.
// The occurrence contributes nothing to the table; siblings are unaffected.
var ErrBadStartTime = errors.New("malformed start time")

// Table is the sparse attendance matrix: rows are meetings, columns are
// calendar dates.
type Table struct {
	order []string
	rows  map[string]*row
	dates map[string]struct{}
}

type row struct {
	topic string
	cells map[string]int
}

// NewTable returns an empty matrix.
func NewTable() *Table {
	return &Table{
		rows:  make(map[string]*row),
		dates: make(map[string]struct{}),
	}
}

// AddMeeting registers a row for a meeting. Row order in the exported array
// follows first registration; re-adding a meeting keeps its original topic
// and position.
func (t *Table) AddMeeting(meetingID, topic string) {
	if _, ok := t.rows[meetingID]; ok {
		return
	}
	t.order = append(t.order, meetingID)
	t.rows[meetingID] = &row{topic: topic, cells: make(map[string]int)}
}

// SetCount records the participant count for a meeting on a calendar date.
// When a meeting has two occurrences on the same date the later write wins;
// the report keys by day, not by occurrence.
func (t *Table) SetCount(meetingID, date string, count int) {
	r, ok := t.rows[meetingID]
	if !ok {
		return
	}
	r.cells[date] = count
	t.dates[date] = struct{}{}
}

// AddOccurrence records one occurrence's participant count under the date
// portion of its start timestamp.
func (t *Table) AddOccurrence(meetingID, startTime string, count int) error {
	parsed, err := time.Parse(startTimeLayout, startTime)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadStartTime, startTime)
	}
	t.SetCount(meetingID, parsed.Format("2006-01-02"), count)
	return nil
}

// Meetings returns the row identifiers in insertion order.
func (t *Table) Meetings() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Topic returns the registered topic for a meeting row.
func (t *Table) Topic(meetingID string) string {
	if r, ok := t.rows[meetingID]; ok {
		return r.topic
	}
	return ""
}

// Count returns the cell value for a meeting and date, and whether it is set.
func (t *Table) Count(meetingID, date string) (int, bool) {
	r, ok := t.rows[meetingID]
	if !ok {
		return 0, false
	}
	count, ok := r.cells[date]
	return count, ok
}

// Dates returns every observed calendar date sorted ascending. The dates are
// ISO-8601 day strings, so lexicographic order is chronological order.
func (t *Table) Dates() []string {
	out := make([]string, 0, len(t.dates))
	for date := range t.dates {
		out = append(out, date)
	}
	sort.Strings(out)
	return out
}
