package report

// ToArray renders the table as a dense two-dimensional array ready for a
// spreadsheet values payload. The header row is Meeting ID, Name, the date
// columns in ascending order, Average, and LastFour. Data rows follow in the
// order meetings were first added. Count cells holding zero and cells never
// set both render as the empty string; set counts render as float64. The two
// statistics columns are always numeric, even when 0.
func (t *Table) ToArray() [][]any {
	dates := t.Dates()

	header := make([]any, 0, len(dates)+4)
	header = append(header, ColumnMeetingID, ColumnName)
	for _, date := range dates {
		header = append(header, date)
	}
	header = append(header, ColumnAverage, ColumnLastFour)

	out := make([][]any, 0, len(t.order)+1)
	out = append(out, header)

	for _, meetingID := range t.order {
		r := t.rows[meetingID]
		row := make([]any, 0, len(dates)+4)
		row = append(row, meetingID, r.topic)
		for _, date := range dates {
			count, ok := r.cells[date]
			if !ok || count == 0 {
				row = append(row, "")
				continue
			}
			row = append(row, float64(count))
		}
		average, lastFour := t.Statistics(meetingID)
		row = append(row, average, lastFour)
		out = append(out, row)
	}
	return out
}
