package report

// Statistics derives the per-row means from the sparse matrix. Average covers
// every set cell; LastFour covers the four most recent set cells by date, or
// fewer when fewer exist. Unset cells are skipped entirely while explicit
// zero-attendance cells count toward both means. Rows with no set cells
// report 0 for both.
func (t *Table) Statistics(meetingID string) (average, lastFour float64) {
	r, ok := t.rows[meetingID]
	if !ok || len(r.cells) == 0 {
		return 0, 0
	}

	var counts []int
	for _, date := range t.Dates() {
		if count, ok := r.cells[date]; ok {
			counts = append(counts, count)
		}
	}

	average = mean(counts)
	window := counts
	if len(window) > 4 {
		window = window[len(window)-4:]
	}
	lastFour = mean(window)
	return average, lastFour
}

func mean(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	sum := 0
	for _, count := range counts {
		sum += count
	}
	return float64(sum) / float64(len(counts))
}
