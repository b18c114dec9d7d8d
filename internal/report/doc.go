// Package report folds per-occurrence attendance counts into a dense,
// spreadsheet-ready matrix.
//
// The Table keeps one row per meeting and one column per calendar date seen
// across any meeting. Cells stay unset for dates a meeting did not occur on,
// which is distinct from an explicit zero-attendance occurrence: statistics
// skip unset cells but include zeros. The exported 2-D array renders both as
// blank cells, matching the spreadsheet layout the report has always had.
package report
