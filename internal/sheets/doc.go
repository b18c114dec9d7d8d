// Package sheets publishes attendance reports to Google Drive. It creates a
// spreadsheet inside a named Drive folder, appends the report rows through
// the Sheets values API, and returns the sheet's shareable link.
package sheets
