// Package store persists meetings, occurrences, participants, and attendance
// links in SQLite.
//
// The Store manages database connections, schema initialization, and
// get-or-create operations keyed by each entity's unique constraint. Meetings
// and occurrences are append-only; an occurrence's resolved flag is set once,
// after a complete participant fetch, and never reset. Attendance links are
// unique per (occurrence, participant) pair and membership queries return them
// in link-creation order, which callers rely on for stable report ordering.
//
// Treat this package as the single source of truth for persistence semantics;
// when you add new entities or columns, update schema.sql and bump
// schemaVersion.
package store
