// Package ingest resolves raw attendee records into stable participant
// identities and records attendance facts for meeting occurrences.
//
// The Resolver deduplicates attendees across reconnects: a non-empty email is
// the strongest identity signal, the exact display name is the fallback, and
// records with neither are stored under their transient session id alone. Two
// people sharing an identical name with no email collapse into one
// participant; that is a documented limitation of the source data, not
// something this package tries to outsmart.
//
// The Ingestor walks the paginated participant report for an occurrence,
// resolves every record, links unique participants to the occurrence, and
// marks the occurrence resolved as its final step. A resolved occurrence is
// served entirely from the local store and never touches the remote API
// again.
package ingest
