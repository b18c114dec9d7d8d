// Package zoom provides access to the Zoom reporting API.
//
// The client authenticates with server-to-server OAuth (account credentials
// grant), fetches meeting details, past occurrence listings, and paginated
// participant reports. Occurrence UUIDs are double-escaped on the wire when
// they contain slashes, as the report endpoints require; the identifier the
// caller passes is never altered.
//
// Non-2xx responses surface as *StatusError carrying the HTTP status and the
// identifier being fetched. Rate limiting (HTTP 429) is reported as a
// *ThrottleError matching ErrThrottled so callers can back off and retry.
package zoom
