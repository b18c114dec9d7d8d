// Package main hosts the Rollcall CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into the
// attendance pipeline: syncing meetings from the Zoom reporting API, building
// the attendance matrix, publishing it to Google Sheets, and configuration
// scaffolding. It centralizes configuration resolution, the ingest lock, and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
