// Package config loads, normalizes, and validates rollcall configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ZOOM_CLIENT_SECRET (including values sourced from a .env file). The Config
// type centralizes every knob the CLI needs, from the SQLite database location
// to the Google Drive folder reports land in.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
