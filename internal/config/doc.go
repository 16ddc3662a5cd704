// Package config holds the single process-wide configuration for the
// aggregation pipeline: the curated venue registry (canonical names,
// aliases, calendar URLs), the music / non-music keyword sets, the
// published date window, and per-source settings.
//
// The configuration is assembled once at startup from compiled-in
// defaults, an optional YAML overlay, and credential environment
// variables, and is read-only from then on.
package config
