// Package source defines the adapter contract for event provenance
// channels and the concrete adapters: the operator-entered spreadsheet
// CSV, the Ticketmaster Discovery API, and per-venue calendar page
// scrapers. The registry assembles a fixed ordered list at startup;
// sources never see each other.
package source
