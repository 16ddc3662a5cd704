// Package event defines the core data model for the concert listing
// pipeline: the Event record produced by source adapters and the
// SourceResult envelope describing one source's fetch outcome.
//
// Events carry only display-oriented fields plus the raw title text used
// by classification and deduplication heuristics. Dates are calendar
// dates normalized to midnight UTC; ParseDate handles the free-text
// formats found in spreadsheets and venue calendar pages.
package event
