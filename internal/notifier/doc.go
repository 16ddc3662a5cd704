// Package notifier posts the published listing's daily digest to a
// social channel. Notification is optional and strictly downstream of
// aggregation; it never feeds back into the pipeline.
package notifier
