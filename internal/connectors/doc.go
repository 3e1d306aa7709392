// Package connectors holds the input-side integrations that feed raw
// records into the ingestion pipeline. Each connector knows how to read
// one kind of source; today that is JSON dump files produced by the
// scrapers, loaded on demand or picked up from a watched directory.
package connectors
