package domain

import "time"

// IngestRun records the outcome of one batch ingestion for the audit
// history. Rows are written once at the end of a run and never updated.
type IngestRun struct {
	// ID is a random run identifier (uuid).
	ID string

	// Source describes where the batch came from (a dump file path,
	// "watch:<dir>", or "api").
	Source string

	// StartedAt and EndedAt bound the run.
	StartedAt time.Time
	EndedAt   time.Time

	// Added, Skipped and Failed count the per-record outcomes. Skipped
	// covers exact-id duplicates; Failed covers malformed records.
	Added   int
	Skipped int
	Failed  int

	// Error is set when the run aborted early.
	Error string
}
