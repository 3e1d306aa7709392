// Package normalisers converts raw connector records into canonical
// resources. Each source kind has its own normaliser under a
// sub-package; the registry dispatches on the record's kind.
//
// Normalisation is best-effort: records missing a usable title or URL
// are rejected with domain.ErrInvalidInput and skipped by callers.
// Scraped payloads are unreliable; partial failures are expected.
package normalisers
