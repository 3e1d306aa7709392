// Package dumpfile reads batches of raw records from JSON dump files,
// the interchange format produced by scrapers and export scripts.
package dumpfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

// collectionKinds maps the grouped-object dump keys to source kinds.
var collectionKinds = map[string]domain.SourceType{
	"videos":   domain.SourceVideo,
	"articles": domain.SourceArticle,
	"pdfs":     domain.SourcePDF,
	"texts":    domain.SourceText,
}

// Load reads a dump file and returns its raw records. Two layouts are
// accepted:
//
//   - a flat array of records, each carrying its own "type" (or
//     "kind" / "source_type") field;
//   - an object grouping records by kind, e.g.
//     {"videos": [...], "articles": [...]}.
func Load(path string) ([]domain.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dump file: %w", err)
	}
	return Parse(data)
}

// Parse decodes dump content. See Load for the accepted layouts.
func Parse(data []byte) ([]domain.RawRecord, error) {
	var flat []map[string]any
	if err := json.Unmarshal(data, &flat); err == nil {
		return fromFlat(flat), nil
	}

	var grouped map[string]json.RawMessage
	if err := json.Unmarshal(data, &grouped); err != nil {
		return nil, fmt.Errorf("parsing dump: %w", domain.ErrInvalidInput)
	}
	return fromGrouped(grouped)
}

// fromFlat builds records from the array layout. The kind comes from
// the record's own type field; unrecognised values map to
// SourceUnknown and fail later at normalisation, keeping batches
// best-effort.
func fromFlat(entries []map[string]any) []domain.RawRecord {
	records := make([]domain.RawRecord, 0, len(entries))
	for _, fields := range entries {
		records = append(records, domain.RawRecord{
			Kind:   kindOf(fields),
			Fields: fields,
		})
	}
	return records
}

// fromGrouped builds records from the grouped-object layout. Unknown
// top-level keys are an error; a typo would otherwise silently drop a
// whole collection.
func fromGrouped(grouped map[string]json.RawMessage) ([]domain.RawRecord, error) {
	var records []domain.RawRecord

	for key, raw := range grouped {
		kind, ok := collectionKinds[key]
		if !ok {
			return nil, fmt.Errorf("unknown dump collection %q: %w", key, domain.ErrInvalidInput)
		}

		var entries []map[string]any
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("parsing dump collection %q: %w", key, domain.ErrInvalidInput)
		}

		for _, fields := range entries {
			records = append(records, domain.RawRecord{Kind: kind, Fields: fields})
		}
	}

	return records, nil
}

// kindOf extracts the source kind from a record's own fields.
func kindOf(fields map[string]any) domain.SourceType {
	for _, key := range []string{"type", "kind", "source_type"} {
		if v, ok := fields[key].(string); ok && v != "" {
			return domain.ParseSourceType(v)
		}
	}
	return domain.SourceUnknown
}
