package domain

// RawRecord is a source-specific payload handed over by a connector
// before normalisation. Connectors (scrapers, transcript collectors,
// PDF extractors) are thin clients that only produce these records;
// the core never fetches anything itself.
//
// Fields carries the connector's original keys untouched. The typed
// accessors below reconcile the diverging field names the scrapers
// emit (readTime vs read_time, url vs source_url, and so on).
type RawRecord struct {
	// Kind is the source type this record claims to be.
	Kind SourceType `json:"kind"`

	// Fields holds the raw key-value payload.
	Fields map[string]any `json:"fields"`
}

// String returns the first non-empty string value among the given keys.
func (r *RawRecord) String(keys ...string) string {
	for _, key := range keys {
		if v, ok := r.Fields[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Int returns the first present numeric value among the given keys.
// JSON decoding produces float64 for all numbers, so both int and
// float64 are accepted.
func (r *RawRecord) Int(keys ...string) int {
	for _, key := range keys {
		v, ok := r.Fields[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// Strings returns the string slice stored under key, tolerating the
// []any shape produced by JSON decoding. Non-string elements are
// dropped.
func (r *RawRecord) Strings(key string) []string {
	v, ok := r.Fields[key]
	if !ok {
		return nil
	}
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
