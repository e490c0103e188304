package routine

import "time"

// sanitizeValue recursively replaces time values with their RFC 3339 string
// form so the structure can be embedded in a JSON prompt. Maps keep their key
// sets, slices keep order and length, scalars pass through unchanged. The
// input is never mutated; recognized containers are rebuilt.
func sanitizeValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.Format(time.RFC3339)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = sanitizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = sanitizeValue(item)
		}
		return out
	default:
		return value
	}
}

// sanitizeRecommendations applies sanitizeValue across a recommendations map.
func sanitizeRecommendations(recs map[string]any) map[string]any {
	out := make(map[string]any, len(recs))
	for category, data := range recs {
		out[category] = sanitizeValue(data)
	}
	return out
}
