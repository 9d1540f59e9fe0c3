package scorestore

import "encoding/json"

// parseEntries normalizes every known score file shape into entries and counts
// the list items it had to drop. ok is false when data is not JSON or has no
// recognizable shape.
func parseEntries(data []byte) (entries []Entry, skipped int, ok bool) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, false
	}

	switch value := doc.(type) {
	case []any:
		entries, skipped = entriesFrom(value)
		return entries, skipped, true
	case map[string]any:
		if raw, ok := value["scores"]; ok {
			list, ok := raw.([]any)
			if !ok {
				return nil, 0, false
			}
			entries, skipped = entriesFrom(list)
			return entries, skipped, true
		}
		if raw, ok := value["high_score"]; ok {
			score, ok := toInt(raw)
			if !ok {
				return nil, 0, false
			}
			return []Entry{{Score: score}}, 0, true
		}
	}
	return nil, 0, false
}

// entriesFrom skips items without a numeric score. The name comes from "name"
// or, for older files, "user".
func entriesFrom(items []any) ([]Entry, int) {
	entries := make([]Entry, 0, len(items))
	skipped := 0
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			skipped++
			continue
		}
		score, ok := toInt(fields["score"])
		if !ok {
			skipped++
			continue
		}

		name, _ := fields["name"].(string)
		if name == "" {
			name, _ = fields["user"].(string)
		}
		entries = append(entries, Entry{Name: name, Score: score})
	}
	return entries, skipped
}

// toInt truncates fractional scores toward zero.
func toInt(value any) (int, bool) {
	number, ok := value.(float64)
	if !ok {
		return 0, false
	}
	return int(number), true
}
