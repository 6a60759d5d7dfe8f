package utils

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// ParseIDList reads a linked-ID meta value. Stored values appear in two
// forms in the wild: a comma-separated string of IDs, or a JSON array of
// ID strings. Entries that do not parse as UUIDs are dropped; duplicates
// keep their first occurrence.
func ParseIDList(raw string) []uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var parts []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &parts); err != nil {
			return nil
		}
	} else {
		parts = strings.Split(raw, ",")
	}

	seen := make(map[uuid.UUID]bool, len(parts))
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// JoinIDList renders IDs back to the canonical comma-separated form.
func JoinIDList(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}
