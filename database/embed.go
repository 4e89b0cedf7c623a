package database

import (
	"fmt"
)

// selectColumns returns the requested columns plus the foreign keys the embeds join on.
// An empty result means every column.
func selectColumns(q Query) []string {
	if len(q.Columns) == 0 {
		return nil
	}
	columns := append([]string(nil), q.Columns...)
	for _, e := range q.Embeds {
		if !containsString(columns, e.ForeignKey) {
			columns = append(columns, e.ForeignKey)
		}
	}
	return columns
}

// foreignKeys collects the distinct non-null values of column across rows.
func foreignKeys(rows []map[string]interface{}, column string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, row := range rows {
		v, ok := row[column]
		if !ok || v == nil {
			continue
		}
		id := keyString(v)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// attach places the matching related row, limited to the embed's columns, under e.Table.
// Rows whose reference does not resolve get a nil embed, as PostgREST does.
func attach(rows []map[string]interface{}, e Embed, related []map[string]interface{}) {
	byID := make(map[string]map[string]interface{}, len(related))
	for _, r := range related {
		byID[keyString(r["id"])] = r
	}

	for _, row := range rows {
		ref, ok := row[e.ForeignKey]
		if !ok || ref == nil {
			row[e.Table] = nil
			continue
		}
		match, ok := byID[keyString(ref)]
		if !ok {
			row[e.Table] = nil
			continue
		}
		embedded := make(map[string]interface{}, len(e.Columns))
		for _, c := range e.Columns {
			embedded[c] = match[c]
		}
		row[e.Table] = embedded
	}
}

func keyString(v interface{}) string {
	switch id := v.(type) {
	case float64:
		return fmt.Sprintf("%.0f", id)
	case []byte:
		return string(id)
	default:
		return fmt.Sprint(id)
	}
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
