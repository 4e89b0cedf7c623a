package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// MemoryBackend keeps every collection in process memory. Rows are stored as decoded
// JSON so they compare and order like the managed backend's responses.
type MemoryBackend struct {
	mu     sync.Mutex
	tables map[string][]map[string]interface{}
	nextID map[string]int64
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		tables: make(map[string][]map[string]interface{}),
		nextID: make(map[string]int64),
	}
}

func (b *MemoryBackend) Select(ctx context.Context, q Query) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	rows := []map[string]interface{}{}
	for _, row := range b.tables[q.Table] {
		if matches(row, q.Filters) {
			rows = append(rows, project(row, selectColumns(q)))
		}
	}

	if q.Order != nil {
		column, ascending := q.Order.Column, q.Order.Ascending
		sort.SliceStable(rows, func(i, j int) bool {
			if ascending {
				return less(rows[i][column], rows[j][column])
			}
			return less(rows[j][column], rows[i][column])
		})
	}

	for _, e := range q.Embeds {
		attach(rows, e, b.tables[e.Table])
	}
	return json.Marshal(rows)
}

func (b *MemoryBackend) Insert(ctx context.Context, table string, row map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stored, err := normalize(row)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if stored["id"] == nil {
		b.nextID[table]++
		stored["id"] = float64(b.nextID[table])
	}
	id := keyString(stored["id"])
	for _, existing := range b.tables[table] {
		if keyString(existing["id"]) == id {
			return "", fmt.Errorf("duplicate key value violates unique constraint \"%s_pkey\"", table)
		}
	}

	b.tables[table] = append(b.tables[table], stored)
	return id, nil
}

func (b *MemoryBackend) Update(ctx context.Context, table, id string, fields map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	changes, err := normalize(fields)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, row := range b.tables[table] {
		if keyString(row["id"]) == id {
			for k, v := range changes {
				row[k] = v
			}
		}
	}
	return nil
}

func (b *MemoryBackend) Delete(ctx context.Context, table, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.tables[table][:0]
	for _, row := range b.tables[table] {
		if keyString(row["id"]) != id {
			kept = append(kept, row)
		}
	}
	b.tables[table] = kept
	return nil
}

// normalize round-trips values through JSON so times become strings and numbers float64.
func normalize(values map[string]interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode row: %w", err)
	}
	out := make(map[string]interface{}, len(values))
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode row: %w", err)
	}
	return out, nil
}

func matches(row map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		v, ok := row[f.Column]
		if !ok || v == nil || keyString(v) != f.Value {
			return false
		}
	}
	return true
}

func project(row map[string]interface{}, columns []string) map[string]interface{} {
	out := make(map[string]interface{}, len(row))
	if len(columns) == 0 {
		for k, v := range row {
			out[k] = v
		}
		return out
	}
	for _, c := range columns {
		out[c] = row[c]
	}
	return out
}

// less orders timestamps chronologically, numbers numerically and anything else as text.
// Nulls sort last.
func less(a, b interface{}) bool {
	if a == nil || b == nil {
		return a != nil && b == nil
	}
	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			return x < y
		}
	}
	as, bs := keyString(a), keyString(b)
	if x, err := time.Parse(time.RFC3339Nano, as); err == nil {
		if y, err := time.Parse(time.RFC3339Nano, bs); err == nil {
			return x.Before(y)
		}
	}
	if x, err := strconv.ParseFloat(as, 64); err == nil {
		if y, err := strconv.ParseFloat(bs, 64); err == nil {
			return x < y
		}
	}
	return as < bs
}
