package database

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRows(t *testing.T, data []byte) []map[string]interface{} {
	t.Helper()
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &rows))
	return rows
}

func TestMemoryBackend_InsertAssignsIDs(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	first, err := b.Insert(ctx, "blogs", map[string]interface{}{"title": "a"})
	require.NoError(t, err)
	second, err := b.Insert(ctx, "blogs", map[string]interface{}{"title": "b"})
	require.NoError(t, err)
	assert.Equal(t, "1", first)
	assert.Equal(t, "2", second)

	userID, err := b.Insert(ctx, "users", map[string]interface{}{"id": "u-1", "email": "a@x.io"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	_, err = b.Insert(ctx, "users", map[string]interface{}{"id": "u-1", "email": "b@x.io"})
	assert.Error(t, err)
}

func TestMemoryBackend_SelectFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, offset := range []int{48, 0, 24} {
		_, err := b.Insert(ctx, "appointments", map[string]interface{}{
			"patient_id":       "p1",
			"doctor_id":        "d1",
			"appointment_date": base.Add(time.Duration(offset) * time.Hour),
			"reason":           []string{"late", "early", "middle"}[i],
		})
		require.NoError(t, err)
	}
	_, err := b.Insert(ctx, "appointments", map[string]interface{}{
		"patient_id": "p2", "doctor_id": "d1", "appointment_date": base,
	})
	require.NoError(t, err)

	data, err := b.Select(ctx, Query{Table: "appointments"}.Eq("patient_id", "p1").OrderBy("appointment_date", true))
	require.NoError(t, err)
	rows := decodeRows(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, "early", rows[0]["reason"])
	assert.Equal(t, "middle", rows[1]["reason"])
	assert.Equal(t, "late", rows[2]["reason"])

	data, err = b.Select(ctx, Query{Table: "appointments"}.OrderBy("appointment_date", false))
	require.NoError(t, err)
	rows = decodeRows(t, data)
	require.Len(t, rows, 4)
	assert.Equal(t, "late", rows[0]["reason"])
}

func TestMemoryBackend_SelectNumericFilter(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	id, err := b.Insert(ctx, "blogs", map[string]interface{}{"title": "t"})
	require.NoError(t, err)

	data, err := b.Select(ctx, Query{Table: "blogs"}.Eq("id", id))
	require.NoError(t, err)
	assert.Len(t, decodeRows(t, data), 1)

	data, err = b.Select(ctx, Query{Table: "blogs"}.Eq("id", "99"))
	require.NoError(t, err)
	assert.Empty(t, decodeRows(t, data))
}

func TestMemoryBackend_SelectProjectsAndEmbeds(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	_, err := b.Insert(ctx, "doctors", map[string]interface{}{"id": "d1", "name": "Dr. Grey", "specialty": "General"})
	require.NoError(t, err)
	_, err = b.Insert(ctx, "blogs", map[string]interface{}{"doctor_id": "d1", "title": "Hello", "content": "body"})
	require.NoError(t, err)
	_, err = b.Insert(ctx, "blogs", map[string]interface{}{"doctor_id": "gone", "title": "Orphan", "content": "body"})
	require.NoError(t, err)

	q := Query{Table: "blogs", Columns: []string{"id", "title"}}.
		Expand("doctors", "doctor_id", "name").
		OrderBy("id", true)
	data, err := b.Select(ctx, q)
	require.NoError(t, err)
	rows := decodeRows(t, data)
	require.Len(t, rows, 2)

	assert.Equal(t, "Hello", rows[0]["title"])
	assert.NotContains(t, rows[0], "content")
	assert.Equal(t, map[string]interface{}{"name": "Dr. Grey"}, rows[0]["doctors"])
	assert.Nil(t, rows[1]["doctors"])
}

func TestMemoryBackend_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	id, err := b.Insert(ctx, "appointments", map[string]interface{}{"status": "Scheduled"})
	require.NoError(t, err)

	require.NoError(t, b.Update(ctx, "appointments", id, map[string]interface{}{"status": "Completed"}))
	data, err := b.Select(ctx, Query{Table: "appointments"}.Eq("id", id))
	require.NoError(t, err)
	rows := decodeRows(t, data)
	require.Len(t, rows, 1)
	assert.Equal(t, "Completed", rows[0]["status"])

	require.NoError(t, b.Update(ctx, "appointments", "404", map[string]interface{}{"status": "Cancelled"}))

	require.NoError(t, b.Delete(ctx, "appointments", id))
	data, err = b.Select(ctx, Query{Table: "appointments"})
	require.NoError(t, err)
	assert.Empty(t, decodeRows(t, data))
}

func TestMemoryBackend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewMemoryBackend()

	_, err := b.Select(ctx, Query{Table: "blogs"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = b.Insert(ctx, "blogs", map[string]interface{}{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLess(t *testing.T) {
	assert.True(t, less(float64(2), float64(10)))
	assert.True(t, less("2025-01-02T00:00:00Z", "2025-01-10T00:00:00Z"))
	assert.True(t, less("2", "10"))
	assert.True(t, less("abc", "abd"))
	assert.True(t, less("x", nil))
	assert.False(t, less(nil, "x"))
}
