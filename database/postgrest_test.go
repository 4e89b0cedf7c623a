package database

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MedicApp/logger"
	"MedicApp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSupabase(t *testing.T, handler http.HandlerFunc) *PostgrestBackend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	b, err := NewSupabaseBackend(server.URL, "service-key")
	require.NoError(t, err)
	return b
}

func TestSelectClause(t *testing.T) {
	assert.Equal(t, "*", selectClause(Query{Table: "blogs"}))
	assert.Equal(t, "id,title,doctors(name)",
		selectClause(Query{Table: "blogs", Columns: []string{"id", "title"}}.Expand("doctors", "doctor_id", "name")))
	assert.Equal(t, "*,patients(first_name,last_name)",
		selectClause(Query{Table: "appointments"}.Expand("patients", "patient_id", "first_name", "last_name")))
}

func TestPostgrestBackend_Select(t *testing.T) {
	b := newTestSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/appointments"))
		params := r.URL.Query()
		assert.Equal(t, "*,doctors(name)", params.Get("select"))
		assert.Equal(t, "eq.p1", params.Get("patient_id"))
		assert.True(t, strings.HasPrefix(params.Get("order"), "appointment_date.asc"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"status":"Scheduled","doctors":{"name":"Dr. Grey"}}]`)
	})

	q := Query{Table: "appointments"}.
		Eq("patient_id", "p1").
		OrderBy("appointment_date", true).
		Expand("doctors", "doctor_id", "name")
	data, err := b.Select(context.Background(), q)
	require.NoError(t, err)

	rows := decodeRows(t, data)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]interface{}{"name": "Dr. Grey"}, rows[0]["doctors"])
}

func TestPostgrestBackend_SelectError(t *testing.T) {
	b := newTestSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"relation does not exist"}`)
	})

	_, err := b.Select(context.Background(), Query{Table: "missing"})
	assert.Error(t, err)
}

func TestPostgrestBackend_Insert(t *testing.T) {
	b := newTestSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/blogs"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello", body["title"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `[{"id":12,"title":"Hello"}]`)
	})

	id, err := b.Insert(context.Background(), "blogs", map[string]interface{}{"title": "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "12", id)
}

func TestPostgrestBackend_InsertWithoutRepresentation(t *testing.T) {
	b := newTestSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := b.Insert(context.Background(), "blogs", map[string]interface{}{"title": "Hello"})
	assert.Error(t, err)
}

func TestPostgrestBackend_UpdateAndDelete(t *testing.T) {
	var methods []string
	b := newTestSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		assert.Equal(t, "eq.5", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, b.Update(context.Background(), "appointments", "5", map[string]interface{}{"status": "Completed"}))
	require.NoError(t, b.Delete(context.Background(), "blogs", "5"))
	assert.Equal(t, []string{http.MethodPatch, http.MethodDelete}, methods)
}

type failingBackend struct{ Backend }

func (failingBackend) Select(context.Context, Query) ([]byte, error) {
	return nil, errors.New("upstream unavailable")
}

func TestInstrument_WrapsErrors(t *testing.T) {
	b := Instrument(failingBackend{Backend: NewMemoryBackend()}, logger.Discard())

	_, err := b.Select(context.Background(), Query{Table: "blogs"})
	require.Error(t, err)
	assert.Equal(t, models.KindBackend, models.KindOf(err))
	assert.Equal(t, "upstream unavailable", models.MessageOf(err))

	id, err := b.Insert(context.Background(), "blogs", map[string]interface{}{"title": "ok"})
	require.NoError(t, err)
	assert.Equal(t, "1", id)
}
