package database

import (
	"context"
	"time"

	"MedicApp/logger"
	"MedicApp/models"
	"MedicApp/monitoring"
)

// Filter is an equality condition on one column.
type Filter struct {
	Column string
	Value  string
}

// Order sorts a select by one column.
type Order struct {
	Column    string
	Ascending bool
}

// Embed expands a referenced row under its table name, e.g. appointments.doctor_id -> doctors(name).
type Embed struct {
	Table      string
	ForeignKey string
	Columns    []string
}

// Query describes a select against one collection.
type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	Order   *Order
	Embeds  []Embed
}

// Eq adds an equality filter.
func (q Query) Eq(column, value string) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Value: value})
	return q
}

// OrderBy sets the ordering column.
func (q Query) OrderBy(column string, ascending bool) Query {
	q.Order = &Order{Column: column, Ascending: ascending}
	return q
}

// Expand adds a relational expansion.
func (q Query) Expand(table, foreignKey string, columns ...string) Query {
	q.Embeds = append(append([]Embed(nil), q.Embeds...), Embed{Table: table, ForeignKey: foreignKey, Columns: columns})
	return q
}

// Backend is the managed data service every collection is read and written through.
// Select returns a JSON array of rows.
type Backend interface {
	Select(ctx context.Context, q Query) ([]byte, error)
	Insert(ctx context.Context, table string, row map[string]interface{}) (string, error)
	Update(ctx context.Context, table, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, table, id string) error
}

// Instrument wraps b so each call is logged, measured and failures become BackendErrors.
func Instrument(b Backend, log *logger.Logger) Backend {
	return &instrumented{next: b, log: log}
}

type instrumented struct {
	next Backend
	log  *logger.Logger
}

func (i *instrumented) observe(operation, table string, start time.Time, err error) error {
	elapsed := time.Since(start)
	monitoring.RecordBackendOperation(operation, table, elapsed, err)
	i.log.BackendOperation(operation, table, elapsed.Milliseconds(), err)
	if err != nil {
		return models.NewBackendError(err)
	}
	return nil
}

func (i *instrumented) Select(ctx context.Context, q Query) ([]byte, error) {
	start := time.Now()
	data, err := i.next.Select(ctx, q)
	return data, i.observe("select", q.Table, start, err)
}

func (i *instrumented) Insert(ctx context.Context, table string, row map[string]interface{}) (string, error) {
	start := time.Now()
	id, err := i.next.Insert(ctx, table, row)
	return id, i.observe("insert", table, start, err)
}

func (i *instrumented) Update(ctx context.Context, table, id string, fields map[string]interface{}) error {
	start := time.Now()
	return i.observe("update", table, start, i.next.Update(ctx, table, id, fields))
}

func (i *instrumented) Delete(ctx context.Context, table, id string) error {
	start := time.Now()
	return i.observe("delete", table, start, i.next.Delete(ctx, table, id))
}
