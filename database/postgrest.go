package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

// restClient is the part of the Supabase client the backend needs.
type restClient interface {
	From(table string) *postgrest.QueryBuilder
}

// PostgrestBackend talks to a Supabase project through its PostgREST endpoint.
type PostgrestBackend struct {
	client restClient
}

// NewSupabaseBackend creates the Supabase client for url and key.
func NewSupabaseBackend(url, key string) (*PostgrestBackend, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Supabase client")
	}
	return &PostgrestBackend{client: client}, nil
}

// selectClause renders columns and embeds the way PostgREST expects: "id,status,doctors(name)".
func selectClause(q Query) string {
	parts := append([]string(nil), q.Columns...)
	if len(parts) == 0 {
		parts = []string{"*"}
	}
	for _, e := range q.Embeds {
		parts = append(parts, fmt.Sprintf("%s(%s)", e.Table, strings.Join(e.Columns, ",")))
	}
	return strings.Join(parts, ",")
}

func (b *PostgrestBackend) Select(ctx context.Context, q Query) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := b.client.From(q.Table).Select(selectClause(q), "", false)
	for _, f := range q.Filters {
		query = query.Eq(f.Column, f.Value)
	}
	if q.Order != nil {
		query = query.Order(q.Order.Column, &postgrest.OrderOpts{Ascending: q.Order.Ascending})
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	return data, nil
}

func (b *PostgrestBackend) Insert(ctx context.Context, table string, row map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, _, err := b.client.From(table).Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", table, err)
	}

	var inserted []map[string]interface{}
	if err := json.Unmarshal(data, &inserted); err != nil {
		return "", fmt.Errorf("insert %s: failed to decode response: %w", table, err)
	}
	if len(inserted) == 0 || inserted[0]["id"] == nil {
		return "", fmt.Errorf("insert %s: id not returned after insertion", table)
	}
	return keyString(inserted[0]["id"]), nil
}

func (b *PostgrestBackend) Update(ctx context.Context, table, id string, fields map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, _, err := b.client.From(table).Update(fields, "minimal", "").Eq("id", id).Execute(); err != nil {
		return fmt.Errorf("update %s %s: %w", table, id, err)
	}
	return nil
}

func (b *PostgrestBackend) Delete(ctx context.Context, table, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, _, err := b.client.From(table).Delete("minimal", "").Eq("id", id).Execute(); err != nil {
		return fmt.Errorf("delete %s %s: %w", table, id, err)
	}
	return nil
}
