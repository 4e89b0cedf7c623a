package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"MedicApp/database"
	"MedicApp/models"
)

// selectRows runs q and decodes the JSON array into dest.
func selectRows(ctx context.Context, backend database.Backend, q database.Query, dest interface{}) error {
	data, err := backend.Select(ctx, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return models.NewBackendError(fmt.Errorf("failed to decode %s rows: %w", q.Table, err))
	}
	return nil
}
