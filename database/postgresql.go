package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"MedicApp/models"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormBackend reads and writes the collections directly in PostgreSQL.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend wraps an open gorm connection.
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

// InitDB initializes the database connection and configures it.
func InitDB(ctx context.Context, dsn string, debug bool) (*gorm.DB, error) {
	// Configure logging level based on environment
	logMode := logger.Silent
	if debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: false,
		PrepareStmt:                              true,
		Logger:                                   logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}
	if err := testDatabaseConnection(ctx, db); err != nil {
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return db, nil
}

// configureConnectionPool sets up the connection pool settings for the database.
func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// testDatabaseConnection verifies that the database connection is functional.
func testDatabaseConnection(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// runMigrations creates the six collections when they do not exist yet.
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Patient{},
		&models.Appointment{},
		&models.Blog{},
		&models.Notification{},
	)
}

func (b *GormBackend) Select(ctx context.Context, q Query) ([]byte, error) {
	tx := b.db.WithContext(ctx).Table(q.Table)
	if columns := selectColumns(q); len(columns) > 0 {
		tx = tx.Select(columns)
	}
	for _, f := range q.Filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	if q.Order != nil {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.Order.Column}, Desc: !q.Order.Ascending})
	}

	rows := []map[string]interface{}{}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}

	for _, e := range q.Embeds {
		if err := b.expand(ctx, rows, e); err != nil {
			return nil, err
		}
	}
	return json.Marshal(rows)
}

func (b *GormBackend) expand(ctx context.Context, rows []map[string]interface{}, e Embed) error {
	ids := foreignKeys(rows, e.ForeignKey)
	if len(ids) == 0 {
		return nil
	}

	related := []map[string]interface{}{}
	err := b.db.WithContext(ctx).
		Table(e.Table).
		Select(append([]string{"id"}, e.Columns...)).
		Where("id IN ?", ids).
		Find(&related).Error
	if err != nil {
		return fmt.Errorf("expand %s: %w", e.Table, err)
	}

	attach(rows, e, related)
	return nil
}

func (b *GormBackend) Insert(ctx context.Context, table string, row map[string]interface{}) (string, error) {
	values := make(map[string]interface{}, len(row))
	for k, v := range row {
		values[k] = v
	}

	err := b.db.WithContext(ctx).
		Table(table).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Create(values).Error
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", table, err)
	}
	if values["id"] == nil {
		return "", fmt.Errorf("insert %s: id not returned after insertion", table)
	}
	return keyString(values["id"]), nil
}

func (b *GormBackend) Update(ctx context.Context, table, id string, fields map[string]interface{}) error {
	err := b.db.WithContext(ctx).Table(table).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update %s %s: %w", table, id, err)
	}
	return nil
}

func (b *GormBackend) Delete(ctx context.Context, table, id string) error {
	err := b.db.WithContext(ctx).Exec(
		"DELETE FROM ? WHERE id = ?", clause.Table{Name: table}, id,
	).Error
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", table, id, err)
	}
	return nil
}
