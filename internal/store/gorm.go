package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"chronicle/internal/models"

	"gorm.io/gorm"
)

// Record is the GORM row backing one document: the key, its JSON value,
// and the version used as the optimistic-concurrency token.
type Record struct {
	Key       string    `gorm:"primaryKey;size:255;column:key"`
	Value     []byte    `gorm:"type:jsonb;not null"`
	Version   int64     `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (Record) TableName() string {
	return "records"
}

// Gorm is a Store backed by a relational database through GORM:
// PostgreSQL in production, in-memory SQLite in tests. Each Put is a
// single guarded statement, so the replace is atomic and conflicting
// writers are detected instead of lost.
type Gorm struct {
	db *gorm.DB
}

// NewGorm returns a Store backed by the given GORM connection.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate creates the records table if it does not exist.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Record{})
}

func (g *Gorm) Get(ctx context.Context, key string, dest any) (int64, error) {
	var rec Record
	err := g.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	if err := json.Unmarshal(rec.Value, dest); err != nil {
		return 0, models.NewInternalError(err)
	}
	return rec.Version, nil
}

func (g *Gorm) Put(ctx context.Context, key string, value any, expected int64) (int64, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return 0, models.NewInternalError(err)
	}

	if expected == 0 {
		rec := Record{Key: key, Value: data, Version: 1}
		if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
			if isUniqueConstraintError(err) {
				return 0, ErrVersionConflict
			}
			return 0, models.NewInternalError(err)
		}
		return 1, nil
	}

	res := g.db.WithContext(ctx).Model(&Record{}).
		Where("key = ? AND version = ?", key, expected).
		Updates(map[string]any{"value": data, "version": expected + 1})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrVersionConflict
	}
	return expected + 1, nil
}

func (g *Gorm) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Delete(&Record{}, "key = ?", key).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (g *Gorm) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := g.db.WithContext(ctx).Model(&Record{}).
		Where("key LIKE ?", prefix+"%").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return keys, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports the
	// constraint name in the message.
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
