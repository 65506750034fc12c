// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Record is one durable key/value entry (a device snapshot or a token side channel)
type Record struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName overrides the table name
func (Record) TableName() string {
	return "storefront_records"
}

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log logrus.FieldLogger) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for the record table
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("Running database auto-migrations")

	if err := m.db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", Record{}.TableName(), err)
	}

	m.log.Info("Database auto-migrations completed")
	return nil
}

// pruneStaleSQL removes every record of a key group (the key up to its last
// colon, one group per device) in which no record was written since the cutoff.
// A fresh snapshot keeps an older token side channel alive.
const pruneStaleSQL = `DELETE FROM storefront_records
WHERE regexp_replace("key", '[^:]*$', '') NOT IN (
	SELECT regexp_replace("key", '[^:]*$', '') FROM storefront_records WHERE updated_at >= ?
)`

// PruneStale deletes the records of devices idle since the cutoff, returning how many were removed
func (m *Migration) PruneStale(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	result := m.db.Exec(pruneStaleSQL, cutoff)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune stale records: %w", result.Error)
	}

	m.log.WithField("removed", result.RowsAffected).Info("Pruned stale device records")
	return result.RowsAffected, nil
}
