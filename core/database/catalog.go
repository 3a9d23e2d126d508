package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Container is the catalog row of an opened container.
type Container struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	ContainerID    string    `gorm:"column:container_id;size:255;uniqueIndex" json:"container_id"`
	KeyFingerprint string    `gorm:"column:key_fingerprint;size:32" json:"key_fingerprint"`
	FileCount      int       `gorm:"column:file_count" json:"file_count"`
	OpenedAt       time.Time `gorm:"column:opened_at" json:"opened_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName pins the table name.
func (Container) TableName() string {
	return "containers"
}

// ErrNoDatabase is returned by catalogs without a connection.
var ErrNoDatabase = errors.New("catalog database is not configured")

// Catalog persists which containers were opened with which key.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog creates a catalog on db. A nil db yields a catalog whose calls return ErrNoDatabase.
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Enabled reports whether the catalog has a database.
func (c *Catalog) Enabled() bool {
	return c != nil && c.db != nil
}

// Migrate creates or updates the catalog table.
func (c *Catalog) Migrate(ctx context.Context) error {
	if !c.Enabled() {
		return ErrNoDatabase
	}
	if err := c.db.WithContext(ctx).AutoMigrate(&Container{}); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return nil
}

// Save upserts rows by container id.
func (c *Catalog) Save(ctx context.Context, rows ...Container) error {
	if !c.Enabled() {
		return ErrNoDatabase
	}
	if len(rows) == 0 {
		return nil
	}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "container_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"key_fingerprint", "file_count", "opened_at", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to save catalog rows: %w", err)
	}
	return nil
}

// List returns every catalog row ordered by container id.
func (c *Catalog) List(ctx context.Context) ([]Container, error) {
	if !c.Enabled() {
		return nil, ErrNoDatabase
	}
	var rows []Container
	if err := c.db.WithContext(ctx).Order("container_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return rows, nil
}
