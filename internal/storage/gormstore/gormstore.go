// Package gormstore implements the storage backend on a relational
// database via GORM. SQLite and Postgres share the same code path; only the
// dialector differs.
package gormstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/srw-lite/engine/internal/storage"
)

// SaveSlot is the persisted row. One row per slot name, payload stored as
// a JSON column.
type SaveSlot struct {
	Slot      string         `gorm:"primaryKey;size:64"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// Backend persists save slots through a GORM connection.
type Backend struct {
	db *gorm.DB
}

// NewSqlite opens a SQLite-backed store at the given path. The pure-Go
// driver is used, so no cgo is required.
func NewSqlite(path string) (*Backend, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db at %s: %w", path, err)
	}
	return &Backend{db: db}, nil
}

// NewPostgres opens a Postgres-backed store with the given DSN.
func NewPostgres(dsn string) (*Backend, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &Backend{db: db}, nil
}

// Init migrates the save-slot schema.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(&SaveSlot{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Put upserts the slot payload.
func (b *Backend) Put(slot string, data []byte) error {
	row := SaveSlot{Slot: slot, Data: datatypes.JSON(data), UpdatedAt: time.Now()}
	return b.db.Save(&row).Error
}

// Get returns the slot payload, or storage.ErrNotFound.
func (b *Backend) Get(slot string) ([]byte, error) {
	var row SaveSlot
	err := b.db.First(&row, "slot = ?", slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Data), nil
}

// Delete removes the slot. Deleting an absent slot is not an error.
func (b *Backend) Delete(slot string) error {
	return b.db.Delete(&SaveSlot{}, "slot = ?", slot).Error
}
