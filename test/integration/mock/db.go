// Package mock provides shared test doubles for the integration suite.
package mock

import (
	"database/sql"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory sqlite connection for integration scenarios.
type Db struct {
	Conn   *gorm.DB
	models []any
}

// NewDb returns the process-wide test database, migrating the given models
// on first use.
func NewDb(models []any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	// A single shared connection keeps every scenario on the same
	// in-memory database.
	sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}

	if err := conn.AutoMigrate(models...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{Conn: conn, models: models}
}

// Reset deletes every row from every migrated table and rewinds the
// autoincrement counters so scenarios start from a clean slate.
func (d *Db) Reset() error {
	for _, model := range d.models {
		err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
		if err != nil {
			return err
		}

		stmt := &gorm.Statement{DB: d.Conn}
		if err := stmt.Parse(model); err != nil {
			return err
		}

		err = d.Conn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", stmt.Schema.Table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}
