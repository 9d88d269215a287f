// Package mock provides test doubles for the integration suite.
package mock

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Db wraps an in-memory SQLite database used as the credential store in
// integration scenarios. Every scenario opens its own instance, so there
// is no cross-scenario state to clear.
type Db struct {
	DbConn *gorm.DB
	sqlDB  *sql.DB
}

// NewDb opens an in-memory SQLite database and migrates the given models.
func NewDb(models ...any) (*Db, error) {
	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbConn.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate models: %w", err)
	}

	return &Db{
		DbConn: dbConn,
		sqlDB:  dbSQL,
	}, nil
}

// HealthCheck reports whether the database connection is usable.
func (d *Db) HealthCheck() bool {
	return d.sqlDB.Ping() == nil
}

// Close tears down the connection. Queries issued afterwards fail, which
// the suite uses to simulate an unreachable store.
func (d *Db) Close() error {
	return d.sqlDB.Close()
}
