package sql

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMemoryORM opens a private sqlite in-memory database. Every call gets its
// own database so test suites never observe each other's rows. The pool is
// pinned to a single connection, which serializes writers the same way a row
// lock would on postgres.
func NewMemoryORM() (ORM, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite in-memory db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sqlite connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &DB{DB: gormDB, autoMigrationEnabled: true}, nil
}
