package db

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const busyTimeoutMS = 5000

// DSN enables WAL journaling, foreign keys and a busy timeout; one
// file serves every handler plus the display engines.
func DSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(%d)",
		path, busyTimeoutMS,
	)
}

// OpenDB opens (creating if needed) the photo database at path. The
// pool is pinned to one connection; the pure-Go driver serializes
// writes anyway.
func OpenDB(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(DSN(path)), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}

	log.Printf("database ready: %s", path)
	return gdb, nil
}
