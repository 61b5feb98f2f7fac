package database

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/smartcard-app/smartcard-golang/internal/config"
)

// Open initializes and returns the MySQL connection pool, configured and
// verified with a ping before anything else touches it.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
