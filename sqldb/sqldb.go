// Package sqldb is the relational storage backend. It supports SQLite and MySQL.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/xo/dburl"
)

const (
	MySQL   = "mysql"
	SQLite3 = "sqlite3"
)

// Open opens and pings the database at rawURL, see github.com/xo/dburl. It returns the database and the driver name.
//
// MySQL: collation should be utf8mb4_unicode_ci
func Open(rawURL string) (*sql.DB, string, error) {

	dbURL, err := dburl.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("could not parse database url: %w", err)
	}

	switch dbURL.Driver {
	case MySQL, SQLite3:
	default:
		return nil, "", fmt.Errorf("unsupported database driver: %s", dbURL.Driver)
	}

	db, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("could not open sql database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("could not ping sql database: %w", err)
	}

	return db, dbURL.Driver, nil
}

// preparer prepares statements and remembers the first error.
type preparer struct {
	db  *sql.DB
	err error
}

func (p *preparer) prepare(query string) *sql.Stmt {
	if p.err != nil {
		return nil
	}
	stmt, err := p.db.Prepare(query)
	if err != nil {
		p.err = fmt.Errorf("error preparing %q: %w", query, err)
	}
	return stmt
}

// withTx runs fn in a transaction. It commits if fn returns nil and rolls back otherwise.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(tx)
}

// isUniqueViolation detects a violated unique constraint in both supported drivers.
func isUniqueViolation(err error) bool {

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062 // ER_DUP_ENTRY
	}

	return false
}

// Timestamps are stored as unix seconds.

func toUnix(t time.Time) int64 {
	return t.Unix()
}

func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
