package sqldb

import (
	"database/sql"
	"fmt"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// NewSessionStore returns a session store which uses the sessions table created by Migrate.
// The store starts a goroutine which deletes expired sessions every five minutes.
func NewSessionStore(db *sql.DB, driver string) (scs.Store, error) {
	switch driver {
	case MySQL:
		return mysqlstore.New(db), nil
	case SQLite3:
		return sqlite3store.New(db), nil
	default:
		return nil, fmt.Errorf("no session store for database driver %s", driver)
	}
}
