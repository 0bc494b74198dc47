package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/unihumboldt/blog/core"
)

const userColumns = "id, email, password, nombre, rol, fecha_registro, codigo_invitacion"

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*core.User, error) {
	var u = &core.User{}
	var registered int64
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &registered, &u.InvitationCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.RegisteredAt = fromUnix(registered)
	return u, nil
}

// UserDB implements core.UserDB.
type UserDB struct {
	*sql.DB
	count      *sql.Stmt
	get        *sql.Stmt
	getByEmail *sql.Stmt
	insert     *sql.Stmt
}

func NewUserDB(db *sql.DB) (*UserDB, error) {
	var p = &preparer{db: db}
	var userDB = &UserDB{
		DB:         db,
		count:      p.prepare("SELECT COUNT(*) FROM usuarios"),
		get:        p.prepare("SELECT " + userColumns + " FROM usuarios WHERE id = ?"),
		getByEmail: p.prepare("SELECT " + userColumns + " FROM usuarios WHERE email = ?"),
		insert:     p.prepare("INSERT INTO usuarios (email, password, nombre, rol, fecha_registro, codigo_invitacion) VALUES (?, ?, ?, ?, ?, ?)"),
	}
	return userDB, p.err
}

func (db *UserDB) CountUsers(ctx context.Context) (int, error) {
	var n int
	return n, db.count.QueryRowContext(ctx).Scan(&n)
}

func (db *UserDB) GetUser(ctx context.Context, id int) (*core.User, error) {
	return scanUser(db.get.QueryRowContext(ctx, id))
}

func (db *UserDB) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return scanUser(db.getByEmail.QueryRowContext(ctx, core.CleanEmail(email)))
}

func (db *UserDB) InsertUser(ctx context.Context, u *core.User) (*core.User, error) {

	var inserted = *u
	inserted.Email = core.CleanEmail(u.Email)
	inserted.RegisteredAt = fromUnix(toUnix(u.RegisteredAt))
	if inserted.Role == "" {
		inserted.Role = core.Viewer
	}

	result, err := db.insert.ExecContext(ctx, inserted.Email, inserted.PasswordHash, inserted.Name, inserted.Role, toUnix(inserted.RegisteredAt), inserted.InvitationCode)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: email %s", core.ErrConflict, inserted.Email)
	}
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	inserted.ID = int(id)

	return &inserted, nil
}
