package jsondb

import (
	"context"
	"time"

	"github.com/unihumboldt/blog/core"
)

// user is the record format of usuarios.json
type user struct {
	ID             int       `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"password"` // hash
	Name           string    `json:"nombre"`
	Role           core.Role `json:"rol"`
	RegisteredAt   time.Time `json:"fechaRegistro"`
	InvitationCode string    `json:"codigoInvitacion,omitempty"`
}

func (u *user) toCore() *core.User {
	var role = u.Role
	if role == "" {
		role = core.Viewer
	}
	return &core.User{
		ID:             u.ID,
		Email:          u.Email,
		PasswordHash:   u.Password,
		Name:           u.Name,
		Role:           role,
		RegisteredAt:   u.RegisteredAt,
		InvitationCode: u.InvitationCode,
	}
}

// UserDB implements core.UserDB.
type UserDB struct {
	files
}

func NewUserDB(dir string) (*UserDB, error) {
	f, err := openFiles(dir)
	if err != nil {
		return nil, err
	}
	return &UserDB{f}, nil
}

func (db *UserDB) load() ([]*user, error) {
	var all = []*user{}
	return all, db.read(usersFile, &all)
}

func (db *UserDB) CountUsers(ctx context.Context) (int, error) {
	all, err := db.load()
	return len(all), err
}

func (db *UserDB) GetUser(ctx context.Context, id int) (*core.User, error) {
	all, err := db.load()
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if u.ID == id {
			return u.toCore(), nil
		}
	}
	return nil, core.ErrNotFound
}

func (db *UserDB) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	email = core.CleanEmail(email)
	all, err := db.load()
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if core.CleanEmail(u.Email) == email {
			return u.toCore(), nil
		}
	}
	return nil, core.ErrNotFound
}

func (db *UserDB) InsertUser(ctx context.Context, u *core.User) (*core.User, error) {

	all, err := db.load()
	if err != nil {
		return nil, err
	}

	var email = core.CleanEmail(u.Email)
	var maxID = 0
	for _, existing := range all {
		if core.CleanEmail(existing.Email) == email {
			return nil, core.ErrConflict
		}
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	id, err := db.next(func(s *sequences) *int { return &s.Users }, maxID)
	if err != nil {
		return nil, err
	}

	var record = &user{
		ID:             id,
		Email:          email,
		Password:       u.PasswordHash,
		Name:           u.Name,
		Role:           u.Role,
		RegisteredAt:   u.RegisteredAt,
		InvitationCode: u.InvitationCode,
	}

	if err := db.write(usersFile, append(all, record)); err != nil {
		return nil, err
	}

	return record.toCore(), nil
}
