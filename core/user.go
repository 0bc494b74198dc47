package core

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

const MinPasswordLength = 6

type User struct {
	ID             int
	Email          string
	PasswordHash   string
	Name           string
	Role           Role
	RegisteredAt   time.Time
	InvitationCode string // empty if none was given
}

// UserDB is implemented by every storage backend.
//
// GetUser and GetUserByEmail return ErrNotFound. InsertUser assigns the ID and returns ErrConflict if the email is taken.
type UserDB interface {
	CountUsers(ctx context.Context) (int, error)
	GetUser(ctx context.Context, id int) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	InsertUser(ctx context.Context, u *User) (*User, error)
}

// CleanEmail trims and lower-cases an email address.
func CleanEmail(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)
	return email
}

type Registration struct {
	Email          string
	Password       string
	Name           string
	InvitationCode string
}

// Register validates the registration, resolves the role and inserts the user.
// The caller is expected to start a session for the returned user.
func (b *Blog) Register(ctx context.Context, reg Registration) (*User, error) {

	var email = CleanEmail(reg.Email)
	var name = strings.TrimSpace(reg.Name)

	if email == "" || reg.Password == "" || name == "" {
		return nil, newError(ErrValidation, "Todos los campos son obligatorios")
	}

	if utf8.RuneCountInString(reg.Password) < MinPasswordLength {
		return nil, newError(ErrValidation, "La contraseña debe tener al menos 6 caracteres")
	}

	if !strings.HasSuffix(email, b.Domain) {
		return nil, newError(ErrValidation, "Solo se permiten emails institucionales ("+b.Domain+")")
	}

	if _, err := b.UserDB.GetUserByEmail(ctx, email); err == nil {
		return nil, newError(ErrConflict, "El usuario ya existe")
	} else if !IsNotFound(err) {
		return nil, err
	}

	var role = ResolveRole(reg.InvitationCode)
	if role != Viewer {
		b.Log.Info(ctx, "role granted by invitation code", "email", email, "role", role)
	}

	hash, err := b.Hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	user, err := b.UserDB.InsertUser(ctx, &User{
		Email:          email,
		PasswordHash:   hash,
		Name:           name,
		Role:           role,
		RegisteredAt:   b.now(),
		InvitationCode: strings.TrimSpace(reg.InvitationCode),
	})
	if err != nil {
		if IsConflict(err) {
			return nil, newError(ErrConflict, "El usuario ya existe")
		}
		return nil, err
	}

	b.Log.Info(ctx, "user registered", "id", user.ID, "email", user.Email, "role", user.Role)
	return user, nil
}

var errLogin = newError(ErrInvalidCredentials, "Credenciales incorrectas")

// Login returns the user if email and password match. Unknown email and wrong password yield the same error.
func (b *Blog) Login(ctx context.Context, email, password string) (*User, error) {

	email = CleanEmail(email)

	if email == "" || password == "" {
		return nil, newError(ErrValidation, "Email y contraseña son obligatorios")
	}

	user, err := b.UserDB.GetUserByEmail(ctx, email)
	if IsNotFound(err) {
		b.Hasher.Verify(b.dummyHash, password) // same cost as a wrong password
		return nil, errLogin
	}
	if err != nil {
		return nil, err
	}

	if !b.Hasher.Verify(user.PasswordHash, password) {
		return nil, errLogin
	}

	b.Log.Info(ctx, "user logged in", "id", user.ID)
	return user, nil
}

// InsertUser creates a user with an explicit role. It is used by the command line and seeding, not by the HTTP API.
func (b *Blog) InsertUser(ctx context.Context, email, name, password string, role Role) (*User, error) {

	email = CleanEmail(email)
	name = strings.TrimSpace(name)

	if email == "" || name == "" {
		return nil, newError(ErrValidation, "email and name are required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, newError(ErrValidation, "password too short")
	}
	if !role.Valid() {
		return nil, newError(ErrValidation, "unknown role "+string(role))
	}

	hash, err := b.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return b.UserDB.InsertUser(ctx, &User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		RegisteredAt: b.now(),
	})
}
