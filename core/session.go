package core

import (
	"context"
	"encoding/gob"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

const (
	DefaultCookieName      = "blog_session"
	DefaultSessionLifetime = 24 * time.Hour
	sessionKey             = "usuario"
)

// Snapshot is a copy of the user taken at login or registration.
// It is not refreshed if the user record changes later, so a changed role takes effect only after a new login.
type Snapshot struct {
	ID    int
	Email string
	Name  string
	Role  Role
}

func init() {
	gob.Register(Snapshot{}) // required for storing a Snapshot in a session
}

func SnapshotOf(u *User) Snapshot {
	return Snapshot{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

// Sessions keeps the Snapshot of the logged-in user in a server-side session.
// The client only holds the session token in a cookie.
type Sessions struct {
	*scs.SessionManager
}

// NewSessions configures a session manager with a fixed lifetime. Activity does not extend it.
func NewSessions(store scs.Store, cookieName, cookiePath string, lifetime time.Duration) *Sessions {

	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if cookiePath == "" {
		cookiePath = "/"
	}
	if lifetime <= 0 {
		lifetime = DefaultSessionLifetime
	}

	var sm = scs.New()
	sm.Store = store
	sm.Cookie.Name = cookieName
	sm.Cookie.Path = cookiePath
	sm.Cookie.HttpOnly = true
	sm.Cookie.Persist = true                 // cookie expires with the session
	sm.Cookie.SameSite = http.SameSiteLaxMode // no GET request modifies anything
	sm.Cookie.Secure = false                 // hardening gap: plain HTTP must work on localhost and behind proxies
	sm.IdleTimeout = 0
	sm.Lifetime = lifetime

	return &Sessions{sm}
}

// Start stores the snapshot of u in the session. It renews the session token first.
func (s *Sessions) Start(ctx context.Context, u *User) error {
	if err := s.RenewToken(ctx); err != nil {
		return fmt.Errorf("%w: renewing session token: %v", ErrInternal, err)
	}
	s.Put(ctx, sessionKey, SnapshotOf(u))
	return nil
}

// Current returns the snapshot of the logged-in user, if any.
func (s *Sessions) Current(ctx context.Context) (*Snapshot, bool) {
	snap, ok := s.Get(ctx, sessionKey).(Snapshot)
	if !ok {
		return nil, false
	}
	return &snap, true
}

var errLogout = newError(ErrInternal, "Error al cerrar sesión")

// End destroys the session. Ending a session which does not exist is not an error.
func (s *Sessions) End(ctx context.Context) error {
	if err := s.Destroy(ctx); err != nil {
		return fmt.Errorf("%w: %v", errLogout, err)
	}
	return nil
}
