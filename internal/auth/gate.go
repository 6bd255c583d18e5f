// Package auth implements the operator session gate: credential
// verification against a bcrypt hash and short-lived bearer sessions.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

// ErrRejected is the single rejection outcome for a failed login. It
// deliberately carries no detail about which credential was wrong.
var ErrRejected = errors.New("invalid credentials")

// Session is one authenticated operator session.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Gate verifies operator credentials and tracks live sessions with a
// bounded lifetime. Sessions expire on their own; Logout revokes early.
type Gate struct {
	username     string
	passwordHash []byte
	ttl          time.Duration
	sessions     *gocache.Cache
	// dummyHash keeps the bcrypt comparison on the failure path so a
	// wrong username costs the same as a wrong password.
	dummyHash []byte
}

// NewGate creates a Gate for the configured operator credentials.
// passwordHash is a bcrypt hash; with an empty hash every login is
// rejected.
func NewGate(username, passwordHash string, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	return &Gate{
		username:     username,
		passwordHash: []byte(passwordHash),
		ttl:          ttl,
		sessions:     gocache.New(ttl, 2*ttl),
		dummyHash:    dummy,
	}
}

// Login verifies the credential pair. On success it returns a session
// with a fresh token; any failure returns ErrRejected.
func (g *Gate) Login(username, password string) (*Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1

	hash := g.passwordHash
	if !userOK || len(hash) == 0 {
		hash = g.dummyHash
	}
	passOK := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil

	if !userOK || !passOK || len(g.passwordHash) == 0 {
		return nil, ErrRejected
	}

	session := Session{
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(g.ttl),
	}
	g.sessions.Set(session.Token, session, gocache.DefaultExpiration)
	return &session, nil
}

// Verify reports whether a token belongs to a live session.
func (g *Gate) Verify(token string) bool {
	if token == "" {
		return false
	}
	_, ok := g.sessions.Get(token)
	return ok
}

// Logout revokes a session. Revoking an unknown token is a no-op.
func (g *Gate) Logout(token string) {
	g.sessions.Delete(token)
}
