package user

import (
	"context"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/Andas-LV/skill-lab-frontend/core"
)

// AuthAPI is the backend collaborator for authentication.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (string, User, error)
	GetMe(ctx context.Context) (User, error)
}

// Gate tracks whether a user is authenticated and what role they hold.
// It is the single writer of the Session and of the TokenStore; every other
// component only reads the session through Current/Resolve/Allows.
type Gate struct {
	api    AuthAPI
	tokens TokenStore
	log    core.Logger

	mu   sync.Mutex
	sess *Session
}

func NewGate(api AuthAPI, tokens TokenStore, logger core.Logger) *Gate {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Gate{api: api, tokens: tokens, log: logger}
}

// Current returns the session populated by a prior Login or Resolve.
func (g *Gate) Current() (Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sess == nil {
		return Session{}, false
	}
	return *g.sess, true
}

// Login authenticates against the backend, persists the token and populates
// the session.
func (g *Gate) Login(ctx context.Context, creds Credentials) (Session, error) {
	if err := creds.Validate(); err != nil {
		return Session{}, err
	}
	token, usr, err := g.api.Login(ctx, creds)
	if err != nil {
		return Session{}, err
	}
	if err := g.tokens.SetAuthToken(token); err != nil {
		g.log.Warn("persisting auth token failed", err)
	}
	sess := sessionFor(usr, token)
	g.mu.Lock()
	g.sess = &sess
	g.mu.Unlock()
	return sess, nil
}

// Resolve attempts to restore a session from the stored credential. On any
// failure (no credential, expired token, rejected profile fetch) the stored
// credential is cleared and the session is absent; gated screens then
// redirect to login without issuing their data fetch.
func (g *Gate) Resolve(ctx context.Context) (Session, bool) {
	g.mu.Lock()
	if g.sess != nil {
		sess := *g.sess
		g.mu.Unlock()
		return sess, true
	}
	g.mu.Unlock()

	token, err := g.tokens.GetAuthToken()
	if err != nil {
		g.log.Warn("reading auth token failed", err)
		return Session{}, false
	}
	if token == "" {
		return Session{}, false
	}
	if tokenExpired(token) {
		g.clearCredential()
		return Session{}, false
	}

	usr, err := g.api.GetMe(ctx)
	if err != nil {
		if !core.IsAuthError(err) {
			g.log.Warn("profile fetch failed", err)
		}
		g.clearCredential()
		return Session{}, false
	}

	sess := sessionFor(usr, token)
	g.mu.Lock()
	g.sess = &sess
	g.mu.Unlock()
	return sess, true
}

// Logout clears the stored credential and the session.
func (g *Gate) Logout() {
	g.clearCredential()
}

// Allows reports whether the current session holds at least `min`.
func (g *Gate) Allows(min string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess != nil && g.sess.Allows(min)
}

func (g *Gate) clearCredential() {
	if err := g.tokens.RemoveAuthToken(); err != nil {
		g.log.Warn("removing auth token failed", err)
	}
	g.mu.Lock()
	g.sess = nil
	g.mu.Unlock()
}

func sessionFor(usr User, token string) Session {
	role := usr.Role
	if role == "" {
		role = RoleUser
	}
	return Session{
		UserID:    usr.ID,
		Username:  usr.Username,
		Email:     usr.Email,
		Role:      role,
		AuthToken: token,
	}
}

// tokenExpired peeks at the token claims without verifying the signature,
// only to skip a profile fetch that is certain to be rejected. A token that
// does not parse as a JWT is treated as opaque and left for the backend to
// judge.
func tokenExpired(token string) bool {
	claims := jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != 0 && time.Now().Unix() >= claims.ExpiresAt
}
