package client

import (
	"context"
	"errors"
	"sync"
)

// SessionState is the authentication state of the client session.
type SessionState int

const (
	// StateUninitialized means the persisted credential has not been read yet.
	StateUninitialized SessionState = iota
	// StateAnonymous means no credential is present.
	StateAnonymous
	// StateAuthenticated means a credential is present. Presence is trusted
	// locally; validity is only ever checked by the backend on each call.
	StateAuthenticated
)

// String returns a human-readable state name.
func (s SessionState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// AuthAPI is the external credential-exchange collaborator.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// Register creates a new account. It does not log the user in.
	Register(ctx context.Context, email, password string) error
}

// SessionManager owns the session state and the persisted credential slot.
// It is the only component that mutates the slot; everything else reads the
// token through it. Construct one explicitly and pass it to whatever needs
// it rather than going through a package-level singleton.
type SessionManager struct {
	mu    sync.Mutex
	store CredentialStore
	api   AuthAPI

	state     SessionState
	token     string
	email     string
	lastError string
}

// NewSessionManager creates a session manager in the Uninitialized state.
func NewSessionManager(store CredentialStore, api AuthAPI) *SessionManager {
	return &SessionManager{
		store: store,
		api:   api,
		state: StateUninitialized,
	}
}

// Init reads the persisted credential and resolves the initial state.
// A present token moves the session straight to Authenticated without any
// validity check against the backend; an absent one to Anonymous.
func (m *SessionManager) Init() error {
	token, err := m.store.Load()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if token != "" {
		m.token = token
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
	return nil
}

// Login exchanges the credentials for a bearer token. On success the token
// is persisted, the session becomes Authenticated, and any prior error is
// cleared. On failure the state is unchanged and a human-readable error is
// recorded, preferring the server's failure detail over the generic message.
func (m *SessionManager) Login(ctx context.Context, email, password string) bool {
	token, err := m.api.Login(ctx, email, password)
	if err == nil {
		err = m.store.Save(token)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.lastError = failureMessage(err, "Login failed")
		return false
	}
	m.token = token
	m.email = email
	m.state = StateAuthenticated
	m.lastError = ""
	return true
}

// Register delegates account creation to the collaborator. It never changes
// the session state: the caller decides whether to log in afterwards.
func (m *SessionManager) Register(ctx context.Context, email, password string) bool {
	err := m.api.Register(ctx, email, password)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.lastError = failureMessage(err, "Registration failed")
		return false
	}
	m.lastError = ""
	return true
}

// Logout clears the persisted credential and moves to Anonymous, whatever
// the current state is.
func (m *SessionManager) Logout() error {
	err := m.store.Clear()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.email = ""
	m.state = StateAnonymous
	return err
}

// State returns the current session state.
func (m *SessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token returns the current bearer token, or "" when not authenticated.
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Email returns the email of the logged-in user, when known. It is only
// populated by a login in this process; restoring a persisted session does
// not recover it.
func (m *SessionManager) Email() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email
}

// LastError returns the message recorded by the most recent failed
// login/register attempt, or "" when the last attempt succeeded.
func (m *SessionManager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// failureMessage extracts the server's failure detail when the error carries
// one, falling back to the generic message.
func failureMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
