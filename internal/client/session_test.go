package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory credential slot for tests.
type memoryStore struct {
	token   string
	loadErr error
}

func (s *memoryStore) Load() (string, error) { return s.token, s.loadErr }
func (s *memoryStore) Save(token string) error {
	s.token = token
	return nil
}
func (s *memoryStore) Clear() error {
	s.token = ""
	return nil
}

// fakeAuthAPI scripts the credential-exchange collaborator.
type fakeAuthAPI struct {
	loginToken  string
	loginErr    error
	registerErr error
	loginCalls  int
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, email, password string) error {
	return f.registerErr
}

func TestSessionManager_StartsUninitialized(t *testing.T) {
	m := NewSessionManager(&memoryStore{}, &fakeAuthAPI{})
	assert.Equal(t, StateUninitialized, m.State())
}

func TestSessionManager_InitWithPersistedToken(t *testing.T) {
	m := NewSessionManager(&memoryStore{token: "persisted"}, &fakeAuthAPI{})

	require.NoError(t, m.Init())

	// Presence alone is enough; no backend round trip happens.
	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, "persisted", m.Token())
	assert.Equal(t, "", m.Email())
}

func TestSessionManager_InitWithoutToken(t *testing.T) {
	m := NewSessionManager(&memoryStore{}, &fakeAuthAPI{})

	require.NoError(t, m.Init())

	assert.Equal(t, StateAnonymous, m.State())
}

func TestSessionManager_LoginSuccess(t *testing.T) {
	store := &memoryStore{}
	m := NewSessionManager(store, &fakeAuthAPI{loginToken: "tok-abc"})
	require.NoError(t, m.Init())

	ok := m.Login(context.Background(), "user@example.com", "secret")

	require.True(t, ok)
	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, "tok-abc", m.Token())
	assert.Equal(t, "user@example.com", m.Email())
	assert.Equal(t, "tok-abc", store.token, "token must be persisted")
	assert.Equal(t, "", m.LastError())
}

func TestSessionManager_LoginFailureKeepsState(t *testing.T) {
	store := &memoryStore{}
	api := &fakeAuthAPI{loginErr: &APIError{StatusCode: 401, Detail: "Incorrect email or password"}}
	m := NewSessionManager(store, api)
	require.NoError(t, m.Init())

	ok := m.Login(context.Background(), "user@example.com", "wrong")

	require.False(t, ok)
	assert.Equal(t, StateAnonymous, m.State())
	assert.Equal(t, "", store.token, "nothing may be persisted on failure")
	assert.Equal(t, "Incorrect email or password", m.LastError())
}

func TestSessionManager_LoginFailureGenericFallback(t *testing.T) {
	m := NewSessionManager(&memoryStore{}, &fakeAuthAPI{loginErr: errors.New("connection refused")})
	require.NoError(t, m.Init())

	ok := m.Login(context.Background(), "user@example.com", "secret")

	require.False(t, ok)
	assert.Equal(t, "Login failed", m.LastError())
}

func TestSessionManager_LoginClearsPriorError(t *testing.T) {
	api := &fakeAuthAPI{loginErr: errors.New("boom")}
	m := NewSessionManager(&memoryStore{}, api)
	require.NoError(t, m.Init())

	require.False(t, m.Login(context.Background(), "user@example.com", "x"))
	require.NotEmpty(t, m.LastError())

	api.loginErr = nil
	api.loginToken = "tok"
	require.True(t, m.Login(context.Background(), "user@example.com", "x"))
	assert.Equal(t, "", m.LastError())
}

func TestSessionManager_RegisterNeverChangesState(t *testing.T) {
	tests := []struct {
		name        string
		registerErr error
		expectOK    bool
	}{
		{name: "success", registerErr: nil, expectOK: true},
		{name: "failure", registerErr: &APIError{StatusCode: 400, Detail: "Email already registered"}, expectOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSessionManager(&memoryStore{}, &fakeAuthAPI{registerErr: tt.registerErr})
			require.NoError(t, m.Init())

			ok := m.Register(context.Background(), "new@example.com", "secret")

			assert.Equal(t, tt.expectOK, ok)
			assert.Equal(t, StateAnonymous, m.State(), "register must not transition the session")
		})
	}
}

func TestSessionManager_RegisterRecordsErrorDetail(t *testing.T) {
	api := &fakeAuthAPI{registerErr: &APIError{StatusCode: 400, Detail: "Email already registered"}}
	m := NewSessionManager(&memoryStore{}, api)
	require.NoError(t, m.Init())

	require.False(t, m.Register(context.Background(), "dup@example.com", "secret"))
	assert.Equal(t, "Email already registered", m.LastError())
}

func TestSessionManager_RegisterClearsPriorError(t *testing.T) {
	api := &fakeAuthAPI{registerErr: &APIError{StatusCode: 400, Detail: "Email already registered"}}
	m := NewSessionManager(&memoryStore{}, api)
	require.NoError(t, m.Init())

	require.False(t, m.Register(context.Background(), "dup@example.com", "secret"))
	require.NotEmpty(t, m.LastError())

	api.registerErr = nil
	require.True(t, m.Register(context.Background(), "fresh@example.com", "secret"))
	assert.Equal(t, "", m.LastError())
}

func TestSessionManager_LogoutFromAnyState(t *testing.T) {
	t.Run("from authenticated", func(t *testing.T) {
		store := &memoryStore{token: "tok"}
		m := NewSessionManager(store, &fakeAuthAPI{})
		require.NoError(t, m.Init())
		require.Equal(t, StateAuthenticated, m.State())

		require.NoError(t, m.Logout())

		assert.Equal(t, StateAnonymous, m.State())
		assert.Equal(t, "", m.Token())
		assert.Equal(t, "", store.token)
	})

	t.Run("from anonymous", func(t *testing.T) {
		m := NewSessionManager(&memoryStore{}, &fakeAuthAPI{})
		require.NoError(t, m.Init())

		require.NoError(t, m.Logout())
		assert.Equal(t, StateAnonymous, m.State())
	})

	t.Run("from uninitialized", func(t *testing.T) {
		m := NewSessionManager(&memoryStore{token: "tok"}, &fakeAuthAPI{})

		require.NoError(t, m.Logout())
		assert.Equal(t, StateAnonymous, m.State())
	})
}
