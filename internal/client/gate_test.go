package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteGate_Decide(t *testing.T) {
	t.Run("uninitialized renders nothing", func(t *testing.T) {
		m := NewSessionManager(&memoryStore{token: "tok"}, &fakeAuthAPI{})
		gate := NewRouteGate(m)

		// The persisted credential has not been read yet; the gate must not
		// flash the unauthenticated view while the state is unresolved.
		assert.Equal(t, DecisionWait, gate.Decide())
	})

	t.Run("authenticated allows", func(t *testing.T) {
		m := NewSessionManager(&memoryStore{token: "tok"}, &fakeAuthAPI{})
		require.NoError(t, m.Init())
		gate := NewRouteGate(m)

		assert.Equal(t, DecisionAllow, gate.Decide())
	})

	t.Run("anonymous redirects to login", func(t *testing.T) {
		m := NewSessionManager(&memoryStore{}, &fakeAuthAPI{})
		require.NoError(t, m.Init())
		gate := NewRouteGate(m)

		assert.Equal(t, DecisionRedirectLogin, gate.Decide())
	})
}

func TestRouteGate_Authorize(t *testing.T) {
	t.Run("resolves session then allows", func(t *testing.T) {
		m := NewSessionManager(&memoryStore{token: "tok"}, &fakeAuthAPI{})
		gate := NewRouteGate(m)

		require.NoError(t, gate.Authorize())
		assert.Equal(t, StateAuthenticated, m.State())
	})

	t.Run("resolves session then denies", func(t *testing.T) {
		m := NewSessionManager(&memoryStore{}, &fakeAuthAPI{})
		gate := NewRouteGate(m)

		err := gate.Authorize()
		assert.ErrorIs(t, err, ErrLoginRequired)
	})
}
