package client

import "errors"

// ErrLoginRequired is returned when a protected entry point is reached
// without an authenticated session.
var ErrLoginRequired = errors.New("login required")

// Decision is the outcome of a protected-route check.
type Decision int

const (
	// DecisionWait means the session is still unresolved; render nothing
	// rather than flashing the unauthenticated view.
	DecisionWait Decision = iota
	// DecisionAllow means the protected view may be shown.
	DecisionAllow
	// DecisionRedirectLogin means the caller should route to the login entry point.
	DecisionRedirectLogin
)

// RouteGate authorizes access to protected views from the session state
// alone. It performs no token validation of its own: it trusts the
// SessionManager exactly.
type RouteGate struct {
	session *SessionManager
}

// NewRouteGate creates a gate over the given session.
func NewRouteGate(session *SessionManager) *RouteGate {
	return &RouteGate{session: session}
}

// Decide maps the current session state to a routing decision.
func (g *RouteGate) Decide() Decision {
	switch g.session.State() {
	case StateUninitialized:
		return DecisionWait
	case StateAuthenticated:
		return DecisionAllow
	default:
		return DecisionRedirectLogin
	}
}

// Authorize is the check invoked at each protected entry point. It resolves
// an uninitialized session first, then requires an authenticated state.
func (g *RouteGate) Authorize() error {
	if g.session.State() == StateUninitialized {
		if err := g.session.Init(); err != nil {
			return err
		}
	}
	if g.Decide() != DecisionAllow {
		return ErrLoginRequired
	}
	return nil
}
