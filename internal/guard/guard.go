// Package guard decides whether a navigation target may be shown for the
// current session. It is a pure function of session state, user and location,
// with no state of its own; callers act on the returned decision.
package guard

import (
	"uniportal.org/internal/api"
	"uniportal.org/internal/authz"
	"uniportal.org/internal/session"
)

const (
	// LoginRoute is the unauthenticated entry point.
	LoginRoute = "/login"
	// AdminHomeRoute is the default landing area for authenticated users.
	AdminHomeRoute = "/admin"
)

// Action is what the caller should do with the guarded view.
type Action int

const (
	// ActionAllow renders the protected content.
	ActionAllow Action = iota
	// ActionShowLoading renders a neutral wait indicator, no redirect.
	ActionShowLoading
	// ActionRedirect navigates to Decision.Target instead.
	ActionRedirect
)

func (a Action) String() string {
	switch a {
	case ActionAllow:
		return "allow"
	case ActionShowLoading:
		return "loading"
	case ActionRedirect:
		return "redirect"
	default:
		return "invalid"
	}
}

// Decision is the outcome of evaluating a guarded navigation. From is set on
// login redirects only, so login can send the user back afterward.
type Decision struct {
	Action Action
	Target string
	From   string
}

// Evaluate applies the protection rules for a navigation to location.
//
// While the session check has not completed the answer is a wait, never a
// redirect. Without a session the user goes to login with the original
// location preserved. With a session but the wrong role the user goes to the
// authenticated landing area, not back to login. requiredRole empty means any
// authenticated user passes.
func Evaluate(state session.State, user *api.User, requiredRole authz.Role, location string) Decision {
	if state == session.StateUnknown || state == session.StateChecking {
		return Decision{Action: ActionShowLoading}
	}
	if user == nil || state != session.StateAuthenticated {
		return Decision{Action: ActionRedirect, Target: LoginRoute, From: location}
	}
	if requiredRole != "" && user.Role != requiredRole {
		return Decision{Action: ActionRedirect, Target: AdminHomeRoute}
	}
	return Decision{Action: ActionAllow}
}

// Check evaluates against the manager's current session.
func Check(m *session.Manager, requiredRole authz.Role, location string) Decision {
	return Evaluate(m.State(), m.CurrentUser(), requiredRole, location)
}
