// Package session owns the current-user state. It is the only writer of the
// session and of the credential pair during auth flows; every other package
// reads through it. The React context of the original UI became an explicit
// manager object with subscription notifications.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"uniportal.org/internal/api"
	"uniportal.org/internal/authz"
	"uniportal.org/internal/obs"
	"uniportal.org/internal/tokens"
)

// State is the session lifecycle phase.
type State int

const (
	// StateUnknown is the initial phase, before the startup check ran.
	StateUnknown State = iota
	// StateChecking means the startup verification is in flight.
	StateChecking
	// StateAuthenticated means the backend confirmed the current user.
	StateAuthenticated
	// StateUnauthenticated means there is no usable session.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}

// AuthAPI is the slice of the backend the manager drives. *api.Auth satisfies
// it; tests substitute fakes.
type AuthAPI interface {
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error)
	Logout(ctx context.Context) error
	Verify(ctx context.Context) (*api.User, error)
	Refresh(ctx context.Context) error
	ChangePassword(ctx context.Context, req api.PasswordChange) error
	GetProfile(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, req api.ProfileUpdate) error
}

// Result is the outcome of a user-facing auth operation. Errors never cross
// this boundary as Go errors; the UI only ever sees a message.
type Result struct {
	Success bool
	Error   string
}

func success() Result { return Result{Success: true} }

func failure(msg string) Result { return Result{Error: msg} }

// Manager orchestrates login, logout, refresh and verification, and exposes
// permission checks bound to the current user.
type Manager struct {
	authAPI AuthAPI
	store   tokens.Store
	log     *zap.Logger

	opMu sync.Mutex // serializes auth operations

	mu      sync.Mutex // guards state, user, subs
	state   State
	user    *api.User
	subs    map[int]func(State)
	nextSub int
}

func NewManager(authAPI AuthAPI, store tokens.Store) *Manager {
	return &Manager{
		authAPI: authAPI,
		store:   store,
		log:     obs.Logger(),
		state:   StateUnknown,
		subs:    make(map[int]func(State)),
	}
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns a copy of the verified user, or nil without a session.
func (m *Manager) CurrentUser() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a verified session exists.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Subscribe registers fn for state change notifications and returns an
// unsubscribe function. Notifications run synchronously after the transition
// is visible.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) setSession(state State, user *api.User) {
	m.mu.Lock()
	changed := m.state != state
	m.state = state
	m.user = user
	var listeners []func(State)
	if changed {
		listeners = make([]func(State), 0, len(m.subs))
		for _, fn := range m.subs {
			listeners = append(listeners, fn)
		}
	}
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}

// CheckAuthStatus runs the startup transition: with no stored token the
// session is unauthenticated outright (no refresh, no verify); an expired
// token earns exactly one refresh attempt; then the server verifies the
// identity. Any failure clears both tokens.
func (m *Manager) CheckAuthStatus(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.setSession(StateChecking, nil)

	token, ok := m.store.Get(tokens.AccessTokenName)
	if !ok {
		m.setSession(StateUnauthenticated, nil)
		return
	}
	if tokens.IsExpired(token) {
		if !m.refreshLocked(ctx) {
			return
		}
	}

	user, err := m.authAPI.Verify(ctx)
	if err != nil {
		m.log.Warn("auth check failed", zap.Error(err))
		tokens.Clear(m.store)
		m.setSession(StateUnauthenticated, nil)
		return
	}
	m.setSession(StateAuthenticated, user)
}

// Login exchanges credentials for a session. A response without a user
// object counts as failure; the session is only replaced on success.
func (m *Manager) Login(ctx context.Context, creds api.Credentials) Result {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	resp, err := m.authAPI.Login(ctx, creds)
	if err != nil {
		m.log.Warn("login failed", zap.String("username", creds.Username), zap.Error(err))
		return failure(api.ErrorMessage(err, "Login failed"))
	}
	if resp == nil || resp.User == nil {
		return failure("Login failed")
	}
	m.setSession(StateAuthenticated, resp.User)
	return success()
}

// Logout tells the backend to drop the session, then clears tokens and the
// local session unconditionally. A failed backend call is logged, never
// surfaced.
func (m *Manager) Logout(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.authAPI.Logout(ctx); err != nil {
		m.log.Warn("logout request failed", zap.Error(err))
	}
	tokens.Clear(m.store)
	m.setSession(StateUnauthenticated, nil)
}

// Refresh rotates the credential pair. Success leaves the session state
// untouched; failure tears the session down and reports false.
func (m *Manager) Refresh(ctx context.Context) bool {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	return m.refreshLocked(ctx)
}

func (m *Manager) refreshLocked(ctx context.Context) bool {
	if err := m.authAPI.Refresh(ctx); err != nil {
		m.log.Warn("token refresh failed", zap.Error(err))
		tokens.Clear(m.store)
		m.setSession(StateUnauthenticated, nil)
		return false
	}
	return true
}

// UpdateProfile submits the editable profile fields. On success the session
// copy is updated in place; on failure the session is untouched.
func (m *Manager) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) Result {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.authAPI.UpdateProfile(ctx, upd); err != nil {
		m.log.Warn("profile update failed", zap.Error(err))
		return failure(api.ErrorMessage(err, "Profile update failed"))
	}
	m.mu.Lock()
	if m.user != nil {
		if upd.Name != "" {
			m.user.Name = upd.Name
		}
		if upd.Email != "" {
			m.user.Email = upd.Email
		}
	}
	m.mu.Unlock()
	return success()
}

// ChangePassword submits a password change.
func (m *Manager) ChangePassword(ctx context.Context, req api.PasswordChange) Result {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.authAPI.ChangePassword(ctx, req); err != nil {
		m.log.Warn("password change failed", zap.Error(err))
		return failure(api.ErrorMessage(err, "Password change failed"))
	}
	return success()
}

// HasPermission checks perm for the current user against an optionally
// scoped resource. resourceID scopes the check when resourceType is college
// or faculty. Without a session the answer is always false.
func (m *Manager) HasPermission(perm authz.Permission, resourceType authz.ResourceType, resourceID string) bool {
	user := m.CurrentUser()
	if user == nil {
		return false
	}
	var resource authz.Scope
	switch resourceType {
	case authz.ResourceCollege:
		resource.CollegeID = resourceID
	case authz.ResourceFaculty:
		resource.FacultyID = resourceID
	}
	return authz.HasPermission(user.Role, perm, user.Scope(), resource)
}

// CanAccessResource checks resource-family access for the current user.
// Without a session the answer is always false.
func (m *Manager) CanAccessResource(resourceType authz.ResourceType, collegeID, facultyID string) bool {
	user := m.CurrentUser()
	if user == nil {
		return false
	}
	resource := authz.Scope{CollegeID: collegeID, FacultyID: facultyID}
	return authz.CanAccessResource(user.Role, resourceType, user.Scope(), resource)
}
