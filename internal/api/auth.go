package api

import "context"

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the login envelope; User is nil when the backend did not
// return one.
type LoginResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// PasswordChange is the change-password request body.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Auth exposes the authentication endpoints over the shared pipeline.
type Auth struct {
	c *Client
}

// Auth returns the typed auth endpoint wrapper.
func (c *Client) Auth() *Auth { return &Auth{c: c} }

// Login exchanges credentials for a session. The backend sets the token
// cookies on success; the pipeline syncs them into the token store.
func (a *Auth) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := a.c.Post(ctx, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the server session. Best-effort from the caller's point
// of view: token clearing happens regardless of the outcome.
func (a *Auth) Logout(ctx context.Context) error {
	return a.c.Post(ctx, "/auth/logout", struct{}{}, nil)
}

// Verify validates the current access token and returns the server's view of
// the user. This is the authorization boundary; client-side expiry checks
// are only a pre-flight shortcut.
func (a *Auth) Verify(ctx context.Context) (*User, error) {
	var user User
	if err := a.c.Get(ctx, "/auth/verify", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh exchanges the refresh token for a new access token. It bypasses
// the 401 retry path by construction.
func (a *Auth) Refresh(ctx context.Context) error {
	return a.c.refreshOnce(ctx)
}

// ChangePassword updates the password; requires the current one.
func (a *Auth) ChangePassword(ctx context.Context, req PasswordChange) error {
	return a.c.Post(ctx, "/auth/change-password", req, nil)
}

// GetProfile fetches the profile fields.
func (a *Auth) GetProfile(ctx context.Context) (*User, error) {
	var user User
	if err := a.c.Get(ctx, "/auth/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces the editable profile fields. The backend responds
// with a confirmation message only, so callers merge the submitted fields
// themselves on success.
func (a *Auth) UpdateProfile(ctx context.Context, req ProfileUpdate) error {
	return a.c.Put(ctx, "/auth/profile", req, nil)
}
