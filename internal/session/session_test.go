package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniportal.org/internal/api"
	"uniportal.org/internal/authz"
	"uniportal.org/internal/tokens"
)

type fakeAuthAPI struct {
	loginResp *api.LoginResponse
	loginErr  error
	logoutErr error
	verifyOut *api.User
	verifyErr error

	refreshErr error
	changeErr  error
	updateErr  error

	loginCalls   int
	logoutCalls  int
	verifyCalls  int
	refreshCalls int
}

func (f *fakeAuthAPI) Login(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuthAPI) Verify(ctx context.Context) (*api.User, error) {
	f.verifyCalls++
	return f.verifyOut, f.verifyErr
}

func (f *fakeAuthAPI) Refresh(ctx context.Context) error {
	f.refreshCalls++
	return f.refreshErr
}

func (f *fakeAuthAPI) ChangePassword(ctx context.Context, req api.PasswordChange) error {
	return f.changeErr
}

func (f *fakeAuthAPI) GetProfile(ctx context.Context) (*api.User, error) {
	return f.verifyOut, f.verifyErr
}

func (f *fakeAuthAPI) UpdateProfile(ctx context.Context, req api.ProfileUpdate) error {
	return f.updateErr
}

func mintToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func testUser() *api.User {
	return &api.User{
		ID:        "7",
		Username:  "karim",
		Name:      "Karim B",
		Email:     "karim@univ.example",
		Role:      authz.RoleFacultyAdmin,
		CollegeID: "c1",
		FacultyID: "f1",
	}
}

func TestCheckAuthStatusNoTokenSkipsRefreshAndVerify(t *testing.T) {
	fake := &fakeAuthAPI{}
	m := NewManager(fake, tokens.NewMemStore())

	m.CheckAuthStatus(context.Background())

	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Equal(t, 0, fake.refreshCalls)
	assert.Equal(t, 0, fake.verifyCalls)
	assert.Nil(t, m.CurrentUser())
}

func TestCheckAuthStatusValidTokenVerifies(t *testing.T) {
	store := tokens.NewMemStore()
	store.Set(tokens.AccessTokenName, mintToken(t, time.Hour))
	fake := &fakeAuthAPI{verifyOut: testUser()}
	m := NewManager(fake, store)

	m.CheckAuthStatus(context.Background())

	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, 0, fake.refreshCalls, "non-expired token must not refresh")
	assert.Equal(t, 1, fake.verifyCalls)
	require.NotNil(t, m.CurrentUser())
	assert.Equal(t, "karim", m.CurrentUser().Username)
}

func TestCheckAuthStatusVerifyRejectionClearsTokens(t *testing.T) {
	store := tokens.NewMemStore()
	store.Set(tokens.AccessTokenName, mintToken(t, time.Hour))
	store.Set(tokens.RefreshTokenName, "r")
	fake := &fakeAuthAPI{verifyErr: &api.APIError{Status: 401, Message: "Token verification failed"}}
	m := NewManager(fake, store)

	m.CheckAuthStatus(context.Background())

	assert.Equal(t, StateUnauthenticated, m.State())
	_, ok := store.Get(tokens.AccessTokenName)
	assert.False(t, ok)
	_, ok = store.Get(tokens.RefreshTokenName)
	assert.False(t, ok)
}

func TestCheckAuthStatusExpiredTokenRefreshesOnce(t *testing.T) {
	store := tokens.NewMemStore()
	store.Set(tokens.AccessTokenName, mintToken(t, -time.Minute))
	fake := &fakeAuthAPI{verifyOut: testUser()}
	m := NewManager(fake, store)

	m.CheckAuthStatus(context.Background())

	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, 1, fake.refreshCalls)
	assert.Equal(t, 1, fake.verifyCalls)
}

func TestCheckAuthStatusRefreshFailureStopsBeforeVerify(t *testing.T) {
	store := tokens.NewMemStore()
	store.Set(tokens.AccessTokenName, mintToken(t, -time.Minute))
	store.Set(tokens.RefreshTokenName, "r")
	fake := &fakeAuthAPI{refreshErr: errors.New("connection refused")}
	m := NewManager(fake, store)

	m.CheckAuthStatus(context.Background())

	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Equal(t, 1, fake.refreshCalls)
	assert.Equal(t, 0, fake.verifyCalls)
	_, ok := store.Get(tokens.RefreshTokenName)
	assert.False(t, ok, "refresh failure must clear both tokens")
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	fake := &fakeAuthAPI{loginErr: &api.APIError{Status: 401, Message: "Invalid credentials"}}
	m := NewManager(fake, tokens.NewMemStore())

	res := m.Login(context.Background(), api.Credentials{Username: "u", Password: "bad"})

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid credentials", res.Error)
	assert.NotEqual(t, StateAuthenticated, m.State())
	assert.Nil(t, m.CurrentUser())
}

func TestLoginNetworkFailureUsesGenericMessage(t *testing.T) {
	fake := &fakeAuthAPI{loginErr: errors.New("dial tcp: connection refused")}
	m := NewManager(fake, tokens.NewMemStore())

	res := m.Login(context.Background(), api.Credentials{Username: "u", Password: "p"})

	assert.False(t, res.Success)
	assert.Equal(t, "Login failed", res.Error)
}

func TestLoginWithoutUserObjectFails(t *testing.T) {
	fake := &fakeAuthAPI{loginResp: &api.LoginResponse{Message: "ok"}}
	m := NewManager(fake, tokens.NewMemStore())

	res := m.Login(context.Background(), api.Credentials{Username: "u", Password: "p"})

	assert.False(t, res.Success)
	assert.Nil(t, m.CurrentUser())
}

func TestLoginSuccessSetsSession(t *testing.T) {
	fake := &fakeAuthAPI{loginResp: &api.LoginResponse{Message: "Login successful", User: testUser()}}
	m := NewManager(fake, tokens.NewMemStore())

	var seen []State
	m.Subscribe(func(s State) { seen = append(seen, s) })

	res := m.Login(context.Background(), api.Credentials{Username: "karim", Password: "p"})

	require.True(t, res.Success)
	assert.Equal(t, StateAuthenticated, m.State())
	assert.Contains(t, seen, StateAuthenticated)
}

func TestLogoutClearsTokensEvenWhenBackendFails(t *testing.T) {
	store := tokens.NewMemStore()
	store.Set(tokens.AccessTokenName, "a")
	store.Set(tokens.RefreshTokenName, "r")
	fake := &fakeAuthAPI{
		loginResp: &api.LoginResponse{User: testUser()},
		logoutErr: errors.New("network down"),
	}
	m := NewManager(fake, store)
	require.True(t, m.Login(context.Background(), api.Credentials{}).Success)

	m.Logout(context.Background())

	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Nil(t, m.CurrentUser())
	_, ok := store.Get(tokens.AccessTokenName)
	assert.False(t, ok)
	_, ok = store.Get(tokens.RefreshTokenName)
	assert.False(t, ok)
}

func TestRefreshSuccessLeavesStateAlone(t *testing.T) {
	fake := &fakeAuthAPI{loginResp: &api.LoginResponse{User: testUser()}}
	m := NewManager(fake, tokens.NewMemStore())
	require.True(t, m.Login(context.Background(), api.Credentials{}).Success)

	assert.True(t, m.Refresh(context.Background()))
	assert.Equal(t, StateAuthenticated, m.State())
}

func TestUpdateProfileMergesOnSuccessOnly(t *testing.T) {
	fake := &fakeAuthAPI{loginResp: &api.LoginResponse{User: testUser()}}
	m := NewManager(fake, tokens.NewMemStore())
	require.True(t, m.Login(context.Background(), api.Credentials{}).Success)

	res := m.UpdateProfile(context.Background(), api.ProfileUpdate{Name: "Karim Benali", Email: "kb@univ.example"})
	require.True(t, res.Success)
	assert.Equal(t, "Karim Benali", m.CurrentUser().Name)
	assert.Equal(t, "kb@univ.example", m.CurrentUser().Email)

	fake.updateErr = &api.APIError{Status: 400, Message: "Email is already taken"}
	res = m.UpdateProfile(context.Background(), api.ProfileUpdate{Name: "X", Email: "taken@univ.example"})
	assert.False(t, res.Success)
	assert.Equal(t, "Email is already taken", res.Error)
	assert.Equal(t, "Karim Benali", m.CurrentUser().Name, "failed update must not touch the session")
}

func TestChangePasswordResult(t *testing.T) {
	fake := &fakeAuthAPI{}
	m := NewManager(fake, tokens.NewMemStore())

	assert.True(t, m.ChangePassword(context.Background(), api.PasswordChange{}).Success)

	fake.changeErr = &api.APIError{Status: 400, Message: "Current password is incorrect"}
	res := m.ChangePassword(context.Background(), api.PasswordChange{})
	assert.False(t, res.Success)
	assert.Equal(t, "Current password is incorrect", res.Error)
}

func TestPermissionHelpersWithoutSession(t *testing.T) {
	m := NewManager(&fakeAuthAPI{}, tokens.NewMemStore())

	assert.False(t, m.HasPermission(authz.PermNewsManage, "", ""))
	assert.False(t, m.CanAccessResource(authz.ResourceNews, "", ""))
}

func TestPermissionHelpersDelegateToEvaluator(t *testing.T) {
	fake := &fakeAuthAPI{loginResp: &api.LoginResponse{User: testUser()}} // faculty_admin c1/f1
	m := NewManager(fake, tokens.NewMemStore())
	require.True(t, m.Login(context.Background(), api.Credentials{}).Success)

	assert.True(t, m.HasPermission(authz.PermFacultyEdit, authz.ResourceFaculty, "f1"))
	assert.False(t, m.HasPermission(authz.PermFacultyEdit, authz.ResourceFaculty, "f2"))
	assert.False(t, m.HasPermission(authz.PermCollegeManage, "", ""))

	assert.True(t, m.CanAccessResource(authz.ResourceFaculty, "", "f1"))
	assert.False(t, m.CanAccessResource(authz.ResourceCollege, "c1", ""))
}
