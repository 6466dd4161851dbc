package handlers

import (
	"CasaFacil/models"
	"CasaFacil/services"
	"CasaFacil/store"
	"CasaFacil/utils"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	err       error
	signedOut []string
}

func (f *fakeIdentity) Register(_ context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{Token: "t", User: models.User{ID: "u1", Email: req.Email, Role: req.Role}}, nil
}

func (f *fakeIdentity) SignIn(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{Token: "t", User: models.User{ID: "u1", Email: req.Email}}, nil
}

func (f *fakeIdentity) SignOut(_ context.Context, claims *utils.JWTClaims) error {
	f.signedOut = append(f.signedOut, claims.UserID)
	return f.err
}

func TestRegisterStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"created", nil, http.StatusCreated},
		{"invalid", fmt.Errorf("%w: password must be at least 6 characters", services.ErrInvalidInput), http.StatusBadRequest},
		{"taken", services.ErrEmailTaken, http.StatusConflict},
		{"store down", fmt.Errorf("mongo: timeout"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ac := NewAuthController(&fakeIdentity{err: tc.err}, fakeSessions{})
			code, body := call(t, ac.Register, newRequest(http.MethodPost, "/api/auth/register", map[string]any{
				"email": "ana@example.com", "password": "secret1", "displayName": "Ana", "role": "landlord",
			}), nil)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.err == nil, body["success"])
			if tc.code == http.StatusInternalServerError {
				assert.NotContains(t, body["error"], "mongo")
			}
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ac := NewAuthController(&fakeIdentity{err: services.ErrInvalidCredentials}, fakeSessions{})

	code, body := call(t, ac.Login, newRequest(http.MethodPost, "/api/auth/login", map[string]any{
		"email": "ana@example.com", "password": "nope",
	}), nil)

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestLoginReturnsToken(t *testing.T) {
	ac := NewAuthController(&fakeIdentity{}, fakeSessions{})

	code, body := call(t, ac.Login, newRequest(http.MethodPost, "/api/auth/login", map[string]any{
		"email": "ana@example.com", "password": "secret1",
	}), nil)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "t", body["data"].(map[string]any)["token"])
}

func TestLogoutAndMe(t *testing.T) {
	id := &fakeIdentity{}
	s := store.New()
	s.SetUser(&models.User{ID: "u1", DisplayName: "Ana", Role: models.RoleTenant})
	ac := NewAuthController(id, fakeSessions{"s1": s})
	who := &caller{userID: "u1", role: models.RoleTenant, sessionID: "s1"}

	code, body := call(t, ac.Me, newRequest(http.MethodGet, "/api/auth/me", nil), who)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ana", body["data"].(map[string]any)["displayName"])

	code, _ = call(t, ac.Logout, newRequest(http.MethodPost, "/api/auth/logout", nil), who)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"u1"}, id.signedOut)

	code, _ = call(t, ac.Me, newRequest(http.MethodGet, "/api/auth/me", nil), nil)
	assert.Equal(t, http.StatusNotFound, code)
}
