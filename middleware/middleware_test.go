package middleware

import (
	"CasaFacil/models"
	"CasaFacil/utils"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenAuth struct {
	tokens *utils.TokenManager
}

func (a tokenAuth) Authenticate(_ context.Context, token string) (*utils.JWTClaims, error) {
	if token == "revoked" {
		return nil, errors.New("revoked")
	}
	return a.tokens.ValidateJWT(token)
}

func serve(t *testing.T, mw []echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen echo.Context
	h := func(c echo.Context) error {
		seen = c
		return c.NoContent(http.StatusNoContent)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	require.NoError(t, h(c))
	return rec, seen
}

func TestJWTMiddleware(t *testing.T) {
	tm := utils.NewTokenManager("s", time.Hour)
	auth := tokenAuth{tokens: tm}
	token, claims, err := tm.GenerateJWT(models.User{ID: "u1", Email: "a@b.co", Role: models.RoleLandlord})
	require.NoError(t, err)

	rec, _ := serve(t, []echo.MiddlewareFunc{JWTMiddleware(auth)}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, []echo.MiddlewareFunc{JWTMiddleware(auth)}, "Token "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, []echo.MiddlewareFunc{JWTMiddleware(auth)}, "Bearer revoked")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, c := serve(t, []echo.MiddlewareFunc{JWTMiddleware(auth)}, "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u1", c.Get("user_id"))
	assert.Equal(t, models.RoleLandlord, c.Get("user_role"))
	assert.Equal(t, claims.SessionID(), c.Get("session_id"))
}

func TestOptionalJWT(t *testing.T) {
	tm := utils.NewTokenManager("s", time.Hour)
	auth := tokenAuth{tokens: tm}
	token, _, err := tm.GenerateJWT(models.User{ID: "u1", Role: models.RoleTenant})
	require.NoError(t, err)

	rec, c := serve(t, []echo.MiddlewareFunc{OptionalJWT(auth)}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, c.Get("user_id"))

	rec, c = serve(t, []echo.MiddlewareFunc{OptionalJWT(auth)}, "Bearer garbage")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, c.Get("user_id"))

	_, c = serve(t, []echo.MiddlewareFunc{OptionalJWT(auth)}, "Bearer "+token)
	assert.Equal(t, "u1", c.Get("user_id"))
}

func TestRequireRole(t *testing.T) {
	tm := utils.NewTokenManager("s", time.Hour)
	auth := tokenAuth{tokens: tm}
	tenant, _, _ := tm.GenerateJWT(models.User{ID: "u1", Role: models.RoleTenant})
	landlord, _, _ := tm.GenerateJWT(models.User{ID: "u2", Role: models.RoleLandlord})
	chain := []echo.MiddlewareFunc{JWTMiddleware(auth), RequireRole(models.RoleLandlord, models.RoleAdmin)}

	rec, _ := serve(t, chain, "Bearer "+tenant)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = serve(t, chain, "Bearer "+landlord)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
