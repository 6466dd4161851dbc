package handlers

import (
	"CasaFacil/models"
	"CasaFacil/services"
	"CasaFacil/utils"
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type IdentityService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error)
	SignIn(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	SignOut(ctx context.Context, claims *utils.JWTClaims) error
}

type AuthController struct {
	identity IdentityService
	sessions SessionStores
}

func NewAuthController(identity IdentityService, sessions SessionStores) *AuthController {
	return &AuthController{identity: identity, sessions: sessions}
}

func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	resp, err := ac.identity.Register(c.Request().Context(), req)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		return fail(c, http.StatusConflict, "User with this email already exists")
	case err != nil:
		logFailure(c, "register", err)
		return fail(c, http.StatusInternalServerError, "Failed to create user")
	}
	return ok(c, http.StatusCreated, "data", resp)
}

func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	resp, err := ac.identity.SignIn(c.Request().Context(), req)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	case err != nil:
		logFailure(c, "login", err)
		return fail(c, http.StatusInternalServerError, "Failed to sign in")
	}
	return ok(c, http.StatusOK, "data", resp)
}

func (ac *AuthController) Logout(c echo.Context) error {
	claims, _ := c.Get("claims").(*utils.JWTClaims)
	if claims == nil {
		return fail(c, http.StatusUnauthorized, "Invalid token")
	}
	if err := ac.identity.SignOut(c.Request().Context(), claims); err != nil {
		logFailure(c, "logout", err)
		return fail(c, http.StatusInternalServerError, "Failed to sign out")
	}
	return ok(c, http.StatusOK, "message", "Signed out successfully")
}

func (ac *AuthController) Me(c echo.Context) error {
	s, err := sessionStore(c, ac.sessions)
	if err != nil || s == nil {
		if err != nil {
			logFailure(c, "load session", err)
		}
		return fail(c, http.StatusNotFound, "User not found")
	}
	user := s.Snapshot().User
	if user == nil {
		return fail(c, http.StatusNotFound, "User not found")
	}
	return ok(c, http.StatusOK, "data", user)
}
