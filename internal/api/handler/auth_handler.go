package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openjournal/diary-system/internal/core/domain"
	"github.com/openjournal/diary-system/internal/core/ports"
	"github.com/openjournal/diary-system/internal/metrics"
)

// AuthHandler handles registration, login, profile, and logout.
type AuthHandler struct {
	auth   ports.AuthService
	tokens ports.TokenService
	users  ports.UserRepository
}

func NewAuthHandler(auth ports.AuthService, tokens ports.TokenService, users ports.UserRepository) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, users: users}
}

// Register creates a new account and returns a session token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      202   {object}  authResponse  "Email already registered"
// @Failure      401   {object}  response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, failResponse("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, failResponse(err.Error()))
	}

	token, _, err := h.auth.Register(reqCtx(c), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusAccepted, failResponse("User already exists. Please Log in."))
		}
		return c.JSON(http.StatusUnauthorized, failResponse("Some error occurred. Please try again."))
	}

	return c.JSON(http.StatusCreated, authResponse{
		Status:    statusSuccess,
		Message:   "Successfully registered.",
		AuthToken: token,
	})
}

// Login authenticates by email and password. Unknown email and wrong password
// produce byte-identical failures so accounts cannot be enumerated.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      404   {object}  response
// @Failure      500   {object}  response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, failResponse("Try again"))
	}

	token, err := h.auth.Login(reqCtx(c), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, failResponse("User does not exist."))
		}
		return c.JSON(http.StatusInternalServerError, failResponse("Try again"))
	}

	return c.JSON(http.StatusOK, authResponse{
		Status:    statusSuccess,
		Message:   "Successfully logged in.",
		AuthToken: token,
	})
}

// Profile returns the caller's own account fields.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  response
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	_, user, err := ctxActor(c, h.users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, failResponse("A user with this auth token does not exist."))
	}

	return c.JSON(http.StatusOK, response{
		Status: statusSuccess,
		Data: profileData{
			UserID:       user.ID,
			Email:        user.Email,
			Admin:        user.Admin,
			RegisteredOn: user.RegisteredOn,
		},
	})
}

// UpdateProfile changes the caller's email and/or password.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  response
// @Failure      500  {object}  response
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	_, user, err := ctxActor(c, h.users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, failResponse("A user with this auth token does not exist."))
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, failResponse("Try again"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, failResponse(err.Error()))
	}

	update := ports.ProfileUpdate{Email: req.Email, Password: req.Password}
	if err := h.auth.UpdateProfile(reqCtx(c), user.ID, update); err != nil {
		return c.JSON(http.StatusInternalServerError, failResponse("Try again"))
	}

	return c.JSON(http.StatusOK, response{Status: statusSuccess, Message: "Profile updated."})
}

// Logout revokes the presented token. This route is deliberately not behind
// the Auth middleware: a missing token is 403 here, and the handler still
// validates before touching the ledger.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  response
// @Failure      403  {object}  response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := c.Request().Header.Get("Authorization")
	if token == "" {
		return c.JSON(http.StatusForbidden, failResponse("Provide a valid auth token."))
	}

	if _, err := h.tokens.Validate(reqCtx(c), token); err != nil {
		if errors.Is(err, domain.ErrTokenRevoked) {
			// Already logged out; revoking again is a no-op success.
			return c.JSON(http.StatusOK, response{Status: statusSuccess, Message: "Successfully logged out."})
		}
		return c.JSON(http.StatusUnauthorized, failResponse("Invalid token. Please log in again."))
	}

	if err := h.tokens.Revoke(reqCtx(c), token); err != nil {
		return c.JSON(http.StatusInternalServerError, failResponse("Try again"))
	}
	metrics.RevocationsTotal.Inc()

	return c.JSON(http.StatusOK, response{Status: statusSuccess, Message: "Successfully logged out."})
}
