package api

import (
	"database/sql"
	"net/http"

	"github.com/farmbook/farmbook/internal/auth"
	domainerrors "github.com/farmbook/farmbook/internal/errors"
	"github.com/farmbook/farmbook/internal/model"
	"github.com/farmbook/farmbook/internal/store"
	"github.com/farmbook/farmbook/internal/validation"
)

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	DB        *sql.DB
	Tokens    *auth.Issuer
	Validator *validation.Validator
}

type credentialsRequest struct {
	Username string `json:"username" validate:"notblank,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type tokenResponse struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expires_at"`
	User      *model.User `json:"user"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,max=72"`
}

func (h *AuthHandler) issue(w http.ResponseWriter, r *http.Request, status int, user *model.User) {
	token, claims, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, status, tokenResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"),
		User:      user,
	})
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.Username = model.NormalizeUsername(req.Username)
	if err := h.Validator.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := model.ValidatePassword(req.Password); err != nil {
		writeError(w, r, domainerrors.Validation(err.Error()))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := store.CreateUser(r.Context(), h.DB, req.Username, hash)
	if err != nil {
		writeError(w, r, err)
		return
	}

	requestLogger(r.Context()).Info("user signed up", "user", user.Username)
	h.issue(w, r, http.StatusCreated, user)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.Username = model.NormalizeUsername(req.Username)
	if err := h.Validator.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := store.GetUserByUsername(r.Context(), h.DB, req.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		requestLogger(r.Context()).Warn("login failed", "username", req.Username, "remote", r.RemoteAddr)
		writeError(w, r, domainerrors.Unauthorized("invalid credentials"))
		return
	}

	requestLogger(r.Context()).Info("user logged in", "user", user.Username)
	h.issue(w, r, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout by revoking the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
		writeError(w, r, err)
		return
	}

	requestLogger(r.Context()).Info("user logged out", "user", claims.Username)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Validator.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := model.ValidatePassword(req.NewPassword); err != nil {
		writeError(w, r, domainerrors.Validation(err.Error()))
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil || user.DeletedAt != nil {
		writeError(w, r, domainerrors.Unauthorized("account no longer exists"))
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		writeError(w, r, domainerrors.Unauthorized("current password is incorrect"))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := store.UpdateUserPassword(r.Context(), h.DB, claims.UserID, hash); err != nil {
		writeError(w, r, err)
		return
	}

	requestLogger(r.Context()).Info("user changed password", "user", claims.Username)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil || user.DeletedAt != nil {
		writeError(w, r, domainerrors.NotFound("account not found"))
		return
	}
	jsonResponse(w, http.StatusOK, user)
}
