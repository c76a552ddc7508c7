package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/camden-git/policeportal/models"
	"github.com/camden-git/policeportal/permissions"
	"github.com/camden-git/policeportal/validation"
)

type AuthHandler struct {
	Auth *Authenticator
	// Secure marks the session cookie as https-only.
	Secure bool
}

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	User      *models.User `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func readLoginPayload(r *http.Request) (LoginPayload, error) {
	var payload LoginPayload
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&payload)
		return payload, err
	}
	if err := parseForm(r); err != nil {
		return payload, err
	}
	payload.Email = r.PostForm.Get("email")
	payload.Password = r.PostForm.Get("password")
	return payload, nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	payload, err := readLoginPayload(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request payload")
		return
	}

	errs := validation.Errors{}
	if strings.TrimSpace(payload.Email) == "" {
		errs.Add("email", "The email field is required.")
	}
	if payload.Password == "" {
		errs.Add("password", "The password field is required.")
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	user, err := h.Auth.Users.GetByEmail(r.Context(), payload.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, h.Auth.Log, err, "User")
		return
	}
	if user == nil || !user.CheckPassword(payload.Password) {
		writeValidationError(w, validation.Errors{"email": {"These credentials do not match our records."}})
		return
	}

	token, expiresAt, err := h.Auth.IssueToken(user)
	if err != nil {
		writeError(w, h.Auth.Log, err, "Session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.Auth.Log.Info("user logged in", zap.Uint("user_id", user.ID))
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: user, ExpiresAt: expiresAt})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeRedirect(w, http.StatusOK, "/", "Logged out successfully.", nil)
}

// Me returns the authenticated user and the permissions their role grants.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":        user,
		"permissions": permissions.ForRole(user.Role),
	})
}
