package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/camden-git/policeportal/models"
	"github.com/camden-git/policeportal/permissions"
	"github.com/camden-git/policeportal/repository"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// UserContextKey is the key used to store the user object in the request context.
	UserContextKey ContextKey = "user"

	// SessionCookieName carries the token for browser clients.
	SessionCookieName = "session_token"

	tokenIssuer = "policeportal"
)

var (
	errNoToken        = errors.New("no session token")
	errInvalidSession = errors.New("invalid session")
)

// CurrentUser returns the authenticated caller, or nil outside AuthMiddleware.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

// Authenticator issues and verifies session tokens.
type Authenticator struct {
	Users      repository.UserRepository
	Secret     []byte
	Expiration time.Duration
	Log        *zap.Logger
}

// IssueToken signs a token whose subject is the user id.
func (a *Authenticator) IssueToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(a.Expiration)
	claims := &jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

func tokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", fmt.Errorf("%w: authorization header format must be Bearer {token}", errInvalidSession)
		}
		return parts[1], nil
	}
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", errNoToken
}

// identify resolves the caller of r from its token. Credential problems
// wrap errNoToken or errInvalidSession; a deleted user is
// gorm.ErrRecordNotFound; anything else is a lookup failure.
func (a *Authenticator) identify(r *http.Request) (*models.User, error) {
	tokenString, err := tokenFromRequest(r)
	if err != nil {
		return nil, err
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.Secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidSession, err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject '%s': %w", errInvalidSession, claims.Subject, err)
	}

	// the user may have been deleted after the token was issued
	return a.Users.GetByID(r.Context(), uint(userID))
}

// Middleware rejects requests without a valid session and puts the user in
// the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.identify(r)
		switch {
		case err == nil:
		case errors.Is(err, errNoToken):
			WriteAPIError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
			return
		case errors.Is(err, errInvalidSession), errors.Is(err, gorm.ErrRecordNotFound):
			a.Log.Debug("rejected session", zap.String("path", r.URL.Path), zap.Error(err))
			WriteAPIError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
			return
		default:
			writeError(w, a.Log, err, "Session")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission is a middleware that checks the authenticated user's role
// grants key. It should be used after Authenticator.Middleware.
func RequirePermission(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			if user == nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
				return
			}
			if !permissions.Allows(user.Role, key) {
				WriteAPIError(w, http.StatusForbidden, "forbidden", fmt.Sprintf("Forbidden: requires permission '%s'", key))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
