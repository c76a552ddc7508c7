package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/camden-git/policeportal/models"
)

// stubUsers answers GetByID with a fixed user or error.
type stubUsers struct {
	user *models.User
	err  error
}

func (s *stubUsers) Create(ctx context.Context, user *models.User) error { return nil }

func (s *stubUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsers) ListOfficers(ctx context.Context) ([]models.User, error) { return nil, nil }

func TestMiddlewareStatusByFailure(t *testing.T) {
	user := &models.User{ID: 7, Name: "Ada", Role: models.RoleAdmin}
	tests := []struct {
		name   string
		users  *stubUsers
		header string
		want   int
	}{
		{"valid session", &stubUsers{user: user}, "token", http.StatusOK},
		{"no token", &stubUsers{user: user}, "", http.StatusUnauthorized},
		{"malformed header", &stubUsers{user: user}, "Token abc", http.StatusUnauthorized},
		{"bad signature", &stubUsers{user: user}, "Bearer not-a-token", http.StatusUnauthorized},
		{"deleted user", &stubUsers{err: gorm.ErrRecordNotFound}, "token", http.StatusUnauthorized},
		{"database down", &stubUsers{err: errors.New("database is locked")}, "token", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &Authenticator{Users: tt.users, Secret: []byte("s"), Expiration: time.Hour, Log: zap.NewNop()}
			h := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, user, CurrentUser(r.Context()))
			}))

			req := httptest.NewRequest(http.MethodGet, "/cases", nil)
			switch tt.header {
			case "":
			case "token":
				token, _, err := auth.IssueToken(user)
				require.NoError(t, err)
				req.Header.Set("Authorization", "Bearer "+token)
			default:
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
