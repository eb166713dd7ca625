package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler(captured *Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.UserID = UserIDFromContext(r.Context())
			captured.Name = UserNameFromContext(r.Context())
			captured.IsAdmin = IsAdminFromContext(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func validAdmin(token string) (*Claims, error) {
	if token != "good-token" {
		return nil, fmt.Errorf("bad token")
	}
	return &Claims{UserID: "u1", Name: "Ada", IsAdmin: true}, nil
}

func TestAuth_MissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Auth(validAdmin)(okHandler(nil)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAuth_MalformedHeader(t *testing.T) {
	tests := []string{"good-token", "Basic abc", "Bearer"}

	for _, header := range tests {
		t.Run(header, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", header)

			Auth(validAdmin)(okHandler(nil)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer wrong")

	Auth(validAdmin)(okHandler(nil)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidToken_InjectsClaims(t *testing.T) {
	var got Claims
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	Auth(validAdmin)(okHandler(&got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "Ada", got.Name)
	assert.True(t, got.IsAdmin)
}

func TestAuth_BearerCaseInsensitive(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-token")

	Auth(validAdmin)(okHandler(nil)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_Forbidden(t *testing.T) {
	nonAdmin := func(token string) (*Claims, error) {
		return &Claims{UserID: "u2", IsAdmin: false}, nil
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
	req.Header.Set("Authorization", "Bearer anything")

	Auth(nonAdmin)(RequireAdmin(okHandler(nil))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestRequireAdmin_Allowed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	Auth(validAdmin)(RequireAdmin(okHandler(nil))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_WithoutAuthContext(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)

	RequireAdmin(okHandler(nil)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
