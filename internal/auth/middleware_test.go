package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/kenziahmos000/web-project-new/internal/errors"
)

func newProtectedEcho(svc *JWTService) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, map[string]string{
			"id":    identity.ID.String(),
			"email": identity.Email,
		})
	}, Middleware(svc))
	return e
}

func TestMiddleware_ValidToken(t *testing.T) {
	svc := NewJWTService("test-secret")
	e := newProtectedEcho(svc)

	userID := uuid.New()
	token, err := svc.Issue(userID, "test@example.com")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["id"])
	assert.Equal(t, "test@example.com", body["email"])
}

func TestMiddleware_Rejections(t *testing.T) {
	svc := NewJWTService("test-secret")
	e := newProtectedEcho(svc)

	expiredClaims := &Claims{
		UserID: uuid.New().String(),
		Email:  "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	tests := []struct {
		name        string
		authHeader  string
		wantMessage string
	}{
		{
			name:        "no header",
			authHeader:  "",
			wantMessage: "No token provided. Authorization required.",
		},
		{
			name:        "malformed header",
			authHeader:  "Token abc",
			wantMessage: "No token provided. Authorization required.",
		},
		{
			name:        "garbage token",
			authHeader:  "Bearer not-a-token",
			wantMessage: "Invalid or expired token",
		},
		{
			name:        "expired token",
			authHeader:  "Bearer " + expired,
			wantMessage: "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body apperrors.ErrorResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.NotEmpty(t, body.Error)
		})
	}
}
