package auth

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "github.com/kenziahmos000/web-project-new/internal/errors"
)

// identityKey is the echo context key the middleware stores the resolved
// identity under.
const identityKey = "identity"

// Identity is the caller resolved from a verified session token. It is not
// re-validated against the user store per request, so a role change after
// issuance is not reflected until re-login.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// Middleware returns the auth gate: it extracts the bearer token, verifies it
// through the JWT service and attaches the resolved Identity to the request
// context. Missing, malformed and expired tokens all reject with 401.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityKey,
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.Verify(tokenString)
			if err != nil {
				return nil, err
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return nil, ErrTokenInvalid
			}
			return Identity{ID: userID, Email: claims.Email}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			message := "No token provided. Authorization required."
			if errors.Is(err, ErrTokenInvalid) || errors.Is(err, ErrTokenExpired) {
				message = "Invalid or expired token"
			}
			return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
				Success: false,
				Message: message,
				Error:   err.Error(),
			})
		},
	})
}

// CurrentIdentity returns the identity attached by Middleware.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}
