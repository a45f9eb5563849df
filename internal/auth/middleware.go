package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"adviceboard/internal/policy"
)

// identityContextKey is where OptionalAuth stores the caller's identity.
const identityContextKey = "identity"

// CurrentIdentity returns the authenticated caller's identity, or nil when
// the request is anonymous. It understands both the echo-jwt token set on
// required routes and the identity set by OptionalAuth.
func CurrentIdentity(c echo.Context) *policy.Identity {
	if ident, ok := c.Get(identityContextKey).(*policy.Identity); ok {
		return ident
	}

	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil
	}
	return &policy.Identity{UserID: claims.UserID, Role: claims.Role}
}

// OptionalAuth extracts an identity from a bearer token when one is present
// and valid, and treats the request as anonymous otherwise. Routes whose
// behavior merely varies by role use this instead of a hard 401.
func OptionalAuth(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return next(c)
			}

			claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil {
				// anonymous rather than 401: the route does not require auth
				return next(c)
			}

			c.Set(identityContextKey, &policy.Identity{UserID: claims.UserID, Role: claims.Role})
			return next(c)
		}
	}
}
