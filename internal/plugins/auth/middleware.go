package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/mesto/internal/apperror"
)

// bearerPrefix is the Authorization scheme accepted by RequireAuth.
const bearerPrefix = "Bearer "

// contextKeyUserID is the Echo context key holding the authenticated user ID.
// Other plugins read it through GetUserID.
const contextKeyUserID = "auth_user_id"

// userIDKey is the context.Context key for code that only sees the request
// context.
type userIDKey struct{}

// RequireAuth returns middleware that turns an "Authorization: Bearer" header
// into an authenticated user ID. A missing header, another scheme and every
// kind of invalid token all fail with the same 401.
//
// Only the ID is attached; handlers that need the profile load it.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return apperror.NewUnauthorized(MsgAuthRequired)
			}

			token := strings.TrimPrefix(header, bearerPrefix)
			userID, err := service.Authenticate(c.Request().Context(), token)
			if err != nil {
				return apperror.NewUnauthorized(MsgAuthRequired)
			}

			c.Set(contextKeyUserID, userID)
			req := c.Request()
			c.SetRequest(req.WithContext(WithUserID(req.Context(), userID)))

			return next(c)
		}
	}
}

// --- Exported getters for other plugins ---

// GetUserID retrieves the authenticated user's ID from the Echo context.
// Returns empty string if the request is not authenticated.
func GetUserID(c echo.Context) string {
	id, ok := c.Get(contextKeyUserID).(string)
	if !ok {
		return ""
	}
	return id
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user ID stored by WithUserID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
