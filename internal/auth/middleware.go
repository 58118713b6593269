package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"threadboard/internal/domain"
)

const (
	userKey   = "auth.user"
	claimsKey = "auth.claims"
)

// UserLoader resolves a session subject to a user record.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// LoadUser attaches the user named by the session cookie to the request.
// A missing, invalid or dangling session leaves the request anonymous.
func LoadUser(sessions *Sessions, users UserLoader, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := sessions.Parse(c.Request.Context(), token)
		if err != nil {
			logger.WithError(err).Debug("ignoring session cookie")
			c.Next()
			return
		}
		id, err := claims.UserID()
		if err != nil {
			c.Next()
			return
		}
		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			logger.WithError(err).WithField("user_id", id).Debug("session user not resolved")
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

// CurrentClaims returns the verified session claims, if any.
func CurrentClaims(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok && claims != nil
}

// RequireUser runs deny and aborts when the request carries no authenticated user.
func RequireUser(deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// DenyJSON answers 401 with a JSON error body.
func DenyJSON(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}

// SetCookie stores the session token on the client.
func SetCookie(c *gin.Context, sessions *Sessions, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(sessions.TTL().Seconds()), "/", "", secure, true)
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}
