// Package middleware provides Gin middleware for authentication and
// capability checks at the route boundary.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/web/service"
	"github.com/ruvumera/choir-panel/web/session"
)

const ctxLoginAccount = "LOGIN_ACCOUNT"

// RequireLogin verifies the session and re-validates it against the database
// with a bounded timeout. A session whose account was deleted is cleared and
// treated as unauthenticated. On timeout the stored copy is used as-is so a
// slow database never locks every page.
func RequireLogin() gin.HandlerFunc {
	authService := service.AuthService{}

	return func(c *gin.Context) {
		stored := session.GetLoginAccount(c)
		if stored == nil {
			abortUnauthenticated(c)
			return
		}

		fresh, err := authService.RestoreSession(c.Request.Context(), stored)
		switch {
		case err == nil:
			c.Set(ctxLoginAccount, fresh)
		case errors.Is(err, service.ErrNotFound):
			_ = session.ClearSession(c)
			abortUnauthenticated(c)
			return
		default:
			// Timeout or transient DB failure: force completion with the
			// session copy rather than blocking the caller.
			logger.Warning("session revalidation incomplete:", err)
			c.Set(ctxLoginAccount, stored)
		}

		c.Next()
	}
}

// GetContextAccount returns the account placed by RequireLogin.
func GetContextAccount(c *gin.Context) *model.User {
	if v, ok := c.Get(ctxLoginAccount); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

func abortUnauthenticated(c *gin.Context) {
	if isAPIRequest(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "login required"})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
	c.Abort()
}

func isAPIRequest(c *gin.Context) bool {
	return strings.Contains(c.Request.URL.Path, "/api/") ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
