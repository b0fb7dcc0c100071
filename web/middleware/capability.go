package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/web/acl"
	"github.com/ruvumera/choir-panel/web/service"
)

// RequireCapability denies the request unless the logged-in account's role
// holds cap. Authenticated-but-denied page requests land on the dashboard,
// never an error page; API requests get 403.
func RequireCapability(cap acl.Capability) gin.HandlerFunc {
	settingService := service.SettingService{}

	return func(c *gin.Context) {
		user := GetContextAccount(c)
		if user == nil {
			abortUnauthenticated(c)
			return
		}

		editorDashboard, err := settingService.GetEditorDashboard()
		if err != nil {
			logger.Warning("reading editorDashboard setting failed:", err)
			editorDashboard = true
		}

		if !acl.NewGate(editorDashboard).Allows(user.Role, cap) {
			if isAPIRequest(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "msg": "permission denied"})
				return
			}
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"panel/")
			c.Abort()
			return
		}

		c.Next()
	}
}
