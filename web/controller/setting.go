package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/web/acl"
	"github.com/ruvumera/choir-panel/web/entity"
	"github.com/ruvumera/choir-panel/web/middleware"
	"github.com/ruvumera/choir-panel/web/service"
	"github.com/ruvumera/choir-panel/web/websocket"
)

// SettingController exposes the panel settings and log view, admin-only.
type SettingController struct {
	settingService service.SettingService
}

// NewSettingController creates a SettingController and initializes its routes.
func NewSettingController(g *gin.RouterGroup) *SettingController {
	a := &SettingController{}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/settings")
	g.Use(middleware.RequireCapability(acl.CapSettings))

	g.GET("", a.get)
	g.POST("", a.update)
	g.GET("/logs", a.logs)
}

func (a *SettingController) get(c *gin.Context) {
	setting, err := a.settingService.GetAllSetting()
	jsonObj(c, setting, err)
}

func (a *SettingController) update(c *gin.Context) {
	var setting entity.AllSetting
	if err := c.ShouldBindJSON(&setting); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}
	if err := a.settingService.UpdateAllSetting(&setting); err != nil {
		jsonMsg(c, "update settings", err)
		return
	}
	logger.Info("panel settings updated, some changes take effect after restart")
	websocket.BroadcastNotice("settings", "panel settings updated", "info")
	jsonMsg(c, "settings updated", nil)
}

func (a *SettingController) logs(c *gin.Context) {
	jsonObj(c, logger.GetLogs(100, "INFO"), nil)
}
