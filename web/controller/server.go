package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/web/acl"
	"github.com/ruvumera/choir-panel/web/middleware"
	"github.com/ruvumera/choir-panel/web/service"
)

// ServerController exposes host status for the admin dashboard.
type ServerController struct {
	serverService service.ServerService
}

// NewServerController creates a ServerController and initializes its routes.
func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/server")
	g.Use(middleware.RequireCapability(acl.CapSettings))

	g.GET("/status", a.status)
}

func (a *ServerController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}
