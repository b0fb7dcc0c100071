package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/web/acl"
	"github.com/ruvumera/choir-panel/web/middleware"
	"github.com/ruvumera/choir-panel/web/service"
	"github.com/ruvumera/choir-panel/web/session"
)

// PanelController serves the authenticated panel surface: dashboard stats,
// the caller's own profile and profile updates.
type PanelController struct {
	dashboardService service.DashboardService
	authService      service.AuthService
}

// NewPanelController creates a PanelController and initializes its routes.
func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/panel")
	g.Use(middleware.RequireLogin())

	// The landing itself is open to every logged-in role so that denied
	// page requests always have somewhere safe to land. The stats payload
	// stays behind the dashboard capability.
	g.GET("/", a.landing)
	g.GET("/api/me", a.me)
	g.GET("/api/stats", middleware.RequireCapability(acl.CapDashboard), a.stats)
	g.POST("/api/profile", middleware.RequireCapability(acl.CapProfile), a.updateProfile)
}

func (a *PanelController) landing(c *gin.Context) {
	jsonObj(c, middleware.GetContextAccount(c), nil)
}

func (a *PanelController) stats(c *gin.Context) {
	jsonObj(c, a.dashboardService.GetStats(), nil)
}

func (a *PanelController) me(c *gin.Context) {
	jsonObj(c, middleware.GetContextAccount(c), nil)
}

// ProfileForm carries the optional profile updates; absent fields stay
// unchanged.
type ProfileForm struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}

// updateProfile applies the caller's own profile changes and refreshes the
// session copy so it stays consistent with the database.
func (a *PanelController) updateProfile(c *gin.Context) {
	var form ProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}

	user := middleware.GetContextAccount(c)
	updated, err := a.authService.UpdateProfile(user.Id, service.ProfileUpdate{
		Name:     form.Name,
		Email:    form.Email,
		Avatar:   form.Avatar,
		Password: form.Password,
	})
	if err != nil {
		jsonErr(c, err)
		return
	}

	if err := session.SetLoginAccount(c, updated); err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, updated, nil)
}
