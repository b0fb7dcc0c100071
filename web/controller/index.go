// Package controller provides the HTTP handlers of the choir panel: login,
// dashboard and the JSON API for songs, members, chat, users, settings and
// backups.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/web/service"
	"github.com/ruvumera/choir-panel/web/session"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// IndexController handles the root, login and logout routes.
type IndexController struct {
	settingService service.SettingService
	authService    service.AuthService
}

// NewIndexController creates an IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/logout", a.logout)

	g.POST("/login", a.login)
}

// index redirects logged-in callers to the panel; everyone else gets the
// login hint.
func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "panel/")
		return
	}
	pureJsonMsg(c, http.StatusOK, true, "login required")
}

// login authenticates and creates the session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}
	if form.Email == "" {
		pureJsonMsg(c, http.StatusOK, false, "email can not be empty")
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, "password can not be empty")
		return
	}

	user, err := a.authService.Login(form.Email, form.Password)
	if err != nil {
		logger.Warningf("wrong login attempt for %q, IP: %q", form.Email, getRemoteIp(c))
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrInvalidCredentials) {
			pureJsonMsg(c, http.StatusOK, false, err.Error())
			return
		}
		jsonErr(c, err)
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("Unable to get session's max age from DB")
	}

	session.SetMaxAge(c, sessionMaxAge*60)
	if err := session.SetLoginAccount(c, user); err != nil {
		logger.Warning("Unable to save session:", err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Email, getRemoteIp(c))
	jsonMsg(c, "login successful", nil)
}

// logout clears the session and returns to the login route.
func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginAccount(c)
	if user != nil {
		logger.Infof("%s logged out successfully", user.Email)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to clear session:", err)
	}
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
}
