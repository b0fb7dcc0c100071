package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/web/middleware"
)

// APIController mounts the JSON API under /panel/api behind the login check.
type APIController struct {
	songs   *SongController
	members *MemberController
	chat    *ChatController
	users   *UserAdminController
	setting *SettingController
	backup  *BackupController
	server  *ServerController
}

// NewAPIController creates the API group and all its sub-controllers.
func NewAPIController(g *gin.RouterGroup) *APIController {
	a := &APIController{}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/panel/api")
	g.Use(middleware.RequireLogin())

	a.songs = NewSongController(g)
	a.members = NewMemberController(g)
	a.chat = NewChatController(g)
	a.users = NewUserAdminController(g)
	a.setting = NewSettingController(g)
	a.backup = NewBackupController(g)
	a.server = NewServerController(g)
}
