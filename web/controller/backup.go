package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/web/acl"
	"github.com/ruvumera/choir-panel/web/middleware"
	"github.com/ruvumera/choir-panel/web/service"
)

// maxBackupUpload bounds restore uploads; avatars and chat media inflate
// documents well past typical JSON sizes.
const maxBackupUpload = 64 << 20

// BackupController exposes database export and restore, admin-only.
type BackupController struct {
	backupService service.BackupService
}

// NewBackupController creates a BackupController and initializes its routes.
func NewBackupController(g *gin.RouterGroup) *BackupController {
	a := &BackupController{}
	a.initRouter(g)
	return a
}

func (a *BackupController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/backup")
	g.Use(middleware.RequireCapability(acl.CapSettings))

	g.GET("/export", a.export)
	g.POST("/import", a.importDB)
}

// export streams the current snapshot as a JSON download.
func (a *BackupController) export(c *gin.Context) {
	data, name, err := a.backupService.ExportJSON()
	if err != nil {
		jsonErr(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// importDB restores an uploaded document. The default mode is replace and it
// is destructive; callers must confirm before invoking this endpoint.
func (a *BackupController) importDB(c *gin.Context) {
	mode := service.BackupMode(c.DefaultQuery("mode", string(service.BackupModeReplace)))

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupUpload))
	if err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}

	doc, err := a.backupService.ParseDocument(body)
	if err != nil {
		jsonErr(c, err)
		return
	}

	if err := a.backupService.ImportAll(middleware.GetContextAccount(c), doc, mode); err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "database restored", nil)
}
