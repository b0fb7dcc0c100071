package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/web/acl"
	"github.com/ruvumera/choir-panel/web/middleware"
	"github.com/ruvumera/choir-panel/web/service"
)

// SongController exposes the lyrics library API.
type SongController struct {
	songService service.SongService
}

// NewSongController creates a SongController and initializes its routes.
func NewSongController(g *gin.RouterGroup) *SongController {
	a := &SongController{}
	a.initRouter(g)
	return a
}

func (a *SongController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/songs")

	g.GET("", middleware.RequireCapability(acl.CapSongsRead), a.list)
	g.GET("/:id", middleware.RequireCapability(acl.CapSongsRead), a.get)
	g.POST("", middleware.RequireCapability(acl.CapSongsWrite), a.create)
	g.POST("/:id", middleware.RequireCapability(acl.CapSongsWrite), a.update)
	g.POST("/:id/delete", middleware.RequireCapability(acl.CapSongsWrite), a.delete)
}

func (a *SongController) list(c *gin.Context) {
	songs, err := a.songService.GetSongs()
	jsonObj(c, songs, err)
}

func (a *SongController) get(c *gin.Context) {
	song, err := a.songService.GetSong(c.Param("id"))
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, song, nil)
}

func (a *SongController) create(c *gin.Context) {
	var song model.Song
	if err := c.ShouldBindJSON(&song); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}
	created, err := a.songService.CreateSong(middleware.GetContextAccount(c), &song)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, created, nil)
}

func (a *SongController) update(c *gin.Context) {
	var song model.Song
	if err := c.ShouldBindJSON(&song); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}
	updated, err := a.songService.UpdateSong(middleware.GetContextAccount(c), c.Param("id"), &song)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, updated, nil)
}

func (a *SongController) delete(c *gin.Context) {
	if err := a.songService.DeleteSong(middleware.GetContextAccount(c), c.Param("id")); err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "song deleted", nil)
}
