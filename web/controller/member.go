package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/web/acl"
	"github.com/ruvumera/choir-panel/web/middleware"
	"github.com/ruvumera/choir-panel/web/service"
)

// MemberController exposes the member directory API.
type MemberController struct {
	memberService service.MemberService
}

// NewMemberController creates a MemberController and initializes its routes.
func NewMemberController(g *gin.RouterGroup) *MemberController {
	a := &MemberController{}
	a.initRouter(g)
	return a
}

func (a *MemberController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/members")

	g.GET("", middleware.RequireCapability(acl.CapMembersRead), a.list)
	g.POST("", middleware.RequireCapability(acl.CapMembersWrite), a.create)
	g.POST("/:id", middleware.RequireCapability(acl.CapMembersWrite), a.update)
	g.POST("/:id/delete", middleware.RequireCapability(acl.CapMembersWrite), a.delete)
}

func (a *MemberController) list(c *gin.Context) {
	members, err := a.memberService.GetMembers()
	jsonObj(c, members, err)
}

func (a *MemberController) create(c *gin.Context) {
	var member model.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}
	created, err := a.memberService.CreateMember(middleware.GetContextAccount(c), &member)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, created, nil)
}

func (a *MemberController) update(c *gin.Context) {
	var member model.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}
	updated, err := a.memberService.UpdateMember(middleware.GetContextAccount(c), c.Param("id"), &member)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, updated, nil)
}

func (a *MemberController) delete(c *gin.Context) {
	if err := a.memberService.DeleteMember(middleware.GetContextAccount(c), c.Param("id")); err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "member deleted", nil)
}
