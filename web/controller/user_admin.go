package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/web/acl"
	"github.com/ruvumera/choir-panel/web/middleware"
	"github.com/ruvumera/choir-panel/web/service"
)

// UserAdminController exposes account administration, admin-only.
type UserAdminController struct {
	userAdminService service.UserAdminService
}

// NewUserAdminController creates a UserAdminController and initializes its routes.
func NewUserAdminController(g *gin.RouterGroup) *UserAdminController {
	a := &UserAdminController{}
	a.initRouter(g)
	return a
}

func (a *UserAdminController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/users")
	g.Use(middleware.RequireCapability(acl.CapUsersAdmin))

	g.GET("", a.list)
	g.POST("", a.create)
	g.POST("/:id/role", a.updateRole)
	g.POST("/:id/password", a.resetPassword)
	g.POST("/:id/delete", a.delete)
}

func (a *UserAdminController) list(c *gin.Context) {
	users, err := a.userAdminService.GetUsers()
	jsonObj(c, users, err)
}

// RegisterForm is the admin "create account" request.
type RegisterForm struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required"`
	Password string     `json:"password" binding:"required"`
	Role     model.Role `json:"role" binding:"required"`
}

func (a *UserAdminController) create(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}
	user, err := a.userAdminService.CreateUser(middleware.GetContextAccount(c),
		form.Name, form.Email, form.Password, form.Role)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, user, nil)
}

// RoleForm changes an account's role.
type RoleForm struct {
	Role model.Role `json:"role" binding:"required"`
}

func (a *UserAdminController) updateRole(c *gin.Context) {
	var form RoleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}
	user, err := a.userAdminService.UpdateUserRole(middleware.GetContextAccount(c), c.Param("id"), form.Role)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, user, nil)
}

// PasswordForm carries the replacement credential.
type PasswordForm struct {
	Password string `json:"password" binding:"required"`
}

func (a *UserAdminController) resetPassword(c *gin.Context) {
	var form PasswordForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}
	err := a.userAdminService.ResetPassword(middleware.GetContextAccount(c), c.Param("id"), form.Password)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "password reset", nil)
}

func (a *UserAdminController) delete(c *gin.Context) {
	err := a.userAdminService.DeleteUser(middleware.GetContextAccount(c), c.Param("id"))
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "user deleted", nil)
}
