// Package session wraps gin-contrib sessions for storing the logged-in
// account. Only a credential-stripped copy of the account ever enters the
// session.
package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/ruvumera/choir-panel/database/model"
)

const loginAccount = "LOGIN_ACCOUNT"

func init() {
	gob.Register(model.User{})
}

// SetLoginAccount saves user into the session with the password hash removed.
func SetLoginAccount(c *gin.Context, user *model.User) error {
	safe := *user
	safe.PasswordHash = ""
	s := sessions.Default(c)
	s.Set(loginAccount, safe)
	return s.Save()
}

// SetMaxAge adjusts the session cookie lifetime. The options are picked up
// by the next Save on the same request, so exactly one cookie is written.
func SetMaxAge(c *gin.Context, maxAge int) {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
}

func GetLoginAccount(c *gin.Context) *model.User {
	s := sessions.Default(c)
	if obj := s.Get(loginAccount); obj != nil {
		if user, ok := obj.(model.User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginAccount(c) != nil
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie("choir-panel", "", -1, "/", "", false, true)
	return nil
}
