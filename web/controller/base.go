// Package controller provides the HTTP handlers of the labstock panel.
package controller

import (
	"net/http"

	"labstock/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the login guard shared by all panel controllers.
type BaseController struct{}

// checkLogin redirects anonymous browsers to the login page and rejects
// anonymous AJAX calls.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "Please log in again")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		}
		c.Abort()
	} else {
		c.Next()
	}
}
