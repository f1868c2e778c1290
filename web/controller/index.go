package controller

import (
	"net/http"
	"text/template"

	"labstock/logger"
	"labstock/web/service"
	"labstock/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// IndexController handles the login page and session lifecycle.
type IndexController struct {
	BaseController

	settingService service.SettingService
	accountService service.AccountService
}

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

func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "panel/")
		return
	}
	html(c, "login.html", "Sign in", nil)
}

func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "Invalid form data")
		return
	}
	if form.Username == "" {
		pureJsonMsg(c, http.StatusOK, false, "Please enter your username")
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, "Please enter your password")
		return
	}

	account := a.accountService.CheckAccount(form.Username, form.Password)
	safeUser := template.HTMLEscapeString(form.Username)

	if account == nil {
		logger.Warningf("wrong credentials for %q, IP: %q", safeUser, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, "Wrong username or password")
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("Unable to get session max age:", err)
	}

	if err := session.SetMaxAge(c, sessionMaxAge*60); err != nil {
		logger.Warning("Unable to set session max age:", err)
	}
	if err := session.SetLoginAccount(c, account); err != nil {
		logger.Warning("Unable to save session:", err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", safeUser, getRemoteIp(c))
	jsonMsg(c, "Login successful", nil)
}

func (a *IndexController) logout(c *gin.Context) {
	account := session.GetLoginAccount(c)
	if account != nil {
		logger.Infof("%s logged out successfully", account.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to clear session:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
}
