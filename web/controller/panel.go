package controller

import (
	"strconv"

	"labstock/logger"
	"labstock/web/service"

	"github.com/gin-gonic/gin"
)

// PanelController owns the authenticated /panel group: the dashboard, the
// status and log endpoints, and the nested controllers.
type PanelController struct {
	BaseController

	serverService service.ServerService

	accountController    *AccountController
	departmentController *DepartmentController
	inventoryController  *InventoryController
}

func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/panel")
	g.Use(a.checkLogin)

	g.GET("/", a.index)
	g.GET("/status", a.status)
	g.GET("/logs", a.logs)

	a.accountController = NewAccountController(g)
	a.departmentController = NewDepartmentController(g)
	a.inventoryController = NewInventoryController(g)
}

func (a *PanelController) index(c *gin.Context) {
	html(c, "dashboard.html", "Dashboard", nil)
}

func (a *PanelController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *PanelController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
	if err != nil {
		count = 50
	}
	level := c.DefaultQuery("level", "INFO")
	jsonObj(c, logger.GetLogs(count, level), nil)
}
