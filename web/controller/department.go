package controller

import (
	"net/http"

	"labstock/database/model"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var labTitleCaser = cases.Title(language.English)

// labFromSlug maps a URL slug to the canonical laboratory name, or "" for an
// unknown slug.
func labFromSlug(slug string) string {
	lab := labTitleCaser.String(slug)
	if !model.ValidLaboratory(lab) {
		return ""
	}
	return lab
}

// DepartmentController renders the department pages that link to each
// laboratory's inventory forms.
type DepartmentController struct {
	BaseController
}

func NewDepartmentController(g *gin.RouterGroup) *DepartmentController {
	a := &DepartmentController{}
	a.initRouter(g)
	return a
}

func (a *DepartmentController) initRouter(g *gin.RouterGroup) {
	g.GET("/departments/:lab", a.department)
}

func (a *DepartmentController) department(c *gin.Context) {
	lab := labFromSlug(c.Param("lab"))
	if lab == "" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	html(c, "department.html", lab+" Department", gin.H{
		"lab":     c.Param("lab"),
		"labName": lab,
	})
}
