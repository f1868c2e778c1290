package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"labstock/database"
	"labstock/database/model"
	"labstock/logger"
	"labstock/web/service"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// ItemForm carries one submitted inventory entry.
type ItemForm struct {
	Name            string `form:"name"`
	Quantity        string `form:"quantity"`
	Unit            string `form:"unit"`
	StorageLocation string `form:"storage_location"`
	Expiry          string `form:"expiry"` // yyyy-mm-dd, optional
}

var kindTitles = map[string]string{
	model.KindChemical:   "Chemical Inventory",
	model.KindBiological: "Biological Inventory",
	model.KindSupply:     "General Supplies",
}

// InventoryController serves the per-laboratory inventory forms and the
// printable QR asset labels.
type InventoryController struct {
	BaseController

	inventoryService service.InventoryService
}

func NewInventoryController(g *gin.RouterGroup) *InventoryController {
	a := &InventoryController{}
	a.initRouter(g)
	return a
}

func (a *InventoryController) initRouter(g *gin.RouterGroup) {
	g.GET("/inventory/:lab/:kind", a.items)
	g.POST("/inventory/:lab/:kind", a.addItem)
	// lives outside /inventory so the static segment cannot collide with
	// the :lab parameter; the .png suffix keeps gzip off the label
	g.GET("/items/:id/qrcode.png", a.qrcode)
}

func (a *InventoryController) items(c *gin.Context) {
	lab := labFromSlug(c.Param("lab"))
	kind := c.Param("kind")
	if lab == "" || !model.ValidKind(kind) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	items, err := a.inventoryService.ListItems(lab, kind)
	if err != nil {
		logger.Warning("list inventory failed:", err)
	}
	html(c, "inventory.html", lab+" "+kindTitles[kind], gin.H{
		"lab":       c.Param("lab"),
		"labName":   lab,
		"kind":      kind,
		"kindTitle": kindTitles[kind],
		"items":     items,
	})
}

func (a *InventoryController) addItem(c *gin.Context) {
	lab := labFromSlug(c.Param("lab"))
	kind := c.Param("kind")
	if lab == "" || !model.ValidKind(kind) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var form ItemForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, "Add inventory item", err)
		return
	}

	item := &model.InventoryItem{
		Laboratory:      lab,
		Kind:            kind,
		Name:            strings.TrimSpace(form.Name),
		Unit:            strings.TrimSpace(form.Unit),
		StorageLocation: strings.TrimSpace(form.StorageLocation),
	}
	if form.Quantity != "" {
		quantity, err := strconv.ParseFloat(form.Quantity, 64)
		if err != nil {
			jsonMsg(c, "Add inventory item", err)
			return
		}
		item.Quantity = quantity
	}
	if form.Expiry != "" {
		expiry, err := time.Parse("2006-01-02", form.Expiry)
		if err != nil {
			jsonMsg(c, "Add inventory item", err)
			return
		}
		item.ExpiryTime = expiry.UnixMilli()
	}

	if err := a.inventoryService.AddItem(item); err != nil {
		jsonMsg(c, "Add inventory item", err)
		return
	}
	c.Redirect(http.StatusFound, c.GetString("base_path")+"panel/inventory/"+c.Param("lab")+"/"+kind)
}

// qrcode renders the item's asset tag as a printable label.
func (a *InventoryController) qrcode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	item, err := a.inventoryService.GetItem(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			jsonMsg(c, "Load inventory item", err)
		}
		return
	}

	png, err := qrcode.Encode(item.AssetTag, qrcode.Medium, 256)
	if err != nil {
		jsonMsg(c, "Render QR label", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
