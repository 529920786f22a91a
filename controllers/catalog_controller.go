package controllers

import (
	"net/http"
	"time"

	"loandesk/app"
	"loandesk/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogController struct{ *Srv }

func NewCatalogController(s *Srv) *CatalogController { return &CatalogController{Srv: s} }

// Categories

func (cc *CatalogController) CreateCategory(c *gin.Context) {
	var in struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	cat := &models.Category{ID: uuid.NewString(), Name: in.Name}
	if err := cc.Repo.CreateCategory(c.Request.Context(), cat); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (cc *CatalogController) ListCategories(c *gin.Context) {
	cats, err := cc.Repo.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"categories": cats})
}

// Items

func (cc *CatalogController) CreateItem(c *gin.Context) {
	var in struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		ImageURL    string   `json:"imageUrl"`
		CategoryIDs []string `json:"categoryIds"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	it := &models.Item{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
	if err := cc.Repo.CreateItem(c.Request.Context(), it, in.CategoryIDs); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, it)
}

type itemRow struct {
	models.Item
	AvailableUnits *int64 `json:"availableUnits,omitempty"`
}

// ListItems returns the catalog, optionally filtered by category name.
// When start/end query params (RFC 3339) are present, each row also carries
// the number of interference-free units for that window.
func (cc *CatalogController) ListItems(c *gin.Context) {
	items, err := cc.Repo.ListItems(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	start, err1 := time.Parse(time.RFC3339, c.Query("start"))
	end, err2 := time.Parse(time.RFC3339, c.Query("end"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusOK, app.H{"items": items})
		return
	}

	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		n, err := cc.Repo.CountUnitsAvailable(c.Request.Context(), it.ID, start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
			return
		}
		count := n
		rows = append(rows, itemRow{Item: it, AvailableUnits: &count})
	}
	c.JSON(http.StatusOK, app.H{"items": rows})
}

func (cc *CatalogController) GetItem(c *gin.Context) {
	it, err := cc.Repo.FindItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, it)
}

// Units

func (cc *CatalogController) CreateUnit(c *gin.Context) {
	var in struct {
		SerialNumber string `json:"serialNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	itemID := c.Param("id")
	if _, err := cc.Repo.FindItemByID(c.Request.Context(), itemID); err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
		return
	}
	u := &models.Unit{
		ID:           uuid.NewString(),
		ItemID:       itemID,
		SerialNumber: in.SerialNumber,
		Available:    true,
	}
	if err := cc.Repo.CreateUnit(c.Request.Context(), u); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (cc *CatalogController) ListUnits(c *gin.Context) {
	units, err := cc.Repo.ListUnits(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"units": units})
}

// SetUnitAvailable toggles the manual enable/disable flag on one unit.
func (cc *CatalogController) SetUnitAvailable(c *gin.Context) {
	var in struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := cc.Repo.SetUnitAvailable(c.Request.Context(), c.Param("unitId"), *in.Available); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
