package controllers

import (
	"net/http"
	"strconv"
	"time"

	"loandesk/app"
	"loandesk/db"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct{ *Srv }

func NewAvailabilityController(s *Srv) *AvailabilityController {
	return &AvailabilityController{Srv: s}
}

func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	start, err1 := time.Parse(time.RFC3339, c.Query("start"))
	end, err2 := time.Parse(time.RFC3339, c.Query("end"))
	if err1 != nil || err2 != nil || !start.Before(end) {
		c.JSON(http.StatusBadRequest, app.H{"error": "start and end must be RFC 3339 timestamps with start < end"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// UnitsAvailable lists the interference-free units of an item for a window.
func (ac *AvailabilityController) UnitsAvailable(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}
	units, err := ac.Repo.UnitsAvailable(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"units": units, "count": len(units)})
}

// AlternativeWindow searches forward for the first same-duration window with
// enough free units. An empty body with 200 means the horizon was exhausted.
func (ac *AvailabilityController) AlternativeWindow(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil || quantity < 1 {
		c.JSON(http.StatusBadRequest, app.H{"error": "quantity must be a positive integer"})
		return
	}
	w, err := ac.Repo.FindAlternativeWindow(c.Request.Context(), c.Param("id"),
		start, end, quantity, db.DefaultSearchParams())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	if w == nil {
		c.JSON(http.StatusOK, app.H{"window": nil})
		return
	}
	c.JSON(http.StatusOK, app.H{"window": w})
}

// JointAlternatives searches for windows where every requested item quantity
// is satisfiable at once.
func (ac *AvailabilityController) JointAlternatives(c *gin.Context) {
	var in struct {
		OrderDate  time.Time        `json:"orderDate" binding:"required"`
		ReturnDate time.Time        `json:"returnDate" binding:"required"`
		Items      []db.UnitRequest `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	wins, err := ac.Repo.FindJointAlternatives(c.Request.Context(), in.Items,
		in.OrderDate, in.ReturnDate, db.DefaultSearchParams(), db.DefaultAlternativeLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"alternatives": wins})
}
