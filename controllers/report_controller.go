package controllers

import (
	"errors"
	"net/http"

	"loandesk/app"
	"loandesk/db"
	"loandesk/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportController struct{ *Srv }

func NewReportController(s *Srv) *ReportController { return &ReportController{Srv: s} }

// CreateReport files the one allowed incident report for the caller's order.
func (rc *ReportController) CreateReport(c *gin.Context) {
	uid, _ := currentUserID(c)

	var in struct {
		Details string `json:"details" binding:"required"`
		Active  *bool  `json:"active"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	o, err := rc.Repo.FindOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "order not found"})
		return
	}
	if o.UserID != uid && !isStaff(c) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	rep := &models.Report{
		ID:      uuid.NewString(),
		OrderID: o.ID,
		UserID:  uid,
		Details: in.Details,
		Active:  active,
	}
	if err := rc.Repo.CreateReport(c.Request.Context(), rep); err != nil {
		if errors.Is(err, db.ErrReportExists) {
			c.JSON(http.StatusConflict, app.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rep)
}

func (rc *ReportController) GetOrderReport(c *gin.Context) {
	uid, _ := currentUserID(c)
	o, err := rc.Repo.FindOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "order not found"})
		return
	}
	if o.UserID != uid && !isStaff(c) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}
	rep, err := rc.Repo.FindReportByOrder(c.Request.Context(), o.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "no report for this order"})
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (rc *ReportController) ListMyReports(c *gin.Context) {
	uid, _ := currentUserID(c)
	reps, err := rc.Repo.ListUserReports(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"reports": reps})
}

// Staff: list all reports, optionally only the active ones.
func (rc *ReportController) ListReports(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	reps, err := rc.Repo.ListReports(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"reports": reps})
}
