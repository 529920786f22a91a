package controllers

import (
	"net/http"
	"strconv"

	"loandesk/app"
	"loandesk/settings"

	"github.com/gin-gonic/gin"
)

type SettingsController struct{ *Srv }

func NewSettingsController(s *Srv) *SettingsController { return &SettingsController{Srv: s} }

// GetSettings returns the effective store configuration, defaults included.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	hours, err := sc.Settings.Hours(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	days := make([]int, 0, 7)
	for d, open := range hours.OpenDays {
		if open {
			days = append(days, d)
		}
	}
	c.JSON(http.StatusOK, app.H{
		"openingTime": hours.Opening.String(),
		"closingTime": hours.Closing.String(),
		"openDays":    days,
		"pageSize":    sc.Settings.PageSize(c.Request.Context()),
	})
}

// UpdateSettings writes validated values into the settings store. Unknown
// keys are rejected; values are parsed before being persisted so a bad write
// can never wedge order validation.
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var in map[string]string
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	for name, value := range in {
		switch name {
		case settings.KeyOpeningTime, settings.KeyClosingTime:
			if _, err := settings.ParseClock(value); err != nil {
				c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
				return
			}
		case settings.KeyOpenDays:
			if _, err := settings.ParseOpenDays(value); err != nil {
				c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
				return
			}
		case settings.KeyPageSize:
			if n, err := strconv.Atoi(value); err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, app.H{"error": "page size must be a positive integer"})
				return
			}
		default:
			c.JSON(http.StatusBadRequest, app.H{"error": "unknown setting: " + name})
			return
		}
	}

	for name, value := range in {
		if err := sc.Settings.Set(c.Request.Context(), name, value); err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
