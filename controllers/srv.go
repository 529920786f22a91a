// controllers/srv.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"loandesk/app"
	"loandesk/db"
	"loandesk/session"
	"loandesk/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Srv struct {
	Repo     *db.Repo
	AppSess  *session.AppSessionStore
	Settings *settings.Store
	Log      *zap.Logger
	Cfg      app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:     db.NewRepo(a.DB),
		AppSess:  a.AppSessions(),
		Settings: a.Settings,
		Log:      a.Log,
		Cfg:      a.Config,
	}
}

// --- helpers ---

func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.Cfg.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	uid, _ := v.(string)
	return uid, uid != ""
}

func isStaff(c *gin.Context) bool {
	v, ok := c.Get("isStaff")
	if !ok {
		return false
	}
	st, _ := v.(bool)
	return st
}

// storeHours loads the business-hours settings, degrading to defaults when
// the settings store is unreachable.
func (s *Srv) storeHours(c *gin.Context) settings.StoreHours {
	hours, err := s.Settings.Hours(c.Request.Context())
	if err != nil {
		s.Log.Warn("settings store unreachable, using default hours", zap.Error(err))
		return settings.DefaultHours()
	}
	return hours
}
