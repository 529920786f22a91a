package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"loandesk/app"
	"loandesk/db"
	"loandesk/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderController struct{ *Srv }

func NewOrderController(s *Srv) *OrderController { return &OrderController{Srv: s} }

type placeOrderReq struct {
	OrderDate  time.Time        `json:"orderDate" binding:"required"`
	ReturnDate time.Time        `json:"returnDate" binding:"required"`
	Items      []db.UnitRequest `json:"items" binding:"required"`
}

// PlaceOrder validates the window against the configured store hours, then
// runs the all-or-nothing allocation. On insufficiency the response carries
// up to three jointly satisfiable alternative windows; the suggestion is
// advisory only, nothing is retried on the user's behalf.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in placeOrderReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	hours := oc.storeHours(c)
	if err := hours.ValidateWindow(in.OrderDate, in.ReturnDate, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	order, err := oc.Repo.PlaceOrder(c.Request.Context(), db.PlaceOrderInput{
		UserID:     uid,
		OrderDate:  in.OrderDate,
		ReturnDate: in.ReturnDate,
		Requests:   in.Items,
	})
	if err == nil {
		c.JSON(http.StatusCreated, order)
		return
	}

	var insufficient *db.InsufficientUnitsError
	switch {
	case errors.As(err, &insufficient), errors.Is(err, db.ErrNoUnits):
		alts, altErr := oc.Repo.FindJointAlternatives(
			c.Request.Context(), in.Items, in.OrderDate, in.ReturnDate,
			db.DefaultSearchParams(), db.DefaultAlternativeLimit)
		if altErr != nil {
			oc.Log.Warn("alternative search failed", zap.Error(altErr))
		}
		c.JSON(http.StatusConflict, app.H{"error": err.Error(), "alternatives": alts})
	case errors.Is(err, db.ErrWindowOrder):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "unknown item"})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

// ListOrders returns the caller's upcoming delivered orders.
func (oc *OrderController) ListOrders(c *gin.Context) {
	uid, _ := currentUserID(c)
	orders, err := oc.Repo.ListUpcomingOrders(c.Request.Context(), uid,
		[]models.OrderStatus{models.StatusDelivered})
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"orders": orders})
}

// ListPendingOrders returns the caller's upcoming pending/approved orders.
func (oc *OrderController) ListPendingOrders(c *gin.Context) {
	uid, _ := currentUserID(c)
	orders, err := oc.Repo.ListUpcomingOrders(c.Request.Context(), uid,
		[]models.OrderStatus{models.StatusPending, models.StatusApproved})
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"orders": orders})
}

// ListOrderHistory returns the caller's past orders, paginated with the
// configured page size.
func (oc *OrderController) ListOrderHistory(c *gin.Context) {
	uid, _ := currentUserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size := oc.Settings.PageSize(c.Request.Context())
	if v := c.Query("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			size = n
		}
	}
	orders, total, err := oc.Repo.ListOrderHistory(c.Request.Context(), uid, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"orders": orders, "total": total})
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	uid, _ := currentUserID(c)
	o, err := oc.Repo.FindOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "order not found"})
		return
	}
	if o.UserID != uid && !isStaff(c) {
		c.JSON(http.StatusNotFound, app.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

// --- lifecycle transitions ---

func (oc *OrderController) respondTransition(c *gin.Context, o *models.Order, err error) {
	if err == nil {
		c.JSON(http.StatusOK, o)
		return
	}
	var illegal *models.IllegalTransitionError
	switch {
	case errors.As(err, &illegal):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "order not found"})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

func (oc *OrderController) Approve(c *gin.Context) {
	uid, _ := currentUserID(c)
	o, err := oc.Repo.ApproveOrder(c.Request.Context(), c.Param("id"), uid)
	oc.respondTransition(c, o, err)
}

func (oc *OrderController) Reject(c *gin.Context) {
	o, err := oc.Repo.RejectOrder(c.Request.Context(), c.Param("id"))
	oc.respondTransition(c, o, err)
}

func (oc *OrderController) Deliver(c *gin.Context) {
	o, err := oc.Repo.DeliverOrder(c.Request.Context(), c.Param("id"))
	oc.respondTransition(c, o, err)
}

func (oc *OrderController) Return(c *gin.Context) {
	o, err := oc.Repo.ReturnOrder(c.Request.Context(), c.Param("id"))
	oc.respondTransition(c, o, err)
}

// Cancel is allowed for the order's owner or staff, and only while the order
// has not been handed out.
func (oc *OrderController) Cancel(c *gin.Context) {
	uid, _ := currentUserID(c)
	existing, err := oc.Repo.FindOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "order not found"})
		return
	}
	if existing.UserID != uid && !isStaff(c) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}
	o, err := oc.Repo.CancelOrder(c.Request.Context(), existing.ID)
	oc.respondTransition(c, o, err)
}
