package db

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"loandesk/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnitRequest asks for quantity units of one item.
type UnitRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity"`
}

type PlaceOrderInput struct {
	UserID     string
	OrderDate  time.Time
	ReturnDate time.Time
	Requests   []UnitRequest
}

var (
	ErrWindowOrder = errors.New("order date must be before return date")
	ErrNoUnits     = errors.New("order has no units assigned")
)

// InsufficientUnitsError aborts an allocation when an item cannot cover the
// requested quantity in the requested window. The caller is expected to run
// the alternative-window search and propose a retry; nothing is persisted.
type InsufficientUnitsError struct {
	ItemID    string
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientUnitsError) Error() string {
	return fmt.Sprintf("only %d unit(s) of %q available, %d requested", e.Available, e.ItemName, e.Requested)
}

// PlaceOrder creates a pending order and assigns concrete units to it, all
// inside one transaction: either every request is covered or nothing is
// persisted. Requests with quantity zero are dropped silently. Availability is
// re-checked inside the transaction, under the item row locks, so two racing
// allocations cannot both claim the same unit; the loser sees the shrunken
// available set and fails with InsufficientUnitsError.
func (r *Repo) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if !in.OrderDate.Before(in.ReturnDate) {
		return nil, ErrWindowOrder
	}

	requests := make([]UnitRequest, 0, len(in.Requests))
	for _, req := range in.Requests {
		if req.Quantity >= 1 {
			requests = append(requests, req)
		}
	}

	var order *models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o := &models.Order{
			ID:         uuid.NewString(),
			UserID:     in.UserID,
			OrderDate:  in.OrderDate,
			ReturnDate: in.ReturnDate,
			Status:     models.StatusPending,
		}
		if err := tx.Create(o).Error; err != nil {
			return err
		}

		// Lock the item rows up front, in sorted order, so concurrent
		// allocations touching the same items serialize instead of
		// deadlocking. Requests are then processed in input order.
		items := make(map[string]models.Item, len(requests))
		ids := make([]string, 0, len(requests))
		for _, req := range requests {
			if _, seen := items[req.ItemID]; !seen {
				items[req.ItemID] = models.Item{}
				ids = append(ids, req.ItemID)
			}
		}
		sort.Strings(ids)
		for _, id := range ids {
			var it models.Item
			if err := forUpdate(tx).First(&it, "id = ?", id).Error; err != nil {
				return err
			}
			items[id] = it
		}

		assigned := 0
		for _, req := range requests {
			units, err := unitsAvailable(ctx, tx, req.ItemID, o.OrderDate, o.ReturnDate)
			if err != nil {
				return err
			}
			if len(units) < req.Quantity {
				it := items[req.ItemID]
				return &InsufficientUnitsError{
					ItemID:    req.ItemID,
					ItemName:  it.Name,
					Requested: req.Quantity,
					Available: len(units),
				}
			}
			// Units of one item are interchangeable: draw uniformly at
			// random instead of favoring serial-number order.
			rand.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })
			pick := units[:req.Quantity]
			if err := tx.Model(o).Association("Units").Append(&pick); err != nil {
				return err
			}
			assigned += len(pick)
		}
		if assigned == 0 {
			return ErrNoUnits
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out models.Order
	if err := r.DB.WithContext(ctx).Preload("Units").First(&out, "id = ?", order.ID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// transition loads the order under a row lock, applies the lifecycle guard
// and persists the single-field mutation. An illegal transition leaves the
// order untouched.
func (r *Repo) transition(ctx context.Context, orderID string, to models.OrderStatus, by string) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&o, "id = ?", orderID).Error; err != nil {
			return err
		}
		if err := models.ApplyTransition(&o, to, by); err != nil {
			return err
		}
		return tx.Save(&o).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) ApproveOrder(ctx context.Context, orderID, approvedBy string) (*models.Order, error) {
	return r.transition(ctx, orderID, models.StatusApproved, approvedBy)
}

func (r *Repo) RejectOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return r.transition(ctx, orderID, models.StatusRejected, "")
}

func (r *Repo) DeliverOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return r.transition(ctx, orderID, models.StatusDelivered, "")
}

func (r *Repo) ReturnOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return r.transition(ctx, orderID, models.StatusReturned, "")
}

func (r *Repo) CancelOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return r.transition(ctx, orderID, models.StatusCancelled, "")
}

func (r *Repo) FindOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).Preload("Units").First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListUpcomingOrders returns a user's future orders in the given statuses.
func (r *Repo) ListUpcomingOrders(ctx context.Context, userID string, statuses []models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Units").
		Where("user_id = ? AND order_date > ?", userID, time.Now().UTC()).
		Where("status IN ?", statuses).
		Order("order_date ASC").
		Find(&orders).Error
	return orders, err
}

// ListOrderHistory returns a user's past orders, newest first, paginated.
func (r *Repo) ListOrderHistory(ctx context.Context, userID string, page, size int) ([]models.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ? AND order_date < ?", userID, time.Now().UTC())

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := tx.
		Preload("Units").
		Order("order_date DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
