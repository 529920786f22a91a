package db

import (
	"context"
	"fmt"
	"time"

	"loandesk/models"

	"gorm.io/gorm"
)

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Duration() time.Duration { return w.End.Sub(w.Start) }

// SearchParams bound the forward search for alternative windows.
type SearchParams struct {
	// Step is the cursor increment between candidate windows.
	Step time.Duration
	// Horizon is how far past the requested start the cursor may advance.
	Horizon time.Duration
	// MaxExtend retries the search with durations stretched past the
	// original, in Step increments, after the original duration found
	// nothing. Zero disables the fallback; the original duration is
	// always tried first.
	MaxExtend time.Duration
}

// DefaultAlternativeLimit caps how many candidate windows a joint search
// returns to the caller.
const DefaultAlternativeLimit = 3

func DefaultSearchParams() SearchParams {
	return SearchParams{Step: time.Hour, Horizon: 24 * time.Hour}
}

func (p SearchParams) normalized() SearchParams {
	if p.Step <= 0 {
		p.Step = time.Hour
	}
	if p.Horizon <= 0 {
		p.Horizon = 24 * time.Hour
	}
	if p.MaxExtend < 0 {
		p.MaxExtend = 0
	}
	return p
}

// availableUnits builds the query for units of an item that are manually
// enabled and not claimed by any blocking order overlapping [start, end).
// Overlap is half-open: o.order_date < end AND o.return_date > start.
func availableUnits(tx *gorm.DB, itemID string, start, end time.Time) *gorm.DB {
	blocking := tx.Session(&gorm.Session{NewDB: true}).
		Table(models.OrderUnitTable+" AS ou").
		Select("1").
		Joins(fmt.Sprintf("JOIN %s o ON o.id = ou.order_id", models.OrderTable)).
		Where(fmt.Sprintf("ou.unit_id = %s.id", models.UnitTable)).
		Where("o.status IN ?", models.BlockingStatuses).
		Where("o.order_date < ? AND o.return_date > ?", end, start)

	return tx.Model(&models.Unit{}).
		Where("item_id = ? AND available = ?", itemID, true).
		Where("NOT EXISTS (?)", blocking)
}

func unitsAvailable(ctx context.Context, tx *gorm.DB, itemID string, start, end time.Time) ([]models.Unit, error) {
	var units []models.Unit
	err := availableUnits(tx.WithContext(ctx), itemID, start, end).Find(&units).Error
	return units, err
}

func countUnitsAvailable(ctx context.Context, tx *gorm.DB, itemID string, start, end time.Time) (int64, error) {
	var n int64
	err := availableUnits(tx.WithContext(ctx), itemID, start, end).Count(&n).Error
	return n, err
}

// UnitsAvailable returns every interference-free unit of an item for the
// candidate window. Always computed fresh: order state changes concurrently,
// so this view is never cached.
func (r *Repo) UnitsAvailable(ctx context.Context, itemID string, start, end time.Time) ([]models.Unit, error) {
	return unitsAvailable(ctx, r.DB, itemID, start, end)
}

func (r *Repo) CountUnitsAvailable(ctx context.Context, itemID string, start, end time.Time) (int64, error) {
	return countUnitsAvailable(ctx, r.DB, itemID, start, end)
}

// FindAlternativeWindow walks the cursor forward from the requested start in
// Step increments, up to Horizon, and returns the first window of the same
// duration with at least quantity free units. A nil window with a nil error
// means the horizon was exhausted; that is an expected outcome, not a failure.
func (r *Repo) FindAlternativeWindow(ctx context.Context, itemID string, start, end time.Time, quantity int, p SearchParams) (*Window, error) {
	p = p.normalized()
	duration := end.Sub(start)
	if duration <= 0 || quantity < 1 {
		return nil, nil
	}

	for extend := time.Duration(0); extend <= p.MaxExtend; extend += p.Step {
		d := duration + extend
		limit := start.Add(p.Horizon)
		for cursor := start.Add(p.Step); !cursor.After(limit); cursor = cursor.Add(p.Step) {
			n, err := countUnitsAvailable(ctx, r.DB, itemID, cursor, cursor.Add(d))
			if err != nil {
				return nil, err
			}
			if n >= int64(quantity) {
				return &Window{Start: cursor, End: cursor.Add(d)}, nil
			}
		}
	}
	return nil, nil
}

// FindJointAlternatives searches for windows of the original duration where
// every (item, quantity) request is satisfiable at once, collecting up to
// limit candidates. The per-window check short-circuits on the first request
// that falls short.
func (r *Repo) FindJointAlternatives(ctx context.Context, requests []UnitRequest, start, end time.Time, p SearchParams, limit int) ([]Window, error) {
	p = p.normalized()
	if limit <= 0 {
		limit = DefaultAlternativeLimit
	}
	duration := end.Sub(start)

	active := make([]UnitRequest, 0, len(requests))
	for _, req := range requests {
		if req.Quantity >= 1 {
			active = append(active, req)
		}
	}
	if duration <= 0 || len(active) == 0 {
		return nil, nil
	}

	var found []Window
	horizon := start.Add(p.Horizon)
	for cursor := start.Add(p.Step); !cursor.After(horizon); cursor = cursor.Add(p.Step) {
		ok := true
		for _, req := range active {
			n, err := countUnitsAvailable(ctx, r.DB, req.ItemID, cursor, cursor.Add(duration))
			if err != nil {
				return nil, err
			}
			if n < int64(req.Quantity) {
				ok = false
				break
			}
		}
		if ok {
			found = append(found, Window{Start: cursor, End: cursor.Add(duration)})
			if len(found) >= limit {
				break
			}
		}
	}
	return found, nil
}
