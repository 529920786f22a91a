package db

import (
	"context"
	"errors"
	"testing"

	"loandesk/models"
)

func TestPlaceOrderAssignsRequestedUnits(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, r, "alice")
	drill := seedItem(t, r, "Drill", 2)

	o, err := r.PlaceOrder(ctx, PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(10),
		ReturnDate: hour(12),
		Requests:   []UnitRequest{{ItemID: drill.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if o.Status != models.StatusPending {
		t.Fatalf("new order must be pending, got %s", o.Status)
	}
	if len(o.Units) != 2 {
		t.Fatalf("expected 2 assigned units, got %d", len(o.Units))
	}
	if o.Units[0].ID == o.Units[1].ID {
		t.Fatalf("assigned units must be distinct")
	}
}

func TestPlaceOrderInsufficientRollsBackEverything(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, r, "alice")
	drill := seedItem(t, r, "Drill", 2)
	saw := seedItem(t, r, "Saw", 1)

	// The drill request is satisfiable, the saw request is not. Nothing may
	// survive the abort, including the order row and the drill assignments.
	_, err := r.PlaceOrder(ctx, PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(10),
		ReturnDate: hour(12),
		Requests: []UnitRequest{
			{ItemID: drill.ID, Quantity: 2},
			{ItemID: saw.ID, Quantity: 5},
		},
	})
	var insufficient *InsufficientUnitsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientUnitsError, got %v", err)
	}
	if insufficient.ItemName != "Saw" || insufficient.Available != 1 || insufficient.Requested != 5 {
		t.Fatalf("unexpected error detail: %+v", insufficient)
	}

	var orders int64
	if err := r.DB.Model(&models.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orders != 0 {
		t.Fatalf("aborted allocation persisted %d order(s)", orders)
	}

	free, err := r.UnitsAvailable(ctx, drill.ID, hour(10), hour(12))
	if err != nil {
		t.Fatalf("UnitsAvailable: %v", err)
	}
	if len(free) != 2 {
		t.Fatalf("drill units must be released on abort, %d free", len(free))
	}
}

func TestPlaceOrderAllZeroQuantitiesFails(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, r, "alice")
	drill := seedItem(t, r, "Drill", 2)

	_, err := r.PlaceOrder(ctx, PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(10),
		ReturnDate: hour(12),
		Requests:   []UnitRequest{{ItemID: drill.ID, Quantity: 0}},
	})
	if !errors.Is(err, ErrNoUnits) {
		t.Fatalf("expected ErrNoUnits, got %v", err)
	}

	var orders int64
	if err := r.DB.Model(&models.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orders != 0 {
		t.Fatalf("zero-unit order was persisted")
	}
}

func TestPlaceOrderRejectsBackwardsWindow(t *testing.T) {
	r := newTestRepo(t)
	user := seedUser(t, r, "alice")
	drill := seedItem(t, r, "Drill", 1)

	_, err := r.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(12),
		ReturnDate: hour(10),
		Requests:   []UnitRequest{{ItemID: drill.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrWindowOrder) {
		t.Fatalf("expected ErrWindowOrder, got %v", err)
	}
}

func TestPlaceOrderNeverDoubleBooks(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, r, "alice")
	drill := seedItem(t, r, "Drill", 2)

	if _, err := r.PlaceOrder(ctx, PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(10),
		ReturnDate: hour(12),
		Requests:   []UnitRequest{{ItemID: drill.ID, Quantity: 2}},
	}); err != nil {
		t.Fatalf("first order: %v", err)
	}

	// Overlapping window: both units are claimed.
	_, err := r.PlaceOrder(ctx, PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(11),
		ReturnDate: hour(13),
		Requests:   []UnitRequest{{ItemID: drill.ID, Quantity: 1}},
	})
	var insufficient *InsufficientUnitsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientUnitsError for overlap, got %v", err)
	}
	if insufficient.Available != 0 {
		t.Fatalf("expected 0 available, got %d", insufficient.Available)
	}

	// Back-to-back windows share a boundary instant and must not conflict.
	if _, err := r.PlaceOrder(ctx, PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(12),
		ReturnDate: hour(14),
		Requests:   []UnitRequest{{ItemID: drill.ID, Quantity: 2}},
	}); err != nil {
		t.Fatalf("adjacent window should succeed: %v", err)
	}
}

func TestPlaceOrderSameItemTwiceDrawsDistinctUnits(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, r, "alice")
	drill := seedItem(t, r, "Drill", 2)

	o, err := r.PlaceOrder(ctx, PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(10),
		ReturnDate: hour(12),
		Requests: []UnitRequest{
			{ItemID: drill.ID, Quantity: 1},
			{ItemID: drill.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if len(o.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(o.Units))
	}
	if o.Units[0].ID == o.Units[1].ID {
		t.Fatalf("split requests for one item drew the same unit twice")
	}
}

func TestLifecycleHappyPath(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, r, "alice")
	staff := seedUser(t, r, "bob")
	drill := seedItem(t, r, "Drill", 1)

	o, err := r.PlaceOrder(ctx, PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(10),
		ReturnDate: hour(12),
		Requests:   []UnitRequest{{ItemID: drill.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	o, err = r.ApproveOrder(ctx, o.ID, staff.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if o.Status != models.StatusApproved {
		t.Fatalf("expected approved, got %s", o.Status)
	}
	if o.ApprovedByID == nil || *o.ApprovedByID != staff.ID {
		t.Fatalf("approve must stamp the approver")
	}

	if o, err = r.DeliverOrder(ctx, o.ID); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if o, err = r.ReturnOrder(ctx, o.ID); err != nil {
		t.Fatalf("return: %v", err)
	}
	if o.Status != models.StatusReturned {
		t.Fatalf("expected returned, got %s", o.Status)
	}
}

func TestLifecycleIllegalTransitions(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, r, "alice")
	staff := seedUser(t, r, "bob")
	drill := seedItem(t, r, "Drill", 2)

	place := func() *models.Order {
		o, err := r.PlaceOrder(ctx, PlaceOrderInput{
			UserID:     user.ID,
			OrderDate:  hour(10),
			ReturnDate: hour(12),
			Requests:   []UnitRequest{{ItemID: drill.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("PlaceOrder: %v", err)
		}
		return o
	}

	// Reject after approve fails and leaves the order approved.
	o := place()
	if _, err := r.ApproveOrder(ctx, o.ID, staff.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	var illegal *models.IllegalTransitionError
	if _, err := r.RejectOrder(ctx, o.ID); !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
	got, err := r.FindOrderByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.StatusApproved {
		t.Fatalf("failed transition mutated the order: %s", got.Status)
	}

	// Cancel after deliver fails; a handed-out order must come back first.
	if _, err := r.DeliverOrder(ctx, o.ID); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if _, err := r.CancelOrder(ctx, o.ID); !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalTransitionError on cancel-after-deliver, got %v", err)
	}

	// Cancel from pending is fine.
	o2 := place()
	cancelled, err := r.CancelOrder(ctx, o2.ID)
	if err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
}

func TestCancelReleasesUnitsForRebooking(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, r, "alice")
	drill := seedItem(t, r, "Drill", 2)

	o, err := r.PlaceOrder(ctx, PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(10),
		ReturnDate: hour(12),
		Requests:   []UnitRequest{{ItemID: drill.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if _, err := r.CancelOrder(ctx, o.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The cancelled order keeps its unit set but no longer blocks.
	if _, err := r.PlaceOrder(ctx, PlaceOrderInput{
		UserID:     user.ID,
		OrderDate:  hour(10),
		ReturnDate: hour(12),
		Requests:   []UnitRequest{{ItemID: drill.ID, Quantity: 2}},
	}); err != nil {
		t.Fatalf("rebooking after cancel failed: %v", err)
	}
}
