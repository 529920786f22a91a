package models

import "fmt"

// allowedTransitions is the order lifecycle as a directed graph.
// pending -> approved | rejected | cancelled
// approved -> delivered | cancelled
// delivered -> returned (a handed-out order cannot be cancelled)
// rejected, returned, cancelled are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusReturned},
	StatusRejected:  {},
	StatusReturned:  {},
	StatusCancelled: {},
}

// IllegalTransitionError is returned when a lifecycle operation is invoked on
// an order in the wrong state. The order is left unchanged.
type IllegalTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal order status transition: %s -> %s", e.From, e.To)
}

// CanTransition reports whether from -> to is a legal lifecycle step.
// Self-transitions are not legal: approving an already approved order fails.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition mutates the order status after checking the guard.
// ApprovedByID is stamped exactly once, at the approve step, and never cleared.
func ApplyTransition(o *Order, to OrderStatus, by string) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}
	if !CanTransition(o.Status, to) {
		return &IllegalTransitionError{From: o.Status, To: to}
	}
	o.Status = to
	if to == StatusApproved && o.ApprovedByID == nil && by != "" {
		b := by
		o.ApprovedByID = &b
	}
	return nil
}
