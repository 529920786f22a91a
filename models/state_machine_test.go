package models

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	legal := [][2]OrderStatus{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusApproved, StatusDelivered},
		{StatusApproved, StatusCancelled},
		{StatusDelivered, StatusReturned},
	}
	for _, pair := range legal {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s allowed", pair[0], pair[1])
		}
	}

	illegal := [][2]OrderStatus{
		{StatusApproved, StatusRejected},   // cannot reject once approved
		{StatusDelivered, StatusCancelled}, // handed out, must be returned
		{StatusPending, StatusDelivered},   // no shortcut past approval
		{StatusReturned, StatusPending},
		{StatusCancelled, StatusApproved},
		{StatusRejected, StatusApproved},
		{StatusPending, StatusPending}, // self-transitions fail too
	}
	for _, pair := range illegal {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s rejected", pair[0], pair[1])
		}
	}
}

func TestApplyTransitionStampsApprover(t *testing.T) {
	o := &Order{Status: StatusPending}
	if err := ApplyTransition(o, StatusApproved, "staff-1"); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if o.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", o.Status)
	}
	if o.ApprovedByID == nil || *o.ApprovedByID != "staff-1" {
		t.Fatalf("approver not stamped")
	}

	// The stamp is written once and survives later transitions.
	if err := ApplyTransition(o, StatusDelivered, "staff-2"); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if *o.ApprovedByID != "staff-1" {
		t.Fatalf("approver was overwritten")
	}
}

func TestApplyTransitionGuards(t *testing.T) {
	o := &Order{Status: StatusReturned}
	err := ApplyTransition(o, StatusApproved, "staff-1")
	var illegal *IllegalTransitionError
	if !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
	if o.Status != StatusReturned {
		t.Fatalf("failed transition mutated the order")
	}
	if illegal.From != StatusReturned || illegal.To != StatusApproved {
		t.Fatalf("error detail wrong: %+v", illegal)
	}
}

func TestBlocking(t *testing.T) {
	blocking := []OrderStatus{StatusPending, StatusApproved, StatusDelivered}
	for _, s := range blocking {
		if !(&Order{Status: s}).Blocking() {
			t.Fatalf("%s must block", s)
		}
	}
	released := []OrderStatus{StatusRejected, StatusReturned, StatusCancelled}
	for _, s := range released {
		if (&Order{Status: s}).Blocking() {
			t.Fatalf("%s must not block", s)
		}
	}
}
