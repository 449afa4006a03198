package models

import "errors"

var (
	ErrBadTransition    = errors.New("status transition not allowed")
	ErrAlreadyFinalized = errors.New("order is already finalized")
	ErrNotCancellable   = errors.New("order cannot be cancelled at this stage")
)

// statusFlow is the single valid advance from each state. Orders move
// strictly forward; cancellation is handled separately.
var statusFlow = map[string]string{
	StatusPending:        StatusConfirmed,
	StatusConfirmed:      StatusPreparing,
	StatusPreparing:      StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

func IsTerminal(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanAdvance reports whether an admin may move an order from one status
// to the next. Only the single next step in the flow is permitted, so a
// Pending order cannot jump straight to Delivered. Cancellation never
// goes through here.
func CanAdvance(from, to string) error {
	if IsTerminal(from) {
		return ErrAlreadyFinalized
	}
	if to == StatusCancelled {
		return ErrBadTransition
	}
	if statusFlow[from] != to {
		return ErrBadTransition
	}
	return nil
}

// CanCancel checks cancellation authority: an admin may cancel any
// non-terminal order, the owning user only while it is still Pending.
func CanCancel(status string, isAdmin bool) error {
	if IsTerminal(status) {
		return ErrAlreadyFinalized
	}
	if !isAdmin && status != StatusPending {
		return ErrNotCancellable
	}
	return nil
}
