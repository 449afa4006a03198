package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAdvanceHappyPath(t *testing.T) {
	steps := []struct{ from, to string }{
		{StatusPending, StatusConfirmed},
		{StatusConfirmed, StatusPreparing},
		{StatusPreparing, StatusOutForDelivery},
		{StatusOutForDelivery, StatusDelivered},
	}
	for _, s := range steps {
		assert.NoError(t, CanAdvance(s.from, s.to), "%s -> %s", s.from, s.to)
	}
}

func TestCanAdvanceRejectsSkippingStates(t *testing.T) {
	assert.ErrorIs(t, CanAdvance(StatusPending, StatusDelivered), ErrBadTransition)
	assert.ErrorIs(t, CanAdvance(StatusPending, StatusPreparing), ErrBadTransition)
	assert.ErrorIs(t, CanAdvance(StatusConfirmed, StatusDelivered), ErrBadTransition)
}

func TestCanAdvanceRejectsBackwards(t *testing.T) {
	assert.ErrorIs(t, CanAdvance(StatusPreparing, StatusConfirmed), ErrBadTransition)
	assert.ErrorIs(t, CanAdvance(StatusConfirmed, StatusPending), ErrBadTransition)
}

func TestTerminalStatesAreFrozen(t *testing.T) {
	assert.ErrorIs(t, CanAdvance(StatusCancelled, StatusConfirmed), ErrAlreadyFinalized)
	assert.ErrorIs(t, CanAdvance(StatusDelivered, StatusPending), ErrAlreadyFinalized)
}

func TestCancellationGoesThroughCancelFlow(t *testing.T) {
	// the status endpoint never cancels; that is the cancel endpoint's job
	assert.ErrorIs(t, CanAdvance(StatusPending, StatusCancelled), ErrBadTransition)
	assert.ErrorIs(t, CanAdvance(StatusPreparing, StatusCancelled), ErrBadTransition)
}

func TestCanCancelAuthority(t *testing.T) {
	// admin may cancel any non-terminal order
	for _, s := range []string{StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery} {
		assert.NoError(t, CanCancel(s, true), "admin cancel from %s", s)
	}

	// owning user only while Pending
	assert.NoError(t, CanCancel(StatusPending, false))
	assert.ErrorIs(t, CanCancel(StatusConfirmed, false), ErrNotCancellable)
	assert.ErrorIs(t, CanCancel(StatusOutForDelivery, false), ErrNotCancellable)

	// terminal orders are finalized for everyone
	assert.ErrorIs(t, CanCancel(StatusCancelled, true), ErrAlreadyFinalized)
	assert.ErrorIs(t, CanCancel(StatusDelivered, false), ErrAlreadyFinalized)
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusOutForDelivery))
	assert.False(t, IsValidStatus("Shipped"))
}
