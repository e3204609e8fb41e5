package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStatus is returned for a target outside TransitionTargets
	ErrInvalidStatus = errors.New("domain: invalid target status")

	// ErrInvalidTransition is returned when the current status has no transition to the target
	ErrInvalidTransition = errors.New("domain: status transition not allowed")
)

// TransitionTargets are the statuses an operator may request
var TransitionTargets = []BookingStatus{StatusConfirmed, StatusCancelled, StatusCompleted}

// allowedTransitions: New may move to any target; every target is terminal
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusNew: {StatusConfirmed, StatusCancelled, StatusCompleted},
}

// IsTerminal returns true if no transition leaves s
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// IsTransitionTarget reports whether s may be requested by an operator
func (s BookingStatus) IsTransitionTarget() bool {
	for _, t := range TransitionTargets {
		if t == s {
			return true
		}
	}
	return false
}

// ParseTransitionTarget parses an operator-requested status
func ParseTransitionTarget(s string) (BookingStatus, error) {
	status, err := ParseBookingStatus(s)
	if err != nil || !status.IsTransitionTarget() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// CanTransition checks the state machine for from -> to
func CanTransition(from, to BookingStatus) error {
	if !to.IsTransitionTarget() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// NotifiesCustomer returns true if moving into s sends the customer a message
func (s BookingStatus) NotifiesCustomer() bool {
	return s == StatusConfirmed
}
