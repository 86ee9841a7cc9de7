package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition indicates that a requested status change is not allowed
// by the order lifecycle. Use errors.Is to classify; the concrete
// InvalidTransitionError carries both states for diagnostics.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with a single static transition table so that
// every caller - company dashboards, driver flows, background jobs - enforces
// exactly the same business rules.
//
// State transitions:
//
//	Requested → Approved → Preparing → ReadyForPickup → PickedUp → EnRoute → AtDoor → Delivered
//	                                                                  AtDoor → PendingProblem → {Delivered, Canceled}
//	any non-terminal status → Canceled
//
// Delivered and Canceled are terminal: they have no outbound transitions and
// the order becomes immutable with respect to status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Requested is the initial status when a client places an order.
	// The order is waiting for the company to approve it.
	Requested

	// Approved means the company accepted the order.
	// Approved orders with no assigned driver are claimable by any driver.
	Approved

	// Preparing means a driver claimed the order and the company is
	// preparing it for pickup.
	Preparing

	// ReadyForPickup means the order is packed and waiting for the driver.
	ReadyForPickup

	// PickedUp means the driver collected the order from the company.
	PickedUp

	// EnRoute means the driver is on the way to the client.
	EnRoute

	// AtDoor means the driver arrived at the delivery address.
	AtDoor

	// PendingProblem means the driver reported a problem at the door
	// (client absent, refused delivery, payment issue). It can only resolve
	// to Delivered or Canceled.
	PendingProblem

	// Delivered is the successful terminal status.
	Delivered

	// Canceled is the unsuccessful terminal status.
	Canceled
)

// validTransitions is the single source of truth for the order lifecycle.
// Terminal statuses map to empty sets. A status is never a member of its own
// set: a no-op transition is always rejected so callers must check state
// before issuing redundant updates.
var validTransitions = map[Status][]Status{
	Requested:      {Approved, Canceled},
	Approved:       {Preparing, Canceled},
	Preparing:      {ReadyForPickup, Canceled},
	ReadyForPickup: {PickedUp, Canceled},
	PickedUp:       {EnRoute, Canceled},
	EnRoute:        {AtDoor, Canceled},
	AtDoor:         {Delivered, PendingProblem, Canceled},
	PendingProblem: {Delivered, Canceled},
	Delivered:      {},
	Canceled:       {},
}

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Requested:      "Requested",
		Approved:       "Approved",
		Preparing:      "Preparing",
		ReadyForPickup: "ReadyForPickup",
		PickedUp:       "PickedUp",
		EnRoute:        "EnRoute",
		AtDoor:         "AtDoor",
		PendingProblem: "PendingProblem",
		Delivered:      "Delivered",
		Canceled:       "Canceled",
	}
}

// getStatusLabels returns the human-readable labels shown to companies,
// drivers, and clients.
func getStatusLabels() map[Status]string {
	return map[Status]string{
		Requested:      "Awaiting approval",
		Approved:       "Approved",
		Preparing:      "Preparing",
		ReadyForPickup: "Ready for pickup",
		PickedUp:       "Picked up",
		EnRoute:        "On the way",
		AtDoor:         "At the door",
		PendingProblem: "Delivery pending",
		Delivered:      "Delivered",
		Canceled:       "Canceled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := validTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// CanTransitionTo reports whether the lifecycle allows moving from s to target.
// A no-op transition (s == target) is always false.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// NextStates returns the statuses reachable from s in a single transition.
// Terminal and unknown statuses return an empty slice.
func (s Status) NextStates() []Status {
	next := validTransitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether s has no outbound transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// String returns the name of the status token.
// It is a total function: unrecognized values yield "Status(N)" rather than
// panicking, so it is safe to call on data from external sources.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// StatusFromString parses a status token as produced by String.
// Unknown is not accepted: external callers must name a real status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Label returns the human-readable name of the status for display.
// It is a total function and never returns an empty string: unrecognized
// values fall back to the raw status token.
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return s.String()
}

// ActiveStatuses returns every non-terminal status.
// Used by repositories to query a driver's current workload.
func ActiveStatuses() []Status {
	return []Status{Requested, Approved, Preparing, ReadyForPickup, PickedUp, EnRoute, AtDoor, PendingProblem}
}

// InvalidTransitionError reports a rejected status change.
// It carries both statuses so the caller can explain exactly which move was
// refused ("cannot move from X to Y"), not just that something failed.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given states.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
