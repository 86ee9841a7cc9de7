// Package order provides domain entities and business logic for order management
// in the dispatch system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, payment, assignment, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Actor: A value object identifying who requests a mutation (company or driver)
//   - PaymentMethod / PaymentStatus: Payment value objects
//
// Key business rules:
//   - Order status follows one canonical workflow shared by every caller:
//     Requested -> Approved -> Preparing -> ReadyForPickup -> PickedUp -> EnRoute -> AtDoor -> Delivered,
//     with AtDoor able to branch to PendingProblem and any non-terminal status able to cancel
//   - A claim binds a driver and advances the status as one indivisible effect
//   - Per-state timestamps are stamped exactly once
//   - Canceling requires a reason; reporting a problem requires a category and description
//   - Delivered and Canceled are terminal; the record becomes immutable with respect to status
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
