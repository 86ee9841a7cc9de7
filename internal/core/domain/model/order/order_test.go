package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()

	total, err := kernel.NewMoney(12550)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		total,
		method,
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

// advanceTo walks the order through the happy path up to (and including) target.
func advanceTo(t *testing.T, o *order.Order, driverID kernel.UUID, target order.Status) {
	t.Helper()

	now := time.Now()
	require.NoError(t, o.TransitionTo(order.Approved, order.TransitionContext{}, now))
	if target == order.Approved {
		return
	}

	require.NoError(t, o.Claim(driverID, now))
	if target == order.Preparing {
		return
	}

	for _, next := range []order.Status{order.ReadyForPickup, order.PickedUp, order.EnRoute, order.AtDoor} {
		require.NoError(t, o.TransitionTo(next, order.TransitionContext{}, now))
		if next == target {
			return
		}
	}
	t.Fatalf("cannot advance to %s via the happy path", target)
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_order_in_requested_status", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)

		assert.Equal(t, order.Requested, o.Status())
		assert.Equal(t, order.Unpaid, o.PaymentStatus())
		assert.Nil(t, o.AssignedDriver())
		assert.Nil(t, o.AcceptedAt())
		assert.True(t, o.IsActive())
		require.NoError(t, o.Validate())
	})

	t.Run("rejects_invalid_inputs", func(t *testing.T) {
		total, _ := kernel.NewMoney(1000)

		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
			total, order.Cash, time.Now())
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.Money{}, order.Cash, time.Now())
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			total, order.PaymentMethodUnknown, time.Now())
		require.Error(t, err)
	})

	t.Run("zero_value_order_fails_validation", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("approval_stamps_accepted_at_once", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		at := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

		err := o.TransitionTo(order.Approved, order.TransitionContext{}, at)

		require.NoError(t, err)
		assert.Equal(t, order.Approved, o.Status())
		require.NotNil(t, o.AcceptedAt())
		assert.Equal(t, at, *o.AcceptedAt())
	})

	t.Run("skipping_to_delivered_is_rejected", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)

		err := o.TransitionTo(order.Delivered, order.TransitionContext{}, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)

		var invalid *order.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, order.Requested, invalid.From)
		assert.Equal(t, order.Delivered, invalid.To)

		// No side effects on rejection.
		assert.Equal(t, order.Requested, o.Status())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("unassigned_order_cannot_advance_past_approved", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.NoError(t, o.TransitionTo(order.Approved, order.TransitionContext{}, time.Now()))

		err := o.TransitionTo(order.Preparing, order.TransitionContext{}, time.Now())

		require.ErrorIs(t, err, order.ErrDriverRequired)
		assert.Equal(t, order.Approved, o.Status())

		// Cancellation stays open without a driver.
		err = o.TransitionTo(order.Canceled,
			order.TransitionContext{CancelReason: "tenant closed early"}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, order.Canceled, o.Status())
	})

	t.Run("replaying_the_current_status_is_rejected", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.NoError(t, o.TransitionTo(order.Approved, order.TransitionContext{}, time.Now()))

		err := o.TransitionTo(order.Approved, order.TransitionContext{}, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("cancel_requires_reason", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)

		err := o.TransitionTo(order.Canceled, order.TransitionContext{}, time.Now())
		require.ErrorIs(t, err, order.ErrReasonIsRequired)

		err = o.TransitionTo(order.Canceled, order.TransitionContext{CancelReason: "   "}, time.Now())
		require.ErrorIs(t, err, order.ErrReasonIsRequired)

		assert.Equal(t, order.Requested, o.Status())

		err = o.TransitionTo(order.Canceled,
			order.TransitionContext{CancelReason: "client gave up"}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, order.Canceled, o.Status())
		assert.Equal(t, "client gave up", o.CancelReason())
		assert.NotNil(t, o.CanceledAt())
		assert.False(t, o.IsActive())
	})

	t.Run("problem_report_requires_category_and_description", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		advanceTo(t, o, kernel.NewUUID(), order.AtDoor)

		err := o.TransitionTo(order.PendingProblem,
			order.TransitionContext{ProblemCategory: "client_absent"}, time.Now())
		require.ErrorIs(t, err, order.ErrReasonIsRequired)
		assert.Equal(t, order.AtDoor, o.Status())

		err = o.TransitionTo(order.PendingProblem, order.TransitionContext{
			ProblemCategory:    "client_absent",
			ProblemDescription: "nobody answered the door",
		}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, order.PendingProblem, o.Status())
		assert.Equal(t, "client_absent", o.ProblemCategory())
		assert.Equal(t, "nobody answered the door", o.ProblemDescription())
	})

	t.Run("cash_delivery_flips_payment_status_to_paid", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		advanceTo(t, o, kernel.NewUUID(), order.AtDoor)

		err := o.TransitionTo(order.Delivered, order.TransitionContext{}, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.Paid, o.PaymentStatus())
		assert.NotNil(t, o.DeliveredAt())
	})

	t.Run("prepaid_delivery_keeps_gateway_payment_status", func(t *testing.T) {
		o := newTestOrder(t, order.Pix)
		advanceTo(t, o, kernel.NewUUID(), order.AtDoor)

		require.NoError(t, o.TransitionTo(order.Delivered, order.TransitionContext{}, time.Now()))

		// Gateway never confirmed, so delivery alone does not settle a prepaid order.
		assert.Equal(t, order.Unpaid, o.PaymentStatus())
	})

	t.Run("terminal_orders_reject_all_transitions", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.NoError(t, o.TransitionTo(order.Canceled,
			order.TransitionContext{CancelReason: "out of stock"}, time.Now()))

		err := o.TransitionTo(order.Approved, order.TransitionContext{}, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("full_happy_path_stamps_every_timestamp", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		advanceTo(t, o, kernel.NewUUID(), order.AtDoor)
		require.NoError(t, o.TransitionTo(order.Delivered, order.TransitionContext{}, time.Now()))

		assert.NotNil(t, o.AcceptedAt())
		assert.NotNil(t, o.PreparingAt())
		assert.NotNil(t, o.ReadyAt())
		assert.NotNil(t, o.PickedUpAt())
		assert.NotNil(t, o.OnWayAt())
		assert.NotNil(t, o.AtDoorAt())
		assert.NotNil(t, o.DeliveredAt())
		assert.Nil(t, o.CanceledAt())
	})
}

func TestOrder_Claim(t *testing.T) {
	t.Run("claim_assigns_driver_and_advances_as_one_unit", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.NoError(t, o.TransitionTo(order.Approved, order.TransitionContext{}, time.Now()))
		assert.True(t, o.IsClaimable())

		driverID := kernel.NewUUID()
		at := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

		err := o.Claim(driverID, at)

		require.NoError(t, err)
		require.NotNil(t, o.AssignedDriver())
		assert.True(t, o.AssignedDriver().IsEqual(driverID))
		assert.Equal(t, order.Preparing, o.Status())
		require.NotNil(t, o.PreparingAt())
		assert.Equal(t, at, *o.PreparingAt())
		assert.False(t, o.IsClaimable())
	})

	t.Run("claim_rejected_before_approval", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)

		err := o.Claim(kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, order.ErrOrderNotAvailable)
		assert.Nil(t, o.AssignedDriver())
		assert.Equal(t, order.Requested, o.Status())
	})

	t.Run("claim_rejected_when_already_assigned", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.NoError(t, o.TransitionTo(order.Approved, order.TransitionContext{}, time.Now()))

		winner := kernel.NewUUID()
		require.NoError(t, o.Claim(winner, time.Now()))

		err := o.Claim(kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, order.ErrOrderNotAvailable)
		assert.True(t, o.AssignedDriver().IsEqual(winner))
	})

	t.Run("claim_rejects_invalid_driver_id", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)
		require.NoError(t, o.TransitionTo(order.Approved, order.TransitionContext{}, time.Now()))

		err := o.Claim(kernel.UUID{}, time.Now())

		require.Error(t, err)
		assert.Nil(t, o.AssignedDriver())
	})
}

func TestOrder_ConfirmPayment(t *testing.T) {
	t.Run("confirms_prepaid_order", func(t *testing.T) {
		o := newTestOrder(t, order.Card)

		require.NoError(t, o.ConfirmPayment())

		assert.Equal(t, order.Paid, o.PaymentStatus())
	})

	t.Run("rejects_cash_orders", func(t *testing.T) {
		o := newTestOrder(t, order.Cash)

		err := o.ConfirmPayment()

		require.ErrorIs(t, err, order.ErrPaymentMethodNotPrepaid)
		assert.Equal(t, order.Unpaid, o.PaymentStatus())
	})

	t.Run("rejects_replayed_confirmation", func(t *testing.T) {
		o := newTestOrder(t, order.Pix)
		require.NoError(t, o.ConfirmPayment())

		err := o.ConfirmPayment()

		require.ErrorIs(t, err, order.ErrPaymentAlreadyConfirmed)
	})
}

func TestOrder_CanBeActedOnBy(t *testing.T) {
	o := newTestOrder(t, order.Cash)
	driverID := kernel.NewUUID()

	companyActor, err := order.NewCompanyActor(o.TenantID())
	require.NoError(t, err)
	otherCompany, err := order.NewCompanyActor(kernel.NewUUID())
	require.NoError(t, err)
	driverActor, err := order.NewDriverActor(driverID)
	require.NoError(t, err)
	otherDriver, err := order.NewDriverActor(kernel.NewUUID())
	require.NoError(t, err)

	t.Run("company_owning_the_tenant_is_authorized", func(t *testing.T) {
		assert.True(t, o.CanBeActedOnBy(companyActor))
		assert.False(t, o.CanBeActedOnBy(otherCompany))
	})

	t.Run("unassigned_order_rejects_every_driver", func(t *testing.T) {
		assert.False(t, o.CanBeActedOnBy(driverActor))
	})

	t.Run("only_the_assigned_driver_is_authorized", func(t *testing.T) {
		advanceTo(t, o, driverID, order.Preparing)

		assert.True(t, o.CanBeActedOnBy(driverActor))
		assert.False(t, o.CanBeActedOnBy(otherDriver))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_full_state", func(t *testing.T) {
		driverID := kernel.NewUUID()
		total, _ := kernel.NewMoney(9900)
		now := time.Now()

		o, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:               kernel.NewUUID(),
			TenantID:         kernel.NewUUID(),
			ClientID:         kernel.NewUUID(),
			AssignedDriverID: &driverID,
			Total:            total,
			PaymentMethod:    order.Pix,
			PaymentStatus:    order.Paid,
			Status:           order.EnRoute,
			CreatedAt:        now,
			AcceptedAt:       &now,
			PreparingAt:      &now,
			ReadyAt:          &now,
			PickedUpAt:       &now,
			OnWayAt:          &now,
		})

		require.NoError(t, err)
		assert.Equal(t, order.EnRoute, o.Status())
		assert.Equal(t, order.Paid, o.PaymentStatus())
		require.NotNil(t, o.AssignedDriver())
		assert.True(t, o.AssignedDriver().IsEqual(driverID))
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		total, _ := kernel.NewMoney(9900)

		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:            kernel.NewUUID(),
			TenantID:      kernel.NewUUID(),
			ClientID:      kernel.NewUUID(),
			Total:         total,
			PaymentMethod: order.Cash,
			PaymentStatus: order.Unpaid,
			Status:        order.Status(77),
			CreatedAt:     time.Now(),
		})

		require.Error(t, err)
	})

	t.Run("rejects_progressed_status_without_driver", func(t *testing.T) {
		total, _ := kernel.NewMoney(9900)

		for _, status := range []order.Status{order.Preparing, order.Delivered} {
			_, err := order.RestoreOrder(order.RestoreOrderParams{
				ID:            kernel.NewUUID(),
				TenantID:      kernel.NewUUID(),
				ClientID:      kernel.NewUUID(),
				Total:         total,
				PaymentMethod: order.Pix,
				PaymentStatus: order.Paid,
				Status:        status,
				CreatedAt:     time.Now(),
			})

			require.ErrorIs(t, err, order.ErrDriverRequired)
		}
	})

	t.Run("rejects_driver_before_claim", func(t *testing.T) {
		driverID := kernel.NewUUID()
		total, _ := kernel.NewMoney(9900)

		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:               kernel.NewUUID(),
			TenantID:         kernel.NewUUID(),
			ClientID:         kernel.NewUUID(),
			AssignedDriverID: &driverID,
			Total:            total,
			PaymentMethod:    order.Cash,
			PaymentStatus:    order.Unpaid,
			Status:           order.Approved,
			CreatedAt:        time.Now(),
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("restores_canceled_order_with_driver", func(t *testing.T) {
		driverID := kernel.NewUUID()
		total, _ := kernel.NewMoney(9900)
		now := time.Now()

		o, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:               kernel.NewUUID(),
			TenantID:         kernel.NewUUID(),
			ClientID:         kernel.NewUUID(),
			AssignedDriverID: &driverID,
			Total:            total,
			PaymentMethod:    order.Cash,
			PaymentStatus:    order.Unpaid,
			Status:           order.Canceled,
			CancelReason:     "client unreachable",
			CreatedAt:        now,
			CanceledAt:       &now,
		})

		require.NoError(t, err)
		assert.Equal(t, order.Canceled, o.Status())
	})
}
