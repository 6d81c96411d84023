package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentalops/internal/domain"
	"rentalops/internal/domain/models"
	"rentalops/internal/gateway"
	"rentalops/internal/utils"
)

// PaymentService drives the payment reconciliation state machine and
// owns the only asynchronous boundary in the return flow: the gateway
// round trip. Every entry point takes the freshly recomputed quote so
// the session total always follows the latest charge.
type PaymentService struct {
	Gateway   gateway.Client
	Sessions  *PaymentSessionStore
	Currency  string
	RequestID string
}

// StateFor refreshes the session with the latest total and returns the
// current payment state.
func (s PaymentService) StateFor(q ReturnQuote) domain.PaymentState {
	var out domain.PaymentState
	_ = s.Sessions.withSession(q.Booking.ID, q.AdvancePaid, q.Charge.TotalCost, func(sess *PaymentSession) error {
		out = sess.State
		return nil
	})
	return out
}

// SelectMethod switches the active payment channel. Switching always
// clears the other channel's confirmation and gateway artifacts; there
// is no partial carry-over between methods.
func (s PaymentService) SelectMethod(q ReturnQuote, method domain.PaymentMethod) (domain.PaymentState, error) {
	var out domain.PaymentState
	err := s.Sessions.withSession(q.Booking.ID, q.AdvancePaid, q.Charge.TotalCost, func(sess *PaymentSession) error {
		if sess.InFlight {
			return domain.ConflictError{Resource: "payment", Msg: "panggilan gateway sedang berlangsung"}
		}
		switch method {
		case domain.MethodCash:
			sess.State = sess.State.SelectCash()
		case domain.MethodGateway:
			sess.State = sess.State.SelectGateway(sess.TotalCost)
			if sess.State.Phase == domain.PhaseGatewayConfirmed {
				// advance menutup seluruh tagihan: konfirmasi nol tanpa
				// panggilan eksternal
				sess.State, _ = sess.State.MarkReady(sess.TotalCost)
				utils.LogEvent(s.RequestID, "payment", "gateway_short_circuit",
					fmt.Sprintf("booking_id=%d sisa=0", q.Booking.ID))
			}
		case domain.MethodNone:
			sess.State = sess.State.Reset()
		default:
			return domain.ValidationError{Field: "method", Msg: "metode pembayaran tidak dikenal"}
		}
		out = sess.State
		return nil
	})
	return out, err
}

// StartGatewayPayment creates the external order for the remaining
// amount. The session is marked in-flight for the duration of the call
// so a second submission cannot create a duplicate order. Failure is
// retryable: the state returns to idle and nothing partial persists.
func (s PaymentService) StartGatewayPayment(ctx context.Context, q ReturnQuote) (domain.PaymentState, models.GatewayOrder, error) {
	bookingID := q.Booking.ID
	var remaining int64

	err := s.Sessions.withSession(bookingID, q.AdvancePaid, q.Charge.TotalCost, func(sess *PaymentSession) error {
		if sess.InFlight {
			return domain.ConflictError{Resource: "payment", Msg: "panggilan gateway sedang berlangsung"}
		}
		if sess.State.Phase != domain.PhasePendingOrder {
			return domain.ConflictError{Resource: "payment", Msg: "metode gateway belum dipilih"}
		}
		remaining = sess.State.RemainingAmount(sess.TotalCost)
		sess.InFlight = true
		return nil
	})
	if err != nil {
		return s.StateFor(q), models.GatewayOrder{}, err
	}

	receipt := fmt.Sprintf("ret-%d-%s", bookingID, uuid.NewString()[:8])
	order, callErr := s.Gateway.CreateOrder(ctx, utils.ToMinorUnits(remaining), s.Currency, receipt)

	var out domain.PaymentState
	_ = s.Sessions.withSession(bookingID, q.AdvancePaid, q.Charge.TotalCost, func(sess *PaymentSession) error {
		sess.InFlight = false
		if callErr != nil {
			sess.State = sess.State.GatewayFailed()
			out = sess.State
			return nil
		}
		st, trErr := sess.State.OrderCreated(order.OrderID, remaining)
		if trErr != nil {
			out = sess.State
			callErr = trErr
			return nil
		}
		sess.State = st
		out = sess.State
		return nil
	})

	if callErr != nil {
		utils.LogEvent(s.RequestID, "payment", "order_failed",
			fmt.Sprintf("booking_id=%d err=%v", bookingID, callErr))
		return out, models.GatewayOrder{}, domain.PaymentError{Stage: "order", Msg: "gagal membuat order gateway", Err: callErr}
	}

	utils.LogEvent(s.RequestID, "payment", "order_created",
		fmt.Sprintf("booking_id=%d order_id=%s jumlah=%s", bookingID, order.OrderID, utils.FormatRupiah(remaining)))
	return out, order, nil
}

// ConfirmGatewayPayment verifies the gateway callback (signature and
// order match) and promotes the state. A failed verification reports a
// payment error and returns the subsystem to idle; the operator may
// retry the same or a different method.
func (s PaymentService) ConfirmGatewayPayment(q ReturnQuote, paymentID, signature string) (domain.PaymentState, error) {
	var out domain.PaymentState
	err := s.Sessions.withSession(q.Booking.ID, q.AdvancePaid, q.Charge.TotalCost, func(sess *PaymentSession) error {
		if sess.InFlight {
			return domain.ConflictError{Resource: "payment", Msg: "panggilan gateway sedang berlangsung"}
		}
		if sess.State.Phase != domain.PhaseAwaitingGateway {
			return domain.ConflictError{Resource: "payment", Msg: "tidak ada pembayaran gateway yang ditunggu"}
		}

		if !s.Gateway.VerifySignature(sess.State.OrderID, paymentID, signature) {
			sess.State = sess.State.GatewayFailed()
			out = sess.State
			return domain.PaymentError{Stage: "verify", Msg: "signature pembayaran tidak valid"}
		}

		st, err := sess.State.GatewayVerified(domain.GatewayPayment{
			OrderID:        sess.State.OrderID,
			PaymentID:      paymentID,
			AmountCaptured: sess.State.OrderAmount,
		})
		if err != nil {
			return err
		}
		sess.State = st
		if ready, err := sess.State.MarkReady(sess.TotalCost); err == nil {
			sess.State = ready
		}
		out = sess.State
		return nil
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "verify_failed",
			fmt.Sprintf("booking_id=%d err=%v", q.Booking.ID, err))
		return out, err
	}

	utils.LogEvent(s.RequestID, "payment", "gateway_confirmed",
		fmt.Sprintf("booking_id=%d payment_id=%s", q.Booking.ID, paymentID))
	return out, nil
}

// ConfirmCash records the operator's explicit attestation that the
// exact remaining amount was collected in cash.
func (s PaymentService) ConfirmCash(q ReturnQuote) (domain.PaymentState, error) {
	var out domain.PaymentState
	err := s.Sessions.withSession(q.Booking.ID, q.AdvancePaid, q.Charge.TotalCost, func(sess *PaymentSession) error {
		st, err := sess.State.AttestCash(sess.TotalCost)
		if err != nil {
			return err
		}
		sess.State = st
		if ready, err := sess.State.MarkReady(sess.TotalCost); err == nil {
			sess.State = ready
		}
		out = sess.State
		return nil
	})
	if err != nil {
		return out, err
	}

	utils.LogEvent(s.RequestID, "payment", "cash_confirmed",
		fmt.Sprintf("booking_id=%d jumlah=%s", q.Booking.ID, utils.FormatRupiah(out.CashAmount)))
	return out, nil
}

// CancelGateway handles the operator abandoning the gateway modal
// mid-flow: back to idle, no order tracked. The order may still exist
// server-side at the gateway; this subsystem does not chase it.
func (s PaymentService) CancelGateway(q ReturnQuote) (domain.PaymentState, error) {
	var out domain.PaymentState
	err := s.Sessions.withSession(q.Booking.ID, q.AdvancePaid, q.Charge.TotalCost, func(sess *PaymentSession) error {
		if sess.InFlight {
			return domain.ConflictError{Resource: "payment", Msg: "panggilan gateway sedang berlangsung"}
		}
		sess.State = sess.State.GatewayFailed()
		out = sess.State
		return nil
	})
	if err == nil {
		utils.LogEvent(s.RequestID, "payment", "gateway_cancelled",
			fmt.Sprintf("booking_id=%d", q.Booking.ID))
	}
	return out, err
}
