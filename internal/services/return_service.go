package services

import (
	"fmt"
	"strings"

	"rentalops/internal/domain"
	"rentalops/internal/domain/models"
	"rentalops/internal/repositories"
	"rentalops/internal/utils"
)

// FinalizeInput carries the submitted return form. Everything derived
// from it is recomputed at submission time; nothing from an earlier
// preview is trusted.
type FinalizeInput struct {
	BookingID      int64  `json:"booking_id"`
	ReturnDate     string `json:"return_date"`
	ReturnTime     string `json:"return_time"`
	OdometerEnd    int64  `json:"odometer_end"`
	Condition      string `json:"condition"`
	DamageCost     int64  `json:"damage_cost"`
	DamageNotes    string `json:"damage_notes"`
	ConditionNotes string `json:"condition_notes"`
}

// ReturnService gates and performs submission of the final return
// record. The record is created exactly once; a persistence failure is
// surfaced verbatim and never retried automatically, because double
// counting a cash payment is worse than a manual resubmit.
type ReturnService struct {
	Repo        repositories.ReturnRepository
	BookingRepo repositories.BookingRepository
	Billing     BillingService
	Sessions    *PaymentSessionStore
	RequestID   string
}

// Finalize re-validates every precondition at submission time and
// assembles the immutable return record. The operator identity is an
// explicit parameter, never read from ambient state.
func (s ReturnService) Finalize(operator domain.Operator, in FinalizeInput) (models.VehicleReturn, error) {
	if operator.ID <= 0 {
		return models.VehicleReturn{}, domain.ValidationError{Field: "operator", Msg: "identitas petugas wajib ada"}
	}

	utils.LogEvent(s.RequestID, "return", "finalize_start",
		fmt.Sprintf("booking_id=%d operator_id=%d", in.BookingID, operator.ID))

	quote, err := s.Billing.Quote(ReturnQuoteInput{
		BookingID:   in.BookingID,
		ReturnDate:  in.ReturnDate,
		ReturnTime:  in.ReturnTime,
		OdometerEnd: in.OdometerEnd,
		Condition:   in.Condition,
		DamageCost:  in.DamageCost,
	})
	if err != nil {
		return models.VehicleReturn{}, err
	}

	condition := normalizeCondition(in.Condition)
	if condition == domain.ConditionDamaged && strings.TrimSpace(in.DamageNotes) == "" {
		return models.VehicleReturn{}, domain.ValidationError{
			Field: "damage_notes",
			Msg:   "deskripsi kerusakan wajib diisi untuk kendaraan rusak",
		}
	}

	state := domain.NewPaymentState(quote.AdvancePaid)
	if sess, ok := s.Sessions.Snapshot(in.BookingID); ok {
		state = sess.State
	}
	if !state.Settled(quote.Charge.TotalCost) {
		return models.VehicleReturn{}, domain.ValidationError{
			Field: "payment",
			Msg: fmt.Sprintf("pembayaran belum menutup total %s (sisa %s)",
				utils.FormatRupiah(quote.Charge.TotalCost),
				utils.FormatRupiah(state.RemainingAmount(quote.Charge.TotalCost))),
		}
	}

	rec := models.VehicleReturn{
		BookingID:        quote.Booking.ID,
		BookingCode:      quote.Booking.BookingCode,
		PickupAt:         utils.FormatDateTime(quote.Window.PickupAt),
		ReturnAt:         utils.FormatDateTime(quote.Window.ReturnAt),
		OdometerStart:    quote.Window.OdometerStart,
		OdometerEnd:      quote.Window.OdometerEnd,
		DistanceKm:       quote.Charge.DistanceKm,
		DurationMinutes:  quote.Metrics.DurationMinutes,
		CostByDistance:   quote.Charge.CostByDistance,
		CostByTime:       quote.Charge.CostByTime,
		AppliedCost:      quote.Charge.AppliedCost,
		DamageCost:       quote.Charge.DamageCost,
		TotalCost:        quote.Charge.TotalCost,
		AdvancePaid:      state.AdvancePaid,
		CollectedAmount:  state.CollectedAmount(),
		PaymentMethod:    string(state.Method),
		VehicleCondition: condition,
		DamageNotes:      strings.TrimSpace(in.DamageNotes),
		ConditionNotes:   strings.TrimSpace(in.ConditionNotes),
		OperatorID:       int64(operator.ID),
		ClockSkew:        quote.ClockSkewWarning,
	}
	if state.Gateway != nil {
		rec.GatewayOrderID = state.Gateway.OrderID
		rec.GatewayPaymentID = state.Gateway.PaymentID
	}
	if rec.PaymentMethod == "" {
		// advance menutup seluruh tagihan tanpa penagihan kedua
		rec.PaymentMethod = "advance"
	}

	created, err := s.Repo.Create(rec)
	if err != nil {
		utils.LogEvent(s.RequestID, "return", "finalize_error", err.Error())
		return models.VehicleReturn{}, err
	}

	// status booking best-effort; catatan pengembalian sudah tersimpan
	if err := s.BookingRepo.MarkReturned(created.BookingID); err != nil {
		utils.LogEvent(s.RequestID, "return", "mark_returned_warning", err.Error())
	}

	s.Sessions.Drop(created.BookingID)

	utils.LogEvent(s.RequestID, "return", "finalize_done",
		fmt.Sprintf("return_id=%d booking_id=%d total=%s", created.ID, created.BookingID, utils.FormatRupiah(created.TotalCost)))
	return created, nil
}
