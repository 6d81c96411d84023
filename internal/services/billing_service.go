package services

import (
	"strings"
	"sync"

	"rentalops/internal/domain"
	"rentalops/internal/domain/models"
	"rentalops/internal/repositories"
	"rentalops/internal/utils"
)

// ReturnQuoteInput is the editable part of the return form. The quote is
// recomputed from it on every relevant edit; nothing here is cached
// between transactions.
type ReturnQuoteInput struct {
	BookingID   int64  `json:"booking_id"`
	ReturnDate  string `json:"return_date"`
	ReturnTime  string `json:"return_time"`
	OdometerEnd int64  `json:"odometer_end"`
	Condition   string `json:"condition"`
	DamageCost  int64  `json:"damage_cost"`
}

// ReturnQuote is the derived state for one recomputation: normalized
// window, metrics, charge, and the remaining amount against the advance.
type ReturnQuote struct {
	Booking          models.Booking         `json:"-"`
	Window           domain.TripWindow      `json:"-"`
	Metrics          domain.TripMetrics     `json:"metrics"`
	Charge           domain.ChargeBreakdown `json:"charge"`
	AdvancePaid      int64                  `json:"advance_paid"`
	RemainingAmount  int64                  `json:"remaining_amount"`
	ClockSkewWarning bool                   `json:"clock_skew_warning"`
}

// BillingService runs the normalize -> metrics -> tariff pipeline.
// Pure given booking + input; the memo only skips redundant keystroke
// recomputation and never changes the result.
type BillingService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
	Memo        *QuoteMemo
}

type quoteKey struct {
	input    ReturnQuoteInput
	rates    domain.TariffRates
	odoStart int64
	pickup   string
	advance  int64
}

// QuoteMemo remembers the last quote per booking. Safe for concurrent
// handlers; identical inputs always replay the identical result.
type QuoteMemo struct {
	mu      sync.Mutex
	entries map[int64]memoEntry
}

type memoEntry struct {
	key   quoteKey
	quote ReturnQuote
}

func NewQuoteMemo() *QuoteMemo {
	return &QuoteMemo{entries: map[int64]memoEntry{}}
}

func (m *QuoteMemo) get(k quoteKey) (ReturnQuote, bool) {
	if m == nil {
		return ReturnQuote{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[k.input.BookingID]
	if !ok || e.key != k {
		return ReturnQuote{}, false
	}
	return e.quote, true
}

func (m *QuoteMemo) put(k quoteKey, q ReturnQuote) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[k.input.BookingID] = memoEntry{key: k, quote: q}
}

// Quote normalizes the heterogeneous pickup/return date-time input,
// derives trip metrics and applies the tariff. An unparseable date stops
// the pipeline; an unparseable time falls back to midnight.
func (s BillingService) Quote(in ReturnQuoteInput) (ReturnQuote, error) {
	booking, err := s.BookingRepo.GetByID(in.BookingID)
	if err != nil {
		return ReturnQuote{}, err
	}

	in.Condition = normalizeCondition(in.Condition)
	in.ReturnDate = utils.TrimOrEmpty(in.ReturnDate)
	in.ReturnTime = utils.TrimOrEmpty(in.ReturnTime)

	rates := domain.TariffRates{PricePerKm: booking.PricePerKm, PricePerHour: booking.PricePerHour}
	key := quoteKey{
		input:    in,
		rates:    rates,
		odoStart: booking.OdometerStart,
		pickup:   booking.PickupDate + "|" + booking.PickupTime,
		advance:  booking.AdvancePaid,
	}
	if q, ok := s.Memo.get(key); ok {
		return q, nil
	}

	pickupDate, err := utils.ParseFlexibleDate(booking.PickupDate)
	if err != nil {
		return ReturnQuote{}, domain.InputError{Field: "pickup_date", Err: err}
	}
	pickupClock, _ := utils.ParseClock(booking.PickupTime)

	returnDate, err := utils.ParseFlexibleDate(in.ReturnDate)
	if err != nil {
		return ReturnQuote{}, domain.InputError{Field: "return_date", Err: err}
	}
	returnClock, _ := utils.ParseClock(in.ReturnTime)

	window := domain.TripWindow{
		PickupAt:      utils.CombineLocal(pickupDate, pickupClock),
		ReturnAt:      utils.CombineLocal(returnDate, returnClock),
		OdometerStart: booking.OdometerStart,
		OdometerEnd:   in.OdometerEnd,
	}

	metrics, err := domain.ComputeMetrics(window)
	if err != nil {
		return ReturnQuote{}, err
	}
	if metrics.ClockSkew {
		utils.LogEvent(s.RequestID, "billing", "clock_skew",
			"durasi negatif dijepit ke 0, booking_id="+booking.BookingCode)
	}

	charge := domain.ComputeCharge(metrics, rates, in.Condition, in.DamageCost)

	remaining := charge.TotalCost - booking.AdvancePaid
	if remaining < 0 {
		remaining = 0
	}

	quote := ReturnQuote{
		Booking:          booking,
		Window:           window,
		Metrics:          metrics,
		Charge:           charge,
		AdvancePaid:      booking.AdvancePaid,
		RemainingAmount:  remaining,
		ClockSkewWarning: metrics.ClockSkew,
	}
	s.Memo.put(key, quote)
	return quote, nil
}

func normalizeCondition(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case domain.ConditionDamaged, "rusak":
		return domain.ConditionDamaged
	default:
		return domain.ConditionGood
	}
}
