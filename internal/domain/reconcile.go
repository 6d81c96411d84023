package domain

// PaymentPhase is the explicit state of the payment subsystem for one
// return transaction. Modeled as a tagged value so that illegal
// combinations (cash confirmed AND gateway confirmed) cannot be
// represented at all.
type PaymentPhase string

const (
	PhaseIdle             PaymentPhase = "idle"
	PhasePendingOrder     PaymentPhase = "pending_order"
	PhaseAwaitingGateway  PaymentPhase = "awaiting_gateway"
	PhaseGatewayConfirmed PaymentPhase = "gateway_confirmed"
	PhaseCashPending      PaymentPhase = "cash_pending"
	PhaseCashConfirmed    PaymentPhase = "cash_confirmed"
	PhaseReadyToFinalize  PaymentPhase = "ready_to_finalize"
)

// PaymentMethod selects how the remaining amount is collected.
type PaymentMethod string

const (
	MethodNone    PaymentMethod = ""
	MethodCash    PaymentMethod = "cash"
	MethodGateway PaymentMethod = "gateway"
)

// GatewayPayment is a verified capture from the external gateway.
type GatewayPayment struct {
	OrderID        string `json:"order_id"`
	PaymentID      string `json:"payment_id"`
	AmountCaptured int64  `json:"amount_captured"`
}

// PaymentState tracks reconciliation of the total charge against the
// advance plus a second collection. It survives recomputation of the
// charge breakdown; the remaining amount is always re-derived from the
// latest total, never stored.
type PaymentState struct {
	AdvancePaid int64           `json:"advance_paid"`
	Method      PaymentMethod   `json:"method"`
	Phase       PaymentPhase    `json:"phase"`
	CashAmount  int64           `json:"cash_amount,omitempty"`
	OrderID     string          `json:"order_id,omitempty"`
	OrderAmount int64           `json:"order_amount,omitempty"`
	Gateway     *GatewayPayment `json:"gateway,omitempty"`
}

// NewPaymentState starts idle with the advance collected at booking time.
func NewPaymentState(advancePaid int64) PaymentState {
	if advancePaid < 0 {
		advancePaid = 0
	}
	return PaymentState{AdvancePaid: advancePaid, Phase: PhaseIdle}
}

// RemainingAmount is what still has to be collected, never negative.
func (s PaymentState) RemainingAmount(totalCost int64) int64 {
	remaining := totalCost - s.AdvancePaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset returns to idle and clears every method artifact. Used for
// method switching and for gateway cancellation: no confirmation or
// order carries over between methods.
func (s PaymentState) Reset() PaymentState {
	return PaymentState{AdvancePaid: s.AdvancePaid, Phase: PhaseIdle}
}

// SelectCash switches to the cash channel. Any prior gateway artifact
// is dropped.
func (s PaymentState) SelectCash() PaymentState {
	out := s.Reset()
	out.Method = MethodCash
	out.Phase = PhaseCashPending
	return out
}

// SelectGateway switches to the gateway channel. When the advance
// already covers the total, it short-circuits to a zero-amount
// confirmation: no external order is created.
func (s PaymentState) SelectGateway(totalCost int64) PaymentState {
	out := s.Reset()
	out.Method = MethodGateway
	if out.RemainingAmount(totalCost) == 0 {
		out.Phase = PhaseGatewayConfirmed
		out.Gateway = &GatewayPayment{AmountCaptured: 0}
		return out
	}
	out.Phase = PhasePendingOrder
	return out
}

// OrderCreated records the external gateway order. Only legal while an
// order is pending; this is what prevents duplicate orders.
func (s PaymentState) OrderCreated(orderID string, amount int64) (PaymentState, error) {
	if s.Phase != PhasePendingOrder {
		return s, ConflictError{Resource: "payment", Msg: "tidak ada order yang menunggu dibuat"}
	}
	s.Phase = PhaseAwaitingGateway
	s.OrderID = orderID
	s.OrderAmount = amount
	return s, nil
}

// GatewayVerified records a verified callback. Legal only while a
// gateway result is awaited, and only for the outstanding order.
func (s PaymentState) GatewayVerified(p GatewayPayment) (PaymentState, error) {
	if s.Phase != PhaseAwaitingGateway {
		return s, ConflictError{Resource: "payment", Msg: "tidak ada pembayaran gateway yang ditunggu"}
	}
	if p.OrderID != s.OrderID {
		return s, PaymentError{Stage: "verify", Msg: "order id tidak cocok"}
	}
	s.Phase = PhaseGatewayConfirmed
	s.Gateway = &p
	return s, nil
}

// GatewayFailed handles order-creation failure, verification failure or
// operator cancellation: back to idle, nothing partial persists.
func (s PaymentState) GatewayFailed() PaymentState {
	return s.Reset()
}

// AttestCash records the operator's explicit attestation that the exact
// remaining amount was collected. It is a deliberate checkbox action,
// never inferred from other fields.
func (s PaymentState) AttestCash(totalCost int64) (PaymentState, error) {
	if s.Phase != PhaseCashPending {
		return s, ConflictError{Resource: "payment", Msg: "konfirmasi tunai belum dapat dilakukan"}
	}
	s.Phase = PhaseCashConfirmed
	s.CashAmount = s.RemainingAmount(totalCost)
	return s, nil
}

// Settled re-validates amounts against the CURRENT total, not a cached
// flag. A confirmation recorded before the charge grew does not count.
func (s PaymentState) Settled(totalCost int64) bool {
	remaining := s.RemainingAmount(totalCost)
	if remaining == 0 {
		return true
	}
	switch {
	case s.Method == MethodCash && s.Phase.confirmed():
		return s.CashAmount >= remaining
	case s.Method == MethodGateway && s.Phase.confirmed() && s.Gateway != nil:
		return s.Gateway.AmountCaptured >= remaining
	default:
		return false
	}
}

// MarkReady promotes a confirmed state to the terminal ready phase,
// re-checking settlement at promotion time.
func (s PaymentState) MarkReady(totalCost int64) (PaymentState, error) {
	if s.Phase != PhaseCashConfirmed && s.Phase != PhaseGatewayConfirmed {
		return s, ConflictError{Resource: "payment", Msg: "pembayaran belum terkonfirmasi"}
	}
	if !s.Settled(totalCost) {
		return s, ValidationError{Field: "payment", Msg: "pembayaran tercatat tidak menutup sisa tagihan"}
	}
	s.Phase = PhaseReadyToFinalize
	return s, nil
}

// CollectedAmount is the second collection recorded on top of the advance.
func (s PaymentState) CollectedAmount() int64 {
	switch s.Method {
	case MethodCash:
		return s.CashAmount
	case MethodGateway:
		if s.Gateway != nil {
			return s.Gateway.AmountCaptured
		}
	}
	return 0
}

func (p PaymentPhase) confirmed() bool {
	return p == PhaseCashConfirmed || p == PhaseGatewayConfirmed || p == PhaseReadyToFinalize
}
