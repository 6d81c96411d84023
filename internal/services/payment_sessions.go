package services

import (
	"sync"

	"rentalops/internal/domain"
)

// PaymentSession is the transient reconciliation state for one return
// transaction: one operator session per booking. It survives charge
// recomputation; TotalCost tracks the latest breakdown so the remaining
// amount is always re-derived.
type PaymentSession struct {
	BookingID int64
	State     domain.PaymentState
	TotalCost int64
	InFlight  bool // a gateway call is outstanding; refuse re-submission
}

// PaymentSessionStore keeps in-flight payment sessions in memory, keyed
// by booking id. Finalization drops the session; a finalized return
// never comes back here.
type PaymentSessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*PaymentSession
}

func NewPaymentSessionStore() *PaymentSessionStore {
	return &PaymentSessionStore{sessions: map[int64]*PaymentSession{}}
}

// withSession runs fn with the session for bookingID under lock,
// creating it from the advance when absent.
func (st *PaymentSessionStore) withSession(bookingID, advancePaid, totalCost int64, fn func(*PaymentSession) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[bookingID]
	if !ok {
		sess = &PaymentSession{
			BookingID: bookingID,
			State:     domain.NewPaymentState(advancePaid),
		}
		st.sessions[bookingID] = sess
	}
	// recompute rule: total selalu mengikuti breakdown terbaru,
	// konfirmasi yang sudah tercatat tidak di-reset otomatis
	sess.TotalCost = totalCost
	return fn(sess)
}

// Snapshot returns a copy of the current state without creating one.
func (st *PaymentSessionStore) Snapshot(bookingID int64) (PaymentSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[bookingID]
	if !ok {
		return PaymentSession{}, false
	}
	return *sess, true
}

// Drop removes the session once the return is finalized or abandoned.
func (st *PaymentSessionStore) Drop(bookingID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, bookingID)
}
