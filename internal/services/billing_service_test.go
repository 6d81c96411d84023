package services

import (
	"testing"

	"rentalops/internal/domain"
	"rentalops/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestQuote_Pipeline(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	expectBookingFetch(mock, 44, 200000)

	svc := BillingService{BookingRepo: repositories.BookingRepository{DB: db}, RequestID: "test"}

	q, err := svc.Quote(ReturnQuoteInput{
		BookingID:   44,
		ReturnDate:  "03/04/2024",
		ReturnTime:  "2:30 PM",
		OdometerEnd: 1100,
		Condition:   "good",
	})
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}

	if q.Metrics.DistanceKm != 100 {
		t.Fatalf("distance = %d", q.Metrics.DistanceKm)
	}
	// 10:00 sampai 14:30 = 270 menit
	if q.Metrics.DurationMinutes != 270 {
		t.Fatalf("duration = %d", q.Metrics.DurationMinutes)
	}
	// 100 x 3500 = 350.000 vs 4,5 x 75.000 = 337.500
	if q.Charge.AppliedCost != 350000 || q.Charge.TotalCost != 350000 {
		t.Fatalf("applied = %d, total = %d", q.Charge.AppliedCost, q.Charge.TotalCost)
	}
	if q.RemainingAmount != 150000 {
		t.Fatalf("remaining = %d", q.RemainingAmount)
	}
	if q.ClockSkewWarning {
		t.Fatalf("unexpected clock skew warning")
	}
}

func TestQuote_UnparseableReturnDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	expectBookingFetch(mock, 44, 200000)

	svc := BillingService{BookingRepo: repositories.BookingRepository{DB: db}, RequestID: "test"}

	_, err = svc.Quote(ReturnQuoteInput{
		BookingID:   44,
		ReturnDate:  "kemarin sore",
		ReturnTime:  "2:30 PM",
		OdometerEnd: 1100,
	})
	if !domain.IsInput(err) {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestQuote_UnparseableTimeFallsBackToMidnight(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	expectBookingFetch(mock, 44, 200000)

	svc := BillingService{BookingRepo: repositories.BookingRepository{DB: db}, RequestID: "test"}

	// Jam tidak terbaca: tanggal tetap dihitung, jam jatuh ke 00:00.
	// Pengambilan 03/04 10:00, pengembalian 04/04 00:00 = 840 menit.
	q, err := svc.Quote(ReturnQuoteInput{
		BookingID:   44,
		ReturnDate:  "2024-04-04",
		ReturnTime:  "sore hari",
		OdometerEnd: 1100,
	})
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if q.Metrics.DurationMinutes != 840 {
		t.Fatalf("duration = %d, expected 840", q.Metrics.DurationMinutes)
	}
}

func TestQuote_MemoReplaysIdenticalInput(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	// Booking dibaca dua kali; pipeline perhitungan hanya jalan sekali.
	expectBookingFetch(mock, 44, 200000)
	expectBookingFetch(mock, 44, 200000)

	svc := BillingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		RequestID:   "test",
		Memo:        NewQuoteMemo(),
	}

	in := ReturnQuoteInput{
		BookingID:   44,
		ReturnDate:  "2024-04-03",
		ReturnTime:  "2:30 PM",
		OdometerEnd: 1100,
	}
	first, err := svc.Quote(in)
	if err != nil {
		t.Fatalf("first Quote: %v", err)
	}
	second, err := svc.Quote(in)
	if err != nil {
		t.Fatalf("second Quote: %v", err)
	}
	if first.Charge != second.Charge {
		t.Fatalf("memo changed the result: %+v vs %+v", first.Charge, second.Charge)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
