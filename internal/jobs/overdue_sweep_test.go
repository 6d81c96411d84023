package jobs

import (
	"testing"

	"rentalops/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOverdueSweepRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("information_schema\\.tables").WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("vehicle_returns").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("vehicle_returns"))
	mock.ExpectQuery("FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_code", "customer_name", "customer_phone",
			"vehicle_code", "plate_number", "pickup_date", "advance_paid",
		}).AddRow(5, "BK-005", "Sari", "0813", "AVZ-02", "B 5678 ZZ", "2024-03-20", 100000))

	sweep := OverdueSweep{BookingRepo: repositories.BookingRepository{DB: db}, GraceDays: 3}
	sweep.Run()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOverdueSweepRun_SurvivesMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	sweep := OverdueSweep{BookingRepo: repositories.BookingRepository{DB: db}}
	// tidak boleh panic walau tabel belum ada
	sweep.Run()
}

func TestNewScheduler(t *testing.T) {
	c := NewScheduler(OverdueSweep{})
	if len(c.Entries()) != 1 {
		t.Fatalf("expected 1 scheduled entry, got %d", len(c.Entries()))
	}
}
