package repositories

import (
	"testing"

	"rentalops/internal/domain"
	"rentalops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectReturnsTable(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("information_schema\\.tables").WithArgs("vehicle_returns").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("vehicle_returns"))
}

func sampleReturn() models.VehicleReturn {
	return models.VehicleReturn{
		BookingID:        44,
		BookingCode:      "BK-044",
		PickupAt:         "2024-04-03 10:00:00",
		ReturnAt:         "2024-04-03 14:30:00",
		OdometerStart:    1000,
		OdometerEnd:      1100,
		DistanceKm:       100,
		DurationMinutes:  270,
		CostByDistance:   500000,
		CostByTime:       450000,
		AppliedCost:      500000,
		TotalCost:        500000,
		AdvancePaid:      200000,
		CollectedAmount:  300000,
		PaymentMethod:    "cash",
		VehicleCondition: "good",
		OperatorID:       3,
	}
}

func TestReturnCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectReturnsTable(mock)
	mock.ExpectQuery("SELECT id FROM vehicle_returns").WithArgs(int64(44)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO vehicle_returns").
		WillReturnResult(sqlmock.NewResult(9, 1))

	repo := ReturnRepository{DB: db}
	created, err := repo.Create(sampleReturn())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 9 {
		t.Fatalf("id = %d, expected 9", created.ID)
	}
	if created.CreatedAt == "" {
		t.Fatalf("created_at should be filled")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReturnCreate_DuplicateBookingConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectReturnsTable(mock)
	mock.ExpectQuery("SELECT id FROM vehicle_returns").WithArgs(int64(44)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	repo := ReturnRepository{DB: db}
	_, err = repo.Create(sampleReturn())
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReturnGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectReturnsTable(mock)
	mock.ExpectQuery("FROM vehicle_returns").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := ReturnRepository{DB: db}
	_, err = repo.GetByID(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReturnGetByID_InvalidID(t *testing.T) {
	repo := ReturnRepository{}
	if _, err := repo.GetByID(0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
