package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "rentalops/internal/config"
	intdb "rentalops/internal/db"
	"rentalops/internal/domain"
	"rentalops/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepository) table() string {
	return "bookings"
}

// GetByID fetches one booking as seed data for a return transaction.
func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	db := r.db()
	table := r.table()
	if db == nil || !intdb.HasTable(db, table) {
		return models.Booking{}, fmt.Errorf("tabel bookings tidak ditemukan")
	}

	query := `
		SELECT id,
		       COALESCE(booking_code,''),
		       COALESCE(customer_name,''),
		       COALESCE(customer_phone,''),
		       COALESCE(vehicle_code,''),
		       COALESCE(vehicle_type,''),
		       COALESCE(plate_number,''),
		       COALESCE(price_per_km,0),
		       COALESCE(price_per_hour,0),
		       COALESCE(odometer_start,0),
		       COALESCE(pickup_date,''),
		       COALESCE(pickup_time,''),
		       COALESCE(advance_paid,0),
		       COALESCE(status,'')
		FROM ` + table + `
		WHERE id=? LIMIT 1`

	var b models.Booking
	if err := db.QueryRow(query, id).Scan(
		&b.ID,
		&b.BookingCode,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.VehicleCode,
		&b.VehicleType,
		&b.PlateNumber,
		&b.PricePerKm,
		&b.PricePerHour,
		&b.OdometerStart,
		&b.PickupDate,
		&b.PickupTime,
		&b.AdvancePaid,
		&b.Status,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// ListOverdue returns active bookings picked up before the cutoff date
// that still have no return record. Read-only input for the sweep job.
func (r BookingRepository) ListOverdue(cutoffDate string) ([]models.Booking, error) {
	db := r.db()
	table := r.table()
	if db == nil || !intdb.HasTable(db, table) {
		return nil, nil
	}

	returnJoin := ""
	if intdb.HasTable(db, "vehicle_returns") {
		returnJoin = `AND NOT EXISTS (
			SELECT 1 FROM vehicle_returns vr WHERE vr.booking_id = b.id
		)`
	}

	rows, err := db.Query(`
		SELECT b.id,
		       COALESCE(b.booking_code,''),
		       COALESCE(b.customer_name,''),
		       COALESCE(b.customer_phone,''),
		       COALESCE(b.vehicle_code,''),
		       COALESCE(b.plate_number,''),
		       COALESCE(b.pickup_date,''),
		       COALESCE(b.advance_paid,0)
		FROM `+table+` b
		WHERE COALESCE(b.status,'') = 'picked_up'
		  AND COALESCE(b.pickup_date,'') <> ''
		  AND b.pickup_date < ?
		  `+returnJoin+`
		ORDER BY b.pickup_date ASC
	`, cutoffDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID,
			&b.BookingCode,
			&b.CustomerName,
			&b.CustomerPhone,
			&b.VehicleCode,
			&b.PlateNumber,
			&b.PickupDate,
			&b.AdvancePaid,
		); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// MarkReturned flips booking status once a return record is accepted.
func (r BookingRepository) MarkReturned(id int64) error {
	db := r.db()
	table := r.table()
	if db == nil || !intdb.HasTable(db, table) || !intdb.HasColumn(db, table, "status") {
		return nil
	}
	_, err := db.Exec(`UPDATE `+table+` SET status='returned' WHERE id=?`, id)
	return err
}
