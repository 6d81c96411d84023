package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "rentalops/internal/config"
	intdb "rentalops/internal/db"
	"rentalops/internal/domain"
	"rentalops/internal/domain/models"
	"rentalops/internal/utils"
)

type ReturnRepository struct {
	DB *sql.DB
}

func (r ReturnRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ReturnRepository) table() string {
	return "vehicle_returns"
}

const returnColumns = `id,
	COALESCE(booking_id,0),
	COALESCE(booking_code,''),
	COALESCE(pickup_at,''),
	COALESCE(return_at,''),
	COALESCE(odometer_start,0),
	COALESCE(odometer_end,0),
	COALESCE(distance_km,0),
	COALESCE(duration_minutes,0),
	COALESCE(cost_by_distance,0),
	COALESCE(cost_by_time,0),
	COALESCE(applied_cost,0),
	COALESCE(damage_cost,0),
	COALESCE(total_cost,0),
	COALESCE(advance_paid,0),
	COALESCE(collected_amount,0),
	COALESCE(payment_method,''),
	COALESCE(gateway_order_id,''),
	COALESCE(gateway_payment_id,''),
	COALESCE(vehicle_condition,''),
	COALESCE(damage_notes,''),
	COALESCE(condition_notes,''),
	COALESCE(operator_id,0),
	COALESCE(created_at,'')`

// Create inserts the finalized return record exactly once per booking.
// A second submission for the same booking is a conflict, never an
// overwrite: the record is terminal.
func (r ReturnRepository) Create(rec models.VehicleReturn) (models.VehicleReturn, error) {
	db := r.db()
	table := r.table()
	if db == nil || !intdb.HasTable(db, table) {
		return models.VehicleReturn{}, fmt.Errorf("tabel vehicle_returns tidak ditemukan")
	}
	if rec.BookingID <= 0 {
		return models.VehicleReturn{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}

	var existingID int64
	_ = db.QueryRow(`SELECT id FROM `+table+` WHERE booking_id=? LIMIT 1`, rec.BookingID).Scan(&existingID)
	if existingID > 0 {
		return models.VehicleReturn{}, domain.ConflictError{
			Resource: "return",
			Msg:      fmt.Sprintf("booking %d sudah memiliki catatan pengembalian", rec.BookingID),
		}
	}

	if rec.CreatedAt == "" {
		rec.CreatedAt = utils.FormatDateTime(utils.NowUTC())
	}

	res, err := db.Exec(`
		INSERT INTO `+table+` (
			booking_id, booking_code, pickup_at, return_at,
			odometer_start, odometer_end, distance_km, duration_minutes,
			cost_by_distance, cost_by_time, applied_cost, damage_cost, total_cost,
			advance_paid, collected_amount, payment_method,
			gateway_order_id, gateway_payment_id,
			vehicle_condition, damage_notes, condition_notes,
			operator_id, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.BookingID, rec.BookingCode, rec.PickupAt, rec.ReturnAt,
		rec.OdometerStart, rec.OdometerEnd, rec.DistanceKm, rec.DurationMinutes,
		rec.CostByDistance, rec.CostByTime, rec.AppliedCost, rec.DamageCost, rec.TotalCost,
		rec.AdvancePaid, rec.CollectedAmount, rec.PaymentMethod,
		intdb.NullIfEmpty(rec.GatewayOrderID), intdb.NullIfEmpty(rec.GatewayPaymentID),
		rec.VehicleCondition, intdb.NullIfEmpty(rec.DamageNotes), intdb.NullIfEmpty(rec.ConditionNotes),
		rec.OperatorID, rec.CreatedAt,
	)
	if err != nil {
		return models.VehicleReturn{}, err
	}

	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return rec, nil
}

// GetByID fetches a finalized return.
func (r ReturnRepository) GetByID(id int64) (models.VehicleReturn, error) {
	if id <= 0 {
		return models.VehicleReturn{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	db := r.db()
	table := r.table()
	if db == nil || !intdb.HasTable(db, table) {
		return models.VehicleReturn{}, domain.NotFoundError{Resource: "return"}
	}

	row := db.QueryRow(`SELECT `+returnColumns+` FROM `+table+` WHERE id=? LIMIT 1`, id)
	return scanReturn(row)
}

// GetByBookingID fetches the return attached to one booking, if any.
func (r ReturnRepository) GetByBookingID(bookingID int64) (models.VehicleReturn, error) {
	if bookingID <= 0 {
		return models.VehicleReturn{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	db := r.db()
	table := r.table()
	if db == nil || !intdb.HasTable(db, table) {
		return models.VehicleReturn{}, domain.NotFoundError{Resource: "return"}
	}

	row := db.QueryRow(`SELECT `+returnColumns+` FROM `+table+` WHERE booking_id=? LIMIT 1`, bookingID)
	return scanReturn(row)
}

// List returns finalized returns, newest first.
func (r ReturnRepository) List() ([]models.VehicleReturn, error) {
	db := r.db()
	table := r.table()
	if db == nil || !intdb.HasTable(db, table) {
		return []models.VehicleReturn{}, nil
	}

	rows, err := db.Query(`SELECT ` + returnColumns + ` FROM ` + table + ` ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.VehicleReturn
	for rows.Next() {
		rec, err := scanReturn(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReturn(row rowScanner) (models.VehicleReturn, error) {
	var rec models.VehicleReturn
	err := row.Scan(
		&rec.ID,
		&rec.BookingID,
		&rec.BookingCode,
		&rec.PickupAt,
		&rec.ReturnAt,
		&rec.OdometerStart,
		&rec.OdometerEnd,
		&rec.DistanceKm,
		&rec.DurationMinutes,
		&rec.CostByDistance,
		&rec.CostByTime,
		&rec.AppliedCost,
		&rec.DamageCost,
		&rec.TotalCost,
		&rec.AdvancePaid,
		&rec.CollectedAmount,
		&rec.PaymentMethod,
		&rec.GatewayOrderID,
		&rec.GatewayPaymentID,
		&rec.VehicleCondition,
		&rec.DamageNotes,
		&rec.ConditionNotes,
		&rec.OperatorID,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VehicleReturn{}, domain.NotFoundError{Resource: "return"}
		}
		return models.VehicleReturn{}, err
	}
	return rec, nil
}
