package domain

import (
	"math"
	"time"
)

// Vehicle condition reported by the operator at return time.
const (
	ConditionGood    = "good"
	ConditionDamaged = "damaged"
)

// TripWindow is the raw span of one rental: normalized pickup/return
// instants plus the odometer pair.
type TripWindow struct {
	PickupAt      time.Time
	ReturnAt      time.Time
	OdometerStart int64
	OdometerEnd   int64
}

// TripMetrics is what the tariff actually prices: distance and elapsed time.
// ClockSkew flags a return-before-pickup input whose duration was clamped
// to zero; it is surfaced to the operator, never fatal.
type TripMetrics struct {
	DistanceKm      int64
	DurationMinutes int64
	ClockSkew       bool
}

// DurationHours returns the exact fractional hour count (90 menit = 1.5 jam).
// Time-based pricing must use the fraction, not a rounded integer.
func (m TripMetrics) DurationHours() float64 {
	return float64(m.DurationMinutes) / 60.0
}

// ComputeMetrics derives distance and duration from a trip window.
// An odometer regression rejects the window before any costing happens.
// Negative duration is clamped to zero (toleransi clock skew), flagged
// via ClockSkew.
func ComputeMetrics(w TripWindow) (TripMetrics, error) {
	if w.OdometerEnd < w.OdometerStart {
		return TripMetrics{}, ValidationError{
			Field: "odometer_end",
			Msg:   "odometer akhir lebih kecil dari odometer awal",
		}
	}

	minutes := int64(math.Round(w.ReturnAt.Sub(w.PickupAt).Minutes()))
	skew := false
	if minutes < 0 {
		minutes = 0
		skew = true
	}

	return TripMetrics{
		DistanceKm:      w.OdometerEnd - w.OdometerStart,
		DurationMinutes: minutes,
		ClockSkew:       skew,
	}, nil
}

// TariffRates is the distance/time rate pair from the booking's package.
// Immutable for the lifetime of one return transaction.
type TariffRates struct {
	PricePerKm   int64 `json:"price_per_km"`
	PricePerHour int64 `json:"price_per_hour"`
}

// ChargeBreakdown is the full bill derivation for one return.
// AppliedCost is always exactly one of CostByDistance/CostByTime.
type ChargeBreakdown struct {
	DistanceKm     int64   `json:"distance_km"`
	DurationHours  float64 `json:"duration_hours"`
	CostByDistance int64   `json:"cost_by_distance"`
	CostByTime     int64   `json:"cost_by_time"`
	AppliedCost    int64   `json:"applied_cost"`
	DamageCost     int64   `json:"damage_cost"`
	TotalCost      int64   `json:"total_cost"`
}

// ComputeCharge applies the dual distance/time tariff.
//
// The higher of the two costs wins: the rental guarantees the vendor a
// floor revenue whether the trip was long-and-slow or short-and-fast.
// DamageCost is taken verbatim only when the vehicle came back damaged;
// a stale form value for an undamaged vehicle is forced to zero.
//
// Pure function: identical inputs yield a bit-identical breakdown.
func ComputeCharge(m TripMetrics, rates TariffRates, condition string, damageCost int64) ChargeBreakdown {
	byDistance := m.DistanceKm * rates.PricePerKm
	byTime := roundMoney(m.DurationHours() * float64(rates.PricePerHour))

	applied := byDistance
	if byTime > byDistance {
		applied = byTime
	}

	if condition != ConditionDamaged || damageCost < 0 {
		damageCost = 0
	}

	return ChargeBreakdown{
		DistanceKm:     m.DistanceKm,
		DurationHours:  m.DurationHours(),
		CostByDistance: byDistance,
		CostByTime:     byTime,
		AppliedCost:    applied,
		DamageCost:     damageCost,
		TotalCost:      applied + damageCost,
	}
}

func roundMoney(x float64) int64 {
	return int64(math.Round(x))
}
