package domain

import (
	"testing"
	"time"
)

func window(pickup, ret time.Time, odoStart, odoEnd int64) TripWindow {
	return TripWindow{PickupAt: pickup, ReturnAt: ret, OdometerStart: odoStart, OdometerEnd: odoEnd}
}

func TestComputeMetrics(t *testing.T) {
	pickup := time.Date(2024, 4, 3, 10, 0, 0, 0, time.Local)
	ret := pickup.Add(90 * time.Minute)

	m, err := ComputeMetrics(window(pickup, ret, 1000, 1100))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.DistanceKm != 100 {
		t.Fatalf("distance = %d, expected 100", m.DistanceKm)
	}
	if m.DurationMinutes != 90 {
		t.Fatalf("duration = %d menit, expected 90", m.DurationMinutes)
	}
	if m.DurationHours() != 1.5 {
		t.Fatalf("hours = %v, expected 1.5", m.DurationHours())
	}
	if m.ClockSkew {
		t.Fatalf("unexpected clock skew flag")
	}
}

func TestComputeMetrics_OdometerRegression(t *testing.T) {
	pickup := time.Date(2024, 4, 3, 10, 0, 0, 0, time.Local)
	_, err := ComputeMetrics(window(pickup, pickup.Add(time.Hour), 1100, 1000))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestComputeMetrics_NegativeDurationClamped(t *testing.T) {
	pickup := time.Date(2024, 4, 3, 10, 0, 0, 0, time.Local)
	ret := pickup.Add(-30 * time.Minute)

	m, err := ComputeMetrics(window(pickup, ret, 1000, 1050))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.DurationMinutes != 0 {
		t.Fatalf("duration = %d, expected clamp to 0", m.DurationMinutes)
	}
	if !m.ClockSkew {
		t.Fatalf("clock skew flag should be set")
	}
	// Jarak tetap dihitung walau jam bermasalah.
	if m.DistanceKm != 50 {
		t.Fatalf("distance = %d, expected 50", m.DistanceKm)
	}
}

func TestComputeCharge_TimeBeatsDistance(t *testing.T) {
	// 100 km x Rp5 = 500 vs 2 jam x Rp400 = 800: waktu menang.
	m := TripMetrics{DistanceKm: 100, DurationMinutes: 120}
	c := ComputeCharge(m, TariffRates{PricePerKm: 5, PricePerHour: 400}, ConditionGood, 0)

	if c.CostByDistance != 500 {
		t.Fatalf("cost by distance = %d", c.CostByDistance)
	}
	if c.CostByTime != 800 {
		t.Fatalf("cost by time = %d", c.CostByTime)
	}
	if c.AppliedCost != 800 || c.TotalCost != 800 {
		t.Fatalf("applied = %d, total = %d, expected 800", c.AppliedCost, c.TotalCost)
	}
}

func TestComputeCharge_DistanceBeatsTime(t *testing.T) {
	m := TripMetrics{DistanceKm: 200, DurationMinutes: 60}
	c := ComputeCharge(m, TariffRates{PricePerKm: 10, PricePerHour: 500}, ConditionGood, 0)

	if c.AppliedCost != 2000 {
		t.Fatalf("applied = %d, expected 2000", c.AppliedCost)
	}
}

func TestComputeCharge_FractionalHours(t *testing.T) {
	// 90 menit x Rp100/jam = Rp150, bukan Rp100 atau Rp200.
	m := TripMetrics{DistanceKm: 0, DurationMinutes: 90}
	c := ComputeCharge(m, TariffRates{PricePerKm: 1, PricePerHour: 100}, ConditionGood, 0)

	if c.CostByTime != 150 {
		t.Fatalf("cost by time = %d, expected 150", c.CostByTime)
	}
}

func TestComputeCharge_DamageOnlyWhenDamaged(t *testing.T) {
	m := TripMetrics{DistanceKm: 10, DurationMinutes: 60}
	rates := TariffRates{PricePerKm: 100, PricePerHour: 100}

	good := ComputeCharge(m, rates, ConditionGood, 250000)
	if good.DamageCost != 0 {
		t.Fatalf("damage cost should be forced to 0 for good condition, got %d", good.DamageCost)
	}

	damaged := ComputeCharge(m, rates, ConditionDamaged, 250000)
	if damaged.DamageCost != 250000 {
		t.Fatalf("damage cost = %d, expected 250000", damaged.DamageCost)
	}
	if damaged.TotalCost != damaged.AppliedCost+250000 {
		t.Fatalf("total = %d, expected applied+damage", damaged.TotalCost)
	}

	negative := ComputeCharge(m, rates, ConditionDamaged, -500)
	if negative.DamageCost != 0 {
		t.Fatalf("negative damage cost should be forced to 0, got %d", negative.DamageCost)
	}
}

func TestComputeCharge_Deterministic(t *testing.T) {
	m := TripMetrics{DistanceKm: 123, DurationMinutes: 456}
	rates := TariffRates{PricePerKm: 3500, PricePerHour: 75000}

	a := ComputeCharge(m, rates, ConditionDamaged, 100000)
	b := ComputeCharge(m, rates, ConditionDamaged, 100000)
	if a != b {
		t.Fatalf("breakdown not deterministic: %+v vs %+v", a, b)
	}
}
