package models

// VehicleReturn is the finalized, submitted record of one return:
// trip window + charge breakdown + payment snapshot + condition notes.
// Created exactly once per successful submission and immutable after;
// a new return implies a new booking.
type VehicleReturn struct {
	ID               int64  `json:"id"`
	BookingID        int64  `json:"booking_id"`
	BookingCode      string `json:"booking_code"`
	PickupAt         string `json:"pickup_at"` // "YYYY-MM-DD HH:MM:SS" local
	ReturnAt         string `json:"return_at"`
	OdometerStart    int64  `json:"odometer_start"`
	OdometerEnd      int64  `json:"odometer_end"`
	DistanceKm       int64  `json:"distance_km"`
	DurationMinutes  int64  `json:"duration_minutes"`
	CostByDistance   int64  `json:"cost_by_distance"`
	CostByTime       int64  `json:"cost_by_time"`
	AppliedCost      int64  `json:"applied_cost"`
	DamageCost       int64  `json:"damage_cost"`
	TotalCost        int64  `json:"total_cost"`
	AdvancePaid      int64  `json:"advance_paid"`
	CollectedAmount  int64  `json:"collected_amount"`
	PaymentMethod    string `json:"payment_method"`
	GatewayOrderID   string `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string `json:"gateway_payment_id,omitempty"`
	VehicleCondition string `json:"vehicle_condition"`
	DamageNotes      string `json:"damage_notes,omitempty"`
	ConditionNotes   string `json:"condition_notes,omitempty"`
	OperatorID       int64  `json:"operator_id"`
	ClockSkew        bool   `json:"clock_skew_warning,omitempty"`
	CreatedAt        string `json:"created_at"`
}
