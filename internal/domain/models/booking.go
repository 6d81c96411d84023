package models

// Booking captures the booking data a return transaction reads.
// It is seed input for the return flow and never mutated by it.
type Booking struct {
	ID            int64
	BookingCode   string
	CustomerName  string
	CustomerPhone string
	VehicleCode   string
	VehicleType   string
	PlateNumber   string
	PricePerKm    int64
	PricePerHour  int64
	OdometerStart int64
	PickupDate    string // as entered; normalized per calculation
	PickupTime    string
	AdvancePaid   int64
	Status        string
}
