package handlers

import (
	"net/http"
	"strconv"

	"rentalops/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id
// Seed data for the return form: rates, odometer start, advance paid.
func GetBookingByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	booking, err := repositories.BookingRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             booking.ID,
		"booking_code":   booking.BookingCode,
		"customer_name":  booking.CustomerName,
		"customer_phone": booking.CustomerPhone,
		"vehicle_code":   booking.VehicleCode,
		"vehicle_type":   booking.VehicleType,
		"plate_number":   booking.PlateNumber,
		"price_per_km":   booking.PricePerKm,
		"price_per_hour": booking.PricePerHour,
		"odometer_start": booking.OdometerStart,
		"pickup_date":    booking.PickupDate,
		"pickup_time":    booking.PickupTime,
		"advance_paid":   booking.AdvancePaid,
		"status":         booking.Status,
	})
}
