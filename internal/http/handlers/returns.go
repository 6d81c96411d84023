package handlers

import (
	"net/http"
	"strconv"

	"rentalops/internal/http/middleware"
	"rentalops/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/returns/quote
// Recomputes the charge preview from the current form state. Pure and
// idempotent: two requests with identical payloads produce identical
// breakdowns.
func QuoteReturn(c *gin.Context) {
	var in services.ReturnQuoteInput
	if !BindJSONOrError(c, &in) {
		return
	}

	reqID := middleware.GetRequestID(c)
	quote, err := billingService(reqID).Quote(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// sinkronkan sisa tagihan di sesi pembayaran dengan total terbaru
	state := paymentService(reqID).StateFor(quote)

	c.JSON(http.StatusOK, gin.H{
		"booking_id":         in.BookingID,
		"charge":             quote.Charge,
		"advance_paid":       quote.AdvancePaid,
		"remaining_amount":   state.RemainingAmount(quote.Charge.TotalCost),
		"clock_skew_warning": quote.ClockSkewWarning,
		"payment":            state,
	})
}

// POST /api/returns/:id/finalize
func FinalizeReturn(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var in services.FinalizeInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.BookingID = bookingID

	reqID := middleware.GetRequestID(c)
	operator := middleware.GetOperator(c)

	record, err := returnService(reqID).Finalize(operator, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GET /api/returns
func GetReturns(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	list, err := returnService(reqID).Repo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/returns/:id
func GetReturnByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	reqID := middleware.GetRequestID(c)
	rec, err := returnService(reqID).Repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GET /api/returns/:id/bill
func GetReturnBill(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	reqID := middleware.GetRequestID(c)
	pdf, filename, err := docsService(reqID).GenerateBill(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
