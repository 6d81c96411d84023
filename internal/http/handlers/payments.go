package handlers

import (
	"net/http"
	"strconv"

	"rentalops/internal/domain"
	"rentalops/internal/services"

	"rentalops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Payment handlers always carry the full return form so the quote, and
// with it the remaining amount, is recomputed before any state change.
// A stale total from an earlier preview can never leak into a payment
// decision.

type paymentMethodRequest struct {
	services.ReturnQuoteInput
	Method string `json:"method"`
}

type gatewayVerifyRequest struct {
	services.ReturnQuoteInput
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

func bindBookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return 0, false
	}
	return id, true
}

func quoteFor(c *gin.Context, reqID string, in services.ReturnQuoteInput) (services.ReturnQuote, bool) {
	quote, err := billingService(reqID).Quote(in)
	if err != nil {
		RespondDomainError(c, err)
		return services.ReturnQuote{}, false
	}
	return quote, true
}

// POST /api/returns/:id/payment/method
func SelectPaymentMethod(c *gin.Context) {
	bookingID, ok := bindBookingID(c)
	if !ok {
		return
	}
	var req paymentMethodRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.BookingID = bookingID

	reqID := middleware.GetRequestID(c)
	quote, ok := quoteFor(c, reqID, req.ReturnQuoteInput)
	if !ok {
		return
	}

	state, err := paymentService(reqID).SelectMethod(quote, domain.PaymentMethod(req.Method))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment":          state,
		"remaining_amount": state.RemainingAmount(quote.Charge.TotalCost),
	})
}

// POST /api/returns/:id/payment/gateway/order
func CreateGatewayOrder(c *gin.Context) {
	bookingID, ok := bindBookingID(c)
	if !ok {
		return
	}
	var in services.ReturnQuoteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.BookingID = bookingID

	reqID := middleware.GetRequestID(c)
	quote, ok := quoteFor(c, reqID, in)
	if !ok {
		return
	}

	state, order, err := paymentService(reqID).StartGatewayPayment(c.Request.Context(), quote)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment": state,
		"order":   order,
	})
}

// POST /api/returns/:id/payment/gateway/verify
func VerifyGatewayPayment(c *gin.Context) {
	bookingID, ok := bindBookingID(c)
	if !ok {
		return
	}
	var req gatewayVerifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.BookingID = bookingID

	reqID := middleware.GetRequestID(c)
	quote, ok := quoteFor(c, reqID, req.ReturnQuoteInput)
	if !ok {
		return
	}

	state, err := paymentService(reqID).ConfirmGatewayPayment(quote, req.PaymentID, req.Signature)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment": state,
		"settled": state.Settled(quote.Charge.TotalCost),
	})
}

// POST /api/returns/:id/payment/gateway/cancel
func CancelGatewayPayment(c *gin.Context) {
	bookingID, ok := bindBookingID(c)
	if !ok {
		return
	}
	var in services.ReturnQuoteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.BookingID = bookingID

	reqID := middleware.GetRequestID(c)
	quote, ok := quoteFor(c, reqID, in)
	if !ok {
		return
	}

	state, err := paymentService(reqID).CancelGateway(quote)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": state})
}

// POST /api/returns/:id/payment/cash/confirm
func ConfirmCashPayment(c *gin.Context) {
	bookingID, ok := bindBookingID(c)
	if !ok {
		return
	}
	var in services.ReturnQuoteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.BookingID = bookingID

	reqID := middleware.GetRequestID(c)
	quote, ok := quoteFor(c, reqID, in)
	if !ok {
		return
	}

	state, err := paymentService(reqID).ConfirmCash(quote)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment": state,
		"settled": state.Settled(quote.Charge.TotalCost),
	})
}

// GET /api/returns/:id/payment
func GetPaymentState(c *gin.Context) {
	bookingID, ok := bindBookingID(c)
	if !ok {
		return
	}
	sess, found := paymentSessions.Snapshot(bookingID)
	if !found {
		c.JSON(http.StatusOK, gin.H{"payment": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment":          sess.State,
		"remaining_amount": sess.State.RemainingAmount(sess.TotalCost),
	})
}
