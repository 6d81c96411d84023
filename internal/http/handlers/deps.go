package handlers

import (
	intconfig "rentalops/internal/config"
	"rentalops/internal/gateway"
	"rentalops/internal/repositories"
	"rentalops/internal/services"
)

// Shared wiring for the handler package. Configure is called once from
// the router; per-request services are built around these singletons so
// the payment session for a booking is the same across requests.
var (
	jwtSecret       []byte
	currency        = "IDR"
	gatewayClient   gateway.Client
	paymentSessions = services.NewPaymentSessionStore()
	quoteMemo       = services.NewQuoteMemo()
)

func Configure(env intconfig.Env) {
	jwtSecret = []byte(env.JWTSecret)
	currency = env.Currency
	gatewayClient = gateway.NewHTTPClient(env.GatewayBaseURL, env.GatewayKeyID, env.GatewayKeySecret)
}

// JWTSecret exposes the configured signing key to the router for the
// auth middleware.
func JWTSecret() []byte {
	return jwtSecret
}

func billingService(requestID string) services.BillingService {
	return services.BillingService{
		BookingRepo: repositories.BookingRepository{},
		RequestID:   requestID,
		Memo:        quoteMemo,
	}
}

func paymentService(requestID string) services.PaymentService {
	return services.PaymentService{
		Gateway:   gatewayClient,
		Sessions:  paymentSessions,
		Currency:  currency,
		RequestID: requestID,
	}
}

func returnService(requestID string) services.ReturnService {
	return services.ReturnService{
		Repo:        repositories.ReturnRepository{},
		BookingRepo: repositories.BookingRepository{},
		Billing:     billingService(requestID),
		Sessions:    paymentSessions,
		RequestID:   requestID,
	}
}

func docsService(requestID string) services.DocsService {
	return services.DocsService{
		ReturnRepo: repositories.ReturnRepository{},
		RequestID:  requestID,
	}
}
