package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rentalops/internal/domain/models"
)

// Client is the contract this backend needs from the payment gateway:
// create an order for the remaining amount, and verify the signature the
// gateway attaches to a completed payment.
type Client interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (models.GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// HTTPClient talks to the real gateway REST API with key/secret basic auth.
type HTTPClient struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	HTTP      *http.Client
}

func NewHTTPClient(baseURL, keyID, keySecret string) *HTTPClient {
	return &HTTPClient{
		BaseURL:   baseURL,
		KeyID:     keyID,
		KeySecret: keySecret,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers a collectible order with the gateway. Amount is
// already in minor units.
func (c *HTTPClient) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (models.GatewayOrder, error) {
	if amountMinor <= 0 {
		return models.GatewayOrder{}, fmt.Errorf("jumlah order harus positif")
	}

	body, err := json.Marshal(orderRequest{Amount: amountMinor, Currency: currency, Receipt: receipt})
	if err != nil {
		return models.GatewayOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return models.GatewayOrder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return models.GatewayOrder{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.GatewayOrder{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.GatewayOrder{}, fmt.Errorf("gateway menolak order: status %d: %s", resp.StatusCode, string(raw))
	}

	var out orderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.GatewayOrder{}, fmt.Errorf("respons gateway tidak valid: %w", err)
	}
	if out.ID == "" {
		return models.GatewayOrder{}, fmt.Errorf("respons gateway tanpa order id")
	}

	return models.GatewayOrder{
		OrderID:     out.ID,
		AmountMinor: out.Amount,
		Currency:    out.Currency,
		Receipt:     receipt,
	}, nil
}

// VerifySignature checks the HMAC-SHA256 the gateway computes over
// "orderID|paymentID" with the key secret. Constant-time compare.
func (c *HTTPClient) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.KeySecret, orderID, paymentID, signature)
}

// VerifySignature is the shared primitive so tests and fakes agree on
// the exact scheme.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
