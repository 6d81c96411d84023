package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	var gotAuthUser, gotAuthPass string
	var gotBody orderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)
		gotAuthUser, gotAuthPass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(orderResponse{
			ID:       "order_abc123",
			Amount:   gotBody.Amount,
			Currency: gotBody.Currency,
			Status:   "created",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "key_id", "key_secret")
	order, err := c.CreateOrder(context.Background(), 15000000, "IDR", "ret-44-abcd1234")
	require.NoError(t, err)

	assert.Equal(t, "order_abc123", order.OrderID)
	assert.Equal(t, int64(15000000), order.AmountMinor)
	assert.Equal(t, "IDR", order.Currency)
	assert.Equal(t, "ret-44-abcd1234", order.Receipt)
	assert.Equal(t, "key_id", gotAuthUser)
	assert.Equal(t, "key_secret", gotAuthPass)
	assert.Equal(t, int64(15000000), gotBody.Amount)
}

func TestCreateOrder_NonPositiveAmount(t *testing.T) {
	c := NewHTTPClient("http://unused", "k", "s")
	_, err := c.CreateOrder(context.Background(), 0, "IDR", "r")
	require.Error(t, err)
}

func TestCreateOrder_GatewayRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"amount too small"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", "s")
	_, err := c.CreateOrder(context.Background(), 100, "IDR", "r")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestCreateOrder_MissingOrderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(orderResponse{Status: "created"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", "s")
	_, err := c.CreateOrder(context.Background(), 100, "IDR", "r")
	require.Error(t, err)
}

func TestVerifySignature(t *testing.T) {
	secret := "key_secret"
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("order_abc|pay_xyz"))
	sig := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifySignature(secret, "order_abc", "pay_xyz", sig))
	assert.False(t, VerifySignature(secret, "order_abc", "pay_lain", sig))
	assert.False(t, VerifySignature("secret-salah", "order_abc", "pay_xyz", sig))
	assert.False(t, VerifySignature(secret, "", "pay_xyz", sig))
	assert.False(t, VerifySignature(secret, "order_abc", "pay_xyz", ""))

	c := NewHTTPClient("http://unused", "key_id", secret)
	assert.True(t, c.VerifySignature("order_abc", "pay_xyz", sig))
}
