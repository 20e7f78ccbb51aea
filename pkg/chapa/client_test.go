package chapa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		SecretKey:     "CHASECK_TEST-abc",
		WebhookSecret: "whsec",
		BaseURL:       server.URL,
		Timeout:       5 * time.Second,
	}, zap.NewNop())

	return client, server
}

func TestCreateSubaccount(t *testing.T) {
	t.Run("returns subaccount id on success", func(t *testing.T) {
		var got SubaccountRequest
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/subaccount", r.URL.Path)
			assert.Equal(t, "Bearer CHASECK_TEST-abc", r.Header.Get("Authorization"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"success","message":"Subaccount created","data":{"subaccount_id":"SUB-837"}}`))
		})

		id, err := client.CreateSubaccount(context.Background(), SubaccountRequest{
			BusinessName:  "Addis Catering",
			AccountName:   "Addis Catering",
			BankCode:      BankCodeCBE,
			AccountNumber: "1000123456789",
			SplitType:     SplitTypePercentage,
			SplitValue:    VendorSplitValue,
		})
		require.NoError(t, err)

		assert.Equal(t, "SUB-837", id)
		assert.Equal(t, "946", got.BankCode)
		assert.Equal(t, "0.9", got.SplitValue)
	})

	t.Run("surfaces processor rejection", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status":"failed","message":"Invalid account number"}`))
		})

		_, err := client.CreateSubaccount(context.Background(), SubaccountRequest{BusinessName: "X"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid account number")
	})
}

func TestInitializeTransaction(t *testing.T) {
	t.Run("returns checkout url", func(t *testing.T) {
		var got InitializeRequest
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Write([]byte(`{"status":"success","message":"Hosted Link","data":{"checkout_url":"https://checkout.chapa.co/pay/xyz"}}`))
		})

		url, err := client.InitializeTransaction(context.Background(), InitializeRequest{
			Amount:   "50000.00",
			Currency: CurrencyETB,
			TxRef:    "payment-abc",
			Subaccounts: []SplitSubaccount{
				{ID: "SUB-837", SplitType: SplitTypePercentage, SplitValue: VendorSplitValue},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "https://checkout.chapa.co/pay/xyz", url)
		require.Len(t, got.Subaccounts, 1)
		assert.Equal(t, "SUB-837", got.Subaccounts[0].ID)
	})

	t.Run("envelope failure status is an error even on 200", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"failed","message":"Insufficient merchant balance"}`))
		})

		_, err := client.InitializeTransaction(context.Background(), InitializeRequest{TxRef: "x"})
		require.Error(t, err)
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>gateway error</html>`))
		})

		_, err := client.InitializeTransaction(context.Background(), InitializeRequest{TxRef: "x"})
		require.Error(t, err)
	})
}

func TestVerifyTransaction(t *testing.T) {
	t.Run("returns transaction state", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/transaction/verify/payment-abc", r.URL.Path)

			w.Write([]byte(`{"status":"success","message":"verified","data":{"status":"success","amount":50000,"currency":"ETB","tx_ref":"payment-abc"}}`))
		})

		result, err := client.VerifyTransaction(context.Background(), "payment-abc")
		require.NoError(t, err)

		assert.Equal(t, StatusSuccess, result.Status)
		assert.Equal(t, 50000.0, result.Amount)
		assert.Equal(t, CurrencyETB, result.Currency)
	})

	t.Run("context cancellation aborts the request", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"status":"success"}`))
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := client.VerifyTransaction(ctx, "payment-abc")
		require.Error(t, err)
	})
}
