package clients_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventsite/clients"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payment/status", r.URL.Path)
		assert.Equal(t, "order-1", r.URL.Query().Get("merchantOrderId"))
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "PAID", "verified": true})
	}))
	defer server.Close()

	c := clients.NewPaymentsClient(clients.New(server.URL))
	status, err := c.PaymentStatus(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "PAID", status.Status)
	assert.True(t, status.Verified)
}

func TestPaymentStatusRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "order not found"})
	}))
	defer server.Close()

	c := clients.NewPaymentsClient(clients.New(server.URL))
	_, err := c.PaymentStatus(context.Background(), "missing")

	var remoteErr clients.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
	assert.Equal(t, "order not found", remoteErr.Detail)
}

func TestPaymentStatusNetworkError(t *testing.T) {
	c := clients.NewPaymentsClient(clients.New("http://127.0.0.1:1"))
	_, err := c.PaymentStatus(context.Background(), "order-1")

	require.Error(t, err)
	var remoteErr clients.RemoteError
	assert.False(t, errors.As(err, &remoteErr))
}

func TestFulfillPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/payment/fulfill", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "order-1", body["merchantOrderId"])

		_ = json.NewEncoder(w).Encode(map[string]any{"receiptSent": true})
	}))
	defer server.Close()

	c := clients.NewPaymentsClient(clients.New(server.URL))
	result, err := c.FulfillPayment(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, result.ReceiptSent)
	assert.False(t, result.AlreadySent())
}

func TestFulfillResultAlreadySent(t *testing.T) {
	result := clients.FulfillResult{Message: "Receipt already sent"}
	assert.True(t, result.AlreadySent())
}

func TestTicketCheckIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"ticketCode": r.URL.Query().Get("code"),
				"scanned":    false,
				"user":       map[string]string{"name": "Sara Ahmed"},
			})
		case http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "message": "Already scanned"})
		}
	}))
	defer server.Close()

	c := clients.NewTicketsClient(clients.New(server.URL))

	info, err := c.LookupTicket(context.Background(), "TKT-1")
	require.NoError(t, err)
	assert.Equal(t, "TKT-1", info.TicketCode)
	require.NotNil(t, info.User)
	assert.Equal(t, "Sara Ahmed", info.User.Name)

	result, err := c.CheckIn(context.Background(), "TKT-1")
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "Already scanned", result.Message)
}

func TestEmailClientDisabledWithoutConfig(t *testing.T) {
	c := clients.NewEmailClient("", "")
	assert.False(t, c.Enabled())
	assert.NoError(t, c.SendTemplate(context.Background(), "template_2k1eqrh", nil))
}

func TestEmailClientSendsTemplate(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer server.Close()

	c := clients.NewEmailClientWithEndpoint("service-1", "key-1", server.URL)
	require.True(t, c.Enabled())
	require.NoError(t, c.SendTemplate(context.Background(), "template_2k1eqrh", map[string]string{
		"program_title": "Intro to AI for Developers",
	}))

	assert.Equal(t, "service-1", got["service_id"])
	assert.Equal(t, "template_2k1eqrh", got["template_id"])
	assert.Equal(t, "key-1", got["user_id"])
}
