package tests_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"eventsite/clients"
	"eventsite/config"
	"eventsite/db"
	"eventsite/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paymentAckTemplate = "template_payment_ack"

func TestComponent(t *testing.T) {
	if os.Getenv("POSTGRES_URL") == "" {
		t.Skip("POSTGRES_URL not set")
	}

	redisClient := setupRedis(t)
	dbConn := setupDB(t)

	emails := &EmailCapture{}
	emailServer := httptest.NewServer(emails.Handler())
	t.Cleanup(emailServer.Close)

	cfg := config.Config{
		Port:        "8080",
		PostgresURL: os.Getenv("POSTGRES_URL"),
		RedisAddr:   getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		Email: config.Email{
			ServiceID:  "test-service",
			TemplateID: paymentAckTemplate,
			PublicKey:  "test-key",
		},
		PollInterval:    100 * time.Millisecond,
		PollMaxAttempts: 3,
	}
	emailClient := clients.NewEmailClientWithEndpoint(
		cfg.Email.ServiceID, cfg.Email.PublicKey, emailServer.URL,
	)

	startService(t, cfg, redisClient, dbConn, emailClient)

	logger := watermill.NewStdLogger(false, false)

	t.Run("payment submission", func(t *testing.T) {
		orderID := submitPayment(t, entity.TicketStandard, map[string]string{
			"name":   "Sara Ahmed",
			"email":  "sara@example.com",
			"phone":  "01003137654",
			"age":    "21",
			"method": entity.MethodInstapay,
		})

		payments := db.NewPaymentRepo(dbConn, logger)
		stored, err := payments.Get(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, entity.TicketStandard, stored.Ticket)
		assert.Equal(t, 1, stored.Quantity)
		assert.Equal(t, 250.0, stored.Total)
		assert.Equal(t, entity.MethodInstapay, stored.Method)
		assert.Equal(t, "sara@example.com", stored.Email)
		assert.Contains(t, stored.PhotoDataURI, "data:image/png;base64,")

		send := assertEmailSent(t, emails, paymentAckTemplate, func(s EmailSend) bool {
			return s.TemplateParams["order_id"] == orderID
		})
		assert.Equal(t, "Sara Ahmed", send.TemplateParams["to_name"])
		assert.Equal(t, "250.00", send.TemplateParams["total"])
	})

	t.Run("checkout quote applies promo", func(t *testing.T) {
		resp := postJSON(t, "/api/checkout/quote", map[string]any{
			"ticket_type_id": entity.TicketStandard,
			"quantity":       2,
			"promo_input":    "f2a",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var quote struct {
			Order       entity.OrderSnapshot `json:"order"`
			PaymentPath string               `json:"payment_path"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&quote))
		assert.Equal(t, 500.0, quote.Order.OriginalTotal)
		assert.Equal(t, "F2A", quote.Order.AppliedPromo)
		assert.Equal(t, 450.0, quote.Order.Total)
		assert.Equal(t, "/payment/standard", quote.PaymentPath)
	})

	t.Run("workshop registration", func(t *testing.T) {
		resp := postJSON(t, "/api/register/w1", map[string]any{
			"name":        "Omar Khaled",
			"email":       "omar@example.com",
			"phone":       "01112223334",
			"age":         24,
			"governorate": "Giza",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		registrations := db.NewRegistrationRepo(dbConn, logger)
		stored, err := registrations.List(context.Background(), "w1")
		require.NoError(t, err)
		require.NotEmpty(t, stored)

		var found bool
		for _, r := range stored {
			if r.Email == "omar@example.com" {
				found = true
				assert.Equal(t, "Intro to AI for Developers", r.ProgramTitle)
				assert.NotEmpty(t, r.GroupLink)
			}
		}
		require.True(t, found, "registration for omar@example.com not stored")

		assertEmailSent(t, emails, "template_2k1eqrh", func(s EmailSend) bool {
			return s.TemplateParams["to_email"] == "omar@example.com"
		})
	})

	t.Run("registration rejects invalid phone", func(t *testing.T) {
		resp := postJSON(t, "/api/register/w1", map[string]any{
			"name":        "Omar Khaled",
			"email":       "omar@example.com",
			"phone":       "123",
			"age":         24,
			"governorate": "Giza",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("registration rejects unknown workshop", func(t *testing.T) {
		resp := postJSON(t, "/api/register/w9", map[string]any{
			"name":        "Omar Khaled",
			"email":       "omar@example.com",
			"phone":       "01112223334",
			"age":         24,
			"governorate": "Giza",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
