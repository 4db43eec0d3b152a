package http

import (
	"net/http"
	"time"

	"eventsite/clients"
	"eventsite/payment"
	"eventsite/poller"
	"eventsite/pricing"
	"eventsite/registration"

	commonHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"
)

var ErrServerClosed = http.ErrServerClosed

type RouterDeps struct {
	Registry         pricing.Registry
	PaymentRecorder  payment.Recorder
	RegistrationFlow registration.Flow
	Payments         poller.API
	Tickets          clients.TicketsClient
	PollInterval     time.Duration
	PollMaxAttempts  int
}

func NewRouter(deps RouterDeps) *echo.Echo {
	server := commonHTTP.NewEcho()

	server.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	handler := handler{
		registry:         deps.Registry,
		paymentRecorder:  deps.PaymentRecorder,
		registrationFlow: deps.RegistrationFlow,
		payments:         deps.Payments,
		tickets:          deps.Tickets,
		pollInterval:     deps.PollInterval,
		pollMaxAttempts:  deps.PollMaxAttempts,
	}

	server.GET("/api/tickets", handler.ListTicketTypes)
	server.GET("/api/workshops", handler.ListWorkshops)
	server.POST("/api/checkout/quote", handler.QuoteCheckout)
	server.GET("/api/payment/methods/:packageId", handler.GetPaymentMethods)
	server.POST("/api/payment/:packageId", handler.SubmitPayment)
	server.GET("/api/payment/wait", handler.WaitForPayment)
	server.GET("/api/ticket/check", handler.LookupTicket)
	server.POST("/api/ticket/check", handler.CheckInTicket)
	server.POST("/api/register/:workshopId", handler.RegisterForWorkshop)

	return server
}
