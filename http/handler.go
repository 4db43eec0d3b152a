package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventsite/checkout"
	"eventsite/clients"
	"eventsite/entity"
	"eventsite/form"
	"eventsite/payment"
	"eventsite/poller"
	"eventsite/pricing"
	"eventsite/registration"

	"github.com/labstack/echo/v4"
)

type handler struct {
	registry         pricing.Registry
	paymentRecorder  payment.Recorder
	registrationFlow registration.Flow
	payments         poller.API
	tickets          clients.TicketsClient
	pollInterval     time.Duration
	pollMaxAttempts  int
}

func (h handler) ListTicketTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"tickets": entity.TicketTypes(),
	})
}

func (h handler) ListWorkshops(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"workshops": entity.Workshops(),
	})
}

type quoteRequest struct {
	TicketTypeID string `json:"ticket_type_id"`
	Quantity     int    `json:"quantity"`
	PromoInput   string `json:"promo_input"`
}

type quoteResponse struct {
	Order       entity.OrderSnapshot `json:"order"`
	PaymentPath string               `json:"payment_path"`
}

// QuoteCheckout runs one checkout selection to its payment handoff and
// returns the resulting order snapshot. The client re-posts on every edit,
// so promo feedback is immediate rather than submit-time.
func (h handler) QuoteCheckout(c echo.Context) error {
	var request quoteRequest
	if err := c.Bind(&request); err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  "failed to parse request",
			Internal: fmt.Errorf("binding request: %w", err),
		}
	}

	co := checkout.New(h.registry)
	if request.TicketTypeID != "" {
		if err := co.SelectTicketType(request.TicketTypeID); err != nil {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("unknown ticket type %q", request.TicketTypeID),
			}
		}
	}
	if request.Quantity != 0 {
		co.SetQuantity(request.Quantity)
	}
	co.EditPromoInput(request.PromoInput)

	order, paymentPath := co.ProceedToPayment()

	return c.JSON(http.StatusOK, quoteResponse{
		Order:       order,
		PaymentPath: paymentPath,
	})
}

func (h handler) GetPaymentMethods(c echo.Context) error {
	packageID := c.Param("packageId")

	return c.JSON(http.StatusOK, map[string]any{
		"order":    checkout.SnapshotFromRouteDefaults(packageID),
		"channels": entity.ChannelsForPackage(packageID),
	})
}

// SubmitPayment accepts the multipart payment form: contact fields, the
// selected method, the proof image and optionally the order snapshot from
// the checkout handoff. Without a snapshot the package id in the route
// decides the order, as on a direct page load.
func (h handler) SubmitPayment(c echo.Context) error {
	order := checkout.SnapshotFromRouteDefaults(c.Param("packageId"))
	if raw := c.FormValue("order"); raw != "" {
		var handoff entity.OrderSnapshot
		if err := json.Unmarshal([]byte(raw), &handoff); err != nil {
			return &echo.HTTPError{
				Code:     http.StatusBadRequest,
				Message:  "failed to parse order",
				Internal: fmt.Errorf("unmarshalling order: %w", err),
			}
		}
		order = checkout.SnapshotFromHandoff(handoff)
	}

	flow := payment.NewFlow(h.paymentRecorder, order)

	if method := c.FormValue("method"); method != "" {
		if err := flow.SelectMethod(method); err != nil {
			return validationHTTPError(err)
		}
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Please upload a photo of the transaction.",
		}
	}
	file, err := fileHeader.Open()
	if err != nil {
		return &echo.HTTPError{
			Message:  http.StatusText(http.StatusInternalServerError),
			Internal: fmt.Errorf("opening proof upload: %w", err),
		}
	}
	defer file.Close()

	err = flow.AttachProof(c.Request().Context(), payment.Upload{
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		if form.IsValidationError(err) {
			return validationHTTPError(err)
		}
		return &echo.HTTPError{
			Message:  http.StatusText(http.StatusInternalServerError),
			Internal: fmt.Errorf("attaching proof: %w", err),
		}
	}

	age, _ := strconv.Atoi(c.FormValue("age"))
	contact := entity.Contact{
		Name:               c.FormValue("name"),
		Email:              c.FormValue("email"),
		Phone:              c.FormValue("phone"),
		Age:                age,
		NeedTransportation: c.FormValue("need_transportation") == "true",
	}

	orderID, err := flow.Submit(c.Request().Context(), contact)
	if err != nil {
		if form.IsValidationError(err) {
			return validationHTTPError(err)
		}
		return &echo.HTTPError{
			Message:  http.StatusText(http.StatusInternalServerError),
			Internal: fmt.Errorf("submitting payment: %w", err),
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"order_id":  orderID,
		"poll_path": "/api/payment/wait?order=" + orderID,
	})
}

// WaitForPayment runs the status poll to a terminal state and returns it.
// Closing the connection cancels the poll.
func (h handler) WaitForPayment(c echo.Context) error {
	orderID := c.QueryParam("order")

	handle := poller.Start(c.Request().Context(), h.payments, orderID, poller.Config{
		Interval:    h.pollInterval,
		MaxAttempts: h.pollMaxAttempts,
	})
	defer handle.Cancel()

	<-handle.Done()

	return c.JSON(http.StatusOK, handle.State())
}

func (h handler) LookupTicket(c echo.Context) error {
	code := strings.TrimSpace(c.QueryParam("code"))
	if code == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "missing ticket code",
		}
	}

	info, err := h.tickets.LookupTicket(c.Request().Context(), code)
	if err != nil {
		return remoteHTTPError(err, "looking up ticket")
	}

	return c.JSON(http.StatusOK, info)
}

type checkInRequest struct {
	Code string `json:"code"`
}

func (h handler) CheckInTicket(c echo.Context) error {
	var request checkInRequest
	if err := c.Bind(&request); err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  "failed to parse request",
			Internal: fmt.Errorf("binding request: %w", err),
		}
	}
	if strings.TrimSpace(request.Code) == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "missing ticket code",
		}
	}

	result, err := h.tickets.CheckIn(c.Request().Context(), strings.TrimSpace(request.Code))
	if err != nil {
		return remoteHTTPError(err, "checking in ticket")
	}

	return c.JSON(http.StatusOK, result)
}

func (h handler) RegisterForWorkshop(c echo.Context) error {
	var input registration.Input
	if err := c.Bind(&input); err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  "failed to parse request",
			Internal: fmt.Errorf("binding request: %w", err),
		}
	}

	reg, err := h.registrationFlow.Submit(c.Request().Context(), c.Param("workshopId"), input)
	if err != nil {
		if errors.Is(err, registration.ErrUnknownWorkshop) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "unknown workshop",
			}
		}
		if form.IsValidationError(err) {
			return validationHTTPError(err)
		}
		return &echo.HTTPError{
			Message:  http.StatusText(http.StatusInternalServerError),
			Internal: fmt.Errorf("submitting registration: %w", err),
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"registration": reg,
		"group_link":   reg.GroupLink,
	})
}

func validationHTTPError(err error) *echo.HTTPError {
	var vErr form.ValidationError
	if errors.As(err, &vErr) {
		return &echo.HTTPError{
			Code: http.StatusBadRequest,
			Message: map[string]string{
				"field": vErr.Field,
				"error": vErr.Message,
			},
		}
	}

	return &echo.HTTPError{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	}
}

// remoteHTTPError maps an upstream failure onto this server's response,
// keeping the upstream status code when there is one.
func remoteHTTPError(err error, action string) *echo.HTTPError {
	var remoteErr clients.RemoteError
	if errors.As(err, &remoteErr) {
		message := remoteErr.Detail
		if message == "" {
			message = http.StatusText(remoteErr.StatusCode)
		}
		return &echo.HTTPError{
			Code:     remoteErr.StatusCode,
			Message:  message,
			Internal: fmt.Errorf("%s: %w", action, err),
		}
	}

	return &echo.HTTPError{
		Code:     http.StatusBadGateway,
		Message:  "upstream unavailable",
		Internal: fmt.Errorf("%s: %w", action, err),
	}
}
