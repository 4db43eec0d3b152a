package message

import (
	"context"
	"fmt"
	"strconv"

	"eventsite/entity"
	"eventsite/event"
)

// EmailSender is the templated-email trigger. Sends are dropped when email
// is not configured, so handlers succeed in degraded deployments.
type EmailSender interface {
	SendTemplate(ctx context.Context, templateID string, params map[string]string) error
}

func handleSendPaymentAck(sender EmailSender, templateID string) func(ctx context.Context, e *event.PaymentSubmitted) error {
	return func(ctx context.Context, e *event.PaymentSubmitted) error {
		if templateID == "" {
			return nil
		}

		params := map[string]string{
			"to_name":  e.Payment.Name,
			"to_email": e.Payment.Email,
			"order_id": e.Payment.OrderID,
			"ticket":   e.Payment.Ticket,
			"quantity": strconv.Itoa(e.Payment.Quantity),
			"total":    strconv.FormatFloat(e.Payment.Total, 'f', 2, 64),
			"method":   e.Payment.Method,
		}
		if err := sender.SendTemplate(ctx, templateID, params); err != nil {
			return fmt.Errorf("sending payment acknowledgement: %w", err)
		}

		return nil
	}
}

func handleSendRegistrationConfirmation(sender EmailSender) func(ctx context.Context, e *event.RegistrationReceived) error {
	return func(ctx context.Context, e *event.RegistrationReceived) error {
		r := e.Registration

		workshop, ok := entity.WorkshopByID(r.WorkshopID)
		if !ok {
			// registration was validated against the workshop table before
			// it was stored, so this only happens for stale events
			return nil
		}

		params := map[string]string{
			"to_name":       r.Name,
			"to_email":      r.Email,
			"program_title": r.ProgramTitle,
			"program_name":  r.ProgramTitle,
			"group_link":    r.GroupLink,
		}
		if err := sender.SendTemplate(ctx, workshop.TemplateID, params); err != nil {
			return fmt.Errorf("sending registration confirmation: %w", err)
		}

		return nil
	}
}
