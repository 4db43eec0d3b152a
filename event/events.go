package event

import (
	"time"

	"eventsite/entity"

	"github.com/ThreeDotsLabs/watermill"
)

type header struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func newHeader(idempotencyKey string) header {
	return header{
		ID:             watermill.NewUUID(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

// PaymentSubmitted is published in the same transaction that stores the
// payment record. Handlers acknowledge receipt of the proof to the visitor.
type PaymentSubmitted struct {
	Header  header               `json:"header"`
	Payment entity.PaymentRecord `json:"payment"`
}

func NewPaymentSubmitted(idempotencyKey string, payment entity.PaymentRecord) PaymentSubmitted {
	return PaymentSubmitted{
		Header:  newHeader(idempotencyKey),
		Payment: payment,
	}
}

// RegistrationReceived is published in the same transaction that stores the
// workshop registration. Handlers send the templated confirmation email
// with the workshop's group link.
type RegistrationReceived struct {
	Header       header              `json:"header"`
	Registration entity.Registration `json:"registration"`
}

func NewRegistrationReceived(idempotencyKey string, registration entity.Registration) RegistrationReceived {
	return RegistrationReceived{
		Header:       newHeader(idempotencyKey),
		Registration: registration,
	}
}
