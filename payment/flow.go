package payment

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"sync"

	"eventsite/entity"
	"eventsite/form"

	"github.com/google/uuid"
)

const maxProofBytes = 5 * 1024 * 1024

// Recorder persists a submitted payment. The db package implements it.
type Recorder interface {
	AddPayment(ctx context.Context, record entity.PaymentRecord) error
}

// Upload is a proof-of-payment file as received from the client.
type Upload struct {
	ContentType string
	Size        int64
	Content     io.Reader
}

// Flow collects a payment method, a proof image and contact details for one
// order, then hands the assembled record to the persistence collaborator.
// All entered state survives a failed submit so the visitor can retry
// without re-attaching the proof.
type Flow struct {
	recorder Recorder
	order    entity.OrderSnapshot

	mu           sync.Mutex
	method       string
	proofDataURI string
	attachSeq    uint64
}

func NewFlow(recorder Recorder, order entity.OrderSnapshot) *Flow {
	return &Flow{
		recorder: recorder,
		order:    order,
		method:   entity.MethodVodafone,
	}
}

func (f *Flow) SelectMethod(method string) error {
	if method != entity.MethodVodafone && method != entity.MethodInstapay {
		return form.ValidationError{Field: "method", Message: fmt.Sprintf("unknown payment method %q", method)}
	}

	f.mu.Lock()
	f.method = method
	f.mu.Unlock()
	return nil
}

// AttachProof validates and decodes the uploaded image into a self-contained
// data URI. A decode that finishes after a newer attachment has been
// requested is discarded, so a slow old upload never overwrites a newer one.
func (f *Flow) AttachProof(ctx context.Context, upload Upload) error {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return form.ValidationError{Field: "proof", Message: "Only image files are allowed."}
	}
	if upload.Size > maxProofBytes {
		return form.ValidationError{Field: "proof", Message: "Image must be under 5 MB."}
	}

	f.mu.Lock()
	f.attachSeq++
	seq := f.attachSeq
	f.mu.Unlock()

	content, err := io.ReadAll(io.LimitReader(upload.Content, maxProofBytes+1))
	if err != nil {
		return fmt.Errorf("reading proof upload: %w", err)
	}
	if int64(len(content)) > maxProofBytes {
		return form.ValidationError{Field: "proof", Message: "Image must be under 5 MB."}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dataURI := "data:" + upload.ContentType + ";base64," + base64.StdEncoding.EncodeToString(content)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.attachSeq {
		// a newer attachment superseded this decode
		return nil
	}
	f.proofDataURI = dataURI
	return nil
}

func (f *Flow) Proof() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.proofDataURI
}

// Submit validates the contact fields, assembles the payment record and
// delegates to the recorder. It returns the generated order id on success.
// Failures leave the attached proof and selected method untouched.
func (f *Flow) Submit(ctx context.Context, contact entity.Contact) (string, error) {
	f.mu.Lock()
	proof := f.proofDataURI
	method := f.method
	f.mu.Unlock()

	if proof == "" {
		return "", form.ValidationError{Field: "proof", Message: "Please upload a photo of the transaction."}
	}
	if err := form.ValidateContact(contact); err != nil {
		return "", err
	}

	record := entity.PaymentRecord{
		OrderID:        uuid.NewString(),
		Ticket:         f.order.TicketTypeID,
		Quantity:       f.order.Quantity,
		OriginalTotal:  f.order.OriginalTotal,
		DiscountAmount: f.order.DiscountAmount,
		PromoCode:      f.order.AppliedPromo,
		Total:          f.order.Total,
		PackageID:      f.order.TicketTypeID,
		Method:         method,
		PhotoDataURI:   proof,
		Name:           strings.TrimSpace(contact.Name),
		Email:          strings.TrimSpace(contact.Email),
		Phone:          strings.TrimSpace(contact.Phone),
		Age:            contact.Age,
		NeedTransport:  contact.NeedTransportation,
	}

	if err := f.recorder.AddPayment(ctx, record); err != nil {
		return "", fmt.Errorf("saving payment: %w", err)
	}

	return record.OrderID, nil
}
