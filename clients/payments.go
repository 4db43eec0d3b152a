package clients

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

type PaymentStatus struct {
	Status   string `json:"status"`
	Verified bool   `json:"verified"`
}

type FulfillResult struct {
	ReceiptSent bool   `json:"receiptSent"`
	Message     string `json:"message"`
}

// AlreadySent reports the backend's idempotency marker for a receipt that
// was delivered by an earlier fulfillment call.
func (r FulfillResult) AlreadySent() bool {
	return strings.Contains(strings.ToLower(r.Message), "receipt already sent")
}

type PaymentsClient struct {
	client *Client
}

func NewPaymentsClient(client *Client) PaymentsClient {
	return PaymentsClient{
		client: client,
	}
}

func (c PaymentsClient) PaymentStatus(ctx context.Context, merchantOrderID string) (PaymentStatus, error) {
	var status PaymentStatus
	path := "/api/payment/status?merchantOrderId=" + url.QueryEscape(merchantOrderID)
	if err := c.client.getJSON(ctx, path, &status); err != nil {
		return PaymentStatus{}, fmt.Errorf("checking payment status: %w", err)
	}

	return status, nil
}

func (c PaymentsClient) FulfillPayment(ctx context.Context, merchantOrderID string) (FulfillResult, error) {
	body := map[string]string{
		"merchantOrderId": merchantOrderID,
	}

	var result FulfillResult
	if err := c.client.postJSON(ctx, "/api/payment/fulfill", body, &result); err != nil {
		return FulfillResult{}, fmt.Errorf("fulfilling payment: %w", err)
	}

	return result, nil
}
