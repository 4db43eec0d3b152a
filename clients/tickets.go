package clients

import (
	"context"
	"fmt"
	"net/url"
)

type TicketHolder struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	PromoCode string `json:"promoCode"`
}

type TicketInfo struct {
	TicketCode string        `json:"ticketCode"`
	Scanned    bool          `json:"scanned"`
	ScannedAt  string        `json:"scannedAt"`
	User       *TicketHolder `json:"user"`
}

type CheckInResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type TicketsClient struct {
	client *Client
}

func NewTicketsClient(client *Client) TicketsClient {
	return TicketsClient{
		client: client,
	}
}

// LookupTicket fetches holder info for a ticket code without consuming it.
func (c TicketsClient) LookupTicket(ctx context.Context, code string) (TicketInfo, error) {
	var info TicketInfo
	path := "/api/ticket/check?code=" + url.QueryEscape(code)
	if err := c.client.getJSON(ctx, path, &info); err != nil {
		return TicketInfo{}, fmt.Errorf("looking up ticket: %w", err)
	}

	return info, nil
}

// CheckIn marks the ticket as scanned. The backend answers ok=false with a
// message when the ticket was already used.
func (c TicketsClient) CheckIn(ctx context.Context, code string) (CheckInResult, error) {
	body := map[string]string{
		"code": code,
	}

	var result CheckInResult
	if err := c.client.postJSON(ctx, "/api/ticket/check", body, &result); err != nil {
		return CheckInResult{}, fmt.Errorf("checking in ticket: %w", err)
	}

	return result, nil
}
