package entity

import "time"

const Currency = "EGP"

const (
	TicketStandard = "standard"
	TicketFriends  = "friends"
)

const (
	MethodVodafone = "vodafone"
	MethodInstapay = "instapay"
)

type TicketType struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price,omitempty"`
	Currency      string   `json:"currency"`
	TicketCount   int      `json:"ticket_count"`
	Badge         string   `json:"badge,omitempty"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
}

// OrderSnapshot is the checkout result handed to the payment flow. It is
// copied by value at handoff and never mutated afterwards.
type OrderSnapshot struct {
	TicketTypeID   string  `json:"ticket_type_id"`
	Quantity       int     `json:"quantity"`
	OriginalTotal  float64 `json:"original_total"`
	AppliedPromo   string  `json:"applied_promo,omitempty"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}

type Contact struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Age                int    `json:"age"`
	NeedTransportation bool   `json:"need_transportation"`
}

type PaymentRecord struct {
	OrderID        string  `json:"order_id" db:"order_id"`
	Ticket         string  `json:"ticket" db:"ticket"`
	Quantity       int     `json:"quantity" db:"quantity"`
	OriginalTotal  float64 `json:"original_total" db:"original_total"`
	DiscountAmount float64 `json:"discount_amount" db:"discount_amount"`
	PromoCode      string  `json:"promo_code" db:"promo_code"`
	Total          float64 `json:"total" db:"total"`
	PackageID      string  `json:"package_id" db:"package_id"`
	Method         string  `json:"method" db:"method"`
	PhotoDataURI   string  `json:"photo_data_uri" db:"photo_data_uri"`
	Name           string  `json:"name" db:"name"`
	Email          string  `json:"email" db:"email"`
	Phone          string  `json:"phone" db:"phone"`
	Age            int     `json:"age" db:"age"`
	NeedTransport  bool    `json:"need_transportation" db:"need_transportation"`
}

type Registration struct {
	WorkshopID   string `json:"workshop_id" db:"workshop_id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Phone        string `json:"phone" db:"phone"`
	Age          int    `json:"age" db:"age"`
	Governorate  string `json:"governorate" db:"governorate"`
	ProgramTitle string `json:"program_title" db:"program_title"`
	GroupLink    string `json:"group_link" db:"group_link"`
}

type Workshop struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Location      string    `json:"location"`
	TemplateID    string    `json:"template_id"`
	WhatsappGroup string    `json:"whatsapp_group"`
}

// PaymentChannel describes one way to pay for a package: a static QR image,
// a deep link into the wallet app and a copyable account identifier.
type PaymentChannel struct {
	QR      string `json:"qr"`
	Link    string `json:"link"`
	Account string `json:"account"`
}

type PackageChannels struct {
	Vodafone PaymentChannel `json:"vodafone"`
	Instapay PaymentChannel `json:"instapay"`
}
