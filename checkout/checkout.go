package checkout

import (
	"fmt"

	"eventsite/entity"
	"eventsite/pricing"
)

const (
	minQuantity = 1
	maxQuantity = 10
)

// Checkout tracks one visitor's ticket selection up to the payment handoff.
// It is single-use: ProceedToPayment is a terminal transition and a fresh
// Checkout is created if the visitor returns.
type Checkout struct {
	registry pricing.Registry

	ticketTypeID   string
	quantity       int
	promoInput     string
	appliedPromo   string
	discountAmount float64
}

func New(registry pricing.Registry) *Checkout {
	return &Checkout{
		registry:     registry,
		ticketTypeID: entity.TicketStandard,
		quantity:     1,
	}
}

// SelectTicketType switches the package and clears any applied promo, since
// discount amounts are ticket-type-specific.
func (c *Checkout) SelectTicketType(id string) error {
	if _, ok := entity.TicketTypeByID(id); !ok {
		return fmt.Errorf("unknown ticket type: %q", id)
	}

	c.ticketTypeID = id
	c.promoInput = ""
	c.appliedPromo = ""
	c.discountAmount = 0
	return nil
}

// SetQuantity adjusts the standard-ticket quantity, clamped to 1..10. The
// friends package is always 5 tickets and ignores quantity changes.
func (c *Checkout) SetQuantity(quantity int) {
	if c.ticketTypeID == entity.TicketFriends {
		return
	}
	if quantity < minQuantity {
		quantity = minQuantity
	}
	if quantity > maxQuantity {
		quantity = maxQuantity
	}
	c.quantity = quantity
}

// EditPromoInput recomputes the applied promo on every change of the input,
// not on submit.
func (c *Checkout) EditPromoInput(text string) {
	c.promoInput = text
	c.appliedPromo, c.discountAmount = c.registry.Apply(text, c.ticketTypeID)
}

func (c *Checkout) AppliedPromo() (code string, discountAmount float64) {
	return c.appliedPromo, c.discountAmount
}

func (c *Checkout) OriginalTotal() float64 {
	ticket, _ := entity.TicketTypeByID(c.ticketTypeID)
	if c.ticketTypeID == entity.TicketFriends {
		return ticket.Price
	}
	return ticket.Price * float64(c.quantity)
}

func (c *Checkout) Total() float64 {
	return pricing.ComputeTotal(c.OriginalTotal(), c.discountAmount)
}

// ProceedToPayment builds the order snapshot handed to the payment flow,
// together with the payment route for the selected package.
func (c *Checkout) ProceedToPayment() (entity.OrderSnapshot, string) {
	quantity := c.quantity
	if c.ticketTypeID == entity.TicketFriends {
		quantity = 5
	}

	snapshot := entity.OrderSnapshot{
		TicketTypeID:   c.ticketTypeID,
		Quantity:       quantity,
		OriginalTotal:  c.OriginalTotal(),
		AppliedPromo:   c.appliedPromo,
		DiscountAmount: c.discountAmount,
		Total:          pricing.ComputeTotal(c.OriginalTotal(), c.discountAmount),
	}

	return snapshot, "/payment/" + c.ticketTypeID
}

// SnapshotFromHandoff normalizes a snapshot received via navigation state so
// the payment flow always consumes one validated shape. The total is
// recomputed rather than trusted.
func SnapshotFromHandoff(s entity.OrderSnapshot) entity.OrderSnapshot {
	if _, ok := entity.TicketTypeByID(s.TicketTypeID); !ok {
		s.TicketTypeID = entity.TicketStandard
	}
	if s.TicketTypeID == entity.TicketFriends {
		s.Quantity = 5
	} else if s.Quantity < minQuantity {
		s.Quantity = minQuantity
	}
	if s.DiscountAmount < 0 {
		s.DiscountAmount = 0
	}
	s.Total = pricing.ComputeTotal(s.OriginalTotal, s.DiscountAmount)
	return s
}

// SnapshotFromRouteDefaults reconstructs an order from just the package id
// in the URL, for direct loads of the payment page with no handoff state.
func SnapshotFromRouteDefaults(packageID string) entity.OrderSnapshot {
	if packageID == entity.TicketFriends {
		return entity.OrderSnapshot{
			TicketTypeID:  entity.TicketFriends,
			Quantity:      5,
			OriginalTotal: 1000,
			Total:         pricing.ComputeTotal(1000, 0),
		}
	}

	return entity.OrderSnapshot{
		TicketTypeID:  entity.TicketStandard,
		Quantity:      1,
		OriginalTotal: 250,
		Total:         pricing.ComputeTotal(250, 0),
	}
}
