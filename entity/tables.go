package entity

import "time"

// Static catalog data. Defined once at process start and never mutated.

var ticketTypes = []TicketType{
	{
		ID:          TicketStandard,
		Name:        "Standard Ticket",
		Price:       250,
		Currency:    Currency,
		TicketCount: 1,
		Description: "Full event access for one attendee",
		Features: []string{
			"Full event access (8 AM - 9 PM)",
			"Premium seating",
			"All speaker sessions",
			"Live performances",
			"Digital certificate of attendance",
			"Event swag bag",
		},
	},
	{
		ID:            TicketFriends,
		Name:          "Friends Package",
		Price:         1000,
		OriginalPrice: 1250,
		Currency:      Currency,
		TicketCount:   5,
		Badge:         "4 + 1 FREE",
		Description:   "Perfect for groups of 5 friends",
		Features: []string{
			"5 tickets (pay for 4, get 1 free)",
			"Group seating together",
			"All standard ticket benefits",
			"Priority networking access",
			"Exclusive group photo opportunity",
			"20% savings vs individual tickets",
		},
		Popular: true,
	},
}

func TicketTypes() []TicketType {
	out := make([]TicketType, len(ticketTypes))
	copy(out, ticketTypes)
	return out
}

func TicketTypeByID(id string) (TicketType, bool) {
	for _, t := range ticketTypes {
		if t.ID == id {
			return t, true
		}
	}
	return TicketType{}, false
}

var workshops = []Workshop{
	{
		ID:            "w1",
		Title:         "Intro to AI for Developers",
		Start:         time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC),
		End:           time.Date(2026, 1, 5, 13, 0, 0, 0, time.UTC),
		Location:      "Online",
		TemplateID:    "template_2k1eqrh",
		WhatsappGroup: "https://chat.whatsapp.com/EoZcV358n5VE9xJLMFaL50",
	},
	{
		ID:            "w2",
		Title:         "Level Up with TEDx ITech",
		Start:         time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC),
		End:           time.Date(2026, 1, 23, 13, 0, 0, 0, time.UTC),
		Location:      "Online",
		TemplateID:    "template_2k1eqrh",
		WhatsappGroup: "https://chat.whatsapp.com/EoZcV358n5VE9xJLMFaL50",
	},
}

func Workshops() []Workshop {
	out := make([]Workshop, len(workshops))
	copy(out, workshops)
	return out
}

func WorkshopByID(id string) (Workshop, bool) {
	for _, w := range workshops {
		if w.ID == id {
			return w, true
		}
	}
	return Workshop{}, false
}

var packageChannels = map[string]PackageChannels{
	TicketStandard: {
		Vodafone: PaymentChannel{
			QR:      "/payment-qr/vf-standard.jpeg",
			Link:    "http://vf.eg/vfcash?id=mt&qrId=jZiVct",
			Account: "01003137654",
		},
		Instapay: PaymentChannel{
			QR:      "/payment-qr/instapay.jpeg",
			Link:    "https://ipn.eg/S/gara.xq/instapay/1PzSU0",
			Account: "gara.xq@instapay",
		},
	},
	TicketFriends: {
		Vodafone: PaymentChannel{
			QR:      "/payment-qr/vf-friends.jpeg",
			Link:    "http://vf.eg/vfcash?id=mt&qrId=jZiVct&qrString=20d2ac67ce3eddad6ba04000aadc4c500ad161e3a7463421b3bba3ba38c213fd&parameters=vRUevHkvQsRAFRfddP0BMMlNbERgofFHEex2dlOwmPnUwY0p/CzG+Nr2Y/l32M2V",
			Account: "01003137654",
		},
		Instapay: PaymentChannel{
			QR:      "/payment-qr/instapay.jpeg",
			Link:    "https://ipn.eg/S/gara.xq/instapay/1PzSU0",
			Account: "gara.xq@instapay",
		},
	},
}

// ChannelsForPackage falls back to the standard package for unknown ids,
// matching the payment page behaviour on a direct load.
func ChannelsForPackage(packageID string) PackageChannels {
	if c, ok := packageChannels[packageID]; ok {
		return c
	}
	return packageChannels[TicketStandard]
}
