package domain

import "time"

// TicketType is a purchasable admission category with finite capacity.
// Quantity only ever decreases; once it reaches zero the type is sold out
// for good (no restock).
type TicketType struct {
	ID        string
	EventID   string
	Name      string
	Price     float64
	Quantity  int
	CreatedBy string
	// Creator is populated on listing, nil otherwise.
	Creator   *User
	CreatedAt time.Time
}

// Ticket is one issued unit of a ticket type, bound to a buyer. Immutable
// once created.
type Ticket struct {
	ID           string
	TicketTypeID string
	FirstName    string
	LastName     string
	Address      string
	PurchaseDate time.Time
}
