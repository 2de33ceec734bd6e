package app

import (
	"context"
	"unicode/utf8"

	"github.com/Rtmt92/facebook/internal/clock"
	"github.com/Rtmt92/facebook/internal/domain"
)

type TicketRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateTicketType(ctx context.Context, tt domain.TicketType) error
	DecrementQuantity(ctx context.Context, ticketTypeID string) error
	CreateTicket(ctx context.Context, ticket domain.Ticket) error
	ListTicketTypesByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error)
	ListTicketsByType(ctx context.Context, ticketTypeID string) ([]domain.Ticket, error)
}

// TicketService owns ticket type capacity. Issuance decrements the remaining
// quantity and creates the ticket in one transaction, so two buyers racing
// for the last unit cannot both succeed.
type TicketService struct {
	repo  TicketRepository
	clock clock.Clock
}

func NewTicketService(repo TicketRepository, clk clock.Clock) *TicketService {
	return &TicketService{
		repo:  repo,
		clock: clk,
	}
}

type CreateTicketTypeInput struct {
	EventID   string
	Name      string
	Price     float64
	Quantity  int
	CreatedBy string
}

func (in CreateTicketTypeInput) validate() error {
	var v domain.Violations
	if in.Name == "" {
		v.Add("name is required")
	} else if utf8.RuneCountInString(in.Name) < 2 {
		v.Add("name must be at least 2 characters")
	}
	if in.Price < 0 {
		v.Add("price must be zero or positive")
	}
	if in.Quantity < 1 {
		v.Add("quantity must be at least 1")
	}
	if in.CreatedBy == "" {
		v.Add("createdBy is required")
	}
	return v.Err()
}

func (s *TicketService) CreateTicketType(ctx context.Context, in CreateTicketTypeInput) (domain.TicketType, error) {
	if in.EventID == "" {
		return domain.TicketType{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.TicketType{}, err
	}

	tt := domain.TicketType{
		ID:        newID(),
		EventID:   in.EventID,
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  in.Quantity,
		CreatedBy: in.CreatedBy,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.CreateTicketType(ctx, tt); err != nil {
		return domain.TicketType{}, err
	}
	return tt, nil
}

type BuyTicketInput struct {
	TicketTypeID string
	FirstName    string
	LastName     string
	Address      string
}

func (in BuyTicketInput) validate() error {
	var v domain.Violations
	if in.FirstName == "" {
		v.Add("firstName is required")
	} else if utf8.RuneCountInString(in.FirstName) < 2 {
		v.Add("firstName must be at least 2 characters")
	}
	if in.LastName == "" {
		v.Add("lastName is required")
	} else if utf8.RuneCountInString(in.LastName) < 2 {
		v.Add("lastName must be at least 2 characters")
	}
	if in.Address == "" {
		v.Add("address is required")
	} else if utf8.RuneCountInString(in.Address) < 5 {
		v.Add("address must be at least 5 characters")
	}
	return v.Err()
}

// BuyTicket issues one ticket. The decrement-if-positive and the ticket
// insert run in the same transaction; on any failure nothing is kept.
func (s *TicketService) BuyTicket(ctx context.Context, in BuyTicketInput) (domain.Ticket, error) {
	if in.TicketTypeID == "" {
		return domain.Ticket{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.Ticket{}, err
	}

	ticket := domain.Ticket{
		ID:           newID(),
		TicketTypeID: in.TicketTypeID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Address:      in.Address,
		PurchaseDate: s.clock.Now(),
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.DecrementQuantity(txCtx, in.TicketTypeID); err != nil {
			return err
		}
		return s.repo.CreateTicket(txCtx, ticket)
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	return ticket, nil
}

func (s *TicketService) ListTicketTypes(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListTicketTypesByEvent(ctx, eventID)
}

func (s *TicketService) ListTickets(ctx context.Context, ticketTypeID string) ([]domain.Ticket, error) {
	if ticketTypeID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListTicketsByType(ctx, ticketTypeID)
}
