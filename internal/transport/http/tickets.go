package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Rtmt92/facebook/internal/app"
	"github.com/Rtmt92/facebook/internal/domain"
)

// TicketService is the minimal interface the ticketing endpoints need.
type TicketService interface {
	CreateTicketType(ctx context.Context, in app.CreateTicketTypeInput) (domain.TicketType, error)
	BuyTicket(ctx context.Context, in app.BuyTicketInput) (domain.Ticket, error)
	ListTicketTypes(ctx context.Context, eventID string) ([]domain.TicketType, error)
	ListTickets(ctx context.Context, ticketTypeID string) ([]domain.Ticket, error)
}

// HandleTicketType serves /ticketType/{id}/buy and /ticketType/{id}/tickets.
func HandleTicketType(svc TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := parseResourcePath(r.URL.Path, "ticketType")
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		switch {
		case action == "buy" && r.Method == http.MethodPost:
			buyTicket(w, r, svc, id)
		case action == "tickets" && r.Method == http.MethodGet:
			listTickets(w, r, svc, id)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

func createTicketType(w http.ResponseWriter, r *http.Request, svc TicketService, eventID string) {
	var req createTicketTypeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	tt, err := svc.CreateTicketType(r.Context(), app.CreateTicketTypeInput{
		EventID:   eventID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ticketTypeResponse{
		ID:        tt.ID,
		Event:     tt.EventID,
		Name:      tt.Name,
		Price:     tt.Price,
		Quantity:  tt.Quantity,
		CreatedBy: tt.CreatedBy,
		CreatedAt: tt.CreatedAt,
	})
}

func listTicketTypes(w http.ResponseWriter, r *http.Request, svc TicketService, eventID string) {
	types, err := svc.ListTicketTypes(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]populatedTicketTypeResponse, 0, len(types))
	for _, tt := range types {
		item := populatedTicketTypeResponse{
			ID:        tt.ID,
			Event:     tt.EventID,
			Name:      tt.Name,
			Price:     tt.Price,
			Quantity:  tt.Quantity,
			CreatedAt: tt.CreatedAt,
		}
		if tt.Creator != nil {
			item.CreatedBy = creatorResponse{
				ID:        tt.Creator.ID,
				Firstname: tt.Creator.Firstname,
				Lastname:  tt.Creator.Lastname,
			}
		}
		resp = append(resp, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

func buyTicket(w http.ResponseWriter, r *http.Request, svc TicketService, ticketTypeID string) {
	var req buyTicketRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	ticket, err := svc.BuyTicket(r.Context(), app.BuyTicketInput{
		TicketTypeID: ticketTypeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Address:      req.Address,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ticketResponse{
		ID:           ticket.ID,
		TicketType:   ticket.TicketTypeID,
		FirstName:    ticket.FirstName,
		LastName:     ticket.LastName,
		Address:      ticket.Address,
		PurchaseDate: ticket.PurchaseDate,
	})
}

func listTickets(w http.ResponseWriter, r *http.Request, svc TicketService, ticketTypeID string) {
	tickets, err := svc.ListTickets(r.Context(), ticketTypeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, ticketResponse{
			ID:           t.ID,
			TicketType:   t.TicketTypeID,
			FirstName:    t.FirstName,
			LastName:     t.LastName,
			Address:      t.Address,
			PurchaseDate: t.PurchaseDate,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type createTicketTypeRequest struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	CreatedBy string  `json:"createdBy"`
}

type ticketTypeResponse struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type creatorResponse struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type populatedTicketTypeResponse struct {
	ID        string          `json:"id"`
	Event     string          `json:"event"`
	Name      string          `json:"name"`
	Price     float64         `json:"price"`
	Quantity  int             `json:"quantity"`
	CreatedBy creatorResponse `json:"createdBy"`
	CreatedAt time.Time       `json:"createdAt"`
}

type buyTicketRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
}

type ticketResponse struct {
	ID           string    `json:"id"`
	TicketType   string    `json:"ticketType"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Address      string    `json:"address"`
	PurchaseDate time.Time `json:"purchaseDate"`
}
