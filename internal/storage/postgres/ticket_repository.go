package postgres

import (
	"context"
	"fmt"

	"github.com/Rtmt92/facebook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *TicketRepository) CreateTicketType(ctx context.Context, tt domain.TicketType) error {
	const stmt = `
INSERT INTO ticket_types (id, event_id, name, price, quantity, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		tt.ID,
		tt.EventID,
		tt.Name,
		tt.Price,
		tt.Quantity,
		tt.CreatedBy,
		tt.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			switch constraintName(err) {
			case "ticket_types_event_id_fkey":
				return domain.ErrEventNotFound
			case "ticket_types_created_by_fkey":
				return domain.ErrUserNotFound
			}
		}
		return fmt.Errorf("create ticket type: %w", err)
	}
	return nil
}

// DecrementQuantity is the serialization point for issuance: the conditional
// update row-locks the ticket type, so concurrent buyers of the same type
// queue here and only as many as the remaining quantity get through.
func (r *TicketRepository) DecrementQuantity(ctx context.Context, ticketTypeID string) error {
	const stmt = `
UPDATE ticket_types
SET quantity = quantity - 1
WHERE id = $1 AND quantity > 0`

	tag, err := r.exec(ctx, stmt, ticketTypeID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("decrement quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		const existsQuery = `SELECT EXISTS (SELECT 1 FROM ticket_types WHERE id = $1)`
		var exists bool
		if err := r.queryRow(ctx, existsQuery, ticketTypeID).Scan(&exists); err != nil {
			return fmt.Errorf("check ticket type: %w", err)
		}
		if !exists {
			return domain.ErrTicketTypeNotFound
		}
		return domain.ErrSoldOut
	}
	return nil
}

func (r *TicketRepository) CreateTicket(ctx context.Context, ticket domain.Ticket) error {
	const stmt = `
INSERT INTO tickets (id, ticket_type_id, first_name, last_name, address, purchase_date)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		ticket.ID,
		ticket.TicketTypeID,
		ticket.FirstName,
		ticket.LastName,
		ticket.Address,
		ticket.PurchaseDate,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrTicketTypeNotFound
		}
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) ListTicketTypesByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`
	var exists bool
	if err := r.queryRow(ctx, existsQuery, eventID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return nil, domain.ErrEventNotFound
	}

	const query = `
SELECT tt.id, tt.event_id, tt.name, tt.price, tt.quantity, tt.created_by, tt.created_at,
       u.firstname, u.lastname
FROM ticket_types tt
JOIN users u ON u.id = tt.created_by
WHERE tt.event_id = $1
ORDER BY tt.created_at ASC, tt.id ASC`

	rows, err := r.query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}
	defer rows.Close()

	var types []domain.TicketType
	for rows.Next() {
		var tt domain.TicketType
		var creator domain.User
		if err := rows.Scan(
			&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.Quantity, &tt.CreatedBy, &tt.CreatedAt,
			&creator.Firstname, &creator.Lastname,
		); err != nil {
			return nil, fmt.Errorf("scan ticket type: %w", err)
		}
		creator.ID = tt.CreatedBy
		tt.Creator = &creator
		types = append(types, tt)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate ticket types: %w", rows.Err())
	}
	return types, nil
}

func (r *TicketRepository) ListTicketsByType(ctx context.Context, ticketTypeID string) ([]domain.Ticket, error) {
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM ticket_types WHERE id = $1)`
	var exists bool
	if err := r.queryRow(ctx, existsQuery, ticketTypeID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("check ticket type: %w", err)
	}
	if !exists {
		return nil, domain.ErrTicketTypeNotFound
	}

	const query = `
SELECT id, ticket_type_id, first_name, last_name, address, purchase_date
FROM tickets
WHERE ticket_type_id = $1
ORDER BY purchase_date ASC, id ASC`

	rows, err := r.query(ctx, query, ticketTypeID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.TicketTypeID, &t.FirstName, &t.LastName, &t.Address, &t.PurchaseDate); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tickets: %w", rows.Err())
	}
	return tickets, nil
}

func (r *TicketRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *TicketRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *TicketRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
