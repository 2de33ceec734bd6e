package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Rtmt92/facebook/internal/domain"
	"github.com/Rtmt92/facebook/internal/testutil"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func TestTicketRepository_DecrementQuantity(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewTicketRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("decrements until sold out", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		userID := testutil.InsertUser(t, ctx, pool, "Ervin", "Goby")
		eventID := testutil.InsertEvent(t, ctx, pool, "Concert")
		typeID := testutil.InsertTicketType(t, ctx, pool, eventID, userID, "Pass", 2)

		if err := repo.DecrementQuantity(ctx, typeID); err != nil {
			t.Fatalf("first decrement: %v", err)
		}
		if err := repo.DecrementQuantity(ctx, typeID); err != nil {
			t.Fatalf("second decrement: %v", err)
		}
		if err := repo.DecrementQuantity(ctx, typeID); err != domain.ErrSoldOut {
			t.Fatalf("expected ErrSoldOut, got %v", err)
		}

		var quantity int
		if err := pool.QueryRow(ctx, `SELECT quantity FROM ticket_types WHERE id = $1`, typeID).Scan(&quantity); err != nil {
			t.Fatalf("query quantity: %v", err)
		}
		if quantity != 0 {
			t.Fatalf("expected quantity 0, got %d", quantity)
		}
	})

	t.Run("unknown ticket type", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		err := repo.DecrementQuantity(ctx, uuid.NewString())
		if err != domain.ErrTicketTypeNotFound {
			t.Fatalf("expected ErrTicketTypeNotFound, got %v", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		ctx := context.Background()

		err := repo.DecrementQuantity(ctx, "not-a-uuid")
		if err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})
}

func TestTicketRepository_ConcurrentIssue(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewTicketRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)
	userID := testutil.InsertUser(t, ctx, pool, "Ervin", "Goby")
	eventID := testutil.InsertEvent(t, ctx, pool, "Concert")

	const capacity = 3
	const buyers = 10
	typeID := testutil.InsertTicketType(t, ctx, pool, eventID, userID, "Pass", capacity)

	results := make([]error, buyers)
	var g errgroup.Group
	for i := 0; i < buyers; i++ {
		i := i
		g.Go(func() error {
			results[i] = repo.WithTx(ctx, func(txCtx context.Context) error {
				if err := repo.DecrementQuantity(txCtx, typeID); err != nil {
					return err
				}
				return repo.CreateTicket(txCtx, domain.Ticket{
					ID:           uuid.NewString(),
					TicketTypeID: typeID,
					FirstName:    "Ervin",
					LastName:     "Goby",
					Address:      "12 rue des Fleurs, Paris",
					PurchaseDate: time.Now().UTC(),
				})
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	var sold, refused int
	for _, err := range results {
		switch err {
		case nil:
			sold++
		case domain.ErrSoldOut:
			refused++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if sold != capacity {
		t.Fatalf("expected %d sales, got %d", capacity, sold)
	}
	if refused != buyers-capacity {
		t.Fatalf("expected %d refusals, got %d", buyers-capacity, refused)
	}

	var quantity, tickets int
	if err := pool.QueryRow(ctx, `SELECT quantity FROM ticket_types WHERE id = $1`, typeID).Scan(&quantity); err != nil {
		t.Fatalf("query quantity: %v", err)
	}
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE ticket_type_id = $1`, typeID).Scan(&tickets); err != nil {
		t.Fatalf("query tickets: %v", err)
	}
	if quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", quantity)
	}
	if tickets != capacity {
		t.Fatalf("expected %d tickets, got %d", capacity, tickets)
	}
}

func TestTicketRepository_CreateTicketType(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewTicketRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("maps missing references", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		userID := testutil.InsertUser(t, ctx, pool, "Ervin", "Goby")
		eventID := testutil.InsertEvent(t, ctx, pool, "Concert")

		base := domain.TicketType{
			ID:        uuid.NewString(),
			EventID:   eventID,
			Name:      "Pass",
			Price:     25,
			Quantity:  10,
			CreatedBy: userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.CreateTicketType(ctx, base); err != nil {
			t.Fatalf("create: %v", err)
		}

		missingEvent := base
		missingEvent.ID = uuid.NewString()
		missingEvent.EventID = uuid.NewString()
		if err := repo.CreateTicketType(ctx, missingEvent); err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}

		missingUser := base
		missingUser.ID = uuid.NewString()
		missingUser.CreatedBy = uuid.NewString()
		if err := repo.CreateTicketType(ctx, missingUser); err != domain.ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestTicketRepository_Listing(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewTicketRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("ticket types in creation order with creator", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		userID := testutil.InsertUser(t, ctx, pool, "Ervin", "Goby")
		eventID := testutil.InsertEvent(t, ctx, pool, "Concert")

		base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		for i, name := range []string{"Pass Journée", "Pass Soirée", "VIP"} {
			tt := domain.TicketType{
				ID:        uuid.NewString(),
				EventID:   eventID,
				Name:      name,
				Price:     25,
				Quantity:  10,
				CreatedBy: userID,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}
			if err := repo.CreateTicketType(ctx, tt); err != nil {
				t.Fatalf("create %s: %v", name, err)
			}
		}

		types, err := repo.ListTicketTypesByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(types) != 3 {
			t.Fatalf("expected 3 ticket types, got %d", len(types))
		}
		if types[0].Name != "Pass Journée" || types[1].Name != "Pass Soirée" || types[2].Name != "VIP" {
			t.Fatalf("unexpected order: %+v", types)
		}
		if types[0].Creator == nil || types[0].Creator.Firstname != "Ervin" || types[0].Creator.Lastname != "Goby" {
			t.Fatalf("expected creator populated, got %+v", types[0].Creator)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		_, err := repo.ListTicketTypesByEvent(ctx, uuid.NewString())
		if err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("tickets in purchase order", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		userID := testutil.InsertUser(t, ctx, pool, "Ervin", "Goby")
		eventID := testutil.InsertEvent(t, ctx, pool, "Concert")
		typeID := testutil.InsertTicketType(t, ctx, pool, eventID, userID, "Pass", 10)

		base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		for i, firstName := range []string{"Anne", "Bruno"} {
			ticket := domain.Ticket{
				ID:           uuid.NewString(),
				TicketTypeID: typeID,
				FirstName:    firstName,
				LastName:     "Goby",
				Address:      "12 rue des Fleurs, Paris",
				PurchaseDate: base.Add(time.Duration(i) * time.Minute),
			}
			if err := repo.CreateTicket(ctx, ticket); err != nil {
				t.Fatalf("create ticket: %v", err)
			}
		}

		tickets, err := repo.ListTicketsByType(ctx, typeID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(tickets) != 2 {
			t.Fatalf("expected 2 tickets, got %d", len(tickets))
		}
		if tickets[0].FirstName != "Anne" || tickets[1].FirstName != "Bruno" {
			t.Fatalf("unexpected order: %+v", tickets)
		}
	})

	t.Run("unknown ticket type", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		_, err := repo.ListTicketsByType(ctx, uuid.NewString())
		if err != domain.ErrTicketTypeNotFound {
			t.Fatalf("expected ErrTicketTypeNotFound, got %v", err)
		}
	})
}
