package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/commercekit/storefront/internal/identity"
	"github.com/commercekit/storefront/internal/orders/app/commands"
	"github.com/commercekit/storefront/internal/orders/domain"
)

func validCreateCommand(caller identity.Principal) commands.CreateOrderCommand {
	return commands.CreateOrderCommand{
		Caller: caller,
		Items: []domain.OrderItem{
			{ProductID: "p1", Name: "Keyboard", Slug: "keyboard", UnitPrice: 120000, Quantity: 2},
		},
		ShippingAddress: domain.ShippingAddress{
			FullName:   "Ada Lovelace",
			Address:    "12 Analytical St",
			City:       "London",
			PostalCode: "N1 9GU",
			Country:    "UK",
		},
		PaymentMethod: "PayPal",
		ItemsPrice:    240000,
		ShippingPrice: 10000,
		TotalPrice:    250000,
	}
}

func TestCreateOrder(t *testing.T) {
	customer := identity.Principal{ID: "user-1", Name: "Ada"}

	t.Run("creates pending unpaid order with valid input", func(t *testing.T) {
		repo := &mockRepository{}
		events := &mockEventBus{}
		handler := commands.NewCreateOrderCommandHandler(repo, events)

		order, err := handler.Handle(context.Background(), validCreateCommand(customer))

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if order == nil {
			t.Fatal("expected order to be returned, got nil")
		}
		if order.ID == "" {
			t.Error("expected order ID to be generated")
		}
		if order.Status != domain.StatusPending {
			t.Errorf("expected status %s, got %s", domain.StatusPending, order.Status)
		}
		if order.IsPaid || order.IsDelivered {
			t.Error("new orders must be unpaid and undelivered")
		}
		if order.TotalPrice != 250000 {
			t.Errorf("expected total price 250000, got %v", order.TotalPrice)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected 1 repository create, got %d", len(repo.created))
		}
		if len(events.created) != 1 {
			t.Errorf("expected order-created event, got %v", events.created)
		}
	})

	t.Run("owner is always the caller", func(t *testing.T) {
		repo := &mockRepository{}
		handler := commands.NewCreateOrderCommandHandler(repo, &mockEventBus{})

		order, err := handler.Handle(context.Background(), validCreateCommand(customer))

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if order.Owner != customer.ID {
			t.Errorf("expected owner %s, got %s", customer.ID, order.Owner)
		}
	})

	t.Run("returns validation error on missing address field", func(t *testing.T) {
		repo := &mockRepository{}
		handler := commands.NewCreateOrderCommandHandler(repo, &mockEventBus{})

		cmd := validCreateCommand(customer)
		cmd.ShippingAddress.PostalCode = ""

		order, err := handler.Handle(context.Background(), cmd)

		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("expected ValidationError, got %T", err)
		}
		if order != nil {
			t.Errorf("expected nil order, got %+v", order)
		}
		if len(repo.created) != 0 {
			t.Error("invalid orders must not reach the repository")
		}
	})

	t.Run("accepts empty items and zero prices as given", func(t *testing.T) {
		handler := commands.NewCreateOrderCommandHandler(&mockRepository{}, &mockEventBus{})

		cmd := validCreateCommand(customer)
		cmd.Items = nil
		cmd.TotalPrice = -1 // trusted as given; no server-side recomputation

		order, err := handler.Handle(context.Background(), cmd)

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if order.TotalPrice != -1 {
			t.Errorf("expected price stored verbatim, got %v", order.TotalPrice)
		}
	})

	t.Run("returns error when repository fails", func(t *testing.T) {
		repoErr := errors.New("database connection failed")
		repo := &mockRepository{
			createFn: func(ctx context.Context, order domain.Order) error {
				return repoErr
			},
		}
		handler := commands.NewCreateOrderCommandHandler(repo, &mockEventBus{})

		order, err := handler.Handle(context.Background(), validCreateCommand(customer))

		if !errors.Is(err, repoErr) {
			t.Errorf("expected repository error, got: %v", err)
		}
		if order != nil {
			t.Errorf("expected nil order, got %+v", order)
		}
	})
}
