package commands_test

import (
	"context"

	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
)

type mockRepository struct {
	createFn func(ctx context.Context, order domain.Order) error
	getFn    func(ctx context.Context, id string) (*domain.Order, error)
	saveFn   func(ctx context.Context, order domain.Order) error

	created []domain.Order
	saved   []domain.Order
}

func (m *mockRepository) Create(ctx context.Context, order domain.Order) error {
	m.created = append(m.created, order)
	if m.createFn != nil {
		return m.createFn(ctx, order)
	}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *mockRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockRepository) Save(ctx context.Context, order domain.Order) error {
	m.saved = append(m.saved, order)
	if m.saveFn != nil {
		return m.saveFn(ctx, order)
	}
	return nil
}

func (m *mockRepository) Summary(ctx context.Context) (*ports.Summary, error) {
	return &ports.Summary{}, nil
}

type mockCartClearer struct {
	clearFn func(ctx context.Context, owner string) error
	cleared []string
}

func (m *mockCartClearer) Clear(ctx context.Context, owner string) error {
	m.cleared = append(m.cleared, owner)
	if m.clearFn != nil {
		return m.clearFn(ctx, owner)
	}
	return nil
}

type mockEventBus struct {
	created       []string
	paid          []string
	statusChanged []string
}

func (m *mockEventBus) PublishOrderCreated(_ context.Context, orderID string) error {
	m.created = append(m.created, orderID)
	return nil
}

func (m *mockEventBus) PublishOrderPaid(_ context.Context, orderID string) error {
	m.paid = append(m.paid, orderID)
	return nil
}

func (m *mockEventBus) PublishOrderStatusChanged(_ context.Context, orderID string, status string) error {
	m.statusChanged = append(m.statusChanged, orderID+":"+status)
	return nil
}
