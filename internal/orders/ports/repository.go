package ports

import (
	"context"
	"errors"
	"time"

	"github.com/commercekit/storefront/internal/orders/domain"
)

// OrderRepository exposes the persistence operations the application layer
// requires. Save is a full-record upsert by id; partial updates are not
// part of the contract, so two concurrent writers race last-write-wins.
type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	Save(ctx context.Context, order domain.Order) error
	Summary(ctx context.Context) (*Summary, error)
}

// ListFilter narrows admin list queries by status and pagination.
type ListFilter struct {
	Status   *domain.OrderStatus
	Page     int
	PageSize int
}

// StatusCount is one row of the per-status breakdown in the summary report.
type StatusCount struct {
	Status domain.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// DailyRevenue is one day of the paid-revenue time series.
type DailyRevenue struct {
	Day     time.Time `json:"day"`
	Orders  int64     `json:"orders"`
	Revenue float64   `json:"revenue"`
}

// Summary is the admin aggregate report over all orders.
type Summary struct {
	TotalOrders     int64          `json:"total_orders"`
	PaidOrders      int64          `json:"paid_orders"`
	DeliveredOrders int64          `json:"delivered_orders"`
	TotalRevenue    float64        `json:"total_revenue"`
	ByStatus        []StatusCount  `json:"by_status"`
	Daily           []DailyRevenue `json:"daily"`
}

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")
)
