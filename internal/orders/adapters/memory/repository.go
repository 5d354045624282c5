package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
)

// Repository provides an in-memory store useful for local development and tests.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{orders: make(map[string]domain.Order)}
}

// Create stores a new order instance.
func (r *Repository) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

// GetByID fetches a single order by identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := order
	return &copy, nil
}

// ListByOwner returns the owner's orders, oldest first.
func (r *Repository) ListByOwner(_ context.Context, owner string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Order{}
	for _, order := range r.orders {
		if order.Owner == owner {
			result = append(result, order)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// List returns orders respecting the provided filter. Pagination is 1-based.
func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Order
	for _, order := range r.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= len(result) {
		return []domain.Order{}, nil
	}

	end := start + pageSize
	if end > len(result) {
		end = len(result)
	}

	slice := make([]domain.Order, end-start)
	copy(slice, result[start:end])

	return slice, nil
}

// Save upserts the full order record by id. Concurrent savers race
// last-write-wins, matching the storage contract.
func (r *Repository) Save(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return ports.ErrNotFound
	}
	r.orders[order.ID] = order
	return nil
}

// Summary computes the admin aggregate report in memory.
func (r *Repository) Summary(_ context.Context) (*ports.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := &ports.Summary{}
	statusCounts := map[domain.OrderStatus]int64{}
	type bucket struct {
		orders  int64
		revenue float64
	}
	daily := map[string]*bucket{}

	for _, order := range r.orders {
		summary.TotalOrders++
		statusCounts[order.Status]++
		if order.IsDelivered {
			summary.DeliveredOrders++
		}
		if order.IsPaid {
			summary.PaidOrders++
			summary.TotalRevenue += order.TotalPrice

			key := order.PaidAt.UTC().Format("2006-01-02")
			b, ok := daily[key]
			if !ok {
				b = &bucket{}
				daily[key] = b
			}
			b.orders++
			b.revenue += order.TotalPrice
		}
	}

	for status, count := range statusCounts {
		summary.ByStatus = append(summary.ByStatus, ports.StatusCount{Status: status, Count: count})
	}
	sort.Slice(summary.ByStatus, func(i, j int) bool {
		return summary.ByStatus[i].Status < summary.ByStatus[j].Status
	})

	keys := make([]string, 0, len(daily))
	for key := range daily {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		day, _ := time.Parse("2006-01-02", key)
		summary.Daily = append(summary.Daily, ports.DailyRevenue{
			Day:     day,
			Orders:  daily[key].orders,
			Revenue: daily[key].revenue,
		})
	}

	return summary, nil
}
