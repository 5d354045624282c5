package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/commercekit/storefront/internal/orders/adapters/memory"
	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
)

func seedOrder(t *testing.T, repo *memory.Repository, order domain.Order) {
	t.Helper()
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("seeding order %q: %v", order.ID, err)
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := memory.NewRepository()
	seedOrder(t, repo, domain.Order{ID: "order-1", Owner: "user-1", Status: domain.StatusPending})

	t.Run("returns a stored order", func(t *testing.T) {
		order, err := repo.GetByID(context.Background(), "order-1")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if order.Owner != "user-1" {
			t.Errorf("unexpected order: %+v", order)
		}
	})

	t.Run("returned order is a copy", func(t *testing.T) {
		order, _ := repo.GetByID(context.Background(), "order-1")
		order.Owner = "tampered"

		again, _ := repo.GetByID(context.Background(), "order-1")
		if again.Owner != "user-1" {
			t.Errorf("mutation leaked into the store: %+v", again)
		}
	})

	t.Run("missing order yields ErrNotFound", func(t *testing.T) {
		if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})
}

func TestListByOwner(t *testing.T) {
	repo := memory.NewRepository()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedOrder(t, repo, domain.Order{ID: "order-2", Owner: "user-1", CreatedAt: base.Add(time.Hour)})
	seedOrder(t, repo, domain.Order{ID: "order-1", Owner: "user-1", CreatedAt: base})
	seedOrder(t, repo, domain.Order{ID: "order-3", Owner: "user-2", CreatedAt: base})

	orders, err := repo.ListByOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != "order-1" || orders[1].ID != "order-2" {
		t.Errorf("expected oldest first, got: %s, %s", orders[0].ID, orders[1].ID)
	}
}

func TestList(t *testing.T) {
	repo := memory.NewRepository()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, status := range []domain.OrderStatus{
		domain.StatusPending,
		domain.StatusProcessing,
		domain.StatusPending,
		domain.StatusDelivered,
	} {
		seedOrder(t, repo, domain.Order{
			ID:        "order-" + string(rune('1'+i)),
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	t.Run("filters by status", func(t *testing.T) {
		pending := domain.StatusPending
		orders, err := repo.List(context.Background(), ports.ListFilter{Status: &pending})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(orders) != 2 {
			t.Errorf("expected 2 pending orders, got %d", len(orders))
		}
	})

	t.Run("paginates oldest first", func(t *testing.T) {
		orders, err := repo.List(context.Background(), ports.ListFilter{Page: 2, PageSize: 3})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(orders) != 1 || orders[0].ID != "order-4" {
			t.Errorf("unexpected page: %+v", orders)
		}
	})

	t.Run("page beyond the end is empty", func(t *testing.T) {
		orders, err := repo.List(context.Background(), ports.ListFilter{Page: 5, PageSize: 10})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(orders) != 0 {
			t.Errorf("expected empty page, got: %+v", orders)
		}
	})
}

func TestSave(t *testing.T) {
	repo := memory.NewRepository()
	seedOrder(t, repo, domain.Order{ID: "order-1", Status: domain.StatusPending})

	t.Run("replaces the full record", func(t *testing.T) {
		err := repo.Save(context.Background(), domain.Order{ID: "order-1", Status: domain.StatusShipping})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		order, _ := repo.GetByID(context.Background(), "order-1")
		if order.Status != domain.StatusShipping {
			t.Errorf("expected Shipping, got: %s", order.Status)
		}
	})

	t.Run("rejects unknown ids", func(t *testing.T) {
		err := repo.Save(context.Background(), domain.Order{ID: "missing"})
		if !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})
}

func TestSummary(t *testing.T) {
	repo := memory.NewRepository()
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)

	seedOrder(t, repo, domain.Order{
		ID: "order-1", Status: domain.StatusDelivered, TotalPrice: 100,
		IsPaid: true, PaidAt: &day1, IsDelivered: true, DeliveredAt: &day2,
	})
	seedOrder(t, repo, domain.Order{
		ID: "order-2", Status: domain.StatusProcessing, TotalPrice: 250,
		IsPaid: true, PaidAt: &day2,
	})
	seedOrder(t, repo, domain.Order{ID: "order-3", Status: domain.StatusPending, TotalPrice: 999})

	summary, err := repo.Summary(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if summary.TotalOrders != 3 || summary.PaidOrders != 2 || summary.DeliveredOrders != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.TotalRevenue != 350 {
		t.Errorf("expected revenue 350 from paid orders only, got %v", summary.TotalRevenue)
	}

	if len(summary.ByStatus) != 3 {
		t.Fatalf("expected 3 status rows, got %d", len(summary.ByStatus))
	}

	if len(summary.Daily) != 2 {
		t.Fatalf("expected 2 daily buckets, got %d", len(summary.Daily))
	}
	if !summary.Daily[0].Day.Before(summary.Daily[1].Day) {
		t.Errorf("expected day buckets in ascending order: %+v", summary.Daily)
	}
	if summary.Daily[0].Revenue != 100 || summary.Daily[1].Revenue != 250 {
		t.Errorf("unexpected daily revenue: %+v", summary.Daily)
	}
}
