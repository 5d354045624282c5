package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
)

// Repository stores orders in Postgres. Items, the shipping address, and
// the payment result live in jsonb columns; lifecycle fields are flat
// columns so the summary aggregation can run in SQL.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const orderColumns = `
	id, owner, items, shipping_address, payment_method,
	items_price, shipping_price, tax_price, total_price,
	is_paid, paid_at, payment_result,
	is_delivered, delivered_at, status, created_at, updated_at
`

func (r *Repository) Create(ctx context.Context, order domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.Owner,
		order.Items,
		order.ShippingAddress,
		order.PaymentMethod,
		order.ItemsPrice,
		order.ShippingPrice,
		order.TaxPrice,
		order.TotalPrice,
		order.IsPaid,
		order.PaidAt,
		order.PaymentResult,
		order.IsDelivered,
		order.DeliveredAt,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID,
		&order.Owner,
		&order.Items,
		&order.ShippingAddress,
		&order.PaymentMethod,
		&order.ItemsPrice,
		&order.ShippingPrice,
		&order.TaxPrice,
		&order.TotalPrice,
		&order.IsPaid,
		&order.PaidAt,
		&order.PaymentResult,
		&order.IsDelivered,
		&order.DeliveredAt,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	return order, nil
}

func (r *Repository) ListByOwner(ctx context.Context, owner string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE owner = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("query orders by owner: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var statusFilter *string
	if filter.Status != nil {
		s := string(*filter.Status)
		statusFilter = &s
	}

	offset := (page - 1) * pageSize

	rows, err := r.pool.Query(ctx, query, statusFilter, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

// Save writes the full record back by id. The last writer's field values
// persist; there is no version check.
func (r *Repository) Save(ctx context.Context, order domain.Order) error {
	query := `
		UPDATE orders SET
			items = $2,
			shipping_address = $3,
			payment_method = $4,
			items_price = $5,
			shipping_price = $6,
			tax_price = $7,
			total_price = $8,
			is_paid = $9,
			paid_at = $10,
			payment_result = $11,
			is_delivered = $12,
			delivered_at = $13,
			status = $14,
			updated_at = $15
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		order.ID,
		order.Items,
		order.ShippingAddress,
		order.PaymentMethod,
		order.ItemsPrice,
		order.ShippingPrice,
		order.TaxPrice,
		order.TotalPrice,
		order.IsPaid,
		order.PaidAt,
		order.PaymentResult,
		order.IsDelivered,
		order.DeliveredAt,
		order.Status,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}

// Summary aggregates counts and paid revenue in SQL.
func (r *Repository) Summary(ctx context.Context) (*ports.Summary, error) {
	summary := &ports.Summary{}

	totalsQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_paid),
			COUNT(*) FILTER (WHERE is_delivered),
			COALESCE(SUM(total_price) FILTER (WHERE is_paid), 0)
		FROM orders
	`
	err := r.pool.QueryRow(ctx, totalsQuery).Scan(
		&summary.TotalOrders,
		&summary.PaidOrders,
		&summary.DeliveredOrders,
		&summary.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate order totals: %w", err)
	}

	statusQuery := `SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status`
	rows, err := r.pool.Query(ctx, statusQuery)
	if err != nil {
		return nil, fmt.Errorf("aggregate status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc ports.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		summary.ByStatus = append(summary.ByStatus, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	dailyQuery := `
		SELECT date_trunc('day', paid_at), COUNT(*), COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE is_paid
		GROUP BY 1
		ORDER BY 1
	`
	dailyRows, err := r.pool.Query(ctx, dailyQuery)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily revenue: %w", err)
	}
	defer dailyRows.Close()

	for dailyRows.Next() {
		var day ports.DailyRevenue
		if err := dailyRows.Scan(&day.Day, &day.Orders, &day.Revenue); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		summary.Daily = append(summary.Daily, day)
	}
	if err := dailyRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily revenue: %w", err)
	}

	return summary, nil
}
