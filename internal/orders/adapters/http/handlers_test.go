package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/commercekit/storefront/internal/cart"
	cartmemory "github.com/commercekit/storefront/internal/cart/memory"
	"github.com/commercekit/storefront/internal/events"
	"github.com/commercekit/storefront/internal/idempotency/memory"
	"github.com/commercekit/storefront/internal/identity"
	identitymemory "github.com/commercekit/storefront/internal/identity/memory"
	orderhttp "github.com/commercekit/storefront/internal/orders/adapters/http"
	ordersmemory "github.com/commercekit/storefront/internal/orders/adapters/memory"
	"github.com/commercekit/storefront/internal/orders/app"
	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/metrics"
)

type testEnv struct {
	server    *httptest.Server
	cartStore *cartmemory.Store
}

const (
	userToken  = "token-user-1"
	otherToken = "token-user-2"
	adminToken = "token-admin"
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	orderMetrics, err := metrics.NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	cartStore := cartmemory.NewStore()
	service := app.NewService(
		ordersmemory.NewRepository(),
		cart.NewService(cartStore, logger),
		events.NewLogEventBus(logger),
		memory.NewStore(),
		logger,
		orderMetrics,
	)

	tokens := identitymemory.NewStore()
	tokens.Register(userToken, identity.Principal{ID: "user-1", Name: "User One"})
	tokens.Register(otherToken, identity.Principal{ID: "user-2", Name: "User Two"})
	tokens.Register(adminToken, identity.Principal{ID: "admin-1", Name: "Admin", IsAdmin: true})

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(identity.Authenticate(tokens))
		orderhttp.NewHandler(service).Register(r)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, cartStore: cartStore}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any, header map[string]string) *testResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := nethttp.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return &testResponse{StatusCode: resp.StatusCode, Body: raw}
}

type testResponse struct {
	StatusCode int
	Body       []byte
}

func (r *testResponse) decode(t *testing.T, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, target))
}

type orderResponse struct {
	Order domain.Order `json:"order"`
}

type ordersResponse struct {
	Orders []domain.Order `json:"orders"`
}

func validCreatePayload() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"product_id": "prod-1", "name": "Mechanical Keyboard", "quantity": 1, "unit_price": 89.90},
		},
		"shipping_address": map[string]any{
			"full_name":   "Ada Lovelace",
			"address":     "12 Analytical Way",
			"city":        "London",
			"postal_code": "N1 7AA",
			"country":     "UK",
		},
		"payment_method": "card",
		"items_price":    89.90,
		"shipping_price": 10,
		"tax_price":      15,
		"total_price":    114.90,
	}
}

func createOrder(t *testing.T, env *testEnv, token string) domain.Order {
	t.Helper()
	resp := env.do(t, nethttp.MethodPost, "/v1/orders", token, validCreatePayload(), nil)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode, string(resp.Body))
	var body orderResponse
	resp.decode(t, &body)
	return body.Order
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)

	t.Run("creates a pending order owned by the caller", func(t *testing.T) {
		order := createOrder(t, env, userToken)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "user-1", order.Owner)
		assert.Equal(t, domain.StatusPending, order.Status)
		assert.False(t, order.IsPaid)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodPost, "/v1/orders", "", validCreatePayload(), nil)
		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects unknown token", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodPost, "/v1/orders", "bogus", validCreatePayload(), nil)
		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects incomplete shipping address", func(t *testing.T) {
		payload := validCreatePayload()
		payload["shipping_address"] = map[string]any{"full_name": "Ada Lovelace"}
		resp := env.do(t, nethttp.MethodPost, "/v1/orders", userToken, payload, nil)
		assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	})

	t.Run("replays the stored response for a repeated idempotency key", func(t *testing.T) {
		header := map[string]string{"Idempotency-Key": "key-123"}

		first := env.do(t, nethttp.MethodPost, "/v1/orders", userToken, validCreatePayload(), header)
		require.Equal(t, nethttp.StatusCreated, first.StatusCode)
		second := env.do(t, nethttp.MethodPost, "/v1/orders", userToken, validCreatePayload(), header)
		require.Equal(t, nethttp.StatusCreated, second.StatusCode)

		var firstBody, secondBody orderResponse
		first.decode(t, &firstBody)
		second.decode(t, &secondBody)
		assert.Equal(t, firstBody.Order.ID, secondBody.Order.ID)
	})
}

func TestGetOrder(t *testing.T) {
	env := newTestEnv(t)
	order := createOrder(t, env, userToken)

	t.Run("owner reads own order", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/"+order.ID, userToken, nil, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)
		var body orderResponse
		resp.decode(t, &body)
		assert.Equal(t, order.ID, body.Order.ID)
	})

	t.Run("admin reads any order", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/"+order.ID, adminToken, nil, nil)
		assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/"+order.ID, otherToken, nil, nil)
		assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/nope", userToken, nil, nil)
		assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	})
}

func TestPayOrder(t *testing.T) {
	env := newTestEnv(t)
	order := createOrder(t, env, userToken)

	seedCart := func(t *testing.T) {
		t.Helper()
		err := env.cartStore.Upsert(context.Background(), cart.Cart{
			Owner: "user-1",
			Items: []domain.OrderItem{{ProductID: "prod-1", Name: "Mechanical Keyboard", Quantity: 1, UnitPrice: 89.90}},
		})
		require.NoError(t, err)
	}

	t.Run("records the confirmation and clears the cart", func(t *testing.T) {
		seedCart(t)

		confirmation := map[string]any{"external_id": "pay-123", "status": "COMPLETED", "payer_email": "ada@example.com"}
		resp := env.do(t, nethttp.MethodPost, "/v1/orders/"+order.ID+"/pay", userToken, confirmation, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode, string(resp.Body))

		var body orderResponse
		resp.decode(t, &body)
		assert.True(t, body.Order.IsPaid)
		require.NotNil(t, body.Order.PaymentResult)
		assert.Equal(t, "pay-123", body.Order.PaymentResult.ExternalID)

		_, err := env.cartStore.Get(context.Background(), "user-1")
		assert.ErrorIs(t, err, cart.ErrNotFound)
	})

	t.Run("stranger cannot settle someone else's order", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodPost, "/v1/orders/"+order.ID+"/pay", otherToken, map[string]any{"id": "x"}, nil)
		assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodPost, "/v1/orders/nope/pay", userToken, map[string]any{"id": "x"}, nil)
		assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)

	t.Run("non-admin is rejected by the route guard", func(t *testing.T) {
		order := createOrder(t, env, userToken)
		resp := env.do(t, nethttp.MethodPut, "/v1/orders/"+order.ID+"/status", userToken, map[string]any{"status": "Shipping"}, nil)
		assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		order := createOrder(t, env, userToken)
		resp := env.do(t, nethttp.MethodPut, "/v1/orders/"+order.ID+"/status", adminToken, map[string]any{"status": "Teleported"}, nil)
		assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	})

	t.Run("admin moves the order through fulfillment", func(t *testing.T) {
		order := createOrder(t, env, userToken)
		resp := env.do(t, nethttp.MethodPut, "/v1/orders/"+order.ID+"/status", adminToken, map[string]any{"status": "Shipping"}, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode, string(resp.Body))

		var body orderResponse
		resp.decode(t, &body)
		assert.Equal(t, domain.StatusShipping, body.Order.Status)
		assert.False(t, body.Order.IsPaid)
	})

	t.Run("delivering a cod order settles payment and clears the cart", func(t *testing.T) {
		payload := validCreatePayload()
		payload["payment_method"] = string(domain.PaymentMethodCOD)
		createResp := env.do(t, nethttp.MethodPost, "/v1/orders", userToken, payload, nil)
		require.Equal(t, nethttp.StatusCreated, createResp.StatusCode)
		var created orderResponse
		createResp.decode(t, &created)

		err := env.cartStore.Upsert(context.Background(), cart.Cart{Owner: "user-1"})
		require.NoError(t, err)

		resp := env.do(t, nethttp.MethodPut, "/v1/orders/"+created.Order.ID+"/status", adminToken, map[string]any{"status": "Delivered"}, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode, string(resp.Body))

		var body orderResponse
		resp.decode(t, &body)
		assert.True(t, body.Order.IsPaid)
		assert.True(t, body.Order.IsDelivered)
		require.NotNil(t, body.Order.PaymentResult)
		assert.Equal(t, "COD", body.Order.PaymentResult.ExternalID)

		_, err = env.cartStore.Get(context.Background(), "user-1")
		assert.ErrorIs(t, err, cart.ErrNotFound)
	})
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)
	createOrder(t, env, userToken)
	createOrder(t, env, userToken)
	createOrder(t, env, otherToken)

	t.Run("mine returns only the caller's orders", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/mine", userToken, nil, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)
		var body ordersResponse
		resp.decode(t, &body)
		require.Len(t, body.Orders, 2)
		for _, order := range body.Orders {
			assert.Equal(t, "user-1", order.Owner)
		}
	})

	t.Run("list all requires admin", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/", userToken, nil, nil)
		assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin lists every order", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/", adminToken, nil, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)
		var body ordersResponse
		resp.decode(t, &body)
		assert.Len(t, body.Orders, 3)
	})

	t.Run("admin filters by status", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/?status=Pending", adminToken, nil, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)
		var body ordersResponse
		resp.decode(t, &body)
		assert.Len(t, body.Orders, 3)
	})

	t.Run("bad status filter is a validation error", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/?status=Teleported", adminToken, nil, nil)
		assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	})
}

func TestOrderSummary(t *testing.T) {
	env := newTestEnv(t)
	createOrder(t, env, userToken)

	t.Run("requires admin", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/summary", userToken, nil, nil)
		assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	})

	t.Run("returns the aggregate report", func(t *testing.T) {
		resp := env.do(t, nethttp.MethodGet, "/v1/orders/summary", adminToken, nil, nil)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)

		var body struct {
			Summary struct {
				TotalOrders int64 `json:"total_orders"`
			} `json:"summary"`
		}
		resp.decode(t, &body)
		assert.Equal(t, int64(1), body.Summary.TotalOrders)
	})
}
