package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/order-manager-api/internal/application/dto"
	"github.com/jhoicas/order-manager-api/internal/application/ledger"
	"github.com/jhoicas/order-manager-api/internal/application/usecase"
	"github.com/jhoicas/order-manager-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/order-manager-api/internal/interfaces/http"
	"github.com/jhoicas/order-manager-api/internal/metrics"
	"github.com/jhoicas/order-manager-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: app Fiber completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	ledgerUC := ledger.NewUseCase(
		memory.NewTxRunner(store),
		productRepo,
		orderRepo,
		logger.Nop(),
		metrics.NewLedgerMetricsWithRegisterer(prometheus.NewRegistry()),
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(productRepo),
		Ledger:    ledgerUC,
	})
	return app
}

// doJSON lanza una petición con cuerpo JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// createProduct da de alta un producto por la API y devuelve su respuesta.
func createProduct(t *testing.T, app *fiber.App, stock int64) dto.ProductResponse {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Monitor 27","brand":"Acme","price":199.99,"stock":%d}`, stock)
	resp := doJSON(t, app, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

// createOrder crea una orden por la API (espera 201) y devuelve su respuesta.
func createOrder(t *testing.T, app *fiber.App, productID string, qty int64) dto.OrderResponse {
	t.Helper()
	body := fmt.Sprintf(`{"product_id":%q,"quantity":%d,"customer":"Test Customer","order_date":"2023-09-20"}`, productID, qty)
	resp := doJSON(t, app, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.OrderResponse](t, resp)
}

func productStock(t *testing.T, app *fiber.App, productID string) int64 {
	t.Helper()
	resp := doJSON(t, app, http.MethodGet, "/api/products/"+productID+"/stock", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.StockResponse](t, resp).Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/orders
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_ReservaStock(t *testing.T) {
	app := buildTestApp(t)
	product := createProduct(t, app, 10)

	order := createOrder(t, app, product.ID, 2)

	assert.Equal(t, int64(2), order.Quantity)
	assert.Equal(t, "Test Customer", order.Customer)
	assert.Equal(t, "open", order.Status)
	require.NotNil(t, order.Product, "la orden serializada embebe el producto")
	assert.Equal(t, int64(8), order.Product.Stock)
	assert.Equal(t, int64(8), productStock(t, app, product.ID))
}

func TestCreateOrder_StockInsuficiente_Retorna400(t *testing.T) {
	app := buildTestApp(t)
	product := createProduct(t, app, 3)

	body := fmt.Sprintf(`{"product_id":%q,"quantity":5,"customer":"C","order_date":"2023-09-20"}`, product.ID)
	resp := doJSON(t, app, http.MethodPost, "/api/orders", body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)
	assert.NotEmpty(t, errResp.Message, "el cuerpo de error siempre lleva message")
	assert.Equal(t, int64(3), productStock(t, app, product.ID))
}

func TestCreateOrder_ProductoDesconocido_Retorna400(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/orders",
		`{"product_id":"no-existe","quantity":1,"customer":"C","order_date":"2023-09-20"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCreateOrder_CuerpoInvalido_Retorna400(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/orders", `{"quantity": "tres"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateOrder_CantidadCero_Retorna400(t *testing.T) {
	app := buildTestApp(t)
	product := createProduct(t, app, 10)

	body := fmt.Sprintf(`{"product_id":%q,"quantity":0,"customer":"C","order_date":"2023-09-20"}`, product.ID)
	resp := doJSON(t, app, http.MethodPost, "/api/orders", body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/orders
// ──────────────────────────────────────────────────────────────────────────────

func TestListOrders_ArrayPlano(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.OrderResponse](t, resp), "sin órdenes la lista es un array vacío")

	product := createProduct(t, app, 10)
	createOrder(t, app, product.ID, 2)

	resp = doJSON(t, app, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	orders := decode[[]dto.OrderResponse](t, resp)
	require.Len(t, orders, 1)
	assert.Equal(t, product.ID, orders[0].ProductID)
}

func TestGetOrder_NoExiste_Retorna404(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/orders/no-existe", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// PUT /api/orders/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateOrder_ReconciliaStock(t *testing.T) {
	app := buildTestApp(t)
	product := createProduct(t, app, 10)
	order := createOrder(t, app, product.ID, 2)
	require.Equal(t, int64(8), productStock(t, app, product.ID))

	resp := doJSON(t, app, http.MethodPut, "/api/orders/"+order.ID,
		`{"quantity":3,"customer":"Updated Customer","order_date":"2023-09-21"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.OrderResponse](t, resp)

	assert.Equal(t, int64(3), updated.Quantity)
	assert.Equal(t, "Updated Customer", updated.Customer)
	assert.Equal(t, "2023-09-21", updated.OrderDate)
	assert.Equal(t, int64(7), productStock(t, app, product.ID),
		"editar la cantidad debe re-reservar stock, no desincronizarlo")
}

func TestUpdateOrder_CantidadExcesiva_Retorna400(t *testing.T) {
	app := buildTestApp(t)
	product := createProduct(t, app, 10)
	order := createOrder(t, app, product.ID, 2)

	resp := doJSON(t, app, http.MethodPut, "/api/orders/"+order.ID, `{"quantity":50}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)
	assert.Equal(t, int64(8), productStock(t, app, product.ID), "sin efecto parcial")
}

func TestUpdateOrder_NoExiste_Retorna404(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPut, "/api/orders/no-existe", `{"quantity":1}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// DELETE /api/orders/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteOrder_RestauraStock(t *testing.T) {
	app := buildTestApp(t)
	product := createProduct(t, app, 10)
	order := createOrder(t, app, product.ID, 2)
	require.Equal(t, int64(8), productStock(t, app, product.ID))

	resp := doJSON(t, app, http.MethodDelete, "/api/orders/"+order.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[dto.MessageResponse](t, resp).Message)

	assert.Equal(t, int64(10), productStock(t, app, product.ID))

	resp = doJSON(t, app, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.OrderResponse](t, resp))
}

func TestDeleteOrder_Repetido_Retorna404(t *testing.T) {
	app := buildTestApp(t)
	product := createProduct(t, app, 10)
	order := createOrder(t, app, product.ID, 2)

	resp := doJSON(t, app, http.MethodDelete, "/api/orders/"+order.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/orders/"+order.ID, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"cancelar es idempotente por order_id: la segunda llamada reporta 404")
}
