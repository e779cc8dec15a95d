package http_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/order-manager-api/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// CRUD de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CicloCompleto(t *testing.T) {
	app := buildTestApp(t)

	// Alta
	resp := doJSON(t, app, http.MethodPost, "/api/products",
		`{"name":"Teclado mecánico","brand":"Acme","price":59.90,"stock":15}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Teclado mecánico", created.Name)
	assert.True(t, created.Price.Equal(decimal.NewFromFloat(59.90)))
	assert.Equal(t, int64(15), created.Stock)

	// Listado plano
	resp = doJSON(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]dto.ProductResponse](t, resp), 1)

	// Detalle
	resp = doJSON(t, app, http.MethodGet, "/api/products/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, decode[dto.ProductResponse](t, resp).ID)

	// Edición de campos descriptivos
	resp = doJSON(t, app, http.MethodPut, "/api/products/"+created.ID,
		`{"name":"Teclado mecánico RGB","price":69.90}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "Teclado mecánico RGB", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromFloat(69.90)))
	assert.Equal(t, int64(15), updated.Stock, "editar un producto no toca el stock")

	// Baja
	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[dto.MessageResponse](t, resp).Message)

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+created.ID, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateProduct_Invalido_Retorna400(t *testing.T) {
	app := buildTestApp(t)

	casos := []struct {
		nombre string
		body   string
	}{
		{"sin marca", `{"name":"Mouse","price":10.0,"stock":5}`},
		{"precio cero", `{"name":"Mouse","brand":"Acme","price":0,"stock":5}`},
		{"stock negativo", `{"name":"Mouse","brand":"Acme","price":10.0,"stock":-1}`},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/products", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

func TestGetProduct_NoExiste_Retorna404(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/products/no-existe", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateProduct_NoExiste_Retorna404(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPut, "/api/products/no-existe", `{"name":"X"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/products/:id/stock
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStock_ReflejaReservas(t *testing.T) {
	app := buildTestApp(t)
	product := createProduct(t, app, 10)

	resp := doJSON(t, app, http.MethodGet, "/api/products/"+product.ID+"/stock", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stock := decode[dto.StockResponse](t, resp)
	assert.Equal(t, product.ID, stock.ProductID)
	assert.Equal(t, int64(10), stock.Stock)

	createOrder(t, app, product.ID, 4)
	assert.Equal(t, int64(6), productStock(t, app, product.ID))
}

func TestGetStock_ProductoNoExiste_Retorna404(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/products/no-existe/stock", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación de producto con órdenes abiertas
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_ConOrdenAbierta(t *testing.T) {
	app := buildTestApp(t)
	product := createProduct(t, app, 10)
	order := createOrder(t, app, product.ID, 2)

	// Eliminar el producto está permitido aunque tenga órdenes abiertas.
	resp := doJSON(t, app, http.MethodDelete, "/api/products/"+product.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// La orden sobrevive con product embebido en null.
	resp = doJSON(t, app, http.MethodGet, "/api/orders/"+order.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.OrderResponse](t, resp)
	assert.Nil(t, got.Product)
	assert.Equal(t, product.ID, got.ProductID)

	// Cancelarla no intenta restaurar stock de un producto inexistente.
	resp = doJSON(t, app, http.MethodDelete, "/api/orders/"+order.ID, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
