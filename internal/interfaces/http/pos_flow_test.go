package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puntoventa/pos-api/internal/application/analytics"
	"github.com/puntoventa/pos-api/internal/application/auth"
	"github.com/puntoventa/pos-api/internal/application/billing"
	"github.com/puntoventa/pos-api/internal/application/cart"
	"github.com/puntoventa/pos-api/internal/application/catalog"
	"github.com/puntoventa/pos-api/internal/application/dto"
	"github.com/puntoventa/pos-api/internal/application/shop"
	"github.com/puntoventa/pos-api/internal/infrastructure/memory"
	"github.com/puntoventa/pos-api/internal/infrastructure/pdf"
	apphttp "github.com/puntoventa/pos-api/internal/interfaces/http"
)

// buildPOSApp arma la aplicación completa sobre el almacén en memoria, con el
// admin por defecto sembrado. Es el mismo cableado que hace cmd/api.
func buildPOSApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()

	authUC := auth.NewUseCase(store.Users(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	_, err := authUC.EnsureDefaultAdmin()
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC:   catalog.NewUseCase(store.Products()),
		Sessions:    cart.NewSessions(),
		SettleUC:    billing.NewSettleUseCase(store),
		HistoryUC:   billing.NewHistoryUseCase(store.Invoices(), store.Settings(), pdf.NewReceiptGenerator()),
		DashboardUC: analytics.NewDashboardUseCase(store.Invoices(), store.Products()),
		SettingsUC:  shop.NewUseCase(store.Settings()),
		AuthUC:      authUC,
		UserRepo:    store.Users(),
		JWTSecret:   testJWTSecret,
	})
	return app, store
}

// do lanza una petición JSON autenticada y decodifica la respuesta en out.
func do(t *testing.T, app *fiber.App, method, path, token string, body, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// loginAdmin entra con el PIN por defecto y devuelve el token.
func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	var out dto.LoginResponse
	status := do(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{PIN: auth.DefaultAdminPIN}, &out)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestPOS_FlujoCompletoDeVenta(t *testing.T) {
	app, _ := buildPOSApp(t)
	token := loginAdmin(t, app)

	// crear producto: arroz a 100 por Kg, 10 Kg en stock
	var product dto.ProductResponse
	status := do(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Arroz", "base_unit": "Kg", "price": "100", "stock": "10",
	}, &product)
	require.Equal(t, http.StatusCreated, status)
	assert.Contains(t, product.Units, "Gram")

	// abrir carrito y agregar 500 gramos
	var cartResp dto.CartResponse
	status = do(t, app, http.MethodPost, "/api/carts", token, nil, &cartResp)
	require.Equal(t, http.StatusCreated, status)

	status = do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/items", token, map[string]any{
		"product_id": product.ID, "quantity": "500", "unit": "Gram",
	}, &cartResp)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, cartResp.Items, 1)
	assert.Equal(t, "0.5", cartResp.Items[0].Quantity.String(), "500 Gram = 0.5 Kg")
	assert.Equal(t, "50", cartResp.Subtotal.String())

	// congelar y liquidar con 10% de descuento
	status = do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/checkout", token, nil, &cartResp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PendingPayment", cartResp.Status)

	var invoice dto.InvoiceResponse
	status = do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/settle", token, map[string]any{
		"discount": "10", "discount_type": "percentage", "payment_mode": "Cash",
	}, &invoice)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "INV0001", invoice.InvoiceNumber)
	assert.Equal(t, "45", invoice.Total.String())
	assert.Equal(t, "Administrador", invoice.CashierName)

	// el carrito liquidado ya no existe como sesión
	status = do(t, app, http.MethodGet, "/api/carts/"+cartResp.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// stock descontado
	var after dto.ProductResponse
	status = do(t, app, http.MethodGet, "/api/products/"+product.ID, token, nil, &after)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "9.5", after.Stock.String())

	// la factura aparece en el listado del día y tiene PDF
	var list dto.InvoiceListResponse
	status = do(t, app, http.MethodGet, "/api/invoices", token, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Items, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+invoice.ID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "el cuerpo debe ser un PDF")

	// el tablero registra la venta
	var dash dto.DashboardResponse
	status = do(t, app, http.MethodGet, "/api/dashboard", token, nil, &dash)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, dash.TodayInvoices)
	assert.Equal(t, "45", dash.TodaySales.String())
}

func TestPOS_LiquidacionFallidaNoMuta(t *testing.T) {
	app, store := buildPOSApp(t)
	token := loginAdmin(t, app)

	var product dto.ProductResponse
	status := do(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Aceite", "base_unit": "Litre", "price": "200", "stock": "2",
	}, &product)
	require.Equal(t, http.StatusCreated, status)

	var cartResp dto.CartResponse
	do(t, app, http.MethodPost, "/api/carts", token, nil, &cartResp)
	status = do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/items", token, map[string]any{
		"product_id": product.ID, "quantity": "2", "unit": "Litre",
	}, &cartResp)
	require.Equal(t, http.StatusOK, status)
	do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/checkout", token, nil, &cartResp)

	// descuento fuera de rango: la liquidación falla sin tocar nada
	status = do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/settle", token, map[string]any{
		"discount": "150", "discount_type": "percentage", "payment_mode": "Cash",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	shopSettings, err := store.Settings().Get()
	require.NoError(t, err)
	assert.EqualValues(t, 1, shopSettings.InvoiceCounter)

	// el carrito volvió a Open y puede corregirse
	var again dto.CartResponse
	status = do(t, app, http.MethodGet, "/api/carts/"+cartResp.ID, token, nil, &again)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Open", again.Status)
}

func TestPOS_StockInsuficienteAlAgregar(t *testing.T) {
	app, _ := buildPOSApp(t)
	token := loginAdmin(t, app)

	var product dto.ProductResponse
	do(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Sal", "base_unit": "Kg", "price": "10", "stock": "1",
	}, &product)

	var cartResp dto.CartResponse
	do(t, app, http.MethodPost, "/api/carts", token, nil, &cartResp)
	status := do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/items", token, map[string]any{
		"product_id": product.ID, "quantity": "1500", "unit": "Gram",
	}, nil)
	assert.Equal(t, http.StatusConflict, status, "1.5 Kg pedidos con 1 Kg en stock")
}

func TestPOS_UnidadIncompatibleAlAgregar(t *testing.T) {
	app, _ := buildPOSApp(t)
	token := loginAdmin(t, app)

	var product dto.ProductResponse
	do(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Leche", "base_unit": "Litre", "price": "50", "stock": "10",
	}, &product)

	var cartResp dto.CartResponse
	do(t, app, http.MethodPost, "/api/carts", token, nil, &cartResp)
	status := do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/items", token, map[string]any{
		"product_id": product.ID, "quantity": "1", "unit": "Kg",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status, "Kg no es convertible a Litre")
}

func TestPOS_BusquedaYUnidades(t *testing.T) {
	app, _ := buildPOSApp(t)
	token := loginAdmin(t, app)

	do(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Azúcar Morena", "base_unit": "Kg", "price": "80", "stock": "5",
	}, nil)

	var found []dto.ProductResponse
	status := do(t, app, http.MethodGet, "/api/products/search?q=azucar", token, nil, &found)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, found, 1)

	var units []dto.UnitResponse
	status = do(t, app, http.MethodGet, "/api/units?base=Kg", token, nil, &units)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, units, 2)
	assert.Equal(t, "Kg", units[0].Name)
	assert.Equal(t, "Gram", units[1].Name)
	assert.Equal(t, "0.001", units[1].Factor)

	status = do(t, app, http.MethodGet, "/api/units?base=Arroba", token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPOS_RBACEnRutasDeAdmin(t *testing.T) {
	app, _ := buildPOSApp(t)
	admin := loginAdmin(t, app)

	// crear un cajero y entrar con su PIN
	status := do(t, app, http.MethodPost, "/api/users", admin, dto.CreateUserRequest{
		Name: "Laura", Role: "Cashier", PIN: "9876",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var login dto.LoginResponse
	status = do(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{PIN: "9876"}, &login)
	require.Equal(t, http.StatusOK, status)

	// el cajero no puede crear productos ni tocar configuración
	status = do(t, app, http.MethodPost, "/api/products", login.Token, map[string]any{
		"name": "X", "base_unit": "Kg", "price": "1", "stock": "1",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = do(t, app, http.MethodPut, "/api/settings", login.Token, map[string]any{
		"shop_name": "Otra",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// pero sí puede listar el catálogo
	status = do(t, app, http.MethodGet, "/api/products", login.Token, nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestPOS_PrefijoPersonalizadoYConsecutivo(t *testing.T) {
	app, _ := buildPOSApp(t)
	token := loginAdmin(t, app)

	status := do(t, app, http.MethodPut, "/api/settings", token, map[string]any{
		"invoice_prefix": "TKT-",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	var product dto.ProductResponse
	do(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Pan", "base_unit": "Piece", "price": "5", "stock": "100",
	}, &product)

	for i := 1; i <= 2; i++ {
		var cartResp dto.CartResponse
		do(t, app, http.MethodPost, "/api/carts", token, nil, &cartResp)
		do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/items", token, map[string]any{
			"product_id": product.ID, "quantity": "1", "unit": "Piece",
		}, nil)
		do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/checkout", token, nil, nil)

		var invoice dto.InvoiceResponse
		status = do(t, app, http.MethodPost, "/api/carts/"+cartResp.ID+"/settle", token, map[string]any{
			"payment_mode": "UPI",
		}, &invoice)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, fmt.Sprintf("TKT-%04d", i), invoice.InvoiceNumber)
	}
}
