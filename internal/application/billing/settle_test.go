package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puntoventa/pos-api/internal/application/billing"
	"github.com/puntoventa/pos-api/internal/application/cart"
	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/unit"
	"github.com/puntoventa/pos-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedProduct crea y persiste un producto en el almacén.
func seedProduct(t *testing.T, store *memory.Store, name string, baseUnit unit.Unit, price, stock string) entity.Product {
	t.Helper()
	p := entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		BaseUnit:  baseUnit,
		Price:     d(price),
		Stock:     d(stock),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.Products().Create(&p))
	return p
}

// cartWith arma un carrito congelado con las líneas dadas.
func cartWith(t *testing.T, lines ...func(c *cart.Cart)) *cart.Cart {
	t.Helper()
	c := cart.New()
	for _, add := range lines {
		add(c)
	}
	require.NoError(t, c.Checkout())
	return c
}

func addLine(t *testing.T, p entity.Product, qty string, u unit.Unit) func(c *cart.Cart) {
	return func(c *cart.Cart) {
		require.NoError(t, c.AddItem(p, d(qty), u))
	}
}

func settleInput() billing.SettleInput {
	return billing.SettleInput{
		DiscountType: entity.DiscountPercentage,
		Discount:     decimal.Zero,
		PaymentMode:  entity.PaymentCash,
		CashierID:    "cajero-1",
		CashierName:  "Laura",
	}
}

func TestSettle_CarritoVacio(t *testing.T) {
	store := memory.NewStore()
	uc := billing.NewSettleUseCase(store)

	_, err := uc.Settle(context.Background(), cart.New(), settleInput())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestSettle_RequierePendingPayment(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "Arroz", unit.Kg, "100", "10")
	uc := billing.NewSettleUseCase(store)

	c := cart.New() // sigue en Open
	require.NoError(t, c.AddItem(p, d("1"), unit.Kg))
	_, err := uc.Settle(context.Background(), c, settleInput())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSettle_EscenarioCompleto(t *testing.T) {
	// P(base=Kg, precio=100, stock=10); addItem(P, 500, Gram) → 0.5 Kg,
	// subtotal 50; liquidar con 10% → total 45, stock 9.5, contador avanza 1.
	store := memory.NewStore()
	p := seedProduct(t, store, "Arroz", unit.Kg, "100", "10")
	uc := billing.NewSettleUseCase(store)

	c := cartWith(t, addLine(t, p, "500", unit.Gram))
	in := settleInput()
	in.Discount = d("10")

	inv, err := uc.Settle(context.Background(), c, in)
	require.NoError(t, err)

	assert.Equal(t, "INV0001", inv.InvoiceNumber)
	assert.True(t, inv.Subtotal.Equal(d("50")), "subtotal fue %s", inv.Subtotal)
	assert.True(t, inv.Total.Equal(d("45")), "total fue %s", inv.Total)
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Quantity.Equal(d("0.5")))
	assert.Equal(t, "Gram", inv.Items[0].DisplayUnit)
	assert.True(t, inv.Items[0].DisplayQuantity.Equal(d("500")))
	assert.Equal(t, cart.StatusCommitted, c.Status)

	// stock descontado y contador avanzado exactamente en 1
	got, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(d("9.5")), "stock fue %s", got.Stock)

	shop, err := store.Settings().Get()
	require.NoError(t, err)
	assert.EqualValues(t, 2, shop.InvoiceCounter)

	// la factura quedó en el libro
	persisted, err := store.Invoices().GetByID(inv.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, "INV0001", persisted.InvoiceNumber)
}

func TestSettle_AtomicidadSinCambiosParciales(t *testing.T) {
	// Líneas [A: stock 5, pedido 3] y [B: stock 2, pedido 5]: la liquidación
	// falla con ErrInsufficientStock y NI el stock de A ni el de B ni el
	// contador cambian.
	store := memory.NewStore()
	a := seedProduct(t, store, "Lenteja", unit.Kg, "80", "5")
	b := seedProduct(t, store, "Aceite", unit.Litre, "200", "2")
	uc := billing.NewSettleUseCase(store)

	// El carrito valida contra su snapshot, así que armamos la línea B con
	// un snapshot optimista para forzar el fallo dentro de la transacción.
	bStale := b
	bStale.Stock = d("9")
	c := cart.New()
	require.NoError(t, c.AddItem(a, d("3"), unit.Kg))
	require.NoError(t, c.AddItem(bStale, d("5"), unit.Litre))
	require.NoError(t, c.Checkout())

	_, err := uc.Settle(context.Background(), c, settleInput())
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Aceite", "debe identificar la línea ofensora")

	gotA, _ := store.Products().GetByID(a.ID)
	gotB, _ := store.Products().GetByID(b.ID)
	assert.True(t, gotA.Stock.Equal(d("5")), "stock de A fue %s", gotA.Stock)
	assert.True(t, gotB.Stock.Equal(d("2")), "stock de B fue %s", gotB.Stock)

	shop, _ := store.Settings().Get()
	assert.EqualValues(t, 1, shop.InvoiceCounter, "el contador no debe avanzar en liquidación fallida")

	// el carrito vuelve a Open para corregir
	assert.Equal(t, cart.StatusOpen, c.Status)

	recent, _ := store.Invoices().ListRecent(10)
	assert.Empty(t, recent, "no debe quedar factura persistida")
}

func TestSettle_NumeracionMonotonaSinHuecos(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "Azúcar", unit.Kg, "50", "1000")
	uc := billing.NewSettleUseCase(store)

	for i := 1; i <= 5; i++ {
		c := cartWith(t, addLine(t, p, "1", unit.Kg))
		inv, err := uc.Settle(context.Background(), c, settleInput())
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV%04d", i), inv.InvoiceNumber)
	}
}

func TestSettle_DescuentoInvalidoNoMuta(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "Harina", unit.Kg, "40", "10")
	uc := billing.NewSettleUseCase(store)

	c := cartWith(t, addLine(t, p, "2", unit.Kg))
	in := settleInput()
	in.Discount = d("150") // porcentaje fuera de rango

	_, err := uc.Settle(context.Background(), c, in)
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)

	got, _ := store.Products().GetByID(p.ID)
	assert.True(t, got.Stock.Equal(d("10")))
	shop, _ := store.Settings().Get()
	assert.EqualValues(t, 1, shop.InvoiceCounter)

	// el carrito vuelve a Open y la liquidación corregida procede
	assert.Equal(t, cart.StatusOpen, c.Status)
	require.NoError(t, c.Checkout())
	in.Discount = d("10")
	inv, err := uc.Settle(context.Background(), c, in)
	require.NoError(t, err)
	assert.Equal(t, "INV0001", inv.InvoiceNumber)
}

func TestSettle_DescuentoFijoMayorAlSubtotal(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "Sal", unit.Kg, "10", "10")
	uc := billing.NewSettleUseCase(store)

	c := cartWith(t, addLine(t, p, "2", unit.Kg)) // subtotal 20
	in := settleInput()
	in.DiscountType = entity.DiscountFixed
	in.Discount = d("25")

	_, err := uc.Settle(context.Background(), c, in)
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
	assert.Equal(t, cart.StatusOpen, c.Status)
}

func TestSettle_ModoDePagoInvalido(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "Café", unit.Kg, "300", "10")
	uc := billing.NewSettleUseCase(store)

	c := cartWith(t, addLine(t, p, "1", unit.Kg))
	in := settleInput()
	in.PaymentMode = "Trueque"

	_, err := uc.Settle(context.Background(), c, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, cart.StatusOpen, c.Status)
}

func TestSettle_SnapshotDesacopladoDelCatalogo(t *testing.T) {
	// Editar el producto después de liquidar no altera la factura histórica.
	store := memory.NewStore()
	p := seedProduct(t, store, "Miel", unit.Litre, "120", "10")
	uc := billing.NewSettleUseCase(store)

	c := cartWith(t, addLine(t, p, "1", unit.Litre))
	inv, err := uc.Settle(context.Background(), c, settleInput())
	require.NoError(t, err)

	// edición posterior del catálogo
	edited, _ := store.Products().GetByID(p.ID)
	edited.Name = "Miel Orgánica"
	edited.Price = d("999")
	require.NoError(t, store.Products().Update(edited))

	persisted, err := store.Invoices().GetByID(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Miel", persisted.Items[0].ProductName)
	assert.True(t, persisted.Items[0].UnitPrice.Equal(d("120")))
}
