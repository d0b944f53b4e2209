package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puntoventa/pos-api/internal/application/analytics"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/unit"
	"github.com/puntoventa/pos-api/internal/infrastructure/memory"
)

func seedInvoice(t *testing.T, store *memory.Store, number string, total string, createdAt time.Time) {
	t.Helper()
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: number,
		Subtotal:      decimal.RequireFromString(total),
		Discount:      decimal.Zero,
		DiscountType:  entity.DiscountPercentage,
		Total:         decimal.RequireFromString(total),
		PaymentMode:   entity.PaymentCash,
		CreatedAt:     createdAt,
	}
	require.NoError(t, store.Invoices().Create(inv))
}

func TestGetSummary(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()

	// una venta de hace dos meses (fuera de todos los rangos) y dos de hoy
	seedInvoice(t, store, "INV0001", "999", now.AddDate(0, -2, 0))
	seedInvoice(t, store, "INV0002", "100", now)
	seedInvoice(t, store, "INV0003", "50.5", now)

	// producto bajo el umbral
	p := entity.Product{
		ID:        uuid.New().String(),
		Name:      "Casi agotado",
		BaseUnit:  unit.Kg,
		Price:     decimal.NewFromInt(10),
		Stock:     decimal.NewFromInt(1),
		MinStock:  decimal.NewFromInt(5),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Products().Create(&p))

	uc := analytics.NewDashboardUseCase(store.Invoices(), store.Products())
	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, got.TodaySales.Equal(decimal.RequireFromString("150.5")), "ventas de hoy fueron %s", got.TodaySales)
	assert.Equal(t, 2, got.TodayInvoices)
	// hoy ⊆ semana ⊆ mes; la factura vieja no entra en ninguno
	assert.True(t, got.WeekSales.GreaterThanOrEqual(got.TodaySales))
	assert.True(t, got.MonthSales.GreaterThanOrEqual(got.WeekSales))
	assert.True(t, got.MonthSales.LessThan(decimal.RequireFromString("999")))

	require.Len(t, got.LowStock, 1)
	assert.Equal(t, "Casi agotado", got.LowStock[0].Name)
	require.Len(t, got.Recent, 3)
	assert.Equal(t, "INV0003", got.Recent[0].InvoiceNumber, "las recientes van de la más nueva a la más vieja")
}

func TestGetSummary_VacioNoFalla(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewDashboardUseCase(store.Invoices(), store.Products())

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, got.TodaySales.IsZero())
	assert.Zero(t, got.TodayInvoices)
	assert.Empty(t, got.LowStock)
	assert.Empty(t, got.Recent)
}

func TestGetSummary_RecientesLimitadas(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	for i := 1; i <= 15; i++ {
		seedInvoice(t, store, fmt.Sprintf("INV%04d", i), "10", now.Add(time.Duration(i)*time.Second))
	}
	uc := analytics.NewDashboardUseCase(store.Invoices(), store.Products())

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Recent, 10)
	assert.Equal(t, "INV0015", got.Recent[0].InvoiceNumber)
}
