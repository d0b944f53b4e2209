// Package analytics contiene el caso de uso del tablero: ventas del día, la
// semana y el mes, productos con stock bajo y últimas facturas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/puntoventa/pos-api/internal/application/billing"
	"github.com/puntoventa/pos-api/internal/application/catalog"
	"github.com/puntoventa/pos-api/internal/application/dto"
	"github.com/puntoventa/pos-api/internal/domain/repository"
)

const (
	dashboardRecentInvoices = 10
	// el tablero suma sobre el libro en memoria; con miles de facturas al
	// mes este tope mantiene la consulta acotada
	dashboardRangeLimit = 10000
)

// DashboardUseCase genera el resumen del tablero principal.
type DashboardUseCase struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(invoiceRepo repository.InvoiceRepository, productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{invoiceRepo: invoiceRepo, productRepo: productRepo}
}

// GetSummary construye el DashboardResponse.
//
// Tres consultas en paralelo sobre el libro de facturas (mes ⊇ semana ⊇ hoy,
// así que una sola pasada por el mes alcanzaría, pero las consultas separadas
// mantienen el código igual para memoria y Postgres) más stock bajo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -int(todayStart.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := todayStart.Add(24 * time.Hour)

	type rangeResult struct {
		total decimal.Decimal
		count int
		err   error
	}

	todayCh := make(chan rangeResult, 1)
	weekCh := make(chan rangeResult, 1)
	monthCh := make(chan rangeResult, 1)

	sum := func(from, to time.Time, out chan<- rangeResult) {
		list, err := uc.invoiceRepo.ListByDateRange(from, to, dashboardRangeLimit, 0)
		if err != nil {
			out <- rangeResult{err: err}
			return
		}
		total := decimal.Zero
		for _, inv := range list {
			total = total.Add(inv.Total)
		}
		out <- rangeResult{total: total, count: len(list)}
	}

	go sum(todayStart, end, todayCh)
	go sum(weekStart, end, weekCh)
	go sum(monthStart, end, monthCh)

	today := <-todayCh
	week := <-weekCh
	month := <-monthCh
	for _, r := range []rangeResult{today, week, month} {
		if r.err != nil {
			return nil, fmt.Errorf("ventas del rango: %w", r.err)
		}
	}

	lowStock, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, fmt.Errorf("stock bajo: %w", err)
	}
	recent, err := uc.invoiceRepo.ListRecent(dashboardRecentInvoices)
	if err != nil {
		return nil, fmt.Errorf("facturas recientes: %w", err)
	}

	resp := &dto.DashboardResponse{
		TodaySales:    today.total,
		TodayInvoices: today.count,
		WeekSales:     week.total,
		MonthSales:    month.total,
		LowStock:      make([]dto.ProductResponse, 0, len(lowStock)),
		Recent:        make([]dto.InvoiceResponse, 0, len(recent)),
	}
	for _, p := range lowStock {
		resp.LowStock = append(resp.LowStock, *catalog.ToProductResponse(p))
	}
	for _, inv := range recent {
		resp.Recent = append(resp.Recent, *billing.ToInvoiceResponse(inv))
	}
	return resp, nil
}
