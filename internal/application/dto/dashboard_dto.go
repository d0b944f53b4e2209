package dto

import "github.com/shopspring/decimal"

// DashboardResponse métricas del tablero principal.
type DashboardResponse struct {
	TodaySales    decimal.Decimal   `json:"today_sales"`
	TodayInvoices int               `json:"today_invoices"`
	WeekSales     decimal.Decimal   `json:"week_sales"`
	MonthSales    decimal.Decimal   `json:"month_sales"`
	LowStock      []ProductResponse `json:"low_stock"`
	Recent        []InvoiceResponse `json:"recent_invoices"`
}
