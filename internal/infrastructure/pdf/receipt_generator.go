// Package pdf implementa la generación del recibo de venta con Maroto v2.
//
// Layout del recibo:
//
//	┌──────────────────────────────────────┐
//	│  HEADER: Tienda + dirección + GST    │
//	│  N° Factura + Fecha + Cajero         │
//	│  ──────────────────────────────────  │
//	│  TABLA: Descripción | Cant | Importe │
//	│  ──────────────────────────────────  │
//	│  Subtotal / Descuento / TOTAL        │
//	│  Modo de pago + leyenda              │
//	└──────────────────────────────────────┘
//
// El tamaño de página sale de la configuración de la tienda: Thermal (80mm)
// o A4.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/puntoventa/pos-api/internal/application/billing"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/unit"
)

var (
	colorInk  = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceiptPDF genera el recibo y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	invoice *entity.Invoice,
	settings *entity.ShopSettings,
) ([]byte, error) {
	builder := config.NewBuilder().
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		WithTitle("Recibo "+invoice.InvoiceNumber, true)

	if settings.PaperSize == entity.PaperA4 {
		builder = builder.
			WithPageSize(pagesize.A4).
			WithLeftMargin(15).WithRightMargin(15).
			WithTopMargin(15).WithBottomMargin(15).
			WithDefaultFont(&props.Font{Family: "helvetica", Size: 9})
	} else {
		// rollo térmico de 80mm; el alto crece con el contenido
		builder = builder.WithDimensions(80, 200)
	}

	m := maroto.New(builder.Build())

	m.AddRows(headerRows(invoice, settings)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorInk, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	for _, it := range invoice.Items {
		m.AddRows(itemRow(it, settings.Currency))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorInk, Thickness: 0.3}))
	m.AddRows(totalsRows(invoice, settings.Currency)...)
	m.AddRows(footerRows(invoice, settings)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRows: nombre de la tienda, contacto y datos de la venta.
func headerRows(invoice *entity.Invoice, settings *entity.ShopSettings) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(settings.ShopName, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorInk, Top: 1,
			}),
		)),
	}
	if settings.Address != "" || settings.Phone != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(joinNonEmpty(settings.Address, settings.Phone), props.Text{
				Size: 7, Align: align.Center, Color: colorGray,
			}),
		)))
	}
	if settings.GSTNumber != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("GST: "+settings.GSTNumber, props.Text{
				Size: 7, Align: align.Center, Color: colorGray,
			}),
		)))
	}
	rows = append(rows, row.New(9).Add(
		col.New(6).Add(
			text.New(invoice.InvoiceNumber, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New("Cajero: "+nonEmpty(invoice.CashierName, "—"), props.Text{Size: 7, Top: 6, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(invoice.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 1}),
			text.New(invoice.PaymentMode, props.Text{Size: 7, Align: align.Right, Top: 6, Color: colorGray}),
		),
	))
	if invoice.CustomerName != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("Cliente: "+joinNonEmpty(invoice.CustomerName, invoice.CustomerPhone), props.Text{
				Size: 7, Color: colorGray,
			}),
		)))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Top: 1,
		}))
	}
	return row.New(5).Add(
		h("Producto", 5, align.Left),
		h("Cant.", 3, align.Right),
		h("Importe", 4, align.Right),
	)
}

// itemRow: la cantidad se muestra en la unidad de presentación elegida en el
// carrito, no en la unidad base.
func itemRow(it entity.InvoiceItem, currency string) core.Row {
	return row.New(7).Add(
		col.New(5).Add(
			text.New(it.ProductName, props.Text{Size: 7, Top: 0.5}),
			text.New(currency+it.UnitPrice.Round(2).String()+"/"+it.BaseUnit.String(), props.Text{
				Size: 6, Top: 4, Color: colorGray,
			}),
		),
		col.New(3).Add(text.New(
			unit.Format(it.DisplayQuantity, it.DisplayUnit),
			props.Text{Size: 7, Align: align.Right, Top: 0.5},
		)),
		col.New(4).Add(text.New(
			currency+it.Subtotal.Round(2).String(),
			props.Text{Size: 7, Align: align.Right, Top: 0.5},
		)),
	)
}

// totalsRows: subtotal, descuento (solo si aplica) y total.
func totalsRows(invoice *entity.Invoice, currency string) []core.Row {
	amountRow := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 8.0
		if bold {
			style = fontstyle.Bold
			size = 10
		}
		return row.New(5).Add(
			col.New(7).Add(text.New(label, props.Text{Style: style, Size: size, Align: align.Right, Right: 2})),
			col.New(5).Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right})),
		)
	}

	rows := []core.Row{
		amountRow("Subtotal:", currency+invoice.Subtotal.Round(2).String(), false),
	}
	if invoice.Discount.GreaterThan(decimal.Zero) {
		label := "Descuento:"
		if invoice.DiscountType == entity.DiscountPercentage {
			label = fmt.Sprintf("Descuento (%s%%):", invoice.Discount.Round(2).String())
		}
		rows = append(rows, amountRow(label, "-"+currency+invoice.Subtotal.Sub(invoice.Total).Round(2).String(), false))
	}
	rows = append(rows, amountRow("TOTAL:", currency+invoice.Total.Round(2).String(), true))
	return rows
}

func footerRows(invoice *entity.Invoice, settings *entity.ShopSettings) []core.Row {
	rows := []core.Row{row.New(3)}
	if settings.UPIID != "" && invoice.PaymentMode == entity.PaymentUPI {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("UPI: "+settings.UPIID, props.Text{Size: 7, Align: align.Center, Color: colorGray}),
		)))
	}
	if invoice.Notes != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(invoice.Notes, props.Text{Size: 7, Align: align.Center, Color: colorGray}),
		)))
	}
	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New("¡Gracias por su compra!", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 2,
		}),
	)))
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " | " + b
	}
}
