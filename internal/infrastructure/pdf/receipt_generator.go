// Package pdf implementa el comprobante PDF de una orden de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del sistema  │  N° Orden + Fecha + Estado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre   VENDEDOR: username                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/order"
)

var _ order.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator genera comprobantes de orden usando Maroto v2.
type ReceiptGenerator struct {
	appName string
}

// NewReceiptGenerator construye el generador; appName encabeza el comprobante.
func NewReceiptGenerator(appName string) *ReceiptGenerator {
	return &ReceiptGenerator{appName: appName}
}

// Receipt genera el PDF del comprobante y devuelve sus bytes.
func (g *ReceiptGenerator) Receipt(o *dto.OrderResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Orden #%d", o.ID), true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, it := range o.Items {
		m.AddRows(itemRow(it))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(o))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(appName string, o *dto.OrderResponse) core.Row {
	fecha := o.CreatedAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de orden de venta", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("ORDEN #%d", o.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+o.Status, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func partiesRow(o *dto.OrderResponse) core.Row {
	vendedor := o.Username
	if vendedor == "" {
		vendedor = "—"
	}
	return row.New(10).Add(
		col.New(7).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(o.CustomerName, props.Text{Size: 9, Top: 6}),
		),
		col.New(5).Add(
			text.New("VENDEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right,
			}),
			text.New(vendedor, props.Text{Size: 9, Top: 6, Align: align.Right}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	hr := h
	hr.Align = align.Right
	return row.New(7).Add(
		col.New(1).Add(text.New("Cant", h)),
		col.New(6).Add(text.New("Producto", h)),
		col.New(2).Add(text.New("P. Unit", hr)),
		col.New(3).Add(text.New("Subtotal", hr)),
	)
}

func itemRow(it dto.OrderItemResponse) core.Row {
	name := it.ProductName
	if name == "" {
		name = fmt.Sprintf("Producto %d", it.ProductID)
	}
	cell := props.Text{Size: 8, Top: 1}
	cellR := cell
	cellR.Align = align.Right
	return row.New(6).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), cell)),
		col.New(6).Add(text.New(name, cell)),
		col.New(2).Add(text.New(it.UnitPrice.StringFixed(2), cellR)),
		col.New(3).Add(text.New(it.Subtotal.StringFixed(2), cellR)),
	)
}

func totalRow(o *dto.OrderResponse) core.Row {
	return row.New(10).Add(
		col.New(9).Add(
			text.New("TOTAL", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
		col.New(3).Add(
			text.New("$ "+o.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
		),
	)
}
