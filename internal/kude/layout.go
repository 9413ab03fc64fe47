// Package kude composes the printable KUDE representation of a SIFEN
// invoice: an ordered list of document rows handed to the PDF backend.
//
// The page is a single A4 flow: an advisory banner (test environment
// only), a header band with logo, issuer identity and timbrado data, an
// operation/recipient band, the items table with its totals and IVA
// liquidation rows, and a footer with the verification QR, the CDC and
// the legal notices.
package kude

import (
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/maxdominios/go-kude/internal/model"
)

// consultaURL is the fixed SET verification portal printed in the footer.
const consultaURL = "https://ekuatia.set.gov.py/consultas"

const (
	legendGrafica = "ESTE DOCUMENTO ES UNA REPRESENTACIÓN GRÁFICA DE UN DOCUMENTO ELECTRÓNICO (XML)"
	legendPlazo   = "Si su documento electrónico presenta algún error puede solicitar la modificación " +
		"dentro de las 72 horas siguientes de la emisión de este comprobante."
	legendConsulta = "Consulte la validez de esta Factura Electrónica con el número de CDC impreso abajo en:"
)

var (
	colorAdvisory = &props.Color{Red: 204, Green: 0, Blue: 0}
	colorLink     = &props.Color{Red: 0, Green: 0, Blue: 204}
	colorHeaderBg = &props.Color{Red: 238, Green: 238, Blue: 238}
	colorBlack    = &props.Color{Red: 0, Green: 0, Blue: 0}
)

// boxed is the cell style of every outer block border.
var boxed = &props.Cell{BorderType: border.Full, BorderColor: colorBlack}

// ComposeRows builds the complete document description for one invoice.
// It is a pure function: same view-model and images, same rows.
func ComposeRows(inv *model.Invoice, qrPNG []byte, logo *Image) []core.Row {
	var rows []core.Row

	if inv.MensajeAmbiente != "" {
		rows = append(rows, advisoryRow(inv.MensajeAmbiente))
	}
	rows = append(rows, headerRow(inv, logo))
	rows = append(rows, spacerRow())
	rows = append(rows, operacionReceptorRow(inv))
	rows = append(rows, spacerRow())
	rows = append(rows, itemsRows(inv)...)
	rows = append(rows, spacerRow())
	rows = append(rows, footerRow(inv, qrPNG))

	return rows
}

// advisoryRow: centered warning, only for documents generated against
// the test environment.
func advisoryRow(msg string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(msg, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center,
			Color: colorAdvisory, Top: 2,
		})),
	)
}

// headerRow: logo | emisor identity | timbrado, one bordered band.
func headerRow(inv *model.Invoice, logo *Image) core.Row {
	logoCol := col.New(3)
	if logo != nil {
		logoCol.Add(image.NewFromBytes(logo.Bytes, logo.Ext, props.Rect{
			Percent: 80, Center: true,
		}))
	}

	emisor := newStack(2, 2)
	emisor.add(inv.Emisor.Nombre, props.Text{Style: fontstyle.Bold, Size: 12}, 7)
	emisor.add(inv.Emisor.Direccion, props.Text{Size: 9}, 5)
	if inv.Emisor.Ciudad != "" {
		pais := inv.Emisor.Pais
		if pais == "" {
			pais = "Paraguay"
		}
		emisor.add(inv.Emisor.Ciudad+" - "+pais, props.Text{Size: 9}, 5)
	}
	if inv.Emisor.Telefono != "" {
		emisor.add("Tel: "+inv.Emisor.Telefono, props.Text{Size: 9}, 5)
	}
	if inv.Emisor.Email != "" {
		emisor.add("Email: "+inv.Emisor.Email, props.Text{Size: 9}, 5)
	}
	// Small print, may span several wrapped lines.
	emisor.add(inv.Emisor.Actividades, props.Text{Size: 5}, 4)

	timbrado := newStack(2, 2)
	timbrado.add("RUC: "+inv.Emisor.RUC, props.Text{Size: 9}, 5)
	timbrado.add("Timbrado N°: "+inv.Timbrado.NumeroTimbrado, props.Text{Size: 9}, 5)
	timbrado.add("Fecha de Vigencia: "+inv.Timbrado.FechaInicioVigencia, props.Text{Size: 9}, 7)
	timbrado.add(strings.ToUpper(inv.Timbrado.Tipo), props.Text{Style: fontstyle.Bold, Size: 10}, 6)
	timbrado.add("N°: "+inv.Timbrado.NumeroFormateado, props.Text{Style: fontstyle.Bold, Size: 10}, 6)

	height := maxHeight(emisor.height(), timbrado.height(), 30)
	return row.New(height).WithStyle(boxed).Add(
		logoCol,
		col.New(5).Add(emisor.components()...),
		col.New(4).Add(timbrado.components()...),
	)
}

// operacionReceptorRow: operation metadata on the left, recipient on the
// right. Recipient lines appear only when their source value is present.
func operacionReceptorRow(inv *model.Invoice) core.Row {
	ope := newStack(2, 2)
	ope.add("Fecha y hora de emisión: "+inv.Operacion.FechaEmision, props.Text{Size: 9}, 6)
	ope.add("Condición Venta: "+inv.Operacion.CondicionOperacion, props.Text{Size: 9}, 6)
	ope.add("Moneda: "+inv.Operacion.Moneda, props.Text{Size: 9}, 6)
	ope.add("Tipo de Operación: "+inv.Operacion.TipoTransaccion, props.Text{Size: 9}, 6)

	rec := newStack(2, 2)
	if inv.Receptor.RUC != "" {
		rec.add("RUC: "+inv.Receptor.RUC, props.Text{Size: 9}, 6)
	}
	if inv.Receptor.RazonSocial != "" {
		rec.add("Razón Social: "+inv.Receptor.RazonSocial, props.Text{Size: 9}, 6)
	}
	if inv.Receptor.Telefono != "" {
		rec.add("Teléfono: "+inv.Receptor.Telefono, props.Text{Size: 9}, 6)
	}
	if dir := joinNonEmpty(", ", inv.Receptor.Direccion, inv.Receptor.Ciudad, inv.Receptor.Pais); dir != "" {
		rec.add("Dirección: "+dir, props.Text{Size: 9}, 6)
	}

	height := maxHeight(ope.height(), rec.height(), 28)
	return row.New(height).WithStyle(boxed).Add(
		col.New(6).Add(ope.components()...),
		col.New(6).Add(rec.components()...),
	)
}

// Grid shares of the items table: Descripción 6, Precio Unitario 2,
// Cantidad 1, 5% 1, 10% 2.
func itemsRows(inv *model.Invoice) []core.Row {
	rows := []core.Row{itemsHeaderRow()}

	for _, it := range inv.Items {
		rows = append(rows, row.New(7).WithStyle(boxed).Add(
			itemCell(6, it.Descripcion, align.Left),
			itemCell(2, it.PrecioUnitario, align.Right),
			itemCell(1, it.Cantidad, align.Center),
			itemCell(1, it.IVA5, align.Right),
			itemCell(2, it.IVA10, align.Right),
		))
	}

	t := inv.Totales
	rows = append(rows,
		summaryRow("SUBTOTAL", t.Subtotal5, t.Subtotal10),
		summaryRow("TOTAL DE LA OPERACIÓN", "", t.TotalGeneral),
		row.New(7).WithStyle(boxed).Add(
			headerCell(6, "LIQUIDACIÓN IVA", align.Right),
			itemCell(2, "(5%) "+t.IVA5, align.Right),
			itemCell(1, "(10%) "+t.IVA10, align.Right),
			boldCell(1, "Total IVA:", align.Right),
			boldCell(2, t.TotalIVA, align.Right),
		),
	)
	return rows
}

func itemsHeaderRow() core.Row {
	return row.New(7).WithStyle(boxed).Add(
		headerCell(6, "Descripción", align.Center),
		headerCell(2, "Precio Unitario", align.Center),
		headerCell(1, "Cantidad", align.Center),
		headerCell(1, "5%", align.Center),
		headerCell(2, "10%", align.Center),
	)
}

// summaryRow: label spanning the description/price/quantity columns, then
// the two tax-bucket cells.
func summaryRow(label, cell5, cell10 string) core.Row {
	return row.New(7).WithStyle(boxed).Add(
		headerCell(9, label, align.Right),
		boldCell(1, cell5, align.Right),
		boldCell(2, cell10, align.Right),
	)
}

// footerRow: QR bitmap on the left (or an empty cell when generation
// failed), verification instructions, CDC and legal notices on the right.
func footerRow(inv *model.Invoice, qrPNG []byte) core.Row {
	qrCol := col.New(3)
	if len(qrPNG) > 0 {
		qrCol.Add(image.NewFromBytes(qrPNG, extension.Png, props.Rect{
			Percent: 85, Center: true,
		}))
	}

	info := newStack(3, 3)
	info.add(legendConsulta, props.Text{Size: 9}, 5)
	info.add(consultaURL, props.Text{Size: 9, Color: colorLink}, 7)
	info.add("CDC: "+inv.CDC, props.Text{Style: fontstyle.Bold, Size: 10}, 7)
	info.add(legendGrafica, props.Text{Style: fontstyle.Bold, Size: 8}, 7)
	info.add(legendPlazo, props.Text{Size: 7}, 5)

	height := maxHeight(info.height(), 38, 38)
	return row.New(height).WithStyle(boxed).Add(
		qrCol,
		col.New(9).Add(info.components()...),
	)
}

func headerCell(size int, value string, a align.Type) core.Col {
	return col.New(size).WithStyle(&props.Cell{
		BackgroundColor: colorHeaderBg,
		BorderType:      border.Full,
		BorderColor:     colorBlack,
	}).Add(text.New(value, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
	}))
}

func itemCell(size int, value string, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
	}))
}

func boldCell(size int, value string, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
	}))
}

// stack lays text lines top to bottom inside one column, skipping empty
// values the way the source document omits optional fields.
type stack struct {
	comps []core.Component
	top   float64
	pad   float64
}

func newStack(top, pad float64) *stack {
	return &stack{top: top, pad: pad}
}

func (s *stack) add(value string, p props.Text, advance float64) {
	if value == "" {
		return
	}
	p.Top = s.top
	p.Left = 2
	p.Right = 2
	s.comps = append(s.comps, text.New(value, p))
	s.top += advance
}

func (s *stack) components() []core.Component {
	return s.comps
}

func (s *stack) height() float64 {
	return s.top + s.pad
}

func maxHeight(values ...float64) float64 {
	out := 0.0
	for _, v := range values {
		if v > out {
			out = v
		}
	}
	return out
}

// spacerRow separates the main blocks.
func spacerRow() core.Row {
	return row.New(2)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
