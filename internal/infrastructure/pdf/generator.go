// Package pdf genera los documentos impresos de la agencia con Maroto v2:
// factura de venta, voucher de viaje y contrato de servicios.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Agencia + NIT  │  N° Factura + Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + documento + contacto                     │
//	│  ITINERARIO: tramos, noches/días, ciclo de vuelos           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Cant | P.Unit | Importe                  │
//	│  TOTALES / PLAN DE CUOTAS                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda configurada en los ajustes                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

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

	"github.com/andresjj98/appagencia-api/internal/application/document"
	"github.com/andresjj98/appagencia-api/internal/domain/docs"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ document.PDFGenerator = (*MarotoGenerator)(nil)

// MarotoGenerator implementa document.PDFGenerator usando Maroto v2.
type MarotoGenerator struct {
	footer string // leyenda configurada para el pie de la factura
}

// NewMarotoGenerator construye el generador. footer puede ser vacío.
func NewMarotoGenerator(footer string) *MarotoGenerator {
	return &MarotoGenerator{footer: footer}
}

func newDoc(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

// Invoice genera la factura de venta de la reserva.
func (g *MarotoGenerator) Invoice(p *docs.InvoicePayload) ([]byte, error) {
	m := newDoc("Factura de venta", p.Agency.Name)

	m.AddRows(headerRow(p, "FACTURA DE VENTA", p.InvoiceNumber))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(p.Client))
	m.AddRows(itineraryRows(p)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(paymentHeaderRow())
	m.AddRows(paymentRows(p.PaymentLines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(p))

	if len(p.Installments) > 0 {
		m.AddRows(line.NewRow(2))
		m.AddRows(installmentRows(p)...)
	}

	if g.footer != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(g.footer, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// Voucher genera el voucher de viaje: itinerario y servicios contratados, sin
// valores monetarios.
func (g *MarotoGenerator) Voucher(p *docs.InvoicePayload, message string) ([]byte, error) {
	m := newDoc("Voucher de viaje", p.Agency.Name)

	m.AddRows(headerRow(p, "VOUCHER DE VIAJE", p.InvoiceNumber))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(p.Client))
	m.AddRows(itineraryRows(p)...)

	for _, r := range serviceRows(p) {
		m.AddRows(r)
	}

	if message != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New(message, props.Text{
				Size: 8, Align: align.Center, Color: colorPrimary, Top: 2,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar voucher: %w", err)
	}
	return doc.GetBytes(), nil
}

// Contract genera el contrato a partir del texto ya renderizado de la
// plantilla configurada.
func (g *MarotoGenerator) Contract(title, body string) ([]byte, error) {
	m := newDoc(title, "")

	m.AddRows(row.New(12).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Align: align.Center,
			Color: colorPrimary, Top: 2,
		}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(line.NewRow(2))

	for _, para := range strings.Split(body, "\n") {
		if strings.TrimSpace(para) == "" {
			m.AddRows(line.NewRow(3))
			continue
		}
		m.AddRows(text.NewRow(6, para, props.Text{Size: 9, Top: 1}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar contrato: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: agencia + NIT (izq) y tipo de documento + número + fecha (der).
func headerRow(p *docs.InvoicePayload, docTitle, number string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(p.Agency.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(p.Agency.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(docTitle, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(number, "SIN FACTURA"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+nonEmpty(p.IssueDate, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del titular de la reserva.
func clientRow(c docs.ClientInfo) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DEL VIAJERO TITULAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Documento: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(c.IDNumber, "—"),
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// itineraryRows: tramos con noches/días y el ciclo de vuelos si existe.
func itineraryRows(p *docs.InvoicePayload) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("ITINERARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, seg := range p.Segments {
		detail := fmt.Sprintf("%s - %s", seg.Origin, seg.Destination)
		dates := ""
		if seg.DepartureDate != "" {
			dates = fmt.Sprintf("   %s a %s  (%d noches / %d días)",
				seg.DepartureDate, nonEmpty(seg.ReturnDate, "—"), seg.Nights, seg.Days)
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(detail+dates, props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}
	if p.FlightCycle != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Vuelos: "+p.FlightCycle, props.Text{
				Size: 8, Top: 1, Left: 2, Color: colorGray,
			}),
		)))
	}
	return rows
}

// serviceRows: servicios contratados para el voucher (hoteles, tours,
// asistencias, traslados).
func serviceRows(p *docs.InvoicePayload) []core.Row {
	var rows []core.Row
	section := func(label string) {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)))
	}
	item := func(s string) {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(s, props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}
	if len(p.Hotels) > 0 {
		section("HOSPEDAJE")
		for _, h := range p.Hotels {
			item(fmt.Sprintf("%s   |   Habitación: %s   |   Plan: %s",
				h.Name, nonEmpty(h.RoomCategory, "—"), nonEmpty(h.MealPlan, "—")))
		}
	}
	if len(p.Tours) > 0 {
		section("TOURS Y ACTIVIDADES")
		for _, t := range p.Tours {
			item(fmt.Sprintf("%s   %s", t.Name, t.Date))
		}
	}
	if len(p.Assistances) > 0 {
		section("ASISTENCIA MÉDICA")
		for _, a := range p.Assistances {
			item(fmt.Sprintf("Plan %s   %s a %s", a.PlanType, a.StartDate, a.EndDate))
		}
	}
	if len(p.Transfers) > 0 {
		section("TRASLADOS")
		for _, t := range p.Transfers {
			label := t.SegmentLabel
			if label == "" {
				label = fmt.Sprintf("%s - %s", t.Origin, t.Destination)
			}
			item(fmt.Sprintf("%s   (%s)", label, nonEmpty(t.TransferType, "—")))
		}
	}
	return rows
}

// paymentHeaderRow: cabecera de la tabla de conceptos de cobro.
func paymentHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 5, align.Left),
		h("Cant.", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// paymentRows: una fila por categoría de pasajero con cobro.
func paymentRows(lines []docs.PaymentLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(l.Concept, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Count), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New("$"+formatMoney(l.UnitPrice.StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(3).Add(text.New("$"+formatMoney(l.Amount.StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(p *docs.InvoicePayload) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 7,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 7,
		})
	}
	return row.New(20).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			grandLabel("TOTAL A PAGAR:"),
		),
		col.New(3).Add(
			text.New("$"+formatMoney(p.Subtotal.StringFixed(0)), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			grandValue("$"+formatMoney(p.Total.StringFixed(0))),
		),
		col.New(3),
	)
}

// installmentRows: plan de cuotas con su estado.
func installmentRows(p *docs.InvoicePayload) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("PLAN DE PAGOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for i, ins := range p.Installments {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Cuota %d:   $%s   vence %s   (%s)",
				i+1,
				formatMoney(ins.Amount.StringFixed(0)),
				nonEmpty(ins.DueDate, "—"),
				nonEmpty(statusLabel(ins.Status), "pendiente"),
			), props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}
	return rows
}

func statusLabel(s string) string {
	switch s {
	case "paid":
		return "pagada"
	case "overdue":
		return "vencida"
	case "pending":
		return "pendiente"
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
