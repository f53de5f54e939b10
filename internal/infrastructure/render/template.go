// Package render sustituye los placeholders de las plantillas configurables
// (contrato, mensajes de voucher). La sintaxis es {{ruta.punteada}} con un
// filtro opcional: {{client.name}}, {{total|moneda}}, {{issue_date|fecha}}.
// Un placeholder sin dato se reemplaza por cadena vacía, nunca queda el
// marcador crudo en el documento.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/andresjj98/appagencia-api/internal/application/document"
)

var esCO = message.NewPrinter(language.MustParse("es-CO"))

var _ document.TemplateRenderer = (*Renderer)(nil)

// Renderer sustituidor de placeholders. Currency es el prefijo del filtro
// moneda (COP, USD...).
type Renderer struct {
	Currency string
}

// NewRenderer construye el renderer.
func NewRenderer(currency string) *Renderer {
	return &Renderer{Currency: currency}
}

// Render recorre la plantilla y reemplaza cada {{...}} por el valor resuelto.
func (r *Renderer) Render(tpl string, data map[string]any) string {
	var sb strings.Builder
	for {
		start := strings.Index(tpl, "{{")
		if start < 0 {
			sb.WriteString(tpl)
			break
		}
		end := strings.Index(tpl[start:], "}}")
		if end < 0 {
			sb.WriteString(tpl)
			break
		}
		end += start
		sb.WriteString(tpl[:start])

		expr := strings.TrimSpace(tpl[start+2 : end])
		path := expr
		filter := ""
		if i := strings.Index(expr, "|"); i >= 0 {
			path = strings.TrimSpace(expr[:i])
			filter = strings.TrimSpace(expr[i+1:])
		}
		sb.WriteString(r.resolve(data, path, filter))
		tpl = tpl[end+2:]
	}
	return sb.String()
}

func (r *Renderer) resolve(data map[string]any, path, filter string) string {
	v := lookup(data, path)
	if v == nil {
		return ""
	}
	switch filter {
	case "fecha":
		return formatDate(v)
	case "moneda":
		if d, ok := toDecimal(v); ok {
			return r.Currency + " " + esCO.Sprintf("%v", number(d))
		}
	case "numero":
		if d, ok := toDecimal(v); ok {
			return esCO.Sprintf("%v", number(d))
		}
	}
	return fmt.Sprintf("%v", v)
}

// lookup navega el mapa siguiendo la ruta punteada.
func lookup(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var cur any = data
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[p]
		if !ok {
			return nil
		}
	}
	return cur
}

func formatDate(v any) string {
	s, ok := v.(string)
	if !ok || len(s) < 10 {
		return fmt.Sprintf("%v", v)
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case string:
		d, err := decimal.NewFromString(n)
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func number(d decimal.Decimal) any {
	if d.IsInteger() {
		return d.IntPart()
	}
	f, _ := d.Float64()
	return f
}
