package changeset

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shopspring/decimal"
)

// Etiquetas legibles por sección para la revisión del gestor. Los campos no
// mapeados se muestran con su ruta cruda.
var labels = map[Section]map[string]string{
	SectionClient: {
		"name":      "Nombre",
		"last_name": "Apellido",
		"id_number": "Documento",
		"email":     "Correo",
		"phone":     "Teléfono",
		"address":   "Dirección",
	},
	SectionPassengers: {
		"adults":   "Adultos",
		"children": "Niños",
		"infants":  "Infantes",
	},
	SectionItinerary: {
		"origin":         "Origen",
		"destination":    "Destino",
		"departure_date": "Fecha de salida",
		"return_date":    "Fecha de regreso",
	},
	SectionPayment: {
		"payment_option":   "Opción de pago",
		"total_amount":     "Monto total",
		"price_per_adult":  "Precio por adulto",
		"price_per_child":  "Precio por niño",
		"price_per_infant": "Precio por infante",
	},
	SectionFlights:            {"flights": "Vuelos"},
	SectionHotels:             {"hotels": "Hoteles"},
	SectionTours:              {"tours": "Tours"},
	SectionMedicalAssistances: {"medical_assistances": "Asistencias médicas"},
	SectionTransfers:          {"transfers": "Traslados"},
}

// Label devuelve la etiqueta legible de un campo, o la ruta cruda si no hay
// mapeo para la sección.
func Label(sec Section, field string) string {
	if m, ok := labels[sec]; ok {
		if l, ok := m[field]; ok {
			return l
		}
	}
	return field
}

var esCO = message.NewPrinter(language.MustParse("es-CO"))

// FormatValue aplica el formato de presentación ligero: campos con "date" en
// el nombre se muestran como fecha local DD/MM/YYYY; campos con "price" o
// "amount" llevan prefijo de moneda. El resto se muestra tal cual.
func FormatValue(field string, v any, currency string) string {
	if v == nil {
		return "—"
	}
	name := strings.ToLower(field)
	if strings.Contains(name, "date") {
		if s, ok := v.(string); ok && len(s) >= 10 {
			if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
				return t.Format("02/01/2006")
			}
		}
	}
	if strings.Contains(name, "price") || strings.Contains(name, "amount") {
		if d, ok := toDecimal(v); ok {
			return currency + " " + esCO.Sprintf("%v", number(d))
		}
	}
	return fmt.Sprintf("%v", v)
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

// number convierte el decimal a un tipo que el printer agrupa con separador de
// miles: entero cuando no hay decimales, float en caso contrario.
func number(d decimal.Decimal) any {
	if d.IsInteger() {
		return d.IntPart()
	}
	f, _ := d.Float64()
	return f
}
