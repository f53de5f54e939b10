package render_test

import (
	"testing"

	"github.com/andresjj98/appagencia-api/internal/infrastructure/render"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func datos() map[string]any {
	return map[string]any{
		"client": map[string]any{
			"name":  "Laura Pérez",
			"email": "laura@example.com",
		},
		"issue_date": "2024-05-10T14:22:00Z",
		"total":      decimal.NewFromInt(3_900_000),
		"nights":     7,
	}
}

// TestRender_RutasPunteadas los placeholders navegan el mapa con rutas
// punteadas.
func TestRender_RutasPunteadas(t *testing.T) {
	r := render.NewRenderer("COP")
	out := r.Render("Estimado {{client.name}} ({{client.email}})", datos())
	assert.Equal(t, "Estimado Laura Pérez (laura@example.com)", out)
}

// TestRender_FiltroFecha el filtro fecha reescribe ISO a DD/MM/YYYY.
func TestRender_FiltroFecha(t *testing.T) {
	r := render.NewRenderer("COP")
	out := r.Render("Emitido el {{issue_date|fecha}}", datos())
	assert.Equal(t, "Emitido el 10/05/2024", out)
}

// TestRender_FiltroMoneda el filtro moneda antepone la divisa y agrupa miles
// con la convención es-CO.
func TestRender_FiltroMoneda(t *testing.T) {
	r := render.NewRenderer("COP")
	out := r.Render("Total: {{total|moneda}}", datos())
	assert.Equal(t, "Total: COP 3.900.000", out)
}

// TestRender_FiltroNumero igual agrupación sin divisa.
func TestRender_FiltroNumero(t *testing.T) {
	r := render.NewRenderer("COP")
	out := r.Render("{{total|numero}} pesos", datos())
	assert.Equal(t, "3.900.000 pesos", out)
}

// TestRender_PlaceholderSinDato un placeholder irresoluble se reemplaza por
// cadena vacía; el marcador crudo nunca llega al documento.
func TestRender_PlaceholderSinDato(t *testing.T) {
	r := render.NewRenderer("COP")
	out := r.Render("Hola {{client.apellido}}, su reserva {{codigo}} está lista", datos())
	assert.Equal(t, "Hola , su reserva  está lista", out)
}

// TestRender_SinPlaceholders la plantilla sin marcadores pasa intacta, igual
// que una con llaves sin cerrar.
func TestRender_SinPlaceholders(t *testing.T) {
	r := render.NewRenderer("COP")
	assert.Equal(t, "texto plano", r.Render("texto plano", datos()))
	assert.Equal(t, "abierto {{client.name", r.Render("abierto {{client.name", datos()))
}

// TestRender_EspaciosEnExpresion se toleran espacios dentro del marcador y
// alrededor del filtro.
func TestRender_EspaciosEnExpresion(t *testing.T) {
	r := render.NewRenderer("USD")
	out := r.Render("{{ total | moneda }}", datos())
	assert.Equal(t, "USD 3.900.000", out)
}
