package payments_test

import (
	"testing"
	"time"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/payments"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// hoy fija "hoy" en una fecha conocida para que los tests no dependan del
// reloj de la máquina.
var hoy = time.Date(2024, 6, 1, 15, 30, 0, 0, time.Local)

func cuota(id, status, dueDate string) *entity.Installment {
	return &entity.Installment{
		ID:      id,
		Status:  status,
		Amount:  decimal.NewFromInt(500_000),
		DueDate: dueDate,
	}
}

// TestEffectiveStatus_PendienteVencida una cuota pendiente con vencimiento
// anterior a hoy se muestra como overdue aunque el respaldo diga pending.
func TestEffectiveStatus_PendienteVencida(t *testing.T) {
	ins := cuota("c1", entity.InstallmentPending, "2024-01-01")
	assert.Equal(t, entity.InstallmentOverdue, payments.EffectiveStatus(ins, hoy))
}

// TestEffectiveStatus_PendienteFutura el vencimiento futuro conserva el
// estado persistido.
func TestEffectiveStatus_PendienteFutura(t *testing.T) {
	ins := cuota("c1", entity.InstallmentPending, "2024-12-31")
	assert.Equal(t, entity.InstallmentPending, payments.EffectiveStatus(ins, hoy))
}

// TestEffectiveStatus_VenceHoy el día del vencimiento la cuota todavía no
// está vencida: la comparación es estrictamente anterior a medianoche de hoy.
func TestEffectiveStatus_VenceHoy(t *testing.T) {
	ins := cuota("c1", entity.InstallmentPending, "2024-06-01")
	assert.Equal(t, entity.InstallmentPending, payments.EffectiveStatus(ins, hoy))
}

// TestEffectiveStatus_PagadaNoMiraFechas una cuota pagada sigue pagada sin
// importar cuán vieja sea su fecha de vencimiento.
func TestEffectiveStatus_PagadaNoMiraFechas(t *testing.T) {
	ins := cuota("c1", entity.InstallmentPaid, "2020-01-01")
	assert.Equal(t, entity.InstallmentPaid, payments.EffectiveStatus(ins, hoy))
}

// TestEffectiveStatus_FechaInvalida una fecha ausente o no parseable no
// inventa un vencimiento: se conserva el estado persistido.
func TestEffectiveStatus_FechaInvalida(t *testing.T) {
	casos := []string{"", "no-es-fecha", "2024/06/01", "2024-13-01", "2024-06"}
	for _, due := range casos {
		ins := cuota("c1", entity.InstallmentPending, due)
		assert.Equal(t, entity.InstallmentPending, payments.EffectiveStatus(ins, hoy),
			"fecha %q no debe producir overdue", due)
	}
}

// TestEffectiveStatus_IgnoraHoraYOffset la fecha se interpreta solo por
// año/mes/día; una marca horaria o un offset adjunto no corren el día.
func TestEffectiveStatus_IgnoraHoraYOffset(t *testing.T) {
	ins := cuota("c1", entity.InstallmentPending, "2024-06-01T23:59:59Z")
	assert.Equal(t, entity.InstallmentPending, payments.EffectiveStatus(ins, hoy))
}

func TestEffectiveStatus_NilDevuelveVacio(t *testing.T) {
	assert.Equal(t, "", payments.EffectiveStatus(nil, hoy))
}

// TestDetectCorrections_SoloDiscrepancias solo las cuotas cuyo estado
// efectivo difiere del persistido generan corrección, con From/To correctos.
func TestDetectCorrections_SoloDiscrepancias(t *testing.T) {
	lista := []*entity.Installment{
		cuota("vencida", entity.InstallmentPending, "2024-01-01"),
		cuota("vigente", entity.InstallmentPending, "2024-12-31"),
		cuota("pagada", entity.InstallmentPaid, "2023-01-01"),
		nil,
	}

	out := payments.DetectCorrections(lista, hoy)

	assert.Len(t, out, 1)
	assert.Equal(t, payments.Correction{
		InstallmentID: "vencida",
		From:          entity.InstallmentPending,
		To:            entity.InstallmentOverdue,
	}, out[0])
}

// TestDetectCorrections_SinDiscrepancias lista vacía cuando no hay nada que
// reconciliar.
func TestDetectCorrections_SinDiscrepancias(t *testing.T) {
	lista := []*entity.Installment{
		cuota("c1", entity.InstallmentPending, "2024-12-31"),
		cuota("c2", entity.InstallmentPaid, "2024-01-01"),
	}
	assert.Empty(t, payments.DetectCorrections(lista, hoy))
}
