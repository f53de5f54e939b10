// Package payments deriva el estado efectivo de las cuotas de pago.
//
// El estado persistido de una cuota solo conoce "pending" y "paid"; una cuota
// pendiente cuya fecha de vencimiento ya pasó debe mostrarse como "overdue"
// aunque el respaldo todavía diga "pending". Ese estado derivado nunca se
// escribe en silencio: las discrepancias se reportan como correcciones
// pendientes y solo se persisten cuando el usuario guarda explícitamente.
package payments

import (
	"strconv"
	"time"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
)

// EffectiveStatus deriva el estado a mostrar de una cuota comparando la fecha
// de vencimiento contra hoy, ambas normalizadas a medianoche local.
//
//   - persistido "paid"                          -> "paid", sin mirar fechas
//   - vencimiento estrictamente anterior a hoy   -> "overdue"
//   - vencimiento hoy o futuro                   -> estado persistido
//   - fecha ausente o no parseable               -> estado persistido
func EffectiveStatus(ins *entity.Installment, today time.Time) string {
	if ins == nil {
		return ""
	}
	if ins.Status == entity.InstallmentPaid {
		return entity.InstallmentPaid
	}
	due, ok := parseCalendarDate(ins.DueDate)
	if !ok {
		// Fecha indeterminada: no inventar un vencimiento.
		return ins.Status
	}
	if due.Before(midnight(today)) {
		return entity.InstallmentOverdue
	}
	return ins.Status
}

// Correction discrepancia entre el estado persistido y el efectivo, detectada
// al cargar datos. Se conserva para que un guardado explícito posterior
// reconcilie el respaldo.
type Correction struct {
	InstallmentID string `json:"installment_id"`
	From          string `json:"from"`
	To            string `json:"to"`
}

// DetectCorrections recorre las cuotas y devuelve las correcciones pendientes
// (estado efectivo distinto del persistido). Lista vacía = nada que reconciliar.
func DetectCorrections(list []*entity.Installment, today time.Time) []Correction {
	var out []Correction
	for _, ins := range list {
		if ins == nil {
			continue
		}
		eff := EffectiveStatus(ins, today)
		if eff != ins.Status {
			out = append(out, Correction{
				InstallmentID: ins.ID,
				From:          ins.Status,
				To:            eff,
			})
		}
	}
	return out
}

// parseCalendarDate interpreta una fecha ISO tomando solo año/mes/día y
// construyendo medianoche local. Descartar hora y offset evita el clásico
// corrimiento de un día al mezclar parseo UTC con calendario local.
func parseCalendarDate(s string) (time.Time, bool) {
	if len(s) < 10 {
		return time.Time{}, false
	}
	y, err1 := strconv.Atoi(s[0:4])
	m, err2 := strconv.Atoi(s[5:7])
	d, err3 := strconv.Atoi(s[8:10])
	if err1 != nil || err2 != nil || err3 != nil || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
