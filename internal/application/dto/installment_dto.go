package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresjj98/appagencia-api/internal/domain/payments"
)

// InstallmentRequest cuota dentro del plan de pagos al crear la reserva.
type InstallmentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// UpdateInstallmentStatusRequest body para PATCH /api/installments/:id/status.
// ReceiptPath es obligatorio para marcar la cuota como pagada.
type UpdateInstallmentStatusRequest struct {
	Status      string  `json:"status" validate:"required,oneof=pending paid overdue"`
	ReceiptPath *string `json:"receipt_path,omitempty"`
}

// InstallmentResponse cuota en respuestas. Status es el estado EFECTIVO
// (calculado contra la fecha actual); PersistedStatus es lo que está en BD.
type InstallmentResponse struct {
	ID              string          `json:"id"`
	ReservationID   string          `json:"reservation_id"`
	Amount          decimal.Decimal `json:"amount"`
	DueDate         string          `json:"due_date"`
	Status          string          `json:"status"`
	PersistedStatus string          `json:"persisted_status"`
	ReceiptPath     *string         `json:"receipt_path,omitempty"`
	PaymentDate     *time.Time      `json:"payment_date,omitempty"`
}

// InstallmentListResponse cuotas de una reserva más las correcciones
// detectadas (cuotas cuyo estado efectivo difiere del persistido).
type InstallmentListResponse struct {
	Installments []InstallmentResponse `json:"installments"`
	Corrections  []payments.Correction `json:"corrections,omitempty"`
}

// ReconcileRequest body para POST /api/installments/reconcile: persiste en
// lote las correcciones de estado calculadas por el cliente o por un listado.
type ReconcileRequest struct {
	Corrections []payments.Correction `json:"corrections" validate:"required,min=1,dive"`
}

// ReconcileResult resultado por cuota de una reconciliación en lote.
type ReconcileResult struct {
	InstallmentID string `json:"installment_id"`
	OK            bool   `json:"ok"`
	Error         string `json:"error,omitempty"`
}

// ReconcileResponse respuesta agregada de la reconciliación.
type ReconcileResponse struct {
	Results []ReconcileResult `json:"results"`
	Failed  int               `json:"failed"`
}
