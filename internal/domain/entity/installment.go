package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados persistidos de una cuota. El estado efectivo (lo que se muestra)
// es un valor derivado: ver internal/domain/payments.
const (
	InstallmentPending = "pending"
	InstallmentPaid    = "paid"
	InstallmentOverdue = "overdue"
)

// Installment cuota de pago de una reserva. DueDate es fecha calendario
// (YYYY-MM-DD) tal como lo entrega el respaldo; se compara por día, nunca por
// instante, para evitar corrimientos UTC/local.
type Installment struct {
	ID            string
	ReservationID string
	Amount        decimal.Decimal
	DueDate       string // YYYY-MM-DD; puede venir vacío en datos históricos
	Status        string // pending | paid | overdue (persistido)
	ReceiptPath   *string
	PaymentDate   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
