package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest body para PUT /api/settings. El consecutivo de
// facturación no es editable por esta vía: solo avanza al confirmar reservas.
type UpdateSettingsRequest struct {
	AgencyName       *string          `json:"agency_name,omitempty"`
	LegalName        *string          `json:"legal_name,omitempty"`
	TaxID            *string          `json:"tax_id,omitempty"`
	Address          *string          `json:"address,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	Email            *string          `json:"email,omitempty" validate:"omitempty,email"`
	LogoPath         *string          `json:"logo_path,omitempty"`
	Currency         *string          `json:"currency,omitempty"`
	TaxRate          *decimal.Decimal `json:"tax_rate,omitempty"`
	InvoicePrefix    *string          `json:"invoice_prefix,omitempty"`
	ContractTemplate *string          `json:"contract_template,omitempty"`
	VoucherMessage   *string          `json:"voucher_message,omitempty"`
	InvoiceFooter    *string          `json:"invoice_footer,omitempty"`
}

// SettingsResponse configuración del negocio en respuestas.
type SettingsResponse struct {
	ID               string          `json:"id"`
	AgencyName       string          `json:"agency_name"`
	LegalName        string          `json:"legal_name,omitempty"`
	TaxID            string          `json:"tax_id,omitempty"`
	Address          string          `json:"address,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	Email            string          `json:"email,omitempty"`
	LogoPath         string          `json:"logo_path,omitempty"`
	Currency         string          `json:"currency"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	InvoicePrefix    string          `json:"invoice_prefix"`
	NextInvoiceSeq   int             `json:"next_invoice_seq"`
	ContractTemplate string          `json:"contract_template,omitempty"`
	VoucherMessage   string          `json:"voucher_message,omitempty"`
	InvoiceFooter    string          `json:"invoice_footer,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
