package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository. La tabla business_settings
// tiene una sola fila (singleton).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

const settingsColumns = `
	id, agency_name, legal_name, tax_id, address, phone, email, logo_path,
	currency, tax_rate, invoice_prefix, next_invoice_seq,
	contract_template, voucher_message, invoice_footer, updated_by, updated_at`

// Get lee el singleton de ajustes.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.BusinessSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM business_settings LIMIT 1`
	var s entity.BusinessSettings
	err := r.q.QueryRow(ctx, query).Scan(
		&s.ID, &s.AgencyName, &s.LegalName, &s.TaxID, &s.Address, &s.Phone,
		&s.Email, &s.LogoPath, &s.Currency, &s.TaxRate, &s.InvoicePrefix,
		&s.NextInvoiceSeq, &s.ContractTemplate, &s.VoucherMessage,
		&s.InvoiceFooter, &s.UpdatedBy, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Update reescribe los ajustes (no toca next_invoice_seq: ese consecutivo solo
// avanza vía NextInvoiceSeq dentro de la transacción de aprobación).
func (r *SettingsRepo) Update(ctx context.Context, s *entity.BusinessSettings) error {
	query := `
		UPDATE business_settings
		SET agency_name = $2, legal_name = $3, tax_id = $4, address = $5,
		    phone = $6, email = $7, logo_path = $8, currency = $9, tax_rate = $10,
		    invoice_prefix = $11, contract_template = $12, voucher_message = $13,
		    invoice_footer = $14, updated_by = $15, updated_at = $16
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.AgencyName, s.LegalName, s.TaxID, s.Address, s.Phone, s.Email,
		s.LogoPath, s.Currency, s.TaxRate, s.InvoicePrefix, s.ContractTemplate,
		s.VoucherMessage, s.InvoiceFooter, s.UpdatedBy, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update settings: sin filas afectadas")
	}
	return nil
}

// NextInvoiceSeq avanza el consecutivo de facturación y devuelve el valor
// reservado. RETURNING hace la operación atómica; llamarla dentro de la tx de
// aprobación garantiza que el número no se pierde si la aprobación falla.
func (r *SettingsRepo) NextInvoiceSeq(ctx context.Context) (int, error) {
	var seq int
	err := r.q.QueryRow(ctx, `
		UPDATE business_settings
		SET next_invoice_seq = next_invoice_seq + 1
		RETURNING next_invoice_seq - 1`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next invoice seq: %w", err)
	}
	return seq, nil
}
