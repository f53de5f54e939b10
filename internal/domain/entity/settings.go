package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BusinessSettings registro singleton con la identidad de la agencia y los
// parámetros de documentos. Lo leen todos los generadores de documentos y solo
// lo editan administradores/gestores.
type BusinessSettings struct {
	ID               string
	AgencyName       string
	LegalName        string
	TaxID            string // NIT
	Address          string
	Phone            string
	Email            string
	LogoPath         string
	Currency         string // COP, USD...
	TaxRate          decimal.Decimal
	InvoicePrefix    string // ej. "FAC"
	NextInvoiceSeq   int    // consecutivo; avanza dentro de la tx de aprobación
	ContractTemplate string // plantilla con placeholders {{ruta.punteada|filtro}}
	VoucherMessage   string
	InvoiceFooter    string
	UpdatedBy        string
	UpdatedAt        time.Time
}

// FormatInvoiceNumber arma el número de factura para un consecutivo dado,
// ej. "FAC-000123". No avanza el consecutivo: eso ocurre en la transacción
// de aprobación de la reserva.
func (s *BusinessSettings) FormatInvoiceNumber(seq int) string {
	prefix := s.InvoicePrefix
	if prefix == "" {
		prefix = "FAC"
	}
	return fmt.Sprintf("%s-%06d", prefix, seq)
}
