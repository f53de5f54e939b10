package document

import (
	"context"

	"github.com/andresjj98/appagencia-api/internal/domain/docs"
)

// PDFGenerator genera los PDF de la agencia a partir de la carga canónica.
type PDFGenerator interface {
	Invoice(p *docs.InvoicePayload) ([]byte, error)
	Voucher(p *docs.InvoicePayload, message string) ([]byte, error)
	Contract(title string, body string) ([]byte, error)
}

// FiscalExporter genera la representación XML fiscal de una factura y su
// huella SHA-384 sobre el XML canónico.
type FiscalExporter interface {
	Export(p *docs.InvoicePayload) (xml []byte, fingerprint string, err error)
}

// Storage bucket de archivos (comprobantes de pago, logos).
type Storage interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	SignedURL(ctx context.Context, path string) (string, error)
}

// TemplateRenderer sustituye los placeholders {{ruta.punteada|filtro}} de la
// plantilla de contrato con los datos de la carga canónica.
type TemplateRenderer interface {
	Render(tpl string, data map[string]any) string
}
