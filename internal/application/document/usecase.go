package document

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/andresjj98/appagencia-api/internal/application/dto"
	"github.com/andresjj98/appagencia-api/internal/domain"
	"github.com/andresjj98/appagencia-api/internal/domain/authz"
	"github.com/andresjj98/appagencia-api/internal/domain/docs"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

// UseCase generación de documentos de una reserva (factura, voucher,
// contrato, XML fiscal) y manejo de comprobantes de pago en el bucket.
// Todos los documentos parten de la misma carga canónica: si el registro no
// alcanza para armarla, la operación falla con ErrNoDocumentData (422), nunca
// con un documento a medias.
type UseCase struct {
	resRepo      repository.ReservationRepository
	insRepo      repository.InstallmentRepository
	settingsRepo repository.SettingsRepository
	pdf          PDFGenerator
	fiscal       FiscalExporter
	storage      Storage
	renderer     TemplateRenderer
}

// NewUseCase construye el caso de uso de documentos.
func NewUseCase(
	resRepo repository.ReservationRepository,
	insRepo repository.InstallmentRepository,
	settingsRepo repository.SettingsRepository,
	pdf PDFGenerator,
	fiscal FiscalExporter,
	storage Storage,
	renderer TemplateRenderer,
) *UseCase {
	return &UseCase{
		resRepo:      resRepo,
		insRepo:      insRepo,
		settingsRepo: settingsRepo,
		pdf:          pdf,
		fiscal:       fiscal,
		storage:      storage,
		renderer:     renderer,
	}
}

// payload arma la carga canónica de una reserva visible para el actor.
func (uc *UseCase) payload(ctx context.Context, actor *entity.User, reservationID string) (*docs.InvoicePayload, *entity.BusinessSettings, error) {
	r, err := uc.resRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !authz.CanViewReservation(actor, r) {
		return nil, nil, domain.ErrForbidden
	}
	installments, err := uc.insRepo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	payload := docs.BuildInvoicePayload(docs.RecordFromReservation(r, installments, settings))
	if payload == nil {
		return nil, nil, domain.ErrNoDocumentData
	}
	return payload, settings, nil
}

// InvoicePDF genera el PDF de la factura. Exige que la reserva ya tenga
// número de factura (está confirmada).
func (uc *UseCase) InvoicePDF(ctx context.Context, actor *entity.User, reservationID string) (*dto.DocumentResponse, error) {
	p, _, err := uc.payload(ctx, actor, reservationID)
	if err != nil {
		return nil, err
	}
	if p.InvoiceNumber == "" {
		return nil, domain.ErrNoDocumentData
	}
	content, err := uc.pdf.Invoice(p)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentResponse{
		FileName:    fmt.Sprintf("factura_%s.pdf", p.InvoiceNumber),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// VoucherPDF genera el voucher de viaje con el mensaje configurado.
func (uc *UseCase) VoucherPDF(ctx context.Context, actor *entity.User, reservationID string) (*dto.DocumentResponse, error) {
	p, settings, err := uc.payload(ctx, actor, reservationID)
	if err != nil {
		return nil, err
	}
	content, err := uc.pdf.Voucher(p, settings.VoucherMessage)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentResponse{
		FileName:    fmt.Sprintf("voucher_%s.pdf", reservationID),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// ContractPDF renderiza la plantilla de contrato configurada con los datos de
// la reserva y la devuelve como PDF.
func (uc *UseCase) ContractPDF(ctx context.Context, actor *entity.User, reservationID string) (*dto.DocumentResponse, error) {
	p, settings, err := uc.payload(ctx, actor, reservationID)
	if err != nil {
		return nil, err
	}
	if settings.ContractTemplate == "" {
		return nil, domain.ErrNoDocumentData
	}
	// La plantilla referencia los datos por ruta punteada sobre el JSON de la
	// carga canónica.
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	body := uc.renderer.Render(settings.ContractTemplate, data)
	content, err := uc.pdf.Contract("Contrato de servicios turísticos", body)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentResponse{
		FileName:    fmt.Sprintf("contrato_%s.pdf", reservationID),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// FiscalXML exporta la factura como XML fiscal con su huella SHA-384.
func (uc *UseCase) FiscalXML(ctx context.Context, actor *entity.User, reservationID string) (*dto.DocumentResponse, error) {
	p, _, err := uc.payload(ctx, actor, reservationID)
	if err != nil {
		return nil, err
	}
	if p.InvoiceNumber == "" {
		return nil, domain.ErrNoDocumentData
	}
	content, fingerprint, err := uc.fiscal.Export(p)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentResponse{
		FileName:    fmt.Sprintf("factura_%s.xml", p.InvoiceNumber),
		ContentType: "application/xml",
		Content:     content,
		Fingerprint: fingerprint,
	}, nil
}

// UploadReceipt sube el comprobante de pago de una cuota al bucket y guarda
// la ruta en la cuota. El candado de cuotas pagadas aplica igual que para el
// cambio de estado.
func (uc *UseCase) UploadReceipt(ctx context.Context, actor *entity.User, installmentID, fileName, contentType string, data []byte) (*dto.UploadResponse, error) {
	persisted, err := uc.insRepo.GetByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanEditPaymentStatus(actor, persisted) {
		return nil, domain.ErrPaymentLocked
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}

	objectPath := path.Join("receipts", persisted.ReservationID, installmentID,
		fmt.Sprintf("%d_%s", time.Now().Unix(), fileName))
	stored, err := uc.storage.Upload(ctx, objectPath, contentType, data)
	if err != nil {
		return nil, err
	}
	if err := uc.insRepo.UpdateStatus(ctx, installmentID, persisted.Status, &stored, persisted.PaymentDate); err != nil {
		return nil, err
	}
	signed, err := uc.storage.SignedURL(ctx, stored)
	if err != nil {
		// La subida quedó bien; la URL firmada se puede pedir después.
		return &dto.UploadResponse{Path: stored}, nil
	}
	return &dto.UploadResponse{Path: stored, SignedURL: signed}, nil
}

// ReceiptURL devuelve una URL firmada temporal para ver el comprobante.
func (uc *UseCase) ReceiptURL(ctx context.Context, actor *entity.User, installmentID string) (*dto.UploadResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	persisted, err := uc.insRepo.GetByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		return nil, domain.ErrNotFound
	}
	if persisted.ReceiptPath == nil || *persisted.ReceiptPath == "" {
		return nil, domain.ErrNotFound
	}
	signed, err := uc.storage.SignedURL(ctx, *persisted.ReceiptPath)
	if err != nil {
		return nil, err
	}
	return &dto.UploadResponse{Path: *persisted.ReceiptPath, SignedURL: signed}, nil
}
