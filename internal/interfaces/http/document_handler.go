package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/andresjj98/appagencia-api/internal/application/document"
	"github.com/andresjj98/appagencia-api/internal/application/dto"
)

// maxReceiptSize límite de tamaño del comprobante subido (10 MB).
const maxReceiptSize = 10 << 20

// DocumentHandler maneja la generación y descarga de documentos de reserva.
type DocumentHandler struct {
	uc *document.UseCase
}

// NewDocumentHandler construye el handler de documentos.
func NewDocumentHandler(uc *document.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func sendDocument(c *fiber.Ctx, out *dto.DocumentResponse) error {
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+out.FileName+`"`)
	if out.Fingerprint != "" {
		c.Set("X-Document-Fingerprint", out.Fingerprint)
	}
	return c.Send(out.Content)
}

// Invoice GET /api/reservations/:id/documents/invoice
func (h *DocumentHandler) Invoice(c *fiber.Ctx) error {
	out, err := h.uc.InvoicePDF(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, out)
}

// Voucher GET /api/reservations/:id/documents/voucher
func (h *DocumentHandler) Voucher(c *fiber.Ctx) error {
	out, err := h.uc.VoucherPDF(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, out)
}

// Contract GET /api/reservations/:id/documents/contract
func (h *DocumentHandler) Contract(c *fiber.Ctx) error {
	out, err := h.uc.ContractPDF(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, out)
}

// FiscalXML GET /api/reservations/:id/documents/fiscal
func (h *DocumentHandler) FiscalXML(c *fiber.Ctx) error {
	out, err := h.uc.FiscalXML(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, out)
}

// UploadReceipt POST /api/installments/:id/receipt (multipart, campo "file")
func (h *DocumentHandler) UploadReceipt(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "se requiere el archivo del comprobante en el campo 'file'")
	}
	if fh.Size > maxReceiptSize {
		return badRequest(c, "FILE_TOO_LARGE", "el comprobante supera el tamaño máximo permitido")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	out, err := h.uc.UploadReceipt(c.Context(), GetIdentity(c), c.Params("id"), fh.Filename, contentType, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReceiptURL GET /api/installments/:id/receipt
func (h *DocumentHandler) ReceiptURL(c *fiber.Ctx) error {
	out, err := h.uc.ReceiptURL(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
