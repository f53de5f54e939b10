package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andresjj98/appagencia-api/internal/application/dto"
	"github.com/andresjj98/appagencia-api/internal/application/installment"
)

// InstallmentHandler maneja cuotas de pago.
type InstallmentHandler struct {
	uc *installment.UseCase
}

// NewInstallmentHandler construye el handler de cuotas.
func NewInstallmentHandler(uc *installment.UseCase) *InstallmentHandler {
	return &InstallmentHandler{uc: uc}
}

// ListByReservation GET /api/reservations/:id/installments
func (h *InstallmentHandler) ListByReservation(c *fiber.Ctx) error {
	out, err := h.uc.ListByReservation(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus PATCH /api/installments/:id/status
func (h *InstallmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateInstallmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if ok, resp := validateStruct(c, in); !ok {
		return resp
	}
	out, err := h.uc.UpdateStatus(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reconcile POST /api/installments/reconcile
func (h *InstallmentHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if ok, resp := validateStruct(c, in); !ok {
		return resp
	}
	out, err := h.uc.Reconcile(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
