package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andresjj98/appagencia-api/internal/application/changerequest"
	"github.com/andresjj98/appagencia-api/internal/application/dto"
)

// ChangeRequestHandler maneja solicitudes de cambio sobre reservas.
type ChangeRequestHandler struct {
	uc *changerequest.UseCase
}

// NewChangeRequestHandler construye el handler de solicitudes de cambio.
func NewChangeRequestHandler(uc *changerequest.UseCase) *ChangeRequestHandler {
	return &ChangeRequestHandler{uc: uc}
}

// Create POST /api/reservations/:id/change-requests
func (h *ChangeRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateChangeRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if ok, resp := validateStruct(c, in); !ok {
		return resp
	}
	out, err := h.uc.Create(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByReservation GET /api/reservations/:id/change-requests
func (h *ChangeRequestHandler) ListByReservation(c *fiber.Ctx) error {
	out, err := h.uc.ListByReservation(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/change-requests/:id
func (h *ChangeRequestHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve POST /api/change-requests/:id/approve
func (h *ChangeRequestHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject POST /api/change-requests/:id/reject
func (h *ChangeRequestHandler) Reject(c *fiber.Ctx) error {
	var in dto.ResolveChangeRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	// El motivo de rechazo es obligatorio y con longitud mínima.
	if len(in.Reason) < 10 {
		return badRequest(c, "VALIDATION", "el motivo de rechazo debe tener al menos 10 caracteres")
	}
	out, err := h.uc.Reject(c.Context(), GetIdentity(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
