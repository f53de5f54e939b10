package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andresjj98/appagencia-api/internal/application/dto"
	"github.com/andresjj98/appagencia-api/internal/application/reservation"
)

// ReservationHandler maneja el ciclo de vida de reservas.
type ReservationHandler struct {
	uc *reservation.UseCase
}

// NewReservationHandler construye el handler de reservas.
func NewReservationHandler(uc *reservation.UseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Create POST /api/reservations
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if ok, resp := validateStruct(c, in); !ok {
		return resp
	}
	out, err := h.uc.Create(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/reservations
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	var in dto.ReservationListRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "filtros inválidos")
	}
	out, err := h.uc.List(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/reservations/:id
func (h *ReservationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/reservations/:id
func (h *ReservationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if ok, resp := validateStruct(c, in); !ok {
		return resp
	}
	out, err := h.uc.Update(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve POST /api/reservations/:id/approve
func (h *ReservationHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject POST /api/reservations/:id/reject
func (h *ReservationHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if ok, resp := validateStruct(c, in); !ok {
		return resp
	}
	out, err := h.uc.Reject(c.Context(), GetIdentity(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel POST /api/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete POST /api/reservations/:id/complete
func (h *ReservationHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
