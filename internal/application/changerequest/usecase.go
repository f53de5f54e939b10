package changerequest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/andresjj98/appagencia-api/internal/application/dto"
	"github.com/andresjj98/appagencia-api/internal/domain"
	"github.com/andresjj98/appagencia-api/internal/domain/authz"
	"github.com/andresjj98/appagencia-api/internal/domain/changeset"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

// UseCase casos de uso de solicitudes de cambio sobre reservas confirmadas:
// creación por el asesor, revisión con diff lado a lado y resolución por un
// gestor o administrador. Una solicitud resuelta es historial inmutable.
type UseCase struct {
	crRepo   repository.ChangeRequestRepository
	resRepo  repository.ReservationRepository
	notifier Notifier
	currency string // divisa para los valores formateados del diff
}

// NewUseCase construye el caso de uso de solicitudes de cambio.
func NewUseCase(crRepo repository.ChangeRequestRepository, resRepo repository.ReservationRepository, notifier Notifier, currency string) *UseCase {
	return &UseCase{crRepo: crRepo, resRepo: resRepo, notifier: notifier, currency: currency}
}

// Create registra una solicitud de cambio sobre una reserva confirmada. La
// sección debe ser una de las soportadas; los datos propuestos viajan con la
// forma propia de cada sección.
func (uc *UseCase) Create(ctx context.Context, actor *entity.User, reservationID string, in dto.CreateChangeRequestRequest) (*dto.ChangeRequestResponse, error) {
	sec, ok := changeset.ParseSection(in.Section)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	r, err := uc.resRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanViewReservation(actor, r) {
		return nil, domain.ErrForbidden
	}
	// Mientras la reserva sea editable directamente no hay solicitud que valga:
	// el flujo de cambios aplica a reservas ya confirmadas.
	if r.Status != entity.ReservationConfirmed {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	cr := &entity.ChangeRequest{
		ID:            uuid.New().String(),
		ReservationID: reservationID,
		Section:       string(sec),
		Reason:        in.Reason,
		Payload:       in.Payload,
		Status:        entity.ChangeRequestPending,
		RequestedBy:   actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.crRepo.Create(ctx, cr); err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.ChangeRequestCreated(ctx, r, cr)
	}
	return uc.toResponse(cr, r), nil
}

// Get obtiene una solicitud con su diff calculado contra el estado actual de
// la reserva, para la revisión lado a lado.
func (uc *UseCase) Get(ctx context.Context, actor *entity.User, id string) (*dto.ChangeRequestResponse, error) {
	cr, err := uc.crRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr == nil {
		return nil, domain.ErrNotFound
	}
	r, err := uc.resRepo.GetByID(ctx, cr.ReservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanViewReservation(actor, r) {
		return nil, domain.ErrForbidden
	}
	return uc.toResponse(cr, r), nil
}

// ListByReservation lista las solicitudes (pendientes y resueltas) de una
// reserva, con el diff calculado para las pendientes.
func (uc *UseCase) ListByReservation(ctx context.Context, actor *entity.User, reservationID string) ([]*dto.ChangeRequestResponse, error) {
	r, err := uc.resRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanViewReservation(actor, r) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.crRepo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ChangeRequestResponse, 0, len(list))
	for _, cr := range list {
		out = append(out, uc.toResponse(cr, r))
	}
	return out, nil
}

// Approve aplica los cambios propuestos a la reserva y marca la solicitud como
// applied. Si la sección es una cancelación, en lugar de mutar campos se
// transiciona la reserva a cancelled. La resolución en DB está condicionada a
// que la solicitud siga pendiente: dos resoluciones concurrentes no pueden
// ganar ambas.
func (uc *UseCase) Approve(ctx context.Context, actor *entity.User, id string) (*dto.ChangeRequestResponse, error) {
	if !authz.CanResolveChangeRequest(actor) {
		return nil, domain.ErrForbidden
	}
	cr, err := uc.crRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr == nil {
		return nil, domain.ErrNotFound
	}
	if cr.Resolved() {
		return nil, domain.ErrRequestResolved
	}
	r, err := uc.resRepo.GetByID(ctx, cr.ReservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}

	sec, ok := changeset.ParseSection(cr.Section)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	if sec == changeset.SectionCancellation {
		if !entity.ValidStatusTransition(r.Status, entity.ReservationCancelled) {
			return nil, domain.ErrInvalidTransition
		}
		if err := uc.resRepo.UpdateStatus(ctx, r.ID, entity.ReservationCancelled, r.RejectReason, "", now); err != nil {
			return nil, err
		}
		r.Status = entity.ReservationCancelled
	} else {
		if err := changeset.Apply(sec, r, cr.Payload); err != nil {
			return nil, err
		}
		r.UpdatedAt = now
		if err := uc.resRepo.Update(ctx, r); err != nil {
			return nil, err
		}
	}

	cr.Status = entity.ChangeRequestApplied
	cr.ResolvedBy = &actor.ID
	cr.ResolvedAt = &now
	cr.UpdatedAt = now
	if err := uc.crRepo.Resolve(ctx, cr); err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.ChangeRequestResolved(ctx, r, cr)
	}
	return uc.toResponse(cr, r), nil
}

// Reject rechaza la solicitud con un motivo obligatorio y la deja como
// historial inmutable.
func (uc *UseCase) Reject(ctx context.Context, actor *entity.User, id, reason string) (*dto.ChangeRequestResponse, error) {
	if !authz.CanResolveChangeRequest(actor) {
		return nil, domain.ErrForbidden
	}
	cr, err := uc.crRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr == nil {
		return nil, domain.ErrNotFound
	}
	if cr.Resolved() {
		return nil, domain.ErrRequestResolved
	}
	r, err := uc.resRepo.GetByID(ctx, cr.ReservationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cr.Status = entity.ChangeRequestRejected
	cr.RejectReason = reason
	cr.ResolvedBy = &actor.ID
	cr.ResolvedAt = &now
	cr.UpdatedAt = now
	if err := uc.crRepo.Resolve(ctx, cr); err != nil {
		return nil, err
	}
	if uc.notifier != nil && r != nil {
		uc.notifier.ChangeRequestResolved(ctx, r, cr)
	}
	return uc.toResponse(cr, r), nil
}

// toResponse arma la respuesta; para solicitudes pendientes incluye el diff
// contra la línea base actual de la sección.
func (uc *UseCase) toResponse(cr *entity.ChangeRequest, r *entity.Reservation) *dto.ChangeRequestResponse {
	resp := &dto.ChangeRequestResponse{
		ID:            cr.ID,
		ReservationID: cr.ReservationID,
		Section:       cr.Section,
		Payload:       cr.Payload,
		Status:        cr.Status,
		Reason:        cr.Reason,
		RejectReason:  cr.RejectReason,
		RequestedBy:   cr.RequestedBy,
		ResolvedBy:    cr.ResolvedBy,
		ResolvedAt:    cr.ResolvedAt,
		CreatedAt:     cr.CreatedAt,
	}
	if cr.Status == entity.ChangeRequestPending && r != nil {
		if sec, ok := changeset.ParseSection(cr.Section); ok {
			var proposed map[string]any
			if len(cr.Payload) > 0 {
				_ = json.Unmarshal(cr.Payload, &proposed)
			}
			for _, ch := range changeset.Diff(sec, changeset.CurrentData(sec, r), proposed) {
				view := dto.FieldChangeView{
					Field:    ch.Field,
					Label:    changeset.Label(sec, ch.Field),
					OldValue: ch.OldValue,
					NewValue: ch.NewValue,
					IsArray:  ch.IsArray,
				}
				if !ch.IsArray {
					view.OldDisplay = changeset.FormatValue(ch.Field, ch.OldValue, uc.currency)
					view.NewDisplay = changeset.FormatValue(ch.Field, ch.NewValue, uc.currency)
				}
				resp.Changes = append(resp.Changes, view)
			}
		}
	}
	return resp
}
