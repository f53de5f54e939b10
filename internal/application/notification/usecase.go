package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andresjj98/appagencia-api/internal/application/dto"
	"github.com/andresjj98/appagencia-api/internal/domain"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
	"github.com/andresjj98/appagencia-api/pkg/logger"
)

// EventPublisher publica eventos de dominio en la cola de mensajes.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// UseCase notificaciones del flujo de aprobación: se persisten por usuario y
// además se publican como evento. Ningún fallo de notificación bloquea la
// operación de negocio que la originó: se registra en el log y se sigue.
type UseCase struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	publisher EventPublisher
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de notificaciones. publisher puede ser
// nil (sin broker configurado).
func NewUseCase(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, publisher EventPublisher, log *logger.Logger) *UseCase {
	return &UseCase{notifRepo: notifRepo, userRepo: userRepo, publisher: publisher, log: log}
}

// ReservationApproved avisa al asesor que su reserva fue confirmada.
func (uc *UseCase) ReservationApproved(ctx context.Context, r *entity.Reservation) {
	uc.deliver(ctx, entity.NotifReservationApproved, r.AdvisorID, &r.ID,
		"Reserva confirmada",
		fmt.Sprintf("La reserva de %s fue confirmada con factura %s", r.Client.Name, r.InvoiceNumber))
}

// ReservationRejected avisa al asesor que su reserva fue rechazada, con el
// motivo, para que corrija y reenvíe.
func (uc *UseCase) ReservationRejected(ctx context.Context, r *entity.Reservation, reason string) {
	uc.deliver(ctx, entity.NotifReservationRejected, r.AdvisorID, &r.ID,
		"Reserva rechazada",
		fmt.Sprintf("La reserva de %s fue rechazada: %s", r.Client.Name, reason))
}

// ChangeRequestCreated avisa a quienes resuelven (gestores y administradores)
// que hay una solicitud de cambio nueva.
func (uc *UseCase) ChangeRequestCreated(ctx context.Context, r *entity.Reservation, cr *entity.ChangeRequest) {
	resolvers, err := uc.userRepo.ListByRoles(ctx, []string{entity.RoleGestor, entity.RoleAdministrador})
	if err != nil {
		uc.log.Error().Err(err).Str("change_request_id", cr.ID).Msg("no se pudo listar destinatarios de la solicitud")
		return
	}
	body := fmt.Sprintf("Solicitud de cambio (%s) sobre la reserva de %s", cr.Section, r.Client.Name)
	for _, u := range resolvers {
		uc.deliver(ctx, entity.NotifChangeRequestCreated, u.ID, &r.ID, "Nueva solicitud de cambio", body)
	}
}

// ChangeRequestResolved avisa al asesor solicitante el resultado.
func (uc *UseCase) ChangeRequestResolved(ctx context.Context, r *entity.Reservation, cr *entity.ChangeRequest) {
	title := "Solicitud de cambio aplicada"
	body := fmt.Sprintf("Los cambios de %s sobre la reserva de %s fueron aplicados", cr.Section, r.Client.Name)
	if cr.Status == entity.ChangeRequestRejected {
		title = "Solicitud de cambio rechazada"
		body = fmt.Sprintf("La solicitud sobre la reserva de %s fue rechazada: %s", r.Client.Name, cr.RejectReason)
	}
	uc.deliver(ctx, entity.NotifChangeRequestResolved, cr.RequestedBy, &r.ID, title, body)
}

// deliver persiste la notificación y publica el evento. Errores solo al log.
func (uc *UseCase) deliver(ctx context.Context, notifType, userID string, reservationID *string, title, body string) {
	n := &entity.Notification{
		ID:            uuid.New().String(),
		UserID:        userID,
		Type:          notifType,
		Title:         title,
		Body:          body,
		ReservationID: reservationID,
		CreatedAt:     time.Now(),
	}
	if err := uc.notifRepo.Create(ctx, n); err != nil {
		uc.log.Error().Err(err).Str("type", notifType).Str("user_id", userID).Msg("no se pudo persistir la notificación")
	}
	if uc.publisher == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"id":             n.ID,
		"type":           n.Type,
		"user_id":        n.UserID,
		"reservation_id": n.ReservationID,
		"title":          n.Title,
		"body":           n.Body,
		"created_at":     n.CreatedAt,
	})
	if err != nil {
		return
	}
	if err := uc.publisher.Publish(ctx, notifType, payload); err != nil {
		uc.log.Error().Err(err).Str("type", notifType).Msg("no se pudo publicar el evento de notificación")
	}
}

// List lista las notificaciones del propio usuario.
func (uc *UseCase) List(ctx context.Context, actor *entity.User, in dto.NotificationListRequest) ([]*dto.NotificationResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	list, err := uc.notifRepo.ListByUser(ctx, actor.ID, in.OnlyUnread, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, &dto.NotificationResponse{
			ID:            n.ID,
			Type:          n.Type,
			Title:         n.Title,
			Body:          n.Body,
			ReservationID: n.ReservationID,
			Read:          n.Read,
			CreatedAt:     n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca como leída una notificación del propio usuario.
func (uc *UseCase) MarkRead(ctx context.Context, actor *entity.User, id string) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	return uc.notifRepo.MarkRead(ctx, id, actor.ID)
}
