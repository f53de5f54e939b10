package reservation

import (
	"context"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los repos
// que participan en la aprobación: reserva, ajustes (consecutivo de factura) y
// cuotas. Si fn retorna error se hace rollback y el consecutivo no avanza.
type TxRunner interface {
	RunApproval(ctx context.Context, fn func(
		resRepo repository.ReservationRepository,
		settingsRepo repository.SettingsRepository,
		insRepo repository.InstallmentRepository,
	) error) error
}

// Notifier avisa al asesor el resultado de la aprobación. Las implementaciones
// no deben bloquear ni propagar errores: un aviso fallido se registra en el
// log y la operación de negocio sigue adelante.
type Notifier interface {
	ReservationApproved(ctx context.Context, r *entity.Reservation)
	ReservationRejected(ctx context.Context, r *entity.Reservation, reason string)
}
