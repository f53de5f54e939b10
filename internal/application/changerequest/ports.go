package changerequest

import (
	"context"

	"github.com/andresjj98/appagencia-api/internal/domain/entity"
)

// Notifier avisa la creación y la resolución de solicitudes de cambio. Las
// implementaciones no bloquean ni propagan errores.
type Notifier interface {
	ChangeRequestCreated(ctx context.Context, r *entity.Reservation, cr *entity.ChangeRequest)
	ChangeRequestResolved(ctx context.Context, r *entity.Reservation, cr *entity.ChangeRequest)
}
