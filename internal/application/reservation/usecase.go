package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andresjj98/appagencia-api/internal/application/dto"
	"github.com/andresjj98/appagencia-api/internal/domain"
	"github.com/andresjj98/appagencia-api/internal/domain/authz"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

// UseCase casos de uso del ciclo de vida de reservas: creación, edición,
// listado y el flujo de aprobación. Las reglas de quién puede hacer qué viven
// en internal/domain/authz; aquí solo se consultan y se traducen a errores.
type UseCase struct {
	resRepo      repository.ReservationRepository
	insRepo      repository.InstallmentRepository
	settingsRepo repository.SettingsRepository
	txRunner     TxRunner
	notifier     Notifier
}

// NewUseCase construye el caso de uso de reservas.
func NewUseCase(
	resRepo repository.ReservationRepository,
	insRepo repository.InstallmentRepository,
	settingsRepo repository.SettingsRepository,
	txRunner TxRunner,
	notifier Notifier,
) *UseCase {
	return &UseCase{
		resRepo:      resRepo,
		insRepo:      insRepo,
		settingsRepo: settingsRepo,
		txRunner:     txRunner,
		notifier:     notifier,
	}
}

// Create registra una reserva nueva en estado pending a nombre del actor.
// Si la opción de pago es por cuotas, se valida que el plan exista y que la
// suma de las cuotas coincida con el total.
func (uc *UseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if in.Client.Name == "" || len(in.Segments) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentOption == entity.PaymentInstallments {
		if len(in.Installments) == 0 {
			return nil, domain.ErrInvalidInput
		}
		var sum decimal.Decimal
		for _, cuota := range in.Installments {
			if !cuota.Amount.GreaterThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			sum = sum.Add(cuota.Amount)
		}
		if !sum.Equal(in.TotalAmount) {
			return nil, domain.ErrInvalidInput
		}
	}

	officeID := in.OfficeID
	if officeID == nil {
		officeID = actor.OfficeID
	}
	now := time.Now()
	r := &entity.Reservation{
		ID:             uuid.New().String(),
		OfficeID:       officeID,
		AdvisorID:      actor.ID,
		Client:         in.Client,
		Segments:       in.Segments,
		Flights:        in.Flights,
		Hotels:         in.Hotels,
		Tours:          in.Tours,
		Assistances:    in.Assistances,
		Transfers:      in.Transfers,
		AdultsCount:    in.AdultsCount,
		ChildrenCount:  in.ChildrenCount,
		InfantsCount:   in.InfantsCount,
		PricePerAdult:  in.PricePerAdult,
		PricePerChild:  in.PricePerChild,
		PricePerInfant: in.PricePerInfant,
		PaymentOption:  in.PaymentOption,
		TotalAmount:    in.TotalAmount,
		Status:         entity.ReservationPending,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.resRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	if in.PaymentOption == entity.PaymentInstallments {
		cuotas := make([]*entity.Installment, 0, len(in.Installments))
		for _, c := range in.Installments {
			cuotas = append(cuotas, &entity.Installment{
				ID:            uuid.New().String(),
				ReservationID: r.ID,
				Amount:        c.Amount,
				DueDate:       c.DueDate,
				Status:        entity.InstallmentPending,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
		if err := uc.insRepo.CreateBatch(ctx, cuotas); err != nil {
			return nil, err
		}
	}
	return toResponse(r), nil
}

// Update reemplaza el contenido editable de la reserva. Si la reserva estaba
// rechazada y quien edita es el asesor dueño, la edición cuenta como reenvío:
// vuelve a pending y se limpia el motivo de rechazo.
func (uc *UseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateReservationRequest) (*dto.ReservationResponse, error) {
	r, err := uc.resRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanModifyReservation(actor, r) {
		return nil, domain.ErrForbidden
	}

	r.Client = in.Client
	r.Segments = in.Segments
	r.Flights = in.Flights
	r.Hotels = in.Hotels
	r.Tours = in.Tours
	r.Assistances = in.Assistances
	r.Transfers = in.Transfers
	r.AdultsCount = in.AdultsCount
	r.ChildrenCount = in.ChildrenCount
	r.InfantsCount = in.InfantsCount
	r.PricePerAdult = in.PricePerAdult
	r.PricePerChild = in.PricePerChild
	r.PricePerInfant = in.PricePerInfant
	if in.PaymentOption != "" {
		r.PaymentOption = in.PaymentOption
	}
	r.TotalAmount = in.TotalAmount
	r.Notes = in.Notes
	resubmit := r.Status == entity.ReservationRejected && actor.ID == r.AdvisorID
	r.UpdatedAt = time.Now()

	if err := uc.resRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	if resubmit {
		if err := uc.resRepo.UpdateStatus(ctx, r.ID, entity.ReservationPending, "", "", r.UpdatedAt); err != nil {
			return nil, err
		}
		r.Status = entity.ReservationPending
		r.RejectReason = ""
	}
	return toResponse(r), nil
}

// Approve confirma una reserva pendiente. Dentro de una sola transacción se
// avanza el consecutivo de facturación, se arma el número de factura y se
// persiste el nuevo estado; el número se asigna exactamente una vez y nunca se
// reasigna (UpdateStatus usa COALESCE sobre invoice_number).
func (uc *UseCase) Approve(ctx context.Context, actor *entity.User, id string) (*dto.ReservationResponse, error) {
	r, err := uc.resRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.Status != entity.ReservationPending {
		return nil, domain.ErrInvalidTransition
	}
	if !authz.CanApproveReservation(actor, r) {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	err = uc.txRunner.RunApproval(ctx, func(
		resRepo repository.ReservationRepository,
		settingsRepo repository.SettingsRepository,
		_ repository.InstallmentRepository,
	) error {
		invoiceNumber := r.InvoiceNumber
		if invoiceNumber == "" {
			settings, err := settingsRepo.Get(ctx)
			if err != nil {
				return err
			}
			seq, err := settingsRepo.NextInvoiceSeq(ctx)
			if err != nil {
				return err
			}
			invoiceNumber = settings.FormatInvoiceNumber(seq)
		}
		if err := resRepo.UpdateStatus(ctx, r.ID, entity.ReservationConfirmed, "", invoiceNumber, now); err != nil {
			return err
		}
		r.Status = entity.ReservationConfirmed
		r.InvoiceNumber = invoiceNumber
		r.RejectReason = ""
		r.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.ReservationApproved(ctx, r)
	}
	return toResponse(r), nil
}

// Reject rechaza una reserva pendiente con un motivo obligatorio.
func (uc *UseCase) Reject(ctx context.Context, actor *entity.User, id, reason string) (*dto.ReservationResponse, error) {
	r, err := uc.resRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.Status != entity.ReservationPending {
		return nil, domain.ErrInvalidTransition
	}
	if !authz.CanApproveReservation(actor, r) {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	if err := uc.resRepo.UpdateStatus(ctx, r.ID, entity.ReservationRejected, reason, "", now); err != nil {
		return nil, err
	}
	r.Status = entity.ReservationRejected
	r.RejectReason = reason
	r.UpdatedAt = now
	if uc.notifier != nil {
		uc.notifier.ReservationRejected(ctx, r, reason)
	}
	return toResponse(r), nil
}

// Cancel cancela una reserva si la transición es válida desde su estado
// actual. El número de factura, si existe, se conserva como historial.
func (uc *UseCase) Cancel(ctx context.Context, actor *entity.User, id string) (*dto.ReservationResponse, error) {
	return uc.transition(ctx, actor, id, entity.ReservationCancelled)
}

// Complete marca una reserva confirmada como completada (viaje realizado).
func (uc *UseCase) Complete(ctx context.Context, actor *entity.User, id string) (*dto.ReservationResponse, error) {
	return uc.transition(ctx, actor, id, entity.ReservationCompleted)
}

func (uc *UseCase) transition(ctx context.Context, actor *entity.User, id, to string) (*dto.ReservationResponse, error) {
	r, err := uc.resRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.ValidStatusTransition(r.Status, to) {
		return nil, domain.ErrInvalidTransition
	}
	if !authz.CanModifyReservation(actor, r) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	if err := uc.resRepo.UpdateStatus(ctx, r.ID, to, r.RejectReason, "", now); err != nil {
		return nil, err
	}
	r.Status = to
	r.UpdatedAt = now
	return toResponse(r), nil
}

// Get obtiene una reserva visible para el actor.
func (uc *UseCase) Get(ctx context.Context, actor *entity.User, id string) (*dto.ReservationResponse, error) {
	r, err := uc.resRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanViewReservation(actor, r) {
		return nil, domain.ErrForbidden
	}
	return toResponse(r), nil
}

// List lista reservas aplicando el alcance del rol sobre los filtros: el
// asesor solo ve las suyas y el administrador con oficina asignada queda
// restringido a su oficina.
func (uc *UseCase) List(ctx context.Context, actor *entity.User, in dto.ReservationListRequest) ([]*dto.ReservationResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	in.DefaultPage()
	f := repository.ReservationFilter{
		Status:    in.Status,
		AdvisorID: in.AdvisorID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.OfficeID != "" {
		f.OfficeID = &in.OfficeID
	}
	if !actor.IsSuperAdmin {
		switch actor.Role {
		case entity.RoleAsesor:
			f.AdvisorID = actor.ID
		case entity.RoleAdministrador:
			if actor.OfficeID != nil {
				f.OfficeID = actor.OfficeID
			}
		}
	}
	list, err := uc.resRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toResponse(r))
	}
	return out, nil
}

func toResponse(r *entity.Reservation) *dto.ReservationResponse {
	if r == nil {
		return nil
	}
	return &dto.ReservationResponse{
		ID:             r.ID,
		OfficeID:       r.OfficeID,
		AdvisorID:      r.AdvisorID,
		Client:         r.Client,
		Segments:       r.Segments,
		Flights:        r.Flights,
		Hotels:         r.Hotels,
		Tours:          r.Tours,
		Assistances:    r.Assistances,
		Transfers:      r.Transfers,
		AdultsCount:    r.AdultsCount,
		ChildrenCount:  r.ChildrenCount,
		InfantsCount:   r.InfantsCount,
		PricePerAdult:  r.PricePerAdult,
		PricePerChild:  r.PricePerChild,
		PricePerInfant: r.PricePerInfant,
		PaymentOption:  r.PaymentOption,
		TotalAmount:    r.TotalAmount,
		Status:         r.Status,
		InvoiceNumber:  r.InvoiceNumber,
		RejectReason:   r.RejectReason,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
