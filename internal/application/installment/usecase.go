package installment

import (
	"context"
	"sync"
	"time"

	"github.com/andresjj98/appagencia-api/internal/application/dto"
	"github.com/andresjj98/appagencia-api/internal/domain"
	"github.com/andresjj98/appagencia-api/internal/domain/authz"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/payments"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

// UseCase casos de uso de cuotas de pago: listado con estado efectivo,
// cambio de estado con el candado sobre cuotas pagadas y la reconciliación
// en lote de correcciones.
type UseCase struct {
	insRepo repository.InstallmentRepository
	resRepo repository.ReservationRepository
}

// NewUseCase construye el caso de uso de cuotas.
func NewUseCase(insRepo repository.InstallmentRepository, resRepo repository.ReservationRepository) *UseCase {
	return &UseCase{insRepo: insRepo, resRepo: resRepo}
}

// ListByReservation lista las cuotas de una reserva. Cada cuota sale con su
// estado efectivo (derivado contra hoy) además del persistido, y la respuesta
// incluye las correcciones detectadas para que un guardado explícito las
// reconcilie. El listado nunca escribe en el respaldo.
func (uc *UseCase) ListByReservation(ctx context.Context, actor *entity.User, reservationID string) (*dto.InstallmentListResponse, error) {
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

	list, err := uc.insRepo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	today := time.Now()
	out := &dto.InstallmentListResponse{
		Installments: make([]dto.InstallmentResponse, 0, len(list)),
		Corrections:  payments.DetectCorrections(list, today),
	}
	for _, ins := range list {
		out.Installments = append(out.Installments, toResponse(ins, today))
	}
	return out, nil
}

// UpdateStatus cambia el estado de una cuota. El candado se evalúa SIEMPRE
// sobre la copia persistida (lo último leído de DB): una cuota ya pagada es
// inmutable para todos menos superadmin, aunque el caller traiga una copia
// editada en memoria. Marcar como pagada exige comprobante.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor *entity.User, id string, in dto.UpdateInstallmentStatusRequest) (*dto.InstallmentResponse, error) {
	persisted, err := uc.insRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		return nil, domain.ErrNotFound
	}
	if !authz.CanEditPaymentStatus(actor, persisted) {
		return nil, domain.ErrPaymentLocked
	}

	receipt := in.ReceiptPath
	if receipt == nil {
		receipt = persisted.ReceiptPath
	}
	var paymentDate *time.Time
	if in.Status == entity.InstallmentPaid {
		if receipt == nil || *receipt == "" {
			return nil, domain.ErrInvalidInput // pagar sin comprobante no
		}
		now := time.Now()
		paymentDate = &now
	}
	if err := uc.insRepo.UpdateStatus(ctx, id, in.Status, receipt, paymentDate); err != nil {
		return nil, err
	}

	persisted.Status = in.Status
	persisted.ReceiptPath = receipt
	if paymentDate != nil {
		persisted.PaymentDate = paymentDate
	}
	resp := toResponse(persisted, time.Now())
	return &resp, nil
}

// Reconcile persiste en lote las correcciones de estado (típicamente
// pending -> overdue detectadas al listar). Las cuotas se procesan en
// paralelo y cada una reporta su resultado individual: un fallo en una no
// detiene a las demás.
func (uc *UseCase) Reconcile(ctx context.Context, actor *entity.User, in dto.ReconcileRequest) (*dto.ReconcileResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	results := make([]dto.ReconcileResult, len(in.Corrections))
	var wg sync.WaitGroup
	for i, corr := range in.Corrections {
		wg.Add(1)
		go func(i int, corr payments.Correction) {
			defer wg.Done()
			results[i] = uc.applyCorrection(ctx, actor, corr)
		}(i, corr)
	}
	wg.Wait()

	resp := &dto.ReconcileResponse{Results: results}
	for _, res := range results {
		if !res.OK {
			resp.Failed++
		}
	}
	return resp, nil
}

// applyCorrection valida y persiste una corrección individual. La corrección
// solo aplica si el estado persistido actual sigue siendo el From reportado y
// el To coincide con el estado efectivo recalculado: datos viejos no pisan
// cambios más recientes.
func (uc *UseCase) applyCorrection(ctx context.Context, actor *entity.User, corr payments.Correction) dto.ReconcileResult {
	res := dto.ReconcileResult{InstallmentID: corr.InstallmentID}
	persisted, err := uc.insRepo.GetByID(ctx, corr.InstallmentID)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if persisted == nil {
		res.Error = domain.ErrNotFound.Error()
		return res
	}
	if !authz.CanEditPaymentStatus(actor, persisted) {
		res.Error = domain.ErrPaymentLocked.Error()
		return res
	}
	if persisted.Status != corr.From {
		res.Error = "estado persistido cambió desde la detección"
		return res
	}
	if eff := payments.EffectiveStatus(persisted, time.Now()); eff != corr.To {
		res.Error = "la corrección ya no corresponde al estado efectivo"
		return res
	}
	if err := uc.insRepo.UpdateStatus(ctx, corr.InstallmentID, corr.To, persisted.ReceiptPath, persisted.PaymentDate); err != nil {
		res.Error = err.Error()
		return res
	}
	res.OK = true
	return res
}

func toResponse(ins *entity.Installment, today time.Time) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		ID:              ins.ID,
		ReservationID:   ins.ReservationID,
		Amount:          ins.Amount,
		DueDate:         ins.DueDate,
		Status:          payments.EffectiveStatus(ins, today),
		PersistedStatus: ins.Status,
		ReceiptPath:     ins.ReceiptPath,
		PaymentDate:     ins.PaymentDate,
	}
}
