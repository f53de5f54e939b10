package settings

import (
	"context"
	"time"

	"github.com/andresjj98/appagencia-api/internal/application/dto"
	"github.com/andresjj98/appagencia-api/internal/domain"
	"github.com/andresjj98/appagencia-api/internal/domain/authz"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

// Cache capa opcional de caché para el singleton de ajustes: lo leen todos
// los generadores de documentos en cada operación, así que vale cachearlo.
// Las implementaciones degradan en silencio: un miss o un fallo de caché
// siempre cae a la base de datos.
type Cache interface {
	GetSettings(ctx context.Context) (*entity.BusinessSettings, bool)
	SetSettings(ctx context.Context, s *entity.BusinessSettings)
	InvalidateSettings(ctx context.Context)
}

// UseCase casos de uso de los ajustes del negocio.
type UseCase struct {
	repo  repository.SettingsRepository
	cache Cache
}

// NewUseCase construye el caso de uso de ajustes. cache puede ser nil.
func NewUseCase(repo repository.SettingsRepository, cache Cache) *UseCase {
	return &UseCase{repo: repo, cache: cache}
}

// Get lee los ajustes, primero de caché y si no de la base.
func (uc *UseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return toResponse(s), nil
}

// Current expone la entidad cruda para otros casos de uso (documentos).
func (uc *UseCase) Current(ctx context.Context) (*entity.BusinessSettings, error) {
	return uc.load(ctx)
}

func (uc *UseCase) load(ctx context.Context) (*entity.BusinessSettings, error) {
	if uc.cache != nil {
		if s, ok := uc.cache.GetSettings(ctx); ok {
			return s, nil
		}
	}
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if uc.cache != nil {
		uc.cache.SetSettings(ctx, s)
	}
	return s, nil
}

// Update aplica cambios parciales a los ajustes. Solo gestores y
// administradores; el consecutivo de facturación no se toca por esta vía.
func (uc *UseCase) Update(ctx context.Context, actor *entity.User, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if !authz.CanManageSettings(actor) {
		return nil, domain.ErrForbidden
	}
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}

	applyStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	applyStr(&s.AgencyName, in.AgencyName)
	applyStr(&s.LegalName, in.LegalName)
	applyStr(&s.TaxID, in.TaxID)
	applyStr(&s.Address, in.Address)
	applyStr(&s.Phone, in.Phone)
	applyStr(&s.Email, in.Email)
	applyStr(&s.LogoPath, in.LogoPath)
	applyStr(&s.Currency, in.Currency)
	applyStr(&s.InvoicePrefix, in.InvoicePrefix)
	applyStr(&s.ContractTemplate, in.ContractTemplate)
	applyStr(&s.VoucherMessage, in.VoucherMessage)
	applyStr(&s.InvoiceFooter, in.InvoiceFooter)
	if in.TaxRate != nil {
		s.TaxRate = *in.TaxRate
	}
	s.UpdatedBy = actor.ID
	s.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.InvalidateSettings(ctx)
	}
	return toResponse(s), nil
}

func toResponse(s *entity.BusinessSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		ID:               s.ID,
		AgencyName:       s.AgencyName,
		LegalName:        s.LegalName,
		TaxID:            s.TaxID,
		Address:          s.Address,
		Phone:            s.Phone,
		Email:            s.Email,
		LogoPath:         s.LogoPath,
		Currency:         s.Currency,
		TaxRate:          s.TaxRate,
		InvoicePrefix:    s.InvoicePrefix,
		NextInvoiceSeq:   s.NextInvoiceSeq,
		ContractTemplate: s.ContractTemplate,
		VoucherMessage:   s.VoucherMessage,
		InvoiceFooter:    s.InvoiceFooter,
		UpdatedAt:        s.UpdatedAt,
	}
}
