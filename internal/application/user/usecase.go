package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/andresjj98/appagencia-api/internal/application/auth"
	"github.com/andresjj98/appagencia-api/internal/application/dto"
	"github.com/andresjj98/appagencia-api/internal/domain"
	"github.com/andresjj98/appagencia-api/internal/domain/authz"
	"github.com/andresjj98/appagencia-api/internal/domain/entity"
	"github.com/andresjj98/appagencia-api/internal/domain/repository"
)

// UseCase administración de usuarios y oficinas. Solo administradores (o
// superadmin) pueden usar estas operaciones.
type UseCase struct {
	userRepo   repository.UserRepository
	officeRepo repository.OfficeRepository
}

// NewUseCase construye el caso de uso de administración.
func NewUseCase(userRepo repository.UserRepository, officeRepo repository.OfficeRepository) *UseCase {
	return &UseCase{userRepo: userRepo, officeRepo: officeRepo}
}

// List lista usuarios con paginación.
func (uc *UseCase) List(ctx context.Context, actor *entity.User, page dto.PageRequest) ([]*dto.UserResponse, error) {
	if !authz.CanManageUsers(actor) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.userRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// Get obtiene un usuario. Cada quien puede verse a sí mismo; el resto exige
// permisos de administración.
func (uc *UseCase) Get(ctx context.Context, actor *entity.User, id string) (*dto.UserResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.ID != id && !authz.CanManageUsers(actor) {
		return nil, domain.ErrForbidden
	}
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(u), nil
}

// Update aplica cambios parciales a un usuario. El flag superadmin no se
// administra por API.
func (uc *UseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !authz.CanManageUsers(actor) {
		return nil, domain.ErrForbidden
	}
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		u.Role = *in.Role
	}
	if in.OfficeID != nil {
		u.OfficeID = in.OfficeID
	}
	if in.Status != nil {
		u.Status = *in.Status
	}
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// CreateOffice registra una oficina nueva.
func (uc *UseCase) CreateOffice(ctx context.Context, actor *entity.User, in dto.CreateOfficeRequest) (*dto.OfficeResponse, error) {
	if !authz.CanManageUsers(actor) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	o := &entity.Office{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.officeRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	return toOfficeResponse(o), nil
}

// ListOffices lista oficinas; visible para cualquier usuario autenticado
// (los formularios de reserva las necesitan).
func (uc *UseCase) ListOffices(ctx context.Context, actor *entity.User, page dto.PageRequest) ([]*dto.OfficeResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.officeRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OfficeResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOfficeResponse(o))
	}
	return out, nil
}

func toOfficeResponse(o *entity.Office) *dto.OfficeResponse {
	return &dto.OfficeResponse{
		ID:      o.ID,
		Name:    o.Name,
		Address: o.Address,
		Phone:   o.Phone,
		Email:   o.Email,
	}
}
