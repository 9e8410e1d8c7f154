package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/pkg/errs"
	"github.com/harborline/stafftrack/internal/pkg/policy"
)

type StaffService interface {
	Create(ctx context.Context, actor policy.Actor, s *model.Staff) error
	Update(ctx context.Context, actor policy.Actor, s *model.Staff) error
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.Staff, error)
	List(ctx context.Context, actor policy.Actor, f repo.StaffFilter) ([]model.Staff, error)
}

type staffService struct{ r repo.StaffRepo }

func NewStaffService(r repo.StaffRepo) StaffService {
	return &staffService{r: r}
}

func validateStaff(s *model.Staff) error {
	if !strings.Contains(s.Email, "@") {
		return errs.Validation("email", "must be a valid email address")
	}
	switch s.Status {
	case "", model.StaffStatusActive, model.StaffStatusInactive:
	default:
		return errs.Validation("status", "must be one of active, inactive")
	}
	switch s.Role {
	case "", model.RoleStaff, model.RoleManager, model.RoleAdmin:
	default:
		return errs.Validation("role", "must be one of staff, manager, admin")
	}
	return nil
}

func (s *staffService) Create(ctx context.Context, actor policy.Actor, m *model.Staff) error {
	if err := authorize(actor, policy.ActionCreate, policy.ResourceStaff, nil); err != nil {
		return err
	}
	if err := validateStaff(m); err != nil {
		return err
	}
	return s.r.Create(ctx, m)
}

func (s *staffService) Update(ctx context.Context, actor policy.Actor, m *model.Staff) error {
	if err := authorize(actor, policy.ActionUpdate, policy.ResourceStaff, nil); err != nil {
		return err
	}
	if err := validateStaff(m); err != nil {
		return err
	}
	existing, err := s.r.Get(ctx, m.ID)
	if err != nil {
		return err
	}
	existing.Email = m.Email
	existing.FirstName = m.FirstName
	existing.LastName = m.LastName
	existing.AuthSubject = m.AuthSubject
	if m.Status != "" {
		existing.Status = m.Status
	}
	if m.Role != "" {
		existing.Role = m.Role
	}
	*m = *existing
	return s.r.Update(ctx, existing)
}

func (s *staffService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := authorize(actor, policy.ActionDelete, policy.ResourceStaff, nil); err != nil {
		return err
	}
	if _, err := s.r.Get(ctx, id); err != nil {
		return err
	}
	return s.r.Delete(ctx, id)
}

func (s *staffService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.Staff, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceStaff, nil); err != nil {
		return nil, err
	}
	return s.r.Get(ctx, id)
}

func (s *staffService) List(ctx context.Context, actor policy.Actor, f repo.StaffFilter) ([]model.Staff, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceStaff, nil); err != nil {
		return nil, err
	}
	return s.r.List(ctx, f)
}
