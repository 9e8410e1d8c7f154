package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/pkg/queryx"
)

// StaffFilter narrows staff listings. Nil/empty fields are ignored.
type StaffFilter struct {
	Status string
	Role   string
	Order  *queryx.Ordering
}

type StaffRepo interface {
	Create(ctx context.Context, s *model.Staff) error
	Update(ctx context.Context, s *model.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	GetByAuthSubject(ctx context.Context, subject string) (*model.Staff, error)
	List(ctx context.Context, f StaffFilter) ([]model.Staff, error)
}

type staffRepo struct{ db *gorm.DB }

func NewStaffRepo(db *gorm.DB) StaffRepo {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, s *model.Staff) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "staff")
}

func (r *staffRepo) Update(ctx context.Context, s *model.Staff) error {
	return translate(r.db.WithContext(ctx).Save(s).Error, "staff")
}

func (r *staffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&model.Staff{}, "id = ?", id).Error, "staff")
}

func (r *staffRepo) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var s model.Staff
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err, "staff")
	}
	return &s, nil
}

func (r *staffRepo) GetByAuthSubject(ctx context.Context, subject string) (*model.Staff, error) {
	var s model.Staff
	if err := r.db.WithContext(ctx).First(&s, "auth_subject = ?", subject).Error; err != nil {
		return nil, translate(err, "staff")
	}
	return &s, nil
}

func (r *staffRepo) List(ctx context.Context, f StaffFilter) ([]model.Staff, error) {
	q := r.db.WithContext(ctx).Model(&model.Staff{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Order != nil {
		q = q.Order(f.Order.Clause())
	} else {
		q = q.Order("last_name ASC, first_name ASC")
	}

	var items []model.Staff
	return items, translate(q.Find(&items).Error, "staff")
}
