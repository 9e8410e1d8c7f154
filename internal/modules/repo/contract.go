package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/pkg/queryx"
)

type ContractFilter struct {
	Status        string
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	EndDateFrom   *time.Time
	EndDateTo     *time.Time
	Order         *queryx.Ordering
}

type ContractRepo interface {
	Create(ctx context.Context, c *model.Contract) error
	Update(ctx context.Context, c *model.Contract) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	List(ctx context.Context, f ContractFilter) ([]model.Contract, error)
	HasDeliverables(ctx context.Context, id uuid.UUID) (bool, error)
}

type contractRepo struct{ db *gorm.DB }

func NewContractRepo(db *gorm.DB) ContractRepo {
	return &contractRepo{db: db}
}

func (r *contractRepo) Create(ctx context.Context, c *model.Contract) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "contract")
}

func (r *contractRepo) Update(ctx context.Context, c *model.Contract) error {
	return translate(r.db.WithContext(ctx).Save(c).Error, "contract")
}

func (r *contractRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&model.Contract{}, "id = ?", id).Error, "contract")
}

func (r *contractRepo) Get(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var c model.Contract
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err, "contract")
	}
	return &c, nil
}

func (r *contractRepo) List(ctx context.Context, f ContractFilter) ([]model.Contract, error) {
	q := r.db.WithContext(ctx).Model(&model.Contract{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.StartDateFrom != nil {
		q = q.Where("start_date >= ?", *f.StartDateFrom)
	}
	if f.StartDateTo != nil {
		q = q.Where("start_date <= ?", *f.StartDateTo)
	}
	if f.EndDateFrom != nil {
		q = q.Where("end_date >= ?", *f.EndDateFrom)
	}
	if f.EndDateTo != nil {
		q = q.Where("end_date <= ?", *f.EndDateTo)
	}
	if f.Order != nil {
		q = q.Order(f.Order.Clause())
	} else {
		q = q.Order("created_at ASC, id ASC")
	}

	var items []model.Contract
	return items, translate(q.Find(&items).Error, "contract")
}

func (r *contractRepo) HasDeliverables(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Deliverable{}).Where("contract_id = ?", id).Count(&n).Error
	return n > 0, translate(err, "contract")
}
