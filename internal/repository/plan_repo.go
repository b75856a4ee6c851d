package repository

import (
	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(plan *model.Plan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepository) GetByID(id int64) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) GetByName(name string) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("name = ?", name).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) Update(plan *model.Plan) error {
	return r.db.Save(plan).Error
}

func (r *PlanRepository) Delete(id int64) error {
	return r.db.Delete(&model.Plan{}, id).Error
}

// ListActive returns plans currently offered to users.
func (r *PlanRepository) ListActive() ([]*model.Plan, error) {
	var plans []*model.Plan
	err := r.db.Where("is_active = ?", true).Order("price_pkr ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) ListAll() ([]*model.Plan, error) {
	var plans []*model.Plan
	err := r.db.Order("price_pkr ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Plan{}).Count(&count).Error
	return count, err
}
