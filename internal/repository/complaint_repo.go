package repository

import (
	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
)

type ComplaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(complaint *model.Complaint) error {
	return r.db.Create(complaint).Error
}

func (r *ComplaintRepository) GetByID(id int64) (*model.Complaint, error) {
	var complaint model.Complaint
	err := r.db.Where("id = ?", id).First(&complaint).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *ComplaintRepository) Update(complaint *model.Complaint) error {
	return r.db.Save(complaint).Error
}

func (r *ComplaintRepository) Delete(id int64) error {
	return r.db.Delete(&model.Complaint{}, id).Error
}

func (r *ComplaintRepository) ListByUserID(userID int64) ([]*model.Complaint, error) {
	var complaints []*model.Complaint
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

func (r *ComplaintRepository) ListAll() ([]*model.Complaint, error) {
	var complaints []*model.Complaint
	err := r.db.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}
