package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/model/dto"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) GetByID(id int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) Update(payment *model.Payment) error {
	return r.db.Save(payment).Error
}

func (r *PaymentRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.Payment{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *PaymentRepository) Delete(id int64) error {
	return r.db.Delete(&model.Payment{}, id).Error
}

func (r *PaymentRepository) ListByUserID(userID int64) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

// GetLatestByUserID returns the most recent payment of the user, or nil
// when the user never submitted one.
func (r *PaymentRepository) GetLatestByUserID(userID int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListFiltered returns payments matching the admin filter, newest first.
func (r *PaymentRepository) ListFiltered(filter *dto.PaymentFilter) ([]*model.Payment, error) {
	query := r.db.Model(&model.Payment{})

	if filter.UserEmail != "" {
		query = query.Where(
			"user_id IN (?)",
			r.db.Model(&model.User{}).Select("id").Where("email LIKE ?", "%"+filter.UserEmail+"%"),
		)
	}
	if filter.PlanID != 0 {
		query = query.Where("plan_id = ?", filter.PlanID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var payments []*model.Payment
	err := query.Order("created_at DESC").Find(&payments).Error
	return payments, err
}

// SumCompletedAmount totals revenue from completed payments.
func (r *PaymentRepository) SumCompletedAmount() (int64, error) {
	var total int64
	err := r.db.Model(&model.Payment{}).
		Where("status = ?", model.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount_pkr), 0)").Scan(&total).Error
	return total, err
}
