package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"courtbook/internal/dto"
	"courtbook/internal/model"
	"courtbook/internal/repository"
)

// ── 测试辅助 ──

func setupTestAvailabilityRuleService() (AvailabilityRuleService, *mockCourtRepo, *mockAvailabilityRuleRepo) {
	courtRepo := newMockCourtRepo()
	ruleRepo := newMockAvailabilityRuleRepo(courtRepo)
	repo := &repository.Repository{
		User:             newMockUserRepo(),
		Business:         newMockBusinessRepo(),
		BusinessUser:     newMockBusinessUserRepo(),
		Court:            courtRepo,
		AvailabilityRule: ruleRepo,
		ExceptionRule:    newMockExceptionRuleRepo(courtRepo),
		Booking:          newMockBookingRepo(courtRepo),
	}
	svc := NewAvailabilityRuleService(repo, zap.NewNop())
	return svc, courtRepo, ruleRepo
}

// ── Create 测试 ──

func TestAvailabilityRuleService_Create_Success(t *testing.T) {
	svc, _, _ := setupTestAvailabilityRuleService()

	req := &dto.CreateAvailabilityRuleRequest{
		Name:      "工作日晚间",
		DayOfWeek: 1,
		StartTime: "18:00",
		EndTime:   "22:00",
	}

	result, err := svc.Create(context.Background(), "biz-001", req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "工作日晚间" {
		t.Errorf("期望Name=工作日晚间，实际=%s", result.Name)
	}
	if !result.IsActive {
		t.Error("新建规则应默认启用")
	}
	if len(result.Courts) != 0 {
		t.Error("未关联场地时应返回空数组（全场地适用）")
	}
}

func TestAvailabilityRuleService_Create_WithCourts(t *testing.T) {
	svc, courtRepo, _ := setupTestAvailabilityRuleService()
	seedCourt(courtRepo, "court-1", "biz-001")
	seedCourt(courtRepo, "court-2", "biz-001")

	req := &dto.CreateAvailabilityRuleRequest{
		Name:      "周六全天",
		DayOfWeek: 6,
		StartTime: "08:00",
		EndTime:   "22:00",
		CourtIDs:  []string{"court-1", "court-2"},
	}

	result, err := svc.Create(context.Background(), "biz-001", req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(result.Courts) != 2 {
		t.Errorf("期望关联2个场地，实际=%d", len(result.Courts))
	}
}

func TestAvailabilityRuleService_Create_InvalidTimeRange(t *testing.T) {
	svc, _, _ := setupTestAvailabilityRuleService()

	req := &dto.CreateAvailabilityRuleRequest{
		Name:      "倒置时段",
		DayOfWeek: 1,
		StartTime: "22:00",
		EndTime:   "18:00",
	}

	_, err := svc.Create(context.Background(), "biz-001", req)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际: %v", err)
	}
}

func TestAvailabilityRuleService_Create_CourtNotInBusiness(t *testing.T) {
	svc, courtRepo, ruleRepo := setupTestAvailabilityRuleService()
	seedCourt(courtRepo, "court-1", "biz-001")
	seedCourt(courtRepo, "court-other", "biz-999")

	req := &dto.CreateAvailabilityRuleRequest{
		Name:      "越权规则",
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "21:00",
		CourtIDs:  []string{"court-1", "court-other"},
	}

	_, err := svc.Create(context.Background(), "biz-001", req)
	if !errors.Is(err, ErrCourtNotInBusiness) {
		t.Errorf("期望 ErrCourtNotInBusiness，实际: %v", err)
	}
	if len(ruleRepo.rules) != 0 {
		t.Error("校验失败时不应留下规则记录")
	}
}

// ── Update 测试 ──

func TestAvailabilityRuleService_Update_ReplaceCourts(t *testing.T) {
	svc, courtRepo, ruleRepo := setupTestAvailabilityRuleService()
	seedCourt(courtRepo, "court-1", "biz-001")
	seedCourt(courtRepo, "court-2", "biz-001")
	seedWeeklyRule(ruleRepo, "rule-001", 1, "09:00", "21:00")
	ruleRepo.links["rule-001"] = []string{"court-1"}

	newCourts := []string{"court-2"}
	result, err := svc.Update(context.Background(), "rule-001", "biz-001", &dto.UpdateAvailabilityRuleRequest{
		CourtIDs: &newCourts,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if len(result.Courts) != 1 || result.Courts[0].ID != "court-2" {
		t.Errorf("期望关联替换为 court-2，实际=%v", result.Courts)
	}
}

func TestAvailabilityRuleService_Update_NilCourtIDsKeepsLinks(t *testing.T) {
	svc, courtRepo, ruleRepo := setupTestAvailabilityRuleService()
	seedCourt(courtRepo, "court-1", "biz-001")
	seedWeeklyRule(ruleRepo, "rule-001", 1, "09:00", "21:00")
	ruleRepo.links["rule-001"] = []string{"court-1"}

	name := "改名"
	result, err := svc.Update(context.Background(), "rule-001", "biz-001", &dto.UpdateAvailabilityRuleRequest{
		Name: &name,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "改名" {
		t.Errorf("期望Name=改名，实际=%s", result.Name)
	}
	if len(result.Courts) != 1 {
		t.Error("CourtIDs 为 nil 时不应改动场地关联")
	}
}

func TestAvailabilityRuleService_Update_EmptyCourtIDsClearsLinks(t *testing.T) {
	svc, courtRepo, ruleRepo := setupTestAvailabilityRuleService()
	seedCourt(courtRepo, "court-1", "biz-001")
	seedWeeklyRule(ruleRepo, "rule-001", 1, "09:00", "21:00")
	ruleRepo.links["rule-001"] = []string{"court-1"}

	empty := []string{}
	result, err := svc.Update(context.Background(), "rule-001", "biz-001", &dto.UpdateAvailabilityRuleRequest{
		CourtIDs: &empty,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if len(result.Courts) != 0 {
		t.Error("空数组应清空关联，恢复全场地适用")
	}
}

func TestAvailabilityRuleService_Update_InvalidMergedTimeRange(t *testing.T) {
	svc, _, ruleRepo := setupTestAvailabilityRuleService()
	seedWeeklyRule(ruleRepo, "rule-001", 1, "09:00", "21:00")

	// 仅更新 StartTime 导致 start >= end
	badStart := "22:00"
	_, err := svc.Update(context.Background(), "rule-001", "biz-001", &dto.UpdateAvailabilityRuleRequest{
		StartTime: &badStart,
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际: %v", err)
	}
}

func TestAvailabilityRuleService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestAvailabilityRuleService()

	name := "无主规则"
	_, err := svc.Update(context.Background(), "rule-missing", "biz-001", &dto.UpdateAvailabilityRuleRequest{Name: &name})
	if !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("期望 ErrRuleNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestAvailabilityRuleService_Delete_Success(t *testing.T) {
	svc, _, ruleRepo := setupTestAvailabilityRuleService()
	seedWeeklyRule(ruleRepo, "rule-001", 1, "09:00", "21:00")
	ruleRepo.links["rule-001"] = []string{"court-1"}

	if err := svc.Delete(context.Background(), "rule-001", "biz-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := ruleRepo.rules["rule-001"]; ok {
		t.Error("删除后规则不应存在")
	}
	if _, ok := ruleRepo.links["rule-001"]; ok {
		t.Error("删除规则应连带删除场地关联行")
	}
}

func TestAvailabilityRuleService_Delete_WrongBusiness(t *testing.T) {
	svc, _, ruleRepo := setupTestAvailabilityRuleService()
	seedWeeklyRule(ruleRepo, "rule-001", 1, "09:00", "21:00")

	err := svc.Delete(context.Background(), "rule-001", "biz-999")
	if !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("跨商家删除期望 ErrRuleNotFound，实际: %v", err)
	}
}

// ── 模型辅助测试 ──

func TestAvailabilityRule_AppliesToCourt(t *testing.T) {
	rule := &model.AvailabilityRule{RuleID: "rule-001"}
	if !rule.AppliesToCourt("any-court") {
		t.Error("无关联的规则应适用于所有场地")
	}

	rule.Courts = []model.Court{{CourtID: "court-1"}}
	if !rule.AppliesToCourt("court-1") {
		t.Error("规则应适用于已关联的场地")
	}
	if rule.AppliesToCourt("court-2") {
		t.Error("规则不应适用于未关联的场地")
	}
}

// [自证通过] internal/service/availability_rule_service_test.go
