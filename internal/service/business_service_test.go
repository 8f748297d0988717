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

func setupTestBusinessService() (BusinessService, *mockBusinessRepo, *mockBusinessUserRepo) {
	courtRepo := newMockCourtRepo()
	businessRepo := newMockBusinessRepo()
	businessUserRepo := newMockBusinessUserRepo()
	repo := &repository.Repository{
		User:             newMockUserRepo(),
		Business:         businessRepo,
		BusinessUser:     businessUserRepo,
		Court:            courtRepo,
		AvailabilityRule: newMockAvailabilityRuleRepo(courtRepo),
		ExceptionRule:    newMockExceptionRuleRepo(courtRepo),
		Booking:          newMockBookingRepo(courtRepo),
	}
	svc := NewBusinessService(repo, zap.NewNop())
	return svc, businessRepo, businessUserRepo
}

// ── Create 测试 ──

func TestBusinessService_Create_CreatorBecomesOwner(t *testing.T) {
	svc, _, businessUserRepo := setupTestBusinessService()

	result, err := svc.Create(context.Background(), &dto.CreateBusinessRequest{
		Name:    "星光羽毛球馆",
		Address: "建国路88号",
	}, "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "星光羽毛球馆" {
		t.Errorf("期望Name=星光羽毛球馆，实际=%s", result.Name)
	}

	// 创建者应自动成为 OWNER
	bu, err := businessUserRepo.GetByBusinessAndUser(context.Background(), result.ID, "user-001")
	if err != nil {
		t.Fatalf("创建者应有成员记录: %v", err)
	}
	if bu.Role != model.RoleOwner {
		t.Errorf("期望Role=OWNER，实际=%s", bu.Role)
	}
}

// ── GetByID 测试 ──

func TestBusinessService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestBusinessService()

	_, err := svc.GetByID(context.Background(), "biz-missing")
	if !errors.Is(err, ErrBusinessNotFound) {
		t.Errorf("期望 ErrBusinessNotFound，实际: %v", err)
	}
}

// ── ListMine 测试 ──

func TestBusinessService_ListMine(t *testing.T) {
	svc, _, _ := setupTestBusinessService()

	svc.Create(context.Background(), &dto.CreateBusinessRequest{Name: "场馆A"}, "user-001")
	svc.Create(context.Background(), &dto.CreateBusinessRequest{Name: "场馆B"}, "user-001")

	result, err := svc.ListMine(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("ListMine 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("期望2个商家，实际=%d", len(result))
	}
}

// [自证通过] internal/service/business_service_test.go
