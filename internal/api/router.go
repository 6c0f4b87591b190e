package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/api/handler"
	"github.com/qs3c/gym_go_server/internal/api/middleware"
	"github.com/qs3c/gym_go_server/internal/model"
)

type Router struct {
	authHandler       *handler.AuthHandler
	memberHandler     *handler.MemberHandler
	membershipHandler *handler.MembershipHandler
	paymentHandler    *handler.PaymentHandler
	attendanceHandler *handler.AttendanceHandler
	dashboardHandler  *handler.DashboardHandler
	plansHandler      *handler.PlansHandler
	websocketHandler  *handler.WebSocketHandler
	cfg               *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	membershipHandler *handler.MembershipHandler,
	paymentHandler *handler.PaymentHandler,
	attendanceHandler *handler.AttendanceHandler,
	dashboardHandler *handler.DashboardHandler,
	plansHandler *handler.PlansHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:       authHandler,
		memberHandler:     memberHandler,
		membershipHandler: membershipHandler,
		paymentHandler:    paymentHandler,
		attendanceHandler: attendanceHandler,
		dashboardHandler:  dashboardHandler,
		plansHandler:      plansHandler,
		websocketHandler:  websocketHandler,
		cfg:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 会员端价目表
		api.GET("/plans", r.plansHandler.ListMember)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 会籍
			memberships := authenticated.Group("/memberships")
			{
				// 会员查询自己的会籍状态
				memberships.GET("/status", r.membershipHandler.Status)

				// 会籍 CRUD 仅管理端
				admin := memberships.Group("")
				admin.Use(middleware.RequireRole(model.RoleAdmin))
				{
					admin.POST("", r.membershipHandler.Create)
					admin.GET("", r.membershipHandler.List)
					admin.GET("/:id", r.membershipHandler.Get)
					admin.PUT("/:id", r.membershipHandler.Update)
					admin.DELETE("/:id", r.membershipHandler.Delete)
				}
			}

			// 支付
			payments := authenticated.Group("/payments")
			{
				payments.POST("", r.paymentHandler.Create)
				payments.GET("/mine", r.paymentHandler.ListMine)
				payments.GET("/:id/receipt", r.paymentHandler.Receipt)
				payments.GET("", middleware.RequireRole(model.RoleAdmin), r.paymentHandler.List)
			}

			// 会员档案（管理端）
			members := authenticated.Group("/members")
			members.Use(middleware.RequireRole(model.RoleAdmin))
			{
				members.GET("", r.memberHandler.List)
				members.GET("/:id", r.memberHandler.Get)
				members.PUT("/:id", r.memberHandler.Update)
				members.POST("/:id/photo", r.memberHandler.UploadPhoto)
			}

			// 入场
			attendance := authenticated.Group("/attendance")
			{
				attendance.POST("/checkin", r.attendanceHandler.CheckIn)
				attendance.POST("/:id/checkout", r.attendanceHandler.CheckOut)
				attendance.GET("/mine", r.attendanceHandler.ListMine)
				attendance.GET("", middleware.RequireRole(model.RoleAdmin), r.attendanceHandler.List)
			}

			// 管理端
			adminAPI := authenticated.Group("/admin")
			adminAPI.Use(middleware.RequireRole(model.RoleAdmin))
			{
				adminAPI.GET("/dashboard", r.dashboardHandler.Stats)
				adminAPI.GET("/plans", r.plansHandler.ListAdmin)
			}
		}
	}

	return engine
}
