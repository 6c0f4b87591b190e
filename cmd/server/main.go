package main

import (
	"context"
	"fmt"
	"log"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/api"
	"github.com/qs3c/gym_go_server/internal/api/handler"
	"github.com/qs3c/gym_go_server/internal/database"
	"github.com/qs3c/gym_go_server/internal/pkg/cron"
	"github.com/qs3c/gym_go_server/internal/pkg/email"
	"github.com/qs3c/gym_go_server/internal/pkg/oss"
	"github.com/qs3c/gym_go_server/internal/pkg/pubsub"
	"github.com/qs3c/gym_go_server/internal/pkg/queue"
	"github.com/qs3c/gym_go_server/internal/pkg/ws"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS（可选）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	// 初始化邮件服务（可选，未配置 SMTP 时跳过欢迎邮件）
	var emailService *email.Service
	if cfg.Email.SMTPHost != "" {
		emailService = email.NewService(&cfg.Email)
		log.Println("Email service initialized")
	}

	// 初始化 Queue 和 Pub/Sub
	receiptQueue := queue.NewQueue(rdb, cfg.Queue.ReceiptQueue)
	publisher := pubsub.NewPublisher(rdb)
	subscriber := pubsub.NewSubscriber(rdb)

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// 营业事件转发到在线的管理端仪表盘
	go func() {
		err := subscriber.Subscribe(context.Background(), func(event *pubsub.EventMessage) {
			if err := wsHub.Broadcast(&ws.Message{Type: event.Type, Data: event}); err != nil {
				log.Printf("Failed to broadcast event %s: %v", event.Type, err)
			}
		})
		if err != nil && err != context.Canceled {
			log.Printf("Event subscriber stopped: %v", err)
		}
	}()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, memberRepo, trainerRepo, emailService, cfg)
	memberService := service.NewMemberService(memberRepo, ossClient, cfg)
	membershipService := service.NewMembershipService(membershipRepo, memberRepo, cfg)
	paymentService := service.NewPaymentService(paymentRepo, memberRepo, membershipRepo, receiptQueue, publisher, cfg)
	attendanceService := service.NewAttendanceService(attendanceRepo, membershipRepo, memberRepo, publisher)
	dashboardService := service.NewDashboardService(memberRepo, membershipRepo, paymentRepo, attendanceRepo)

	// 启动定时任务（每日会籍过期核对）
	cronService := cron.NewService(membershipService)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)
	membershipHandler := handler.NewMembershipHandler(membershipService, memberService)
	paymentHandler := handler.NewPaymentHandler(paymentService, memberService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService, memberService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	plansHandler := handler.NewPlansHandler(cfg)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		memberHandler,
		membershipHandler,
		paymentHandler,
		attendanceHandler,
		dashboardHandler,
		plansHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
