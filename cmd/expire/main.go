package main

import (
	"log"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/database"
	"github.com/qs3c/gym_go_server/internal/pkg/cron"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/service"
)

// 手动触发一次会籍过期核对，供运维脚本和系统 crontab 调用
func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	membershipRepo := repository.NewMembershipRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	membershipService := service.NewMembershipService(membershipRepo, memberRepo, cfg)

	cronService := cron.NewService(membershipService)
	count, err := cronService.RunNow()
	if err != nil {
		log.Fatalf("Membership expiry failed: %v", err)
	}
	log.Printf("Membership expiry completed, expired: %d", count)
}
