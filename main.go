package main

import (
	"fmt"
	"log"

	"crmsystem-backend/config"
	"crmsystem-backend/models"
	"crmsystem-backend/routes"
	"crmsystem-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := config.NewLogger(cfg)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Customer{},
		&models.Product{},
		&models.Tag{},
		&models.Order{},
		&models.CustomerQuery{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	mailer := services.NewSMTPMailer(cfg)

	var sms services.SMSSender
	if cfg.TwilioEnabled() {
		sms = services.NewTwilioSender(cfg)
	}

	billing := services.NewBillingService(db)
	accounts := services.NewAccountService(db, logger)
	notifier := services.NewNotificationService(mailer, sms, cfg.Admin.Email, logger)

	if cfg.Digest.Enabled {
		digest := services.NewDigestService(billing, mailer, cfg, logger)
		if _, err := digest.StartScheduler(); err != nil {
			log.Fatalf("digest scheduler: %v", err)
		}
	}

	r := routes.SetupRouter(db, cfg, logger, billing, accounts, notifier)
	printRoutes(r)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
