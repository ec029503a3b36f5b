package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"focustrack/internal/config"
	"focustrack/internal/handlers"
	"focustrack/internal/middleware"
	"focustrack/internal/pdf"
	"focustrack/internal/repositories"
	"focustrack/internal/routes"
	"focustrack/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	} else {
		log.Println("WARNING: auth.jwt_secret is empty, using the built-in dev key")
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("Database is unreachable: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	timerRepo := repositories.NewTimerRepository(db)
	entryRepo := repositories.NewEntryRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	// === Services ===
	authService := services.NewAuthService()

	var emailService services.EmailService
	if cfg.Email.SMTPHost != "" {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	} else {
		log.Println("Email: SMTP not configured, welcome emails disabled")
	}

	var telegramService *services.TelegramService
	if cfg.Telegram.BotToken != "" {
		telegramService = services.NewTelegramService(cfg.Telegram.BotToken)
	} else {
		log.Println("Telegram: bot token not configured, notifications disabled")
	}

	userService := services.NewUserService(userRepo, emailService, authService)
	taskService := services.NewTaskService(taskRepo, entryRepo, activityRepo, statsRepo)
	timerService := services.NewTimerService(timerRepo)
	statsService := services.NewStatsService(statsRepo)

	reportGenerator := pdf.NewReportGenerator(cfg.Reports.RootDir)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	timerHandler := handlers.NewTimerHandler(timerService, telegramService, userRepo)
	entryHandler := handlers.NewEntryHandler(entryRepo, activityRepo)
	statsHandler := handlers.NewStatsHandler(statsService, userService, reportGenerator)
	healthHandler := handlers.NewHealthHandler(db)

	// === Router ===
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	routes.SetupRoutes(
		r,
		authHandler,
		taskHandler,
		timerHandler,
		entryHandler,
		statsHandler,
		healthHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Server stopped: ", err)
	}
}
