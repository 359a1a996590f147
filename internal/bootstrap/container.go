package bootstrap

import (
	"context"
	"log"

	"techjays-chat-be/internal/config"
	"techjays-chat-be/internal/controller"
	"techjays-chat-be/internal/pkg/logger"
	"techjays-chat-be/internal/pkg/mailer"
	"techjays-chat-be/internal/repository/contract"
	"techjays-chat-be/internal/repository/memory"
	"techjays-chat-be/internal/repository/redisstore"
	"techjays-chat-be/internal/repository/unitofwork"
	"techjays-chat-be/internal/service"
	"techjays-chat-be/pkg/gemini"
	"techjays-chat-be/pkg/naming"

	pktNats "techjays-chat-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	OAuthController controller.IOAuthController
	UserController  controller.IUserController
	ChatController  controller.IChatController

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Infrastructure
	// NATS is optional: a nil publisher disables events without breaking
	// the request path.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Active-session store, selected by config
	var activeSessions contract.ActiveSessionRepository
	if cfg.App.SessionStore == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		activeSessions = redisstore.NewActiveSessionRepository(rdb)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		activeSessions = memory.NewActiveSessionRepository()
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// Completion client + naming policy
	if cfg.Gemini.APIKey == "" {
		log.Printf("[WARN] GEMINI_API_KEY is not set; chat replies will degrade to the configured apology")
	}
	completion := gemini.NewClient(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.Temperature,
		cfg.Gemini.MaxOutputTokens,
	)
	namer := naming.NewNamer(completion)

	// 3. Services
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)
	userService := service.NewUserService(uowFactory, activeSessions)
	chatService := service.NewChatService(uowFactory, activeSessions, completion, namer, natsPub)

	sysLogger.Info("bootstrap", "container initialized", map[string]interface{}{
		"session_store": cfg.App.SessionStore,
		"gemini_model":  cfg.Gemini.Model,
		"environment":   cfg.App.Environment,
	})

	// 4. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService),
		OAuthController: controller.NewOAuthController(oauthService),
		UserController:  controller.NewUserController(userService),
		ChatController:  controller.NewChatController(chatService),
		Logger:          sysLogger,
	}
}
