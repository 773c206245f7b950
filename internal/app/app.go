package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cliphub/pkg/cache"
	"cliphub/pkg/config"
	"cliphub/pkg/database"
	"cliphub/pkg/jwt"
	"cliphub/pkg/logger"
	"cliphub/pkg/middleware"
	"cliphub/pkg/queue"
	"cliphub/pkg/s3"

	accountHTTP "cliphub/internal/controller/http"
	"cliphub/internal/repo/persistent"
	"cliphub/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "cliphub/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis, rate limiting disabled: %v", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ, account events disabled: %v", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenExpiry,
		cfg.RefreshTokenExpiry,
	)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Repositories
	userRepo := persistent.NewUserRepository(a.db)
	channelRepo := persistent.NewChannelRepository(a.db)
	watchRepo := persistent.NewWatchHistoryRepository(a.db)

	// A nil *queue.Client must become a nil interface, not a typed nil.
	var events usecase.EventPublisher
	if a.queueClient != nil {
		events = a.queueClient
	}

	// Use cases
	accountUseCase := usecase.NewAccountUseCase(userRepo, a.jwtService, a.s3Client, events, a.log)
	channelUseCase := usecase.NewChannelUseCase(userRepo, channelRepo, watchRepo, events, a.log)

	// HTTP handlers
	accountHandler := accountHTTP.NewAccountHandler(accountUseCase)
	channelHandler := accountHTTP.NewChannelHandler(channelUseCase)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGuard := middleware.AuthMiddleware(a.jwtService)

	// Login and register get a per-IP limiter when redis is around.
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if a.redisClient == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute), h}
	}

	api := r.Group("/api/v1")
	users := api.Group("/users")
	{
		users.POST("/register", limited(accountHandler.Register)...)
		users.POST("/login", limited(accountHandler.Login)...)
		users.POST("/refresh-token", accountHandler.RefreshTokens)

		users.GET("/channel/:username", middleware.OptionalAuth(a.jwtService), channelHandler.GetChannelProfile)

		protected := users.Group("")
		protected.Use(authGuard)
		{
			protected.POST("/logout", accountHandler.Logout)
			protected.GET("/me", accountHandler.Me)
			protected.PATCH("/change-password", accountHandler.ChangePassword)
			protected.PATCH("/update-account", accountHandler.UpdateAccount)
			protected.PATCH("/avatar", accountHandler.UpdateAvatar)
			protected.PATCH("/cover-image", accountHandler.UpdateCoverImage)
			protected.GET("/watch-history", channelHandler.GetWatchHistory)
			protected.POST("/watch-history/:video_id", channelHandler.RecordWatch)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Account service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down account service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		a.queueClient.Close()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Account service exited")
	return nil
}
