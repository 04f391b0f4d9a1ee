package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"congrego/internal/config"
	"congrego/internal/database"
	"congrego/internal/middleware"
	"congrego/internal/modules/auth"
	"congrego/internal/modules/booking"
	"congrego/internal/modules/feed"
	"congrego/internal/modules/member"
	"congrego/internal/modules/room"
	"congrego/internal/modules/scale"
	"congrego/internal/modules/stats"
	"congrego/internal/modules/user"
	jwtsvc "congrego/internal/pkg/jwt"
	"congrego/internal/repository"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	scaleRepo := repository.NewScaleRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := feed.NewHub(logger)
	defer hub.Close()

	authHandler := auth.NewHandler(auth.NewService(userRepo, j, cfg.StoreTimeout))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, roomRepo, hub, cfg.StoreTimeout))
	roomHandler := room.NewHandler(room.NewService(roomRepo, cfg.StoreTimeout))
	memberHandler := member.NewHandler(member.NewService(memberRepo, cfg.StoreTimeout))
	scaleHandler := scale.NewHandler(scale.NewService(scaleRepo, cfg.StoreTimeout))
	userHandler := user.NewHandler(user.NewService(userRepo, cfg.StoreTimeout))
	statsHandler := stats.NewHandler(stats.NewService(roomRepo, bookingRepo, userRepo, memberRepo, cfg.StoreTimeout))
	feedHandler := feed.NewHandler(hub, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.RequestLogger(logger),
		middleware.CORS(),
		middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		middleware.Authenticate(j),
	)

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	feedHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		roomHandler.RegisterRoutes(v1)
		memberHandler.RegisterRoutes(v1)
		scaleHandler.RegisterRoutes(v1)
		userHandler.RegisterRoutes(v1)
		statsHandler.RegisterRoutes(v1)
	}

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err == nil {
		zcfg.Level = lvl
	}
	return zcfg.Build()
}
