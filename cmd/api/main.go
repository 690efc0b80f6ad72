package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"surveyhub/internal/config"
	"surveyhub/internal/database"
	"surveyhub/internal/middleware"
	"surveyhub/internal/modules/auth"
	"surveyhub/internal/modules/conductor"
	"surveyhub/internal/modules/participant"
	jwtsvc "surveyhub/internal/pkg/jwt"
	"surveyhub/internal/repository"
	"surveyhub/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}
	if err := database.SeedRoles(context.Background(), db); err != nil {
		log.Fatalf("role seed failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	conductorRepo := repository.NewConductorRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	signer := jwtsvc.New(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL)

	authService := auth.NewService(userRepo, roleRepo, tokenRepo, signer, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:      cfg.CookieSecure,
		SameSite:    sameSiteFromName(cfg.CookieSameSite),
		RefreshPath: cfg.RefreshCookiePath,
		AccessTTL:   cfg.AccessTTL,
		RefreshTTL:  cfg.RefreshTTL,
	})

	conductorHandler := conductor.NewHandler(conductor.NewService(conductorRepo))
	participantHandler := participant.NewHandler(participant.NewService(participantRepo))

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unreachable, rate limiting disabled: %v", err)
			rdb = nil
		}
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		public := v1.Group("/")
		public.Use(middleware.RateLimit(rdb, 10, time.Minute))
		authHandler.RegisterPublicRoutes(public)

		session := v1.Group("/")
		session.Use(middleware.RateLimit(rdb, 30, time.Minute), middleware.CSRF(),
			middleware.AuditTrail(auditRepo, "session"))
		authHandler.RegisterSessionRoutes(session)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(signer), middleware.CSRF())
		{
			authHandler.RegisterProtectedRoutes(protected)
			conductorHandler.RegisterProtectedRoutes(protected)
			participantHandler.RegisterProtectedRoutes(protected)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(signer), middleware.CSRF(), middleware.AdminOnly(),
			middleware.AuditTrail(auditRepo, "admin"))
		{
			authHandler.RegisterAdminRoutes(admin)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewSweeper(tokenRepo, cfg.SweepInterval, cfg.SweepErrorRetry)
	go sweeper.Run(ctx)

	srv := &http.Server{Addr: ":8080", Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func sameSiteFromName(name string) http.SameSite {
	switch strings.ToLower(name) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
