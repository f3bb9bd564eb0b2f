package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"uptask/docs"
	"uptask/internal/auth"
	"uptask/internal/cache"
	"uptask/internal/config"
	"uptask/internal/db"
	"uptask/internal/handler"
	"uptask/internal/logging"
	"uptask/internal/mail"
	"uptask/internal/metrics"
	"uptask/internal/router"
	"uptask/internal/service"
)

// @title UpTask API
// @version 1.0
// @description Project management API: accounts, projects, collaborators and tasks.
// @host localhost:4000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logging.Sync(logger) }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()
	logger.Info("store ready", zap.String("driver", cfg.StoreDriver))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
	}

	m := metrics.New()

	composer := mail.NewComposer(cfg.FrontendURL)
	var mailer mail.Sender
	if cfg.SMTPEnabled() {
		dialer := mail.NewSMTPDialer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPass)
		mailer = mail.NewSMTPSender(dialer, cfg.EmailFrom, composer, m)
	} else {
		logger.Warn("email_host not set, emails will only be logged")
		mailer = mail.NewLogSender(composer, logger)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	userService := service.NewUserService(repos.Users, cacheClient, mailer, auth.NewOneTimeToken)
	authService := service.NewAuthService(repos.Users, jwtService, tokenStore)
	projectService := service.NewProjectService(repos.Projects, repos.Tasks, repos.Users)
	taskService := service.NewTaskService(repos.Tasks, repos.Projects)

	guard := auth.NewGuard(jwtService, tokenStore, userService)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HidePort = true
	router.Register(e, cfg, logger, m, guard.Middleware(), router.Handlers{
		Users:    handler.NewUserHandler(userService, authService),
		Projects: handler.NewProjectHandler(projectService),
		Tasks:    handler.NewTaskHandler(taskService),
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr()))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
