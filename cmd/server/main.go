package main

import (
	"EmployeeManager/internal/config"
	"EmployeeManager/internal/handlers"
	"EmployeeManager/internal/middleware"
	"EmployeeManager/internal/repo"
	"EmployeeManager/internal/service"
	"EmployeeManager/internal/validation"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repo.OpenStore(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}()

	// БД может быть ещё недоступна: сервер стартует, /health покажет disconnected
	readyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := store.Ready(readyCtx); err != nil {
		sugar.Warnw("database is not ready", "error", err)
	}
	cancel()

	if cfg.AuthSecret == "" {
		cfg.AuthSecret = randomSecret()
		sugar.Warnw("AUTH_SECRET is empty, tokens will not survive restart")
	}

	employeeRepo := repo.NewEmployeeRepository(store.DB)
	attachmentRepo := repo.NewAttachmentRepository(store.DB)

	employeeService := service.NewEmployeeService(employeeRepo, attachmentRepo, validation.MustNew(), sugar)
	dashboardService := service.NewDashboardService(repo.NewDashboardRepository(store.DB))
	fileService := service.NewFileService(employeeRepo, attachmentRepo, repo.NewBlobRepository(store.DB), cfg.BlobMaxSizeMB, sugar)
	userService := service.NewUserService(repo.NewUserRepository(store.DB))

	if cfg.AdminPassword != "" {
		seedCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		created, err := userService.EnsureUser(seedCtx, cfg.AdminLogin, cfg.AdminPassword, cfg.AdminName, cfg.AdminEmail)
		cancel()
		switch {
		case err != nil:
			sugar.Warnw("failed to seed user", "login", cfg.AdminLogin, "error", err)
		case created:
			sugar.Infow("user created", "login", cfg.AdminLogin)
		}
	}

	h := handlers.NewHandler(employeeService, dashboardService, fileService, userService, store, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	sugar.Infow(
		"Starting server",
		"addr", srv.Addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"Postgres", repo.IsPostgresDSN(cfg.DatabaseDSN),
		"BlobMaxSizeMB", cfg.BlobMaxSizeMB,
		"TokenTTLMinutes", cfg.TokenTTLMinutes,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("graceful shutdown failed", "error", err)
		}
	}
}

// randomSecret — секрет подписи токенов на время жизни процесса.
func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
