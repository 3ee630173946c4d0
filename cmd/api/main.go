package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/office-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/loginid"
	"github.com/cmlabs-hris/office-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/office-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/office-backend-go/internal/service/auth"
	leaveService "github.com/cmlabs-hris/office-backend-go/internal/service/leave"
	meetingService "github.com/cmlabs-hris/office-backend-go/internal/service/meeting"
	taskService "github.com/cmlabs-hris/office-backend-go/internal/service/task"
	userService "github.com/cmlabs-hris/office-backend-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	tx := postgresql.NewTransactor(db)
	loc := cfg.Location()

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	meetingRepo := postgresql.NewMeetingRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return fmt.Errorf("error initializing jwt service: %w", err)
	}
	allocator := loginid.New(loginid.Config{
		Prefixes: cfg.LoginID.Prefixes,
		Fallback: cfg.LoginID.FallbackPrefix,
		Width:    cfg.LoginID.Width,
		Logger:   logger,
	})

	authSvc := serviceAuth.NewAuthService(tx, userRepo, JWTService, JWTRepository)
	userSvc := userService.NewUserService(tx, userRepo, JWTRepository, allocator, cfg.LoginID.MaxAttempts, logger)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, loc)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRequestRepo, userRepo, logger)
	taskSvc := taskService.NewTaskService(taskRepo, userRepo)
	meetingSvc := meetingService.NewMeetingService(meetingRepo)

	router := appHTTP.NewRouter(
		logger,
		cfg.App.AllowedOrigins,
		JWTService,
		appHTTP.NewAuthHandler(JWTService, authSvc),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewTaskHandler(taskSvc),
		appHTTP.NewMeetingHandler(meetingSvc),
	)

	scheduler := cron.NewScheduler(logger)
	cron.NewTokenJobs(JWTRepository, logger).RegisterJobs(scheduler, cfg.Cron.TokenPurgeInterval)
	cron.NewAttendanceJobs(attendanceRepo, loc, logger).RegisterJobs(scheduler, cfg.Cron.AbsenceSweepInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", "http://localhost"+server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "office-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
