package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-portal/internal/handler/http"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/holiday"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-portal/internal/repository/postgresql"
	aggregatorService "github.com/cmlabs-hris/attendance-portal/internal/service/aggregator"
	calendarService "github.com/cmlabs-hris/attendance-portal/internal/service/calendar"
	quickActionService "github.com/cmlabs-hris/attendance-portal/internal/service/quickaction"
	"github.com/cmlabs-hris/attendance-portal/internal/service/realtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Invalid timezone", "timezone", cfg.App.Timezone, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db, loc)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	adjustmentRequestRepo := postgresql.NewAdjustmentRequestRepository(db, loc)
	workPatternRequestRepo := postgresql.NewWorkPatternRequestRepository(db)
	holidayRequestRepo := postgresql.NewHolidayRequestRepository(db)
	customHolidayRepo := postgresql.NewCustomHolidayRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.StreamTokenTTL)
	holidays := holiday.NewCalendar(cfg.Holiday.MinYear, cfg.Holiday.MaxYear)
	hub := sse.NewHub()

	aggregator := aggregatorService.NewAggregatorService(leaveRequestRepo, adjustmentRequestRepo, workPatternRequestRepo, holidayRequestRepo)
	engine := calendarService.NewEngine(aggregator, attendanceRepo, customHolidayRepo, holidays, loc)
	manager := realtime.NewManager(engine, hub, cfg.Sync.Interval, cfg.Sync.IdleTimeout)
	quickActions := quickActionService.NewQuickActionService(manager, cfg.Sync.PopoverMinDisplay)

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(manager, cfg.Sync.EvictInterval).RegisterJobs(scheduler)
	scheduler.Start()

	calendarHandler := appHTTP.NewCalendarHandler(manager, JWTService, engine.Today)
	quickActionHandler := appHTTP.NewQuickActionHandler(quickActions)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.AllowedOrigins(),
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		calendarHandler,
		quickActionHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
	manager.Shutdown()
}
