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

	"github.com/cmlabs-hris/bancaore-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/bancaore-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/bancaore-backend-go/internal/service/attendance"
	ledgerService "github.com/cmlabs-hris/bancaore-backend-go/internal/service/ledger"
	recoveryService "github.com/cmlabs-hris/bancaore-backend-go/internal/service/recovery"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "bancaore"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Invalid timezone", "timezone", cfg.App.Timezone, "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	leaveOverrideRepo := postgresql.NewLeaveOverrideRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	recoveryRepo := postgresql.NewRecoveryRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		workScheduleRepo,
		leaveOverrideRepo,
		loc,
	)
	ledgerSvc := ledgerService.NewLedgerService(
		ledgerRepo,
		workScheduleRepo,
		attendanceSvc,
		cfg.Ledger.DebtorThreshold,
		loc,
	)
	recoverySvc := recoveryService.NewRecoveryService(
		txManager,
		recoveryRepo,
		ledgerRepo,
		workScheduleRepo,
		ledgerSvc,
		recoveryService.Config{
			HoursTolerance: cfg.Ledger.HoursTolerance,
			SlotFirst:      cfg.Recovery.SlotFirst,
			SlotLast:       cfg.Recovery.SlotLast,
		},
		loc,
	)

	scheduler := cron.NewScheduler(loc)
	if err := cron.NewRecoveryJobs(recoverySvc).RegisterJobs(scheduler, cfg.Ledger.SettlementSpec); err != nil {
		slog.Error("Failed to register recovery jobs", "error", err)
		os.Exit(1)
	}
	if err := cron.NewAttendanceJobs(attendanceSvc, loc).RegisterJobs(scheduler, cfg.Ledger.FinalizeSpec); err != nil {
		slog.Error("Failed to register attendance jobs", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	router := appHTTP.NewRouter(
		JWTService,
		logger,
		cfg.App.CORSAllowedOrigins,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLedgerHandler(ledgerSvc),
		appHTTP.NewRecoveryHandler(recoverySvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	scheduler.Stop()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
