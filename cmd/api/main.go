package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/config"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/notification"
	appHTTP "github.com/nexter-rh/nexter-backend-go/internal/handler/http"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/cache"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/cron"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/database"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/sse"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/storage"
	"github.com/nexter-rh/nexter-backend-go/internal/repository/document"
	"github.com/nexter-rh/nexter-backend-go/internal/repository/postgresql"
	absenceService "github.com/nexter-rh/nexter-backend-go/internal/service/absence"
	certificateService "github.com/nexter-rh/nexter-backend-go/internal/service/certificate"
	companyService "github.com/nexter-rh/nexter-backend-go/internal/service/company"
	employeeService "github.com/nexter-rh/nexter-backend-go/internal/service/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/service/file"
	financeService "github.com/nexter-rh/nexter-backend-go/internal/service/finance"
	leaveService "github.com/nexter-rh/nexter-backend-go/internal/service/leave"
	movementService "github.com/nexter-rh/nexter-backend-go/internal/service/movement"
	notificationService "github.com/nexter-rh/nexter-backend-go/internal/service/notification"
	overtimeService "github.com/nexter-rh/nexter-backend-go/internal/service/overtime"
	reportService "github.com/nexter-rh/nexter-backend-go/internal/service/report"
	settlementService "github.com/nexter-rh/nexter-backend-go/internal/service/settlement"
	"github.com/nexter-rh/nexter-backend-go/internal/service/sweep"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store     docstore.Store
		notifRepo notification.Repository
	)
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()

		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			log.Fatal("Failed to prepare database schema: ", err)
		}
		store = postgresql.NewDocumentStore(db)
		notifRepo = postgresql.NewNotificationRepository(db)
	case "memory":
		slog.Warn("Using in-memory store, records are lost on restart")
		store = docstore.NewMemoryStore()
		notifRepo = document.NewNotificationRepository(store)
	}

	var companyCache cache.Cache = cache.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer client.Close()
		companyCache = cache.NewRedisCache(client)
	}
	companies := cache.NewReadThrough[company.Company](companyCache, "company", cfg.Redis.TTL)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}
	fileService := file.NewFileService(fileStorage)

	companyRepo := document.NewCompanyRepository(store)
	employeeRepo := document.NewEmployeeRepository(store)
	movementRepo := document.NewMovementRepository(store)
	settlementRepo := document.NewSettlementRepository(store)
	entryRepo := document.NewEntryRepository(store)
	overtimeRepo := document.NewOvertimeRepository(store)
	absenceRepo := document.NewAbsenceRepository(store)
	certRepo := document.NewCertificateRepository(store)
	leaveRepo := document.NewLeaveRepository(store)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	notifSvc := notificationService.NewNotificationService(notifRepo, sse.NewHub(), notificationService.Config{})

	employeeSvc := employeeService.NewEmployeeService(store, employeeRepo, companyRepo, movementRepo, settlementRepo, companies)
	companySvc := companyService.NewCompanyService(store, companyRepo, employeeRepo, companies, employeeSvc)
	movementSvc := movementService.NewMovementService(store, movementRepo, employeeRepo, companyRepo, notifSvc)
	settlementSvc := settlementService.NewSettlementService(store, settlementRepo, entryRepo, employeeRepo, companyRepo, notifSvc)
	financeSvc := financeService.NewFinanceService(store, entryRepo, employeeRepo)
	overtimeSvc := overtimeService.NewOvertimeService(store, overtimeRepo, employeeRepo)
	absenceSvc := absenceService.NewAbsenceService(absenceRepo, employeeRepo, notifSvc)
	certificateSvc := certificateService.NewCertificateService(store, certRepo, leaveRepo, employeeRepo, notifSvc, fileService)
	leaveSvc := leaveService.NewLeaveService(store, leaveRepo, employeeRepo)
	reportSvc := reportService.NewReportService(
		overtimeRepo,
		absenceRepo,
		certRepo,
		leaveRepo,
		employeeRepo,
		entryRepo,
		fileStorage,
	)

	scheduler := cron.NewScheduler()
	sweep.NewSweeper(companyRepo, reportSvc, certificateSvc, notifSvc).Register(scheduler, cfg.Jobs)
	scheduler.Start(ctx)

	router := appHTTP.NewRouter(cfg.App, JWTService, appHTTP.Handlers{
		Company:      appHTTP.NewCompanyHandler(companySvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Movement:     appHTTP.NewMovementHandler(movementSvc),
		Settlement:   appHTTP.NewSettlementHandler(settlementSvc),
		Finance:      appHTTP.NewFinanceHandler(financeSvc),
		Overtime:     appHTTP.NewOvertimeHandler(overtimeSvc),
		Absence:      appHTTP.NewAbsenceHandler(absenceSvc),
		Certificate:  appHTTP.NewCertificateHandler(certificateSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc, JWTService),
		File:         appHTTP.NewFileHandler(fileStorage),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	scheduler.Stop()
	notifSvc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
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
