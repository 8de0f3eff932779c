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
	"syscall"
	"time"

	"github.com/pontocerto/pontocerto-backend-go/internal/config"
	appHTTP "github.com/pontocerto/pontocerto-backend-go/internal/handler/http"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/cron"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/database"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/email"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/jwt"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/oauth"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/pix"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/sse"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/storage"
	"github.com/pontocerto/pontocerto-backend-go/internal/repository/postgresql"
	"github.com/pontocerto/pontocerto-backend-go/internal/repository/redisstore"
	attendanceService "github.com/pontocerto/pontocerto-backend-go/internal/service/attendance"
	serviceAuth "github.com/pontocerto/pontocerto-backend-go/internal/service/auth"
	billingService "github.com/pontocerto/pontocerto-backend-go/internal/service/billing"
	serviceCompany "github.com/pontocerto/pontocerto-backend-go/internal/service/company"
	employeeService "github.com/pontocerto/pontocerto-backend-go/internal/service/employee"
	locationService "github.com/pontocerto/pontocerto-backend-go/internal/service/location"
	reportService "github.com/pontocerto/pontocerto-backend-go/internal/service/report"
	shiftService "github.com/pontocerto/pontocerto-backend-go/internal/service/shift"
	verificationService "github.com/pontocerto/pontocerto-backend-go/internal/service/verification"
)

const (
	billingPollInterval       = time.Minute
	verificationSweepInterval = 30 * time.Second
	shutdownTimeout           = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	rdb, err := redisstore.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer rdb.Close()

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	billingRepo := postgresql.NewBillingRepository(db)

	enrollmentTokens := redisstore.NewEnrollmentTokenStore(rdb, time.Duration(cfg.Enrollment.LinkTTLHours)*time.Hour)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	pixClient := pix.NewClient(cfg.Pix)
	hub := sse.NewHub()

	authSvc := serviceAuth.NewAuthService(db, userRepo, companyRepo, employeeRepo, jwtService)
	companySvc := serviceCompany.NewCompanyService(companyRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, companyRepo, enrollmentTokens, emailService, fileStorage, cfg.Enrollment)
	locationSvc := locationService.NewLocationService(locationRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, locationRepo, shiftRepo, fileStorage, hub)
	verificationSvc := verificationService.NewVerificationService(employeeRepo, locationRepo, shiftRepo, attendanceRepo, attendanceSvc, hub)
	billingSvc := billingService.NewBillingService(billingRepo, companyRepo, pixClient, cfg.Pix)
	reportSvc := reportService.NewReportService(attendanceRepo, employeeRepo, shiftRepo)

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		Company:      appHTTP.NewCompanyHandler(companySvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Location:     appHTTP.NewLocationHandler(locationSvc),
		Shift:        appHTTP.NewShiftHandler(shiftSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Verification: appHTTP.NewVerificationHandler(verificationSvc),
		Billing:      appHTTP.NewBillingHandler(billingSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Events:       appHTTP.NewEventsHandler(jwtService, hub),
	}

	scheduler := cron.NewScheduler()
	scheduler.AddJob("billing-poll-pending", billingPollInterval, billingSvc.PollPending)
	scheduler.AddJob("verification-cleanup-stale", verificationSweepInterval, verificationSvc.CleanupStale)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, handlers, cfg.App.FrontendURL, cfg.App.Env)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exited")
}
