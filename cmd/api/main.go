package main

import (
	"fmt"
	"net/http"

	"github.com/chronoworks/timesheet-backend-go/internal/config"
	appHTTP "github.com/chronoworks/timesheet-backend-go/internal/handler/http"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/database"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/jwt"
	"github.com/chronoworks/timesheet-backend-go/internal/repository/postgresql"
	bankService "github.com/chronoworks/timesheet-backend-go/internal/service/bank"
	calendarService "github.com/chronoworks/timesheet-backend-go/internal/service/calendar"
	timesheetService "github.com/chronoworks/timesheet-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	personRepo := postgresql.NewPersonRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	allocationRepo := postgresql.NewAllocationRepository(db)
	entryRepo := postgresql.NewTimeEntryRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)

	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	classifier := timesheetService.NewClassifier()
	ledgerSvc := bankService.NewLedgerService(ledgerRepo)
	entrySvc := timesheetService.NewTimeEntryService(txManager, entryRepo, calendarRepo, allocationRepo, classifier)
	approvalSvc := timesheetService.NewApprovalService(txManager, entryRepo, calendarRepo, projectRepo, ledgerSvc)
	calendarSvc := calendarService.NewCalendarService(calendarRepo, entryRepo, ledgerRepo, personRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService)
	entryHandler := appHTTP.NewTimeEntryHandler(entrySvc)
	approvalHandler := appHTTP.NewApprovalHandler(approvalSvc)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)
	bankHandler := appHTTP.NewBankHandler(ledgerSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		entryHandler,
		approvalHandler,
		calendarHandler,
		bankHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
