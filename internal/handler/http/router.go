package http

import (
	"log/slog"
	"os"

	"github.com/chronoworks/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	entryHandler TimeEntryHandler,
	approvalHandler ApprovalHandler,
	calendarHandler CalendarHandler,
	bankHandler BankHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/days/{date}", func(r chi.Router) {
				r.Get("/quota", entryHandler.GetDailyQuota)
				r.Get("/entries", entryHandler.ListDayEntries)
				r.Post("/submit", entryHandler.SubmitDay)
			})

			r.Route("/entries", func(r chi.Router) {
				r.Post("/", entryHandler.SubmitEntry)
				r.Put("/{id}", entryHandler.UpdateEntry)
				r.Delete("/{id}", entryHandler.DeleteEntry)
			})

			r.Route("/periods", func(r chi.Router) {
				r.Get("/", calendarHandler.ListMyPeriods)
				r.Get("/{id}/summary", calendarHandler.PeriodSummary)
				r.Post("/{id}/submit", entryHandler.SubmitPeriod)
			})

			r.Route("/bank", func(r chi.Router) {
				r.Get("/balance", bankHandler.Balance)
				r.Get("/statement", bankHandler.Statement)
			})

			r.Route("/approvals", func(r chi.Router) {
				// Manager or HR
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/approve", approvalHandler.Approve)
					r.Post("/reject", approvalHandler.Reject)
				})

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/close", approvalHandler.ClosePeriod)
				})

				// Finance only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireFinance)
					r.Post("/bill", approvalHandler.BillPeriod)
				})
			})

			r.Route("/hr", func(r chi.Router) {
				r.Use(middleware.RequireHR)
				r.Get("/periods", calendarHandler.HRRoster)
			})
		})
	})
	return r
}
