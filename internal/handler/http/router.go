package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/handler/http/middleware"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Company      CompanyHandler
	Employee     EmployeeHandler
	Location     LocationHandler
	Shift        ShiftHandler
	Attendance   AttendanceHandler
	Verification VerificationHandler
	Billing      BillingHandler
	Report       ReportHandler
	Events       EventsHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, frontendURL string, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pontocerto"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Post("/identify", h.Auth.IdentifyEmployee)
				r.Post("/pin", h.Auth.LoginEmployeeWithPIN)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.LoginWithGoogle)
				})
			})
		})

		// Facial enrollment is authenticated by its one-time token.
		r.Post("/enroll", h.Employee.EnrollFace)

		// Live feed authenticates with a short-lived token in the query
		// string; it cannot go through the Authorization middleware.
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/events/token", h.Events.Token)

			r.Route("/company", func(r chi.Router) {
				r.Get("/", h.Company.GetMine)
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", h.Company.UpdateMine)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.Get)
					r.Put("/", h.Employee.Update)
					r.Delete("/", h.Employee.Delete)
					r.Post("/enrollment-link", h.Employee.GenerateEnrollmentLink)
					r.Get("/timesheet", h.Report.Timesheet)
					r.Get("/timesheet/xlsx", h.Report.TimesheetXLSX)
				})
			})

			r.Route("/locations", func(r chi.Router) {
				r.Get("/my", h.Location.ListMine)
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Location.List)
					r.Post("/", h.Location.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Location.Get)
						r.Put("/", h.Location.Update)
						r.Delete("/", h.Location.Delete)
					})
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/active", h.Shift.ActiveForMe)
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Shift.List)
					r.Post("/", h.Shift.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Shift.Get)
						r.Put("/", h.Shift.Update)
						r.Delete("/", h.Shift.Delete)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeOnly)
					r.Get("/next-action", h.Attendance.NextAction)
					r.Get("/timeline", h.Attendance.Timeline)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.List)
				})
			})

			r.Route("/verification/sessions", func(r chi.Router) {
				r.Use(middleware.EmployeeOnly)
				r.Post("/", h.Verification.Start)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Verification.Status)
					r.Post("/frame", h.Verification.SubmitFrame)
					r.Delete("/", h.Verification.Cancel)
				})
			})

			r.Route("/billing/charges", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.Billing.ListCharges)
				r.Post("/", h.Billing.CreateCharge)
				r.Get("/{id}", h.Billing.GetCharge)
			})
		})
	})
	return r
}
