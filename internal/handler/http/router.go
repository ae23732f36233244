package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/config"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/middleware"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Company      CompanyHandler
	Employee     EmployeeHandler
	Movement     MovementHandler
	Settlement   SettlementHandler
	Finance      FinanceHandler
	Overtime     OvertimeHandler
	Absence      AbsenceHandler
	Certificate  CertificateHandler
	Leave        LeaveHandler
	Report       ReportHandler
	Notification NotificationHandler
	File         FileHandler
}

func NewRouter(app config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(!app.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nexter-rh"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition", "Content-Location"},
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

		// EventSource cannot send the Authorization header, Stream checks
		// its own short-lived token
		r.Get("/companies/{companyID}/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/files/*", h.File.Download)

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", h.Company.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Company.Create)
				})

				r.Route("/{companyID}", func(r chi.Router) {
					r.Use(middleware.RequireCompany)

					r.Get("/", h.Company.GetByID)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Put("/", h.Company.Update)
						r.Delete("/", h.Company.Delete)
					})

					r.Route("/employees", func(r chi.Router) {
						r.Get("/", h.Employee.ListEmployees)
						r.Post("/", h.Employee.CreateEmployee)
						r.Post("/recompute-costs", h.Employee.RecomputeCosts)
						r.Route("/{id}", func(r chi.Router) {
							r.Get("/", h.Employee.GetEmployee)
							r.Put("/", h.Employee.UpdateEmployee)
							r.Delete("/", h.Employee.DeleteEmployee)
							r.Post("/salary-increases", h.Employee.AddSalaryIncrease)
							r.Post("/role-changes", h.Employee.ChangeRole)
						})
					})

					r.Route("/movements", func(r chi.Router) {
						r.Get("/", h.Movement.List)
						r.Post("/terminations", h.Movement.RegisterTermination)
						r.Post("/hires", h.Movement.RegisterHire)
						r.Post("/{id}/revert", h.Movement.Revert)
					})

					r.Route("/settlements", func(r chi.Router) {
						r.Get("/", h.Settlement.List)
						r.Post("/preview", h.Settlement.Preview)
						r.Post("/", h.Settlement.Confirm)
						r.Get("/{id}", h.Settlement.Get)
						r.Get("/{id}/receipt", h.Settlement.Receipt)
						r.Delete("/{id}", h.Settlement.Delete)
					})

					r.Route("/finance", func(r chi.Router) {
						r.Get("/", h.Finance.ListEntries)
						r.Post("/", h.Finance.CreateEntry)
						r.Get("/{id}", h.Finance.GetEntry)
						r.Post("/{id}/pay", h.Finance.MarkPaid)
						r.Delete("/{id}", h.Finance.DeleteEntry)
					})

					r.Route("/overtime", func(r chi.Router) {
						r.Get("/", h.Overtime.List)
						r.Post("/", h.Overtime.Launch)
						r.Post("/{id}/sign", h.Overtime.Sign)
						r.Delete("/{id}", h.Overtime.Delete)
					})

					r.Route("/absences", func(r chi.Router) {
						r.Get("/", h.Absence.List)
						r.Post("/", h.Absence.Register)
						r.Delete("/{id}", h.Absence.Delete)
					})

					r.Route("/certificates", func(r chi.Router) {
						r.Get("/", h.Certificate.List)
						r.Post("/", h.Certificate.Register)
						r.Post("/evaluate", h.Certificate.Evaluate)
						r.Route("/{id}", func(r chi.Router) {
							r.Get("/", h.Certificate.Get)
							r.Patch("/status", h.Certificate.UpdateStatus)
							r.Post("/follow-ups", h.Certificate.AddFollowUp)
							r.Post("/scan", h.Certificate.AttachScan)
							r.Delete("/", h.Certificate.Delete)
						})
					})

					r.Route("/leaves", func(r chi.Router) {
						r.Get("/", h.Leave.ListLeaves)
						r.Post("/", h.Leave.CreateLeave)
						r.Route("/{id}", func(r chi.Router) {
							r.Get("/", h.Leave.GetLeave)
							r.Post("/referral", h.Leave.MarkReferred)
							r.Post("/exam", h.Leave.ScheduleExam)
							r.Post("/close", h.Leave.CloseLeave)
						})
					})

					r.Get("/dashboard", h.Report.Dashboard)
					r.Route("/reports", func(r chi.Router) {
						r.Get("/aggregate", h.Report.Aggregate)
						r.Get("/export", h.Report.Export)
						r.Get("/recurring-absences", h.Report.RecurringAbsences)
						r.Get("/exam-alerts", h.Report.ExamAlerts)
					})

					r.Route("/notifications", func(r chi.Router) {
						r.Get("/", h.Notification.List)
						r.Get("/unread-count", h.Notification.UnreadCount)
						r.Post("/read", h.Notification.MarkAsRead)
						r.Post("/read-all", h.Notification.MarkAllAsRead)
						r.Post("/sse-token", h.Notification.GetSSEToken)
						r.Delete("/{id}", h.Notification.Delete)
					})
				})
			})
		})
	})
	return r
}
