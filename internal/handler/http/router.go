package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterDeps struct {
	JWTAuth    *jwtauth.JWTAuth
	Attendance AttendanceHandler
	Holiday    HolidayHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Statutory  StatutoryHandler
	Env        string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Env),
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
		// Tokens are verified when present so edits carry the caller's
		// identity, but requests without one still go through.
		r.Use(jwtauth.Verifier(deps.JWTAuth))

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/", deps.Attendance.Create)
			r.Get("/", deps.Attendance.List)
			r.Post("/import", deps.Attendance.Import)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deps.Attendance.Get)
				r.Put("/", deps.Attendance.Update)
				r.Delete("/", deps.Attendance.Delete)
			})
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Post("/", deps.Holiday.Create)
			r.Get("/", deps.Holiday.List)
			r.Post("/materialize", deps.Holiday.Materialize)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deps.Holiday.Get)
				r.Delete("/", deps.Holiday.Delete)
			})
		})

		r.Route("/leave", func(r chi.Router) {
			r.Route("/requests", func(r chi.Router) {
				r.Post("/", deps.Leave.CreateRequest)
				r.Get("/", deps.Leave.ListRequests)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.Leave.GetRequest)
					r.Post("/approve", deps.Leave.ApproveRequest)
					r.Post("/reject", deps.Leave.RejectRequest)
					r.Post("/cancel", deps.Leave.CancelRequest)
				})
			})

			r.Route("/balances", func(r chi.Router) {
				r.Post("/assign", deps.Leave.AssignCredits)
				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", deps.Leave.GetBalance)
					r.Post("/initialize", deps.Leave.InitializeBalance)
				})
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Post("/calculate", deps.Payroll.Calculate)

			r.Route("/runs", func(r chi.Router) {
				r.Post("/", deps.Payroll.CreateRun)
				r.Get("/", deps.Payroll.ListRuns)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.Payroll.GetRun)
					r.Put("/", deps.Payroll.UpdateRun)
					r.Post("/generate", deps.Payroll.GenerateEntries)
				})
			})

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", deps.Payroll.ListEntries)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.Payroll.GetEntry)
					r.Put("/", deps.Payroll.UpdateEntry)
					r.Get("/contributions", deps.Payroll.GetEntryContributions)
					r.Get("/payslip", deps.Payroll.GetPayslip)
				})
			})
		})

		r.Route("/statutory", func(r chi.Router) {
			r.Route("/benefits", func(r chi.Router) {
				r.Post("/", deps.Statutory.CreateBenefitConfig)
				r.Get("/", deps.Statutory.ListBenefitConfigs)
				r.Put("/{id}/active", deps.Statutory.SetBenefitConfigActive)
			})
			r.Route("/taxes", func(r chi.Router) {
				r.Post("/", deps.Statutory.CreateTaxConfig)
				r.Get("/", deps.Statutory.ListTaxConfigs)
				r.Put("/{id}/active", deps.Statutory.SetTaxConfigActive)
			})
		})
	})

	return r
}
