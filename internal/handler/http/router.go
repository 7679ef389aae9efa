package http

import (
	"log/slog"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	logger *slog.Logger,
	allowedOrigins []string,
	attendanceHandler AttendanceHandler,
	ledgerHandler LedgerHandler,
	recoveryHandler RecoveryHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
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
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/status", attendanceHandler.GetMyStatus)
				r.Get("/days", attendanceHandler.ListDays)

				// Admin only
				r.With(middleware.AdminOnly).Get("/status/{userID}", attendanceHandler.GetUserStatus)
			})

			r.Route("/ledger", func(r chi.Router) {
				r.Get("/balance", ledgerHandler.GetMyBalance)
				r.Get("/transactions", ledgerHandler.ListTransactions)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/balance/{userID}", ledgerHandler.GetUserBalance)
					r.Get("/debtors", ledgerHandler.ListDebtors)
					r.Get("/debt-summary", ledgerHandler.GetDebtSummary)
					r.Post("/adjustments", ledgerHandler.AddManualCredit)
				})
			})

			r.Route("/recovery-requests", func(r chi.Router) {
				r.Get("/", recoveryHandler.List)
				r.Post("/", recoveryHandler.Create)
				r.Post("/slots", recoveryHandler.SuggestSlots)

				// Admin only
				r.With(middleware.AdminOnly).Post("/settle-due", recoveryHandler.SettleDue)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", recoveryHandler.Get)
					r.Put("/", recoveryHandler.Update)
					r.Delete("/", recoveryHandler.Delete)

					r.Post("/accept", recoveryHandler.Accept)
					r.Post("/decline", recoveryHandler.Decline)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/approve", recoveryHandler.Approve)
						r.Post("/reject", recoveryHandler.Reject)
						r.Post("/settle", recoveryHandler.Settle)
					})
				})
			})
		})
	})
	return r
}
