package http

import (
	"net/http"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/utils"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, middleware.RealIP, h.withTraceID, h.withLogging, h.withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/health", h.health)
	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.withRateLimit)
			r.Post("/signup", h.signup)
			r.Post("/login", h.login)
			r.Post("/verify-otp", h.verifyOTP)
			r.Get("/verify-email", h.verifyEmail)
			r.Post("/forgot-password", h.forgotPassword)
			r.Post("/reset-password", h.resetPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.getMe)
			r.Put("/profile", h.updateProfile)
			r.Post("/avatar", h.uploadAvatar)
		})
	})

	// ledger routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/clients", func(r chi.Router) {
			r.Get("/", h.listClients)
			r.Post("/", h.createClient)
			r.Get("/{id}", h.getClient)
			r.Put("/{id}", h.updateClient)
			r.Delete("/{id}", h.deleteClient)
		})

		r.Route("/api/entries", func(r chi.Router) {
			r.Get("/", h.listEntries)
			r.Post("/", h.createEntry)
			r.Get("/{id}", h.getEntry)
			r.Put("/{id}", h.updateEntry)
			r.Delete("/{id}", h.deleteEntry)
		})

		r.Route("/api/invoices", func(r chi.Router) {
			r.Get("/", h.listInvoices)
			r.Post("/", h.createInvoice)
			r.Get("/next-number", h.nextInvoiceNumber)
			r.Post("/import", h.importInvoices)
			r.Get("/{id}", h.getInvoice)
			r.Put("/{id}", h.updateInvoice)
			r.Delete("/{id}", h.deleteInvoice)
		})

		r.Route("/api/settings", func(r chi.Router) {
			r.Get("/", h.getAllSettings)
			r.Get("/{key}", h.getSetting)
			r.Put("/{key}", h.updateSetting)
			r.Delete("/{key}", h.deleteSetting)
		})

		r.Route("/api/analytics", func(r chi.Router) {
			r.Get("/financial-summary", h.financialSummary)
			r.Get("/monthly/{year}", h.monthlyAnalytics)
			r.Get("/payment-modes", h.paymentModes)
			r.Get("/status-distribution", h.statusDistribution)
			r.Get("/yearly-revenue", h.yearlyRevenue)
		})

		r.Get("/api/export", h.exportData)
		r.With(h.importHashing).Post("/api/import", h.importData)
		r.Delete("/api/clear", h.clearData)
	})

	router.Route("/api/admin", func(r chi.Router) {
		r.Use(h.auth, h.admin)
		r.Get("/users", h.listUsers)
		r.Delete("/users/{id}", h.deleteUser)
	})

	if h.avatarDir != "" {
		fs := http.StripPrefix(h.avatarPrefix, http.FileServer(http.Dir(h.avatarDir)))
		router.Handle(h.avatarPrefix+"/*", fs)
	}

	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(CheckHTTPMethod(router, h.routeNotFound))

	return router
}

func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, models.Fail(codeNotFound, "Route not found"), http.StatusNotFound); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.routeNotFound").Msg("error writing response")
	}
}
