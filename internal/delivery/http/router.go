package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"goonj/internal/delivery/http/controllers"
	"goonj/internal/delivery/http/middleware"
	"goonj/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter. Payment may be nil when card
// payments are not configured; its route is then not registered.
type Controllers struct {
	Catalog      *controllers.CatalogController
	Registration *controllers.RegistrationController
	Payment      *controllers.PaymentController
	Admin        *controllers.AdminController
	Auth         *controllers.AuthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	mux.HandleFunc("GET /health", controllers.Health)

	// Catalog
	mux.HandleFunc("GET /catalog", c.Catalog.ListCatalog)
	mux.HandleFunc("GET /catalog/{category}", c.Catalog.ListCategoryEvents)

	// Registrations
	mux.HandleFunc("GET /registrations/options", c.Registration.Options)
	mux.HandleFunc("POST /registrations/quote", c.Registration.Quote)
	mux.HandleFunc("POST /registrations", c.Registration.Submit)
	if c.Payment != nil {
		mux.HandleFunc("POST /payments/intents", c.Payment.CreateIntent)
	}

	// Admin
	mux.HandleFunc("POST /admin/login", c.Auth.Login)
	mux.HandleFunc("GET /admin/registrations", requireAuth(c.Admin.ListRegistrations))
	mux.HandleFunc("GET /admin/registrations/export", requireAuth(c.Admin.ExportRegistrations))
	mux.HandleFunc("DELETE /admin/registrations/{id}", requireAuth(c.Admin.DeleteRegistration))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with CORS and request logging.
func NewHandler(mux http.Handler, allowedOrigins []string, logger *slog.Logger) http.Handler {
	return middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux))
}
