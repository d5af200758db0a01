package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/farmbook/farmbook/internal/auth"
	"github.com/farmbook/farmbook/internal/ledger"
	"github.com/farmbook/farmbook/internal/ratelimit"
	"github.com/farmbook/farmbook/internal/validation"
)

// Deps are the collaborators the API handlers share.
type Deps struct {
	DB           *sql.DB
	Ledger       *ledger.Ledger
	Tokens       *auth.Issuer
	LoginLimiter *ratelimit.KeyedRateLimiter
	Logger       *slog.Logger
}

// NewRouter creates the API router with all endpoints registered and wrapped
// in request logging.
func NewRouter(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Ledger == nil {
		deps.Ledger = ledger.New(deps.DB, deps.Logger)
	}
	if deps.LoginLimiter == nil {
		deps.LoginLimiter = ratelimit.New(1, 5)
	}
	v := validation.New()

	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: deps.DB, Tokens: deps.Tokens, Validator: v}
	fieldsHandler := &FieldsHandler{DB: deps.DB, Validator: v}
	lotsHandler := &LotsHandler{DB: deps.DB, Ledger: deps.Ledger}
	transportationsHandler := &TransportationsHandler{DB: deps.DB, Ledger: deps.Ledger}
	summaryHandler := &SummaryHandler{DB: deps.DB}

	authMW := AuthMiddleware(deps.Tokens, deps.DB)
	limited := RateLimit(deps.LoginLimiter)
	protect := func(h http.HandlerFunc) http.Handler { return authMW(h) }

	// Public.
	mux.Handle("POST /api/auth/signup", limited(http.HandlerFunc(authHandler.Signup)))
	mux.Handle("POST /api/auth/login", limited(http.HandlerFunc(authHandler.Login)))

	mux.Handle("POST /api/auth/logout", protect(authHandler.Logout))
	mux.Handle("PUT /api/auth/password", protect(authHandler.ChangePassword))
	mux.Handle("GET /api/auth/me", protect(authHandler.Me))

	mux.Handle("GET /api/fields", protect(fieldsHandler.List))
	mux.Handle("POST /api/fields", protect(fieldsHandler.Create))
	mux.Handle("GET /api/fields/{id}", protect(fieldsHandler.Get))
	mux.Handle("PUT /api/fields/{id}", protect(fieldsHandler.Update))
	mux.Handle("DELETE /api/fields/{id}", protect(fieldsHandler.Delete))

	// ?field=<name> narrows the list to lots that field contributed to.
	mux.Handle("GET /api/lots", protect(lotsHandler.List))
	mux.Handle("POST /api/lots", protect(lotsHandler.Create))
	mux.Handle("GET /api/lots/{id}", protect(lotsHandler.Get))
	mux.Handle("PUT /api/lots/{id}", protect(lotsHandler.Update))
	mux.Handle("DELETE /api/lots/{id}", protect(lotsHandler.Delete))
	mux.Handle("POST /api/lots/{id}/add-packets", protect(lotsHandler.AddPackets))
	mux.Handle("PUT /api/lots/{id}/photo", protect(lotsHandler.UploadPhoto))
	mux.Handle("GET /api/lots/{id}/photo", protect(lotsHandler.GetPhoto))

	mux.Handle("GET /api/transportations", protect(transportationsHandler.List))
	mux.Handle("POST /api/transportations", protect(transportationsHandler.Create))
	mux.Handle("GET /api/transportations/field/{id}", protect(transportationsHandler.ListByField))
	mux.Handle("GET /api/transportations/{id}", protect(transportationsHandler.Get))
	mux.Handle("PUT /api/transportations/{id}", protect(transportationsHandler.Update))
	mux.Handle("DELETE /api/transportations/{id}", protect(transportationsHandler.Delete))

	mux.Handle("GET /api/summary", protect(summaryHandler.Get))

	return LoggingMiddleware(deps.Logger, mux)
}
