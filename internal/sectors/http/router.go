package http

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init --dir ../../.. --generalInfo internal/sectors/http/router.go --output ../../../api/sectors --outputTypes go

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/sectors/internal/sectors/service"
	"github.com/aussiebroadwan/sectors/internal/sectors/store"
	"github.com/aussiebroadwan/sectors/pkg/httpx"
	"github.com/aussiebroadwan/sectors/pkg/jwtx"
	"github.com/aussiebroadwan/sectors/pkg/slogx"
	"github.com/rs/cors"

	_ "github.com/aussiebroadwan/sectors/api/sectors" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	SectorService *service.SectorService

	// TrustProxyHeaders keys IP rate limits on X-Forwarded-For/X-Real-IP.
	// Only set it when a proxy in front of the API overwrites those headers.
	TrustProxyHeaders bool
}

// NewRouter builds a router. A nil verifier switches bearer authentication
// off. corsOrigins lists the browser origins allowed to call the API; an
// empty list disables cross-origin access.
func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	corsOrigins []string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		newCORS(corsOrigins),
	}

	return r
}

func newCORS(origins []string) httpx.Middleware {
	// rs/cors treats an empty list as "*".
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         600,
	}).Handler
}

func (r *Router) ApplyRoutes() {
	r.registerSectors()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Sectors API
//	@version		0.1.0
//	@description	CRUD API for sectors, consumed by the sectorctl console.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/sectors
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HS256 access token. Format: "Bearer {token}". Only required when the service runs with SECTORS_JWT_SECRET.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSectors() {
	h := &SectorsHandler{SectorService: r.SectorService}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RateLimitByIP(httpx.ReadLimit, r.TrustProxyHeaders),
			httpx.RequireScope(r.verifier, jwtx.ScopeSectorsRead),
		)
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RequireScope(r.verifier, jwtx.ScopeSectorsWrite),
			httpx.RateLimitBySubject(httpx.WriteLimit, r.TrustProxyHeaders),
		)
	}

	r.Mux.Handle("GET /api/sectors", read(h.HandleList))
	r.Mux.Handle("GET /api/sectors/{id}", read(h.HandleGet))
	r.Mux.Handle("POST /api/sectors", write(h.HandleCreate))
	r.Mux.Handle("PUT /api/sectors/{id}", write(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/sectors/{id}", write(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.ProbeLimit, r.TrustProxyHeaders),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.ProbeLimit, r.TrustProxyHeaders),
		),
	)
}
