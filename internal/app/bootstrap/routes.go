// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	healthfeature "github.com/ticketry/ticketry/internal/app/features/health"
	loginfeature "github.com/ticketry/ticketry/internal/app/features/login"
	profilefeature "github.com/ticketry/ticketry/internal/app/features/profile"
	projectsfeature "github.com/ticketry/ticketry/internal/app/features/projects"
	ticketsfeature "github.com/ticketry/ticketry/internal/app/features/tickets"
	usersfeature "github.com/ticketry/ticketry/internal/app/features/users"
	"github.com/ticketry/ticketry/internal/app/system/auth"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Ticketry builds the token manager and mounts the JSON API feature
// routers under /api, plus the health endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTLifetime, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.TicketryMongoDatabase

	healthHandler := healthfeature.NewHandler(deps.TicketryMongoClient, logger)
	usersHandler := usersfeature.NewHandler(db, tokens, logger)
	loginHandler := loginfeature.NewHandler(db, tokens, logger)
	profileHandler := profilefeature.NewHandler(db, logger)
	projectsHandler := projectsfeature.NewHandler(db, logger)
	ticketsHandler := ticketsfeature.NewHandler(db, logger)

	r := chi.NewRouter()

	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/users", usersfeature.Routes(usersHandler))
		r.Mount("/auth", loginfeature.Routes(loginHandler))
		r.Mount("/profile", profilefeature.Routes(profileHandler, tokens))
		r.Mount("/projects", projectsfeature.Routes(projectsHandler, tokens))
		r.Mount("/tickets", ticketsfeature.Routes(ticketsHandler, tokens))
	})

	return r, nil
}
