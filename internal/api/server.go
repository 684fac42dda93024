// Package api exposes the carrier operations over HTTP with API-key auth,
// schema validation and the uniform error envelope.
package api

import (
	"context"
	"net/http"
	"time"

	"carrier-simulator/internal/carriers/policy"
	"carrier-simulator/internal/carriers/quote"
	"carrier-simulator/internal/common/config"
	"carrier-simulator/internal/common/logger"
	"carrier-simulator/internal/common/observability"
)

type Server struct {
	engine   *quote.Engine
	policies *policy.Service
	obs      *observability.Observability
	log      logger.Logger
	apiKey   string

	httpServer *http.Server
}

func NewServer(cfg config.Config, engine *quote.Engine, policies *policy.Service, obs *observability.Observability, log logger.Logger) *Server {
	s := &Server{
		engine:   engine,
		policies: policies,
		obs:      obs,
		log:      log.WithFields(map[string]interface{}{"component": "http-server"}),
		apiKey:   cfg.Auth.APIKey,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}
	return s
}

// Routes wires every carrier operation. All routes sit behind the API-key
// check; path parameters follow the {name} convention of net/http's pattern
// matching.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern, route string, h http.HandlerFunc) {
		mux.Handle(pattern, s.requireAPIKey(s.instrument(route, h)))
	}

	handle("POST /api/v1/carriers/{carrier_id}/quote", "quote", s.handleQuote)
	handle("POST /api/v1/carriers/{carrier_id}/bind", "bind", s.handleBind)
	handle("GET /api/v1/carriers/{carrier_id}/policies/{policy_id}", "get_policy", s.handleGetPolicy)
	handle("POST /api/v1/carriers/{carrier_id}/policies/{policy_id}/renew", "renew", s.handleRenew)
	handle("POST /api/v1/carriers/{carrier_id}/policies/{policy_id}/endorse", "endorse", s.handleEndorse)
	handle("POST /api/v1/carriers/{carrier_id}/policies/{policy_id}/cancel", "cancel", s.handleCancel)
	handle("POST /api/v1/carriers/{carrier_id}/policies/{policy_id}/certificate", "certificate", s.handleCertificate)
	handle("GET /api/v1/carriers/{carrier_id}/health", "health", s.handleHealth)
	handle("GET /api/v1/carriers/cache/stats", "cache_stats", s.handleCacheStats)
	handle("POST /api/v1/carriers/cache/clear", "cache_clear", s.handleCacheClear)

	return mux
}

func (s *Server) Start() error {
	s.log.Info("http server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
