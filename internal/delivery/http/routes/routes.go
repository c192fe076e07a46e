package routes

import (
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/metrics"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/usecase"
	"skill-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	DB       handler.Pinger
	Cache    handler.Pinger
	Matching usecase.MatchingUsecase
	Fill     usecase.FillUsecase
	Reports  usecase.ReportUsecase
	JWT      jwt.Service
	Hub      *ws.Hub
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

type Registry struct {
	health  *handler.HealthHandler
	match   *handler.MatchHandler
	apply   *handler.ApplyHandler
	reports *handler.ReportHandler
	ws      *ws.Handler
	auth    *middleware.AuthMiddleware
	metrics *metrics.Metrics
}

func NewRegistry(d Deps) *Registry {
	return &Registry{
		health:  handler.NewHealthHandler(d.DB, d.Cache),
		match:   handler.NewMatchHandler(d.Matching),
		apply:   handler.NewApplyHandler(d.Fill),
		reports: handler.NewReportHandler(d.Reports),
		ws:      ws.NewHandler(d.Hub, d.Logger),
		auth:    middleware.NewAuthMiddleware(d.JWT),
		metrics: d.Metrics,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerMetrics(app)
	r.ws.RegisterRoutes(app)
	r.registerAPI(app)
}

func (r *Registry) registerMetrics(app *fiber.App) {
	if r.metrics == nil || r.metrics.Registry == nil {
		return
	}
	h := promhttp.HandlerFor(r.metrics.Registry, promhttp.HandlerOpts{})
	app.Get("/metrics", adaptor.HTTPHandler(h))
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1 := app.Group("/api").Group("/v1", r.auth.Middleware())
	r.match.RegisterRoutes(v1)
	r.apply.RegisterRoutes(v1)
	r.reports.RegisterRoutes(v1)
}
