package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clubmate-app/clubmate-backend/api/controllers"
	"github.com/clubmate-app/clubmate-backend/api/middleware"
	"github.com/clubmate-app/clubmate-backend/internal/carpool"
	"github.com/clubmate-app/clubmate-backend/internal/notifications"
	"github.com/clubmate-app/clubmate-backend/pkg/config"
	"github.com/clubmate-app/clubmate-backend/pkg/db"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
	"github.com/clubmate-app/clubmate-backend/pkg/metrics"
	"github.com/clubmate-app/clubmate-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	carpoolService carpool.Service,
	notificationsService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/carpool/requests", func(r chi.Router) {
			r.Post("/", controllers.CreateTransportRequest(carpoolService, logg))
			r.Get("/", controllers.ListTransportRequests(carpoolService, logg))
			r.Route("/{requestID}", func(r chi.Router) {
				r.Get("/", controllers.GetTransportRequest(carpoolService, logg))
				r.Post("/proposals", controllers.ProposeTransport(carpoolService, logg))
				r.Patch("/proposals/{proposalID}", controllers.UpdateTransportProposal(carpoolService, logg))
				r.Delete("/proposals/{proposalID}", controllers.DeleteTransportProposal(carpoolService, logg))
				r.Post("/proposals/{proposalID}/accept", controllers.AcceptTransportProposal(carpoolService, logg))
				r.Post("/sign", controllers.SignTransport(carpoolService, logg))
			})
		})

		r.Route("/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
		})
	})

	return r
}
