package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minicrmhq/minicrm-backend/api/controllers"
	"github.com/minicrmhq/minicrm-backend/api/middleware"
	"github.com/minicrmhq/minicrm-backend/internal/customers"
	"github.com/minicrmhq/minicrm-backend/internal/dashboard"
	"github.com/minicrmhq/minicrm-backend/internal/funnel"
	"github.com/minicrmhq/minicrm-backend/internal/loyalty"
	"github.com/minicrmhq/minicrm-backend/internal/notes"
	"github.com/minicrmhq/minicrm-backend/internal/reminders"
	"github.com/minicrmhq/minicrm-backend/internal/stores"
	"github.com/minicrmhq/minicrm-backend/pkg/config"
	"github.com/minicrmhq/minicrm-backend/pkg/logger"
	"github.com/minicrmhq/minicrm-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       *redis.Client
	Metrics     *prometheus.Registry
	Customers   customers.Service
	Loyalty     loyalty.Service
	Funnel      funnel.Service
	Reminders   reminders.Service
	Notes       notes.Service
	Dashboard   dashboard.Service
	Stores      stores.Service
}

// NewRouter assembles the chi router with the full middleware chain.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
		middleware.StoreIdentity(p.Logger),
	)

	var cache controllers.Pinger
	var idempotencyStore redis.IdempotencyStore
	if p.Redis != nil {
		cache = p.Redis
		idempotencyStore = p.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.DB, cache))
	})

	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, p.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.StoreContext(p.Logger))
			r.Get("/ping", controllers.PrivatePing())

			r.Route("/v1/store", func(r chi.Router) {
				r.Get("/", controllers.StoreGet(p.Stores, p.Logger))
				r.Put("/", controllers.StoreUpsert(p.Stores, p.Logger))
			})

			r.Route("/v1/customers", func(r chi.Router) {
				r.Post("/", controllers.CustomerCreate(p.Customers, p.Logger))
				r.Get("/", controllers.CustomerList(p.Customers, p.Logger))

				r.Route("/{customerID}", func(r chi.Router) {
					r.Get("/", controllers.CustomerGet(p.Customers, p.Logger))

					r.Post("/purchases", controllers.PurchaseCreate(p.Loyalty, p.Logger))
					r.Get("/purchases", controllers.PurchaseList(p.Loyalty, p.Logger))

					r.Put("/funnel", controllers.FunnelSet(p.Funnel, p.Logger))
					r.Get("/funnel", controllers.FunnelGet(p.Funnel, p.Logger))

					r.Post("/notes", controllers.NoteCreate(p.Notes, p.Logger))
					r.Get("/notes", controllers.NoteList(p.Notes, p.Logger))

					r.Post("/reminders", controllers.ReminderCreate(p.Reminders, p.Logger))
					r.Get("/reminders", controllers.ReminderListByCustomer(p.Reminders, p.Logger))
				})
			})

			r.Route("/v1/reminders", func(r chi.Router) {
				r.Get("/", controllers.ReminderListUpcoming(p.Reminders, p.Logger))
				r.Post("/{reminderID}/sent", controllers.ReminderMarkSent(p.Reminders, p.Logger))
			})

			r.Get("/v1/dashboard", controllers.DashboardStats(p.Dashboard, p.Logger))
		})
	})

	return r
}
