// Package kernel wires repositories, services, controllers and the
// middleware stack into one http.Handler.
package kernel

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/vitrine/backoffice/app/controllers"
	appgraphql "github.com/vitrine/backoffice/app/graphql"
	"github.com/vitrine/backoffice/app/repositories"
	"github.com/vitrine/backoffice/app/routes"
	"github.com/vitrine/backoffice/app/services"
	"github.com/vitrine/backoffice/pkg/crypt"
	"github.com/vitrine/backoffice/pkg/event"
	"github.com/vitrine/backoffice/pkg/graphql"
	"github.com/vitrine/backoffice/pkg/lang"
	"github.com/vitrine/backoffice/pkg/metrics"
	"github.com/vitrine/backoffice/pkg/middleware"
	"github.com/vitrine/backoffice/pkg/reqid"
	"github.com/vitrine/backoffice/pkg/response"
	"github.com/vitrine/backoffice/pkg/router"
	"github.com/vitrine/backoffice/pkg/storage"
	"github.com/vitrine/backoffice/pkg/workerpool"
)

// Deps are the long-lived resources the kernel builds on. Cache, Disk and
// Pool are optional; image publishing needs both Disk and Pool.
type Deps struct {
	DB        *gorm.DB
	Cipher    *crypt.Cipher
	Cache     services.Cache
	CacheTTL  time.Duration
	Disk      storage.Disk
	Pool      *workerpool.Pool
	RateLimit int
}

type HTTPKernel struct {
	router *router.Router
}

// New builds the kernel.
func New(d Deps) (*HTTPKernel, error) {
	bannerRepo := repositories.NewBannerRepository(d.DB)
	productRepo := repositories.NewProductRepository(d.DB)

	var bannerCache services.Cache
	if d.Cache != nil {
		bannerCache = services.NewListCache(d.Cache)
	}

	var publisher services.ImagePublisher
	if d.Disk != nil && d.Pool != nil {
		publisher = services.NewDiskPublisher(d.Disk, d.Pool, bannerRepo, bannerCache)
	}

	bus := event.NewBus()
	services.AuditOrderUpdates(bus)

	bannerSvc := services.NewBannerService(bannerRepo, productRepo, bannerCache, d.CacheTTL, publisher)
	orderSvc := services.NewOrderService(repositories.NewOrderRepository(d.DB), bus)

	schema, err := appgraphql.NewSchema(bannerSvc, orderSvc)
	if err != nil {
		return nil, err
	}

	r := router.New()

	// Outermost first. Recovery runs inside Logger so panic lines carry
	// the request logger.
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Fail(w, http.StatusNotFound, lang.T("Resource not found."))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Fail(w, http.StatusMethodNotAllowed, lang.T("Resource not found."))
	})

	r.Mount("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", healthHandler(d.DB))
	r.Mount("/graphql", "graphql", graphql.Handler(schema))

	var api []router.Middleware
	if d.RateLimit > 0 {
		api = append(api, middleware.RateLimit(d.RateLimit, time.Minute))
	}
	routes.RegisterAPI(r, routes.Controllers{
		Banners:  controllers.NewBannerController(bannerSvc),
		Orders:   controllers.NewOrderController(orderSvc),
		Cards:    controllers.NewCardController(services.NewCardService(repositories.NewCardRepository(d.DB), d.Cipher)),
		Products: controllers.NewProductController(services.NewProductService(productRepo)),
	}, api...)

	return &HTTPKernel{router: r}, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists the registered routes for route:list.
func (k *HTTPKernel) Routes() []router.Route { return k.router.Routes() }

func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Fail(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.OK(w, map[string]string{"status": "ok"})
	}
}
