// Package kernel assembles the market HTTP handler: the global middleware
// stack, the /metrics endpoint and the API routes.
package kernel

import (
	"net/http"
	"sync"
	"time"

	"github.com/shashiranjanraj/market/app/routes"
	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/event"
	"github.com/shashiranjanraj/market/pkg/metrics"
	"github.com/shashiranjanraj/market/pkg/middleware"
	"github.com/shashiranjanraj/market/pkg/reqid"
	"github.com/shashiranjanraj/market/pkg/response"
	"github.com/shashiranjanraj/market/pkg/router"
)

// Options tunes the kernel. The zero value allows any origin and 20
// register/login attempts per client per minute.
type Options struct {
	CORSOrigins    string
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

func (o Options) withDefaults() Options {
	if o.CORSOrigins == "" {
		o.CORSOrigins = "*"
	}
	if o.AuthRateLimit <= 0 {
		o.AuthRateLimit = 20
	}
	if o.AuthRateWindow <= 0 {
		o.AuthRateWindow = time.Minute
	}
	return o
}

type HTTPKernel struct {
	router *router.Router
}

var listenOnce sync.Once

// NewHTTPKernel builds the router. Global middleware, outermost first:
//
//  1. metrics, so latency covers everything below
//  2. recovery
//  3. request id, before anything logs
//  4. access logger
//  5. CORS
//  6. bearer authentication
func NewHTTPKernel(s *services.Container, opts Options) *HTTPKernel {
	opts = opts.withDefaults()

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.CORSFromList(opts.CORSOrigins)),
		middleware.Authenticate(s.Auth),
	)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())

	limiter := middleware.NewRateLimiter(opts.AuthRateLimit, opts.AuthRateWindow)
	routes.RegisterAPI(r, s, limiter.Middleware)

	listenOnce.Do(registerListeners)

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists the registered endpoints for route:list.
func (k *HTTPKernel) Routes() []router.Route { return k.router.Routes() }

// registerListeners hooks process-wide reactions to service events. The
// service logs checkouts itself, with the request id.
func registerListeners() {
	event.Listen(services.EventCartCheckedOut, func(payload interface{}) {
		e, ok := payload.(services.CheckoutEvent)
		if !ok {
			return
		}
		metrics.RecordCheckout(e.Applied, e.Units)
	})
}
