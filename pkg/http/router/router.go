package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/navigatorx-guidance/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/navigatorx-guidance/pkg/http/server"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/metrics"
	"github.com/rs/cors"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "net/http/pprof"
)

type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type API struct {
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewAPI(log *zap.Logger, m *metrics.Metrics) *API {
	return &API{log: log, metrics: m}
}

//	@title			Navigatorx Guidance API
//	@version		1.0
//	@description	Turn classification dan turn-by-turn instruction untuk road network openstreetmap.

//	@contact.name	Lintang Birda Saputra
//	@contact.url	_
//	@contact.email	lintang.birda.saputra@mail.ugm.ac.id

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Handler(turnService controllers.TurnService, rateLimit RateLimit) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)
	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)
	if api.metrics != nil {
		router.Handler(http.MethodGet, "/metrics", api.metrics.Handler())
	}

	group := router_helper.NewRouteGroup(router, "/api")
	turnRoutes := controllers.New(turnService, api.log)
	turnRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), Labels, Metrics(api.metrics)}
	if rateLimit.Enabled {
		mwChain = append(mwChain, Limit(rateLimit.RPS, rateLimit.Burst))
	}
	return alice.New(mwChain...).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	rateLimit RateLimit,
	turnService controllers.TurnService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(turnService, rateLimit), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
