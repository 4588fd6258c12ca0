package http

import (
	"context"

	http_router "github.com/lintang-b-s/navigatorx-guidance/pkg/http/router"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-guidance/pkg/http/server"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/metrics"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Run blocks until ctx is cancelled or the http server fails.
func (s *Server) Run(
	ctx context.Context,
	useRateLimit bool,
	turnService controllers.TurnService,
	m *metrics.Metrics,
) error {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_RPS", 100)
	viper.SetDefault("RATE_LIMIT_BURST", 200)

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}
	rateLimit := http_router.RateLimit{
		Enabled: useRateLimit,
		RPS:     viper.GetFloat64("RATE_LIMIT_RPS"),
		Burst:   viper.GetInt("RATE_LIMIT_BURST"),
	}

	api := http_router.NewAPI(s.Log, m)
	return api.Run(ctx, config, rateLimit, turnService)
}
