package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	navhttp "github.com/lintang-b-s/navigatorx-guidance/pkg/http"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/kv"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/logger"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/preprocessor"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile             = flag.String("graph", "./data/original.graph", "graph file written by the preprocessor")
	kvDir                 = flag.String("kv", "./data/turn_tables", "badger directory for the turn tables")
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
	searchRadius          = flag.Float64("search_radius", 0.1, "junction search radius in km")
	useRateLimit          = flag.Bool("rate_limit", false, "enable the global rate limiter")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil && !util.IsConfigNotFound(err) {
		panic(err)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	graph, restrictions, err := datastructure.ReadGraph(*graphFile)
	if err != nil {
		logger.Fatal("read graph", zap.Error(err))
	}
	minLat, minLon := graph.GetBoundingBox().GetMinCoord()
	maxLat, maxLon := graph.GetBoundingBox().GetMaxCoord()
	logger.Info("graph loaded", zap.Int("vertices", graph.NumberOfVertices()), zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("restrictions", restrictions.Len()), zap.Float64s("bbox", []float64{minLat, minLon, maxLat, maxLon}))

	guidanceConfig, err := guidance.NewConfigFromViper(viper.GetViper())
	if err != nil {
		logger.Fatal("guidance config", zap.Error(err))
	}
	penalty, err := preprocessor.NewPenaltyConfigFromViper(viper.GetViper())
	if err != nil {
		logger.Fatal("turn penalty config", zap.Error(err))
	}

	store, err := kv.OpenTurnStore(*kvDir, logger)
	if err != nil {
		logger.Fatal("open turn table store", zap.Error(err))
	}
	defer store.Close()

	rtree := spatialindex.NewRtree()
	rtree.Build(graph, *leafBoundingBoxRadius, logger)

	m := metrics.NewDefaultMetrics()
	ta := guidance.NewTurnAnalysisFromGraph(graph, restrictions, guidanceConfig, logger)
	prep := preprocessor.NewPreprocessor(graph, restrictions, ta, penalty, m, logger)

	turnService := usecases.NewTurnService(logger, graph, store, prep, rtree,
		guidance.NewDirectionBuilder(graph, ta), *searchRadius)

	ctx, cancel := context.WithCancel(context.Background())
	api := navhttp.NewServer(logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := api.Run(ctx, *useRateLimit, turnService, m); err != nil && err != http.ErrServerClosed && err != context.Canceled {
			logger.Error("api server", zap.Error(err))
		}
	}()

	signal := navhttp.GracefulShutdown()
	cancel()
	<-done

	logger.Info("Navigatorx Guidance Server Stopped", zap.String("signal", signal.String()))
}
