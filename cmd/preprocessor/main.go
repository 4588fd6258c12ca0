package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/kv"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/logger"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/osmparser"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/preprocessor"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mapFile   = flag.String("f", "./data/diy_solo_semarang.osm.pbf", "openstreetmap file (.osm.pbf atau .osm)")
	graphFile = flag.String("graph", "./data/original.graph", "output graph file")
	kvDir     = flag.String("kv", "./data/turn_tables", "badger directory for the turn tables")
	workers   = flag.Int("workers", -1, "number of workers computing turn tables, -1 = PREPROCESS_WORKERS, 0 = number of cpu")
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

	viper.SetDefault("PREPROCESS_WORKERS", 0)
	if *workers < 0 {
		*workers = viper.GetInt("PREPROCESS_WORKERS")
	}

	ctx := context.Background()

	osmParser := osmparser.NewOSMParser(logger)
	graph, restrictions, err := osmParser.ParseFile(ctx, *mapFile)
	if err != nil {
		logger.Fatal("parse openstreetmap file", zap.Error(err))
	}

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

	ta := guidance.NewTurnAnalysisFromGraph(graph, restrictions, guidanceConfig, logger)
	prep := preprocessor.NewPreprocessor(graph, restrictions, ta, penalty, metrics.NewDefaultMetrics(), logger)
	stats, err := prep.PreProcessing(ctx, *graphFile, store, *workers)
	if err != nil {
		logger.Error("preprocessing failed", zap.Error(err))
		return
	}

	logger.Sugar().Infof("Preprocessing completed successfully. %d turn tables, %d valid turns, %d announced.",
		stats.Approaches, stats.ValidTurns, stats.AnnouncedTurns)
}
