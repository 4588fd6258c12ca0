package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/logger"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile = flag.String("graph", "./data/original.graph", "graph file written by the preprocessor")
	node      = flag.Int64("node", -1, "vertex id, kalau -1 pakai junction terdekat dari -lat/-lon")
	lat       = flag.Float64("lat", 0, "latitude")
	lon       = flag.Float64("lon", 0, "longitude")
	radius    = flag.Float64("radius", 0.1, "junction search radius in km")
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
	config, err := guidance.NewConfigFromViper(viper.GetViper())
	if err != nil {
		logger.Fatal("guidance config", zap.Error(err))
	}

	v := datastructure.Index(*node)
	if *node < 0 {
		rtree := spatialindex.NewRtree()
		rtree.Build(graph, 0.01, logger)
		junction, err := rtree.NearestJunction(*lat, *lon, *radius)
		if err != nil {
			logger.Fatal("nearest junction", zap.Error(err))
		}
		v = junction.Vertex
	} else if *node >= int64(graph.NumberOfVertices()) {
		logger.Fatal("vertex out of range", zap.Int64("node", *node), zap.Int("vertices", graph.NumberOfVertices()))
	}

	ta := guidance.NewTurnAnalysisFromGraph(graph, restrictions, config, logger)

	vLat, vLon := graph.GetVertexCoordinates(v)
	fmt.Printf("vertex %d (%f, %f), out degree %d\n\n", v, vLat, vLon, graph.GetOutDegree(v))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	graph.ForOutEdgesOf(v, func(e, head datastructure.Index) {
		via := graph.GetReverseEdge(e)
		if graph.GetEdgeData(via).Reversed {
			return
		}
		from := graph.GetSource(via)
		fmt.Fprintf(w, "from %d via edge %d (%s)\n", from, via, graph.GetStreetName(via))
		fmt.Fprintln(w, "  to edge\tangle\tvalid\ttype\tmodifier\tconfidence\tinstruction")
		for _, c := range ta.ComputeTurns(from, via) {
			text := ""
			if c.Valid && guidance.IsAnnounced(c.Instruction) {
				text = guidance.Describe(c.Instruction, graph.GetStreetName(c.EdgeID))
			}
			fmt.Fprintf(w, "  %d\t%.1f\t%t\t%s\t%s\t%.2f\t%s\n", c.EdgeID, c.Angle, c.Valid,
				c.Instruction.Type, c.Instruction.Modifier, c.Confidence, text)
		}
		fmt.Fprintln(w)
	})
	w.Flush()
}
