package preprocessor

import (
	"context"
	"runtime"

	"github.com/lintang-b-s/navigatorx-guidance/pkg/concurrent"
	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// TurnTableWriter. disimplementasikan kv.TurnStore.
type TurnTableWriter interface {
	SaveTurnTables(ctx context.Context, tables []da.TurnTable) error
}

type Stats struct {
	Approaches      int // jumlah turn table
	Components      int // strongly connected component graph
	OutsideLargest  int // approach yang via edge-nya di luar component terbesar
	ValidTurns      int
	AnnouncedTurns  int
	RestrictedTurns int // kandidat yang invalid karena turn restriction / oneway / barrier
	Workers         int
}

type Preprocessor struct {
	graph        *da.Graph
	restrictions *da.RestrictionMap
	turnAnalysis *guidance.TurnAnalysis
	penalty      PenaltyConfig
	metrics      *metrics.Metrics
	log          *zap.Logger
}

func NewPreprocessor(graph *da.Graph, restrictions *da.RestrictionMap, turnAnalysis *guidance.TurnAnalysis,
	penalty PenaltyConfig, m *metrics.Metrics, log *zap.Logger) *Preprocessor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Preprocessor{
		graph:        graph,
		restrictions: restrictions,
		turnAnalysis: turnAnalysis,
		penalty:      penalty,
		metrics:      m,
		log:          log,
	}
}

// approaches. semua via edge yang boleh dilewati (tidak melawan oneway).
func (p *Preprocessor) approaches() []da.Index {
	edges := make([]da.Index, 0, p.graph.NumberOfEdges())
	for e := da.Index(0); e < da.Index(p.graph.NumberOfEdges()); e++ {
		if p.graph.GetEdgeData(e).Reversed {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// ComputeTurnTable. juga dipakai engine saat turn table tidak ada di kv.
func (p *Preprocessor) ComputeTurnTable(viaEdge da.Index) da.TurnTable {
	fromNode := p.graph.GetSource(viaEdge)
	turns := p.turnAnalysis.ComputeTurns(fromNode, viaEdge)
	p.metrics.ObserveTurns(turns)

	table := da.TurnTable{
		ViaEdge:  viaEdge,
		FromNode: fromNode,
		Turns:    make([]da.TurnRecord, len(turns)),
	}
	for i, c := range turns {
		table.Turns[i] = da.TurnRecord{
			ToEdge:     c.EdgeID,
			Angle:      c.Angle,
			Valid:      c.Valid,
			TurnType:   uint8(c.Instruction.Type),
			Modifier:   uint8(c.Instruction.Modifier),
			Confidence: c.Confidence,
			Penalty:    p.penalty.TurnPenalty(c),
		}
	}
	return table
}

/*
ComputeTurnTables. ComputeTurns untuk setiap via edge, paralel pakai worker pool.

	feeder ---> jobQueue ---> workers ---> results ---> collector

feeder dan collector jalan di errgroup yang sama, jadi cancel ctx menghentikan keduanya.
hasil diurutkan berdasarkan via edge id.
*/
func (p *Preprocessor) ComputeTurnTables(ctx context.Context, workers int) ([]da.TurnTable, Stats, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	edges := p.approaches()
	stats := Stats{Approaches: len(edges), Workers: workers}

	scc := p.graph.StronglyConnectedComponents()
	stats.Components = scc.NumberOfComponents()

	pool := concurrent.NewWorkerPool[da.Index, da.TurnTable](workers, workers*64)
	g, gctx := errgroup.WithContext(ctx)
	pool.Start(gctx, p.ComputeTurnTable)

	g.Go(func() error {
		defer pool.Close()
		for i, e := range edges {
			if util.StopConcurrentOperation(gctx) {
				return gctx.Err()
			}
			if (i+1)%100000 == 0 {
				p.log.Sugar().Infof("computing turn tables: %d/%d...", i+1, len(edges))
			}
			pool.AddJob(e)
		}
		return nil
	})

	tables := make([]da.TurnTable, 0, len(edges))
	g.Go(func() error {
		for table := range pool.CollectResults() {
			tables = append(tables, table)
		}
		return nil
	})

	go func() {
		pool.Wait()
	}()

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	slices.SortFunc(tables, func(a, b da.TurnTable) int {
		return int(a.ViaEdge) - int(b.ViaEdge)
	})

	for _, table := range tables {
		if !scc.InLargestComponent(p.graph, table.ViaEdge) {
			stats.OutsideLargest++
		}
		for _, t := range table.Turns {
			ins := guidance.NewTurnInstruction(guidance.TurnType(t.TurnType), guidance.DirectionModifier(t.Modifier))
			switch {
			case t.Valid:
				stats.ValidTurns++
				if guidance.IsAnnounced(ins) {
					stats.AnnouncedTurns++
				}
			case t.Angle != 0:
				stats.RestrictedTurns++
			}
		}
	}

	p.log.Info("turn tables computed",
		zap.Int("approaches", stats.Approaches),
		zap.Int("components", stats.Components),
		zap.Int("outside_largest_component", stats.OutsideLargest),
		zap.Int("valid_turns", stats.ValidTurns),
		zap.Int("announced_turns", stats.AnnouncedTurns))
	return tables, stats, nil
}

/*
PreProcessing. tulis graph ke graphFile (bzip2), hitung turn table semua approach, simpan ke store.
*/
func (p *Preprocessor) PreProcessing(ctx context.Context, graphFile string, store TurnTableWriter, workers int) (Stats, error) {
	p.log.Info("writing graph", zap.String("file", graphFile))
	if err := p.graph.WriteGraph(graphFile, p.restrictions); err != nil {
		return Stats{}, err
	}

	tables, stats, err := p.ComputeTurnTables(ctx, workers)
	if err != nil {
		return stats, err
	}
	return stats, store.SaveTurnTables(ctx, tables)
}
