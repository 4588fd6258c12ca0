package guidance

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"go.uber.org/zap"
)

type junctionKind uint8

const (
	JUNCTION_OTHER junctionKind = iota
	JUNCTION_BASIC
	JUNCTION_MOTORWAY
)

// turnContext. state of one ComputeTurns call. candidates is the single mutable collection all stages work on.
type turnContext struct {
	fromNode datastructure.Index
	viaEdge  datastructure.Index
	turnNode datastructure.Index
	inData   datastructure.EdgeData

	candidates []TurnCandidate

	onRoundabout bool
	canEnter     bool
	canExit      bool

	kind  junctionKind
	arity int
}

type stage struct {
	name string
	run  func(ctx *turnContext)
}

/*
TurnAnalysis. klasifikasi belokan di setiap junction.

	build -> mergeSegregated -> roundabout -> classify -> analyze -> optimize -> suppress

graph, restriction map, barrier set dan geometry cuma dipinjam (read-only), jadi ComputeTurns aman dipanggil paralel.
*/
type TurnAnalysis struct {
	graph        Graph
	restrictions RestrictionMap
	barriers     BarrierSet
	geometry     GeometryResolver
	config       Config
	log          *zap.Logger
	stages       []stage
}

func NewTurnAnalysis(graph Graph, restrictions RestrictionMap, barriers BarrierSet, geometry GeometryResolver,
	config Config, log *zap.Logger) *TurnAnalysis {
	if log == nil {
		log = zap.NewNop()
	}
	ta := &TurnAnalysis{
		graph:        graph,
		restrictions: restrictions,
		barriers:     barriers,
		geometry:     geometry,
		config:       config,
		log:          log,
	}
	ta.stages = []stage{
		{"build", ta.buildCandidates},
		{"mergeSegregated", ta.mergeSegregatedRoads},
		{"roundabout", ta.handleRoundabouts},
		{"classify", ta.classifyJunction},
		{"analyze", ta.analyzeCandidates},
		{"optimize", ta.optimizeCandidates},
		{"suppress", ta.suppressTurns},
	}
	return ta
}

// NewTurnAnalysisFromGraph. the datastructure graph is its own geometry resolver and barrier set.
func NewTurnAnalysisFromGraph(graph *datastructure.Graph, restrictions *datastructure.RestrictionMap, config Config,
	log *zap.Logger) *TurnAnalysis {
	return NewTurnAnalysis(graph, restrictions, graph, graph, config, log)
}

/*
ComputeTurns. semua kemungkinan belokan setelah melewati viaEdge (fromNode -> turnNode), urut berdasarkan (angle, edge id).
setiap kandidat sudah punya TurnInstruction final. kandidat dengan angle 0 (jika ada) = putar balik ke viaEdge.
*/
func (ta *TurnAnalysis) ComputeTurns(fromNode, viaEdge datastructure.Index) []TurnCandidate {
	if pkg.DEBUG {
		util.AssertPanic(ta.graph.GetSource(viaEdge) == fromNode, "via edge does not start at from node")
	}

	ctx := ta.newTurnContext(fromNode, viaEdge)
	for _, s := range ta.stages {
		s.run(ctx)
	}
	return ctx.candidates
}

func (ta *TurnAnalysis) newTurnContext(fromNode, viaEdge datastructure.Index) *turnContext {
	return &turnContext{
		fromNode: fromNode,
		viaEdge:  viaEdge,
		turnNode: ta.graph.GetTarget(viaEdge),
		inData:   ta.graph.GetEdgeData(viaEdge),
	}
}

// runStagesUntil runs the pipeline up to and including the named stage.
func (ta *TurnAnalysis) runStagesUntil(ctx *turnContext, last string) {
	for _, s := range ta.stages {
		s.run(ctx)
		if s.name == last {
			return
		}
	}
}

func (ta *TurnAnalysis) edgeData(c TurnCandidate) datastructure.EdgeData {
	return ta.graph.GetEdgeData(c.EdgeID)
}

func (ta *TurnAnalysis) direction(angle float64) DirectionModifier {
	return ta.config.Sectors.Direction(angle)
}
