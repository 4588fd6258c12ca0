package guidance

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
)

// StepGraph. route assembly needs names, lengths and shapes on top of the turn classification view.
type StepGraph interface {
	Graph
	GetStreetName(e datastructure.Index) string
	GetEdgeLength(e datastructure.Index) float64
	GetEdgeGeometry(e datastructure.Index) []datastructure.Coordinate
}

type RouteStep struct {
	Instruction TurnInstruction          `json:"instruction"`
	Maneuver    Maneuver                 `json:"maneuver"`
	Text        string                   `json:"text"`
	StreetName  string                   `json:"street_name"`
	Location    datastructure.Coordinate `json:"location"`
	ExitNumber  int                      `json:"exit_number,omitempty"`
	Distance    float64                  `json:"distance"` // meter
	Polyline    string                   `json:"polyline"`
	EdgeIDs     []datastructure.Index    `json:"edge_ids"`

	points []datastructure.Coordinate
}

/*
DirectionBuilder. ubah path (urutan edge) jadi langkah-langkah navigasi.

	depart --- (NoTurn digabung ke step sebelumnya) --- turn --- ... --- arrive

setiap pasangan edge berurutan (prev, curr) diklasifikasi pakai ComputeTurns(source(prev), prev), step baru cuma dibuat
kalau instruksi kandidat curr diumumkan.
*/
type DirectionBuilder struct {
	graph StepGraph
	ta    *TurnAnalysis
}

func NewDirectionBuilder(graph StepGraph, ta *TurnAnalysis) *DirectionBuilder {
	return &DirectionBuilder{graph: graph, ta: ta}
}

func (db *DirectionBuilder) GetDrivingDirections(path []datastructure.Index) ([]RouteStep, error) {
	if len(path) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "empty path")
	}
	for i := 1; i < len(path); i++ {
		if db.graph.GetTarget(path[i-1]) != db.graph.GetSource(path[i]) {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d does not continue edge %d", path[i], path[i-1])
		}
	}

	first := path[0]
	steps := []*RouteStep{db.newStep(Depart(), first, db.graph.GetSource(first))}
	curr := steps[0]
	db.appendEdge(curr, first)

	for i := 1; i < len(path); i++ {
		prev, next := path[i-1], path[i]
		turns := db.ta.ComputeTurns(db.graph.GetSource(prev), prev)

		cand, ok := findCandidate(turns, next)
		if !ok || !cand.Valid {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "turn from edge %d to edge %d is not allowed", prev, next)
		}

		ins := cand.Instruction
		switch ins.Type {
		case TURN_STAY_ON_ROUNDABOUT:
			if hasRoundaboutExit(turns) {
				curr.ExitNumber++
			}
		case TURN_LEAVE_ROUNDABOUT:
			curr.ExitNumber++
			curr.StreetName = db.graph.GetStreetName(next)
		default:
			if IsAnnounced(ins) {
				curr = db.newStep(ins, next, db.graph.GetSource(next))
				steps = append(steps, curr)
			}
		}
		db.appendEdge(curr, next)
	}

	last := path[len(path)-1]
	steps = append(steps, db.newStep(Arrive(), last, db.graph.GetTarget(last)))

	result := make([]RouteStep, len(steps))
	for i, step := range steps {
		step.Maneuver = Render(step.Instruction)
		step.Text = Describe(step.Instruction, step.StreetName)
		step.Polyline = geo.PolylineFromCoords(datastructure.NewGeoCoordinates(step.points))
		result[i] = *step
	}
	return result, nil
}

func (db *DirectionBuilder) newStep(ins TurnInstruction, e, at datastructure.Index) *RouteStep {
	return &RouteStep{
		Instruction: ins,
		StreetName:  db.graph.GetStreetName(e),
		Location:    db.graph.GetVertexCoordinate(at),
		EdgeIDs:     make([]datastructure.Index, 0),
		points:      make([]datastructure.Coordinate, 0),
	}
}

func (db *DirectionBuilder) appendEdge(step *RouteStep, e datastructure.Index) {
	step.EdgeIDs = append(step.EdgeIDs, e)
	step.Distance += db.graph.GetEdgeLength(e)
	geometry := db.graph.GetEdgeGeometry(e)
	if len(step.points) > 0 && len(geometry) > 0 {
		// titik pertama sama dengan titik terakhir edge sebelumnya
		geometry = geometry[1:]
	}
	step.points = append(step.points, geometry...)
}

func findCandidate(turns []TurnCandidate, e datastructure.Index) (TurnCandidate, bool) {
	for _, c := range turns {
		if c.EdgeID == e {
			return c, true
		}
	}
	return TurnCandidate{}, false
}

func hasRoundaboutExit(turns []TurnCandidate) bool {
	for _, c := range turns {
		if c.Valid && c.Instruction.Type == TURN_LEAVE_ROUNDABOUT {
			return true
		}
	}
	return false
}
