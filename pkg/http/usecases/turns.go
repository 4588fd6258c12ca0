package usecases

import (
	"errors"

	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type Turn struct {
	Record      da.TurnRecord
	Instruction guidance.TurnInstruction
	StreetName  string
	Polyline    string
	Announced   bool
}

// Approach. turn table satu via edge beserta nama jalan.
type Approach struct {
	ViaEdge    da.Index
	FromNode   da.Index
	StreetName string
	FromStore  bool // false kalau dihitung ulang karena tidak ada di kv
	Turns      []Turn
}

type JunctionTurns struct {
	Junction   spatialindex.Junction
	Approaches []Approach
}

type TurnService struct {
	log          *zap.Logger
	graph        *da.Graph
	store        TurnStore
	computer     TurnTableComputer
	spatialIndex SpatialIndex
	directions   DirectionsBuilder
	searchRadius float64
}

// NewTurnService. store boleh nil, semua turn table lalu dihitung langsung.
func NewTurnService(log *zap.Logger, graph *da.Graph, store TurnStore, computer TurnTableComputer,
	spatialIndex SpatialIndex, directions DirectionsBuilder, searchRadius float64) *TurnService {
	return &TurnService{
		log:          log,
		graph:        graph,
		store:        store,
		computer:     computer,
		spatialIndex: spatialIndex,
		directions:   directions,
		searchRadius: searchRadius,
	}
}

func (ts *TurnService) checkEdge(edgeID int64) (da.Index, error) {
	if edgeID < 0 || edgeID >= int64(ts.graph.NumberOfEdges()) {
		return 0, util.WrapErrorf(nil, util.ErrNotFound, "edge %d not found", edgeID)
	}
	return da.Index(edgeID), nil
}

func isNotFound(err error) bool {
	var uerr *util.Error
	return errors.As(err, &uerr) && uerr.Code() == util.ErrNotFound
}

func (ts *TurnService) turnTable(viaEdge da.Index) (da.TurnTable, bool, error) {
	if ts.store != nil {
		table, err := ts.store.GetTurnTable(viaEdge)
		if err == nil {
			return table, true, nil
		}
		if !isNotFound(err) {
			return da.TurnTable{}, false, util.WrapErrorf(err, util.ErrInternalServerError, "read turn table of edge %d", viaEdge)
		}
		ts.log.Debug("turn table not in store, computing", zap.Uint32("via_edge", uint32(viaEdge)))
	}
	return ts.computer.ComputeTurnTable(viaEdge), false, nil
}

func (ts *TurnService) approach(viaEdge da.Index) (Approach, error) {
	table, fromStore, err := ts.turnTable(viaEdge)
	if err != nil {
		return Approach{}, err
	}

	a := Approach{
		ViaEdge:    table.ViaEdge,
		FromNode:   table.FromNode,
		StreetName: ts.graph.GetStreetName(viaEdge),
		FromStore:  fromStore,
		Turns:      make([]Turn, 0, len(table.Turns)),
	}
	for _, rec := range table.Turns {
		ins := guidance.NewTurnInstruction(guidance.TurnType(rec.TurnType), guidance.DirectionModifier(rec.Modifier))
		a.Turns = append(a.Turns, Turn{
			Record:      rec,
			Instruction: ins,
			StreetName:  ts.graph.GetStreetName(rec.ToEdge),
			Polyline:    geo.PolylineFromCoords(da.NewGeoCoordinates(ts.graph.GetEdgeGeometry(rec.ToEdge))),
			Announced:   rec.Valid && guidance.IsAnnounced(ins),
		})
	}
	return a, nil
}

// TurnsAtEdge. semua kandidat turn setelah melewati edgeID.
func (ts *TurnService) TurnsAtEdge(edgeID int64) (Approach, error) {
	viaEdge, err := ts.checkEdge(edgeID)
	if err != nil {
		return Approach{}, err
	}
	if ts.graph.GetEdgeData(viaEdge).Reversed {
		return Approach{}, util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d goes against a oneway", edgeID)
	}
	return ts.approach(viaEdge)
}

// approachesInto. edge masuk ke v yang boleh dilewati.
func (ts *TurnService) approachesInto(v da.Index) []da.Index {
	in := make([]da.Index, 0, ts.graph.GetOutDegree(v))
	ts.graph.ForOutEdgesOf(v, func(e, head da.Index) {
		rev := ts.graph.GetReverseEdge(e)
		if !ts.graph.GetEdgeData(rev).Reversed {
			in = append(in, rev)
		}
	})
	return in
}

/*
TurnsAtJunction. junction terdekat dari (lat, lon), lalu turn table untuk setiap approach:

	approach_1 --\
	approach_2 ----> junction ----> departures
	approach_k --/
*/
func (ts *TurnService) TurnsAtJunction(lat, lon float64) (JunctionTurns, error) {
	junction, err := ts.spatialIndex.NearestJunction(lat, lon, ts.searchRadius)
	if err != nil {
		return JunctionTurns{}, err
	}

	result := JunctionTurns{Junction: junction}
	for _, via := range ts.approachesInto(junction.Vertex) {
		a, err := ts.approach(via)
		if err != nil {
			return JunctionTurns{}, err
		}
		result.Approaches = append(result.Approaches, a)
	}
	return result, nil
}

func lineString(coords []da.Coordinate) orb.LineString {
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		ls = append(ls, orb.Point{c.Lon, c.Lat})
	}
	return ls
}

// JunctionGeoJSON. junction (point), approach dan departure (linestring) untuk ditampilkan di peta.
func (ts *TurnService) JunctionGeoJSON(lat, lon float64) (*geojson.FeatureCollection, error) {
	junction, err := ts.spatialIndex.NearestJunction(lat, lon, ts.searchRadius)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	point := geojson.NewFeature(orb.Point{junction.Lon, junction.Lat})
	point.Properties["vertex"] = junction.Vertex
	point.Properties["degree"] = junction.Degree
	point.Properties["distance"] = junction.Distance
	fc.Append(point)

	addEdge := func(e da.Index, role string) {
		f := geojson.NewFeature(lineString(ts.graph.GetEdgeGeometry(e)))
		data := ts.graph.GetEdgeData(e)
		f.Properties["edge_id"] = e
		f.Properties["role"] = role
		f.Properties["street_name"] = ts.graph.GetStreetName(e)
		f.Properties["road_class"] = data.RoadClass.String()
		f.Properties["roundabout"] = data.Roundabout
		fc.Append(f)
	}

	for _, via := range ts.approachesInto(junction.Vertex) {
		addEdge(via, "approach")
	}
	ts.graph.ForOutEdgesOf(junction.Vertex, func(e, head da.Index) {
		if !ts.graph.GetEdgeData(e).Reversed {
			addEdge(e, "departure")
		}
	})
	return fc, nil
}

// Directions. langkah navigasi untuk path berupa urutan edge id.
func (ts *TurnService) Directions(edgeIDs []int64) ([]guidance.RouteStep, error) {
	path := make([]da.Index, 0, len(edgeIDs))
	for _, id := range edgeIDs {
		e, err := ts.checkEdge(id)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid path")
		}
		path = append(path, e)
	}
	return ts.directions.GetDrivingDirections(path)
}
