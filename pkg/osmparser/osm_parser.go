package osmparser

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ScannerFactory opens a fresh scanner over the same osm data. Parse scans the input twice.
type ScannerFactory func(ctx context.Context) (osm.Scanner, error)

type nodeCoord struct {
	lat float64
	lon float64
}

type restriction struct {
	from int64 // osm way id
	via  int64 // osm node id
	to   int64 // osm way id
	kind RestrictionKind
}

type wayInfo struct {
	nodes     []int64
	direction wayDirection
}

type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]nodeCoord
	barrierNodes    map[int64]bool
	nodeIDMap       map[int64]da.Index
	restrictions    []restriction
	ways            map[int64]wayInfo

	builder *da.GraphBuilder
	log     *zap.Logger
}

func NewOSMParser(log *zap.Logger) *OsmParser {
	if log == nil {
		log = zap.NewNop()
	}
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]nodeCoord),
		barrierNodes:    make(map[int64]bool),
		nodeIDMap:       make(map[int64]da.Index),
		ways:            make(map[int64]wayInfo),
		builder:         da.NewGraphBuilder(),
		log:             log,
	}
}

type fileScanner struct {
	osm.Scanner
	f *os.File
}

func (s *fileScanner) Close() error {
	err := s.Scanner.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// FileScannerFactory. .pbf pakai osmpbf, selain itu dianggap osm xml.
func FileScannerFactory(mapFile string) ScannerFactory {
	return func(ctx context.Context) (osm.Scanner, error) {
		f, err := os.Open(mapFile)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", mapFile)
		}
		if strings.EqualFold(filepath.Ext(mapFile), ".pbf") {
			return &fileScanner{Scanner: osmpbf.New(ctx, f, 1), f: f}, nil
		}
		return &fileScanner{Scanner: osmxml.New(ctx, f), f: f}, nil
	}
}

func (p *OsmParser) ParseFile(ctx context.Context, mapFile string) (*da.Graph, *da.RestrictionMap, error) {
	return p.Parse(ctx, FileScannerFactory(mapFile))
}

/*
Parse. dua kali scan:
 1. ways + relations: tandai node yang dipakai way (end/between/junction) dan kumpulkan turn restriction.
 2. nodes + ways: simpan koordinat node yang dipakai, tandai barrier, lalu pecah setiap way jadi road segment
    di junction node, endpoint dan barrier.

scanner harus dibaca berurutan (node sebelum way), jadi tidak boleh paralel.
*/
func (p *OsmParser) Parse(ctx context.Context, newScanner ScannerFactory) (*da.Graph, *da.RestrictionMap, error) {
	if err := p.scanWaysAndRelations(ctx, newScanner); err != nil {
		return nil, nil, err
	}
	if err := p.scanNodesAndWays(ctx, newScanner); err != nil {
		return nil, nil, err
	}

	graph := p.builder.Build()
	restrictions := p.resolveRestrictions(graph)

	p.log.Info("openstreetmap parsed",
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("restrictions", restrictions.Len()),
		zap.Int("barriers", len(p.barrierNodes)))
	return graph, restrictions, nil
}

func (p *OsmParser) scanWaysAndRelations(ctx context.Context, newScanner ScannerFactory) error {
	scanner, err := newScanner(ctx)
	if err != nil {
		return err
	}
	defer scanner.Close()

	countWays := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Way:
			if len(o.Nodes) < 2 || !acceptOsmWay(o) {
				continue
			}
			if (countWays+1)%50000 == 0 {
				p.log.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
			}
			countWays++

			for i, node := range o.Nodes {
				id := int64(node.ID)
				if _, ok := p.wayNodeMap[id]; !ok {
					if i == 0 || i == len(o.Nodes)-1 {
						p.wayNodeMap[id] = END_NODE
					} else {
						p.wayNodeMap[id] = BETWEEN_NODE
					}
				} else {
					p.wayNodeMap[id] = JUNCTION_NODE
				}
			}
		case *osm.Relation:
			p.scanRestriction(o)
		}
	}
	return errors.Wrap(scanner.Err(), "scan openstreetmap ways")
}

// https://www.openstreetmap.org/api/0.6/relation/5710500
func (p *OsmParser) scanRestriction(relation *osm.Relation) {
	if relation.Tags.Find("type") != "restriction" {
		return
	}
	value := relation.Tags.Find("restriction")
	if value == "" {
		value = relation.Tags.Find("restriction:motorcar")
	}
	kind := parseRestrictionKind(value)
	if kind == UNKNOWN_RESTRICTION {
		return
	}

	r := restriction{kind: kind}
	for _, member := range relation.Members {
		switch member.Role {
		case "from":
			if member.Type == osm.TypeWay {
				r.from = member.Ref
			}
		case "to":
			if member.Type == osm.TypeWay {
				r.to = member.Ref
			}
		case "via":
			if member.Type != osm.TypeNode {
				// via way belum didukung
				p.log.Debug("skipping restriction with via way", zap.Int64("relation", int64(relation.ID)))
				return
			}
			r.via = member.Ref
		}
	}
	if r.from == 0 || r.to == 0 || r.via == 0 {
		return
	}
	p.restrictions = append(p.restrictions, r)
}

func (p *OsmParser) scanNodesAndWays(ctx context.Context, newScanner ScannerFactory) error {
	scanner, err := newScanner(ctx)
	if err != nil {
		return err
	}
	defer scanner.Close()

	countWays := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			id := int64(o.ID)
			if _, ok := p.wayNodeMap[id]; !ok {
				continue
			}
			p.acceptedNodeMap[id] = nodeCoord{lat: o.Lat, lon: o.Lon}
			if isBarrier(o.Tags) {
				p.barrierNodes[id] = true
			}
		case *osm.Way:
			if len(o.Nodes) < 2 || !acceptOsmWay(o) {
				continue
			}
			if (countWays+1)%50000 == 0 {
				p.log.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
			}
			countWays++
			p.processWay(o)
		}
	}
	return errors.Wrap(scanner.Err(), "scan openstreetmap nodes")
}

func (p *OsmParser) isSplitNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE || p.barrierNodes[nodeID]
}

func (p *OsmParser) processWay(way *osm.Way) {
	direction := directionOf(way)
	if !direction.forward && !direction.backward {
		return
	}

	attr := da.RoadAttributes{
		Name:       streetName(way.Tags),
		RoadClass:  roadClassOf(way, p.log),
		TravelMode: travelModeOf(way.Tags),
		Roundabout: isRoundabout(way.Tags),
		OsmWayID:   int64(way.ID),
	}
	forward, backward := attr, attr
	forward.Reversed = !direction.forward
	backward.Reversed = !direction.backward

	nodes := make([]int64, 0, len(way.Nodes))
	segment := make([]int64, 0)
	for i, wayNode := range way.Nodes {
		id := int64(wayNode.ID)
		if _, ok := p.acceptedNodeMap[id]; !ok {
			// node di luar extract
			continue
		}
		nodes = append(nodes, id)
		segment = append(segment, id)
		if len(segment) > 1 && (p.isSplitNode(id) || i == len(way.Nodes)-1) {
			p.addSegment(segment, forward, backward)
			segment = []int64{id}
		}
	}
	if len(segment) > 1 {
		p.addSegment(segment, forward, backward)
	}

	p.ways[int64(way.ID)] = wayInfo{nodes: nodes, direction: direction}
}

func (p *OsmParser) vertexOf(osmID int64) da.Index {
	if id, ok := p.nodeIDMap[osmID]; ok {
		return id
	}
	coord := p.acceptedNodeMap[osmID]
	id := p.builder.AddVertex(coord.lat, coord.lon, osmID)
	p.nodeIDMap[osmID] = id
	if p.barrierNodes[osmID] {
		p.builder.SetBarrier(id)
	}
	return id
}

func (p *OsmParser) addSegment(segment []int64, forward, backward da.RoadAttributes) {
	from, to := segment[0], segment[len(segment)-1]
	if from == to {
		// loop way tanpa junction di tengah. pecah jadi dua supaya tidak ada self loop.
		if len(segment) < 3 {
			return
		}
		mid := len(segment) / 2
		p.addSegment(segment[:mid+1], forward, backward)
		p.addSegment(segment[mid:], forward, backward)
		return
	}

	points := make([]da.Coordinate, len(segment))
	for i, id := range segment {
		coord := p.acceptedNodeMap[id]
		points[i] = da.NewCoordinate(coord.lat, coord.lon)
	}
	p.builder.AddRoad(p.vertexOf(from), p.vertexOf(to), points, forward, backward)
}

// roadClassOf. ferry tidak punya highway tag.
func roadClassOf(way *osm.Way, log *zap.Logger) pkg.FunctionalRoadClass {
	if isFerry(way.Tags) && way.Tags.Find("highway") == "" {
		return pkg.LOW_PRIORITY_ROAD
	}
	return pkg.FunctionalRoadClassFromTag(way.Tags.Find("highway"), log)
}
