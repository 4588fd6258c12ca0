package osmparser

import (
	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

/*
resolveRestrictions. ubah restriction (osm way, osm node, osm way) jadi (fromEdge, via, toEdge).

	from way ---fromEdge---> via ---toEdge---> to way

fromEdge = edge drivable dari from way yang berakhir di via, toEdge = edge drivable dari to way yang mulai di via.
from edge yang kena restriction ditandai Restricted di graph.
*/
func (p *OsmParser) resolveRestrictions(graph *da.Graph) *da.RestrictionMap {
	rm := da.NewRestrictionMap()

	for _, r := range p.restrictions {
		via, ok := p.nodeIDMap[r.via]
		if !ok {
			continue
		}
		fromWay, okFrom := p.ways[r.from]
		toWay, okTo := p.ways[r.to]
		if !okFrom || !okTo || !slices.Contains(fromWay.nodes, r.via) || !slices.Contains(toWay.nodes, r.via) {
			p.log.Debug("restriction does not match the road network",
				zap.Int64("from", r.from), zap.Int64("via", r.via), zap.Int64("to", r.to))
			continue
		}

		fromEdges := make([]da.Index, 0, 2)
		toEdges := make([]da.Index, 0, 2)
		graph.ForOutEdgesOf(via, func(e, head da.Index) {
			if graph.GetOsmWayId(e) == r.to && !graph.GetEdgeData(e).Reversed {
				toEdges = append(toEdges, e)
			}
			in := graph.GetReverseEdge(e)
			if graph.GetOsmWayId(in) == r.from && !graph.GetEdgeData(in).Reversed {
				fromEdges = append(fromEdges, in)
			}
		})

		for _, from := range fromEdges {
			uTurn := graph.GetReverseEdge(from)
			targets := make([]da.Index, 0, len(toEdges))
			for _, to := range toEdges {
				isUTurn := to == uTurn
				if isUTurn == (r.kind == NO_U_TURN || r.kind == ONLY_U_TURN) {
					targets = append(targets, to)
				}
			}

			if r.kind.IsOnly() {
				if len(targets) != 1 {
					// via di tengah to way, arah tidak bisa ditentukan
					p.log.Debug("ambiguous only restriction", zap.Int64("from", r.from), zap.Int64("to", r.to))
					continue
				}
				rm.Add(da.TurnRestriction{FromEdge: from, Via: via, ToEdge: targets[0], Only: true})
				graph.SetRestricted(from)
				continue
			}

			for _, to := range targets {
				rm.Add(da.TurnRestriction{FromEdge: from, Via: via, ToEdge: to})
				graph.SetRestricted(from)
			}
		}
	}
	return rm
}
