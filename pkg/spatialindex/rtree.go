package spatialindex

import (
	"cmp"
	"math"

	"github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// minimal out degree supaya vertex dianggap junction (ada pilihan selain lurus dan putar balik)
const JUNCTION_MIN_DEGREE = 3

type Rtree struct {
	tr *rtree.RTreeG[Junction]
}

// Junction. vertex graph hasil query spatial index.
type Junction struct {
	Vertex   datastructure.Index `json:"vertex"`
	Lat      float64             `json:"lat"`
	Lon      float64             `json:"lon"`
	Degree   int                 `json:"degree"`
	Distance float64             `json:"distance"` // meter dari query point, diisi saat query
}

func (j Junction) IsJunction() bool {
	return j.Degree >= JUNCTION_MIN_DEGREE
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[Junction]
	return &Rtree{
		tr: &tr,
	}
}

// Build. build r-tree, setiap vertex jadi leaf dengan bounding box radius boundingBoxRadius (km)
func (rt *Rtree) Build(graph *datastructure.Graph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	n := graph.NumberOfVertices()
	for v := datastructure.Index(0); v < datastructure.Index(n); v++ {
		if (int(v)+1)%(max(n/10, 1)) == 0 {
			log.Info("Building R-tree spatial index...", zap.Float64("progress", float64(v+1)/float64(n)*100))
		}
		degree := graph.GetOutDegree(v)
		if degree == 0 {
			continue
		}
		lat, lon := graph.GetVertexCoordinates(v)
		lowerLat, lowerLon := geo.GetDestinationPoint(lat, lon, 225, boundingBoxRadius)
		upperLat, upperLon := geo.GetDestinationPoint(lat, lon, 45, boundingBoxRadius)

		rt.tr.Insert([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
			Junction{Vertex: v, Lat: lat, Lon: lon, Degree: degree})
	}

	log.Info("R-tree spatial index built.", zap.Int("items", rt.tr.Len()))
}

// SearchWithinRadius. semua vertex dalam radius (km) dari (qLat, qLon), urut dari yang paling dekat.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []Junction {
	// sudut box di diagonal, jadi jaraknya radius * sqrt(2) supaya lingkaran radius masuk semua
	diag := radius * math.Sqrt2
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, diag)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, diag)

	results := make([]Junction, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data Junction) bool {
			dist := geo.CalculateHaversineDistance(qLat, qLon, data.Lat, data.Lon)
			if dist <= radius {
				data.Distance = dist * 1000
				results = append(results, data)
			}
			return true
		})

	slices.SortFunc(results, func(a, b Junction) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Vertex, b.Vertex)
	})
	return results
}

// NearestJunction. junction (out degree >= 3) terdekat, kalau tidak ada pakai vertex apa saja yang terdekat.
func (rt *Rtree) NearestJunction(qLat, qLon, radius float64) (Junction, error) {
	candidates := rt.SearchWithinRadius(qLat, qLon, radius)
	if len(candidates) == 0 {
		return Junction{}, util.WrapErrorf(nil, util.ErrNotFound, "no junction within %.0f meter of (%f, %f)",
			radius*1000, qLat, qLon)
	}
	for _, c := range candidates {
		if c.IsJunction() {
			return c, nil
		}
	}
	return candidates[0], nil
}
