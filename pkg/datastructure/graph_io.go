package datastructure

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
)

func writeFlags(w *bufio.Writer, flags []uint32) {
	fmt.Fprintf(w, "%d\n", len(flags))
	for i := 0; i < len(flags); i++ {
		fmt.Fprintf(w, "%d", flags[i])
		if i < len(flags)-1 {
			fmt.Fprintf(w, " ")
		}
	}
	fmt.Fprintf(w, "\n")
}

// WriteGraph. text format, bzip2 compressed.
func (g *Graph) WriteGraph(filename string, restrictions *RestrictionMap) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)
	gs := g.graphStorage

	fmt.Fprintf(w, "%d %d %d %d\n",
		len(g.vertices), g.NumberOfEdges(), len(gs.globalPoints), restrictions.Len())

	for vId := 0; vId < len(g.vertices); vId++ {
		v := g.vertices[vId]
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)

		fmt.Fprintf(w, "%d %d %s %s %d\n", v.id, v.firstOut, latF, lonF, v.osmId)
	}

	for _, e := range g.outEdges {
		distF := strconv.FormatFloat(e.dist, 'f', -1, 64)
		fmt.Fprintf(w, "%d %d %d %d %s\n", e.edgeId, e.tail, e.head, e.twin, distF)
	}

	for i := 0; i < len(gs.globalPoints); i++ {
		point := gs.globalPoints[i]
		pointLat := strconv.FormatFloat(point.Lat, 'f', -1, 64)
		pointLon := strconv.FormatFloat(point.Lon, 'f', -1, 64)
		fmt.Fprintf(w, "%s %s\n", pointLat, pointLon)
	}

	for i := 0; i < len(gs.mapEdgeInfo); i++ {
		edgeInfo := gs.mapEdgeInfo[i]
		fmt.Fprintf(w, "%d %d %d %d %d %d %d\n", edgeInfo.startPointsIndex, edgeInfo.endPointsIndex,
			edgeInfo.streetName, edgeInfo.roadClass, edgeInfo.travelMode, edgeInfo.flags,
			edgeInfo.osmWayId)
	}

	writeFlags(w, gs.roundaboutFlag)
	writeFlags(w, gs.nodeBarrier)

	sortedKeys := make([]int, 0, gs.tagStringIDMap.Len())
	for key := range gs.tagStringIDMap.IDToStr {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Ints(sortedKeys)

	fmt.Fprintf(w, "%d\n", len(sortedKeys))
	for _, key := range sortedKeys {
		fmt.Fprintf(w, "%d %s\n", key, strconv.Quote(gs.tagStringIDMap.GetStr(key)))
	}

	for _, r := range restrictions.GetRestrictions() {
		fmt.Fprintf(w, "%d %d %d %t\n", r.FromEdge, r.Via, r.ToEdge, r.Only)
	}

	return w.Flush()
}

func fields(s string) []string {
	return strings.Fields(s)
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

func parseIndices(tokens []string, out ...*Index) error {
	if len(tokens) < len(out) {
		return fmt.Errorf("expected %d fields, got %d", len(out), len(tokens))
	}
	for i, o := range out {
		v, err := ParseIndex(tokens[i])
		if err != nil {
			return err
		}
		*o = v
	}
	return nil
}

func readFlags(br *bufio.Reader) ([]uint32, error) {
	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return nil, err
	}
	line, err = util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	tokens := fields(line)
	if len(tokens) != n {
		return nil, fmt.Errorf("expected %d flags, got %d", n, len(tokens))
	}
	flags := make([]uint32, n)
	for i, token := range tokens {
		v, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			return nil, err
		}
		flags[i] = uint32(v)
	}
	return flags, nil
}

func ReadGraph(filename string) (*Graph, *RestrictionMap, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}

	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, nil, err
	}

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, nil, err
	}

	var numVertices, numEdges, numPoints, numRestrictions Index
	if err := parseIndices(fields(line), &numVertices, &numEdges, &numPoints, &numRestrictions); err != nil {
		return nil, nil, fmt.Errorf("invalid graph header: %w", err)
	}

	vertices := make([]*Vertex, numVertices)
	for i := 0; i < int(numVertices); i++ {
		vertexLine, err := util.ReadLine(br)
		if err != nil {
			return nil, nil, err
		}
		vertices[i], err = parseVertex(vertexLine)
		if err != nil {
			return nil, nil, err
		}
	}

	outEdges := make([]*OutEdge, numEdges)
	for i := 0; i < int(numEdges); i++ {
		outEdgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, nil, err
		}
		outEdges[i], err = parseOutEdge(outEdgeLine)
		if err != nil {
			return nil, nil, err
		}
	}

	globalPoints := make([]Coordinate, numPoints)
	for i := 0; i < int(numPoints); i++ {
		pointLine, err := util.ReadLine(br)
		if err != nil {
			return nil, nil, err
		}
		tokens := fields(pointLine)
		if len(tokens) != 2 {
			return nil, nil, fmt.Errorf("expected 2 fields, got %d", len(tokens))
		}
		lat, err := strconv.ParseFloat(tokens[0], 64)
		if err != nil {
			return nil, nil, err
		}
		lon, err := strconv.ParseFloat(tokens[1], 64)
		if err != nil {
			return nil, nil, err
		}
		globalPoints[i] = NewCoordinate(lat, lon)
	}

	mapEdgeInfo := make([]EdgeExtraInfo, numEdges)
	for i := 0; i < int(numEdges); i++ {
		infoLine, err := util.ReadLine(br)
		if err != nil {
			return nil, nil, err
		}
		mapEdgeInfo[i], err = parseEdgeExtraInfo(infoLine)
		if err != nil {
			return nil, nil, err
		}
	}

	roundaboutFlag, err := readFlags(br)
	if err != nil {
		return nil, nil, err
	}
	nodeBarrier, err := readFlags(br)
	if err != nil {
		return nil, nil, err
	}

	line, err = util.ReadLine(br)
	if err != nil {
		return nil, nil, err
	}
	numNames, err := strconv.Atoi(line)
	if err != nil {
		return nil, nil, err
	}
	tagStringIDMap := util.NewIdMap()
	for i := 0; i < numNames; i++ {
		nameLine, err := util.ReadLine(br)
		if err != nil {
			return nil, nil, err
		}
		sep := strings.IndexByte(nameLine, ' ')
		if sep < 0 {
			return nil, nil, fmt.Errorf("invalid name line %q", nameLine)
		}
		id, err := strconv.Atoi(nameLine[:sep])
		if err != nil {
			return nil, nil, err
		}
		name, err := strconv.Unquote(nameLine[sep+1:])
		if err != nil {
			return nil, nil, err
		}
		tagStringIDMap.Set(id, name)
	}

	restrictions := NewRestrictionMap()
	for i := 0; i < int(numRestrictions); i++ {
		rLine, err := util.ReadLine(br)
		if err != nil {
			return nil, nil, err
		}
		tokens := fields(rLine)
		var r TurnRestriction
		if err := parseIndices(tokens, &r.FromEdge, &r.Via, &r.ToEdge); err != nil {
			return nil, nil, err
		}
		if len(tokens) != 4 {
			return nil, nil, fmt.Errorf("expected 4 fields, got %d", len(tokens))
		}
		r.Only, err = strconv.ParseBool(tokens[3])
		if err != nil {
			return nil, nil, err
		}
		restrictions.Add(r)
	}

	gs := BuildGraphStorage(globalPoints, roundaboutFlag, nodeBarrier, mapEdgeInfo, tagStringIDMap)
	return NewGraph(vertices, outEdges, gs), restrictions, nil
}

func parseVertex(line string) (*Vertex, error) {
	tokens := fields(line)
	if len(tokens) != 5 {
		return nil, fmt.Errorf("expected 5 fields, got %d", len(tokens))
	}

	var id, firstOut Index
	if err := parseIndices(tokens, &id, &firstOut); err != nil {
		return nil, err
	}

	lat, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return nil, err
	}
	osmId, err := strconv.ParseInt(tokens[4], 10, 64)
	if err != nil {
		return nil, err
	}

	v := NewVertex(lat, lon, id)
	v.SetFirstOut(firstOut)
	v.SetOsmId(osmId)
	return v, nil
}

func parseOutEdge(line string) (*OutEdge, error) {
	tokens := fields(line)
	if len(tokens) != 5 {
		return nil, fmt.Errorf("expected 5 fields, got %d", len(tokens))
	}

	var edgeId, tail, head, twin Index
	if err := parseIndices(tokens, &edgeId, &tail, &head, &twin); err != nil {
		return nil, err
	}

	dist, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return nil, err
	}

	return NewOutEdge(edgeId, tail, head, twin, dist), nil
}

func parseEdgeExtraInfo(line string) (EdgeExtraInfo, error) {
	tokens := fields(line)
	if len(tokens) != 7 {
		return EdgeExtraInfo{}, fmt.Errorf("expected 7 fields, got %d", len(tokens))
	}

	var start, end Index
	if err := parseIndices(tokens, &start, &end); err != nil {
		return EdgeExtraInfo{}, err
	}
	streetName, err := strconv.Atoi(tokens[2])
	if err != nil {
		return EdgeExtraInfo{}, err
	}
	roadClass, err := strconv.ParseUint(tokens[3], 10, 8)
	if err != nil {
		return EdgeExtraInfo{}, err
	}
	travelMode, err := strconv.ParseUint(tokens[4], 10, 8)
	if err != nil {
		return EdgeExtraInfo{}, err
	}
	flags, err := strconv.ParseUint(tokens[5], 10, 8)
	if err != nil {
		return EdgeExtraInfo{}, err
	}
	osmWayId, err := strconv.ParseInt(tokens[6], 10, 64)
	if err != nil {
		return EdgeExtraInfo{}, err
	}

	return EdgeExtraInfo{
		startPointsIndex: start,
		endPointsIndex:   end,
		streetName:       streetName,
		roadClass:        pkg.FunctionalRoadClass(roadClass),
		travelMode:       pkg.TravelMode(travelMode),
		flags:            uint8(flags),
		osmWayId:         osmWayId,
	}, nil
}
