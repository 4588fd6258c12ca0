package guidance

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
	"golang.org/x/exp/slices"
)

/*
mergeSegregatedRoads. jalan dengan median (divided road) di osm sering digambar sebagai 2 oneway sejajar:

	   ----- e1 (valid)  ---->
	v <
	   <---- e2 (reversed) ----

dari v, e1 dan e2 kelihatan seperti 2 kandidat berbeda padahal satu jalan. keduanya digabung jadi satu kandidat.
kalau salah satunya reverse arm (angle 0), semua sudut lain dirotasi supaya hasil merge tetap di angle 0.
*/
func (ta *TurnAnalysis) mergeSegregatedRoads(ctx *turnContext) {
	candidates := ctx.candidates
	if len(candidates) < 2 {
		return
	}

	mergeable := func(i, j int) bool {
		return ta.isMergeable(candidates[i], candidates[j])
	}

	n := len(candidates)
	if candidates[0].IsReverse() && n >= 2 {
		if mergeable(0, n-1) {
			//      last
			//     /
			// in ---- (reverse, 0)
			// reverse arm pindah ke tengah-tengah (0, last). sudut lain digeser sebesar correction.
			correction := (360 - candidates[n-1].Angle) / 2
			for i := 1; i < n-1; i++ {
				candidates[i].Angle = rotate(candidates[i].Angle, correction)
			}
			candidates[n-1].Angle = 0
		} else if mergeable(0, 1) {
			correction := candidates[1].Angle / 2
			for i := 2; i < n; i++ {
				candidates[i].Angle = rotate(candidates[i].Angle, -correction)
			}
			candidates[1].Angle = 0
		}
	}

	for i := 0; i < len(candidates); {
		if len(candidates) < 2 {
			break
		}
		right := rightOf(i, len(candidates))
		if right == i || !ta.isMergeable(candidates[right], candidates[i]) {
			i++
			continue
		}
		// hasil merge disimpan di right, i dihapus. i tidak di-increment: elemen berikutnya sekarang ada di i.
		candidates[right] = mergeCandidates(candidates[right], candidates[i])
		candidates = slices.Delete(candidates, i, i+1)
	}

	sortCandidates(candidates)
	ctx.candidates = candidates
}

func (ta *TurnAnalysis) isMergeable(first, second TurnCandidate) bool {
	if first.segregated || second.segregated {
		return false
	}
	a, b := ta.edgeData(first), ta.edgeData(second)
	return a.NameID != pkg.INVALID_NAME_ID && a.NameID == b.NameID &&
		!a.Roundabout && !b.Roundabout &&
		a.TravelMode == b.TravelMode &&
		a.RoadClass == b.RoadClass &&
		geo.AngularDeviation(first.Angle, second.Angle) < SEGREGATED_MERGE_ANGLE &&
		a.Reversed != b.Reversed
}

// mergeCandidates. first = clockwise neighbour of second.
func mergeCandidates(first, second TurnCandidate) TurnCandidate {
	result := first
	if !first.Valid {
		result = second
	}
	result.Valid = first.Valid || second.Valid
	result.segregated = true

	angle := (first.Angle + second.Angle) / 2
	if first.Angle-second.Angle > 180 {
		angle += 180
	}
	if angle >= 360 {
		angle -= 360
	}
	result.Angle = angle
	return result
}

// rotate keeps non-reverse candidates away from 0.
func rotate(angle, by float64) float64 {
	rotated := geo.NormalizeAngle(angle + by)
	if rotated < minCandidateAngle {
		rotated = minCandidateAngle
	}
	return rotated
}
