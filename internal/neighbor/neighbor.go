// Package neighbor builds the ordered neighbor-pair list consumed by the
// message-passing core: every (receiver, sender) pair of distinct atoms in
// the same molecule whose distance is strictly inside the cutoff radius.
// The output is symmetric — (i,j) is present iff (j,i) is — which the
// aggregation step's completeness depends on. Periodic cells are not
// handled here.
package neighbor

import (
	"fmt"
	"math"
	"sort"

	"pinet/internal/model"
)

type cellKey struct {
	group      int
	cx, cy, cz int
}

// BuildPairs returns pair indices, distances, and displacement vectors
// (pointing from receiver to sender). Atoms are binned into cells of the
// cutoff size per molecule, so only the 27 surrounding cells are scanned
// per atom; the result is identical to a full quadratic scan. Pair order is
// deterministic: ascending receiver, then ascending sender.
func BuildPairs(coords [][3]float64, groups []int, rc float64) ([][2]int, []float64, [][3]float64, error) {
	if rc <= 0 {
		return nil, nil, nil, fmt.Errorf("%w: cutoff radius must be positive: got=%v", model.ErrConfig, rc)
	}
	if len(groups) != len(coords) {
		return nil, nil, nil, fmt.Errorf("%w: group rows: got=%d want=%d", model.ErrInput, len(groups), len(coords))
	}

	cells := make(map[cellKey][]int, len(coords))
	for i, c := range coords {
		key := cellKey{
			group: groups[i],
			cx:    int(math.Floor(c[0] / rc)),
			cy:    int(math.Floor(c[1] / rc)),
			cz:    int(math.Floor(c[2] / rc)),
		}
		cells[key] = append(cells[key], i)
	}

	var (
		pairs [][2]int
		dist  []float64
		diff  [][3]float64
	)
	for i, ci := range coords {
		home := cellKey{
			group: groups[i],
			cx:    int(math.Floor(ci[0] / rc)),
			cy:    int(math.Floor(ci[1] / rc)),
			cz:    int(math.Floor(ci[2] / rc)),
		}
		var senders []int
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					key := cellKey{group: home.group, cx: home.cx + dx, cy: home.cy + dy, cz: home.cz + dz}
					senders = append(senders, cells[key]...)
				}
			}
		}
		sort.Ints(senders)

		for _, j := range senders {
			if j == i {
				continue
			}
			cj := coords[j]
			d := [3]float64{cj[0] - ci[0], cj[1] - ci[1], cj[2] - ci[2]}
			r := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
			if r >= rc {
				continue
			}
			pairs = append(pairs, [2]int{i, j})
			dist = append(dist, r)
			diff = append(diff, d)
		}
	}
	return pairs, dist, diff, nil
}
