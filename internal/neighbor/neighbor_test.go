package neighbor

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"pinet/internal/model"
)

// naivePairs is the reference quadratic scan the cell-list build must match.
func naivePairs(coords [][3]float64, groups []int, rc float64) map[[2]int]float64 {
	out := make(map[[2]int]float64)
	for i := range coords {
		for j := range coords {
			if i == j || groups[i] != groups[j] {
				continue
			}
			dx := coords[j][0] - coords[i][0]
			dy := coords[j][1] - coords[i][1]
			dz := coords[j][2] - coords[i][2]
			r := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if r < rc {
				out[[2]int{i, j}] = r
			}
		}
	}
	return out
}

func TestBuildPairsMatchesNaiveScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 60
	coords := make([][3]float64, n)
	groups := make([]int, n)
	for i := range coords {
		for d := 0; d < 3; d++ {
			coords[i][d] = rng.Float64() * 10
		}
		groups[i] = i / 20
	}

	const rc = 3.0
	pairs, dist, diff, err := BuildPairs(coords, groups, rc)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := naivePairs(coords, groups, rc)
	if len(pairs) != len(want) {
		t.Fatalf("unexpected pair count: got=%d want=%d", len(pairs), len(want))
	}
	for k, pr := range pairs {
		r, ok := want[pr]
		if !ok {
			t.Fatalf("unexpected pair %v", pr)
		}
		if math.Abs(dist[k]-r) > 1e-12 {
			t.Fatalf("unexpected distance for %v: got=%v want=%v", pr, dist[k], r)
		}
		mag := math.Sqrt(diff[k][0]*diff[k][0] + diff[k][1]*diff[k][1] + diff[k][2]*diff[k][2])
		if math.Abs(mag-r) > 1e-12 {
			t.Fatalf("displacement magnitude for %v: got=%v want=%v", pr, mag, r)
		}
	}
}

func TestBuildPairsSymmetric(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1.5, 0}}
	groups := []int{0, 0, 0}

	pairs, _, _, err := BuildPairs(coords, groups, 2.5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	seen := make(map[[2]int]bool, len(pairs))
	for _, pr := range pairs {
		seen[pr] = true
	}
	for _, pr := range pairs {
		if !seen[[2]int{pr[1], pr[0]}] {
			t.Fatalf("pair %v has no mirror", pr)
		}
	}
}

func TestBuildPairsRespectsGroups(t *testing.T) {
	// Two overlapping molecules: no cross-group pairs even at zero distance.
	coords := [][3]float64{{0, 0, 0}, {0.1, 0, 0}, {0, 0, 0}, {0.1, 0, 0}}
	groups := []int{0, 0, 1, 1}

	pairs, _, _, err := BuildPairs(coords, groups, 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, pr := range pairs {
		if groups[pr[0]] != groups[pr[1]] {
			t.Fatalf("cross-group pair %v", pr)
		}
	}
	if len(pairs) != 4 {
		t.Fatalf("unexpected pair count: got=%d want=4", len(pairs))
	}
}

func TestBuildPairsExcludesCutoffAndBeyond(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {2, 0, 0}}
	groups := []int{0, 0}

	pairs, _, _, err := BuildPairs(coords, groups, 2.0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("pair exactly at the cutoff must be excluded, got %d pairs", len(pairs))
	}
}

func TestBuildPairsRejectsBadInput(t *testing.T) {
	if _, _, _, err := BuildPairs(nil, nil, 0); !errors.Is(err, model.ErrConfig) {
		t.Fatalf("expected configuration error, got: %v", err)
	}
	_, _, _, err := BuildPairs(make([][3]float64, 2), []int{0}, 1)
	if !errors.Is(err, model.ErrInput) {
		t.Fatalf("expected input error, got: %v", err)
	}
}
