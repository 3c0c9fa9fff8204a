package network

import (
	"fmt"

	"pinet/internal/model"
)

// Pool reduces per-atom output rows to per-molecule rows according to the
// group index. The empty mode (and "none") returns the rows unchanged.
func Pool(groups []int, rows [][]float64, mode string) ([][]float64, error) {
	if mode == PoolNone || mode == "none" {
		return rows, nil
	}
	switch mode {
	case PoolSum, PoolAvg, PoolMax, PoolMin:
	default:
		return nil, fmt.Errorf("%w: unrecognized pooling mode: %s", model.ErrConfig, mode)
	}
	if len(groups) != len(rows) {
		return nil, fmt.Errorf("%w: pooling: group rows: got=%d want=%d", model.ErrShape, len(groups), len(rows))
	}
	if len(rows) == 0 {
		return [][]float64{}, nil
	}

	width := len(rows[0])
	nGroups := groups[len(groups)-1] + 1
	out := make([][]float64, nGroups)
	counts := make([]int, nGroups)
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: pooling: output width at row %d: got=%d want=%d",
				model.ErrShape, i, len(row), width)
		}
		g := groups[i]
		if g < 0 || g >= nGroups {
			return nil, fmt.Errorf("%w: pooling: group %d at row %d outside [0,%d)",
				model.ErrShape, g, i, nGroups)
		}
		if out[g] == nil {
			out[g] = append([]float64(nil), row...)
			counts[g] = 1
			continue
		}
		counts[g]++
		for j, v := range row {
			switch mode {
			case PoolSum, PoolAvg:
				out[g][j] += v
			case PoolMax:
				if v > out[g][j] {
					out[g][j] = v
				}
			case PoolMin:
				if v < out[g][j] {
					out[g][j] = v
				}
			}
		}
	}
	for g := range out {
		if out[g] == nil {
			return nil, fmt.Errorf("%w: pooling: group %d has no atoms", model.ErrShape, g)
		}
		if mode == PoolAvg {
			for j := range out[g] {
				out[g][j] /= float64(counts[g])
			}
		}
	}
	return out, nil
}
