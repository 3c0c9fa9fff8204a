package basis

import (
	"fmt"
	"math"

	"pinet/internal/model"
)

// Basis variant names.
const (
	BasisPolynomial = "polynomial"
	BasisGaussian   = "gaussian"
)

type basisKind int

const (
	kindPolynomial basisKind = iota
	kindGaussian
)

// Spec selects a basis variant and its parameters. Gamma and Centers only
// apply to the gaussian variant; Centers defaults to N evenly spaced points
// over [0, rc].
type Spec struct {
	Type    string    `json:"type"`
	N       int       `json:"n"`
	Gamma   float64   `json:"gamma,omitempty"`
	Centers []float64 `json:"centers,omitempty"`
}

// Expansion turns per-pair distances and envelope values into fixed-width
// basis rows. The width is constant for the whole network.
type Expansion struct {
	kind    basisKind
	n       int
	gamma   float64
	centers []float64
}

func New(spec Spec, rc float64) (*Expansion, error) {
	if spec.N <= 0 {
		return nil, fmt.Errorf("%w: basis count must be positive: got=%d", model.ErrConfig, spec.N)
	}
	switch spec.Type {
	case BasisPolynomial:
		return &Expansion{kind: kindPolynomial, n: spec.N}, nil
	case BasisGaussian:
		if spec.Gamma <= 0 {
			return nil, fmt.Errorf("%w: gaussian basis width must be positive: got=%v", model.ErrConfig, spec.Gamma)
		}
		centers := spec.Centers
		if len(centers) == 0 {
			centers = linspace(0, rc, spec.N)
		} else if len(centers) != spec.N {
			return nil, fmt.Errorf("%w: gaussian centers: got=%d want=%d", model.ErrConfig, len(centers), spec.N)
		}
		return &Expansion{
			kind:    kindGaussian,
			n:       spec.N,
			gamma:   spec.Gamma,
			centers: append([]float64(nil), centers...),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized basis variant: %s", model.ErrConfig, spec.Type)
	}
}

// Width is the basis row width n_basis.
func (e *Expansion) Width() int {
	return e.n
}

// Expand produces one basis row per pair from its distance and envelope
// value. Every row scales with the envelope, so the whole basis vanishes
// continuously at the cutoff boundary.
func (e *Expansion) Expand(dist, envelope []float64) ([][]float64, error) {
	if len(envelope) != len(dist) {
		return nil, fmt.Errorf("%w: basis expansion: envelope rows: got=%d want=%d",
			model.ErrShape, len(envelope), len(dist))
	}
	rows := make([][]float64, len(dist))
	for k := range dist {
		row := make([]float64, e.n)
		switch e.kind {
		case kindPolynomial:
			// fc, fc^2, ..., fc^n
			v := 1.0
			for b := 0; b < e.n; b++ {
				v *= envelope[k]
				row[b] = v
			}
		case kindGaussian:
			for b := 0; b < e.n; b++ {
				d := dist[k] - e.centers[b]
				row[b] = math.Exp(-e.gamma*d*d) * envelope[k]
			}
		}
		rows[k] = row
	}
	return rows, nil
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = (lo + hi) / 2
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
