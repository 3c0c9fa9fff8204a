package basis

import (
	"errors"
	"math"
	"testing"

	"pinet/internal/model"
)

func TestNewCutoffRejectsBadConfig(t *testing.T) {
	if _, err := NewCutoff("f3", 4.0); !errors.Is(err, model.ErrConfig) {
		t.Fatalf("expected configuration error for unknown variant, got: %v", err)
	}
	if _, err := NewCutoff(CutoffCosine, 0); !errors.Is(err, model.ErrConfig) {
		t.Fatalf("expected configuration error for zero radius, got: %v", err)
	}
}

func TestCutoffBoundaryBehavior(t *testing.T) {
	const rc = 4.0
	for _, name := range []string{CutoffCosine, CutoffTanh} {
		fc, err := NewCutoff(name, rc)
		if err != nil {
			t.Fatalf("new %s: %v", name, err)
		}

		if got := fc(0); math.Abs(got-1) > 1e-12 {
			t.Fatalf("%s at zero distance: got=%v want=1", name, got)
		}
		if got := fc(rc); got != 0 {
			t.Fatalf("%s at cutoff: got=%v want=0", name, got)
		}
		if got := fc(rc + 1); got != 0 {
			t.Fatalf("%s beyond cutoff: got=%v want=0", name, got)
		}

		// Continuity: the envelope decays to zero as the distance approaches
		// the cutoff, with no jump at the boundary.
		prev := fc(0)
		for _, frac := range []float64{0.5, 0.9, 0.99, 0.999, 0.9999} {
			cur := fc(rc * frac)
			if cur > prev {
				t.Fatalf("%s not monotone near cutoff at %v: %v > %v", name, frac, cur, prev)
			}
			prev = cur
		}
		if prev > 1e-6 {
			t.Fatalf("%s does not vanish near cutoff: %v", name, prev)
		}
	}
}
