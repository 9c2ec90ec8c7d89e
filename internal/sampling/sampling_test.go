package sampling

import (
	"testing"
)

func TestSampleOne(t *testing.T) {
	if i := SampleOne([]float64{1.0}); i != 0 {
		t.Errorf("expected index 0 from a point distribution, got %d", i)
	}

	for n := 0; n < 100; n++ {
		if i := SampleOne([]float64{0.0, 1.0}); i != 1 {
			t.Fatalf("expected index 1 from [0, 1], got %d", i)
		}
	}
}

func TestSampleOne_BadDistributionPanicsWithError(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for a distribution that does not sum to 1")
		}
		if _, ok := r.(error); !ok {
			t.Errorf("expected an error panic value, got %T: %v", r, r)
		}
	}()

	SampleOne([]float64{0.0, 0.0})
}
