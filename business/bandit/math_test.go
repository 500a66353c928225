package bandit

import (
	"math"
	"math/rand"
	"testing"
)

func TestWilsonInterval_Bounds(t *testing.T) {
	z := zForConfidence(0.95)

	lo, hi := wilsonInterval(0, 0, z)
	if lo != 0 || hi != 1 {
		t.Errorf("zero trials: got [%v, %v], want [0, 1]", lo, hi)
	}

	lo, hi = wilsonInterval(10, 10, z)
	if lo < 0 || hi > 1 || lo > hi {
		t.Errorf("all successes: invalid interval [%v, %v]", lo, hi)
	}
	if hi != 1 {
		t.Errorf("all successes: upper bound %v, want 1 after clamping", hi)
	}

	lo, hi = wilsonInterval(0, 10, z)
	if lo != 0 {
		t.Errorf("all failures: lower bound %v, want 0", lo)
	}
}

func TestWilsonInterval_NarrowsWithTrials(t *testing.T) {
	z := zForConfidence(0.95)
	prevWidth := 1.0
	for _, trials := range []float64{1, 5, 20, 100, 1000} {
		lo, hi := wilsonInterval(trials*0.7, trials, z)
		width := hi - lo
		if width >= prevWidth {
			t.Errorf("trials=%v: width %v did not shrink below %v", trials, width, prevWidth)
		}
		prevWidth = width
	}
}

func TestPrecisionRecallF1(t *testing.T) {
	p, r, f1 := precisionRecallF1(8, 2, 4)
	if math.Abs(p-0.8) > 1e-12 {
		t.Errorf("precision = %v, want 0.8", p)
	}
	if math.Abs(r-8.0/12.0) > 1e-12 {
		t.Errorf("recall = %v, want 2/3", r)
	}
	want := 2 * 0.8 * (8.0 / 12.0) / (0.8 + 8.0/12.0)
	if math.Abs(f1-want) > 1e-12 {
		t.Errorf("f1 = %v, want %v", f1, want)
	}

	// degenerate counts yield zeros, not NaN
	p, r, f1 = precisionRecallF1(0, 0, 0)
	if p != 0 || r != 0 || f1 != 0 {
		t.Errorf("empty counts: got (%v, %v, %v), want zeros", p, r, f1)
	}
}

func TestSampleBeta_InUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	shapes := [][2]float64{{1, 1}, {0.5, 0.5}, {901, 101}, {2, 50}, {0.3, 4}}
	for _, s := range shapes {
		for i := 0; i < 1000; i++ {
			v := sampleBeta(rng, s[0], s[1])
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("Beta(%v,%v) sample %v outside [0,1]", s[0], s[1], v)
			}
		}
	}
}

func TestSampleBeta_TracksMean(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	alpha, beta := 90.0, 10.0
	sum := 0.0
	n := 20000
	for i := 0; i < n; i++ {
		sum += sampleBeta(rng, alpha, beta)
	}
	mean := sum / float64(n)
	if math.Abs(mean-0.9) > 0.01 {
		t.Errorf("empirical mean %v, want ~0.9", mean)
	}
}

func TestSampleBeta_Deterministic(t *testing.T) {
	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		va := sampleBeta(a, 3.5, 1.5)
		vb := sampleBeta(b, 3.5, 1.5)
		if va != vb {
			t.Fatalf("draw %d diverged: %v vs %v", i, va, vb)
		}
	}
}
