package bandit

import (
	"errors"
	"math"
	"testing"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

func fp(v float64) *float64 { return &v }

func TestInitPriors_WarmStart(t *testing.T) {
	arms := []domain.Arm{
		{ID: "cand-a", Similarity: fp(0.9)},
		{ID: "cand-b", Similarity: fp(0.1)},
		{ID: "cand-c", Similarity: fp(0.0)},
		{ID: "cand-d", Similarity: fp(1.0)},
	}

	priors, err := InitPriors(arms, 1000)
	if err != nil {
		t.Fatalf("InitPriors failed: %v", err)
	}

	for id, st := range priors {
		if st.Alpha <= 0 || st.Beta <= 0 {
			t.Errorf("arm %s has non-positive pseudo-counts: %+v", id, st)
		}
	}

	a := priors["cand-a"]
	if a.Alpha != 1+1000*0.9 || a.Beta != 1+1000*0.1 {
		t.Errorf("cand-a priors = %+v, want alpha=901 beta=101", a)
	}

	// even at similarity 0 or 1 the Beta stays non-degenerate
	if priors["cand-c"].Alpha != 1 || priors["cand-d"].Beta != 1 {
		t.Errorf("edge similarities produced degenerate priors: c=%+v d=%+v",
			priors["cand-c"], priors["cand-d"])
	}
}

func TestInitPriors_MeanApproachesSimilarity(t *testing.T) {
	sim := 0.73
	for _, budget := range []float64{100, 1000, 100000} {
		priors, err := InitPriors([]domain.Arm{{ID: "a", Similarity: fp(sim)}}, budget)
		if err != nil {
			t.Fatalf("InitPriors failed: %v", err)
		}
		mean := priors["a"].Mean()
		tol := 2.0 / budget
		if math.Abs(mean-sim) > tol {
			t.Errorf("budget=%v: prior mean %v not within %v of similarity %v", budget, mean, tol, sim)
		}
	}
}

func TestInitPriors_MissingSimilarityStartsCold(t *testing.T) {
	nan := math.NaN()
	arms := []domain.Arm{
		{ID: "warm", Similarity: fp(0.8)},
		{ID: "cold"},
		{ID: "nan", Similarity: &nan},
	}

	priors, err := InitPriors(arms, 500)
	if err != nil {
		t.Fatalf("InitPriors failed: %v", err)
	}

	for _, id := range []string{"cold", "nan"} {
		if priors[id] != (ArmState{Alpha: 1, Beta: 1}) {
			t.Errorf("arm %s = %+v, want uninformative (1,1)", id, priors[id])
		}
	}
	if priors["warm"].Alpha != 1+500*0.8 {
		t.Errorf("warm arm alpha = %v", priors["warm"].Alpha)
	}
}

func TestInitPriors_InvalidSimilarity(t *testing.T) {
	for _, s := range []float64{-0.01, 1.01, 5} {
		_, err := InitPriors([]domain.Arm{{ID: "a", Similarity: fp(s)}}, 1000)
		if !errors.Is(err, ErrInvalidSimilarity) {
			t.Errorf("similarity %v: got %v, want ErrInvalidSimilarity", s, err)
		}
	}
}

func TestInitPriors_EmptyAndBadBudget(t *testing.T) {
	if _, err := InitPriors(nil, 1000); !errors.Is(err, ErrEmptyArmSet) {
		t.Errorf("empty arms: got %v, want ErrEmptyArmSet", err)
	}
	if _, err := InitPriors([]domain.Arm{{ID: "a"}}, 0); err == nil {
		t.Error("zero budget accepted")
	}
	if _, err := InitPriors([]domain.Arm{{ID: "a"}}, -5); err == nil {
		t.Error("negative budget accepted")
	}
}
