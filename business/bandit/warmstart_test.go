package bandit

import (
	"math/rand"
	"testing"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// simulated environment: arm-0 is clearly best
const (
	simArms      = 10
	simTrials    = 50
	simGoodP     = 0.9
	simBadP      = 0.1
	simPriorMass = 1000.0
)

func simArmID(i int) string {
	return string(rune('a' + i))
}

func runScenario(t *testing.T, similarities []float64, banditSeed, envSeed int64) domain.LearningSnapshot {
	t.Helper()

	arms := make([]domain.Arm, simArms)
	for i := 0; i < simArms; i++ {
		s := similarities[i]
		arms[i] = domain.Arm{ID: simArmID(i), Similarity: &s}
	}

	priors, err := InitPriors(arms, simPriorMass)
	if err != nil {
		t.Fatalf("InitPriors failed: %v", err)
	}
	h, err := NewHandle("role-sim", priors, DefaultConfig(), rand.New(rand.NewSource(banditSeed)))
	if err != nil {
		t.Fatalf("NewHandle failed: %v", err)
	}

	env := rand.New(rand.NewSource(envSeed))
	for i := 0; i < simTrials; i++ {
		armID, err := h.Select()
		if err != nil {
			t.Fatalf("select failed: %v", err)
		}

		p := simBadP
		if armID == simArmID(0) {
			p = simGoodP
		}
		reward := 0.0
		if env.Float64() < p {
			reward = 1.0
		}
		if err := h.Update(armID, reward); err != nil {
			t.Fatalf("update failed: %v", err)
		}
	}

	return h.Summary()
}

func TestWarmStartBeatsColdStart(t *testing.T) {
	warmSims := make([]float64, simArms)
	coldSims := make([]float64, simArms)
	for i := range warmSims {
		warmSims[i] = simBadP
		coldSims[i] = 0.5
	}
	warmSims[0] = simGoodP

	warm := runScenario(t, warmSims, 42, 1042)
	cold := runScenario(t, coldSims, 42, 1042)

	t.Logf("[WARM] interactions=%d regret=%.3f response_rate=%.3f",
		warm.Interactions, warm.CumulativeRegret, warm.ResponseRate)
	t.Logf("[COLD] interactions=%d regret=%.3f response_rate=%.3f",
		cold.Interactions, cold.CumulativeRegret, cold.ResponseRate)

	if warm.CumulativeRegret >= cold.CumulativeRegret {
		t.Errorf("warm-start regret %.3f not below cold-start regret %.3f",
			warm.CumulativeRegret, cold.CumulativeRegret)
	}
}
