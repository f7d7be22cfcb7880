package training

import (
	"testing"

	"github.com/signalnine/cardsim/core"
)

func TestEncodedStatePanicsOnShapeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on tensor/shape length mismatch")
		}
	}()
	NewEncodedState([]float32{1, 2, 3}, []int{2, 2})
}

func TestZeroEncodedState(t *testing.T) {
	s := ZeroEncodedState([]int{3, 4})
	if len(s.Tensor) != 12 {
		t.Fatalf("expected 12 elements, got %d", len(s.Tensor))
	}
	for _, v := range s.Tensor {
		if v != 0 {
			t.Fatal("expected every element to be zero")
		}
	}
}

func newOutcome(p0, p1 float64) *core.PlayerMap[float64] {
	m := core.NewPlayerMapFunc(2, func(p core.PlayerId) float64 {
		if p == 0 {
			return p0
		}
		return p1
	})
	return &m
}

func TestTrajectoryToTrainingSamples(t *testing.T) {
	traj := NewTrajectory()
	traj.RecordStep(Step{
		Encoded:     ZeroEncodedState([]int{2}),
		ActionProbs: []ActionProb{{Action: core.NewAction(1), Prob: 0.75}, {Action: core.NewAction(2), Prob: 0.25}},
		ActionTaken: core.NewAction(1),
		Player:      core.PlayerId(0),
		MoveNumber:  0,
	})
	traj.RecordStep(Step{
		Encoded:     ZeroEncodedState([]int{2}),
		ActionProbs: []ActionProb{{Action: core.NewAction(1), Prob: 1.0}},
		ActionTaken: core.NewAction(1),
		Player:      core.PlayerId(1),
		MoveNumber:  1,
	})
	traj.Outcome = newOutcome(1.0, 0.0)

	samples := traj.ToTrainingSamples()
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Value != 1.0 || samples[0].Player != 0 {
		t.Fatalf("expected player 0's sample value 1.0, got %+v", samples[0])
	}
	if samples[1].Value != 0.0 || samples[1].Player != 1 {
		t.Fatalf("expected player 1's sample value 0.0, got %+v", samples[1])
	}
	if len(samples[0].Policy) != 2 || samples[0].Policy[0] != 0.75 {
		t.Fatalf("expected policy vector [0.75, 0.25], got %v", samples[0].Policy)
	}
}

func TestTrajectoryToTrainingSamplesNilWithoutOutcome(t *testing.T) {
	traj := NewTrajectory()
	traj.RecordStep(Step{Encoded: ZeroEncodedState([]int{1})})
	if samples := traj.ToTrainingSamples(); samples != nil {
		t.Fatalf("expected nil samples before an outcome is attached, got %v", samples)
	}
}
