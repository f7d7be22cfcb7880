package training

import (
	"github.com/google/uuid"

	"github.com/signalnine/cardsim/core"
)

// ActionProb pairs a legal action with the search-visit probability MCTS
// assigned it at the move it was recorded from.
type ActionProb struct {
	Action core.Action
	Prob   float32
}

// Step is one recorded move in a trajectory: the encoded state the
// searching player saw, the full action-probability distribution MCTS
// produced, the action actually taken, who took it, and its move index.
type Step struct {
	Encoded     EncodedState
	ActionProbs []ActionProb
	ActionTaken core.Action
	Player      core.PlayerId
	MoveNumber  int
}

// Trajectory is a complete recorded game: its steps plus, once the game
// ends, a per-player outcome vector.
type Trajectory struct {
	ID      uuid.UUID
	Steps   []Step
	Outcome *core.PlayerMap[float64]
}

// NewTrajectory starts an empty trajectory with a fresh random ID.
func NewTrajectory() Trajectory {
	return Trajectory{ID: uuid.New()}
}

func (t *Trajectory) RecordStep(step Step) { t.Steps = append(t.Steps, step) }

// TrainingSample is one (state, policy, value, player) tuple ready for a
// learner: value is the eventual outcome for the step's acting player.
type TrainingSample struct {
	State  EncodedState
	Policy []float32
	Value  float32
	Player core.PlayerId
}

// ToTrainingSamples expands every step into a TrainingSample, filling
// Policy with a vector parallel to each step's ActionProbs (index i
// holds the probability of the i-th recorded legal action) and
// Value from the trajectory's outcome for that step's player. Returns
// nil if the trajectory has no outcome yet.
func (t Trajectory) ToTrainingSamples() []TrainingSample {
	if t.Outcome == nil {
		return nil
	}
	samples := make([]TrainingSample, 0, len(t.Steps))
	for _, step := range t.Steps {
		policy := make([]float32, len(step.ActionProbs))
		for i, ap := range step.ActionProbs {
			policy[i] = ap.Prob
		}
		samples = append(samples, TrainingSample{
			State:  step.Encoded,
			Policy: policy,
			Value:  float32(t.Outcome.Get(step.Player)),
			Player: step.Player,
		})
	}
	return samples
}
