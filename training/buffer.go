package training

import "github.com/signalnine/cardsim/core"

// ExperienceBuffer is a bounded FIFO of trajectories: pushing past
// capacity evicts the oldest entry.
type ExperienceBuffer struct {
	capacity     int
	trajectories []Trajectory
}

func NewExperienceBuffer(capacity int) *ExperienceBuffer {
	if capacity <= 0 {
		panic("training: ExperienceBuffer capacity must be positive")
	}
	return &ExperienceBuffer{capacity: capacity}
}

// Push appends traj, evicting the oldest trajectory if the buffer is at
// capacity.
func (b *ExperienceBuffer) Push(traj Trajectory) {
	if len(b.trajectories) >= b.capacity {
		b.trajectories = b.trajectories[1:]
	}
	b.trajectories = append(b.trajectories, traj)
}

func (b *ExperienceBuffer) Len() int { return len(b.trajectories) }

// ToTrainingSamples concatenates every trajectory's samples in FIFO
// order.
func (b *ExperienceBuffer) ToTrainingSamples() []TrainingSample {
	var out []TrainingSample
	for _, traj := range b.trajectories {
		out = append(out, traj.ToTrainingSamples()...)
	}
	return out
}

// SampleBatch draws n samples without replacement via a partial
// Fisher-Yates shuffle of the sample-index space, seeded from seed so
// the draw is reproducible. Returns fewer than n if the buffer holds
// fewer samples overall.
func (b *ExperienceBuffer) SampleBatch(n int, seed uint64) []TrainingSample {
	all := b.ToTrainingSamples()
	if n > len(all) {
		n = len(all)
	}
	rng := core.NewRNG(seed)
	indices := make([]int, len(all))
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	out := make([]TrainingSample, n)
	for i := 0; i < n; i++ {
		out[i] = all[indices[i]]
	}
	return out
}
