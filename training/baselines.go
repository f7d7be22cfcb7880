package training

// PolicyNetwork predicts a probability distribution over an encoder's
// action space from an encoded state.
type PolicyNetwork interface {
	Predict(encoded EncodedState) []float32
	PredictBatch(encoded []EncodedState) [][]float32
}

// ValueNetwork predicts a per-player value estimate from an encoded
// state.
type ValueNetwork interface {
	Predict(encoded EncodedState) []float32
	PredictBatch(encoded []EncodedState) [][]float32
}

// PolicyValueNetwork predicts both in one pass, for architectures that
// share early layers between the two heads.
type PolicyValueNetwork interface {
	Predict(encoded EncodedState) (policy []float32, value []float32)
	PredictBatch(encoded []EncodedState) ([][]float32, [][]float32)
}

// UniformPolicy is a baseline that spreads probability evenly across
// its declared action space, ignoring the encoded state entirely.
type UniformPolicy struct {
	ActionSpaceSize int
}

func NewUniformPolicy(actionSpaceSize int) UniformPolicy {
	return UniformPolicy{ActionSpaceSize: actionSpaceSize}
}

func (p UniformPolicy) Predict(EncodedState) []float32 {
	if p.ActionSpaceSize == 0 {
		return nil
	}
	prob := float32(1.0) / float32(p.ActionSpaceSize)
	probs := make([]float32, p.ActionSpaceSize)
	for i := range probs {
		probs[i] = prob
	}
	return probs
}

func (p UniformPolicy) PredictBatch(encoded []EncodedState) [][]float32 {
	out := make([][]float32, len(encoded))
	for i, e := range encoded {
		out[i] = p.Predict(e)
	}
	return out
}

// ZeroValue is a baseline that always predicts zero value for every
// player.
type ZeroValue struct {
	Players int
}

func NewZeroValue(playerCount int) ZeroValue { return ZeroValue{Players: playerCount} }

func (v ZeroValue) Predict(EncodedState) []float32 { return make([]float32, v.Players) }

func (v ZeroValue) PredictBatch(encoded []EncodedState) [][]float32 {
	out := make([][]float32, len(encoded))
	for i, e := range encoded {
		out[i] = v.Predict(e)
	}
	return out
}

// UniformPolicyZeroValue combines UniformPolicy and ZeroValue behind a
// single PolicyValueNetwork, for tests and smoke runs with no trained
// network available.
type UniformPolicyZeroValue struct {
	ActionSpaceSize int
	Players         int
}

func NewUniformPolicyZeroValue(actionSpaceSize, playerCount int) UniformPolicyZeroValue {
	return UniformPolicyZeroValue{ActionSpaceSize: actionSpaceSize, Players: playerCount}
}

func (n UniformPolicyZeroValue) Predict(encoded EncodedState) ([]float32, []float32) {
	policy := NewUniformPolicy(n.ActionSpaceSize).Predict(encoded)
	value := NewZeroValue(n.Players).Predict(encoded)
	return policy, value
}

func (n UniformPolicyZeroValue) PredictBatch(encoded []EncodedState) ([][]float32, [][]float32) {
	policies := make([][]float32, len(encoded))
	values := make([][]float32, len(encoded))
	for i, e := range encoded {
		policies[i], values[i] = n.Predict(e)
	}
	return policies, values
}
