// Package training turns rules.Engine games into neural-network training
// data: a pluggable state encoder, self-play workers driving mcts.Search,
// and an experience buffer feeding sampled batches to a learner.
package training

import (
	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/state"
)

// EncodedState is a flat tensor plus its shape, ready to hand to a
// neural network. Shape is row-major; len(Tensor) must equal the
// product of Shape.
type EncodedState struct {
	Tensor []float32
	Shape  []int
}

// NewEncodedState builds an EncodedState, panicking if tensor's length
// doesn't match shape's product - a mismatched encoder is a programmer
// error, not a runtime condition to recover from.
func NewEncodedState(tensor []float32, shape []int) EncodedState {
	product := 1
	for _, s := range shape {
		product *= s
	}
	if len(tensor) != product {
		panic("training: tensor length must match shape product")
	}
	return EncodedState{Tensor: tensor, Shape: shape}
}

// ZeroEncodedState returns a zero-filled tensor of the given shape.
func ZeroEncodedState(shape []int) EncodedState {
	product := 1
	for _, s := range shape {
		product *= s
	}
	return EncodedState{Tensor: make([]float32, product), Shape: shape}
}

// StateEncoder turns a game state into network input from one player's
// point of view, hiding anything the game marks not-visible-to-them.
type StateEncoder interface {
	Encode(st *state.GameState, perspective core.PlayerId) EncodedState
	OutputShape() []int
	ActionSpaceSize() int
	PlayerCount() int
}
