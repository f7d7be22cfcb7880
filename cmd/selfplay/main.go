// Package main provides the cardsim-selfplay smoke-test CLI: it drives
// one self-play game against the games/rps fixture and prints the
// resulting trajectory's outcome.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/signalnine/cardsim/games/rps"
	"github.com/signalnine/cardsim/state"
	"github.com/signalnine/cardsim/training"
)

var (
	iterations  int
	maxMoves    int
	temperature float64
	seed        uint64
	verbose     bool
)

func init() {
	flag.IntVar(&iterations, "iterations", 200, "MCTS iterations per move")
	flag.IntVar(&maxMoves, "max-moves", 10, "Move cap before the game is declared a draw")
	flag.Float64Var(&temperature, "temperature", 0, "Root action-selection temperature (<=0 is greedy argmax)")
	flag.Uint64Var(&seed, "seed", 1, "RNG seed for this game")
	flag.BoolVar(&verbose, "verbose", false, "Enable structured diagnostic logging")
}

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger = zap.NewNop()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "cardsim-selfplay: failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	engine := rps.NewEngine()
	worker := training.NewSelfPlayWorker(engine, rps.Encoder{}, training.SelfPlayConfig{
		MCTSIterations:      iterations,
		Temperature:         temperature,
		MaxMoves:            maxMoves,
		ExplorationConstant: 1.41421356,
	}, logger)

	traj := worker.PlayGame(state.NewGameState(2, seed), seed)

	fmt.Printf("trajectory %s: %d steps\n", traj.ID, len(traj.Steps))
	for _, step := range traj.Steps {
		fmt.Printf("  move %d: player %d played template %d\n", step.MoveNumber, step.Player, step.ActionTaken.Template)
	}
	if traj.Outcome != nil {
		fmt.Printf("outcome: player 0 = %.2f, player 1 = %.2f\n", traj.Outcome.Get(0), traj.Outcome.Get(1))
	}
}
