package training

import (
	"context"

	channerics "github.com/niceyeti/channerics/channels"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/mcts"
	"github.com/signalnine/cardsim/rules"
	"github.com/signalnine/cardsim/state"
)

// SelfPlayConfig tunes one worker's games.
type SelfPlayConfig struct {
	MCTSIterations       int
	Temperature          float64
	TemperatureThreshold int // move index at which temperature drops to 0; 0 = never
	MaxMoves             int
	ExplorationConstant  float64
	SeedOffset           uint64
}

// temperatureFor returns cfg.Temperature until moveNumber reaches
// TemperatureThreshold, then 0 (greedy exploitation) - TemperatureThreshold
// 0 means "never switch".
func (cfg SelfPlayConfig) temperatureFor(moveNumber int) float64 {
	if cfg.TemperatureThreshold > 0 && moveNumber >= cfg.TemperatureThreshold {
		return 0
	}
	return cfg.Temperature
}

// SelfPlayWorker plays games of engine end to end, recording a
// Trajectory of encoded states and MCTS visit distributions.
type SelfPlayWorker struct {
	Engine  rules.Engine
	Encoder StateEncoder
	Config  SelfPlayConfig
	Logger  *zap.Logger
}

func NewSelfPlayWorker(engine rules.Engine, encoder StateEncoder, cfg SelfPlayConfig, logger *zap.Logger) *SelfPlayWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelfPlayWorker{Engine: engine, Encoder: encoder, Config: cfg, Logger: logger}
}

// PlayGame runs st forward move by move, driving MCTS for whoever is
// active at each step, until the game ends, a move produces no legal
// action, or Config.MaxMoves is reached. The returned trajectory always
// carries an Outcome: a genuine terminal result, a 0.5-everywhere
// heuristic if a move had no legal action, or the same heuristic if
// MaxMoves was exceeded.
func (w *SelfPlayWorker) PlayGame(st *state.GameState, seed uint64) Trajectory {
	traj := NewTrajectory()
	playerCount := st.PlayerCount()
	search := mcts.NewSearch(playerCount, mcts.DefaultConfig().
		WithSeed(seed+w.Config.SeedOffset).
		WithExplorationConstant(w.Config.ExplorationConstant))

	for move := 0; move < w.Config.MaxMoves; move++ {
		if result, terminal := w.Engine.IsTerminal(st); terminal {
			outcome := mcts.OutcomeRewards(result, playerCount)
			traj.Outcome = &outcome
			return traj
		}

		player := st.Public.ActivePlayer
		search.Config = search.Config.WithTemperature(w.Config.temperatureFor(move))

		action, ok := search.Run(w.Engine, st, player, w.Config.MCTSIterations)
		if !ok {
			w.Logger.Warn("self-play move produced no legal action", zap.String("trajectory", traj.ID.String()), zap.Int("move", move))
			outcome := core.NewPlayerMap(playerCount, 0.5)
			traj.Outcome = &outcome
			return traj
		}

		root := search.Tree.Get(search.Tree.Root())
		actionProbs := make([]ActionProb, len(root.Edges))
		var totalVisits uint32
		for _, e := range root.Edges {
			totalVisits += e.Visits
		}
		for i, e := range root.Edges {
			var prob float32
			if totalVisits > 0 {
				prob = float32(e.Visits) / float32(totalVisits)
			}
			actionProbs[i] = ActionProb{Action: e.Action, Prob: prob}
		}

		traj.RecordStep(Step{
			Encoded:     w.Encoder.Encode(st, player),
			ActionProbs: actionProbs,
			ActionTaken: action,
			Player:      player,
			MoveNumber:  move,
		})

		w.Engine.ApplyAction(st, player, action)
	}

	if result, terminal := w.Engine.IsTerminal(st); terminal {
		outcome := mcts.OutcomeRewards(result, playerCount)
		traj.Outcome = &outcome
		return traj
	}
	w.Logger.Info("self-play hit max moves", zap.String("trajectory", traj.ID.String()), zap.Int("maxMoves", w.Config.MaxMoves))
	outcome := core.NewPlayerMap(playerCount, 0.5)
	traj.Outcome = &outcome
	return traj
}

// RunSelfPlayBatch runs one game per (worker, seed) pair concurrently,
// each against its own state built from initial(), and returns every
// resulting trajectory. Each goroutine checks ctx before starting its
// game and returns ctx's error if it is already done; a game already in
// progress runs to completion. PlayGame itself never returns an error,
// so the only error reported is ctx cancellation.
func RunSelfPlayBatch(ctx context.Context, workers []*SelfPlayWorker, initial func() *state.GameState, seeds []uint64) ([]Trajectory, error) {
	if len(workers) != len(seeds) {
		panic("training: RunSelfPlayBatch requires one seed per worker")
	}
	group, groupCtx := errgroup.WithContext(ctx)
	trajectories := make([]Trajectory, len(workers))

	for i, worker := range workers {
		i, worker, seed := i, worker, seeds[i]
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}
			trajectories[i] = worker.PlayGame(initial(), seed)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return trajectories, nil
}

// FanInSamples merges a set of per-worker completed-trajectory channels
// into a single training-sample stream, in the order trajectories
// arrive, flattening each via ToTrainingSamples. The merge stops once
// every input channel is closed.
func FanInSamples(trajChans []<-chan Trajectory) <-chan TrainingSample {
	done := make(chan struct{})
	merged := channerics.Merge(done, trajChans...)

	out := make(chan TrainingSample)
	go func() {
		defer close(out)
		for traj := range merged {
			for _, sample := range traj.ToTrainingSamples() {
				out <- sample
			}
		}
	}()
	return out
}
