package match

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"lanewar/internal/ai"
	"lanewar/internal/combat"
	"lanewar/internal/config"
	"lanewar/internal/util"
)

// BatchConfig describes a headless run of many matches. The human side is
// played by ai.Autopilot.
type BatchConfig struct {
	Catalog    *config.Catalog
	Mode       combat.Mode
	Difficulty string
	Runs       int
	Workers    int
	Seed       int64
	// MaxTime caps each match in match seconds; unfinished matches count as timeouts.
	MaxTime float64
	// ActEvery is the autopilot's period in match seconds.
	ActEvery        float64
	Provider        ai.Provider
	ProviderTimeout time.Duration
	Logger          *slog.Logger
}

type RunResult struct {
	Index       int     `json:"index"`
	Seed        int64   `json:"seed"`
	Outcome     string  `json:"outcome"`
	Duration    float64 `json:"duration"`
	EliteKills  int     `json:"elite_kills"`
	HumanAge    int     `json:"human_age"`
	OpponentAge int     `json:"opponent_age"`
	Actions     int     `json:"actions"`
}

type Summary struct {
	Runs          int         `json:"runs"`
	Mode          string      `json:"mode"`
	Difficulty    string      `json:"difficulty"`
	Wins          int         `json:"wins"`
	Losses        int         `json:"losses"`
	Timeouts      int         `json:"timeouts"`
	WinRate       float64     `json:"win_rate"`
	AvgDuration   float64     `json:"avg_duration"`
	AvgEliteKills float64     `json:"avg_elite_kills"`
	Results       []RunResult `json:"results"`
}

func (c *BatchConfig) defaults() {
	if c.Runs <= 0 {
		c.Runs = 1
	}
	if c.Workers <= 0 {
		c.Workers = 8
	}
	if c.MaxTime <= 0 {
		c.MaxTime = 1200
	}
	if c.ActEvery <= 0 {
		c.ActEvery = 1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// RunBatch plays cfg.Runs matches on a worker pool. Results are ordered by
// index and do not depend on scheduling.
func RunBatch(ctx context.Context, cfg BatchConfig) (Summary, error) {
	cfg.defaults()
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return Summary{}, err
	}
	if _, ok := cfg.Catalog.Difficulty(cfg.Difficulty); !ok {
		return Summary{}, ErrUnknownDifficulty
	}

	results := make([]RunResult, 0, cfg.Runs)
	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan int, cfg.Runs)
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				res := RunOne(cfg, i)
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < cfg.Runs; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	sum := Summary{
		Runs:       len(results),
		Mode:       string(cfg.Mode),
		Difficulty: cfg.Difficulty,
		Results:    results,
	}
	var totalT float64
	var totalElite int
	for _, r := range results {
		switch r.Outcome {
		case combat.Won.String():
			sum.Wins++
		case combat.Lost.String():
			sum.Losses++
		default:
			sum.Timeouts++
		}
		totalT += r.Duration
		totalElite += r.EliteKills
	}
	if n := float64(len(results)); n > 0 {
		sum.WinRate = float64(sum.Wins) / n
		sum.AvgDuration = totalT / n
		sum.AvgEliteKills = float64(totalElite) / n
	}
	cfg.Logger.Info("batch finished", "runs", sum.Runs, "win_rate", sum.WinRate, "avg_duration", sum.AvgDuration)
	return sum, nil
}

// RunOne plays match i of a batch on a manual clock.
func RunOne(cfg BatchConfig, i int) RunResult {
	cfg.defaults()
	seed := util.RunSeed(cfg.Seed, i)
	clock := combat.NewManualClock(time.Unix(0, 0))

	var ended *Result
	m := New(Options{
		Catalog:         cfg.Catalog,
		Clock:           clock,
		Logger:          cfg.Logger.With("run", i),
		Provider:        cfg.Provider,
		ProviderTimeout: cfg.ProviderTimeout,
		Sink:            SinkFunc(func(r Result) { ended = &r }),
	})
	res := RunResult{Index: i, Seed: seed}
	if err := m.Start(cfg.Mode, cfg.Difficulty); err != nil {
		res.Outcome = "error"
		return res
	}
	defer m.Restart()

	// just past the pacer threshold so every Step runs exactly one tick
	step := m.Pacer().Interval() + time.Microsecond
	pilot := ai.NewAutopilot(seed)
	w := m.World()
	m.Step(clock.Now())
	next := 0.0
	for w.Status == combat.Playing && w.Time < cfg.MaxTime {
		if w.Time >= next {
			if pilot.Act(w) != "" {
				res.Actions++
			}
			next += cfg.ActEvery
		}
		clock.Advance(step)
		m.Step(clock.Now())
	}

	res.Duration = w.Time
	res.EliteKills = w.Player(combat.Human).EliteKills
	res.HumanAge = w.Player(combat.Human).Age
	res.OpponentAge = w.Player(combat.Opponent).Age
	res.Outcome = "timeout"
	if ended != nil {
		res.Outcome = ended.Outcome
	}
	return res
}
