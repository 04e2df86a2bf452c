// Package simulation runs the dynamic priority-based allocation pipeline:
// channel generation, placement, and report derivation for one cluster
// snapshot.
package simulation

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"channel-allocator/allocator"
	"channel-allocator/analysis"
	"channel-allocator/channels"
	customerrors "channel-allocator/errors"
	"channel-allocator/geometry"
	"channel-allocator/metrics"
	"channel-allocator/models"

	"github.com/sirupsen/logrus"
)

// MaxClusterSize is the largest cluster size accepted from callers.
const MaxClusterSize = 50

// Input is the validated boundary of the engine.
type Input struct {
	ClusterSize   int
	Demand        []int
	VoiceChannels int
}

// Result bundles every product of a run.
type Result struct {
	Pool         models.ChannelPool
	PoolSummary  models.PoolSummary
	Allocation   *models.AllocationResult
	Fairness     models.FairnessReport
	Satisfaction models.SatisfactionReport
}

// Report is a complete dynamic allocation run as presented to users.
type Report struct {
	Budget      models.ChannelBudget
	ClusterSize int
	Shift       geometry.Shift
	Seed        uint64
	Demand      models.DemandSummary
	Control     models.ControlPlan
	Result
}

// Engine owns a random generator. Engines are not safe for concurrent use;
// give each goroutine its own. The allocation gauges in package metrics are
// process-wide and show only the last completed run of any engine.
type Engine struct {
	rng    *rand.Rand
	logger *logrus.Logger
}

// NewEngine creates an engine. A nil logger discards log output.
func NewEngine(rng *rand.Rand, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Engine{rng: rng, logger: logger}
}

// ValidateClusterSize checks that n is in [1, MaxClusterSize] and is a
// hexagonal cluster size.
func ValidateClusterSize(n int) error {
	if n <= 0 || n > MaxClusterSize {
		return fmt.Errorf("%w: %d not in [1,%d]", customerrors.ErrInvalidClusterSize, n, MaxClusterSize)
	}
	if !geometry.IsValidClusterSize(n) {
		return fmt.Errorf("%w: %d does not satisfy N = i² + j² + i·j", customerrors.ErrInvalidClusterSize, n)
	}
	return nil
}

// Validate checks cluster geometry and demand against the engine contract.
func (in Input) Validate() error {
	if err := ValidateClusterSize(in.ClusterSize); err != nil {
		return err
	}
	if len(in.Demand) != in.ClusterSize {
		return fmt.Errorf("%w: got %d values for %d cells", customerrors.ErrDemandLength, len(in.Demand), in.ClusterSize)
	}
	for cell, d := range in.Demand {
		if d < 0 {
			return fmt.Errorf("%w: cell %d demands %d", customerrors.ErrNegativeDemand, cell+1, d)
		}
	}
	if in.VoiceChannels < 0 {
		return fmt.Errorf("%w: %d voice channels", customerrors.ErrTotalChannelsOutOfRange, in.VoiceChannels)
	}
	return nil
}

// Run generates a priority-tagged pool, allocates it and derives the
// fairness and satisfaction reports. The engine performs no I/O besides
// logging and metrics.
func (e *Engine) Run(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		metrics.EngineDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	pool := channels.Generate(e.rng, in.VoiceChannels)
	e.logger.WithFields(logrus.Fields{
		"voice_channels": in.VoiceChannels,
		"low_priority":   channels.LowPriorityCount(in.VoiceChannels),
	}).Debug("generated channel pool")

	alloc, err := allocator.Allocate(in.Demand, pool)
	if err != nil {
		e.logger.WithError(err).Error("allocation aborted")
		return nil, err
	}

	res := &Result{
		Pool:         pool,
		PoolSummary:  channels.Summarize(pool),
		Allocation:   alloc,
		Fairness:     analysis.Fairness(alloc.Matrix, pool, in.Demand),
		Satisfaction: analysis.Satisfaction(alloc.Matrix, in.Demand),
	}

	fields := logrus.Fields{
		"cluster_size": in.ClusterSize,
		"max_cols":     alloc.MaxCols,
		"allocated":    alloc.ChannelsAllocated,
		"pool_size":    alloc.PoolSize,
		"status":       alloc.Status,
	}
	if reason := alloc.Reason(); reason != nil {
		e.logger.WithFields(fields).Warn(reason.Error())
	} else {
		e.logger.WithFields(fields).Info("allocation complete")
	}

	record(res)
	return res, nil
}

// Simulate runs the full dynamic program for a total channel count: it
// derives the control/voice budget, the control plan and the demand summary
// around an engine run.
func (e *Engine) Simulate(totalChannels, clusterSize int, demand []int) (*Report, error) {
	budget, err := channels.NewBudget(totalChannels)
	if err != nil {
		return nil, err
	}
	shift, _ := geometry.Solve(clusterSize)

	res, err := e.Run(Input{
		ClusterSize:   clusterSize,
		Demand:        demand,
		VoiceChannels: budget.Voice,
	})
	if err != nil {
		return nil, err
	}

	metrics.ControlChannels.Set(float64(budget.Control))

	return &Report{
		Budget:      budget,
		ClusterSize: clusterSize,
		Shift:       shift,
		Demand:      analysis.Demand(demand, budget.Voice),
		Control:     allocator.DistributeControl(clusterSize, budget.Control),
		Result:      *res,
	}, nil
}

func record(res *Result) {
	metrics.ResetAllocationGauges()
	metrics.RunsTotal.WithLabelValues(string(res.Allocation.Status)).Inc()

	total := res.Satisfaction.Total
	metrics.VoiceChannels.Set(float64(res.Allocation.PoolSize))
	metrics.ChannelsDemandedTotal.Set(float64(total.Demand))
	metrics.ChannelsAllocatedTotal.Set(float64(total.Allocated))
	metrics.ChannelsBlockedTotal.Set(float64(total.Blocked))
	metrics.SatisfactionRatio.Set(total.SatisfactionPct)
	metrics.AllocatedByPriority.WithLabelValues("high").Set(float64(res.Fairness.TotalHighPriority))
	metrics.AllocatedByPriority.WithLabelValues("low").Set(float64(res.Fairness.TotalLowPriority))
	for _, c := range res.Satisfaction.Cells {
		metrics.BlockedByCell.WithLabelValues(metrics.CellLabel(c.Cell)).Set(float64(c.Blocked))
	}
}
