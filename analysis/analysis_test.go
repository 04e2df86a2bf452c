package analysis_test

import (
	"testing"

	"channel-allocator/allocator"
	"channel-allocator/analysis"
	"channel-allocator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scarcityResult(t *testing.T) (*models.AllocationResult, models.ChannelPool) {
	t.Helper()
	pool := models.ChannelPool{
		{ID: 3, Tier: 1},
		{ID: 1, Tier: 5},
		{ID: 4, Tier: 3},
		{ID: 2, Tier: 2},
	}
	res, err := allocator.Allocate([]int{2, 1, 3}, pool)
	require.NoError(t, err)
	return res, pool
}

func TestFairness(t *testing.T) {
	res, pool := scarcityResult(t)
	report := analysis.Fairness(res.Matrix, pool, res.Demand)

	// Sorted order is 1(5), 4(3), 2(2), 3(1)
	require.Len(t, report.Cells, 3)
	assert.Equal(t, models.CellFairness{Cell: 0, Allocated: 2, HighPriority: 1, LowPriority: 1, Demand: 2}, report.Cells[0])
	assert.Equal(t, models.CellFairness{Cell: 1, Allocated: 1, HighPriority: 1, LowPriority: 0, Demand: 1}, report.Cells[1])
	assert.Equal(t, models.CellFairness{Cell: 2, Allocated: 1, HighPriority: 0, LowPriority: 1, Demand: 3}, report.Cells[2])
	assert.Equal(t, 4, report.TotalAllocated)
	assert.Equal(t, 2, report.TotalHighPriority)
	assert.Equal(t, 2, report.TotalLowPriority)
	assert.Equal(t, 6, report.TotalDemand)
}

func TestFairness_EmptyMatrix(t *testing.T) {
	report := analysis.Fairness(nil, nil, []int{4, 0, 2})
	assert.Equal(t, 0, report.TotalAllocated)
	assert.Equal(t, 6, report.TotalDemand)
	for _, c := range report.Cells {
		assert.Zero(t, c.Allocated)
	}
}

func TestSatisfaction(t *testing.T) {
	res, _ := scarcityResult(t)
	report := analysis.Satisfaction(res.Matrix, res.Demand)

	require.Len(t, report.Cells, 3)
	blocked := []int{report.Cells[0].Blocked, report.Cells[1].Blocked, report.Cells[2].Blocked}
	assert.Equal(t, []int{0, 0, 2}, blocked)
	assert.InDelta(t, 100.0, report.Cells[0].SatisfactionPct, 1e-9)
	assert.InDelta(t, 33.333, report.Cells[2].SatisfactionPct, 1e-3)
	assert.InDelta(t, 66.667, report.Cells[2].BlockingPct, 1e-3)

	assert.Equal(t, 6, report.Total.Demand)
	assert.Equal(t, 4, report.Total.Allocated)
	assert.Equal(t, 2, report.Total.Blocked)
	assert.InDelta(t, 66.667, report.Total.SatisfactionPct, 1e-3)
}

func TestSatisfaction_ZeroDemandConvention(t *testing.T) {
	tests := map[string]struct {
		demand     []int
		pool       models.ChannelPool
		cellSat    []float64
		totalSat   float64
		totalBlock float64
	}{
		"NoVoiceChannels": {
			demand:     []int{0, 3, 0},
			pool:       nil,
			cellSat:    []float64{100, 0, 100},
			totalSat:   0,
			totalBlock: 100,
		},
		"NoDemand": {
			demand:     []int{0, 0, 0},
			pool:       models.ChannelPool{{ID: 1, Tier: 4}},
			cellSat:    []float64{100, 100, 100},
			totalSat:   100,
			totalBlock: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := allocator.Allocate(tt.demand, tt.pool)
			require.NoError(t, err)
			report := analysis.Satisfaction(res.Matrix, res.Demand)
			for i, want := range tt.cellSat {
				assert.InDelta(t, want, report.Cells[i].SatisfactionPct, 1e-9)
			}
			assert.InDelta(t, tt.totalSat, report.Total.SatisfactionPct, 1e-9)
			assert.InDelta(t, tt.totalBlock, report.Total.BlockingPct, 1e-9)

			fairness := analysis.Fairness(res.Matrix, tt.pool, res.Demand)
			assert.Zero(t, fairness.TotalAllocated)
		})
	}
}

func TestReportsAreIdempotent(t *testing.T) {
	res, pool := scarcityResult(t)
	assert.Equal(t,
		analysis.Fairness(res.Matrix, pool, res.Demand),
		analysis.Fairness(res.Matrix, pool, res.Demand))
	assert.Equal(t,
		analysis.Satisfaction(res.Matrix, res.Demand),
		analysis.Satisfaction(res.Matrix, res.Demand))
}

func TestDemand(t *testing.T) {
	summary := analysis.Demand([]int{2, 1, 3, 0}, 4)
	assert.Equal(t, 6, summary.TotalDemand)
	assert.Equal(t, 3, summary.MaxDemand)
	assert.InDelta(t, 1.5, summary.AverageDemand, 1e-9)
	assert.InDelta(t, 50.0, summary.Shares[2].SharePct, 1e-9)
	assert.True(t, summary.Oversubscribed)

	idle := analysis.Demand([]int{0, 0}, 10)
	assert.Zero(t, idle.Shares[0].SharePct)
	assert.False(t, idle.Oversubscribed)

	assert.Zero(t, analysis.Demand(nil, 10).AverageDemand)
}
