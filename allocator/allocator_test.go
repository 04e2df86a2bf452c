package allocator_test

import (
	"testing"

	"channel-allocator/allocator"
	"channel-allocator/channels"
	customerrors "channel-allocator/errors"
	"channel-allocator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedPool(tiers ...int) models.ChannelPool {
	pool := make(models.ChannelPool, len(tiers))
	for i, tier := range tiers {
		pool[i] = models.Channel{ID: models.ChannelID(i + 1), Tier: tier}
	}
	return pool
}

func allocatedCounts(res *models.AllocationResult) []int {
	counts := make([]int, len(res.Demand))
	for cell, d := range res.Demand {
		counts[cell] = res.Matrix.CountAllocated(cell, d)
	}
	return counts
}

func TestAllocate_ColumnMajorScarcity(t *testing.T) {
	// Four channels for demand [2,1,3]: column 0 serves all three cells,
	// column 1 serves cell 0 and then the pool is empty.
	pool := fixedPool(5, 4, 3, 2)
	res, err := allocator.Allocate([]int{2, 1, 3}, pool)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAllocated, res.Status)
	assert.Equal(t, 3, res.MaxCols)
	assert.Equal(t, 4, res.ChannelsAllocated)
	assert.Equal(t, 4, res.PoolSize)
	assert.Equal(t, []int{2, 1, 1}, allocatedCounts(res))

	expected := map[[2]int]models.ChannelID{
		{0, 0}: 1,
		{1, 0}: 2,
		{2, 0}: 3,
		{0, 1}: 4,
	}
	for cell := 0; cell < 3; cell++ {
		for col := 0; col < 3; col++ {
			id, ok := res.Matrix.At(cell, col)
			want, assigned := expected[[2]int{cell, col}]
			assert.Equal(t, assigned, ok, "slot (%d,%d)", cell, col)
			if assigned {
				assert.Equal(t, want, id, "slot (%d,%d)", cell, col)
			}
		}
	}
}

func TestAllocate_PrioritySortIsStable(t *testing.T) {
	pool := models.ChannelPool{
		{ID: 7, Tier: 1},
		{ID: 2, Tier: 4},
		{ID: 9, Tier: 4},
		{ID: 1, Tier: 5},
		{ID: 5, Tier: 4},
	}
	res, err := allocator.Allocate([]int{5}, pool)
	require.NoError(t, err)

	assert.Equal(t, []models.ChannelID{1, 2, 9, 5, 7}, res.Matrix.Row(0, 5))
	// Input pool order is untouched
	assert.Equal(t, models.ChannelID(7), pool[0].ID)
}

func TestAllocate_SurplusSupply(t *testing.T) {
	pool := fixedPool(3, 3, 3, 3, 3, 3, 3, 3, 3, 3)
	res, err := allocator.Allocate([]int{1, 0, 2}, pool)
	require.NoError(t, err)

	assert.Equal(t, 3, res.ChannelsAllocated)
	assert.Equal(t, []int{1, 0, 2}, allocatedCounts(res))
	_, ok := res.Matrix.At(1, 0)
	assert.False(t, ok, "cell with zero demand must stay empty")
}

func TestAllocate_ZeroCapacity(t *testing.T) {
	tests := map[string]struct {
		demand []int
		pool   models.ChannelPool
		status models.AllocationStatus
		cols   int
	}{
		"NoVoiceChannels": {demand: []int{2, 0, 3}, pool: nil, status: models.StatusNoVoiceChannels, cols: 3},
		"NoDemand":        {demand: []int{0, 0, 0}, pool: fixedPool(3, 1), status: models.StatusNoDemand, cols: 0},
		"EmptyCluster":    {demand: nil, pool: fixedPool(2), status: models.StatusNoDemand, cols: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := allocator.Allocate(tt.demand, tt.pool)
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.cols, res.MaxCols)
			assert.Zero(t, res.ChannelsAllocated)
			assert.Error(t, res.Reason())
			for cell, d := range tt.demand {
				assert.Zero(t, res.Matrix.CountAllocated(cell, d))
			}
		})
	}
}

func TestAllocate_MatrixTooLarge(t *testing.T) {
	res, err := allocator.Allocate([]int{models.MaxMatrixSlots + 1}, fixedPool(5, 1))
	assert.ErrorIs(t, err, customerrors.ErrResourceAllocation)
	assert.Nil(t, res)

	res, err = allocator.Allocate([]int{models.MaxMatrixSlots/2 + 1, 1, 2}, fixedPool(3))
	assert.ErrorIs(t, err, customerrors.ErrResourceAllocation)
	assert.Nil(t, res)
}

func TestAllocate_Invariants(t *testing.T) {
	demands := [][]int{
		{10, 3, 0, 7, 12, 1, 5},
		{30, 30, 30},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13},
		{0, 0, 50, 0},
	}

	for seed := uint64(1); seed <= 5; seed++ {
		for _, demand := range demands {
			pool := channels.Generate(channels.NewRand(seed), 45)
			res, err := allocator.Allocate(demand, pool)
			require.NoError(t, err)

			seen := make(map[models.ChannelID]bool)
			total, sumDemand := 0, 0
			for cell, d := range demand {
				sumDemand += d
				for col := 0; col < res.MaxCols; col++ {
					id, ok := res.Matrix.At(cell, col)
					if !ok {
						continue
					}
					assert.Less(t, col, d, "slot beyond demand")
					assert.False(t, seen[id], "channel %d placed twice", id)
					seen[id] = true
					total++
				}
			}
			assert.Equal(t, min(len(pool), sumDemand), total)
			assert.Equal(t, total, res.ChannelsAllocated)
		}
	}
}

func TestSortByPriority(t *testing.T) {
	sorted := allocator.SortByPriority(fixedPool(1, 5, 3, 5, 2))
	tiers := make([]int, len(sorted))
	ids := make([]models.ChannelID, len(sorted))
	for i, ch := range sorted {
		tiers[i] = ch.Tier
		ids[i] = ch.ID
	}
	assert.Equal(t, []int{5, 5, 3, 2, 1}, tiers)
	assert.Equal(t, []models.ChannelID{2, 4, 3, 5, 1}, ids)
}

func TestMaxDemand(t *testing.T) {
	assert.Equal(t, 0, allocator.MaxDemand(nil))
	assert.Equal(t, 0, allocator.MaxDemand([]int{0, 0}))
	assert.Equal(t, 9, allocator.MaxDemand([]int{3, 9, 1}))
}

func TestDistributeControl(t *testing.T) {
	plan := allocator.DistributeControl(7, 9)
	assert.Equal(t, 9, plan.Total)
	require.Len(t, plan.Cells, 7)
	assert.Equal(t, []models.ChannelID{1, 2}, plan.Cells[0])
	assert.Equal(t, []models.ChannelID{3, 4}, plan.Cells[1])
	assert.Equal(t, []models.ChannelID{5}, plan.Cells[2])
	assert.Equal(t, []models.ChannelID{9}, plan.Cells[6])

	sparse := allocator.DistributeControl(13, 5)
	assert.Empty(t, sparse.Cells[12])
	assert.Equal(t, []models.ChannelID{5}, sparse.Cells[4])

	assert.Nil(t, allocator.DistributeControl(0, 5).Cells)
}
