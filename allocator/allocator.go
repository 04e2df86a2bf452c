package allocator

import (
	"slices"

	"channel-allocator/models"
)

// Allocate places priority-sorted channels into a per-cell demand matrix.
//
// The pool is stable-sorted by tier, highest first, so equal tiers keep their
// pool order. Placement walks columns left to right and, inside each column,
// cells from index 0 upward. A slot (cell, col) receives the next channel only
// if col < demand[cell]. When supply runs short, the remaining slots (higher
// columns and higher cell indices) stay empty.
//
// Time: O(n log n) for the sort + O(cells * maxCols) for placement.
func Allocate(demand []int, pool models.ChannelPool) (*models.AllocationResult, error) {
	maxCols := MaxDemand(demand)

	matrix, err := models.NewAllocationMatrix(len(demand), maxCols)
	if err != nil {
		return nil, err
	}

	result := &models.AllocationResult{
		Matrix:   matrix,
		Demand:   slices.Clone(demand),
		MaxCols:  maxCols,
		PoolSize: len(pool),
		Status:   models.StatusAllocated,
	}

	// Zero capacity is a normal outcome, not a failure
	if len(pool) == 0 {
		result.Status = models.StatusNoVoiceChannels
		result.Sorted = models.ChannelPool{}
		return result, nil
	}

	sorted := SortByPriority(pool)
	result.Sorted = sorted

	if maxCols == 0 {
		result.Status = models.StatusNoDemand
		return result, nil
	}

	next := 0
	for col := 0; col < maxCols && next < len(sorted); col++ {
		for cell := 0; cell < len(demand) && next < len(sorted); cell++ {
			if col < demand[cell] {
				matrix.Assign(cell, col, sorted[next].ID)
				next++
			}
		}
	}
	result.ChannelsAllocated = next

	return result, nil
}

// SortByPriority returns a copy of pool sorted by tier, highest first. Ties
// keep their relative pool order.
func SortByPriority(pool models.ChannelPool) models.ChannelPool {
	sorted := slices.Clone(pool)
	slices.SortStableFunc(sorted, func(a, b models.Channel) int {
		return b.Tier - a.Tier
	})
	return sorted
}

// MaxDemand returns the largest demand, or 0 for an empty vector.
func MaxDemand(demand []int) int {
	maxDemand := 0
	for _, d := range demand {
		if d > maxDemand {
			maxDemand = d
		}
	}
	return maxDemand
}

// DistributeControl hands control channels 1..control to the cells in
// consecutive blocks. The first control % clusterSize cells get one extra.
func DistributeControl(clusterSize, control int) models.ControlPlan {
	plan := models.ControlPlan{Total: control}
	if clusterSize <= 0 {
		return plan
	}

	base := control / clusterSize
	extra := control % clusterSize
	plan.Cells = make([][]models.ChannelID, clusterSize)

	next := models.ChannelID(1)
	for cell := range clusterSize {
		count := base
		if cell < extra {
			count++
		}
		ids := make([]models.ChannelID, count)
		for j := range ids {
			ids[j] = next
			next++
		}
		plan.Cells[cell] = ids
	}
	return plan
}
