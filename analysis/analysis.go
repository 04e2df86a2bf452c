// Package analysis derives fairness, satisfaction and demand reports from an
// allocation. Every function here is a pure function of its inputs.
package analysis

import "channel-allocator/models"

// Fairness counts, per cell, the allocated channels in low (tier <= 2) and
// high (tier >= 3) priority classes. Tiers are looked up in pool, which may be
// in any order. A nil matrix yields all-zero counts.
func Fairness(matrix *models.AllocationMatrix, pool models.ChannelPool, demand []int) models.FairnessReport {
	tiers := pool.TierLookup()
	report := models.FairnessReport{
		Cells: make([]models.CellFairness, len(demand)),
	}

	for cell, d := range demand {
		row := models.CellFairness{Cell: cell, Demand: d}
		for col := 0; col < d; col++ {
			id, ok := matrix.At(cell, col)
			if !ok {
				continue
			}
			row.Allocated++
			if tiers[id] <= 2 {
				row.LowPriority++
			} else {
				row.HighPriority++
			}
		}
		report.Cells[cell] = row
		report.TotalHighPriority += row.HighPriority
		report.TotalLowPriority += row.LowPriority
		report.TotalDemand += d
	}
	report.TotalAllocated = report.TotalHighPriority + report.TotalLowPriority

	return report
}

// Satisfaction computes allocation and blocking ratios per cell and for the
// whole cluster. A zero demand counts as 100% satisfied and 0% blocked; the
// aggregate applies that rule to the cluster sums, not to per-cell averages.
func Satisfaction(matrix *models.AllocationMatrix, demand []int) models.SatisfactionReport {
	report := models.SatisfactionReport{
		Cells: make([]models.CellSatisfaction, len(demand)),
	}

	totalDemand, totalAllocated := 0, 0
	for cell, d := range demand {
		allocated := matrix.CountAllocated(cell, d)
		report.Cells[cell] = satisfaction(cell, d, allocated)
		totalDemand += d
		totalAllocated += allocated
	}
	report.Total = satisfaction(-1, totalDemand, totalAllocated)

	return report
}

func satisfaction(cell, demand, allocated int) models.CellSatisfaction {
	s := models.CellSatisfaction{
		Cell:            cell,
		Demand:          demand,
		Allocated:       allocated,
		Blocked:         demand - allocated,
		SatisfactionPct: 100.0,
		BlockingPct:     0.0,
	}
	if demand > 0 {
		s.SatisfactionPct = float64(allocated) * 100.0 / float64(demand)
		s.BlockingPct = float64(s.Blocked) * 100.0 / float64(demand)
	}
	return s
}

// Demand summarizes cluster traffic before allocation. voice is the number of
// voice channels available, used to flag oversubscription.
func Demand(demand []int, voice int) models.DemandSummary {
	summary := models.DemandSummary{
		Shares: make([]models.CellDemandShare, len(demand)),
	}
	for _, d := range demand {
		summary.TotalDemand += d
		if d > summary.MaxDemand {
			summary.MaxDemand = d
		}
	}
	if len(demand) > 0 {
		summary.AverageDemand = float64(summary.TotalDemand) / float64(len(demand))
	}
	for cell, d := range demand {
		share := models.CellDemandShare{Cell: cell, Demand: d}
		if summary.TotalDemand > 0 {
			share.SharePct = float64(d) * 100.0 / float64(summary.TotalDemand)
		}
		summary.Shares[cell] = share
	}
	summary.Oversubscribed = summary.TotalDemand > voice

	return summary
}
