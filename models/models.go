package models

import (
	"fmt"

	customerrors "channel-allocator/errors"
)

// MaxMatrixSlots bounds the number of slots a single AllocationMatrix may hold.
const MaxMatrixSlots = 1 << 24

// ChannelID identifies a voice channel. Valid ids start at 1.
type ChannelID int

// Channel is a voice channel tagged with a priority tier (1-5).
type Channel struct {
	ID   ChannelID `json:"id"`
	Tier int       `json:"tier"`
}

// IsHighPriority reports whether the channel belongs to tiers 3-5.
func (c Channel) IsHighPriority() bool {
	return c.Tier >= 3
}

// ChannelPool is the ordered set of voice channels handed to the allocator.
type ChannelPool []Channel

// TierLookup maps channel id to its tier.
func (p ChannelPool) TierLookup() map[ChannelID]int {
	tiers := make(map[ChannelID]int, len(p))
	for _, ch := range p {
		tiers[ch.ID] = ch.Tier
	}
	return tiers
}

// ChannelBudget splits the total channel count into control and voice channels.
type ChannelBudget struct {
	Total   int `json:"total"`
	Control int `json:"control"`
	Voice   int `json:"voice"`
}

// Slot is one entry of the allocation matrix. Assigned is false for an
// unallocated slot, in which case Channel is meaningless.
type Slot struct {
	Channel  ChannelID
	Assigned bool
}

// AllocationMatrix is a cells x columns grid of slots stored row-major in a
// single backing slice.
type AllocationMatrix struct {
	cells int
	cols  int
	slots []Slot
}

// NewAllocationMatrix builds an empty matrix. It returns ErrResourceAllocation
// when the dimensions are negative or too large to back.
func NewAllocationMatrix(cells, cols int) (*AllocationMatrix, error) {
	if cells < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", customerrors.ErrResourceAllocation, cells, cols)
	}
	if cols > 0 && cells > MaxMatrixSlots/cols {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d slots", customerrors.ErrResourceAllocation, cells, cols, MaxMatrixSlots)
	}
	return &AllocationMatrix{
		cells: cells,
		cols:  cols,
		slots: make([]Slot, cells*cols),
	}, nil
}

// Cells returns the number of rows.
func (m *AllocationMatrix) Cells() int { return m.cells }

// Cols returns the number of columns.
func (m *AllocationMatrix) Cols() int { return m.cols }

// Assign places a channel in (cell, col).
func (m *AllocationMatrix) Assign(cell, col int, id ChannelID) {
	m.slots[cell*m.cols+col] = Slot{Channel: id, Assigned: true}
}

// At returns the channel at (cell, col) and whether the slot is assigned.
// Out-of-range coordinates read as unassigned.
func (m *AllocationMatrix) At(cell, col int) (ChannelID, bool) {
	if m == nil || cell < 0 || cell >= m.cells || col < 0 || col >= m.cols {
		return 0, false
	}
	s := m.slots[cell*m.cols+col]
	return s.Channel, s.Assigned
}

// Row returns the assigned channels of a cell within its first limit columns,
// skipping empty slots.
func (m *AllocationMatrix) Row(cell, limit int) []ChannelID {
	ids := make([]ChannelID, 0, limit)
	for col := 0; col < limit; col++ {
		if id, ok := m.At(cell, col); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// CountAllocated counts assigned slots of a cell within its first limit columns.
func (m *AllocationMatrix) CountAllocated(cell, limit int) int {
	count := 0
	for col := 0; col < limit; col++ {
		if _, ok := m.At(cell, col); ok {
			count++
		}
	}
	return count
}

// AllocationStatus describes whether placement ran.
type AllocationStatus string

const (
	StatusAllocated       AllocationStatus = "allocated"
	StatusNoVoiceChannels AllocationStatus = "no_voice_channels"
	StatusNoDemand        AllocationStatus = "no_demand"
)

// AllocationResult is the output of the traffic allocator.
type AllocationResult struct {
	Matrix            *AllocationMatrix
	Demand            []int
	MaxCols           int
	Sorted            ChannelPool
	ChannelsAllocated int
	PoolSize          int
	Status            AllocationStatus
}

// Reason explains why no placement happened. It is nil for StatusAllocated.
func (r *AllocationResult) Reason() error {
	switch r.Status {
	case StatusNoVoiceChannels:
		return fmt.Errorf("%w: no voice channels available", customerrors.ErrZeroCapacity)
	case StatusNoDemand:
		return fmt.Errorf("%w: no traffic demand from any cell", customerrors.ErrZeroCapacity)
	default:
		return nil
	}
}

// CellFairness holds the priority breakdown of one cell's allocation.
type CellFairness struct {
	Cell         int `json:"cell"`
	Allocated    int `json:"allocated"`
	HighPriority int `json:"high_priority"`
	LowPriority  int `json:"low_priority"`
	Demand       int `json:"demand"`
}

// FairnessReport aggregates priority tiers per cell and cluster-wide.
type FairnessReport struct {
	Cells             []CellFairness `json:"cells"`
	TotalAllocated    int            `json:"total_allocated"`
	TotalHighPriority int            `json:"total_high_priority"`
	TotalLowPriority  int            `json:"total_low_priority"`
	TotalDemand       int            `json:"total_demand"`
}

// CellSatisfaction holds demand versus allocation for one cell.
type CellSatisfaction struct {
	Cell            int     `json:"cell"`
	Demand          int     `json:"demand"`
	Allocated       int     `json:"allocated"`
	Blocked         int     `json:"blocked"`
	SatisfactionPct float64 `json:"satisfaction_pct"`
	BlockingPct     float64 `json:"blocking_pct"`
}

// SatisfactionReport is the per-cell and aggregate satisfaction summary.
type SatisfactionReport struct {
	Cells []CellSatisfaction `json:"cells"`
	Total CellSatisfaction   `json:"total"`
}

// CellDemandShare is one cell's share of the cluster demand.
type CellDemandShare struct {
	Cell     int     `json:"cell"`
	Demand   int     `json:"demand"`
	SharePct float64 `json:"share_pct"`
}

// DemandSummary describes the traffic requested by the cluster.
type DemandSummary struct {
	TotalDemand    int               `json:"total_demand"`
	MaxDemand      int               `json:"max_demand"`
	AverageDemand  float64           `json:"average_demand"`
	Shares         []CellDemandShare `json:"shares"`
	Oversubscribed bool              `json:"oversubscribed"`
}

// PoolSummary groups channel ids by priority class, each sorted ascending.
type PoolSummary struct {
	Low  []ChannelID `json:"low"`
	High []ChannelID `json:"high"`
}

// ControlPlan lists the control channels handed to each cell.
type ControlPlan struct {
	Total int           `json:"total"`
	Cells [][]ChannelID `json:"cells"`
}
