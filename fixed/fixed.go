// Package fixed implements fixed channel assignment: control and traffic
// channels are dealt to cells round-robin once, independent of demand.
package fixed

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"channel-allocator/channels"
	customerrors "channel-allocator/errors"
	"channel-allocator/geometry"
	"channel-allocator/metrics"
	"channel-allocator/models"
)

const (
	MinControlPercentage = 0.10
	MaxControlPercentage = 0.15
	DefaultCalls         = 15
)

// SupportedClusterSizes are the cluster sizes the fixed plan accepts.
var SupportedClusterSizes = []int{7, 9, 13}

// Config describes one fixed assignment run.
type Config struct {
	TotalChannels     int
	ClusterSize       int
	ControlPercentage float64
}

// Plan is the result of a fixed assignment.
type Plan struct {
	Config          Config
	ControlChannels int
	TrafficChannels int
	Control         [][]models.ChannelID
	Traffic         [][]models.ChannelID
	Reuse           geometry.Reuse
}

// Verification compares distributed channel counts with the plan's budget.
type Verification struct {
	ControlDistributed int  `json:"control_distributed"`
	TrafficDistributed int  `json:"traffic_distributed"`
	Valid              bool `json:"valid"`
}

// Call is one simulated call attempt.
type Call struct {
	Cell    int              `json:"cell"`
	Channel models.ChannelID `json:"channel,omitempty"`
	Success bool             `json:"success"`
}

// CallSimulation summarizes simulated calls against the traffic matrix.
type CallSimulation struct {
	Calls       []Call  `json:"calls"`
	Successful  int     `json:"successful"`
	SuccessRate float64 `json:"success_rate"`
}

// Validate checks the fixed plan inputs.
func (c Config) Validate() error {
	if c.TotalChannels < channels.MinTotalChannels || c.TotalChannels > channels.MaxTotalChannels {
		return fmt.Errorf("%w: %d not in [%d,%d]", customerrors.ErrTotalChannelsOutOfRange,
			c.TotalChannels, channels.MinTotalChannels, channels.MaxTotalChannels)
	}
	if !slices.Contains(SupportedClusterSizes, c.ClusterSize) {
		return fmt.Errorf("%w: %d, expected one of %v", customerrors.ErrInvalidClusterSize, c.ClusterSize, SupportedClusterSizes)
	}
	if c.ControlPercentage < MinControlPercentage || c.ControlPercentage > MaxControlPercentage {
		return fmt.Errorf("%w: %.2f not in [%.2f,%.2f]", customerrors.ErrControlPercentage,
			c.ControlPercentage, MinControlPercentage, MaxControlPercentage)
	}
	return nil
}

// Assign builds the control and traffic matrices. Every cell gets at least
// one control channel. Control ids start at 1, traffic ids continue after the
// last control id. Channel k goes to row k % N, column k / N.
func Assign(cfg Config) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	control := int(math.Ceil(float64(cfg.TotalChannels) * cfg.ControlPercentage))
	if control < cfg.ClusterSize {
		control = cfg.ClusterSize
	}
	traffic := cfg.TotalChannels - control

	return &Plan{
		Config:          cfg,
		ControlChannels: control,
		TrafficChannels: traffic,
		Control:         roundRobin(cfg.ClusterSize, control, 1),
		Traffic:         roundRobin(cfg.ClusterSize, traffic, models.ChannelID(control+1)),
		Reuse:           geometry.AnalyzeReuse(cfg.ClusterSize),
	}, nil
}

func roundRobin(rows, count int, first models.ChannelID) [][]models.ChannelID {
	cols := (count + rows - 1) / rows
	matrix := make([][]models.ChannelID, rows)
	for r := range matrix {
		matrix[r] = make([]models.ChannelID, 0, cols)
	}
	for k := range count {
		matrix[k%rows] = append(matrix[k%rows], first+models.ChannelID(k))
	}
	return matrix
}

// Verify counts the channels in both matrices.
func (p *Plan) Verify() Verification {
	v := Verification{}
	for _, row := range p.Control {
		v.ControlDistributed += len(row)
	}
	for _, row := range p.Traffic {
		v.TrafficDistributed += len(row)
	}
	v.Valid = v.ControlDistributed == p.ControlChannels && v.TrafficDistributed == p.TrafficChannels
	return v
}

// SimulateCalls places calls in uniformly random cells. A call succeeds when
// its cell owns at least one traffic channel, in which case one is picked at
// random.
func (p *Plan) SimulateCalls(rng *rand.Rand, calls int) CallSimulation {
	sim := CallSimulation{Calls: make([]Call, 0, max(calls, 0))}
	for range calls {
		cell := rng.IntN(len(p.Traffic))
		call := Call{Cell: cell}
		if row := p.Traffic[cell]; len(row) > 0 {
			call.Channel = row[rng.IntN(len(row))]
			call.Success = true
			sim.Successful++
		}
		sim.Calls = append(sim.Calls, call)
	}
	if calls > 0 {
		sim.SuccessRate = float64(sim.Successful) * 100 / float64(calls)
	}
	metrics.FixedCallSuccessRatio.Set(sim.SuccessRate)
	return sim
}
