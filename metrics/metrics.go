// Package metrics provides Prometheus observability metrics for the channel allocator.
// It includes allocation outcome metrics and operational health metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// ALLOCATION METRICS - Outcome Visibility
// =============================================================================

// VoiceChannels tracks the voice channels available to the last run.
var VoiceChannels = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "voice_channels",
	Help:      "Number of voice channels available for traffic allocation",
})

// ControlChannels tracks the control channels reserved in the last run.
var ControlChannels = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "control_channels",
	Help:      "Number of channels reserved for signaling",
})

// ChannelsDemandedTotal tracks total traffic demand across the cluster.
var ChannelsDemandedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "channels_demanded_total",
	Help:      "Total traffic channels demanded across all cells",
})

// ChannelsAllocatedTotal tracks channels placed into the allocation matrix.
var ChannelsAllocatedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "channels_allocated_total",
	Help:      "Total voice channels allocated to cells",
})

// ChannelsBlockedTotal tracks unmet demand. High values indicate the cluster
// is oversubscribed.
var ChannelsBlockedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "channels_blocked_total",
	Help:      "Total demanded channels that could not be allocated",
})

// AllocatedByPriority tracks allocated channels by priority class.
var AllocatedByPriority = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "allocated_by_priority",
	Help:      "Allocated voice channels broken down by priority class",
}, []string{"class"})

// BlockedByCell tracks unmet demand per cell.
var BlockedByCell = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "blocked_by_cell",
	Help:      "Unmet channel demand broken down by cell",
}, []string{"cell"})

// SatisfactionRatio tracks the cluster-wide satisfaction percentage.
var SatisfactionRatio = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "satisfaction_percent",
	Help:      "Cluster-wide percentage of demanded channels that were allocated",
})

// RunsTotal counts engine runs by outcome status.
var RunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "allocator",
	Name:      "runs_total",
	Help:      "Allocation runs by outcome status",
}, []string{"status"})

// FixedCallSuccessRatio tracks the simulated call success rate of the fixed plan.
var FixedCallSuccessRatio = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "fixed",
	Name:      "call_success_percent",
	Help:      "Percentage of simulated calls that found a traffic channel",
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total demand records successfully parsed",
})

// EngineDurationSeconds tracks time to run one allocation.
var EngineDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "allocator",
	Name:      "duration_seconds",
	Help:      "Time taken to generate, allocate and analyze one run",
	Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetAllocationGauges resets all allocation gauges before a new run.
func ResetAllocationGauges() {
	VoiceChannels.Set(0)
	ControlChannels.Set(0)
	ChannelsDemandedTotal.Set(0)
	ChannelsAllocatedTotal.Set(0)
	ChannelsBlockedTotal.Set(0)
	SatisfactionRatio.Set(0)
	AllocatedByPriority.Reset()
	BlockedByCell.Reset()
}

// CellLabel renders a zero-based cell index as the one-based label used in reports.
func CellLabel(cell int) string {
	return strconv.Itoa(cell + 1)
}
