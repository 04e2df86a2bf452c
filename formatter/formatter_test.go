package formatter_test

import (
	"encoding/json"
	"strings"
	"testing"

	"channel-allocator/allocator"
	"channel-allocator/analysis"
	"channel-allocator/channels"
	"channel-allocator/fixed"
	"channel-allocator/formatter"
	"channel-allocator/geometry"
	"channel-allocator/models"
	"channel-allocator/simulation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildReport assembles a report from a known pool so output is deterministic.
func buildReport(t *testing.T, demand []int, pool models.ChannelPool) *simulation.Report {
	t.Helper()
	alloc, err := allocator.Allocate(demand, pool)
	require.NoError(t, err)
	shift, _ := geometry.Solve(len(demand))
	return &simulation.Report{
		Budget:      models.ChannelBudget{Total: 50, Control: 5, Voice: len(pool)},
		ClusterSize: len(demand),
		Shift:       shift,
		Demand:      analysis.Demand(demand, len(pool)),
		Control:     allocator.DistributeControl(len(demand), 5),
		Result: simulation.Result{
			Pool:         pool,
			PoolSummary:  channels.Summarize(pool),
			Allocation:   alloc,
			Fairness:     analysis.Fairness(alloc.Matrix, pool, demand),
			Satisfaction: analysis.Satisfaction(alloc.Matrix, demand),
		},
	}
}

var scarcePool = models.ChannelPool{
	{ID: 3, Tier: 1},
	{ID: 1, Tier: 5},
	{ID: 4, Tier: 3},
	{ID: 2, Tier: 2},
}

func TestFormatText(t *testing.T) {
	tests := map[string]struct {
		demand   []int
		pool     models.ChannelPool
		contains []string
	}{
		"Scarcity": {
			demand: []int{2, 1, 3},
			pool:   scarcePool,
			contains: []string{
				"Cluster Size: 3 (i = 1, j = 1)",
				"⚠️  Warning: Total demand (6) exceeds available voice channels (4)",
				"Cell  1: [ 1,  2]",
				"Low Priority: 2 3",
				"High Priority: 1 4",
				"Allocated 4 out of 4 available voice channels",
				"Cell  1: [ 1,  3]",
				"Cell  3: [ 2]",
				"Total  4        2             2            6",
				"Total  6        4          66.7            2        33.3",
			},
		},
		"NoVoiceChannels": {
			demand: []int{0, 3, 0},
			pool:   models.ChannelPool{},
			contains: []string{
				"no allocation possible: no voice channels available",
				"Cell  2: []",
			},
		},
		"NoDemand": {
			demand: []int{0, 0, 0},
			pool:   scarcePool,
			contains: []string{
				"no allocation possible: no traffic demand from any cell",
				"Total  0        0          100.0           0        0.0",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			output := formatter.FormatText(buildReport(t, tt.demand, tt.pool))
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	output := formatter.FormatJSON(buildReport(t, []int{2, 1, 3}, scarcePool))

	var data formatter.ReportData
	require.NoError(t, json.Unmarshal([]byte(output), &data))
	assert.Equal(t, models.StatusAllocated, data.Allocation.Status)
	assert.Equal(t, 4, data.Allocation.Allocated)
	require.Len(t, data.Cells, 3)
	assert.Equal(t, 1, data.Cells[0].Cell)
	assert.Equal(t, []models.ChannelID{1, 3}, data.Cells[0].Channels)
	assert.Equal(t, 2, data.Total.Blocked)
}

func TestFormatCSV(t *testing.T) {
	output := formatter.FormatCSV(buildReport(t, []int{2, 1, 3}, scarcePool))
	lines := strings.Split(strings.TrimSpace(output), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "Cell,Demand,Allocated,High Priority,Low Priority,Blocked,Satisfaction%,Block%,Channels", lines[0])
	assert.Equal(t, "1,2,2,1,1,0,100.0,0.0,1 3", lines[1])
	assert.Equal(t, "3,3,1,0,1,2,33.3,66.7,2", lines[3])
	assert.Equal(t, "Total,6,4,2,2,2,66.7,33.3,", lines[4])
}

func TestFormatFixed(t *testing.T) {
	plan, err := fixed.Assign(fixed.Config{TotalChannels: 75, ClusterSize: 7, ControlPercentage: 0.12})
	require.NoError(t, err)
	calls := plan.SimulateCalls(channels.NewRand(1), 3)

	text := formatter.FormatFixedText(plan, calls)
	assert.Contains(t, text, "Output for case: Total channels = 75 and cluster size = 7")
	assert.Contains(t, text, "[1 8]")
	assert.Contains(t, text, "[10 17 24 31 38 45 52 59 66 73]")
	assert.Contains(t, text, "Control channels distributed: 9/9 ✓")
	assert.Contains(t, text, "Reuse Factor: 1/7 = 0.143")
	assert.Contains(t, text, "SIR: 12.1 dB | Reuse Distance: 4.6")
	assert.Contains(t, text, "Success Rate: 3/3 (100%)")

	var data formatter.FixedData
	require.NoError(t, json.Unmarshal([]byte(formatter.FormatFixedJSON(plan, calls)), &data))
	assert.Equal(t, 9, data.ControlChannels)
	assert.True(t, data.Verification.Valid)

	csvLines := strings.Split(strings.TrimSpace(formatter.FormatFixedCSV(plan)), "\n")
	require.Len(t, csvLines, 8)
	assert.Equal(t, "1,2,1 8,10,10 17 24 31 38 45 52 59 66 73", csvLines[1])
}
