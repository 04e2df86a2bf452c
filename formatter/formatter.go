package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"channel-allocator/models"
	"channel-allocator/simulation"
)

// ReportData holds prepared report data used by all formatters
type ReportData struct {
	Budget      models.ChannelBudget `json:"budget"`
	ClusterSize int                  `json:"cluster_size"`
	ShiftI      int                  `json:"shift_i"`
	ShiftJ      int                  `json:"shift_j"`
	Seed        uint64               `json:"seed"`
	Demand      models.DemandSummary `json:"demand"`
	Control     models.ControlPlan   `json:"control"`
	Priorities  models.PoolSummary   `json:"priorities"`
	Allocation  AllocationInfo       `json:"allocation"`
	Cells       []CellData           `json:"cells"`
	Total       TotalData            `json:"total"`
}

// AllocationInfo summarizes the placement step
type AllocationInfo struct {
	Status    models.AllocationStatus `json:"status"`
	Message   string                  `json:"message,omitempty"`
	Allocated int                     `json:"allocated"`
	PoolSize  int                     `json:"pool_size"`
	MaxCols   int                     `json:"max_cols"`
}

// CellData merges the fairness and satisfaction rows of one cell
type CellData struct {
	Cell            int                `json:"cell"`
	Demand          int                `json:"demand"`
	Allocated       int                `json:"allocated"`
	HighPriority    int                `json:"high_priority"`
	LowPriority     int                `json:"low_priority"`
	Blocked         int                `json:"blocked"`
	SatisfactionPct float64            `json:"satisfaction_pct"`
	BlockingPct     float64            `json:"blocking_pct"`
	Channels        []models.ChannelID `json:"channels"`
}

// TotalData holds the cluster-wide totals
type TotalData struct {
	Demand          int     `json:"demand"`
	Allocated       int     `json:"allocated"`
	HighPriority    int     `json:"high_priority"`
	LowPriority     int     `json:"low_priority"`
	Blocked         int     `json:"blocked"`
	SatisfactionPct float64 `json:"satisfaction_pct"`
	BlockingPct     float64 `json:"blocking_pct"`
}

// prepareReportData flattens a simulation report for formatting
func prepareReportData(report *simulation.Report) *ReportData {
	alloc := report.Allocation
	data := &ReportData{
		Budget:      report.Budget,
		ClusterSize: report.ClusterSize,
		ShiftI:      report.Shift.I,
		ShiftJ:      report.Shift.J,
		Seed:        report.Seed,
		Demand:      report.Demand,
		Control:     report.Control,
		Priorities:  report.PoolSummary,
		Allocation: AllocationInfo{
			Status:    alloc.Status,
			Allocated: alloc.ChannelsAllocated,
			PoolSize:  alloc.PoolSize,
			MaxCols:   alloc.MaxCols,
		},
		Cells: make([]CellData, len(report.Satisfaction.Cells)),
	}
	if reason := alloc.Reason(); reason != nil {
		data.Allocation.Message = reason.Error()
	}

	for i, sat := range report.Satisfaction.Cells {
		fair := report.Fairness.Cells[i]
		data.Cells[i] = CellData{
			Cell:            sat.Cell + 1,
			Demand:          sat.Demand,
			Allocated:       sat.Allocated,
			HighPriority:    fair.HighPriority,
			LowPriority:     fair.LowPriority,
			Blocked:         sat.Blocked,
			SatisfactionPct: sat.SatisfactionPct,
			BlockingPct:     sat.BlockingPct,
			Channels:        alloc.Matrix.Row(sat.Cell, sat.Demand),
		}
	}

	total := report.Satisfaction.Total
	data.Total = TotalData{
		Demand:          total.Demand,
		Allocated:       total.Allocated,
		HighPriority:    report.Fairness.TotalHighPriority,
		LowPriority:     report.Fairness.TotalLowPriority,
		Blocked:         total.Blocked,
		SatisfactionPct: total.SatisfactionPct,
		BlockingPct:     total.BlockingPct,
	}

	return data
}

// FormatText returns the text representation of the report
func FormatText(report *simulation.Report) string {
	data := prepareReportData(report)
	var sb strings.Builder

	sb.WriteString("=== Channel Distribution ===\n")
	sb.WriteString(fmt.Sprintf("Total Channels: %d\n", data.Budget.Total))
	sb.WriteString(fmt.Sprintf("Control Channels (10%%): %d\n", data.Budget.Control))
	sb.WriteString(fmt.Sprintf("Voice/Data Channels: %d\n", data.Budget.Voice))
	sb.WriteString(fmt.Sprintf("Cluster Size: %d (i = %d, j = %d)\n", data.ClusterSize, data.ShiftI, data.ShiftJ))

	sb.WriteString("\n=== Channel Allocation Results ===\n")
	sb.WriteString(fmt.Sprintf("Total traffic demand: %d channels\n", data.Demand.TotalDemand))
	if data.Demand.Oversubscribed {
		sb.WriteString(fmt.Sprintf("⚠️  Warning: Total demand (%d) exceeds available voice channels (%d)\n",
			data.Demand.TotalDemand, data.Budget.Voice))
		sb.WriteString("Some channels will be blocked.\n")
	}

	writeDemandAnalysis(&sb, data)
	writeControlMatrix(&sb, data)

	sb.WriteString("\n=== Voice Channel Allocation ===\n")
	if data.Allocation.Status == models.StatusNoVoiceChannels {
		sb.WriteString(data.Allocation.Message + "\n")
	} else {
		writePriorities(&sb, data)
	}
	if data.Allocation.Status == models.StatusNoDemand {
		sb.WriteString(data.Allocation.Message + "\n")
	}
	if data.Allocation.Status == models.StatusAllocated {
		sb.WriteString("Using priority-based round-robin allocation\n")
		sb.WriteString(fmt.Sprintf("Allocated %d out of %d available voice channels\n",
			data.Allocation.Allocated, data.Allocation.PoolSize))
	}

	writeFairness(&sb, data)
	writeTrafficMatrix(&sb, data)
	writeSatisfaction(&sb, data)

	return sb.String()
}

func writeDemandAnalysis(sb *strings.Builder, data *ReportData) {
	sb.WriteString("\n=== Cluster Traffic Analysis ===\n")
	sb.WriteString(fmt.Sprintf("Total demand: %d channels\n", data.Demand.TotalDemand))
	sb.WriteString(fmt.Sprintf("Maximum demand (single cell): %d channels\n", data.Demand.MaxDemand))
	sb.WriteString(fmt.Sprintf("Average demand per cell: %.2f channels\n", data.Demand.AverageDemand))
	sb.WriteString("\nDemand distribution:\n")
	for _, share := range data.Demand.Shares {
		sb.WriteString(fmt.Sprintf("Cell %d: %d channels (%.1f%%)\n", share.Cell+1, share.Demand, share.SharePct))
	}
}

func writeControlMatrix(sb *strings.Builder, data *ReportData) {
	sb.WriteString("\n=== Control Channel Allocation Matrix ===\n")
	sb.WriteString(fmt.Sprintf("Total control channels: %d\n", data.Control.Total))
	sb.WriteString(fmt.Sprintf("Distribution across %d cells:\n\n", len(data.Control.Cells)))
	for i, ids := range data.Control.Cells {
		sb.WriteString(fmt.Sprintf("Cell %2d: [%s]\n", i+1, joinIDs(ids)))
	}
}

func writePriorities(sb *strings.Builder, data *ReportData) {
	sb.WriteString("\nChannel Priority Assignment:\n")
	low, high := data.Priorities.Low, data.Priorities.High
	sb.WriteString(fmt.Sprintf("Low Priority Channels (Priority 1-2): %d channels\n", len(low)))
	if len(low) > 0 {
		sb.WriteString("Low Priority: " + joinIDsSpaced(low) + "\n")
	}
	sb.WriteString(fmt.Sprintf("High Priority Channels (Priority 3-5): %d channels\n", len(high)))
	if len(high) > 0 {
		sb.WriteString("High Priority: " + joinIDsSpaced(high) + "\n")
	}
}

func writeFairness(sb *strings.Builder, data *ReportData) {
	sb.WriteString("\n=== Fairness Distribution ===\n")
	sb.WriteString("High and Low Priority Channel Allocation per Cell:\n")
	sb.WriteString(fmt.Sprintf("%-6s %-8s %-13s %-12s %-10s\n", "Cell", "Total", "High Priority", "Low Priority", "Demand"))
	sb.WriteString(strings.Repeat("-", 53) + "\n")
	for _, c := range data.Cells {
		sb.WriteString(fmt.Sprintf("%-6d %-8d %-13d %-12d %-10d\n", c.Cell, c.Allocated, c.HighPriority, c.LowPriority, c.Demand))
	}
	sb.WriteString(strings.Repeat("-", 53) + "\n")
	sb.WriteString(fmt.Sprintf("%-6s %-8d %-13d %-12d %-10d\n", "Total",
		data.Total.HighPriority+data.Total.LowPriority, data.Total.HighPriority, data.Total.LowPriority, data.Total.Demand))
}

func writeTrafficMatrix(sb *strings.Builder, data *ReportData) {
	sb.WriteString("\n=== Traffic Channel Allocation Matrix ===\n")
	sb.WriteString("(Channels allocated to each cell)\n")
	for _, c := range data.Cells {
		sb.WriteString(fmt.Sprintf("Cell %2d: [%s]\n", c.Cell, joinIDs(c.Channels)))
	}
}

func writeSatisfaction(sb *strings.Builder, data *ReportData) {
	sb.WriteString("\n=== Performance Analysis ===\n")
	sb.WriteString("Demand vs Allocation Summary:\n")
	sb.WriteString(fmt.Sprintf("%-6s %-8s %-10s %-15s %-8s %-10s\n", "Cell", "Demand", "Allocated", "Satisfaction%", "Blocked", "Block%"))
	sb.WriteString(strings.Repeat("-", 69) + "\n")
	for _, c := range data.Cells {
		sb.WriteString(fmt.Sprintf("%-6d %-8d %-10d %-15.1f %-8d %-10.1f\n",
			c.Cell, c.Demand, c.Allocated, c.SatisfactionPct, c.Blocked, c.BlockingPct))
	}
	sb.WriteString(strings.Repeat("-", 69) + "\n")
	t := data.Total
	sb.WriteString(fmt.Sprintf("%-6s %-8d %-10d %-15.1f %-8d %-10.1f\n",
		"Total", t.Demand, t.Allocated, t.SatisfactionPct, t.Blocked, t.BlockingPct))
}

// FormatJSON returns the JSON representation of the report
func FormatJSON(report *simulation.Report) string {
	data := prepareReportData(report)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the report, one row per cell
// followed by a total row
func FormatCSV(report *simulation.Report) string {
	data := prepareReportData(report)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{
		"Cell", "Demand", "Allocated", "High Priority", "Low Priority",
		"Blocked", "Satisfaction%", "Block%", "Channels",
	})

	for _, c := range data.Cells {
		writer.Write([]string{
			strconv.Itoa(c.Cell),
			strconv.Itoa(c.Demand),
			strconv.Itoa(c.Allocated),
			strconv.Itoa(c.HighPriority),
			strconv.Itoa(c.LowPriority),
			strconv.Itoa(c.Blocked),
			fmt.Sprintf("%.1f", c.SatisfactionPct),
			fmt.Sprintf("%.1f", c.BlockingPct),
			strings.Join(idStrings(c.Channels), " "),
		})
	}

	t := data.Total
	writer.Write([]string{
		"Total",
		strconv.Itoa(t.Demand),
		strconv.Itoa(t.Allocated),
		strconv.Itoa(t.HighPriority),
		strconv.Itoa(t.LowPriority),
		strconv.Itoa(t.Blocked),
		fmt.Sprintf("%.1f", t.SatisfactionPct),
		fmt.Sprintf("%.1f", t.BlockingPct),
		"",
	})

	writer.Flush()
	return sb.String()
}

func idStrings(ids []models.ChannelID) []string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return parts
}

// joinIDs renders ids as "%2d" values separated by ", "
func joinIDs(ids []models.ChannelID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%2d", id)
	}
	return strings.Join(parts, ", ")
}

func joinIDsSpaced(ids []models.ChannelID) string {
	return strings.Join(idStrings(ids), " ")
}
