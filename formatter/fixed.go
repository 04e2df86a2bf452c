package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"channel-allocator/fixed"
	"channel-allocator/geometry"
	"channel-allocator/models"
)

// FixedData holds a fixed plan prepared for formatting
type FixedData struct {
	TotalChannels     int                  `json:"total_channels"`
	ClusterSize       int                  `json:"cluster_size"`
	ControlPercentage float64              `json:"control_percentage"`
	ControlChannels   int                  `json:"control_channels"`
	TrafficChannels   int                  `json:"traffic_channels"`
	Control           [][]models.ChannelID `json:"control"`
	Traffic           [][]models.ChannelID `json:"traffic"`
	Verification      fixed.Verification   `json:"verification"`
	Reuse             geometry.Reuse       `json:"reuse"`
	Calls             fixed.CallSimulation `json:"calls"`
}

func prepareFixedData(plan *fixed.Plan, calls fixed.CallSimulation) *FixedData {
	return &FixedData{
		TotalChannels:     plan.Config.TotalChannels,
		ClusterSize:       plan.Config.ClusterSize,
		ControlPercentage: plan.Config.ControlPercentage,
		ControlChannels:   plan.ControlChannels,
		TrafficChannels:   plan.TrafficChannels,
		Control:           plan.Control,
		Traffic:           plan.Traffic,
		Verification:      plan.Verify(),
		Reuse:             plan.Reuse,
		Calls:             calls,
	}
}

// FormatFixedText returns the text representation of a fixed plan
func FormatFixedText(plan *fixed.Plan, calls fixed.CallSimulation) string {
	data := prepareFixedData(plan, calls)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Output for case: Total channels = %d and cluster size = %d\n",
		data.TotalChannels, data.ClusterSize))
	sb.WriteString(fmt.Sprintf("Control: %d (%.0f%%) | Traffic: %d\n",
		data.ControlChannels, data.ControlPercentage*100, data.TrafficChannels))

	sb.WriteString("\nThe control channel matrix is:\n")
	for _, row := range data.Control {
		sb.WriteString("[" + joinIDsSpaced(row) + "]\n")
	}
	sb.WriteString("\nThe traffic channel matrix is:\n")
	for _, row := range data.Traffic {
		sb.WriteString("[" + joinIDsSpaced(row) + "]\n")
	}

	v := data.Verification
	sb.WriteString("\nMatrix verification:\n")
	sb.WriteString(fmt.Sprintf("Control channels distributed: %d/%d %s\n", v.ControlDistributed, data.ControlChannels, mark(v.Valid)))
	sb.WriteString(fmt.Sprintf("Traffic channels distributed: %d/%d %s\n", v.TrafficDistributed, data.TrafficChannels, mark(v.Valid)))
	sb.WriteString(fmt.Sprintf("Total channels: %d/%d %s\n",
		v.ControlDistributed+v.TrafficDistributed, data.TotalChannels, mark(v.Valid)))

	r := data.Reuse
	sb.WriteString("\nFrequency reuse analysis:\n")
	sb.WriteString(fmt.Sprintf("Reuse Factor: 1/%d = %.3f\n", r.ClusterSize, r.Factor))
	sb.WriteString(fmt.Sprintf("SIR: %.1f dB | Reuse Distance: %.1f\n", r.SIRdB, r.DistanceRatio))

	if len(data.Calls.Calls) > 0 {
		sb.WriteString("\nCall simulation:\n")
		for i, c := range data.Calls.Calls {
			if !c.Success {
				sb.WriteString(fmt.Sprintf("Call %d: Cell %d -> blocked\n", i+1, c.Cell+1))
				continue
			}
			sb.WriteString(fmt.Sprintf("Call %d: Cell %d -> Channel %d\n", i+1, c.Cell+1, c.Channel))
		}
		sb.WriteString(fmt.Sprintf("Success Rate: %d/%d (%.0f%%)\n",
			data.Calls.Successful, len(data.Calls.Calls), data.Calls.SuccessRate))
	}

	return sb.String()
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// FormatFixedJSON returns the JSON representation of a fixed plan
func FormatFixedJSON(plan *fixed.Plan, calls fixed.CallSimulation) string {
	data := prepareFixedData(plan, calls)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatFixedCSV returns one row per cell with its control and traffic channels
func FormatFixedCSV(plan *fixed.Plan) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{"Cell", "Control Count", "Control Channels", "Traffic Count", "Traffic Channels"})
	for cell := range plan.Traffic {
		writer.Write([]string{
			strconv.Itoa(cell + 1),
			strconv.Itoa(len(plan.Control[cell])),
			joinIDsSpaced(plan.Control[cell]),
			strconv.Itoa(len(plan.Traffic[cell])),
			joinIDsSpaced(plan.Traffic[cell]),
		})
	}

	writer.Flush()
	return sb.String()
}
