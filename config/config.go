package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a saved simulation input. Zero values mean "not set" and are
// filled from flags or interactive prompts.
type Scenario struct {
	// TotalChannels is the channel count before control channels are reserved.
	TotalChannels int `yaml:"total_channels"`
	// ClusterSize is the number of cells in the reuse cluster.
	ClusterSize int `yaml:"cluster_size"`
	// Demand holds the requested traffic channels per cell.
	Demand []int `yaml:"demand"`
	// Seed fixes the random source. 0 picks a time-based seed.
	Seed uint64 `yaml:"seed"`
	// ControlPercentage is the control share used by the fixed plan.
	ControlPercentage float64 `yaml:"control_percentage"`
	// Calls is the number of simulated calls for the fixed plan.
	Calls int `yaml:"calls"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a scenario from YAML. Unknown fields are rejected.
func Decode(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return &s, nil
}

// Save writes the scenario as YAML.
func (s *Scenario) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	return enc.Close()
}
