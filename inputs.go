package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"channel-allocator/config"
	"channel-allocator/fixed"
	"channel-allocator/parser"
	"channel-allocator/prompt"
	"channel-allocator/simulation"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type dynamicInput struct {
	TotalChannels int
	ClusterSize   int
	Demand        []int
	Seed          uint64
}

type fixedInput struct {
	Config fixed.Config
	Calls  int
	Seed   uint64
}

// loadScenario reads --config, or returns an empty scenario.
func loadScenario() (*config.Scenario, error) {
	if configFlag == "" {
		return &config.Scenario{}, nil
	}
	s, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	logger.WithField("path", configFlag).Debug("loaded scenario")
	return s, nil
}

// newPrompter echoes questions to stderr only when stdin is a terminal, so
// piped answers do not clutter the output.
func newPrompter(cmd *cobra.Command) *prompt.Prompter {
	var out io.Writer = io.Discard
	if term.IsTerminal(int(os.Stdin.Fd())) {
		out = os.Stderr
	}
	return prompt.New(cmd.InOrStdin(), out)
}

// pick returns the flag value when set, otherwise the scenario value.
func pick[T comparable](flagValue, scenarioValue T) T {
	var zero T
	if flagValue != zero {
		return flagValue
	}
	return scenarioValue
}

func resolveSeed(s *config.Scenario) uint64 {
	if seed := pick(seedFlag, s.Seed); seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

func resolveDynamicInput(cmd *cobra.Command) (*dynamicInput, error) {
	s, err := loadScenario()
	if err != nil {
		return nil, err
	}

	in := &dynamicInput{
		TotalChannels: pick(totalFlag, s.TotalChannels),
		ClusterSize:   pick(clusterFlag, s.ClusterSize),
		Demand:        s.Demand,
		Seed:          resolveSeed(s),
	}

	if inputFlag != "" {
		file, err := os.Open(inputFlag)
		if err != nil {
			return nil, fmt.Errorf("error opening file: %w", err)
		}
		defer file.Close()

		in.Demand, err = parser.Parse(file)
		if err != nil {
			return nil, fmt.Errorf("error parsing file: %w", err)
		}
	}
	if in.ClusterSize == 0 && len(in.Demand) > 0 {
		in.ClusterSize = len(in.Demand)
	}

	p := newPrompter(cmd)
	if in.TotalChannels == 0 {
		if in.TotalChannels, err = p.TotalChannels(); err != nil {
			return nil, err
		}
	}
	if in.ClusterSize == 0 {
		if in.ClusterSize, err = p.ClusterSize(); err != nil {
			return nil, err
		}
	}
	if err := simulation.ValidateClusterSize(in.ClusterSize); err != nil {
		return nil, err
	}
	if len(in.Demand) == 0 {
		if in.Demand, err = p.Demand(in.ClusterSize); err != nil {
			return nil, err
		}
	}
	return in, nil
}

func resolveFixedInput(cmd *cobra.Command) (*fixedInput, error) {
	s, err := loadScenario()
	if err != nil {
		return nil, err
	}

	in := &fixedInput{
		Config: fixed.Config{
			TotalChannels:     pick(totalFlag, s.TotalChannels),
			ClusterSize:       pick(clusterFlag, s.ClusterSize),
			ControlPercentage: pick(controlFlag, s.ControlPercentage),
		},
		Calls: callsFlag,
		Seed:  resolveSeed(s),
	}
	if !cmd.Flags().Changed("calls") && s.Calls > 0 {
		in.Calls = s.Calls
	}

	p := newPrompter(cmd)
	if in.Config.TotalChannels == 0 {
		if in.Config.TotalChannels, err = p.TotalChannels(); err != nil {
			return nil, err
		}
	}
	if in.Config.ClusterSize == 0 {
		if in.Config.ClusterSize, err = p.FixedClusterSize(fixed.SupportedClusterSizes); err != nil {
			return nil, err
		}
	}
	if in.Config.ControlPercentage == 0 {
		if in.Config.ControlPercentage, err = p.ControlPercentage(fixed.MinControlPercentage, fixed.MaxControlPercentage); err != nil {
			return nil, err
		}
	}
	return in, nil
}
