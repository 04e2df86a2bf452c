// Package prompt asks for simulation inputs on a line-oriented terminal and
// keeps asking until a valid value is given.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"channel-allocator/channels"
	customerrors "channel-allocator/errors"
	"channel-allocator/geometry"
	"channel-allocator/simulation"
)

// ErrNoInput is returned when input ends before a valid value was read.
var ErrNoInput = errors.New("input ended before a valid value was entered")

// Prompter reads answers from in and writes questions and complaints to out.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New creates a Prompter. Pass io.Discard as out to ask silently.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// readInt asks question until validate accepts a number.
func (p *Prompter) readInt(question string, validate func(int) string) (int, error) {
	for {
		fmt.Fprint(p.out, question)
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return 0, fmt.Errorf("failed to read input: %w", err)
			}
			return 0, ErrNoInput
		}
		v, err := strconv.Atoi(strings.TrimSpace(p.scanner.Text()))
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input! Please enter a number.")
			continue
		}
		if msg := validate(v); msg != "" {
			fmt.Fprintln(p.out, msg)
			continue
		}
		return v, nil
	}
}

// TotalChannels asks for a total channel count in the supported range.
func (p *Prompter) TotalChannels() (int, error) {
	question := fmt.Sprintf("Enter the number of total channels (%d-%d): ", channels.MinTotalChannels, channels.MaxTotalChannels)
	return p.readInt(question, func(v int) string {
		if v < channels.MinTotalChannels || v > channels.MaxTotalChannels {
			return fmt.Sprintf("Invalid input! Total channels must be between %d and %d.",
				channels.MinTotalChannels, channels.MaxTotalChannels)
		}
		return ""
	})
}

// ClusterSize asks for a cluster size satisfying N = i² + j² + i·j and
// reports the (i, j) pair found.
func (p *Prompter) ClusterSize() (int, error) {
	n, err := p.readInt("Enter the cluster size: ", func(v int) string {
		if v <= 0 || v > simulation.MaxClusterSize {
			return fmt.Sprintf("Cluster size must be between 1 and %d.", simulation.MaxClusterSize)
		}
		if !geometry.IsValidClusterSize(v) {
			return "Invalid cluster size. Valid cluster sizes follow the pattern N = i² + j² + i*j\n" +
				"Common valid sizes: " + joinInts(geometry.ValidSizes(31)) + "..."
		}
		return ""
	})
	if err != nil {
		return 0, err
	}
	shift, _ := geometry.Solve(n)
	fmt.Fprintf(p.out, "Correct Cluster Size! Value of i = %d and value of j = %d.\n", shift.I, shift.J)
	return n, nil
}

// FixedClusterSize asks for one of the given cluster sizes.
func (p *Prompter) FixedClusterSize(allowed []int) (int, error) {
	question := fmt.Sprintf("Enter the cluster size (%s): ", joinInts(allowed))
	return p.readInt(question, func(v int) string {
		if !slices.Contains(allowed, v) {
			return fmt.Sprintf("Invalid cluster size. Please enter one of %s.", joinInts(allowed))
		}
		return ""
	})
}

// Demand asks for the traffic demand of each of n cells.
func (p *Prompter) Demand(n int) ([]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: no cells to ask demand for (%d)", customerrors.ErrInvalidClusterSize, n)
	}
	fmt.Fprintln(p.out, "\nEnter traffic channel demand for each cell:")
	demand := make([]int, n)
	for cell := range n {
		question := fmt.Sprintf("Enter the number of channels for cell %d: ", cell+1)
		v, err := p.readInt(question, func(v int) string {
			if v < 0 {
				return "Channel demand cannot be negative. Please enter a non-negative number."
			}
			return ""
		})
		if err != nil {
			return nil, err
		}
		demand[cell] = v
	}
	return demand, nil
}

// ControlPercentage asks for a fraction in [lo, hi].
func (p *Prompter) ControlPercentage(lo, hi float64) (float64, error) {
	for {
		fmt.Fprint(p.out, "Enter the percentage of control channels (e.g., 0.10 for 10%): ")
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return 0, fmt.Errorf("failed to read input: %w", err)
			}
			return 0, ErrNoInput
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(p.scanner.Text()), 64)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input! Please enter a number.")
			continue
		}
		if v < lo || v > hi {
			fmt.Fprintf(p.out, "Invalid control channel percentage. Please enter a value between %.2f and %.2f.\n", lo, hi)
			continue
		}
		return v, nil
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
