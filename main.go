package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"channel-allocator/channels"
	"channel-allocator/fixed"
	"channel-allocator/formatter"
	"channel-allocator/metrics"
	"channel-allocator/simulation"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFlag        string
	inputFlag         string
	totalFlag         int
	clusterFlag       int
	seedFlag          uint64
	formatFlag        string
	controlFlag       float64
	callsFlag         int
	metricsAddrFlag   string
	pushGatewayFlag   string
	waitFlag          bool
	logLevelFlag      string
	logger            = logrus.New()
	validFormats      = map[string]bool{"text": true, "json": true, "csv": true}
	metricsServerDone = make(chan struct{})
)

var rootCmd = &cobra.Command{
	Use:   "channel-allocator",
	Short: "Simulate cellular channel allocation for a frequency-reuse cluster",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevelFlag)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		logger.SetOutput(os.Stderr)

		if !validFormats[formatFlag] {
			return fmt.Errorf("format must be one of: text, json, csv (got: %s)", formatFlag)
		}

		// Start metrics server if address provided
		if metricsAddrFlag != "" {
			go serveMetrics(metricsAddrFlag)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		finishMetrics()
		return nil
	},
}

var dynamicCmd = &cobra.Command{
	Use:   "dynamic",
	Short: "Allocate voice channels by priority according to per-cell demand",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := resolveDynamicInput(cmd)
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"total_channels": in.TotalChannels,
			"cluster_size":   in.ClusterSize,
			"seed":           in.Seed,
		}).Info("starting dynamic allocation")

		engine := simulation.NewEngine(channels.NewRand(in.Seed), logger)
		report, err := engine.Simulate(in.TotalChannels, in.ClusterSize, in.Demand)
		if err != nil {
			return err
		}
		report.Seed = in.Seed

		switch formatFlag {
		case "json":
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatJSON(report))
		case "csv":
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCSV(report))
		default: // "text"
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatText(report))
		}
		return nil
	},
}

var fixedCmd = &cobra.Command{
	Use:   "fixed",
	Short: "Assign control and traffic channels to cells round-robin",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := resolveFixedInput(cmd)
		if err != nil {
			return err
		}

		plan, err := fixed.Assign(in.Config)
		if err != nil {
			return err
		}
		calls := plan.SimulateCalls(channels.NewRand(in.Seed), in.Calls)

		logger.WithFields(logrus.Fields{
			"control":      plan.ControlChannels,
			"traffic":      plan.TrafficChannels,
			"success_rate": calls.SuccessRate,
		}).Info("fixed assignment complete")

		switch formatFlag {
		case "json":
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatFixedJSON(plan, calls))
		case "csv":
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFixedCSV(plan))
		default: // "text"
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFixedText(plan, calls))
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "YAML scenario file")
	pf.IntVar(&totalFlag, "total-channels", 0, "Total number of channels (50-100)")
	pf.IntVar(&clusterFlag, "cluster-size", 0, "Number of cells in the cluster")
	pf.Uint64Var(&seedFlag, "seed", 0, "Random seed (0 = time-based)")
	pf.StringVar(&formatFlag, "format", "text", "Output format: text|json|csv")
	pf.StringVar(&metricsAddrFlag, "metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pf.StringVar(&pushGatewayFlag, "push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	pf.BoolVar(&waitFlag, "wait", false, "Keep process running after completion to allow for metric scraping")
	pf.StringVar(&logLevelFlag, "log-level", "warn", "Log level: debug|info|warn|error")

	dynamicCmd.Flags().StringVar(&inputFlag, "input", "", "CSV file with per-cell traffic demand")

	fixedCmd.Flags().Float64Var(&controlFlag, "control-percentage", 0, "Control channel share (0.10-0.15)")
	fixedCmd.Flags().IntVar(&callsFlag, "calls", fixed.DefaultCalls, "Number of calls to simulate")

	rootCmd.AddCommand(dynamicCmd, fixedCmd)
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	logger.Infof("Metrics server listening on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.WithError(err).Error("metrics server stopped")
	}
	close(metricsServerDone)
}

// finishMetrics pushes metrics and optionally waits for a final scrape.
func finishMetrics() {
	if pushGatewayFlag != "" {
		jobName := "channel_allocator"
		if err := push.New(pushGatewayFlag, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			logger.WithError(err).Error("failed to push to Pushgateway")
		} else {
			logger.Info("metrics successfully pushed to Pushgateway")
		}
	}

	if waitFlag && metricsAddrFlag != "" {
		fmt.Fprintln(os.Stderr, "\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case <-c:
		case <-metricsServerDone:
		}
		fmt.Fprintln(os.Stderr, "\nExiting...")
	} else if metricsAddrFlag != "" && pushGatewayFlag == "" {
		// Small delay to allow a final scrape; batch runs should push or wait
		time.Sleep(100 * time.Millisecond)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
