package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dd0wney/interdep-cascade/pkg/cascade"
	"github.com/dd0wney/interdep-cascade/pkg/config"
	"github.com/dd0wney/interdep-cascade/pkg/logging"
	"github.com/dd0wney/interdep-cascade/pkg/metrics"
	"github.com/dd0wney/interdep-cascade/pkg/network"
	"github.com/dd0wney/interdep-cascade/pkg/validation"
)

type runOptions struct {
	configPath  string
	workers     int
	logLevel    string
	metricsFile string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "cascade",
		Short: "Simulate cascading failures in interdependent networks",
		Long: `cascade propagates node failures back and forth between the two layers
of an interdependent network until neither layer changes, and reports the
fraction of nodes that survive in both layers.`,
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newRunCmd(), newValidateCmd())
	return root
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every mask of a scenario and print a JSON report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "scenario file (YAML)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "concurrent cascades (overrides run.workers)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides run.log_level)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file (overrides run.metrics_file)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a scenario file and the system it describes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateScenario(cmd.OutOrStdout(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "scenario file (YAML)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func runScenario(cmd *cobra.Command, opts *runOptions) error {
	scenario, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	settings := scenario.Run
	if cmd.Flags().Changed("workers") {
		settings.Workers = opts.workers
		err := validation.NewConfigValidator("flags").
			RangeInt("workers", settings.Workers, 1, validation.MaxWorkers).
			Validate()
		if err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("log-level") {
		settings.LogLevel = opts.logLevel
	}
	if cmd.Flags().Changed("metrics-file") {
		settings.MetricsFile = opts.metricsFile
	}

	base, err := newLogger(cmd.ErrOrStderr(), settings.LogLevel)
	if err != nil {
		return err
	}
	logger := base.With(append(scenario.LogFields(), logging.Component("cli"), logging.Path(opts.configPath))...)

	system, masks, err := prepare(scenario)
	if err != nil {
		logger.Error("scenario rejected", logging.Error(err))
		return err
	}

	alive := make([][]bool, len(masks))
	for i, m := range masks {
		alive[i] = m.Alive
	}

	reg := metrics.NewRegistry()
	engine := cascade.NewEngine(cascade.WithLogger(logger), cascade.WithMetrics(reg))

	batch, runErr := engine.RunBatch(cmd.Context(), system, alive, settings.Workers)
	if batch == nil {
		return runErr
	}

	for i, it := range batch.Items {
		if it.Err != nil {
			logger.Warn("mask skipped", logging.String("mask", masks[i].Name), logging.Error(it.Err))
		}
	}

	rep := newReport(scenario, system, masks, batch)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if settings.MetricsFile != "" {
		if err := reg.WriteTextfile(settings.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.Info("metrics written", logging.Path(settings.MetricsFile))
	}
	return runErr
}

// newLogger builds the JSON logger for a run. An empty level defers to
// LOG_LEVEL.
func newLogger(w io.Writer, level string) (*logging.JSONLogger, error) {
	if level == "" {
		return logging.NewDefaultLogger(w), nil
	}
	lvl, ok := logging.LookupLevel(level)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return logging.NewJSONLogger(w, lvl), nil
}

func validateScenario(out io.Writer, path string) error {
	scenario, err := config.Load(path)
	if err != nil {
		return err
	}
	system, masks, err := prepare(scenario)
	if err != nil {
		return err
	}

	if _, _, err := system.Layers(); err != nil {
		return err
	}
	fmt.Fprintf(out, "scenario %s is valid\n", scenario.Name)
	fmt.Fprintf(out, "  nodes:      %d\n", system.NumNodes())
	for _, name := range system.Network.LayerNames() {
		layer, _ := system.Network.Layer(name)
		fmt.Fprintf(out, "  layer %s:    %d edges, average degree %.2f, max degree %d\n",
			name, layer.EdgeCount(), layer.AverageDegree(), maxDegree(layer))
	}
	fmt.Fprintf(out, "  dependency: %s, %d pairs\n", scenario.System.Dependency.Type, system.Dependency.Len())
	fmt.Fprintf(out, "  masks:      %d\n", len(masks))
	return nil
}

func maxDegree(l *network.NetworkLayer) int {
	m := 0
	for _, d := range l.Degrees() {
		m = max(m, d)
	}
	return m
}

func prepare(s *config.Scenario) (*network.InterdependentSystem, []config.Mask, error) {
	system, err := s.BuildSystem()
	if err != nil {
		return nil, nil, err
	}
	masks, err := s.ResolveMasks()
	if err != nil {
		return nil, nil, err
	}
	return system, masks, nil
}

// report is the JSON document printed by "cascade run".
type report struct {
	RunID    string               `json:"run_id"`
	Scenario string               `json:"scenario"`
	NumNodes int                  `json:"num_nodes"`
	Summary  cascade.BatchSummary `json:"summary"`
	Masks    []maskReport         `json:"masks"`
}

type maskReport struct {
	Name       string         `json:"name"`
	MInfty     float64        `json:"m_infty"`
	Survivors  []int          `json:"survivors"`
	Iterations int            `json:"iterations"`
	History    []cascade.Step `json:"history"`
	Error      string         `json:"error,omitempty"`
}

func newReport(s *config.Scenario, system *network.InterdependentSystem, masks []config.Mask, batch *cascade.BatchResult) report {
	rep := report{
		RunID:    batch.RunID,
		Scenario: s.Name,
		NumNodes: system.NumNodes(),
		Summary:  batch.Summary,
		Masks:    make([]maskReport, len(batch.Items)),
	}

	for i, it := range batch.Items {
		mr := maskReport{Name: masks[i].Name}
		if it.Err != nil {
			mr.Error = it.Err.Error()
		} else {
			mr.MInfty = it.Result.MInfty
			mr.Survivors = it.Result.Survivors()
			mr.Iterations = it.Result.Iterations()
			mr.History = it.Result.History
		}
		rep.Masks[i] = mr
	}
	return rep
}
