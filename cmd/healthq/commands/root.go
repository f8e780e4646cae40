// Package commands implements the healthq CLI. Every command runs against an
// in-memory platform store seeded from a fixture file.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	healthkit "github.com/goliatone/go-healthkit"
	"github.com/goliatone/go-healthkit/internal/config"
	"github.com/goliatone/go-healthkit/pkg/activity"
	"github.com/goliatone/go-healthkit/pkg/activity/usersink"
	"github.com/goliatone/go-healthkit/pkg/metrics"
	"github.com/goliatone/go-healthkit/pkg/zaplog"
	"github.com/goliatone/go-healthkit/platform/memstore"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// runtime is the state shared by every command.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *memstore.Store
	registry *prometheus.Registry
	options  []healthkit.Option
	out      io.Writer
}

// NewRootCmd builds the healthq command tree.
func NewRootCmd() *cobra.Command {
	rt := &runtime{}
	var (
		configPath string
		overrides  config.Config
	)

	root := &cobra.Command{
		Use:   "healthq",
		Short: "healthq - query a simulated health store through healthkit",
		Long: `healthq drives the healthkit access layer against an in-memory health store.

Examples:
  healthq catalog                               # List capabilities and units
  healthq --fixture steps.yaml fetch stepCount  # Fetch samples in the default unit
  healthq fetch bodyTemperature --unit degF --since 72h --limit 3
  healthq check heartRate --share bodyMass      # Would a prompt be shown?
  healthq request heartRate                     # Run the prompt
  healthq background enable heartRate --frequency hourly`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v := config.New()
			flags := cmd.Flags()
			for flag, key := range map[string]string{
				"fixture":   "fixture",
				"engine":    "engine",
				"log-level": "log.level",
				"metrics":   "metrics.enabled",
				"activity":  "activity.enabled",
			} {
				if f := flags.Lookup(flag); f != nil {
					if err := v.BindPFlag(key, f); err != nil {
						return err
					}
				}
			}
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			return rt.init(cfg, cmd.OutOrStdout())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			defer rt.sync()
			if rt.cfg != nil && rt.cfg.Metrics.Enabled {
				return rt.dumpMetrics()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default ./healthq.toml)")
	flags.StringVar(&overrides.Fixture, "fixture", "", "TOML or YAML fixture to seed the store with")
	flags.StringVar(&overrides.Engine, "engine", "", "Predicate engine: "+strings.Join(memstore.EngineNames(), ", "))
	flags.StringVar(&overrides.Log.Level, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&overrides.Metrics.Enabled, "metrics", false, "Print operation metrics after the command")
	flags.BoolVar(&overrides.Activity.Enabled, "activity", false, "Print activity records for authorization and background delivery changes")

	root.AddCommand(
		newCatalogCmd(rt),
		newFetchCmd(rt),
		newCheckCmd(rt),
		newRequestCmd(rt),
		newStatusCmd(rt),
		newBackgroundCmd(rt),
	)
	return root
}

func (rt *runtime) init(cfg *config.Config, out io.Writer) error {
	rt.cfg = cfg
	rt.out = out

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	rt.logger = logger

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	rt.store = store

	loggers := []healthkit.OperationLogger{zaplog.New(logger.Sugar())}
	if cfg.Metrics.Enabled {
		rt.registry = prometheus.NewRegistry()
		collector, err := metrics.NewCollector(rt.registry)
		if err != nil {
			return err
		}
		loggers = append(loggers, collector)
	}

	rt.options = []healthkit.Option{
		healthkit.WithOperationLogger(healthkit.MultiOperationLogger(loggers...)),
		healthkit.WithDescriptorCache(healthkit.NewDescriptorCache()),
	}
	if cfg.Activity.Enabled {
		rt.options = append(rt.options,
			healthkit.WithActivityHooks(usersink.Hook{Sink: jsonSink{out: out}, Channel: cfg.Activity.Channel}),
			healthkit.WithActivityChannel(cfg.Activity.Channel),
			healthkit.WithActorID(cfg.Activity.ActorID),
		)
	}
	return nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func newStore(cfg *config.Config) (*memstore.Store, error) {
	if cfg.Fixture == "" {
		engine, err := memstore.EngineByName(cfg.Engine, memstore.NewProgramCache())
		if err != nil {
			return nil, err
		}
		return memstore.NewStore(
			memstore.WithDefaultCatalog(),
			memstore.WithPredicateEngine(engine),
			memstore.WithAvailability(cfg.Available),
		), nil
	}

	fixture, err := memstore.LoadFixture(cfg.Fixture)
	if err != nil {
		return nil, err
	}
	// Fixture settings win over config defaults.
	if fixture.Engine == "" {
		fixture.Engine = cfg.Engine
	}
	if fixture.Available == nil {
		fixture.Available = &cfg.Available
	}
	return fixture.NewStore()
}

func (rt *runtime) withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if rt.cfg.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, rt.cfg.Timeout)
}

func (rt *runtime) sync() {
	if rt.logger != nil {
		_ = rt.logger.Sync()
	}
}

func (rt *runtime) dumpMetrics() error {
	families, err := rt.registry.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, label.GetName()+"="+label.GetValue())
			}
			value := metric.GetCounter().GetValue()
			if h := metric.GetHistogram(); h != nil {
				value = float64(h.GetSampleCount())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", family.GetName(), strings.Join(labels, ","), value))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(rt.out, line)
	}
	return nil
}

// jsonSink prints activity records as JSON lines.
type jsonSink struct {
	out io.Writer
}

func (s jsonSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	return json.NewEncoder(s.out).Encode(record)
}

var _ activity.ActivityHook = usersink.Hook{}
