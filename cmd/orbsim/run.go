package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/clock"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/logging"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/observability"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/storage"
)

func runScenario(cmd *cobra.Command, args []string) error {
	logger := logging.New(os.Stderr, logLevel)

	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if sc.FrameStep <= 0 {
		return fmt.Errorf("frame step must be positive")
	}
	pacing, err := clock.ParseMode(mode)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector, err := observability.NewCollector(reg)
	if err != nil {
		return err
	}
	s, bodies, err := config.Build(sc, sim.WithLogger(logger), sim.WithCollector(collector))
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		stop := serveMetrics(logger, collector)
		defer stop()
	}

	rec := storage.NewRecorder(bodies)
	rec.Record(s.CurrentTime())

	driver := clock.NewDriver(sc.FrameStep, pacing)
	driver.AddListener(rec.Record)

	observed, err := orbitMetrics(sc, bodies)
	if err != nil {
		return err
	}
	for _, m := range observed {
		m.Observe(s.CurrentTime())
	}
	driver.AddListener(func(t time.Time) {
		for _, m := range observed {
			m.Observe(t)
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	frames := int(sc.Duration / sc.FrameStep)
	level.Info(logger).Log("msg", "run started", "scenario", sc.Name, "bodies", len(bodies),
		"frames", frames, "frame_step", sc.FrameStep, "mode", pacing)
	began := time.Now()

	done, err := driver.Run(ctx, s, frames)
	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}
	elapsed := time.Since(began)
	level.Info(logger).Log("msg", "run finished", "frames", done, "elapsed", elapsed, "interrupted", interrupted)

	results := make(map[string]float64, len(observed))
	for _, m := range observed {
		results[m.Name()] = m.Value()
	}

	fmt.Println(title.Render(sc.Name))
	printField("simulated", fmt.Sprintf("%v (%d frames)", time.Duration(done)*sc.FrameStep, done))
	printField("wall time", elapsed.Round(time.Millisecond).String())
	if interrupted {
		printField("status", warn.Render("interrupted"))
	}
	printField("sim time", s.CurrentTime().Format(time.RFC3339))
	fmt.Println()
	for _, name := range rec.Names() {
		printField(name, bodies[name].Position().String())
	}
	if len(results) > 0 {
		fmt.Println()
		for _, m := range observed {
			printField(m.Name(), fmt.Sprintf("%.6g", m.Value()))
		}
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Scenario:    sc.Name,
		Start:       sc.Start.Time,
		Duration:    time.Duration(done) * sc.FrameStep,
		FrameStep:   sc.FrameStep,
		MinimumStep: s.MinimumStep(),
		Frames:      done,
		Bodies:      rec.Names(),
		Metrics:     results,
	}, rec.Samples())
	if err != nil {
		return err
	}
	fmt.Println()
	printField("run id", good.Render(runID))
	return nil
}

func loadScenario(cmd *cobra.Command, args []string) (*config.Scenario, error) {
	start, err := config.ParseEpoch(startFlag)
	if err != nil {
		return nil, err
	}

	var sc *config.Scenario
	switch {
	case configFile != "" && len(args) > 0:
		return nil, fmt.Errorf("give either a preset or --config, not both")
	case configFile != "":
		if sc, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if !start.IsZero() {
			sc.Start = config.Epoch{Time: start}
		}
	case len(args) == 1:
		if sc, err = config.GetPreset(args[0], start); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	default:
		return nil, fmt.Errorf("no scenario given (available presets: %v)", config.ListPresets())
	}

	if cmd.Flags().Changed("duration") {
		if sc.Duration, err = time.ParseDuration(duration); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("frame") {
		if sc.FrameStep, err = time.ParseDuration(frameStep); err != nil {
			return nil, err
		}
	}
	return sc, sc.Validate()
}

// orbitMetrics measures the subject against its central body. Without
// flags the first craft placed around another body is used.
func orbitMetrics(sc *config.Scenario, bodies map[string]body.Body) ([]metrics.Metric, error) {
	subj, cent := subject, central
	if subj == "" {
		for _, bc := range sc.Bodies {
			if bc.Central != "" && (bc.Kind == config.KindCraft || bc.Kind == config.KindMassive) {
				subj, cent = bc.Name, bc.Central
				break
			}
		}
	}
	if subj == "" {
		return nil, nil
	}

	g, ok := bodies[subj].(body.Gravitatee)
	if !ok {
		return nil, fmt.Errorf("subject %q is not a moving craft", subj)
	}
	if cent == "" {
		for _, bc := range sc.Bodies {
			if _, ok := bodies[bc.Name].(body.Gravitator); ok && bc.Name != subj {
				cent = bc.Name
				break
			}
		}
	}
	c, ok := bodies[cent].(body.Gravitator)
	if !ok {
		return nil, fmt.Errorf("central %q is not a gravitating body", cent)
	}

	r := g.Position().Distance(c.Position())
	return []metrics.Metric{
		metrics.NewOrbitalEnergy(g, c),
		metrics.NewEnergyDrift(g, c),
		metrics.NewRadiusBound(g, c, r/2, r*2),
	}, nil
}

func serveMetrics(logger log.Logger, collector *observability.Collector) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "metrics server failed", "err", err)
		}
	}()
	level.Info(logger).Log("msg", "serving metrics", "addr", metricsAddr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func printField(name, v string) {
	fmt.Printf("%s %s\n", label.Render(fmt.Sprintf("%-14s", name)), value.Render(v))
}
