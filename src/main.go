package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"

	"vimlife/src/config"
	"vimlife/src/control"
	"vimlife/src/logging"
	"vimlife/src/universe"
	"vimlife/src/view"
)

//defTemplate seeds headless runs started without a template or random data
const defTemplate = "sample"

func main() {
	cfg := initOptions()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "vimlife:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	uo, err := cfg.UniverseOptions()
	if err != nil {
		return err
	}
	u, err := universe.New(cfg.Engine, uo)
	if err != nil {
		return err
	}
	for _, tmpl := range cfg.UniverseTemplates() {
		u.AddTemplate(tmpl)
	}

	template := cfg.Template
	if cfg.Headless && template == "" {
		template = defTemplate
	}
	switch {
	case cfg.Random:
		u.SettleWithRandomData(cfg.Seed)
	case template != "":
		if err = u.SettleTemplate(template); err != nil {
			return errors.Wrapf(err, "available templates: %s", templateNames(u))
		}
	}

	settings := view.Settings{
		"Engine":   cfg.Engine,
		"Topology": uo.Topology,
		"Interval": cfg.Interval,
		"Seed":     cfg.Seed,
	}
	for k, v := range u.Options().Advanced {
		settings[k] = v
	}

	if cfg.Headless {
		return runHeadless(ctx, cfg, u, settings)
	}
	return runInteractive(ctx, cfg, u, settings)
}

func runInteractive(ctx context.Context, cfg *config.Config, u universe.Universe, settings view.Settings) error {
	log, closeLog, err := logging.Open(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	log.Info("starting", "engine", cfg.Engine, "width", cfg.Width, "height", cfg.Height, "interval", cfg.Interval)
	c := control.New(u, cfg.Seed, log)
	v, err := view.NewViewTerminal(c, cfg.Interval, settings, log)
	if err != nil {
		return err
	}
	if err = v.Start(ctx); err != nil {
		log.Error("ui stopped", "err", err)
		return err
	}
	log.Info("finished", "generation", u.Status().IterationNum)
	return nil
}

func runHeadless(ctx context.Context, cfg *config.Config, u universe.Universe, settings view.Settings) error {
	log := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	c := control.New(u, cfg.Seed, log)

	settings["Max iterations"] = fmt.Sprintf("%v steps", cfg.MaxSteps)
	out := view.NewConsoleOut(os.Stdout)
	out.Register(c.Model(), settings)
	reason := out.Run(ctx, c, cfg.MaxSteps)
	log.Info("simulation stopped", "reason", reason, "generation", u.Status().IterationNum)
	return nil
}

func templateNames(u universe.Universe) string {
	tt := u.Templates()
	names := make([]string, 0, len(tt))
	for _, t := range tt {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

func initOptions() *config.Config {
	var (
		o          config.Overrides
		configFile string
	)
	flaggy.SetName("vimlife")
	flaggy.SetDescription("Conway's Game of Life with vim-style modal editing")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&o.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&o.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&o.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&o.MaxSteps, "s", "maxSteps", "Limit the headless simulation to maxSteps")
	flaggy.Bool(&o.Headless, "H", "headless", "Run without the terminal UI and print the progress")
	flaggy.String(&o.Template, "t", "template", "Settle with the named template")
	flaggy.Bool(&o.Random, "r", "random", "Settle with random data")
	flaggy.String(&o.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.EngineNames(), "|")+"]")
	flaggy.String(&o.Topology, "T", "topology", "Edge handling [clamped|toroidal]")
	flaggy.Int64(&o.Seed, "", "seed", "Seed of the random data")
	flaggy.String(&configFile, "c", "config", "YAML configuration file")
	flaggy.String(&o.LogFile, "l", "logFile", "Write the log to this file")
	flaggy.String(&o.LogLevel, "L", "logLevel", "Log level [debug|info|warn|error]")

	flaggy.Parse()

	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			flaggy.ShowHelpAndExit(err.Error())
		}
	}
	cfg.Apply(o)
	if err := cfg.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return cfg
}
