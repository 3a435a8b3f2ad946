package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"colonylife/src/config"
	"colonylife/src/pattern"
	"colonylife/src/universe"
	"colonylife/src/view"
)

var errInterrupted = errors.New("interrupted")

func main() {
	cfg, patterns := initOptions()

	var stateCh chan universe.Status

	if !cfg.Interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u := universe.NewColonyUniverse(universeOptions(cfg), patterns, stateCh)

	if cfg.Interactive {
		v := view.NewViewTerminal()
		u.RegisterViewer(v)
		seed(u, cfg)
		v.Start()
		u.Close()
		return
	}

	out := view.NewConsoleOut()
	u.RegisterViewer(out)
	seed(u, cfg)
	err := simulate(u, stateCh, out)
	u.Close()
	if errors.Is(err, errInterrupted) {
		out.Summary("Interrupted", u.Status())
		return
	}
	if err != nil {
		log.Fatalf("simulation failed: %+v", err)
	}
}

//seed fills the colony from the configuration, the pattern name was validated by initOptions
func seed(u universe.Universe, cfg config.Config) {
	if cfg.Random {
		u.Scatter()
		return
	}
	if err := u.Reset(cfg.Pattern); err != nil {
		log.Fatalf("%+v", err)
	}
}

//simulate runs the universe until it finishes or the process is interrupted
func simulate(u universe.Universe, stateCh chan universe.Status, out *view.ConsoleOut) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		for {
			select {
			case st := <-stateCh:
				if st.RunningMode == universe.RunningStateFinished {
					return nil
				}
			case <-ctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		<-ctx.Done()
		if sigCtx.Err() != nil {
			return errInterrupted
		}
		return nil
	})

	out.Start()
	u.Run()
	return g.Wait()
}

func universeOptions(cfg config.Config) *universe.Options {
	return &universe.Options{
		Width:               cfg.Width,
		Height:              cfg.Height,
		Interval:            time.Duration(cfg.Interval),
		MaxSteps:            cfg.MaxSteps,
		StopWhenStagnant:    cfg.StopWhenStagnant,
		StagnationThreshold: cfg.StagnationThreshold,
		RandomDensity:       cfg.RandomDensity,
		RandomSeed:          cfg.RandomSeed,
	}
}

//configPath finds the config file argument before the flags are parsed, the file provides the flag defaults
func configPath(args []string) string {
	for i, a := range args {
		for _, name := range []string{"-c", "--c", "-config", "--config"} {
			if a == name && i+1 < len(args) {
				return args[i+1]
			}
			if v := strings.TrimPrefix(a, name+"="); v != a {
				return v
			}
		}
	}
	return ""
}

func initOptions() (cfg config.Config, patterns *pattern.Registry) {
	configFile := configPath(os.Args[1:])
	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	patterns, err = cfg.Registry()
	if err != nil {
		log.Fatalf("%+v", err)
	}

	interval := time.Duration(cfg.Interval)
	flaggy.SetName("colonylife")
	flaggy.SetDescription("Conway's Game of Life on an unbounded plane")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&configFile, "c", "config", "JSON configuration file, flags override its values")
	flaggy.Int(&cfg.Width, "x", "width", "Width of the view in cells")
	flaggy.Int(&cfg.Height, "y", "height", "Height of the view in cells")
	flaggy.Duration(&interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&cfg.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	flaggy.Bool(&cfg.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&cfg.Random, "r", "random", "Settle with random data")
	flaggy.Float64(&cfg.RandomDensity, "d", "density", "Share of live cells for random data")
	flaggy.UInt64(&cfg.RandomSeed, "", "seed", "Seed for random data")
	flaggy.Bool(&cfg.StopWhenStagnant, "", "stopWhenStagnant", "Finish when the colony stops changing")
	flaggy.String(&cfg.Pattern, "p", "pattern", "Pattern to start with ["+strings.Join(patterns.Names(), "|")+"]")

	flaggy.Parse()
	cfg.Interval = config.Duration(interval)

	if err := cfg.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	if _, ok := patterns.Get(cfg.Pattern); !ok && !cfg.Random {
		flaggy.ShowHelpAndExit(fmt.Sprintf("unknown pattern %q", cfg.Pattern))
	}

	return
}
