// revtone reconstructs a continuous engine RPM/throttle signal from
// sparse vehicle telemetry and plays it through a multi-layer
// crossfaded synthesis graph, with a terminal dashboard.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/lixenwraith/revtone/audio"
	"github.com/lixenwraith/revtone/engine"
	"github.com/lixenwraith/revtone/events"
	"github.com/lixenwraith/revtone/profile"
	"github.com/lixenwraith/revtone/smoother"
	"github.com/lixenwraith/revtone/telemetry"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Version      bool          `short:"v" help:"Show version information"`
	Profile      string        `short:"p" default:"v8" help:"Builtin profile id to start with"`
	ProfileFile  string        `short:"f" type:"path" help:"Load an additional profile from a JSON file"`
	ListProfiles bool          `short:"l" help:"List available profiles and exit"`
	Mute         bool          `short:"m" help:"Start muted"`
	NoUI         bool          `help:"Headless mode: log a status line instead of the dashboard"`
	Duration     time.Duration `short:"d" default:"0" help:"Exit after this long (0 = run until interrupted)"`
	Seed         int64         `default:"1" help:"Drive-cycle simulator seed"`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("revtone"),
		kong.Description("Engine audio synthesis from vehicle telemetry"),
		kong.UsageOnError(),
	)

	if cli.Version {
		fmt.Printf("revtone %s\n", version)
		os.Exit(0)
	}

	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "revtone: %v\n", err)
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	catalog := profile.Builtins()
	if cli.ProfileFile != "" {
		p, err := profile.LoadFile(cli.ProfileFile)
		if err != nil {
			return err
		}
		if err := catalog.Add(p); err != nil {
			return err
		}
	}

	if cli.ListProfiles {
		for _, id := range catalog.IDs() {
			p, _ := catalog.Get(id)
			fmt.Printf("%-8s %s (%.0f-%.0f rpm, %d layers)\n",
				p.ID, p.Name, p.MinRPM, p.MaxRPM, len(p.Layers))
		}
		return nil
	}

	active, err := catalog.Get(cli.Profile)
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if !cli.NoUI {
		// The dashboard owns the terminal; keep logs out of it.
		logFile, err := os.Create("revtone-debug.log")
		if err == nil {
			defer logFile.Close()
			logger = log.New(logFile, "", log.LstdFlags)
		}
	}

	graph := audio.NewGraph(audio.LoadConfig(), logger)
	graph.SetMuted(cli.Mute)

	sim := telemetry.NewSimulator(telemetry.SimulatorConfig{
		IdleRPM:  active.IdleRPM,
		MaxRPM:   active.MaxRPM,
		ShiftRPM: active.SoftLimiterRPM,
		Seed:     cli.Seed,
	})

	bus := events.NewBus()
	session := engine.NewSession(smoother.DefaultConfig(), graph, bus, logger)

	if err := engine.StartAll(graph, sim); err != nil {
		return err
	}
	defer engine.StopAll(graph, sim)

	session.Attach(sim)
	if err := session.Start(active); err != nil {
		return err
	}
	defer session.Stop()

	if cli.NoUI {
		return runHeadless(cli, session, logger)
	}
	return runDashboard(cli, session, graph, sim, catalog)
}

// runHeadless logs a status line once per second until interrupted or
// the duration elapses.
func runHeadless(cli *CLI, session *engine.Session, logger *log.Logger) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	var deadline <-chan time.Time
	if cli.Duration > 0 {
		deadline = time.After(cli.Duration)
	}

	status := time.NewTicker(time.Second)
	defer status.Stop()

	for {
		select {
		case <-sig:
			return nil
		case <-deadline:
			return nil
		case <-status.C:
			snap := session.Snapshot()
			logger.Printf("rpm=%7.0f pedal=%.2f rate=%+8.0f ticks=%d stalled=%v",
				snap.RPM, snap.Pedal, snap.Rate, snap.Ticks, snap.Stalled)
		}
	}
}
