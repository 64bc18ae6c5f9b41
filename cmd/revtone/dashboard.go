package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/revtone/audio"
	"github.com/lixenwraith/revtone/engine"
	"github.com/lixenwraith/revtone/events"
	"github.com/lixenwraith/revtone/profile"
	"github.com/lixenwraith/revtone/telemetry"
)

const (
	dashboardFPS  = 30
	eventLogDepth = 5
)

// dashboard renders the live session state with tcell.
type dashboard struct {
	screen  tcell.Screen
	session *engine.Session
	graph   *audio.Graph
	sim     *telemetry.Simulator
	catalog *profile.Catalog

	eventLog []string

	// manual throttle override state
	manual      bool
	manualPedal float64
}

func runDashboard(cli *CLI, session *engine.Session, graph *audio.Graph, sim *telemetry.Simulator, catalog *profile.Catalog) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	d := &dashboard{
		screen:  screen,
		session: session,
		graph:   graph,
		sim:     sim,
		catalog: catalog,
	}

	busCh := session.Bus().Subscribe(16)

	keys := make(chan *tcell.EventKey, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			switch tev := ev.(type) {
			case *tcell.EventKey:
				keys <- tev
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return
			}
		}
	}()

	var deadline <-chan time.Time
	if cli.Duration > 0 {
		deadline = time.After(cli.Duration)
	}

	frame := time.NewTicker(time.Second / dashboardFPS)
	defer frame.Stop()

	for {
		select {
		case <-deadline:
			return nil
		case ev := <-busCh:
			d.logEvent(ev)
		case key := <-keys:
			if quit := d.handleKey(key); quit {
				return nil
			}
		case <-frame.C:
			d.draw()
		}
	}
}

func (d *dashboard) handleKey(key *tcell.EventKey) (quit bool) {
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		d.setManualPedal(d.manualPedal + 0.1)
	case tcell.KeyDown:
		d.setManualPedal(d.manualPedal - 0.1)
	case tcell.KeyRune:
		switch key.Rune() {
		case 'q':
			return true
		case 'm':
			d.graph.SetMuted(!d.graph.Muted())
		case 'a':
			d.manual = false
			d.sim.ClearPedalOverride()
		case 'p':
			d.nextProfile()
		}
	}
	return false
}

func (d *dashboard) setManualPedal(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	d.manual = true
	d.manualPedal = v
	d.sim.SetPedalOverride(v)
}

func (d *dashboard) nextProfile() {
	ids := d.catalog.IDs()
	if len(ids) < 2 {
		return
	}
	current := d.session.Snapshot().ProfileID
	next := ids[0]
	for i, id := range ids {
		if id == current {
			next = ids[(i+1)%len(ids)]
			break
		}
	}
	if p, err := d.catalog.Get(next); err == nil {
		_ = d.session.SwitchProfile(p)
	}
}

func (d *dashboard) logEvent(ev events.Event) {
	line := fmt.Sprintf("%s  %s", ev.At.Format("15:04:05"), ev.Type)
	if ev.ProfileID != "" {
		line += " " + ev.ProfileID
	}
	d.eventLog = append(d.eventLog, line)
	if len(d.eventLog) > eventLogDepth {
		d.eventLog = d.eventLog[len(d.eventLog)-eventLogDepth:]
	}
}

func (d *dashboard) draw() {
	d.screen.Clear()

	snap := d.session.Snapshot()
	p, err := d.catalog.Get(snap.ProfileID)
	if err != nil {
		d.screen.Show()
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	valueStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	row := 1
	drawText(d.screen, 2, row, titleStyle,
		fmt.Sprintf("revtone — %s", p.Name))
	status := "playing"
	if d.graph.Muted() {
		status = "muted"
	}
	if snap.Stalled {
		status += "  TELEMETRY STALL"
	}
	drawText(d.screen, 40, row, labelStyle, status)
	row += 2

	// RPM gauge
	drawText(d.screen, 2, row, labelStyle, "RPM")
	drawText(d.screen, 8, row, valueStyle, fmt.Sprintf("%7.0f", snap.RPM))
	gaugeStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	if snap.RPM >= p.SoftLimiterRPM {
		gaugeStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
	drawBar(d.screen, 17, row, 40, snap.RPM/p.MaxRPM, gaugeStyle)
	row++

	// Pedal bar
	drawText(d.screen, 2, row, labelStyle, "Pedal")
	drawText(d.screen, 8, row, valueStyle, fmt.Sprintf("%7.2f", snap.Pedal))
	drawBar(d.screen, 17, row, 40, snap.Pedal, tcell.StyleDefault.Foreground(tcell.ColorBlue))
	row++

	drawText(d.screen, 2, row, labelStyle, "Rate")
	drawText(d.screen, 8, row, valueStyle, fmt.Sprintf("%+7.0f rpm/s", snap.Rate))
	row += 2

	// Per-layer meters
	drawText(d.screen, 2, row, labelStyle, "Layer")
	drawText(d.screen, 20, row, labelStyle, "Gain")
	drawText(d.screen, 48, row, labelStyle, "Pitch")
	row++
	for _, meter := range d.graph.Meters() {
		drawText(d.screen, 2, row, valueStyle, meter.LayerID)
		drawBar(d.screen, 20, row, 24, meter.Gain, tcell.StyleDefault.Foreground(tcell.ColorGreen))
		drawText(d.screen, 48, row, valueStyle, fmt.Sprintf("%.3fx", meter.Rate))
		row++
	}
	row++

	// Event log
	for _, line := range d.eventLog {
		drawText(d.screen, 2, row, labelStyle, line)
		row++
	}
	row++

	mode := "auto cycle"
	if d.manual {
		mode = fmt.Sprintf("manual pedal %.1f", d.manualPedal)
	}
	drawText(d.screen, 2, row, labelStyle,
		fmt.Sprintf("[%s]  q quit  m mute  p profile  up/down throttle  a auto", mode))

	d.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// drawBar renders a horizontal meter, frac clamped to [0,1].
func drawBar(s tcell.Screen, x, y, width int, frac float64, style tcell.Style) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	for i := 0; i < width; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		s.SetContent(x+i, y, r, nil, style)
	}
}
