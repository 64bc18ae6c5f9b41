package audio

import (
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/revtone/mapper"
	"github.com/lixenwraith/revtone/parameter"
	"github.com/lixenwraith/revtone/profile"
)

// layerNode is one layer's playback chain:
// cycle source -> resampler (pitch) -> volume (gain) -> ctrl -> mixer.
type layerNode struct {
	resampler *beep.Resampler
	vol       *effects.Volume
	ctrl      *beep.Ctrl

	// last applied parameters, for metering
	gain float64
	rate float64
}

// apply pushes gain and playback rate into the chain. Caller holds the
// speaker lock when the graph is live.
func (n *layerNode) apply(gain, rate, master float64) {
	n.gain = gain
	n.rate = rate

	eff := gain * master
	if eff < parameter.GainSilenceThreshold {
		n.vol.Silent = true
	} else {
		n.vol.Silent = false
		n.vol.Volume = math.Log2(eff)
	}
	n.resampler.SetRatio(rate)
}

// LayerMeter is a metering snapshot of one layer node.
type LayerMeter struct {
	LayerID string
	Gain    float64
	Rate    float64
}

// Graph owns the beep playback graph for the active profile. It is the
// sink for the mapper's per-frame output.
//
// If the speaker cannot initialize (headless host, no audio device) the
// graph runs in silent mode: all parameter bookkeeping still happens so
// metering and tests work, nothing is audible. Silent mode is not an
// error.
type Graph struct {
	cfg    *Config
	logger *log.Logger

	mu    sync.Mutex
	mixer *beep.Mixer
	nodes map[string]*layerNode
	order []string

	running   atomic.Bool
	speakerOn bool // speaker.Init succeeded; false in silent mode
	muted     atomic.Bool
}

// NewGraph creates a stopped graph.
func NewGraph(cfg *Config, logger *log.Logger) *Graph {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = log.New(log.Writer(), "audio: ", log.LstdFlags)
	}
	g := &Graph{
		cfg:    cfg,
		logger: logger,
		mixer:  &beep.Mixer{},
		nodes:  make(map[string]*layerNode),
	}
	g.muted.Store(!cfg.Enabled)
	return g
}

// Name implements the service interface.
func (g *Graph) Name() string { return "audio" }

// Start brings up the speaker and attaches the mixer. Falls back to
// silent mode when no output device is available.
func (g *Graph) Start() error {
	if !g.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	sr := beep.SampleRate(g.cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(g.cfg.BufferDuration)); err != nil {
		g.logger.Printf("speaker init failed, running silent: %v", err)
		g.speakerOn = false
		return nil
	}
	g.speakerOn = true
	speaker.Play(g.mixer)
	return nil
}

// Stop silences and detaches all layers. Idempotent.
func (g *Graph) Stop() error {
	if !g.running.CompareAndSwap(true, false) {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.speakerOn {
		speaker.Lock()
		defer speaker.Unlock()
	}
	g.clearLocked()
	return nil
}

// SetProfile replaces the layer chains with ones for p. Abrupt cut, no
// crossfade between profiles.
func (g *Graph) SetProfile(p *profile.Profile) error {
	if p == nil {
		return ErrNoProfile
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.speakerOn && g.running.Load() {
		speaker.Lock()
		defer speaker.Unlock()
	}

	g.clearLocked()

	sr := beep.SampleRate(g.cfg.SampleRate)
	for i, l := range p.Layers {
		src := newLayerStreamer(sr, l, int64(i+1))
		resampler := beep.ResampleRatio(g.cfg.ResampleQuality, 1.0, src)
		vol := &effects.Volume{
			Streamer: resampler,
			Base:     parameter.VolumeBase,
			Silent:   true,
		}
		ctrl := &beep.Ctrl{Streamer: vol}

		g.nodes[l.ID] = &layerNode{
			resampler: resampler,
			vol:       vol,
			ctrl:      ctrl,
			rate:      1.0,
		}
		g.order = append(g.order, l.ID)
		g.mixer.Add(ctrl)
	}
	return nil
}

// Apply pushes one frame of mapper output into the layer chains.
// Outputs naming unknown layers are ignored; the session guarantees
// profile consistency, this is just a guard across a profile switch.
func (g *Graph) Apply(outputs []mapper.LayerOutput) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.speakerOn && g.running.Load() {
		speaker.Lock()
		defer speaker.Unlock()
	}

	master := g.cfg.MasterVolume
	if g.muted.Load() {
		master = 0
	}
	for _, out := range outputs {
		node, ok := g.nodes[out.LayerID]
		if !ok {
			continue
		}
		node.apply(out.Gain, out.PlaybackRate, master)
	}
}

// SetMuted toggles audibility without touching layer parameters.
func (g *Graph) SetMuted(muted bool) {
	g.muted.Store(muted)
}

// Muted reports the mute state.
func (g *Graph) Muted() bool {
	return g.muted.Load()
}

// Meters returns the last applied parameters per layer, in profile
// layer order.
func (g *Graph) Meters() []LayerMeter {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]LayerMeter, 0, len(g.order))
	for _, id := range g.order {
		n := g.nodes[id]
		out = append(out, LayerMeter{LayerID: id, Gain: n.gain, Rate: n.rate})
	}
	return out
}

// clearLocked detaches all nodes. Caller holds g.mu (and the speaker
// lock when live).
func (g *Graph) clearLocked() {
	for _, n := range g.nodes {
		n.vol.Silent = true
		n.ctrl.Paused = true
	}
	g.mixer.Clear()
	g.nodes = make(map[string]*layerNode)
	g.order = nil
}
