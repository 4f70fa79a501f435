package sound

import (
	"fmt"
	"math/rand/v2"
)

// Bus names.
const (
	BusMaster       = "master"
	BusMusic        = "music"
	BusSFX          = "sfx"
	BusReverbReturn = "reverb-return"
)

// quantum is the render block size in frames.
const quantum = 128

// Bus is a gain stage with a fixed parent. Voices sum into a bus during a
// render quantum; the graph then folds each bus into its parent.
type Bus struct {
	name   string
	gain   float64
	parent *Bus

	left, right []float64
}

func newBus(name string, gain float64, parent *Bus) *Bus {
	return &Bus{
		name:   name,
		gain:   clamp01(gain),
		parent: parent,
		left:   make([]float64, quantum),
		right:  make([]float64, quantum),
	}
}

func (b *Bus) Name() string { return b.name }

func (b *Bus) Gain() float64 { return b.gain }

func (b *Bus) Parent() *Bus { return b.parent }

// SetGain clamps v to [0, 1].
func (b *Bus) SetGain(v float64) { b.gain = clamp01(v) }

func (b *Bus) clear(n int) {
	clear(b.left[:n])
	clear(b.right[:n])
}

// foldInto adds this bus, scaled by its gain, into its parent.
func (b *Bus) foldInto(n int) {
	p := b.parent
	for i := 0; i < n; i++ {
		p.left[i] += b.left[i] * b.gain
		p.right[i] += b.right[i] * b.gain
	}
}

// GraphConfig selects the optional stages of a Graph.
type GraphConfig struct {
	SampleRate  int
	Compression bool
	Compressor  CompressorConfig
	Reverb      bool
	ReverbSpec  ReverbConfig
}

// Graph is the fixed mix topology:
//
//	music ─┐
//	       ├─ master ─ [compressor] ─ output
//	sfx ───┘
//	reverb send ─ convolution ─ reverb-return ─ music
type Graph struct {
	Master       *Bus
	Music        *Bus
	SFX          *Bus
	ReverbReturn *Bus

	compressor *Compressor
	reverb     *ConvolutionReverb

	sendL, sendR []float64
	wetL, wetR   []float64
}

// NewGraph builds the buses in order: master and its output stage first, then
// music and sfx, then the optional reverb. A reverb that cannot be built is
// reported but leaves a working graph without it.
func NewGraph(cfg GraphConfig, rng *rand.Rand) (*Graph, error) {
	g := &Graph{
		sendL: make([]float64, quantum),
		sendR: make([]float64, quantum),
		wetL:  make([]float64, quantum),
		wetR:  make([]float64, quantum),
	}
	g.Master = newBus(BusMaster, 1, nil)
	if cfg.Compression {
		g.compressor = NewCompressor(cfg.Compressor, cfg.SampleRate)
	}
	g.Music = newBus(BusMusic, 1, g.Master)
	g.SFX = newBus(BusSFX, 1, g.Master)

	if !cfg.Reverb {
		return g, nil
	}
	impulse := NewImpulse(cfg.SampleRate, cfg.ReverbSpec.Seconds, 2, rng)
	rev, err := NewConvolutionReverb(impulse, cfg.ReverbSpec.BlockSize)
	if err != nil {
		return g, fmt.Errorf("sound: build reverb: %w", err)
	}
	g.reverb = rev
	g.ReverbReturn = newBus(BusReverbReturn, cfg.ReverbSpec.ReturnGain, g.Music)
	return g, nil
}

// HasReverb reports whether the reverb stage exists.
func (g *Graph) HasReverb() bool { return g.reverb != nil }

// Compressor returns the output compressor, or nil when compression is off.
func (g *Graph) Compressor() *Compressor { return g.compressor }

func (g *Graph) begin(n int) {
	g.Master.clear(n)
	g.Music.clear(n)
	g.SFX.clear(n)
	if g.reverb != nil {
		g.ReverbReturn.clear(n)
		clear(g.sendL[:n])
		clear(g.sendR[:n])
	}
}

// mix folds every bus down and writes the final signal to outL/outR.
func (g *Graph) mix(outL, outR []float64) {
	n := len(outL)
	if g.reverb != nil {
		g.reverb.Process(g.sendL[:n], g.sendR[:n], g.wetL[:n], g.wetR[:n])
		for i := 0; i < n; i++ {
			g.ReverbReturn.left[i] += g.wetL[i]
			g.ReverbReturn.right[i] += g.wetR[i]
		}
		g.ReverbReturn.foldInto(n)
	}
	g.Music.foldInto(n)
	g.SFX.foldInto(n)

	for i := 0; i < n; i++ {
		outL[i] = g.Master.left[i] * g.Master.gain
		outR[i] = g.Master.right[i] * g.Master.gain
	}
	if g.compressor != nil {
		g.compressor.Process(outL, outR)
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
