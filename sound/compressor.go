package sound

import "math"

// CompressorConfig holds the dynamics settings for the output stage. Times
// are in seconds, levels in dB.
type CompressorConfig struct {
	Threshold float64
	Knee      float64
	Ratio     float64
	Attack    float64
	Release   float64
	Makeup    float64
}

// DefaultCompressor matches the browser DynamicsCompressor defaults the game
// was tuned against.
func DefaultCompressor() CompressorConfig {
	return CompressorConfig{
		Threshold: -24,
		Knee:      30,
		Ratio:     12,
		Attack:    0.003,
		Release:   0.25,
	}
}

// Compressor is a stereo-linked peak compressor with a quadratic soft knee.
type Compressor struct {
	cfg          CompressorConfig
	attackCoeff  float64
	releaseCoeff float64
	makeupLin    float64

	peak      float64
	reduction float64
}

func NewCompressor(cfg CompressorConfig, sampleRate int) *Compressor {
	if cfg.Ratio < 1 {
		cfg.Ratio = 1
	}
	sr := float64(sampleRate)
	c := &Compressor{
		cfg:       cfg,
		makeupLin: math.Pow(10, cfg.Makeup/20),
	}
	c.attackCoeff = 1 - math.Exp(-math.Ln2/(max(cfg.Attack, 1e-5)*sr))
	c.releaseCoeff = math.Exp(-math.Ln2 / (max(cfg.Release, 1e-5) * sr))
	return c
}

// Curve maps an input level to the static output level, both in dB.
func (c *Compressor) Curve(inDB float64) float64 {
	t, w, r := c.cfg.Threshold, c.cfg.Knee, c.cfg.Ratio
	over := inDB - t
	switch {
	case 2*over < -w:
		return inDB
	case w > 0 && 2*math.Abs(over) <= w:
		k := over + w/2
		return inDB + (1/r-1)*k*k/(2*w)
	default:
		return t + over/r
	}
}

// Process compresses both channels in place.
func (c *Compressor) Process(left, right []float64) {
	for i := range left {
		level := max(math.Abs(left[i]), math.Abs(right[i]))
		if level > c.peak {
			c.peak += (level - c.peak) * c.attackCoeff
		} else {
			c.peak = level + (c.peak-level)*c.releaseCoeff
		}
		g := c.gain(c.peak) * c.makeupLin
		left[i] *= g
		right[i] *= g
	}
}

func (c *Compressor) gain(peak float64) float64 {
	if peak <= 1e-9 {
		c.reduction = 0
		return 1
	}
	in := 20 * math.Log10(peak)
	c.reduction = c.Curve(in) - in
	return math.Pow(10, c.reduction/20)
}

// Reduction is the gain change applied to the last sample, in dB (<= 0).
func (c *Compressor) Reduction() float64 { return c.reduction }
