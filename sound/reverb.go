package sound

import (
	"errors"
	"fmt"
	"math/rand/v2"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/automoto/butterfly-flight/synth"
)

var (
	ErrEmptyImpulse   = errors.New("sound: empty impulse response")
	ErrInvalidBlock   = errors.New("sound: convolution block size must be a power of two")
	ErrChannelMissing = errors.New("sound: impulse response needs at least one channel")
)

// ReverbConfig describes the generated room impulse.
type ReverbConfig struct {
	Seconds    float64
	ReturnGain float64
	BlockSize  int
}

func DefaultReverb() ReverbConfig {
	return ReverbConfig{Seconds: 2, ReturnGain: 0.2, BlockSize: 1024}
}

// NewImpulse generates a decaying noise impulse: each sample is uniform noise
// scaled by (1 - i/len)^2 * 0.1.
func NewImpulse(sampleRate int, seconds float64, channels int, rng *rand.Rand) *synth.Buffer {
	n := int(seconds * float64(sampleRate))
	buf := synth.NewBuffer(sampleRate, channels, n)
	for _, ch := range buf.Channels {
		for i := range ch {
			d := 1 - float64(i)/float64(n)
			ch[i] = float32((rng.Float64()*2 - 1) * d * d * 0.1)
		}
	}
	return buf
}

// ConvolutionReverb convolves a stereo send with an impulse response using
// uniformly partitioned overlap-save. Output lags input by BlockSize frames.
type ConvolutionReverb struct {
	left, right *convolver
}

// NewConvolutionReverb prepares one convolver per side. A mono impulse is used
// for both sides.
func NewConvolutionReverb(impulse *synth.Buffer, block int) (*ConvolutionReverb, error) {
	if impulse.ChannelCount() == 0 {
		return nil, ErrChannelMissing
	}
	l, err := newConvolver(impulse.Channels[0], block)
	if err != nil {
		return nil, err
	}
	rch := impulse.Channels[0]
	if impulse.ChannelCount() > 1 {
		rch = impulse.Channels[1]
	}
	r, err := newConvolver(rch, block)
	if err != nil {
		return nil, err
	}
	return &ConvolutionReverb{left: l, right: r}, nil
}

// Latency is the delay in frames between send and return.
func (r *ConvolutionReverb) Latency() int { return r.left.block }

// Process convolves inL/inR into outL/outR. All slices have equal length.
func (r *ConvolutionReverb) Process(inL, inR, outL, outR []float64) {
	r.left.process(inL, outL)
	r.right.process(inR, outR)
}

type convolver struct {
	block int
	plan  *algofft.Plan[complex128]

	kernels [][]complex128
	history [][]complex128
	head    int

	input  []float64
	output []float64
	fill   int

	scratch []complex128
	acc     []complex128
}

func newConvolver(kernel []float32, block int) (*convolver, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyImpulse
	}
	if block <= 0 || block&(block-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlock, block)
	}
	size := 2 * block
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("sound: create FFT plan: %w", err)
	}

	parts := (len(kernel) + block - 1) / block
	c := &convolver{
		block:   block,
		plan:    plan,
		kernels: make([][]complex128, parts),
		history: make([][]complex128, parts),
		input:   make([]float64, size),
		output:  make([]float64, block),
		scratch: make([]complex128, size),
		acc:     make([]complex128, size),
	}
	for p := range c.kernels {
		clear(c.scratch)
		chunk := kernel[p*block : min((p+1)*block, len(kernel))]
		for i, v := range chunk {
			c.scratch[i] = complex(float64(v), 0)
		}
		c.kernels[p] = make([]complex128, size)
		if err := plan.Forward(c.kernels[p], c.scratch); err != nil {
			return nil, fmt.Errorf("sound: kernel FFT: %w", err)
		}
		c.history[p] = make([]complex128, size)
	}
	return c, nil
}

func (c *convolver) process(in, out []float64) {
	for i, x := range in {
		c.input[c.block+c.fill] = x
		out[i] = c.output[c.fill]
		c.fill++
		if c.fill == c.block {
			c.step()
			c.fill = 0
		}
	}
}

// step transforms the newest 2*block window, multiplies the spectrum history
// against each kernel partition and keeps the alias-free second half.
func (c *convolver) step() {
	for i, v := range c.input {
		c.scratch[i] = complex(v, 0)
	}
	parts := len(c.kernels)
	if err := c.plan.Forward(c.history[c.head], c.scratch); err != nil {
		clear(c.output)
		return
	}

	clear(c.acc)
	for k := 0; k < parts; k++ {
		x := c.history[(c.head-k+parts)%parts]
		h := c.kernels[k]
		for j := range c.acc {
			c.acc[j] += x[j] * h[j]
		}
	}
	if err := c.plan.Inverse(c.scratch, c.acc); err != nil {
		clear(c.output)
		return
	}
	for i := range c.output {
		c.output[i] = real(c.scratch[c.block+i])
	}

	copy(c.input[:c.block], c.input[c.block:])
	c.head = (c.head + 1) % parts
}
