package sound

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// ErrDeviceUnavailable is returned when no audio output can be opened.
var ErrDeviceUnavailable = errors.New("sound: audio device unavailable")

// Device is the output the engine streams PCM into. src yields 16-bit
// little-endian interleaved stereo.
type Device interface {
	Open(sampleRate int, src io.Reader) error
	Resume() error
	Close() error
}

// EbitenDevice plays the engine's stream through an ebiten audio player.
type EbitenDevice struct {
	bufferSize time.Duration
	player     *audio.Player
}

func NewEbitenDevice(bufferSize time.Duration) *EbitenDevice {
	return &EbitenDevice{bufferSize: bufferSize}
}

// Open reuses the process-wide ebiten audio context when one exists, since
// ebiten allows only one.
func (d *EbitenDevice) Open(sampleRate int, src io.Reader) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrDeviceUnavailable, r)
		}
	}()

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	} else if ctx.SampleRate() != sampleRate {
		return fmt.Errorf("%w: context already running at %d Hz", ErrDeviceUnavailable, ctx.SampleRate())
	}

	player, err := ctx.NewPlayer(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	if d.bufferSize > 0 {
		player.SetBufferSize(d.bufferSize)
	}
	player.Play()
	d.player = player
	return nil
}

// Resume restarts a paused player. Browsers keep audio suspended until the
// first user gesture.
func (d *EbitenDevice) Resume() error {
	if d.player == nil {
		return ErrDeviceUnavailable
	}
	if !d.player.IsPlaying() {
		d.player.Play()
	}
	return nil
}

func (d *EbitenDevice) Close() error {
	if d.player == nil {
		return nil
	}
	err := d.player.Close()
	d.player = nil
	return err
}

// nullDevice discards output. It is used when no device is configured.
type nullDevice struct{}

func (nullDevice) Open(int, io.Reader) error { return nil }
func (nullDevice) Resume() error             { return nil }
func (nullDevice) Close() error              { return nil }
