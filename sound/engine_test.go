package sound

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/automoto/butterfly-flight/synth"
)

type fakeDevice struct {
	openErr error
	src     io.Reader
	opened  int
	resumed int
	closed  int
}

func (d *fakeDevice) Open(_ int, src io.Reader) error {
	d.opened++
	if d.openErr != nil {
		return d.openErr
	}
	d.src = src
	return nil
}

func (d *fakeDevice) Resume() error { d.resumed++; return nil }
func (d *fakeDevice) Close() error  { d.closed++; return nil }

type fakeLoader struct {
	buf *synth.Buffer
	err error
}

func (l fakeLoader) Load(string, int) (*synth.Buffer, error) { return l.buf, l.err }

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeDevice) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Reverb = false
	dev := &fakeDevice{}
	base := []Option{
		WithDevice(dev),
		WithSeed(1),
		WithLogger(log.New(io.Discard, "", 0)),
	}
	e := New(cfg, append(base, opts...)...)
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return e, dev
}

func TestSixClicksEvictFirst(t *testing.T) {
	e, _ := newTestEngine(t)
	asset := e.LoadSound(synth.UIClick, "", SoundOptions{
		Duration: 0.1, Category: CategoryUI, Pooled: true, PoolSize: 5,
	})
	if asset == nil {
		t.Fatal("LoadSound returned nil")
	}

	var voices []*Voice
	for i := 0; i < 6; i++ {
		v := e.PlayUIClick()
		if v == nil {
			t.Fatalf("click %d returned nil", i)
		}
		voices = append(voices, v)
	}

	if got := e.ActiveVoices(synth.UIClick); got != 5 {
		t.Errorf("active voices = %d, want 5", got)
	}
	if got := voices[0].State(); got != VoiceStopped {
		t.Errorf("first voice state = %v, want stopped", got)
	}
	pool := asset.Pool()
	if pool.InUse() != 5 {
		t.Errorf("pool in use = %d, want 5", pool.InUse())
	}
	if pool.Slots()[0].Voice != voices[5] {
		t.Error("slot 0 should hold the sixth voice")
	}

	e.Advance(0.3)
	if pool.InUse() != 0 {
		t.Errorf("pool in use after completion = %d, want 0", pool.InUse())
	}
	for i, v := range voices[1:] {
		if v.State() != VoiceCompleted {
			t.Errorf("voice %d state = %v, want completed", i+1, v.State())
		}
	}
}

func TestVolumeClamping(t *testing.T) {
	e, _ := newTestEngine(t)
	g := e.Graph()

	tests := []struct {
		name string
		set  func(float64)
		get  func(Settings) float64
		bus  *Bus
	}{
		{"master", e.SetMasterVolume, func(s Settings) float64 { return s.MasterVolume }, g.Master},
		{"music", e.SetMusicVolume, func(s Settings) float64 { return s.MusicVolume }, g.Music},
		{"sfx", e.SetSFXVolume, func(s Settings) float64 { return s.SFXVolume }, g.SFX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range []struct{ in, want float64 }{{-0.5, 0}, {1.5, 1}, {0.3, 0.3}} {
				tt.set(c.in)
				if got := tt.get(e.Settings()); got != c.want {
					t.Errorf("set(%v): stored %v, want %v", c.in, got, c.want)
				}
				if got := tt.bus.Gain(); got != c.want {
					t.Errorf("set(%v): bus gain %v, want %v", c.in, got, c.want)
				}
			}
		})
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	e, _ := newTestEngine(t)
	g := e.Graph()
	before := e.Settings()
	musicGain, sfxGain := g.Music.Gain(), g.SFX.Gain()

	if e.ToggleMusic() {
		t.Fatal("first ToggleMusic should disable music")
	}
	if g.Music.Gain() != 0 {
		t.Errorf("music bus gain = %v while disabled", g.Music.Gain())
	}
	if e.Settings().MusicVolume != before.MusicVolume {
		t.Error("toggling changed the stored music volume")
	}
	if !e.ToggleMusic() {
		t.Fatal("second ToggleMusic should enable music")
	}

	if e.ToggleSFX() || !e.ToggleSFX() {
		t.Fatal("ToggleSFX did not alternate")
	}

	if got := e.Settings(); got != before {
		t.Errorf("settings = %+v, want %+v", got, before)
	}
	if g.Music.Gain() != musicGain || g.SFX.Gain() != sfxGain {
		t.Error("bus gains not restored")
	}
}

func TestSettingsPersistRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	e, _ := newTestEngine(t, WithStore(store))
	e.ToggleSFX()
	e.ToggleSFX()

	blob, err := store.LoadItem(SettingsKey)
	if err != nil || len(blob) == 0 {
		t.Fatalf("no saved settings: %v", err)
	}
	loaded, err := MergeSettings(DefaultSettings(), blob)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != e.Settings() {
		t.Errorf("persisted %+v, live %+v", loaded, e.Settings())
	}

	e.SetMusicVolume(0.25)
	again, _ := newTestEngine(t, WithStore(store))
	if got := again.Settings().MusicVolume; got != 0.25 {
		t.Errorf("reloaded music volume = %v, want 0.25", got)
	}
}

func TestMergeSettingsKeepsMissingFields(t *testing.T) {
	got, err := MergeSettings(DefaultSettings(), []byte(`{"musicVolume":0.1}`))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultSettings()
	want.MusicVolume = 0.1
	if got != want {
		t.Errorf("merged = %+v, want %+v", got, want)
	}
	if _, err := MergeSettings(DefaultSettings(), []byte("{")); err == nil {
		t.Error("expected an error for a corrupt blob")
	}
}

func TestDisabledEngineIsNoop(t *testing.T) {
	var logs bytes.Buffer
	dev := &fakeDevice{openErr: errors.New("no output")}
	e := New(DefaultConfig(), WithDevice(dev), WithLogger(log.New(&logs, "", 0)))

	err := e.Initialize()
	if !errors.Is(err, ErrDeviceUnavailable) {
		t.Fatalf("Initialize error = %v, want ErrDeviceUnavailable", err)
	}
	if err := e.Initialize(); err != nil {
		t.Errorf("second Initialize = %v, want nil", err)
	}
	if dev.opened != 1 {
		t.Errorf("device opened %d times, want 1", dev.opened)
	}
	if strings.Count(logs.String(), "Audio disabled") != 1 {
		t.Errorf("failure logged %q, want exactly once", logs.String())
	}

	before := e.Settings()
	if e.LoadSound(synth.Flap, "", SoundOptions{}) != nil {
		t.Error("LoadSound should return nil")
	}
	if e.LoadMusic(synth.PastelClouds, MusicOptions{Duration: 1}) != nil {
		t.Error("LoadMusic should return nil")
	}
	if e.PlaySound(synth.Flap, PlayOptions{}) != nil {
		t.Error("PlaySound should return nil")
	}
	if e.PlayMusic(synth.PastelClouds, MusicPlayOptions{}) != nil {
		t.Error("PlayMusic should return nil")
	}
	if e.ToggleMusic() || e.ToggleSFX() {
		t.Error("toggles should report disabled")
	}
	e.SetMasterVolume(0.1)
	e.StopMusic(0)
	if e.Settings() != before {
		t.Error("settings changed on a disabled engine")
	}
	if err := e.ResumeAudioContext(); err != nil {
		t.Errorf("ResumeAudioContext = %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close = %v", err)
	}
}

func TestLoadFallsBackToSynthesis(t *testing.T) {
	var logs bytes.Buffer
	e, _ := newTestEngine(t,
		WithLoader(fakeLoader{err: errors.New("404")}),
		WithLogger(log.New(&logs, "", 0)),
	)
	asset := e.LoadSound(synth.Coin, "sounds/coin.ogg", SoundOptions{Duration: 0.4})
	if asset == nil || len(asset.Buffers) != 1 {
		t.Fatalf("asset = %+v", asset)
	}
	if got, want := asset.Buffers[0].Frames(), 17640; got != want {
		t.Errorf("frames = %d, want %d", got, want)
	}
	if !strings.Contains(logs.String(), "Warning") {
		t.Errorf("missing warning, logs = %q", logs.String())
	}
}

func TestLoaderBufferIsUsed(t *testing.T) {
	buf := synth.NewBuffer(44100, 2, 100)
	e, _ := newTestEngine(t, WithLoader(fakeLoader{buf: buf}))
	asset := e.LoadSound("custom", "custom.wav", SoundOptions{Variations: 3})
	if len(asset.Buffers) != 1 || asset.Buffers[0] != buf {
		t.Error("loaded buffer not used")
	}
	if again := e.LoadSound("custom", "", SoundOptions{}); again != asset {
		t.Error("second load should return the cached asset")
	}
}

func TestVariations(t *testing.T) {
	e, _ := newTestEngine(t)
	asset := e.LoadSound(synth.Flap, "", SoundOptions{Duration: 0.2, Variations: 3})
	if len(asset.Buffers) != 3 {
		t.Fatalf("buffers = %d, want 3", len(asset.Buffers))
	}
	if asset.Buffers[0] == asset.Buffers[1] {
		t.Error("variations share a buffer")
	}
}

func TestRouting(t *testing.T) {
	e, _ := newTestEngine(t)
	e.LoadSound(synth.UIHover, "", SoundOptions{Duration: 0.1, Category: CategoryUI})
	e.LoadSound(synth.Collision, "", SoundOptions{Duration: 0.6, Volume: 0.5})
	g := e.Graph()

	ui := e.PlayUIHover()
	if ui.Bus() != g.Master {
		t.Errorf("ui voice on %s bus, want master", ui.Bus().Name())
	}
	if got, want := ui.Gain(), 1*e.Settings().SFXVolume; got != want {
		t.Errorf("ui gain = %v, want %v", got, want)
	}

	fx := e.PlayCollision(PlayOptions{})
	if fx.Bus() != g.SFX {
		t.Errorf("sfx voice on %s bus, want sfx", fx.Bus().Name())
	}
	if fx.Gain() != 0.5 {
		t.Errorf("sfx gain = %v, want 0.5", fx.Gain())
	}
	if fx.Rate() != 1 {
		t.Errorf("rate = %v, want 1 without pitch variation", fx.Rate())
	}
}

func TestPlaySoundEdgeCases(t *testing.T) {
	e, _ := newTestEngine(t)
	if v := e.PlaySound("missing", PlayOptions{}); v != nil {
		t.Error("unknown id should return nil")
	}

	e.LoadSound(synth.Flap, "", SoundOptions{Duration: 0.2})
	v := e.PlayFlap(PlayOptions{})
	if v == nil {
		t.Fatal("PlayFlap returned nil")
	}
	if r := v.Rate(); r < 0.95 || r > 1.05 {
		t.Errorf("rate = %v, want within ±0.05", r)
	}

	e.ToggleSFX()
	if e.PlayFlap(PlayOptions{}) != nil {
		t.Error("PlaySound should return nil with sfx disabled")
	}
}

func TestSpatialVoice(t *testing.T) {
	e, _ := newTestEngine(t)
	e.LoadSound(synth.PowerUp, "", SoundOptions{Duration: 0.8, Spatial: true})

	if v := e.PlayPowerUp(PlayOptions{}); v.Panner() != nil {
		t.Error("no position should mean no panner")
	}
	v := e.PlayPowerUp(PlayOptions{Position: &Vec2{X: 300, Y: 0}, Listener: &Vec2{X: 100, Y: 0}})
	p := v.Panner()
	if p == nil {
		t.Fatal("expected a panner")
	}
	if p.Right <= p.Left {
		t.Errorf("emitter to the right: left %v right %v", p.Left, p.Right)
	}
}

func TestRenderBeforeInitializeIsSilent(t *testing.T) {
	e := New(DefaultConfig(), WithDevice(&fakeDevice{}), WithLogger(log.New(io.Discard, "", 0)))
	l, r := []float64{1, 1}, []float64{1, 1}
	e.Render(l, r)
	if l[0] != 0 || r[1] != 0 {
		t.Error("expected silence")
	}
	if e.Now() != 0 {
		t.Errorf("clock = %v, want 0", e.Now())
	}
}

func TestReadProducesPCM(t *testing.T) {
	e, dev := newTestEngine(t)
	if dev.src != e {
		t.Fatal("device should read from the engine")
	}
	e.LoadSound(synth.Achievement, "", SoundOptions{Duration: 1.5})
	e.PlayAchievement()

	p := make([]byte, 4*4410)
	n, err := e.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read = %d, %v", n, err)
	}
	nonzero := false
	for _, b := range p {
		if b != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		t.Error("rendered PCM is silent")
	}
	if got := e.Now(); got != 0.1 {
		t.Errorf("clock = %v, want 0.1", got)
	}
}

func TestCloseDropsAssets(t *testing.T) {
	e, dev := newTestEngine(t)
	e.LoadSound(synth.Flap, "", SoundOptions{Duration: 0.2})
	e.PlayFlap(PlayOptions{})
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if dev.closed != 1 {
		t.Errorf("device closed %d times", dev.closed)
	}
	if e.Sound(synth.Flap) != nil {
		t.Error("asset survived Close")
	}
	if e.PlayFlap(PlayOptions{}) != nil {
		t.Error("PlaySound after Close should return nil")
	}
}

func TestResumeAudioContext(t *testing.T) {
	e, dev := newTestEngine(t)
	if err := e.ResumeAudioContext(); err != nil {
		t.Fatal(err)
	}
	if dev.resumed != 1 {
		t.Errorf("resumed %d times, want 1", dev.resumed)
	}
}

func TestReverbGraph(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReverbSpec.Seconds = 0.1
	e := New(cfg, WithDevice(&fakeDevice{}), WithSeed(3), WithLogger(log.New(io.Discard, "", 0)))
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	g := e.Graph()
	if !g.HasReverb() || g.ReverbReturn.Parent() != g.Music {
		t.Fatal("reverb return should feed the music bus")
	}
	if g.ReverbReturn.Gain() != 0.2 {
		t.Errorf("return gain = %v", g.ReverbReturn.Gain())
	}
	if g.Music.Parent() != g.Master || g.SFX.Parent() != g.Master {
		t.Error("music and sfx should feed master")
	}
	if g.Compressor() == nil {
		t.Error("compressor missing")
	}

	e.LoadMusic(synth.PastelClouds, MusicOptions{Duration: 1})
	v := e.PlayMusic(synth.PastelClouds, MusicPlayOptions{FadeIn: 0.05})
	if !v.send {
		t.Error("music voice should feed the reverb")
	}
	l, r := make([]float64, 8192), make([]float64, 8192)
	e.Render(l, r)
	for i := range l {
		if l[i] > 1 || l[i] < -1 || r[i] > 1 || r[i] < -1 {
			t.Fatalf("frame %d out of range: %v %v", i, l[i], r[i])
		}
	}
}

func TestExtremePitchVariation(t *testing.T) {
	e, _ := newTestEngine(t)
	e.LoadSound(synth.Coin, "", SoundOptions{Duration: 0.1})

	for i := 0; i < 40; i++ {
		v := e.PlaySound(synth.Coin, PlayOptions{PitchVariation: 4})
		if v == nil {
			t.Fatal("PlaySound returned nil")
		}
		if r := v.Rate(); r < minRate || r > 1+maxPitchVariation/2 {
			t.Fatalf("rate = %v, want within [%v, %v]", r, minRate, 1+maxPitchVariation/2)
		}
	}

	e.Advance(0.5)
	// 0.1s at the slowest rate lasts 2s.
	e.Advance(2.5)
	if n := e.ActiveVoices(synth.Coin); n != 0 {
		t.Errorf("%d voices still playing", n)
	}
}

func TestPitchRateBounds(t *testing.T) {
	tests := []struct {
		r, variation float64
		want         float64
	}{
		{0.5, 4, 1},
		{0, 0.1, 0.95},
		{0, 4, minRate},
		{0, -4, minRate},
		{0.999999, 100, 1 + maxPitchVariation*0.499999},
	}
	for _, tt := range tests {
		if got := pitchRate(tt.r, tt.variation); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("pitchRate(%v, %v) = %v, want %v", tt.r, tt.variation, got, tt.want)
		}
	}
}

func TestVoiceRateFloor(t *testing.T) {
	buf := synth.NewBuffer(44100, 1, 10)
	for _, rate := range []float64{0, -2, math.NaN()} {
		if v := newVoice("x", buf, false, rate, 1, nil); v.Rate() != minRate {
			t.Errorf("newVoice rate %v became %v, want %v", rate, v.Rate(), minRate)
		}
	}
}

func TestVoiceWithBadCursorCompletes(t *testing.T) {
	e, _ := newTestEngine(t)
	e.LoadSound(synth.Flap, "", SoundOptions{Duration: 0.2})
	v := e.PlaySound(synth.Flap, PlayOptions{})
	v.pos = -1

	e.Advance(0.01)
	if v.State() != VoiceCompleted {
		t.Errorf("state = %v, want completed", v.State())
	}
	if n := e.ActiveVoices(synth.Flap); n != 0 {
		t.Errorf("%d voices still playing", n)
	}
}
