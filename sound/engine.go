package sound

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/automoto/butterfly-flight/synth"
)

// Loader fetches and decodes an audio file at the given sample rate.
type Loader interface {
	Load(url string, sampleRate int) (*synth.Buffer, error)
}

// Engine synthesizes, pools and mixes every sound in the game. The game loop
// calls its methods while the device pulls PCM through Read on another
// goroutine; one mutex serializes both.
type Engine struct {
	mu sync.Mutex

	cfg    Config
	device Device
	loader Loader
	store  SettingsStore
	log    *log.Logger
	seed   uint64

	rng    *rand.Rand
	sounds *synth.Registry
	music  *synth.Registry

	settings    Settings
	initialized bool
	disabled    bool

	graph     *Graph
	transport *Transport
	assets    map[string]*SoundAsset
	tracks    map[string]*MusicAsset
	voices    []*Voice
	frames    int64

	readL, readR []float64
}

// New creates an engine and loads persisted settings. Nothing is opened until
// Initialize.
func New(cfg Config, opts ...Option) *Engine {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if cfg.SettingsKey == "" {
		cfg.SettingsKey = SettingsKey
	}
	e := &Engine{
		cfg:      cfg,
		device:   nullDevice{},
		log:      log.Default(),
		seed:     rand.Uint64(),
		settings: DefaultSettings(),
		assets:   make(map[string]*SoundAsset),
		tracks:   make(map[string]*MusicAsset),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = NewMemoryStore()
	}
	e.rng = rand.New(rand.NewPCG(e.seed, e.seed+1))
	e.sounds = synth.NewSoundRegistry(e.seed)
	e.music = synth.NewMusicRegistry(e.seed + 2)
	e.loadSettings()
	return e
}

func (e *Engine) loadSettings() {
	blob, err := e.store.LoadItem(e.cfg.SettingsKey)
	if err != nil {
		e.log.Printf("Warning: Could not load audio settings: %v", err)
		return
	}
	s, err := MergeSettings(DefaultSettings(), blob)
	if err != nil {
		e.log.Printf("Warning: %v", err)
		return
	}
	e.settings = s
}

func (e *Engine) saveSettings(s Settings) {
	data, err := json.Marshal(s)
	if err != nil {
		e.log.Printf("Warning: Could not encode audio settings: %v", err)
		return
	}
	if err := e.store.SaveItem(e.cfg.SettingsKey, data); err != nil {
		e.log.Printf("Warning: Could not save audio settings: %v", err)
	}
}

// Initialize builds the mix graph and opens the device. On failure the error
// is returned once and the engine stays disabled; later calls return nil.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	if e.initialized || e.disabled {
		e.mu.Unlock()
		return nil
	}
	if err := e.buildGraph(); err != nil {
		e.disabled = true
		e.mu.Unlock()
		e.log.Printf("Warning: Audio disabled: %v", err)
		return err
	}
	e.mu.Unlock()

	if err := e.device.Open(e.cfg.SampleRate, e); err != nil {
		if !errors.Is(err, ErrDeviceUnavailable) {
			err = fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
		}
		e.mu.Lock()
		e.disabled = true
		e.graph, e.transport = nil, nil
		e.mu.Unlock()
		e.log.Printf("Warning: Audio disabled: %v", err)
		return fmt.Errorf("sound: initialize: %w", err)
	}

	e.mu.Lock()
	e.initialized = true
	e.mu.Unlock()
	return nil
}

func (e *Engine) buildGraph() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: build graph: %v", ErrDeviceUnavailable, r)
		}
	}()
	g, gerr := NewGraph(GraphConfig{
		SampleRate:  e.cfg.SampleRate,
		Compression: e.cfg.Compression,
		Compressor:  e.cfg.Compressor,
		Reverb:      e.cfg.Reverb,
		ReverbSpec:  e.cfg.ReverbSpec,
	}, e.rng)
	if gerr != nil {
		e.log.Printf("Warning: %v; continuing without reverb", gerr)
	}
	e.graph = g
	e.transport = NewTransport(g.Music, g.HasReverb(), e.cfg.ReplaceFadeOut, e.attach)
	e.applySettings()
	return nil
}

func (e *Engine) attach(v *Voice) {
	v.mu = &e.mu
	e.voices = append(e.voices, v)
}

func (e *Engine) applySettings() {
	if e.graph == nil {
		return
	}
	s := e.settings
	e.graph.Master.SetGain(s.MasterVolume)
	e.graph.Music.SetGain(enabledGain(s.MusicEnabled, s.MusicVolume))
	e.graph.SFX.SetGain(enabledGain(s.SFXEnabled, s.SFXVolume))
}

func enabledGain(on bool, v float64) float64 {
	if !on {
		return 0
	}
	return v
}

// LoadSound loads url through the Loader, or synthesizes id when url is empty
// or loading fails. Loading an id twice returns the first asset.
func (e *Engine) LoadSound(id, url string, opts SoundOptions) (asset *SoundAsset) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Printf("Warning: Failed to load sound %s: %v", id, r)
			asset = nil
		}
	}()

	e.mu.Lock()
	if e.disabled {
		e.mu.Unlock()
		return nil
	}
	if a, ok := e.assets[id]; ok {
		e.mu.Unlock()
		return a
	}
	e.mu.Unlock()

	if opts.Duration <= 0 {
		opts.Duration = e.cfg.DefaultSoundDuration
	}
	if opts.Volume <= 0 {
		opts.Volume = 1
	}
	if opts.Category == "" {
		opts.Category = CategorySFX
	}
	asset = &SoundAsset{
		ID:       id,
		Buffers:  e.soundBuffers(id, url, opts),
		Volume:   opts.Volume,
		Loop:     opts.Loop,
		Spatial:  opts.Spatial,
		Category: opts.Category,
	}
	if opts.Pooled {
		size := opts.PoolSize
		if size <= 0 {
			size = e.cfg.MaxPoolSize
		}
		asset.pool = NewPool(size)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if a, ok := e.assets[id]; ok {
		return a
	}
	e.assets[id] = asset
	return asset
}

func (e *Engine) soundBuffers(id, url string, opts SoundOptions) []*synth.Buffer {
	if buf := e.fetch(id, url); buf != nil {
		return []*synth.Buffer{buf}
	}
	n := max(opts.Variations, 1)
	bufs := make([]*synth.Buffer, n)
	for i := range bufs {
		bufs[i] = e.sounds.Synthesize(id, opts.Duration, e.cfg.SampleRate, 1)
	}
	return bufs
}

func (e *Engine) fetch(id, url string) *synth.Buffer {
	if url == "" || e.loader == nil {
		return nil
	}
	buf, err := e.loader.Load(url, e.cfg.SampleRate)
	if err != nil {
		e.log.Printf("Warning: Failed to load %s from %s, using procedural audio: %v", id, url, err)
		return nil
	}
	return buf
}

// LoadMusic loads opts.URL or synthesizes the track for id.
func (e *Engine) LoadMusic(id string, opts MusicOptions) (asset *MusicAsset) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Printf("Warning: Failed to load music %s: %v", id, r)
			asset = nil
		}
	}()

	e.mu.Lock()
	if e.disabled {
		e.mu.Unlock()
		return nil
	}
	if a, ok := e.tracks[id]; ok {
		e.mu.Unlock()
		return a
	}
	e.mu.Unlock()

	if opts.Duration <= 0 {
		opts.Duration = e.cfg.DefaultMusicDuration
	}
	if opts.Volume <= 0 {
		opts.Volume = e.cfg.MusicVolume
	}
	if opts.FadeIn <= 0 {
		opts.FadeIn = e.cfg.MusicFadeIn
	}
	if opts.FadeOut <= 0 {
		opts.FadeOut = e.cfg.MusicFadeOut
	}
	buf := e.fetch(id, opts.URL)
	if buf == nil {
		buf = e.music.Synthesize(id, opts.Duration, e.cfg.SampleRate, 2)
	}
	asset = &MusicAsset{
		ID:      id,
		Buffer:  buf.Stereo(),
		Volume:  opts.Volume,
		FadeIn:  opts.FadeIn,
		FadeOut: opts.FadeOut,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if a, ok := e.tracks[id]; ok {
		return a
	}
	e.tracks[id] = asset
	return asset
}

// PlaySound starts a voice for id. It returns nil when audio is off, sound
// effects are disabled, or id was never loaded.
func (e *Engine) PlaySound(id string, opts PlayOptions) (v *Voice) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			e.log.Printf("Warning: Failed to play sound %s: %v", id, r)
			v = nil
		}
	}()

	if !e.initialized || !e.settings.SFXEnabled {
		return nil
	}
	asset, ok := e.assets[id]
	if !ok {
		e.log.Printf("Warning: Sound %s not found", id)
		return nil
	}

	volume := opts.Volume
	if volume <= 0 {
		volume = asset.Volume
	}
	category := asset.Category
	if opts.Category != "" {
		category = opts.Category
	}
	bus := e.graph.SFX
	if category == CategoryUI {
		bus = e.graph.Master
		volume *= e.settings.SFXVolume
	}
	rate := 1.0
	if opts.PitchVariation != 0 {
		rate = pitchRate(e.rng.Float64(), opts.PitchVariation)
	}

	v = newVoice(id, asset.pick(e.rng), asset.Loop, rate, volume, bus)
	if asset.Spatial && opts.Position != nil {
		listener := Vec2{}
		if opts.Listener != nil {
			listener = *opts.Listener
		}
		v.panner = NewPanner(*opts.Position, listener, e.cfg.Spatial)
	}
	if asset.pool != nil {
		slot := asset.pool.Acquire()
		asset.pool.bind(slot, v)
	}
	v.start()
	e.attach(v)
	return v
}

// maxPitchVariation keeps the slowest random rate at minRate.
const maxPitchVariation = 2 * (1 - minRate)

// pitchRate maps r in [0,1) to a playback rate spread by variation around 1.
// The variation is capped so the rate stays positive.
func pitchRate(r, variation float64) float64 {
	variation = min(math.Abs(variation), maxPitchVariation)
	return 1 + (r-0.5)*variation
}

// PlayMusic hands id to the transport. Unknown ids leave the current track
// alone.
func (e *Engine) PlayMusic(id string, opts MusicPlayOptions) (v *Voice) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			e.log.Printf("Warning: Failed to play music %s: %v", id, r)
			v = nil
		}
	}()

	if !e.initialized || !e.settings.MusicEnabled {
		return nil
	}
	asset, ok := e.tracks[id]
	if !ok {
		e.log.Printf("Warning: Music %s not found", id)
		return nil
	}
	v = e.transport.Play(asset, opts, e.now())
	v.mu = &e.mu
	return v
}

// StopMusic fades the current track out over fadeOut seconds; zero stops it
// at once and a negative value uses the track's own fade-out.
func (e *Engine) StopMusic(fadeOut float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	if fadeOut < 0 {
		fadeOut = e.cfg.MusicFadeOut
		if cur := e.transport.current; cur != nil {
			fadeOut = cur.Asset.FadeOut
		}
	}
	e.transport.Stop(fadeOut, e.now())
}

func (e *Engine) SetMasterVolume(v float64) {
	e.update(func(s *Settings) { s.MasterVolume = clampVolume(v) })
}

func (e *Engine) SetMusicVolume(v float64) {
	e.update(func(s *Settings) { s.MusicVolume = clampVolume(v) })
}

func (e *Engine) SetSFXVolume(v float64) {
	e.update(func(s *Settings) { s.SFXVolume = clampVolume(v) })
}

// ToggleMusic flips music on or off and returns the new state. The stored
// volume is kept for when music comes back.
func (e *Engine) ToggleMusic() bool {
	s, ok := e.update(func(s *Settings) { s.MusicEnabled = !s.MusicEnabled })
	return ok && s.MusicEnabled
}

// ToggleSFX flips sound effects on or off and returns the new state.
func (e *Engine) ToggleSFX() bool {
	s, ok := e.update(func(s *Settings) { s.SFXEnabled = !s.SFXEnabled })
	return ok && s.SFXEnabled
}

func (e *Engine) update(fn func(*Settings)) (Settings, bool) {
	e.mu.Lock()
	if e.disabled {
		e.mu.Unlock()
		return Settings{}, false
	}
	fn(&e.settings)
	e.applySettings()
	s := e.settings
	e.mu.Unlock()

	e.saveSettings(s)
	return s, true
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp01(v)
}

// ResumeAudioContext restarts output after the platform suspended it.
func (e *Engine) ResumeAudioContext() error {
	e.mu.Lock()
	ok := e.initialized
	e.mu.Unlock()
	if !ok {
		return nil
	}
	if err := e.device.Resume(); err != nil {
		return fmt.Errorf("sound: resume: %w", err)
	}
	return nil
}

// Close stops everything, drops all assets and closes the device.
func (e *Engine) Close() error {
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return nil
	}
	e.transport.Reset()
	for _, v := range e.voices {
		v.stop()
		v.disconnect()
	}
	e.voices = nil
	clear(e.assets)
	clear(e.tracks)
	e.graph, e.transport = nil, nil
	e.initialized = false
	e.mu.Unlock()

	if err := e.device.Close(); err != nil {
		return fmt.Errorf("sound: close: %w", err)
	}
	return nil
}

// Settings returns a copy of the current settings.
func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// CurrentMusic returns the playing track, or nil.
func (e *Engine) CurrentMusic() *CurrentMusic {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.transport == nil {
		return nil
	}
	return e.transport.Current()
}

// MusicState reports the transport state.
func (e *Engine) MusicState() TransportState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.transport == nil {
		return TransportIdle
	}
	return e.transport.State()
}

// Graph exposes the mix graph for inspection. It is nil until Initialize.
func (e *Engine) Graph() *Graph {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph
}

// Sound returns a loaded asset.
func (e *Engine) Sound(id string) *SoundAsset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.assets[id]
}

// ActiveVoices counts playing voices of id.
func (e *Engine) ActiveVoices(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, v := range e.voices {
		if v.id == id && v.state == VoicePlaying {
			n++
		}
	}
	return n
}

// Enabled reports whether the engine is initialized and not disabled.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized && !e.disabled
}

// Now is the audio clock in seconds of rendered output.
func (e *Engine) Now() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now()
}

func (e *Engine) now() float64 {
	return float64(e.frames) / float64(e.cfg.SampleRate)
}

// Render mixes len(left) frames. Before Initialize it writes silence and the
// clock does not move.
func (e *Engine) Render(left, right []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			e.log.Printf("Warning: Audio render failed: %v", r)
			clear(left)
			clear(right)
		}
	}()
	if !e.initialized || e.graph == nil {
		clear(left)
		clear(right)
		return
	}
	for off := 0; off < len(left); off += quantum {
		end := min(off+quantum, len(left))
		e.renderQuantum(left[off:end], right[off:end])
	}
}

// Advance renders and discards the given number of seconds.
func (e *Engine) Advance(seconds float64) {
	n := int(math.Round(seconds * float64(e.cfg.SampleRate)))
	left, right := make([]float64, n), make([]float64, n)
	e.Render(left, right)
}

func (e *Engine) renderQuantum(left, right []float64) {
	n := len(left)
	dt := float64(n) / float64(e.cfg.SampleRate)
	e.graph.begin(n)
	for _, v := range e.voices {
		v.render(n, dt, e.graph)
	}
	e.graph.mix(left, right)
	e.frames += int64(n)
	e.transport.Update(e.now())
	e.sweep()
}

// sweep drops finished voices and fires their completion callbacks.
func (e *Engine) sweep() {
	kept := e.voices[:0]
	for _, v := range e.voices {
		if v.finished() {
			v.disconnect()
			v.fireEnded()
			continue
		}
		kept = append(kept, v)
	}
	clear(e.voices[len(kept):])
	e.voices = kept
}

// Read implements io.Reader with 16-bit little-endian interleaved stereo.
func (e *Engine) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if cap(e.readL) < frames {
		e.readL = make([]float64, frames)
		e.readR = make([]float64, frames)
	}
	left, right := e.readL[:frames], e.readR[:frames]
	e.Render(left, right)
	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint16(p[4*i:], uint16(toPCM16(left[i])))
		binary.LittleEndian.PutUint16(p[4*i+2:], uint16(toPCM16(right[i])))
	}
	return frames * 4, nil
}

func toPCM16(v float64) int16 {
	v = min(max(v, -1), 1)
	return int16(math.Round(v * 32767))
}

// PlayFlap plays the wing flap with a little pitch jitter.
func (e *Engine) PlayFlap(opts PlayOptions) *Voice {
	opts.PitchVariation = 0.1
	return e.PlaySound(synth.Flap, opts)
}

// PlayCoin plays the coin pickup. Callers may pass their own pitch
// variation; otherwise a small one is applied.
func (e *Engine) PlayCoin(opts PlayOptions) *Voice {
	if opts.PitchVariation == 0 {
		opts.PitchVariation = 0.05
	}
	return e.PlaySound(synth.Coin, opts)
}

func (e *Engine) PlayPowerUp(opts PlayOptions) *Voice {
	return e.PlaySound(synth.PowerUp, opts)
}

func (e *Engine) PlayCollision(opts PlayOptions) *Voice {
	return e.PlaySound(synth.Collision, opts)
}

func (e *Engine) PlayUIClick() *Voice {
	return e.PlaySound(synth.UIClick, PlayOptions{Category: CategoryUI})
}

func (e *Engine) PlayUIHover() *Voice {
	return e.PlaySound(synth.UIHover, PlayOptions{Category: CategoryUI})
}

func (e *Engine) PlayAchievement() *Voice {
	return e.PlaySound(synth.Achievement, PlayOptions{Volume: 0.8})
}
