package sound

// TransportState is the music transport's fade state.
type TransportState int

const (
	TransportIdle TransportState = iota
	TransportFadingIn
	TransportPlaying
	TransportFadingOut
)

func (s TransportState) String() string {
	switch s {
	case TransportIdle:
		return "idle"
	case TransportFadingIn:
		return "fading-in"
	case TransportPlaying:
		return "playing"
	case TransportFadingOut:
		return "fading-out"
	}
	return "unknown"
}

// CurrentMusic is the track the transport is playing.
type CurrentMusic struct {
	Voice     *Voice
	Asset     *MusicAsset
	StartedAt float64
}

type pendingTrack struct {
	voice  *Voice
	asset  *MusicAsset
	fadeIn float64
}

// Transport plays one music track at a time. A new track waits until the
// previous one has faded all the way out.
type Transport struct {
	state   TransportState
	current *CurrentMusic
	pending *pendingTrack

	bus            *Bus
	reverb         bool
	replaceFadeOut float64
	attach         func(*Voice)
}

// NewTransport creates an idle transport feeding bus. attach registers a
// started voice with the renderer.
func NewTransport(bus *Bus, reverb bool, replaceFadeOut float64, attach func(*Voice)) *Transport {
	return &Transport{
		bus:            bus,
		reverb:         reverb,
		replaceFadeOut: replaceFadeOut,
		attach:         attach,
	}
}

func (t *Transport) State() TransportState { return t.state }

// Current returns a copy of the current track, or nil.
func (t *Transport) Current() *CurrentMusic {
	if t.current == nil {
		return nil
	}
	c := *t.current
	return &c
}

// Play starts asset, or queues it behind a fade-out of the current track.
func (t *Transport) Play(asset *MusicAsset, opts MusicPlayOptions, now float64) *Voice {
	if t.state != TransportIdle && t.state != TransportFadingOut && t.current.Asset == asset {
		return t.current.Voice
	}

	v := newVoice(asset.ID, asset.Buffer, true, 1, 0, t.bus)
	v.send = t.reverb && !opts.NoReverb
	fadeIn := opts.FadeIn
	if fadeIn <= 0 {
		fadeIn = asset.FadeIn
	}

	if t.state == TransportIdle {
		t.start(v, asset, fadeIn, now)
		return v
	}

	if t.pending != nil {
		t.pending.voice.stop()
	}
	t.pending = &pendingTrack{voice: v, asset: asset, fadeIn: fadeIn}
	if t.state != TransportFadingOut {
		fadeOut := opts.FadeOut
		if fadeOut <= 0 {
			fadeOut = t.replaceFadeOut
		}
		t.fadeOut(fadeOut, now)
	}
	return v
}

// Stop fades the current track out. A stop that arrives during a fade-out
// only cancels any queued track.
func (t *Transport) Stop(fadeOut, now float64) {
	if t.pending != nil {
		t.pending.voice.stop()
		t.pending = nil
	}
	switch t.state {
	case TransportIdle, TransportFadingOut:
		return
	}
	t.fadeOut(fadeOut, now)
}

// Update advances state after a render quantum.
func (t *Transport) Update(now float64) {
	if t.current != nil && t.current.Voice.finished() && t.state != TransportFadingOut {
		t.current = nil
		t.state = TransportIdle
	}
	switch t.state {
	case TransportFadingIn:
		if t.current.Voice.gain.Done() {
			t.state = TransportPlaying
		}
	case TransportFadingOut:
		if t.current.Voice.gain.Done() {
			t.finishFadeOut(now)
		}
	}
}

// Reset drops everything immediately.
func (t *Transport) Reset() {
	if t.pending != nil {
		t.pending.voice.stop()
		t.pending = nil
	}
	if t.current != nil {
		t.current.Voice.stop()
		t.current.Voice.disconnect()
		t.current = nil
	}
	t.state = TransportIdle
}

func (t *Transport) start(v *Voice, asset *MusicAsset, fadeIn, now float64) {
	v.gain = NewRamp(0, asset.Volume, fadeIn, now)
	v.start()
	t.attach(v)
	t.current = &CurrentMusic{Voice: v, Asset: asset, StartedAt: now}
	t.state = TransportFadingIn
	if v.gain.Done() {
		t.state = TransportPlaying
	}
}

func (t *Transport) fadeOut(d, now float64) {
	v := t.current.Voice
	v.gain = NewRamp(v.gain.Value(), 0, d, now)
	t.state = TransportFadingOut
	if v.gain.Done() {
		t.finishFadeOut(now)
	}
}

func (t *Transport) finishFadeOut(now float64) {
	t.current.Voice.stop()
	t.current.Voice.disconnect()
	t.current = nil
	t.state = TransportIdle
	if p := t.pending; p != nil {
		t.pending = nil
		t.start(p.voice, p.asset, p.fadeIn, now)
	}
}
