package sound

import (
	"testing"

	"github.com/automoto/butterfly-flight/synth"
)

func loadTracks(t *testing.T, e *Engine) {
	t.Helper()
	for _, id := range []string{synth.PastelClouds, synth.NeonCyberpunk, synth.EgyptianDusk} {
		if e.LoadMusic(id, MusicOptions{Duration: 1}) == nil {
			t.Fatalf("LoadMusic(%s) returned nil", id)
		}
	}
}

func renderQuanta(e *Engine, n int, each func()) {
	l, r := make([]float64, quantum), make([]float64, quantum)
	for i := 0; i < n; i++ {
		e.Render(l, r)
		if each != nil {
			each()
		}
	}
}

func TestMusicFadesSequentially(t *testing.T) {
	e, _ := newTestEngine(t)
	loadTracks(t, e)

	a := e.PlayMusic(synth.PastelClouds, MusicPlayOptions{FadeIn: 0.1})
	if e.MusicState() != TransportFadingIn {
		t.Fatalf("state = %v, want fading-in", e.MusicState())
	}
	e.Advance(0.2)
	if e.MusicState() != TransportPlaying {
		t.Fatalf("state = %v, want playing", e.MusicState())
	}
	if a.Gain() != 0.5 {
		t.Errorf("gain after fade-in = %v, want 0.5", a.Gain())
	}

	b := e.PlayMusic(synth.NeonCyberpunk, MusicPlayOptions{FadeIn: 0.2, FadeOut: 0.3})
	if e.MusicState() != TransportFadingOut {
		t.Fatalf("state = %v, want fading-out", e.MusicState())
	}
	if b.State() != VoiceIdle {
		t.Fatalf("incoming voice state = %v, want idle", b.State())
	}

	last := a.Gain()
	renderQuanta(e, 300, func() {
		if a.State() == VoicePlaying && b.State() == VoicePlaying {
			t.Fatal("both tracks audible at once")
		}
		if a.State() == VoicePlaying {
			if g := a.Gain(); g > last {
				t.Fatalf("outgoing gain rose from %v to %v", last, g)
			}
			last = a.Gain()
		}
	})

	if a.State() != VoiceStopped {
		t.Errorf("old track state = %v, want stopped", a.State())
	}
	cur := e.CurrentMusic()
	if cur == nil || cur.Voice != b || cur.Asset.ID != synth.NeonCyberpunk {
		t.Fatalf("current = %+v, want the new track", cur)
	}
	if e.MusicState() != TransportPlaying {
		t.Errorf("state = %v, want playing", e.MusicState())
	}
	if b.Gain() != 0.5 {
		t.Errorf("new track gain = %v, want 0.5", b.Gain())
	}
}

func TestBackToBackPlayNeverOverlaps(t *testing.T) {
	e, _ := newTestEngine(t)
	loadTracks(t, e)

	a := e.PlayMusic(synth.PastelClouds, MusicPlayOptions{FadeIn: 0.1})
	b := e.PlayMusic(synth.NeonCyberpunk, MusicPlayOptions{FadeIn: 0.1, FadeOut: 0.1})
	if a == nil || b == nil {
		t.Fatal("PlayMusic returned nil")
	}
	if b.State() != VoiceIdle {
		t.Fatalf("second track state = %v before the first faded, want idle", b.State())
	}

	sawB := false
	renderQuanta(e, 200, func() {
		if a.State() == VoicePlaying && b.State() == VoicePlaying {
			t.Fatal("both tracks audible at once")
		}
		if b.State() == VoicePlaying {
			sawB = true
		}
	})

	if !sawB {
		t.Fatal("second track never started")
	}
	if a.State() != VoiceStopped {
		t.Errorf("first track state = %v, want stopped", a.State())
	}
	if cur := e.CurrentMusic(); cur == nil || cur.Voice != b {
		t.Fatalf("current = %+v, want the second track", cur)
	}
	if e.MusicState() != TransportPlaying {
		t.Errorf("state = %v, want playing", e.MusicState())
	}
}

func TestPlayDuringFadeOutReplacesPending(t *testing.T) {
	e, _ := newTestEngine(t)
	loadTracks(t, e)

	e.PlayMusic(synth.PastelClouds, MusicPlayOptions{FadeIn: 0.05})
	e.Advance(0.1)
	b := e.PlayMusic(synth.NeonCyberpunk, MusicPlayOptions{FadeOut: 0.2})
	c := e.PlayMusic(synth.EgyptianDusk, MusicPlayOptions{FadeIn: 0.05})

	if b.State() != VoiceStopped {
		t.Errorf("replaced pending voice state = %v, want stopped", b.State())
	}
	e.Advance(0.5)
	if cur := e.CurrentMusic(); cur == nil || cur.Voice != c {
		t.Fatal("the last requested track should be current")
	}
}

func TestStopDuringFadeOutIsIgnored(t *testing.T) {
	e, _ := newTestEngine(t)
	loadTracks(t, e)

	a := e.PlayMusic(synth.PastelClouds, MusicPlayOptions{FadeIn: 0.05})
	e.Advance(0.1)
	e.StopMusic(0.5)
	e.Advance(0.1)
	e.StopMusic(0)

	if e.MusicState() != TransportFadingOut {
		t.Fatalf("state = %v, want fading-out", e.MusicState())
	}
	if a.State() != VoicePlaying {
		t.Fatal("second stop cut the fade short")
	}
	e.Advance(0.5)
	if e.MusicState() != TransportIdle || e.CurrentMusic() != nil {
		t.Error("transport should be idle after the fade")
	}
	if a.State() != VoiceStopped {
		t.Errorf("voice state = %v, want stopped", a.State())
	}
}

func TestStopMusicImmediately(t *testing.T) {
	e, _ := newTestEngine(t)
	loadTracks(t, e)

	a := e.PlayMusic(synth.PastelClouds, MusicPlayOptions{})
	e.StopMusic(0)
	if a.State() != VoiceStopped || e.MusicState() != TransportIdle {
		t.Errorf("voice %v, transport %v", a.State(), e.MusicState())
	}
}

func TestPlayMusicEdgeCases(t *testing.T) {
	e, _ := newTestEngine(t)
	loadTracks(t, e)

	a := e.PlayMusic(synth.PastelClouds, MusicPlayOptions{FadeIn: 0.05})
	if again := e.PlayMusic(synth.PastelClouds, MusicPlayOptions{}); again != a {
		t.Error("replaying the current track should return its voice")
	}
	if v := e.PlayMusic("missing", MusicPlayOptions{}); v != nil {
		t.Error("unknown track should return nil")
	}
	if e.MusicState() != TransportFadingIn || e.CurrentMusic().Voice != a {
		t.Error("unknown track disturbed the current one")
	}

	e.ToggleMusic()
	if v := e.PlayMusic(synth.NeonCyberpunk, MusicPlayOptions{}); v != nil {
		t.Error("PlayMusic should return nil with music disabled")
	}
}

func TestStopMusicUsesAssetFadeOut(t *testing.T) {
	e, _ := newTestEngine(t)
	e.LoadMusic(synth.EgyptianDusk, MusicOptions{Duration: 1, FadeOut: 0.2})
	e.PlayMusic(synth.EgyptianDusk, MusicPlayOptions{FadeIn: 0.01})
	e.Advance(0.05)

	e.StopMusic(-1)
	e.Advance(0.1)
	if e.MusicState() != TransportFadingOut {
		t.Fatalf("state = %v, want fading-out", e.MusicState())
	}
	e.Advance(0.15)
	if e.MusicState() != TransportIdle {
		t.Errorf("state = %v, want idle", e.MusicState())
	}
}
