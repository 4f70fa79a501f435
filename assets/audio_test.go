package assets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

// pcmWAV builds a 16-bit stereo PCM file from interleaved samples.
func pcmWAV(sampleRate int, samples []int16) []byte {
	var data bytes.Buffer
	for _, s := range samples {
		binary.Write(&data, binary.LittleEndian, s)
	}

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+data.Len()))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate*4))
	binary.Write(&b, binary.LittleEndian, uint16(4))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(data.Len()))
	b.Write(data.Bytes())
	return b.Bytes()
}

var testSamples = []int16{16384, -16384, 0, 8192, -32768, 32767, 100, -100}

func checkDecoded(t *testing.T, left, right []float32) {
	t.Helper()
	if len(left) != 4 || len(right) != 4 {
		t.Fatalf("decoded %d/%d frames, want 4", len(left), len(right))
	}
	for i := 0; i < 4; i++ {
		wantL := float64(testSamples[i*2]) / 32768
		wantR := float64(testSamples[i*2+1]) / 32768
		if math.Abs(float64(left[i])-wantL) > 1e-6 || math.Abs(float64(right[i])-wantR) > 1e-6 {
			t.Errorf("frame %d = %v/%v, want %v/%v", i, left[i], right[i], wantL, wantR)
		}
	}
}

func TestLoadWAVFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"sfx/flap.wav": {Data: pcmWAV(44100, testSamples)},
	}
	l := NewAudioLoader(fsys)

	buf, err := l.Load("sfx/flap.wav", 44100)
	if err != nil {
		t.Fatal(err)
	}
	if buf.SampleRate != 44100 || buf.ChannelCount() != 2 {
		t.Fatalf("buffer %d Hz x %d channels", buf.SampleRate, buf.ChannelCount())
	}
	checkDecoded(t, buf.Channels[0], buf.Channels[1])

	again, err := l.Load("/sfx/flap.wav", 44100)
	if err != nil {
		t.Fatal(err)
	}
	if again.Frames() != 4 {
		t.Errorf("leading slash load got %d frames", again.Frames())
	}
	if cached, _ := l.Load("sfx/flap.wav", 44100); cached != buf {
		t.Error("second load should come from the cache")
	}
}

func TestLoadWAVOverHTTP(t *testing.T) {
	wavData := pcmWAV(44100, testSamples)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/music/pastel-clouds.wav" {
			http.NotFound(w, r)
			return
		}
		w.Write(wavData)
	}))
	defer srv.Close()

	l := NewAudioLoader(nil)
	buf, err := l.Load(srv.URL+"/music/pastel-clouds.wav", 44100)
	if err != nil {
		t.Fatal(err)
	}
	checkDecoded(t, buf.Channels[0], buf.Channels[1])

	if _, err := l.Load(srv.URL+"/music/missing.wav", 44100); err == nil {
		t.Error("expected an error for a 404")
	}
}

func TestLoadErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"notes.txt":  {Data: []byte("hello")},
		"broken.wav": {Data: []byte("not a riff file")},
	}
	l := NewAudioLoader(fsys)

	tests := []struct {
		name string
		url  string
		want error
	}{
		{"missing file", "music/pastel-clouds.mp3", fs.ErrNotExist},
		{"unsupported extension", "notes.txt", ErrUnsupportedFormat},
		{"corrupt data", "broken.wav", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := l.Load(tt.url, 44100)
			if err == nil || buf != nil {
				t.Fatalf("Load(%q) = %v, %v; want an error", tt.url, buf, err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
