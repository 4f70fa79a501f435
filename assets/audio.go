package assets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/automoto/butterfly-flight/synth"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ErrUnsupportedFormat is returned for files without a known audio extension.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// AudioLoader reads audio files from a filesystem or over HTTP and decodes
// them into stereo sample buffers. Decoded buffers are cached per URL and
// sample rate.
type AudioLoader struct {
	fsys   fs.FS
	client *http.Client

	mu    sync.Mutex
	cache map[string]*synth.Buffer
}

// NewAudioLoader creates a loader that resolves relative paths against fsys.
func NewAudioLoader(fsys fs.FS) *AudioLoader {
	return &AudioLoader{
		fsys:   fsys,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  make(map[string]*synth.Buffer),
	}
}

// Load fetches and decodes url at the given sample rate.
func (l *AudioLoader) Load(url string, sampleRate int) (*synth.Buffer, error) {
	key := fmt.Sprintf("%s@%d", url, sampleRate)

	l.mu.Lock()
	if buf, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return buf, nil
	}
	l.mu.Unlock()

	data, err := l.read(url)
	if err != nil {
		return nil, err
	}

	buf, err := decode(url, data, sampleRate)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[key] = buf
	l.mu.Unlock()
	return buf, nil
}

func (l *AudioLoader) read(url string) ([]byte, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		resp, err := l.client.Get(url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch audio %s: %w", url, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch audio %s: %s", url, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}

	if l.fsys == nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", url, fs.ErrNotExist)
	}
	data, err := fs.ReadFile(l.fsys, strings.TrimPrefix(url, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", url, err)
	}
	return data, nil
}

// decode turns an encoded file into a two channel buffer. The ebiten decoders
// all produce 16-bit little-endian interleaved stereo.
func decode(name string, data []byte, sampleRate int) (*synth.Buffer, error) {
	var stream io.Reader
	var err error

	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio %s: %w", name, err)
	}

	frames := len(pcm) / 4
	buf := synth.NewBuffer(sampleRate, 2, frames)
	for i := 0; i < frames; i++ {
		l := int16(binary.LittleEndian.Uint16(pcm[i*4:]))
		r := int16(binary.LittleEndian.Uint16(pcm[i*4+2:]))
		buf.Channels[0][i] = float32(l) / 32768
		buf.Channels[1][i] = float32(r) / 32768
	}
	return buf, nil
}
