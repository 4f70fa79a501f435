package sound

import (
	"encoding/json"
	"fmt"
)

// SettingsKey is the storage key of the persisted settings blob.
const SettingsKey = "butterfly-flight-audio-settings"

// Settings are the user-facing mixer preferences.
type Settings struct {
	MasterVolume float64 `json:"masterVolume"`
	MusicVolume  float64 `json:"musicVolume"`
	SFXVolume    float64 `json:"sfxVolume"`
	MusicEnabled bool    `json:"musicEnabled"`
	SFXEnabled   bool    `json:"sfxEnabled"`
}

func DefaultSettings() Settings {
	return Settings{
		MasterVolume: 1.0,
		MusicVolume:  0.7,
		SFXVolume:    0.8,
		MusicEnabled: true,
		SFXEnabled:   true,
	}
}

// SettingsStore persists opaque blobs by key. *gdata.Manager satisfies it.
type SettingsStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// MergeSettings overlays the fields present in blob onto base. Fields absent
// from the blob keep their base values.
func MergeSettings(base Settings, blob []byte) (Settings, error) {
	if len(blob) == 0 {
		return base, nil
	}
	merged := base
	if err := json.Unmarshal(blob, &merged); err != nil {
		return base, fmt.Errorf("sound: decode settings: %w", err)
	}
	return merged, nil
}

// MemoryStore is an in-process SettingsStore.
type MemoryStore struct {
	items map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (m *MemoryStore) LoadItem(key string) ([]byte, error) {
	return m.items[key], nil
}

func (m *MemoryStore) SaveItem(key string, data []byte) error {
	m.items[key] = append([]byte(nil), data...)
	return nil
}
