package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/sound"
	"github.com/quasilyte/gdata"
)

// Storage keys for progress kept between sessions
const (
	HighScoreKey  = "butterfly-flight-high-score"
	TotalCoinsKey = "butterfly-flight-coins"
	ThemeKey      = "butterfly-flight-theme"

	SkinKey        = "butterfly-flight-skin"
	OwnedSkinsKey  = "butterfly-flight-owned-skins"
	OwnedThemesKey = "butterfly-flight-owned-themes"
)

// Progress is what survives between flights
type Progress struct {
	HighScore  int
	TotalCoins int
	Theme      string
}

// PurchaseResult is the outcome of a shop purchase
type PurchaseResult int

const (
	PurchaseOK PurchaseResult = iota
	PurchaseOwned
	PurchaseTooExpensive
)

var gdataManager *gdata.Manager

// progressStore is the gdata manager once persistence is up. Tests swap in
// an in-memory store.
var progressStore sound.SettingsStore

// InitPersistence initializes the gdata manager for settings and progress
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "butterfly_flight",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	progressStore = m
	return nil
}

// SettingsStore returns the store the audio engine persists its settings
// in, or nil when persistence is unavailable.
func SettingsStore() sound.SettingsStore {
	if gdataManager == nil {
		return nil
	}
	return gdataManager
}

// LoadProgress reads high score, coin total and theme. Missing or unreadable
// values come back as zero.
func LoadProgress() Progress {
	var p Progress
	loadItem(HighScoreKey, &p.HighScore)
	loadItem(TotalCoinsKey, &p.TotalCoins)
	loadItem(ThemeKey, &p.Theme)
	return p
}

// SaveRunResult adds a flight's coins to the total and records a new high
// score. It reports whether score beat the previous best.
func SaveRunResult(score, coins int) bool {
	p := LoadProgress()
	newHigh := score > p.HighScore
	if newHigh {
		saveItem(HighScoreKey, score)
	}
	if coins > 0 {
		saveItem(TotalCoinsKey, p.TotalCoins+coins)
	}
	return newHigh
}

// SaveTheme remembers the selected theme
func SaveTheme(id string) {
	saveItem(ThemeKey, id)
}

// LoadInventory reads unlocked items and the selected skin. A saved skin
// that is unknown or not owned falls back to the default.
func LoadInventory() components.Inventory {
	var inv components.Inventory
	loadItem(SkinKey, &inv.Skin)
	loadItem(OwnedSkinsKey, &inv.OwnedSkins)
	loadItem(OwnedThemesKey, &inv.OwnedThemes)
	if skin := cfg.SkinByID(inv.Skin); skin.ID != inv.Skin || !inv.OwnsSkin(skin.ID) {
		inv.Skin = cfg.Shop.DefaultSkin
	}
	return inv
}

// SaveSkin remembers the selected skin
func SaveSkin(id string) {
	saveItem(SkinKey, id)
}

// Purchase spends price coins from the saved total to unlock an item.
// Nothing changes when the item is already owned or the player is short.
func Purchase(kind components.ShopItemKind, id string, price int) PurchaseResult {
	inv := LoadInventory()
	if inv.Owns(kind, id) {
		return PurchaseOwned
	}
	p := LoadProgress()
	if p.TotalCoins < price {
		return PurchaseTooExpensive
	}

	saveItem(TotalCoinsKey, p.TotalCoins-price)
	if kind == components.ShopTheme {
		saveItem(OwnedThemesKey, append(inv.OwnedThemes, id))
	} else {
		saveItem(OwnedSkinsKey, append(inv.OwnedSkins, id))
	}
	return PurchaseOK
}

func loadItem(key string, v any) {
	if progressStore == nil {
		return
	}
	data, err := progressStore.LoadItem(key)
	if err != nil {
		log.Printf("Warning: Could not load %s: %v", key, err)
		return
	}
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Warning: Could not parse %s: %v", key, err)
	}
}

func saveItem(key string, v any) {
	if progressStore == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Warning: Could not serialize %s: %v", key, err)
		return
	}
	if err := progressStore.SaveItem(key, data); err != nil {
		log.Printf("Warning: Could not save %s: %v", key, err)
	}
}
