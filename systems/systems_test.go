package systems

import (
	"math"
	"testing"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/sound"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/automoto/butterfly-flight/systems/factory"
	"github.com/automoto/butterfly-flight/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

// useMemoryStore points progress persistence at a fresh in-memory store for
// the duration of the test.
func useMemoryStore(t *testing.T) {
	t.Helper()
	prev := progressStore
	progressStore = sound.NewMemoryStore()
	t.Cleanup(func() { progressStore = prev })
}

// newFlight builds a world with a space, camera, ground, butterfly and a run
// already in the playing state.
func newFlight(t *testing.T) (*ecs.ECS, *components.RunData) {
	t.Helper()
	useMemoryStore(t)

	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateFlightSpace(e)
	factory.CreateCamera(e)
	factory.CreateGround(e)
	factory.CreateRun(e, cfg.Themes.Default, cfg.Shop.DefaultSkin)
	factory.CreateButterfly(e, cfg.Player.StartX, cfg.Player.StartY)

	run := GetRun(e)
	run.State = cfg.RunPlaying
	return e, run
}

func queued(e *ecs.ECS) []string {
	var ids []string
	for _, req := range GetOrCreateAudio(e).PendingSFX {
		ids = append(ids, req.ID)
	}
	return ids
}

func hasSFX(e *ecs.ECS, id string) bool {
	for _, q := range queued(e) {
		if q == id {
			return true
		}
	}
	return false
}

func TestAdjustVolumeStep(t *testing.T) {
	tests := []struct {
		current   float64
		direction int
		want      float64
	}{
		{0.5, 1, 0.6},
		{0.5, -1, 0.4},
		{0.0, -1, 0.0},
		{1.0, 1, 1.0},
		{0.43, 1, 0.5},
		{0.47, -1, 0.4},
	}
	for _, tt := range tests {
		got := adjustVolumeStep(tt.current, tt.direction)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("adjustVolumeStep(%v, %d) = %v, want %v", tt.current, tt.direction, got, tt.want)
		}
	}
}

func TestFindClosestStepIndex(t *testing.T) {
	steps := []float64{0, 0.25, 0.5, 0.75, 1}
	tests := []struct {
		value float64
		want  int
	}{
		{0, 0},
		{0.1, 0},
		{0.2, 1},
		{0.74, 3},
		{2, 4},
	}
	for _, tt := range tests {
		if got := findClosestStepIndex(tt.value, steps); got != tt.want {
			t.Errorf("findClosestStepIndex(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestFormatSettings(t *testing.T) {
	if got := formatVolumeBar(0.5); got != "[|||||.....] 50%" {
		t.Errorf("formatVolumeBar(0.5) = %q", got)
	}
	if got := formatVolumeBar(0); got != "[..........] 0%" {
		t.Errorf("formatVolumeBar(0) = %q", got)
	}
	if got := formatToggle(true); got != "[X] On" {
		t.Errorf("formatToggle(true) = %q", got)
	}
	if got := formatToggle(false); got != "[ ] Off" {
		t.Errorf("formatToggle(false) = %q", got)
	}
}

func TestCoinValue(t *testing.T) {
	tests := []struct {
		base, streak, multiplier int
		want                     int
	}{
		{1, 1, 1, 2},
		{1, 5, 1, 2},
		{1, 5, 2, 3},
		{1, 20, 1, 2},
		{1, 20, 2, 4},
		{3, 0, 1, 3},
	}
	for _, tt := range tests {
		if got := coinValue(tt.base, tt.streak, tt.multiplier); got != tt.want {
			t.Errorf("coinValue(%d, %d, %d) = %d, want %d", tt.base, tt.streak, tt.multiplier, got, tt.want)
		}
	}
}

func TestStreakPitchRises(t *testing.T) {
	prev := streakPitch(1)
	if math.Abs(prev-0.12) > 1e-9 {
		t.Errorf("streakPitch(1) = %v, want 0.12", prev)
	}
	for n := 2; n <= 10; n++ {
		p := streakPitch(n)
		if p <= prev {
			t.Fatalf("streakPitch(%d) = %v, not above %v", n, p, prev)
		}
		prev = p
	}

	for _, n := range []int{30, 50, 1000} {
		if p := streakPitch(n); p != cfg.CoinStreak.PitchMax {
			t.Errorf("streakPitch(%d) = %v, want cap %v", n, p, cfg.CoinStreak.PitchMax)
		}
	}
}

func TestRandomGapYBounds(t *testing.T) {
	half := cfg.Obstacles.PipeGap / 2
	groundY := float64(cfg.C.Height) - cfg.Obstacles.GroundHeight
	for _, r := range []float64{0, 0.25, 0.5, 0.999} {
		y := randomGapY(r)
		if y-half < cfg.Obstacles.TopMargin {
			t.Errorf("randomGapY(%v) = %v leaves the top pipe too short", r, y)
		}
		if y+half > groundY-cfg.Obstacles.TopMargin {
			t.Errorf("randomGapY(%v) = %v leaves the bottom pipe too short", r, y)
		}
	}
}

func TestProgressRoundTrip(t *testing.T) {
	useMemoryStore(t)

	if p := LoadProgress(); p != (Progress{}) {
		t.Fatalf("empty store loaded %+v", p)
	}
	if !SaveRunResult(5, 3) {
		t.Error("first score should be a new high")
	}
	if SaveRunResult(4, 2) {
		t.Error("lower score reported as a new high")
	}
	SaveTheme(synth.NeonCyberpunk)

	p := LoadProgress()
	want := Progress{HighScore: 5, TotalCoins: 5, Theme: synth.NeonCyberpunk}
	if p != want {
		t.Errorf("LoadProgress() = %+v, want %+v", p, want)
	}
}

func TestProgressWithoutStore(t *testing.T) {
	prev := progressStore
	progressStore = nil
	t.Cleanup(func() { progressStore = prev })

	if !SaveRunResult(10, 1) {
		t.Error("without a store every positive score is a new high")
	}
	if p := LoadProgress(); p != (Progress{}) {
		t.Errorf("LoadProgress() = %+v without a store", p)
	}
}

func TestSwitchThemeDuringFlight(t *testing.T) {
	useMemoryStore(t)
	e := ecs.NewECS(donburi.NewWorld())

	from := cfg.Themes.Default
	next := cfg.NextTheme(from)
	got := SwitchTheme(e, from, next.ID, true)
	if got != next.ID {
		t.Fatalf("SwitchTheme returned %q, want %q", got, next.ID)
	}

	audio := GetOrCreateAudio(e)
	if audio.PendingMusic != next.Music {
		t.Errorf("pending music = %q, want %q", audio.PendingMusic, next.Music)
	}
	if audio.MusicDelay != cfg.Audio.ThemeMusicDelay {
		t.Errorf("music delay = %v, want %v", audio.MusicDelay, cfg.Audio.ThemeMusicDelay)
	}
	if !hasSFX(e, synth.ThemeChange) {
		t.Errorf("queued %v, want the theme-change cue", queued(e))
	}
	if p := LoadProgress(); p.Theme != next.ID {
		t.Errorf("saved theme = %q, want %q", p.Theme, next.ID)
	}
}

func TestSwitchThemeSameThemeIsNoop(t *testing.T) {
	useMemoryStore(t)
	e := ecs.NewECS(donburi.NewWorld())

	from := cfg.Themes.Default
	if got := SwitchTheme(e, from, from, true); got != from {
		t.Errorf("SwitchTheme returned %q", got)
	}
	if len(queued(e)) != 0 {
		t.Errorf("queued %v for a no-op switch", queued(e))
	}
}

func TestSwitchThemeOutsideFlightHasNoPendingMusic(t *testing.T) {
	useMemoryStore(t)
	e := ecs.NewECS(donburi.NewWorld())

	SwitchTheme(e, cfg.Themes.Default, cfg.NextTheme(cfg.Themes.Default).ID, false)
	if audio := GetOrCreateAudio(e); audio.PendingMusic != "" {
		t.Errorf("pending music = %q outside a flight", audio.PendingMusic)
	}
}

func TestUpdateAudioWithoutEngineDrainsQueue(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	PlaySFX(e, synth.Flap)
	PlaySFX(e, synth.Coin)

	UpdateAudio(e)
	if n := len(GetOrCreateAudio(e).PendingSFX); n != 0 {
		t.Errorf("%d requests left after UpdateAudio", n)
	}
}

func TestCoinPickup(t *testing.T) {
	e, run := newFlight(t)
	coin := factory.CreateCoin(e, cfg.Player.StartX, cfg.Player.StartY)

	CheckCollisions(e)

	if run.State != cfg.RunPlaying {
		t.Fatalf("run state = %v after a coin", run.State)
	}
	if run.Coins != 2 || run.Streak != 1 {
		t.Errorf("coins = %d streak = %d, want 2 and 1", run.Coins, run.Streak)
	}
	if coin.Valid() {
		t.Error("collected coin still exists")
	}

	var found bool
	for _, req := range GetOrCreateAudio(e).PendingSFX {
		if req.ID != synth.Coin {
			continue
		}
		found = true
		if math.Abs(req.Options.PitchVariation-0.12) > 1e-9 {
			t.Errorf("coin pitch variation = %v, want 0.12", req.Options.PitchVariation)
		}
		if req.Options.Position == nil || req.Options.Listener == nil {
			t.Error("coin sound is not positioned")
		}
	}
	if !found {
		t.Errorf("queued %v, want a coin sound", queued(e))
	}

	texts := donburi.NewQuery(filter.Contains(components.FloatingText)).Count(e.World)
	if texts != 1 {
		t.Errorf("%d floating texts, want 1", texts)
	}
}

func TestCoinStreak(t *testing.T) {
	e, run := newFlight(t)

	factory.CreateCoin(e, cfg.Player.StartX, cfg.Player.StartY)
	CheckCollisions(e)
	run.Elapsed += cfg.CoinStreak.Window / 2
	factory.CreateCoin(e, cfg.Player.StartX, cfg.Player.StartY)
	CheckCollisions(e)

	if run.Streak != 2 {
		t.Errorf("streak = %d, want 2", run.Streak)
	}

	run.Elapsed += cfg.CoinStreak.Window * 2
	factory.CreateCoin(e, cfg.Player.StartX, cfg.Player.StartY)
	CheckCollisions(e)
	if run.Streak != 1 {
		t.Errorf("streak = %d after the window lapsed, want 1", run.Streak)
	}
}

func groundButterfly(t *testing.T, e *ecs.ECS) (*components.ButterflyData, *donburi.Entry) {
	t.Helper()
	entry, ok := tags.Butterfly.First(e.World)
	if !ok {
		t.Fatal("no butterfly")
	}
	obj := components.Object.Get(entry).Object
	obj.Y = float64(cfg.C.Height) - cfg.Obstacles.GroundHeight - obj.H/2
	return components.Butterfly.Get(entry), entry
}

func TestShieldAbsorbsHit(t *testing.T) {
	e, run := newFlight(t)
	butterfly, _ := groundButterfly(t, e)
	butterfly.Shield = 1

	CheckCollisions(e)
	if run.State != cfg.RunPlaying {
		t.Fatalf("run ended through a shield")
	}
	if butterfly.Shield != 0 {
		t.Errorf("shield = %d, want it spent", butterfly.Shield)
	}
	if butterfly.Grace <= 0 {
		t.Error("no grace period after the shield broke")
	}
	if !hasSFX(e, synth.PowerUp) {
		t.Errorf("queued %v, want the shield break sound", queued(e))
	}

	// Still touching the ground inside the grace period.
	CheckCollisions(e)
	if run.State != cfg.RunPlaying {
		t.Error("run ended during shield grace")
	}
}

func TestCrashEndsRun(t *testing.T) {
	e, run := newFlight(t)
	run.Score = 3
	run.Coins = 4
	groundButterfly(t, e)

	CheckCollisions(e)

	if run.State != cfg.RunOver {
		t.Fatalf("run state = %v, want over", run.State)
	}
	if !hasSFX(e, synth.Collision) || !hasSFX(e, synth.Achievement) {
		t.Errorf("queued %v, want collision and achievement", queued(e))
	}

	over := GetOrCreateGameOver(e)
	if !over.NewHighScore {
		t.Error("first score not flagged as a new high")
	}
	if over.InputDelay != cfg.GameOver.InputDelay {
		t.Errorf("input delay = %v", over.InputDelay)
	}

	p := LoadProgress()
	if p.HighScore != 3 || p.TotalCoins != 4 {
		t.Errorf("progress = %+v", p)
	}

	camera, _ := components.Camera.First(e.World)
	if !camera.HasComponent(components.ScreenShake) {
		t.Error("crash did not shake the screen")
	}

	// A second end is ignored.
	n := len(queued(e))
	EndRun(e, run)
	if len(queued(e)) != n {
		t.Error("EndRun queued sounds twice")
	}
}

func TestPowerUpActivation(t *testing.T) {
	tests := []struct {
		kind  cfg.PowerUpKind
		check func(*components.RunData, *components.ButterflyData) bool
	}{
		{cfg.PowerUpShield, func(r *components.RunData, b *components.ButterflyData) bool { return b.Shield == 1 }},
		{cfg.PowerUpSlowTime, func(r *components.RunData, b *components.ButterflyData) bool {
			return r.SlowTime == cfg.PowerUps.SlowTime && speedFactor(r) == cfg.Obstacles.SlowTimeFactor
		}},
		{cfg.PowerUpDoubleScore, func(r *components.RunData, b *components.ButterflyData) bool {
			return r.DoubleScore == cfg.PowerUps.DoubleScore && scoreMultiplier(r) == 2
		}},
		{cfg.PowerUpMagnet, func(r *components.RunData, b *components.ButterflyData) bool { return r.Magnet == cfg.PowerUps.Magnet }},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e, run := newFlight(t)
			p := factory.CreatePowerUp(e, cfg.Player.StartX, cfg.Player.StartY, tt.kind, 0)

			CheckCollisions(e)

			entry, _ := tags.Butterfly.First(e.World)
			if !tt.check(run, components.Butterfly.Get(entry)) {
				t.Errorf("%v did not activate", tt.kind)
			}
			if run.PowerUps != 1 {
				t.Errorf("power-ups = %d", run.PowerUps)
			}
			if p.Valid() {
				t.Error("power-up still exists")
			}
		})
	}
}

func TestScreenShake(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateCamera(e)

	TriggerScreenShake(e, 5, 4)
	TriggerScreenShake(e, 2, 30)

	camera, _ := components.Camera.First(e.World)
	shake := components.ScreenShake.Get(camera)
	if shake.Intensity != 5 || shake.Duration != 4 {
		t.Fatalf("weaker shake overrode: %+v", *shake)
	}

	for i := 0; i < 4; i++ {
		UpdateCamera(e)
	}
	if camera.HasComponent(components.ScreenShake) {
		t.Error("shake outlived its duration")
	}
	UpdateCamera(e)
	if x, y := cameraOffset(e); x != 0 || y != 0 {
		t.Errorf("offset = %v,%v after the shake ended", x, y)
	}
}

func TestParticlesCapped(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	factory.SpawnParticles(e, 0, 0, cfg.ParticleCollision, cfg.Particles.MaxParticles*2)

	n := donburi.NewQuery(filter.Contains(components.Particle)).Count(e.World)
	if n != cfg.Particles.MaxParticles {
		t.Errorf("%d particles, want %d", n, cfg.Particles.MaxParticles)
	}
}

func TestInventoryDefaults(t *testing.T) {
	useMemoryStore(t)

	inv := LoadInventory()
	if inv.Skin != cfg.Shop.DefaultSkin {
		t.Errorf("default skin = %q, want %q", inv.Skin, cfg.Shop.DefaultSkin)
	}
	if !inv.OwnsSkin(cfg.Shop.DefaultSkin) || !inv.OwnsTheme(cfg.Themes.Default) {
		t.Error("free skin and theme should be owned from the start")
	}
	if inv.OwnsSkin("monarch") || inv.OwnsTheme(synth.NeonCyberpunk) {
		t.Error("priced items should start locked")
	}

	// A saved skin that was never bought is ignored.
	SaveSkin("ice")
	if got := LoadInventory().Skin; got != cfg.Shop.DefaultSkin {
		t.Errorf("locked saved skin loaded as %q", got)
	}
}

func TestPurchaseSpendsCoinsAndPersists(t *testing.T) {
	useMemoryStore(t)
	SaveRunResult(0, 150)

	if got := Purchase(components.ShopSkin, "rainbow", 250); got != PurchaseTooExpensive {
		t.Fatalf("Purchase(rainbow) = %v, want PurchaseTooExpensive", got)
	}
	if coins := LoadProgress().TotalCoins; coins != 150 {
		t.Fatalf("failed purchase spent coins: %d left", coins)
	}

	if got := Purchase(components.ShopSkin, "monarch", 100); got != PurchaseOK {
		t.Fatalf("Purchase(monarch) = %v, want PurchaseOK", got)
	}
	if coins := LoadProgress().TotalCoins; coins != 50 {
		t.Errorf("coins after purchase = %d, want 50", coins)
	}
	if got := Purchase(components.ShopSkin, "monarch", 100); got != PurchaseOwned {
		t.Errorf("second Purchase(monarch) = %v, want PurchaseOwned", got)
	}
	if coins := LoadProgress().TotalCoins; coins != 50 {
		t.Errorf("buying an owned skin spent coins: %d left", coins)
	}

	SaveRunResult(0, 300)
	if got := Purchase(components.ShopTheme, synth.EgyptianDusk, 300); got != PurchaseOK {
		t.Fatalf("Purchase(egyptian dusk) = %v, want PurchaseOK", got)
	}
	SaveSkin("monarch")

	inv := LoadInventory()
	if !inv.OwnsSkin("monarch") || !inv.OwnsTheme(synth.EgyptianDusk) {
		t.Errorf("unlocks not persisted: %+v", inv)
	}
	if inv.OwnsTheme(synth.NeonCyberpunk) {
		t.Error("unbought theme reported as owned")
	}
	if inv.Skin != "monarch" {
		t.Errorf("selected skin = %q, want monarch", inv.Skin)
	}
	if coins := LoadProgress().TotalCoins; coins != 50 {
		t.Errorf("coins after theme purchase = %d, want 50", coins)
	}
}

func TestNextOwnedThemeSkipsLocked(t *testing.T) {
	useMemoryStore(t)

	if got := nextOwnedTheme(cfg.Themes.Default); got.ID != cfg.Themes.Default {
		t.Errorf("with one theme owned, next = %q", got.ID)
	}

	SaveRunResult(0, 300)
	Purchase(components.ShopTheme, synth.EgyptianDusk, 300)

	if got := nextOwnedTheme(cfg.Themes.Default); got.ID != synth.EgyptianDusk {
		t.Errorf("next after default = %q, want %q", got.ID, synth.EgyptianDusk)
	}
	if got := nextOwnedTheme(synth.EgyptianDusk); got.ID != cfg.Themes.Default {
		t.Errorf("next after egyptian dusk = %q, want wrap to %q", got.ID, cfg.Themes.Default)
	}
}

func TestFlightThemeCycleStaysOnOwnedThemes(t *testing.T) {
	e, run := newFlight(t)
	input := getOrCreateInput(e)
	press := func() {
		input.Previous[cfg.ActionTheme] = false
		input.Current[cfg.ActionTheme] = true
		UpdateTheme(e)
	}

	press()
	if run.Theme != cfg.Themes.Default || hasSFX(e, synth.ThemeChange) {
		t.Fatalf("theme cycled to %q with nothing else unlocked", run.Theme)
	}

	SaveRunResult(0, 400)
	Purchase(components.ShopTheme, synth.WatercolorForest, 400)

	press()
	if run.Theme != synth.WatercolorForest {
		t.Errorf("theme = %q, want locked themes skipped to %q", run.Theme, synth.WatercolorForest)
	}
	press()
	if run.Theme != cfg.Themes.Default {
		t.Errorf("theme = %q, want wrap to %q", run.Theme, cfg.Themes.Default)
	}
}

func newShopWorld(t *testing.T, coins int) (*ecs.ECS, *components.ShopData) {
	t.Helper()
	useMemoryStore(t)
	SaveRunResult(0, coins)

	e := ecs.NewECS(donburi.NewWorld())
	OpenShop(e)
	return e, GetOrCreateShop(e)
}

func findShopItem(t *testing.T, kind components.ShopItemKind, id string) shopItem {
	t.Helper()
	for _, item := range shopItems() {
		if item.kind == kind && item.id == id {
			return item
		}
	}
	t.Fatalf("no shop item %q", id)
	return shopItem{}
}

func TestShopBuySkin(t *testing.T) {
	e, shop := newShopWorld(t, 120)

	activateShopItem(e, shop, findShopItem(t, components.ShopSkin, "monarch"))

	if !hasSFX(e, synth.UIClick) || !hasSFX(e, synth.Achievement) {
		t.Errorf("purchase cues = %v, want ui click and achievement", queued(e))
	}
	if menu := GetOrCreateMenu(e); menu.TotalCoins != 20 {
		t.Errorf("menu coins = %d, want 20", menu.TotalCoins)
	}
	if !shop.Inventory.OwnsSkin("monarch") || shop.Inventory.Skin != "monarch" {
		t.Errorf("shop inventory = %+v, want monarch owned and equipped", shop.Inventory)
	}
	if got := LoadInventory().Skin; got != "monarch" {
		t.Errorf("saved skin = %q, want monarch", got)
	}
	if shop.Message == "" || shop.MessageTimer <= 0 {
		t.Error("purchase should show a message")
	}
}

func TestShopRefusesWhenShort(t *testing.T) {
	e, shop := newShopWorld(t, 50)

	activateShopItem(e, shop, findShopItem(t, components.ShopSkin, "ice"))

	if hasSFX(e, synth.Achievement) {
		t.Error("achievement cue played for a refused purchase")
	}
	if LoadInventory().OwnsSkin("ice") {
		t.Error("ice unlocked without enough coins")
	}
	if coins := LoadProgress().TotalCoins; coins != 50 {
		t.Errorf("coins = %d after refused purchase, want 50", coins)
	}
	if shop.Message != "Need 950 more coins" {
		t.Errorf("message = %q", shop.Message)
	}
}

func TestShopBuyThemeSwitchesMenu(t *testing.T) {
	e, shop := newShopWorld(t, 200)

	activateShopItem(e, shop, findShopItem(t, components.ShopTheme, synth.NeonCyberpunk))

	menu := GetOrCreateMenu(e)
	if menu.Theme != synth.NeonCyberpunk {
		t.Errorf("menu theme = %q, want %q", menu.Theme, synth.NeonCyberpunk)
	}
	if p := LoadProgress(); p.Theme != synth.NeonCyberpunk || p.TotalCoins != 0 {
		t.Errorf("progress = %+v, want neon theme and no coins", p)
	}
	if audio := GetOrCreateAudio(e); audio.PendingMusic != synth.NeonCyberpunk {
		t.Errorf("pending music = %q, want the new theme's track", audio.PendingMusic)
	}

	// Equipping the free theme again costs nothing.
	activateShopItem(e, shop, findShopItem(t, components.ShopTheme, cfg.Themes.Default))
	if menu.Theme != cfg.Themes.Default {
		t.Errorf("menu theme = %q after equipping default", menu.Theme)
	}
}

func TestOpenShopSkipsOpeningPress(t *testing.T) {
	e, shop := newShopWorld(t, 0)
	if !IsShopOpen(e) || !shop.JustOpened {
		t.Fatal("shop should be open and waiting a frame")
	}
	UpdateShop(e)
	if shop.JustOpened || len(queued(e)) != 0 {
		t.Errorf("first shop frame should only clear the open flag, queued %v", queued(e))
	}
}
