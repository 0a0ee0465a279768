package game

import (
	"math/rand"
	"testing"

	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/types"
)

// statsEvent 一条统计事件记录
type statsEvent struct {
	name  string
	kind  types.EntityKind
	score int
	ms    int64
}

// recordStats 录制型统计协作方
type recordStats struct {
	events []statsEvent
}

func (r *recordStats) EntitySpawned(kind types.EntityKind) {
	r.events = append(r.events, statsEvent{name: "spawned", kind: kind})
}

func (r *recordStats) EntityCollected(kind types.EntityKind, score int) {
	r.events = append(r.events, statsEvent{name: "collected", kind: kind, score: score})
}

func (r *recordStats) EntityLifespan(kind types.EntityKind, ms int64) {
	r.events = append(r.events, statsEvent{name: "lifespan", kind: kind, ms: ms})
}

func (r *recordStats) count(name string) int {
	n := 0
	for _, e := range r.events {
		if e.name == name {
			n++
		}
	}
	return n
}

// testWorldConfigs 返回与默认配置文件同值的三份配置
func testWorldConfigs() (*config.EntitiesConfig, *config.GameConfig, *config.AnimationConfig) {
	entitiesCfg := &config.EntitiesConfig{
		Entities: map[string]config.EntityTuning{
			"star": {BaseSize: []float64{14, 14}, Variants: 10, ScaleBounds: []float64{0.05, 0.4}, SpawnSides: []string{"top"}},
			"note": {DrawLayer: 1, BaseSize: []float64{48, 96}, Variants: 6, SpawnSpeed: 4,
				RotationAmount: 1.5, ScaleBounds: []float64{0.2, 0.5}, SpawnSides: []string{"left", "top", "right"}},
			"broken_note": {DrawLayer: 1, BaseSize: []float64{48, 96}, Variants: 12, RotationAmount: 1.5,
				ScaleBounds: []float64{0.05, 0.4}, AlphaBounds: []float64{100, 240}, SpawnSides: []string{"left", "top", "right", "bottom"}},
			"letter": {DrawLayer: 3, BaseSize: []float64{56, 56}, Variants: 7, SpawnSpeed: 6,
				RotationAmount: 0.8, ScaleBounds: []float64{0.4, 1.0}, Damage: 1, SpawnSides: []string{"left", "top", "right", "bottom"}},
			"black_hole":     {DrawLayer: 1, BaseSize: []float64{32, 32}, Variants: 1, RotationAmount: 4, ScaleBounds: []float64{4, 4}, AlphaBounds: []float64{150, 150}},
			"destroyed_ship": {DrawLayer: 3, BaseSize: []float64{24, 24}, Variants: 1, RotationAmount: 0.1, ScaleBounds: []float64{5, 5}},
			"strafer": {DrawLayer: 2, BaseSize: []float64{40, 40}, Variants: 2, Health: 20, SpawnSpeed: 8,
				StrafeSpeed: 3, ScaleBounds: []float64{1.5, 1.5}, AttackCooldown: 90, SpawnSides: []string{"top"}},
			"spinner": {DrawLayer: 2, BaseSize: []float64{40, 40}, Variants: 2, Health: 30, SpawnSpeed: 6,
				RotationAmount: 1, ScaleBounds: []float64{1.5, 1.5}, AttackCooldown: 120, SpawnSides: []string{"left", "right"}},
			"tracker": {DrawLayer: 2, BaseSize: []float64{32, 32}, Variants: 2, Health: 2, SpawnSpeed: 4,
				TurnRate: 3, ScaleBounds: []float64{1.5, 1.5}, AttackCooldown: 150, SpawnSides: []string{"top"}},
		},
	}

	gameCfg := &config.GameConfig{
		Playfield:   config.PlayfieldConfig{Width: 1440, Height: 900},
		KillMargin:  150,
		ScrollSpeed: 2,
		SpawnBand:   config.SpawnBandConfig{Near: 20, Far: 100},
		Sink:        config.SinkConfig{OffsetX: 0, OffsetY: 150},
		Formation:   config.FormationConfig{FirstRowY: 150, RowSpacing: 120, Rows: 3},
		Spinner:     config.SpinnerSpawnConfig{ScreenBuffer: 75, OffscreenAmount: 100, StopOffsetMin: 300, StopOffsetMax: 600},
		Strafer:     config.StraferSpawnConfig{EdgeMarginX: 50, SpawnY: -100},
		SpecialEvent: config.SpecialEventConfig{
			NoteThreshold: 10, LetterCount: 7,
		},
	}

	animCfg := &config.AnimationConfig{
		StarTwinkle: config.TwinkleConfig{Palette: []float64{50, 100, 255, 100}, IncrementMin: 0.1, IncrementMax: 0.5},
		LetterFade:  config.FadeConfig{Palette: []float64{255, 122, 1}, Increment: 0.2},
		GuidedFlight: config.GuidedFlightConfig{
			PathPoints: 20, AlphaBounds: []float64{100, 200}, ScaleBounds: []float64{0.15, 1}, RotationRate: 1,
		},
		BlackHole:  config.ShiftConfig{Offsets: [][]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}, Increment: 0.05},
		BrokenNote: config.DriftConfig{JitterInterval: 360, TopLeftMargin: 10, BottomRightMargin: 20},
		MenuCursor: config.MenuCursorConfig{Palette: []float64{255, 255, 122, 0, 0, 122}, Increment: 0.25},
	}

	return entitiesCfg, gameCfg, animCfg
}

func newTestWorld(t *testing.T, stats StatsRecorder) *World {
	t.Helper()
	entitiesCfg, gameCfg, animCfg := testWorldConfigs()
	w, err := NewWorld(entitiesCfg, gameCfg, animCfg, stats, nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	return w
}

// addLetter 直接往世界里放一个活跃字母(绕过工厂的随机参数)
func addLetter(w *World, x, y, vx, vy float64) ecs.EntityID {
	em := w.Manager()
	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindLetter, State: components.StateActive, SpawnedTick: w.CurrentTick()})
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y, Width: 8, Height: 8})
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(id, &components.ScaleComponent{Factor: 0.5})
	em.AddComponent(id, &components.FreeFlightComponent{Heading: types.HeadingBottom})
	em.AddComponent(id, &components.SpriteComponent{Variant: 0, DrawLayer: 3})
	return id
}

func TestWorldSpawnEmitsEvent(t *testing.T) {
	stats := &recordStats{}
	w := newTestWorld(t, stats)

	id, err := w.Spawn(types.KindNote, SpawnParams{})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if !w.Manager().IsAlive(id) {
		t.Fatal("Spawned entity should be alive")
	}

	if stats.count("spawned") != 1 {
		t.Errorf("Expected exactly one spawned event, got %d", stats.count("spawned"))
	}
}

func TestWorldSpawnUnknownKind(t *testing.T) {
	w := newTestWorld(t, nil)
	if _, err := w.Spawn(types.KindUnknown, SpawnParams{}); err == nil {
		t.Error("Spawning an unknown kind should fail")
	}
}

func TestWorldKillIdempotent(t *testing.T) {
	stats := &recordStats{}
	w := newTestWorld(t, stats)

	id, err := w.Spawn(types.KindNote, SpawnParams{})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	// 先跑几个tick攒出寿命
	for i := 0; i < 6; i++ {
		if err := w.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	w.Kill(id)
	w.Kill(id) // 第二次是空操作

	if got := stats.count("lifespan"); got != 1 {
		t.Errorf("Double kill should emit exactly one lifespan event, got %d", got)
	}

	// 6 tick = 100 毫秒
	for _, e := range stats.events {
		if e.name == "lifespan" && e.ms != 100 {
			t.Errorf("Lifespan after 6 ticks should be 100 ms, got %d", e.ms)
		}
	}

	if w.Manager().IsAlive(id) {
		t.Error("Killed entity should not be alive")
	}
}

func TestWorldKillUnknownHandleIsNoOp(t *testing.T) {
	stats := &recordStats{}
	w := newTestWorld(t, stats)

	w.Kill(ecs.EntityID(12345))
	if len(stats.events) != 0 {
		t.Errorf("Killing an unknown handle should emit nothing, got %d events", len(stats.events))
	}
}

func TestWorldCollectEmitsScoreThenKills(t *testing.T) {
	stats := &recordStats{}
	w := newTestWorld(t, stats)

	id, err := w.Spawn(types.KindNote, SpawnParams{})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	w.Collect(id)
	w.Collect(id) // 重复收集是空操作

	if got := stats.count("collected"); got != 1 {
		t.Errorf("Expected exactly one collected event, got %d", got)
	}
	if got := stats.count("lifespan"); got != 1 {
		t.Errorf("Collect should also emit exactly one lifespan event, got %d", got)
	}
	if w.Manager().IsAlive(id) {
		t.Error("Collected entity should be removed")
	}
}

func TestWorldBoundsKillOnExactTick(t *testing.T) {
	// 扩展击杀边界在 900 + 150 = 1050;字母从 Y=1030 以 8/tick 下坠:
	// tick1 -> 1038, tick2 -> 1046, tick3 -> 1054 首次越界,当tick移除
	stats := &recordStats{}
	w := newTestWorld(t, stats)
	id := addLetter(w, 700, 1030, 0, 8)

	for tick := 1; tick <= 2; tick++ {
		if err := w.Tick(); err != nil {
			t.Fatalf("Tick %d failed: %v", tick, err)
		}
		if !w.Manager().IsAlive(id) {
			t.Fatalf("Letter should still be alive after tick %d", tick)
		}
	}

	if err := w.Tick(); err != nil {
		t.Fatalf("Tick 3 failed: %v", err)
	}
	if w.Manager().IsAlive(id) {
		t.Fatal("Letter should be removed on the first tick past the kill boundary")
	}

	// 下一帧的绘制快照里不出现
	for _, item := range w.RenderItems() {
		if item.Handle == uint64(id) {
			t.Error("Removed letter should not appear in the render snapshot")
		}
	}

	if got := stats.count("lifespan"); got != 1 {
		t.Errorf("Bounds kill should emit exactly one lifespan event, got %d", got)
	}
}

func TestWorldKillPurgesOverlapTable(t *testing.T) {
	w := newTestWorld(t, nil)

	// 两个重叠的字母,tick后接触表里有一条记录
	a := addLetter(w, 100, 100, 0, 0)
	b := addLetter(w, 103, 103, 0, 0)

	if err := w.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if w.OverlapPairCount() != 1 {
		t.Fatalf("Expected one overlap pair, got %d", w.OverlapPairCount())
	}

	w.Kill(a)
	if w.OverlapPairCount() != 0 {
		t.Errorf("Killing an entity should purge its overlap relations, got %d left", w.OverlapPairCount())
	}

	// 幸存者不受影响
	if !w.Manager().IsAlive(b) {
		t.Error("Peer entity should survive its partner's kill")
	}
}

func TestWorldSpawnDuringTickJoinsNextTick(t *testing.T) {
	w := newTestWorld(t, nil)

	id := addLetter(w, 100, 100, 2, 0)
	if err := w.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](w.Manager(), id)
	if pos.X != 102 {
		t.Errorf("Pre-tick entity should have moved to 102, got %f", pos.X)
	}

	// tick之间生成的实体这个tick不动,下个tick才动
	late := addLetter(w, 200, 200, 2, 0)
	posLate, _ := ecs.GetComponent[*components.PositionComponent](w.Manager(), late)
	if posLate.X != 200 {
		t.Errorf("Late entity should not move before its first tick, got %f", posLate.X)
	}

	if err := w.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if posLate.X != 202 {
		t.Errorf("Late entity should move on its first full tick, got %f", posLate.X)
	}
}

func TestWorldRenderItemsLayerOrder(t *testing.T) {
	w := newTestWorld(t, nil)

	if _, err := w.Spawn(types.KindLetter, SpawnParams{}); err != nil {
		t.Fatalf("Spawn letter failed: %v", err)
	}
	if _, err := w.Spawn(types.KindStar, SpawnParams{OnField: true}); err != nil {
		t.Fatalf("Spawn star failed: %v", err)
	}
	if _, err := w.Spawn(types.KindNote, SpawnParams{}); err != nil {
		t.Fatalf("Spawn note failed: %v", err)
	}

	items := w.RenderItems()
	if len(items) != 3 {
		t.Fatalf("Expected 3 render items, got %d", len(items))
	}

	for i := 1; i < len(items); i++ {
		if items[i].Layer < items[i-1].Layer {
			t.Errorf("Render items out of layer order: %d before %d", items[i-1].Layer, items[i].Layer)
		}
		if items[i].Layer == items[i-1].Layer && items[i].Handle < items[i-1].Handle {
			t.Error("Same-layer items should be ordered by handle")
		}
	}

	// 星星图层0在最前,字母图层3在最后
	if items[0].Kind != types.KindStar {
		t.Errorf("Star should be drawn first, got %s", items[0].Kind)
	}
	if items[len(items)-1].Kind != types.KindLetter {
		t.Errorf("Letter should be drawn last, got %s", items[len(items)-1].Kind)
	}
}

func TestWorldDamageKillsAtZeroHealth(t *testing.T) {
	stats := &recordStats{}
	w := newTestWorld(t, stats)

	id, err := w.Spawn(types.KindTracker, SpawnParams{})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	w.Damage(id, 1)
	if err := w.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if !w.Manager().IsAlive(id) {
		t.Fatal("Tracker should survive at 1 health")
	}

	w.Damage(id, 1)
	if err := w.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if w.Manager().IsAlive(id) {
		t.Error("Tracker should be removed once health reaches zero")
	}
	if got := stats.count("lifespan"); got != 1 {
		t.Errorf("Health kill should emit exactly one lifespan event, got %d", got)
	}
}

func TestWorldGuidedNoteReachesSinkAndDies(t *testing.T) {
	stats := &recordStats{}
	w := newTestWorld(t, stats)

	id, err := w.Spawn(types.KindNote, SpawnParams{Guided: true})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	// 路径20个关键帧、整数步进,20个tick内必然抵达汇点被移除
	for i := 0; i < 25; i++ {
		if err := w.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if w.Manager().IsAlive(id) {
		t.Error("Guided note should be removed after completing its path")
	}
	if got := stats.count("lifespan"); got != 1 {
		t.Errorf("Sink arrival should emit exactly one lifespan event, got %d", got)
	}
}
