package systems

import (
	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/timeline"
	"github.com/tonegarden/starsong/pkg/types"
)

// 测试辅助: 录制型协作方和常用实体构造器,只在 _test.go 里使用

// recordReaper 记录击杀请求,并像真实的生命周期管理器一样把实体
// 标记为 killed,保证"每实体至多一次击杀"的断言成立
type recordReaper struct {
	em    *ecs.EntityManager
	kills []ecs.EntityID
}

func (r *recordReaper) Kill(id ecs.EntityID) {
	if behavior, ok := ecs.GetComponent[*components.BehaviorComponent](r.em, id); ok {
		if behavior.State == components.StateKilled {
			return
		}
		behavior.State = components.StateKilled
	}
	r.kills = append(r.kills, id)
}

// firedShot 一次开火意图的记录
type firedShot struct {
	id   ecs.EntityID
	kind types.EntityKind
	x, y float64
}

// recordFireSink 记录开火意图
type recordFireSink struct {
	shots []firedShot
}

func (s *recordFireSink) Fire(id ecs.EntityID, kind types.EntityKind, x, y float64) {
	s.shots = append(s.shots, firedShot{id: id, kind: kind, x: x, y: y})
}

// testGameConfig 返回与默认配置文件同值的游戏配置
func testGameConfig() *config.GameConfig {
	return &config.GameConfig{
		Playfield:   config.PlayfieldConfig{Width: 1440, Height: 900},
		KillMargin:  150,
		ScrollSpeed: 2,
		SpawnBand:   config.SpawnBandConfig{Near: 20, Far: 100},
		Sink:        config.SinkConfig{OffsetX: 0, OffsetY: 150},
		Formation:   config.FormationConfig{FirstRowY: 150, RowSpacing: 120, Rows: 3},
		Spinner: config.SpinnerSpawnConfig{
			ScreenBuffer:    75,
			OffscreenAmount: 100,
			StopOffsetMin:   300,
			StopOffsetMax:   600,
		},
		Strafer:      config.StraferSpawnConfig{EdgeMarginX: 50, SpawnY: -100},
		SpecialEvent: config.SpecialEventConfig{NoteThreshold: 10, LetterCount: 7},
	}
}

// testAnimationConfig 返回与默认配置文件同值的动画配置
func testAnimationConfig() *config.AnimationConfig {
	return &config.AnimationConfig{
		StarTwinkle: config.TwinkleConfig{
			Palette:      []float64{50, 50, 50, 50, 100, 150, 200, 255, 200, 100},
			IncrementMin: 0.1,
			IncrementMax: 0.5,
		},
		LetterFade: config.FadeConfig{
			Palette:   []float64{255, 232, 200, 182, 150, 122, 100, 73, 50, 22, 1},
			Increment: 0.2,
		},
		GuidedFlight: config.GuidedFlightConfig{
			PathPoints:   20,
			AlphaBounds:  []float64{100, 200},
			ScaleBounds:  []float64{0.15, 1},
			RotationRate: -4,
		},
		BlackHole: config.ShiftConfig{
			Offsets:   [][]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}},
			Increment: 0.05,
		},
		BrokenNote: config.DriftConfig{
			JitterInterval:    360,
			TopLeftMargin:     10,
			BottomRightMargin: 20,
		},
		MenuCursor: config.MenuCursorConfig{
			Palette:   []float64{255, 255, 122, 0, 0, 122},
			Increment: 0.25,
		},
	}
}

// newLetterEntity 创建一个活跃状态的字母实体
func newLetterEntity(em *ecs.EntityManager, x, y, size, scale, vx, vy float64, heading types.Heading) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindLetter, State: components.StateActive})
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y, Width: size, Height: size})
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(id, &components.ScaleComponent{Factor: scale})
	em.AddComponent(id, &components.FreeFlightComponent{Heading: heading})
	em.AddComponent(id, &components.SpinComponent{Rate: 0.8})
	return id
}

// newStraferEntity 创建一个横移炮灰实体
func newStraferEntity(em *ecs.EntityManager, x, y float64, state components.MoveState, direction float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindStrafer, State: state})
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y, Width: 60, Height: 60})
	em.AddComponent(id, &components.StrafeComponent{Direction: direction, Speed: 3, Row: 0})
	return id
}

// snapshotIDs 返回当前所有带行为组件的实体,按ID升序
func snapshotIDs(em *ecs.EntityManager) []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.BehaviorComponent](em)
}

// oneShot 构造一次性游标
func oneShot(increment float64, length int) timeline.Cursor {
	return timeline.NewOneShotCursor(length, increment)
}

// cyclic 构造循环游标
func cyclic(increment float64, length int) timeline.Cursor {
	return timeline.NewCyclicCursor(length, increment)
}
