package game

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/entities"
	"github.com/tonegarden/starsong/pkg/systems"
	"github.com/tonegarden/starsong/pkg/timeline"
	"github.com/tonegarden/starsong/pkg/types"
)

// millisPerTick 一个tick对应的毫秒数(60 tick/秒)
const millisPerTick = 1000.0 / 60.0

// SpawnParams 生成请求的可选参数
// 用不到的字段留零值;具体哪个字段生效取决于种类
type SpawnParams struct {
	Row     int             // 编队行号(横移炮灰)
	At      *timeline.Point // 指定出生点(旋转炮灰),nil 表示随机
	OnField bool            // true 时直接落在游戏区内(星星铺场)
	Guided  bool            // true 时音符走引导飞行(主菜单装饰)
}

// World 实体生命周期管理器
//
// 持有实体管理器、全部行为系统和接触关系表,按固定顺序执行每tick
// 流水线: 移动 -> 碰撞 -> 攻击 -> 动画 -> 边界/生命 -> 清除。
// 流水线遍历tick开始时的快照,tick中途生成的实体下个tick才参与;
// 击杀是幂等的,击杀当tick清掉接触表里的双向关系并恰好上报一次
// 寿命事件。
type World struct {
	em      *ecs.EntityManager
	factory *entities.Factory
	overlap *systems.OverlapTable

	movement  *systems.MovementSystem
	collision *systems.CollisionSystem
	attack    *systems.AttackSystem
	animation *systems.AnimationSystem
	bounds    *systems.BoundsSystem

	stats StatsRecorder
	tick  uint64
}

// NewWorld 装配一个世界
//
// 参数:
//   - entitiesCfg / gameCfg / animCfg: 三份配置
//   - stats: 统计协作方,可为 nil(不上报)
//   - sink: 开火意图接收方,可为 nil(纯装饰场景)
//   - rng: 随机源,注入以便测试重现
//
// 返回:
//   - *World: 世界实例
//   - error: 配置缺失时返回错误
func NewWorld(entitiesCfg *config.EntitiesConfig, gameCfg *config.GameConfig, animCfg *config.AnimationConfig,
	stats StatsRecorder, sink systems.FireSink, rng *rand.Rand) (*World, error) {

	factory, err := entities.NewFactory(entitiesCfg, gameCfg, animCfg, rng)
	if err != nil {
		return nil, fmt.Errorf("assemble world: %w", err)
	}

	w := &World{
		em:      ecs.NewEntityManager(),
		factory: factory,
		overlap: systems.NewOverlapTable(),
		stats:   stats,
	}

	// 各系统共用世界自身作为击杀回调,保证清理逻辑只有一份
	w.movement = systems.NewMovementSystem(w.em, gameCfg, animCfg, w, rng)
	w.collision = systems.NewCollisionSystem(w.em, w.overlap)
	w.attack = systems.NewAttackSystem(w.em, sink)
	w.animation = systems.NewAnimationSystem(w.em, w)
	w.bounds = systems.NewBoundsSystem(w.em, gameCfg, w)
	return w, nil
}

// Manager 返回底层实体管理器(场景做针对性查询用)
func (w *World) Manager() *ecs.EntityManager {
	return w.em
}

// CurrentTick 返回已执行的tick数
func (w *World) CurrentTick() uint64 {
	return w.tick
}

// EntityCount 返回存活实体数量
func (w *World) EntityCount() int {
	return w.em.EntityCount()
}

// Spawn 生成一个实体并注册到世界,返回稳定句柄
// 生成的实体从下一个tick开始参与流水线
func (w *World) Spawn(kind types.EntityKind, params SpawnParams) (ecs.EntityID, error) {
	var id ecs.EntityID
	var err error

	switch kind {
	case types.KindStar:
		id, err = w.factory.SpawnStar(w.em, w.tick, params.OnField)
	case types.KindNote:
		if params.Guided {
			id, err = w.factory.SpawnMenuNote(w.em, w.tick)
		} else {
			id, err = w.factory.SpawnNote(w.em, w.tick)
		}
	case types.KindBrokenNote:
		id, err = w.factory.SpawnBrokenNote(w.em, w.tick)
	case types.KindLetter:
		id, err = w.factory.SpawnLetter(w.em, w.tick)
	case types.KindBlackHole:
		id, err = w.factory.SpawnBlackHole(w.em, w.tick)
	case types.KindDestroyedShip:
		id, err = w.factory.SpawnDestroyedShip(w.em, w.tick)
	case types.KindStrafer:
		id, err = w.factory.SpawnStrafer(w.em, w.tick, params.Row)
	case types.KindSpinner:
		id, err = w.factory.SpawnSpinner(w.em, w.tick, params.At)
	case types.KindTracker:
		id, err = w.factory.SpawnTracker(w.em, w.tick)
	default:
		return 0, fmt.Errorf("cannot spawn unknown kind %s", kind)
	}
	if err != nil {
		return 0, err
	}

	if w.stats != nil {
		w.stats.EntitySpawned(kind)
	}
	return id, nil
}

// Kill 击杀实体: 从所有分组和接触表里移除,上报一次寿命事件
// 幂等,对已死句柄的第二次调用是空操作
func (w *World) Kill(id ecs.EntityID) {
	if !w.em.IsAlive(id) {
		return
	}
	behavior, ok := ecs.GetComponent[*components.BehaviorComponent](w.em, id)
	if ok {
		if behavior.State == components.StateKilled {
			return
		}
		behavior.State = components.StateKilled

		if w.stats != nil {
			elapsed := w.tick - behavior.SpawnedTick
			w.stats.EntityLifespan(behavior.Kind, int64(float64(elapsed)*millisPerTick))
		}
	}

	// 接触关系双向清除,不给任何组件留下悬垂句柄
	w.overlap.PurgeEntity(id)
	w.em.DestroyEntity(id)
}

// Collect 收集一个收集品: 上报得分事件后击杀
func (w *World) Collect(id ecs.EntityID) {
	if !w.em.IsAlive(id) {
		return
	}
	behavior, okB := ecs.GetComponent[*components.BehaviorComponent](w.em, id)
	collect, okC := ecs.GetComponent[*components.CollectibleComponent](w.em, id)
	if okB && okC && behavior.State != components.StateKilled && w.stats != nil {
		w.stats.EntityCollected(behavior.Kind, collect.Score)
	}
	w.Kill(id)
}

// Damage 对实体造成伤害,生命值在下次边界/生命检查时结算
func (w *World) Damage(id ecs.EntityID, amount int) {
	if health, ok := ecs.GetComponent[*components.HealthComponent](w.em, id); ok {
		health.CurrentHealth -= amount
	}
}

// EnableFadeOut 启用实体的淡出时间线,播完后实体被移除
func (w *World) EnableFadeOut(id ecs.EntityID) {
	if fade, ok := ecs.GetComponent[*components.FadeOutComponent](w.em, id); ok {
		fade.Enabled = true
	}
}

// SetSeekTarget 更新追踪炮灰的目标点(通常是玩家飞船中心)
func (w *World) SetSeekTarget(x, y float64) {
	w.movement.SetSeekTarget(x, y)
}

// EntitiesOfKind 返回指定种类的存活实体,按句柄升序
func (w *World) EntitiesOfKind(kind types.EntityKind) []ecs.EntityID {
	ids := ecs.GetEntitiesWith1[*components.BehaviorComponent](w.em)
	result := make([]ecs.EntityID, 0)
	for _, id := range ids {
		behavior, ok := ecs.GetComponent[*components.BehaviorComponent](w.em, id)
		if ok && behavior.Kind == kind && behavior.State != components.StateKilled {
			result = append(result, id)
		}
	}
	return result
}

// Tick 执行一个完整的仿真tick
// 流水线固定顺序: 移动 -> 碰撞 -> 攻击 -> 动画 -> 边界/生命 -> 清除
func (w *World) Tick() error {
	// tick开始时的快照,按句柄升序;中途生成的实体不在里面
	snapshot := ecs.GetEntitiesWith1[*components.BehaviorComponent](w.em)

	if err := w.movement.Update(snapshot); err != nil {
		return fmt.Errorf("tick %d movement: %w", w.tick, err)
	}
	w.collision.Update(snapshot)
	w.attack.Update(snapshot)
	w.animation.Update(snapshot)
	w.bounds.Update(snapshot)

	w.em.RemoveMarkedEntities()
	w.tick++
	return nil
}

// RenderItems 枚举本帧的绘制快照,按 (图层, 句柄) 升序
// 只包含存活实体;没有缩放/旋转/透明度组件的实体取默认值
func (w *World) RenderItems() []types.RenderItem {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.SpriteComponent](w.em)
	items := make([]types.RenderItem, 0, len(ids))

	for _, id := range ids {
		behavior, ok := ecs.GetComponent[*components.BehaviorComponent](w.em, id)
		if !ok || behavior.State == components.StateKilled {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](w.em, id)

		item := types.RenderItem{
			Handle:  uint64(id),
			Kind:    behavior.Kind,
			Variant: sprite.Variant,
			Layer:   sprite.DrawLayer,
			X:       pos.X,
			Y:       pos.Y,
			Width:   pos.Width,
			Height:  pos.Height,
			Scale:   1,
			Alpha:   255,
		}
		if spin, ok := ecs.GetComponent[*components.SpinComponent](w.em, id); ok {
			item.Angle = spin.Angle
		}
		if scale, ok := ecs.GetComponent[*components.ScaleComponent](w.em, id); ok {
			item.Scale = scale.Factor
		}
		if alpha, ok := ecs.GetComponent[*components.AlphaComponent](w.em, id); ok {
			item.Alpha = alpha.Value
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Layer != items[j].Layer {
			return items[i].Layer < items[j].Layer
		}
		return items[i].Handle < items[j].Handle
	})
	return items
}

// OverlapPairCount 返回接触表里当前记录的实体对数量(调试/测试用)
func (w *World) OverlapPairCount() int {
	return w.overlap.Len()
}
