package systems

import (
	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/types"
)

// FireSink 接收开火意图
// 攻击系统只负责冷却计时,子弹如何生成由场景决定
type FireSink interface {
	// Fire 在实体 id 的包围盒底边中点发起一次攻击
	Fire(id ecs.EntityID, kind types.EntityKind, x, y float64)
}

// AttackSystem 攻击冷却
//
// 进场中的实体不攻击也不积累冷却;转入活跃后冷却每tick加一,
// 攒满即向 FireSink 发一次开火意图并清零。
type AttackSystem struct {
	em   *ecs.EntityManager
	sink FireSink
}

// NewAttackSystem 创建攻击系统
//
// 参数:
//   - em: 实体管理器
//   - sink: 开火意图接收方,可为 nil(纯装饰场景)
func NewAttackSystem(em *ecs.EntityManager, sink FireSink) *AttackSystem {
	return &AttackSystem{em: em, sink: sink}
}

// Update 推进本tick快照内所有实体的攻击冷却
func (at *AttackSystem) Update(ids []ecs.EntityID) {
	for _, id := range ids {
		if !at.em.IsAlive(id) {
			continue
		}
		behavior, ok := ecs.GetComponent[*components.BehaviorComponent](at.em, id)
		if !ok || behavior.State != components.StateActive {
			continue
		}
		attack, ok := ecs.GetComponent[*components.AttackComponent](at.em, id)
		if !ok || attack.CooldownTicks <= 0 {
			continue
		}

		attack.SinceLast++
		if !attack.Ready() {
			continue
		}
		attack.SinceLast = 0

		if at.sink == nil {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](at.em, id)
		if !ok {
			continue
		}
		at.sink.Fire(id, behavior.Kind, pos.CenterX(), pos.Bottom())
	}
}
