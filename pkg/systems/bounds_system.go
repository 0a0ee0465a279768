package systems

import (
	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/types"
)

// BoundsSystem 出界与生命检查
//
// 三条移除规则:
//   - 滚动装饰(星星/音符)完全滚出下边缘后移除
//   - 字母越过任一方向的扩展边界(游戏区向外扩 KillMargin)后移除,
//     四个方向对称,出生带必须落在扩展边界以内
//   - 生命值归零的实体移除
//
// 真正的删除统一交给收割器,本系统只做判定。
type BoundsSystem struct {
	em         *ecs.EntityManager
	playfield  config.PlayfieldConfig
	killMargin float64
	reaper     Reaper
}

// NewBoundsSystem 创建边界系统
//
// 参数:
//   - em: 实体管理器
//   - gameCfg: 游戏区配置(尺寸与扩展边界)
//   - reaper: 击杀回调
func NewBoundsSystem(em *ecs.EntityManager, gameCfg *config.GameConfig, reaper Reaper) *BoundsSystem {
	return &BoundsSystem{
		em:         em,
		playfield:  gameCfg.Playfield,
		killMargin: gameCfg.KillMargin,
		reaper:     reaper,
	}
}

// Update 对本tick快照执行出界与生命检查
func (bs *BoundsSystem) Update(ids []ecs.EntityID) {
	for _, id := range ids {
		if !bs.em.IsAlive(id) {
			continue
		}
		behavior, ok := ecs.GetComponent[*components.BehaviorComponent](bs.em, id)
		if !ok || behavior.State == components.StateKilled {
			continue
		}

		if health, ok := ecs.GetComponent[*components.HealthComponent](bs.em, id); ok {
			if health.CurrentHealth <= 0 {
				bs.reaper.Kill(id)
				continue
			}
		}

		pos, ok := ecs.GetComponent[*components.PositionComponent](bs.em, id)
		if !ok {
			continue
		}

		switch behavior.Kind {
		case types.KindStar, types.KindNote:
			// 引导飞行的音符由运动系统在路径终点移除
			if ecs.HasComponent[*components.GuidedFlightComponent](bs.em, id) {
				continue
			}
			if pos.Top() > bs.playfield.Height {
				bs.reaper.Kill(id)
			}
		case types.KindLetter:
			if bs.outsideExtended(pos) {
				bs.reaper.Kill(id)
			}
		}
	}
}

// outsideExtended 判断包围盒是否完全离开扩展边界
func (bs *BoundsSystem) outsideExtended(pos *components.PositionComponent) bool {
	return pos.Right() < -bs.killMargin ||
		pos.Left() > bs.playfield.Width+bs.killMargin ||
		pos.Bottom() < -bs.killMargin ||
		pos.Top() > bs.playfield.Height+bs.killMargin
}
