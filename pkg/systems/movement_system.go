package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/types"
)

// MovementSystem 运动状态机
//
// 负责每个实体的逐tick位移和 Spawning -> Active 状态转移。
// 进场实体先沿进场轴移动,再检查是否越过停止线;越线即转入活跃,
// 所以正好在到位的那个tick转移。活跃阶段按种类分派:
//
//	横移炮灰  左右巡逻,贴边反向
//	旋转炮灰  原地自转(到位时启用角速度,此后由动画系统推进)
//	追踪炮灰  朝目标方位限速转向
//	星星/音符/字母  按速度向量自由飞行
//	破碎音符  软边界内慢速漂移,触界调头
//	黑洞      四点对角循环晃动
//	菜单音符  沿插值路径飞向汇点,同步淡出缩小,播完即移除
type MovementSystem struct {
	em        *ecs.EntityManager
	playfield config.PlayfieldConfig
	drift     config.DriftConfig
	reaper    Reaper
	rng       *rand.Rand

	// 追踪炮灰的目标点,由场景每tick喂入
	targetX, targetY float64
	hasTarget        bool
}

// Reaper 击杀回调,由生命周期管理器实现
// 系统不直接删除实体,统一走这里保证寿命统计和接触表清理恰好
// 发生一次,且重复击杀是空操作
type Reaper interface {
	Kill(id ecs.EntityID)
}

// NewMovementSystem 创建运动系统
//
// 参数:
//   - em: 实体管理器
//   - gameCfg: 游戏区配置(巡逻边界)
//   - animCfg: 动画配置(漂移参数)
//   - reaper: 击杀回调
//   - rng: 随机源(漂移侧向量重掷),注入以便测试重现
func NewMovementSystem(em *ecs.EntityManager, gameCfg *config.GameConfig, animCfg *config.AnimationConfig, reaper Reaper, rng *rand.Rand) *MovementSystem {
	return &MovementSystem{
		em:        em,
		playfield: gameCfg.Playfield,
		drift:     animCfg.BrokenNote,
		reaper:    reaper,
		rng:       rng,
	}
}

// SetSeekTarget 更新追踪炮灰的目标点(通常是玩家飞船中心)
func (ms *MovementSystem) SetSeekTarget(x, y float64) {
	ms.targetX, ms.targetY = x, y
	ms.hasTarget = true
}

// ClearSeekTarget 清除追踪目标,追踪炮灰将保持当前朝向直行
func (ms *MovementSystem) ClearSeekTarget() {
	ms.hasTarget = false
}

// Update 对本tick的实体快照执行移动与状态转移
// 任何实体的进场转移缺少停止线配置都会同步返回 ErrMissingStopLine
func (ms *MovementSystem) Update(ids []ecs.EntityID) error {
	for _, id := range ids {
		if !ms.em.IsAlive(id) {
			continue
		}
		behavior, ok := ecs.GetComponent[*components.BehaviorComponent](ms.em, id)
		if !ok || behavior.State == components.StateKilled {
			continue
		}

		if behavior.State == components.StateSpawning {
			if err := ms.approach(id, behavior); err != nil {
				return err
			}
			continue
		}

		ms.active(id, behavior)
	}
	return nil
}

// approach 进场阶段: 沿进场轴移动,越过停止线后转入活跃状态
func (ms *MovementSystem) approach(id ecs.EntityID, behavior *components.BehaviorComponent) error {
	approach, ok := ecs.GetComponent[*components.ApproachComponent](ms.em, id)
	if !ok {
		// 没有进场配置的实体直接视为活跃(装饰类出生即活跃)
		behavior.State = components.StateActive
		return nil
	}
	if !approach.HasStopLine {
		return fmt.Errorf("%s entity %d: %w", behavior.Kind, id, ErrMissingStopLine)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](ms.em, id)
	if !ok {
		return nil
	}

	dx, dy := approach.Advancing()
	pos.X += dx
	pos.Y += dy

	// 先移动后判定,正好压线的tick完成转移
	if approach.Arrived(pos) {
		behavior.State = components.StateActive
		if approach.ArrivalSpinRate != 0 {
			if spin, ok := ecs.GetComponent[*components.SpinComponent](ms.em, id); ok {
				spin.Rate = approach.ArrivalSpinRate
			}
		}
	}
	return nil
}

// active 活跃阶段: 按种类分派自由行为
func (ms *MovementSystem) active(id ecs.EntityID, behavior *components.BehaviorComponent) {
	switch behavior.Kind {
	case types.KindStrafer:
		ms.strafe(id)
	case types.KindSpinner:
		// 原地自转,平移为零;角度推进在动画系统
	case types.KindTracker:
		ms.seek(id)
	case types.KindNote:
		if ecs.HasComponent[*components.GuidedFlightComponent](ms.em, id) {
			ms.guidedFlight(id)
			return
		}
		ms.freeFlight(id)
	case types.KindStar, types.KindLetter:
		ms.freeFlight(id)
	case types.KindBrokenNote:
		ms.driftMove(id)
	case types.KindBlackHole:
		ms.shiftCycle(id)
	case types.KindDestroyedShip:
		// 只自转,不平移
	}
}

// freeFlight 按速度向量平移
func (ms *MovementSystem) freeFlight(id ecs.EntityID) {
	pos, okP := ecs.GetComponent[*components.PositionComponent](ms.em, id)
	vel, okV := ecs.GetComponent[*components.VelocityComponent](ms.em, id)
	if !okP || !okV {
		return
	}
	pos.X += vel.VX
	pos.Y += vel.VY
}

// strafe 横移巡逻: 贴边反向
func (ms *MovementSystem) strafe(id ecs.EntityID) {
	pos, okP := ecs.GetComponent[*components.PositionComponent](ms.em, id)
	strafe, okS := ecs.GetComponent[*components.StrafeComponent](ms.em, id)
	if !okP || !okS {
		return
	}

	pos.X += strafe.Direction * strafe.Speed

	if pos.Left() < 0 {
		pos.X = 0
		strafe.Flip()
	}
	if pos.Right() > ms.playfield.Width {
		pos.X = ms.playfield.Width - pos.Width
		strafe.Flip()
	}
}

// seek 追踪: 朝向以每tick至多 TurnRate 度向目标方位收敛
func (ms *MovementSystem) seek(id ecs.EntityID) {
	pos, okP := ecs.GetComponent[*components.PositionComponent](ms.em, id)
	seekComp, okS := ecs.GetComponent[*components.SeekComponent](ms.em, id)
	if !okP || !okS {
		return
	}

	if ms.hasTarget {
		bearing := math.Atan2(ms.targetY-pos.CenterY(), ms.targetX-pos.CenterX()) * 180 / math.Pi
		diff := normalizeAngle(bearing - seekComp.Heading)
		if diff > seekComp.TurnRate {
			diff = seekComp.TurnRate
		}
		if diff < -seekComp.TurnRate {
			diff = -seekComp.TurnRate
		}
		seekComp.Heading = normalizeAngle(seekComp.Heading + diff)
	}

	rad := seekComp.Heading * math.Pi / 180
	pos.X += seekComp.Speed * math.Cos(rad)
	pos.Y += seekComp.Speed * math.Sin(rad)
}

// driftMove 破碎音符漂移
// 行进轴每tick一个单位,侧向量每隔 JitterInterval tick 重掷;
// 触到软边界时贴边、调头并翻转旋转方向
func (ms *MovementSystem) driftMove(id ecs.EntityID) {
	pos, okP := ecs.GetComponent[*components.PositionComponent](ms.em, id)
	drift, okD := ecs.GetComponent[*components.DriftComponent](ms.em, id)
	if !okP || !okD {
		return
	}

	reroll := drift.FrameCounter%drift.JitterInterval == 0
	var x, y float64
	switch drift.Heading {
	case types.HeadingLeft:
		x = -1
		y = drift.PrevY
		if reroll {
			y = float64(ms.rng.Intn(2)) // {0, 1}
		}
	case types.HeadingRight:
		x = 1
		y = drift.PrevY
		if reroll {
			y = float64(ms.rng.Intn(2) - 1) // {-1, 0}
		}
	case types.HeadingTop:
		y = -1
		x = drift.PrevX
		if reroll {
			x = float64(ms.rng.Intn(2) - 1)
		}
	default: // HeadingBottom
		y = 1
		x = drift.PrevX
		if reroll {
			x = float64(ms.rng.Intn(2))
		}
	}

	pos.X += x
	pos.Y += y
	drift.PrevX, drift.PrevY = x, y
	drift.FrameCounter++

	spin, hasSpin := ecs.GetComponent[*components.SpinComponent](ms.em, id)
	flipSpin := func() {
		if hasSpin {
			spin.Rate *= -1
		}
	}

	// 软边界: 左/上在屏幕外 TopLeftMargin 处,右/下在 BottomRightMargin 处
	if pos.Left() < -ms.drift.TopLeftMargin {
		pos.X = -ms.drift.TopLeftMargin
		drift.Heading = types.HeadingRight
		flipSpin()
	}
	if pos.Right() > ms.playfield.Width+ms.drift.BottomRightMargin {
		pos.X = ms.playfield.Width + ms.drift.BottomRightMargin - pos.Width
		drift.Heading = types.HeadingLeft
		flipSpin()
	}
	if pos.Top() <= -ms.drift.TopLeftMargin {
		pos.Y = -ms.drift.TopLeftMargin
		drift.Heading = types.HeadingBottom
		flipSpin()
	}
	if pos.Bottom() > ms.playfield.Height+ms.drift.BottomRightMargin {
		pos.Y = ms.playfield.Height + ms.drift.BottomRightMargin - pos.Height
		drift.Heading = types.HeadingTop
		flipSpin()
	}
}

// shiftCycle 黑洞的四点对角循环晃动
func (ms *MovementSystem) shiftCycle(id ecs.EntityID) {
	pos, okP := ecs.GetComponent[*components.PositionComponent](ms.em, id)
	shift, okS := ecs.GetComponent[*components.ShiftComponent](ms.em, id)
	if !okP || !okS || len(shift.Offsets) == 0 {
		return
	}

	shift.Cursor.Advance()
	offset := shift.Offsets[shift.Cursor.Index()]
	pos.X += offset.X
	pos.Y += offset.Y
}

// guidedFlight 菜单音符的引导飞行
// 位置、透明度、缩放共享一个一次性游标;游标到达最后一帧时实体
// 被移除(音符落入汇点)
func (ms *MovementSystem) guidedFlight(id ecs.EntityID) {
	flight, ok := ecs.GetComponent[*components.GuidedFlightComponent](ms.em, id)
	if !ok || len(flight.Path) == 0 {
		return
	}

	if flight.Cursor.Pos >= float64(len(flight.Path)-1) {
		ms.reaper.Kill(id)
		return
	}

	idx := flight.Cursor.Index()
	if pos, ok := ecs.GetComponent[*components.PositionComponent](ms.em, id); ok {
		pos.SetCenter(flight.Path[idx].X, flight.Path[idx].Y)
	}
	if alpha, ok := ecs.GetComponent[*components.AlphaComponent](ms.em, id); ok && idx < len(flight.AlphaValues) {
		alpha.Value = flight.AlphaValues[idx]
		alpha.Clamp()
	}
	if scale, ok := ecs.GetComponent[*components.ScaleComponent](ms.em, id); ok && idx < len(flight.ScaleValues) {
		scale.Factor = flight.ScaleValues[idx]
	}

	flight.Cursor.Advance()
}

// normalizeAngle 把角度折到 (-180, 180] 区间
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	}
	if deg <= -180 {
		deg += 360
	}
	return deg
}
