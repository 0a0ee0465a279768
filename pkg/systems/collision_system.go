package systems

import (
	"math"

	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/types"
)

// CollisionSystem 碰撞响应解析器
//
// 每tick对两个碰撞组各跑一遍成对检测:敌人对敌人用矩形重叠测试,
// 字母对字母用圆形重叠测试。响应经过接触表去抖:一对实体只在刚
// 接触的那个tick响应一次,持续重叠期间不再响应,分离后把记录移除,
// 下次接触重新响应。
type CollisionSystem struct {
	em      *ecs.EntityManager
	overlap *OverlapTable
}

// NewCollisionSystem 创建碰撞响应系统
//
// 参数:
//   - em: 实体管理器
//   - overlap: 接触关系表(生命周期管理器在击杀时也会清理它)
func NewCollisionSystem(em *ecs.EntityManager, overlap *OverlapTable) *CollisionSystem {
	return &CollisionSystem{
		em:      em,
		overlap: overlap,
	}
}

// Update 对本tick的实体快照执行碰撞检测与响应
// ids 必须按ID升序,保证成对遍历顺序确定
func (cs *CollisionSystem) Update(ids []ecs.EntityID) {
	// 分组: 敌人组(含进场中的)和字母组
	enemies := make([]ecs.EntityID, 0)
	letters := make([]ecs.EntityID, 0)

	for _, id := range ids {
		if !cs.em.IsAlive(id) {
			continue
		}
		behavior, ok := ecs.GetComponent[*components.BehaviorComponent](cs.em, id)
		if !ok || behavior.State == components.StateKilled {
			continue
		}
		if behavior.Kind.IsEnemy() {
			enemies = append(enemies, id)
		} else if behavior.Kind == types.KindLetter {
			letters = append(letters, id)
		}
	}

	cs.resolveEnemyPairs(enemies)
	cs.resolveLetterPairs(letters)
}

// resolveEnemyPairs 处理敌人对敌人的矩形碰撞
func (cs *CollisionSystem) resolveEnemyPairs(enemies []ecs.EntityID) {
	for i := 0; i < len(enemies); i++ {
		posA, ok := ecs.GetComponent[*components.PositionComponent](cs.em, enemies[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(enemies); j++ {
			posB, ok := ecs.GetComponent[*components.PositionComponent](cs.em, enemies[j])
			if !ok {
				continue
			}

			a, b := enemies[i], enemies[j]
			if !posA.Overlaps(posB) {
				// 接触结束,清除记录,允许下次接触重新响应
				cs.overlap.Remove(a, b)
				continue
			}
			if cs.overlap.Contains(a, b) {
				continue // 持续重叠,去抖
			}

			cs.respondEnemyPair(a, b)
			cs.overlap.Insert(a, b)
		}
	}
}

// respondEnemyPair 对刚接触的敌人对应用响应策略
//
// 任一方还在进场时:进场中的横移炮灰采用对方巡逻方向的反向
// (双方都进场时各自采用对方原方向的反向);双方都活跃时各自翻转
// 自己的巡逻方向。没有巡逻方向的敌人(旋转/追踪炮灰)不受影响,
// 但对方仍可能因它而翻转。
func (cs *CollisionSystem) respondEnemyPair(a, b ecs.EntityID) {
	behaviorA, okA := ecs.GetComponent[*components.BehaviorComponent](cs.em, a)
	behaviorB, okB := ecs.GetComponent[*components.BehaviorComponent](cs.em, b)
	if !okA || !okB {
		return
	}

	strafeA, hasStrafeA := ecs.GetComponent[*components.StrafeComponent](cs.em, a)
	strafeB, hasStrafeB := ecs.GetComponent[*components.StrafeComponent](cs.em, b)

	spawningA := behaviorA.State == components.StateSpawning
	spawningB := behaviorB.State == components.StateSpawning

	if spawningA || spawningB {
		// 采用基于响应前的方向值,两边同时计算,结果与处理顺序无关
		var dirA, dirB float64
		if hasStrafeA {
			dirA = strafeA.Direction
		}
		if hasStrafeB {
			dirB = strafeB.Direction
		}
		if spawningA && hasStrafeA && hasStrafeB {
			strafeA.Direction = -dirB
		}
		if spawningB && hasStrafeB && hasStrafeA {
			strafeB.Direction = -dirA
		}
		return
	}

	// 双方都已活跃: 各自翻转
	if hasStrafeA {
		strafeA.Flip()
	}
	if hasStrafeB {
		strafeB.Flip()
	}
}

// resolveLetterPairs 处理字母对字母的圆形碰撞
func (cs *CollisionSystem) resolveLetterPairs(letters []ecs.EntityID) {
	for i := 0; i < len(letters); i++ {
		posA, ok := ecs.GetComponent[*components.PositionComponent](cs.em, letters[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(letters); j++ {
			posB, ok := ecs.GetComponent[*components.PositionComponent](cs.em, letters[j])
			if !ok {
				continue
			}

			a, b := letters[i], letters[j]
			if !circlesOverlap(posA, posB) {
				cs.overlap.Remove(a, b)
				continue
			}
			if cs.overlap.Contains(a, b) {
				continue
			}

			cs.respondLetterPair(a, b)
			cs.overlap.Insert(a, b)
		}
	}
}

// respondLetterPair 对刚接触的字母对应用动量传递响应
// 双方各自:调头(方向标签取反)、按尺寸关系重算速度、翻转旋转方向
func (cs *CollisionSystem) respondLetterPair(a, b ecs.EntityID) {
	scaleA, okA := ecs.GetComponent[*components.ScaleComponent](cs.em, a)
	scaleB, okB := ecs.GetComponent[*components.ScaleComponent](cs.em, b)
	if !okA || !okB {
		return
	}

	cs.applyLetterImpulse(a, scaleA.Factor, scaleB.Factor)
	cs.applyLetterImpulse(b, scaleB.Factor, scaleA.Factor)
}

// applyLetterImpulse 对单个字母应用碰撞响应
func (cs *CollisionSystem) applyLetterImpulse(id ecs.EntityID, scaleSelf, scaleOther float64) {
	flight, ok := ecs.GetComponent[*components.FreeFlightComponent](cs.em, id)
	if !ok {
		return
	}
	vel, ok := ecs.GetComponent[*components.VelocityComponent](cs.em, id)
	if !ok {
		return
	}

	// 先调头,再以新方向计算动量响应(零速推步沿新行进轴)
	flight.Heading = flight.Heading.Opposite()
	vel.VX, vel.VY = ResolveLetterImpulse(scaleSelf, scaleOther, vel.VX, vel.VY, flight.Heading)

	if spin, ok := ecs.GetComponent[*components.SpinComponent](cs.em, id); ok {
		spin.Rate *= -1
	}
}

// ResolveLetterImpulse 计算字母碰撞后的新速度向量
//
// 纯函数:结果只由 (自身缩放, 对方缩放, 当前速度, 行进方向) 决定。
// 缩放差小于 0.5 视为"体型相近":速度取反并把每个非零分量钳制到
// 单位大小(近停反弹)。体型悬殊时小的一方速度取反后每个分量再远离
// 零一个单位(获得动量),大的一方每个分量向零靠近一个单位(失去
// 动量);小的一方若恰好停住,沿行进轴推一个单位步
func ResolveLetterImpulse(scaleSelf, scaleOther, vx, vy float64, heading types.Heading) (float64, float64) {
	similar := math.Abs(scaleSelf-scaleOther) < 0.5
	smaller := scaleSelf < scaleOther

	x, y := vx, vy
	if similar || smaller {
		x, y = -x, -y
	}

	if similar {
		if x != 0 {
			x = math.Copysign(1, x)
		}
		if y != 0 {
			y = math.Copysign(1, y)
		}
		return x, y
	}

	momentum := 1.0
	if smaller {
		momentum = -1
	}
	if x < 0 {
		x += momentum
	} else {
		x -= momentum
	}
	if y < 0 {
		y += momentum
	} else {
		y -= momentum
	}

	if x == 0 && y == 0 && smaller {
		switch heading {
		case types.HeadingLeft:
			x -= 1
		case types.HeadingTop:
			y -= 1
		case types.HeadingRight:
			x += 1
		default:
			y += 1
		}
	}

	return x, y
}

// circlesOverlap 圆形重叠测试,半径取包围盒长边的一半
func circlesOverlap(a, b *components.PositionComponent) bool {
	ra := math.Max(a.Width, a.Height) / 2
	rb := math.Max(b.Width, b.Height) / 2
	dx := a.CenterX() - b.CenterX()
	dy := a.CenterY() - b.CenterY()
	return dx*dx+dy*dy < (ra+rb)*(ra+rb)
}
