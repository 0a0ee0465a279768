package components

import "github.com/tonegarden/starsong/pkg/types"

// MoveState 定义实体运动状态机的离散状态
type MoveState int

const (
	// StateSpawning 进场状态:实体向编队/入场点移动,攻击被禁用
	StateSpawning MoveState = iota
	// StateActive 活跃状态:执行种类专属的自由行为
	StateActive
	// StateKilled 终止状态:实体已被击杀,之后的任何 tick 都不再访问它
	StateKilled
)

// String 返回状态的字符串表示(用于日志)
func (s MoveState) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateActive:
		return "active"
	case StateKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// BehaviorComponent 标识实体的种类与当前运动状态
// MovementSystem 依据 Kind 分派种类专属逻辑,依据 State 决定阶段
type BehaviorComponent struct {
	Kind        types.EntityKind // 实体种类标签
	State       MoveState        // 当前运动状态
	SpawnedTick uint64           // 创建时刻(世界tick),用于寿命统计
}
