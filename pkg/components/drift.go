package components

import (
	"github.com/tonegarden/starsong/pkg/timeline"
	"github.com/tonegarden/starsong/pkg/types"
)

// DriftComponent 描述软边界内的慢速漂移(破碎音符)
//
// 行进轴上每 tick 移动一个单位,侧向量每隔 JitterInterval tick 重掷
// 一次,其余 tick 沿用上一次的值。触到软边界时贴边、调头并翻转旋转
// 方向。PrevX/PrevY 同时保留,因为调头可能切换行进轴,旧轴的残留
// 侧向量会被新朝向继续使用,直到下一次重掷
type DriftComponent struct {
	Heading        types.Heading // 当前行进方向
	JitterInterval int           // 侧向量重掷间隔(tick)
	FrameCounter   int           // 漂移帧计数
	PrevX          float64       // 上一tick实际应用的X位移
	PrevY          float64       // 上一tick实际应用的Y位移
}

// ShiftComponent 描述按固定关键点循环的整体位移(黑洞的菱形晃动)
// 循环游标在四个对角位移向量上缓慢推进,产生悬浮打转的视觉效果
type ShiftComponent struct {
	Offsets []timeline.Point // 位移向量关键帧
	Cursor  timeline.Cursor  // 循环游标,小数步进
}

// FreeFlightComponent 标记实体做自由飞行(游戏内音符、字母)
// 速度向量由 VelocityComponent 携带;此组件记录行进方向标签,
// 供字母的碰撞响应和越界判定使用
type FreeFlightComponent struct {
	Heading types.Heading // 行进方向标签
}
