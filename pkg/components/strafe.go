package components

// StrafeComponent 描述横移巡逻行为(横移炮灰的活跃阶段)
// 实体以 Speed 沿水平方向往返移动,触到游戏区左右边界时贴边反向;
// 碰撞响应也会翻转 Direction
type StrafeComponent struct {
	Direction float64 // 巡逻方向符号,+1 向右 / -1 向左
	Speed     float64 // 巡逻速度(像素/tick)
	Row       int     // 编队行号,决定进场停止线
}

// Flip 翻转巡逻方向
func (s *StrafeComponent) Flip() {
	s.Direction *= -1
}

// SeekComponent 描述追踪行为(追踪炮灰的活跃阶段)
// 实体保持恒定速率,朝向以每 tick 至多 TurnRate 度向目标方位收敛
type SeekComponent struct {
	Speed    float64 // 移动速率(像素/tick)
	TurnRate float64 // 每tick最大转向量(度)
	Heading  float64 // 当前朝向(度,0=向右,逆时针为正)
}
