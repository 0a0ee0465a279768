package components

import "github.com/tonegarden/starsong/pkg/types"

// ApproachAxis 定义进场移动的轴向
type ApproachAxis int

const (
	// ApproachVertical 垂直进场:从屏幕上方落入,底边到达停止线后转入活跃
	ApproachVertical ApproachAxis = iota
	// ApproachHorizontal 水平进场:从屏幕左/右侧切入,前缘越过停止线后转入活跃
	ApproachHorizontal
)

// ApproachComponent 描述 Spawning 阶段的进场运动
//
// 停止线语义依赖轴向与象限:
//   - 垂直进场: 底边 >= StopLine 视为到位
//   - 水平左侧进场: 右边缘 >= StopLine 视为到位(前进方向为正)
//   - 水平右侧进场: 左边缘 <= StopLine 视为到位(前进方向为负)
//
// HasStopLine 为 false 时尝试状态转移是配置错误,MovementSystem
// 会同步返回 ErrMissingStopLine
type ApproachComponent struct {
	Axis        ApproachAxis   // 进场轴向
	Speed       float64        // 进场速度(像素/tick)
	StopLine    float64        // 停止线坐标
	HasStopLine bool           // 停止线是否已配置
	Quadrant    types.Quadrant // 出生象限,决定水平进场的比较方向

	// ArrivalSpinRate 非零时,到位转移会把该值赋给 SpinComponent.Rate
	// (旋转炮灰进场期间不自转,到位即开始)
	ArrivalSpinRate float64
}

// Advancing 返回进场方向上的有符号速度
func (a *ApproachComponent) Advancing() (dx, dy float64) {
	if a.Axis == ApproachVertical {
		return 0, a.Speed
	}
	if a.Quadrant.IsLeft() {
		return a.Speed, 0
	}
	return -a.Speed, 0
}

// Arrived 判断包围盒是否已越过停止线
func (a *ApproachComponent) Arrived(pos *PositionComponent) bool {
	if a.Axis == ApproachVertical {
		return pos.Bottom() >= a.StopLine
	}
	if a.Quadrant.IsLeft() {
		return pos.Right() >= a.StopLine
	}
	return pos.Left() <= a.StopLine
}
