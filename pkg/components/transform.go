package components

// PositionComponent 存储实体的轴对齐包围盒
// X/Y 是包围盒左上角的世界坐标,所有运动规则都以包围盒边缘表述
// (例如"底边到达停止线"、"右边缘越过巡逻边界")
type PositionComponent struct {
	X      float64 // 左上角X坐标(像素)
	Y      float64 // 左上角Y坐标(像素)
	Width  float64 // 包围盒宽度(像素)
	Height float64 // 包围盒高度(像素)
}

// Left 返回包围盒左边缘坐标
func (p *PositionComponent) Left() float64 { return p.X }

// Right 返回包围盒右边缘坐标
func (p *PositionComponent) Right() float64 { return p.X + p.Width }

// Top 返回包围盒上边缘坐标
func (p *PositionComponent) Top() float64 { return p.Y }

// Bottom 返回包围盒下边缘坐标
func (p *PositionComponent) Bottom() float64 { return p.Y + p.Height }

// CenterX 返回包围盒水平中心坐标
func (p *PositionComponent) CenterX() float64 { return p.X + p.Width/2 }

// CenterY 返回包围盒垂直中心坐标
func (p *PositionComponent) CenterY() float64 { return p.Y + p.Height/2 }

// SetCenter 按中心点放置包围盒
func (p *PositionComponent) SetCenter(cx, cy float64) {
	p.X = cx - p.Width/2
	p.Y = cy - p.Height/2
}

// Overlaps 检测两个包围盒是否相交(矩形碰撞测试,贴边不算)
func (p *PositionComponent) Overlaps(other *PositionComponent) bool {
	return p.Left() < other.Right() && p.Right() > other.Left() &&
		p.Top() < other.Bottom() && p.Bottom() > other.Top()
}

// VelocityComponent 存储实体的速度向量
type VelocityComponent struct {
	VX float64 // 水平速度(像素/tick),正值向右
	VY float64 // 垂直速度(像素/tick),正值向下
}

// SpinComponent 存储实体的旋转状态
type SpinComponent struct {
	Angle float64 // 当前角度(度)
	Rate  float64 // 角速度(度/tick),带符号
}

// ScaleComponent 存储实体的缩放系数
// 字母碰撞的动量传递把缩放当作质量使用
type ScaleComponent struct {
	Factor float64 // 缩放系数,恒大于0
}

// AlphaComponent 存储实体的不透明度
type AlphaComponent struct {
	Value float64 // 不透明度,始终被钳制在 [0, 255]
}

// Clamp 把不透明度钳回 [0, 255] 区间
func (a *AlphaComponent) Clamp() {
	if a.Value < 0 {
		a.Value = 0
	}
	if a.Value > 255 {
		a.Value = 255
	}
}
