package types

// Quadrant 表示屏幕的四个象限（以屏幕中心为原点）
// 用于黑洞的出生位置与漂移方向、旋转炮灰的左右侧判定
type Quadrant int

const (
	// QuadTopLeft 左上象限
	QuadTopLeft Quadrant = iota
	// QuadTopRight 右上象限
	QuadTopRight
	// QuadBottomRight 右下象限
	QuadBottomRight
	// QuadBottomLeft 左下象限
	QuadBottomLeft
)

// quadrantNames 象限的日志显示名
var quadrantNames = map[Quadrant]string{
	QuadTopLeft:     "top_left",
	QuadTopRight:    "top_right",
	QuadBottomRight: "bottom_right",
	QuadBottomLeft:  "bottom_left",
}

// String 返回象限的字符串表示
func (q Quadrant) String() string {
	if s, ok := quadrantNames[q]; ok {
		return s
	}
	return "unknown"
}

// DriftSign 返回从该象限出生的实体向屏幕中心漂移的单位方向符号
// 左上 -> (+1,+1)，右上 -> (-1,+1)，右下 -> (-1,-1)，左下 -> (+1,-1)
func (q Quadrant) DriftSign() (dx, dy float64) {
	switch q {
	case QuadTopLeft:
		return 1, 1
	case QuadTopRight:
		return -1, 1
	case QuadBottomRight:
		return -1, -1
	case QuadBottomLeft:
		return 1, -1
	default:
		return 0, 0
	}
}

// IsLeft 判断该象限是否位于屏幕左半侧
func (q Quadrant) IsLeft() bool {
	return q == QuadTopLeft || q == QuadBottomLeft
}
