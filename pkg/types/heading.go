package types

// Heading 表示四个正交方向
// 既用作实体的出生边(从哪侧进入屏幕),也用作漂移实体的行进方向标签
type Heading int

const (
	// HeadingLeft 向左 / 屏幕左侧
	HeadingLeft Heading = iota
	// HeadingTop 向上 / 屏幕上侧
	HeadingTop
	// HeadingRight 向右 / 屏幕右侧
	HeadingRight
	// HeadingBottom 向下 / 屏幕下侧
	HeadingBottom
)

// headingNames 方向的配置字符串
var headingNames = map[Heading]string{
	HeadingLeft:   "left",
	HeadingTop:    "top",
	HeadingRight:  "right",
	HeadingBottom: "bottom",
}

// headingFromName 配置字符串到方向的反向映射
var headingFromName map[string]Heading

func init() {
	headingFromName = make(map[string]Heading, len(headingNames))
	for h, s := range headingNames {
		headingFromName[s] = h
	}
}

// String 返回方向的字符串表示
func (h Heading) String() string {
	if s, ok := headingNames[h]; ok {
		return s
	}
	return "unknown"
}

// HeadingFromString 将配置字符串转换为 Heading
// 未知字符串返回 HeadingLeft 和 false
func HeadingFromString(s string) (Heading, bool) {
	h, ok := headingFromName[s]
	return h, ok
}

// Opposite 返回相反方向
// 从左侧出生的实体朝右行进,碰到软边界的实体调头
func (h Heading) Opposite() Heading {
	switch h {
	case HeadingLeft:
		return HeadingRight
	case HeadingTop:
		return HeadingBottom
	case HeadingRight:
		return HeadingLeft
	default:
		return HeadingTop
	}
}

// IsHorizontal 判断方向是否沿水平轴
func (h Heading) IsHorizontal() bool {
	return h == HeadingLeft || h == HeadingRight
}
