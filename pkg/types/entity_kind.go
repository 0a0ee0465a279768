// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// EntityKind 定义实体的种类
type EntityKind int

const (
	// KindUnknown 未知实体种类
	KindUnknown EntityKind = iota

	// 背景装饰与收集品
	KindStar          // 背景星星（闪烁）
	KindNote          // 音符（游戏内收集品 / 主菜单装饰）
	KindBrokenNote    // 破碎音符（死亡菜单装饰）
	KindLetter        // 字母（特殊事件实体，参与动量碰撞）
	KindBlackHole     // 黑洞（主菜单，音符的吸收点）
	KindDestroyedShip // 被击毁的飞船（死亡菜单装饰）

	// 敌人
	KindStrafer // 横移炮灰：到达编队行后左右巡逻
	KindSpinner // 旋转炮灰：到达停止点后原地旋转
	KindTracker // 追踪炮灰：跟随目标移动
)

// kindStringMap 实体种类到配置字符串的映射
var kindStringMap = map[EntityKind]string{
	KindStar:          "star",
	KindNote:          "note",
	KindBrokenNote:    "broken_note",
	KindLetter:        "letter",
	KindBlackHole:     "black_hole",
	KindDestroyedShip: "destroyed_ship",
	KindStrafer:       "strafer",
	KindSpinner:       "spinner",
	KindTracker:       "tracker",
}

// stringKindMap 配置字符串到实体种类的反向映射
var stringKindMap map[string]EntityKind

func init() {
	stringKindMap = make(map[string]EntityKind, len(kindStringMap))
	for k, s := range kindStringMap {
		stringKindMap[s] = k
	}
}

// String 返回实体种类的配置字符串表示（用于配置文件匹配）
func (k EntityKind) String() string {
	if s, ok := kindStringMap[k]; ok {
		return s
	}
	return "unknown"
}

// KindFromString 将配置字符串转换为 EntityKind
func KindFromString(s string) EntityKind {
	if k, ok := stringKindMap[s]; ok {
		return k
	}
	return KindUnknown
}

// IsEnemy 判断该种类是否为敌人（参与矩形碰撞组）
func (k EntityKind) IsEnemy() bool {
	switch k {
	case KindStrafer, KindSpinner, KindTracker:
		return true
	default:
		return false
	}
}

// IsDecoration 判断该种类是否为装饰类实体
func (k EntityKind) IsDecoration() bool {
	switch k {
	case KindStar, KindNote, KindBrokenNote, KindLetter, KindBlackHole, KindDestroyedShip:
		return true
	default:
		return false
	}
}
