package components

import "github.com/tonegarden/starsong/pkg/timeline"

// TwinkleComponent 驱动星星的闪烁动画
// 循环游标在固定的透明度关键帧上推进,每颗星的增量不同所以闪烁
// 节奏彼此错开
type TwinkleComponent struct {
	Palette []float64       // 透明度关键帧序列
	Cursor  timeline.Cursor // 循环游标
}

// GuidedFlightComponent 驱动菜单音符飞向汇点的引导飞行
// 位置路径、透明度渐变、缩放渐变共享同一个一次性游标,三者逐帧同步;
// 游标到达最后一帧时实体被击杀(音符"落入"汇点)
type GuidedFlightComponent struct {
	Path        []timeline.Point // 从出生点到汇点的等距路径
	AlphaValues []float64        // 透明度关键帧(由大到小)
	ScaleValues []float64        // 缩放关键帧(由大到小)
	Cursor      timeline.Cursor  // 一次性游标,整数步进
}

// FadeOutComponent 驱动字母的淡出击杀动画
// 由场景在特殊事件结束时启用;一次性游标播完后实体被击杀
type FadeOutComponent struct {
	Enabled     bool            // 淡出是否已启用
	AlphaValues []float64       // 透明度关键帧(由大到小)
	Cursor      timeline.Cursor // 一次性游标,小数步进
}
