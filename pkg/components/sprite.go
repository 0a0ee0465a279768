package components

// SpriteComponent 存储实体的视觉表现引用
// 核心不做任何像素操作,只携带变体索引交给渲染协作方解析
type SpriteComponent struct {
	Variant   int // 同一种类下的图像变体下标(如星星的颜色/尺寸组合)
	DrawLayer int // 绘制层级,数值小的先画
}
