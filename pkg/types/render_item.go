package types

// RenderItem 一帧内单个实体的绘制快照
// 由生命周期管理器按 (图层, 句柄) 升序枚举,渲染端按序绘制即可
// 得到稳定的遮挡关系
type RenderItem struct {
	Handle  uint64     // 实体句柄,同层内的平局裁决
	Kind    EntityKind // 实体种类,决定贴图族
	Variant int        // 贴图族内的变体编号
	Layer   int        // 绘制图层,小的先画
	X       float64    // 包围盒左上角 X
	Y       float64    // 包围盒左上角 Y
	Width   float64    // 包围盒宽
	Height  float64    // 包围盒高
	Angle   float64    // 旋转角(度)
	Scale   float64    // 缩放系数
	Alpha   float64    // 透明度 [0, 255]
}
