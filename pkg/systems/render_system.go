package systems

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tonegarden/starsong/pkg/types"
)

// ImageSource 按种类和变体提供贴图
// 由资源管理器实现,渲染系统不关心贴图来自文件还是程序生成
type ImageSource interface {
	EntityImage(kind types.EntityKind, variant int) (*ebiten.Image, error)
}

// RenderSystem 精灵渲染
//
// 输入是生命周期管理器枚举好的绘制快照,已按 (图层, 句柄) 升序,
// 渲染系统只负责逐项画:贴图拉伸到包围盒尺寸,绕中心旋转,再按
// 实体透明度混合。
type RenderSystem struct {
	images ImageSource
	warned map[types.EntityKind]bool // 缺贴图只告警一次,避免刷屏
}

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - images: 贴图来源
//
// 返回:
//   - *RenderSystem: 渲染系统实例
func NewRenderSystem(images ImageSource) *RenderSystem {
	return &RenderSystem{
		images: images,
		warned: make(map[types.EntityKind]bool),
	}
}

// Draw 按序绘制一帧快照
// 参数:
//   - screen: 绘制目标屏幕
//   - items: 绘制快照,调用方保证已按图层排序
func (rs *RenderSystem) Draw(screen *ebiten.Image, items []types.RenderItem) {
	for i := range items {
		rs.drawItem(screen, &items[i])
	}
}

func (rs *RenderSystem) drawItem(screen *ebiten.Image, item *types.RenderItem) {
	img, err := rs.images.EntityImage(item.Kind, item.Variant)
	if err != nil || img == nil {
		if !rs.warned[item.Kind] {
			log.Printf("[RenderSystem] 警告: 种类 %s 缺少贴图: %v", item.Kind, err)
			rs.warned[item.Kind] = true
		}
		return
	}
	if item.Width <= 0 || item.Height <= 0 || item.Alpha <= 0 {
		return
	}

	bounds := img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	if w == 0 || h == 0 {
		return
	}

	scale := item.Scale
	if scale <= 0 {
		scale = 1
	}

	op := &ebiten.DrawImageOptions{}
	// 以中心为轴:先居中,再缩放到包围盒尺寸,再旋转,最后平移到位
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(item.Width/w*scale, item.Height/h*scale)
	if item.Angle != 0 {
		op.GeoM.Rotate(item.Angle * math.Pi / 180)
	}
	op.GeoM.Translate(item.X+item.Width/2, item.Y+item.Height/2)

	alpha := item.Alpha / 255
	if alpha > 1 {
		alpha = 1
	}
	op.ColorScale.ScaleAlpha(float32(alpha))

	screen.DrawImage(img, op)
}
