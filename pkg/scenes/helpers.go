package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tonegarden/starsong/pkg/menu"
)

// whitePixel 高亮条和飞船用的 1x1 白色贴图,首次使用时创建
var whitePixel *ebiten.Image

func whiteFill() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// drawMenuCursor 绘制菜单条目文本和当前高亮条
// 高亮条是一块按光标几何拉伸的半透明白色,透明度由高亮动画给出
func drawMenuCursor(screen *ebiten.Image, cursor *menu.Cursor) {
	highlight := cursor.Highlight()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(highlight.Width, highlight.Height)
	op.GeoM.Translate(highlight.X, highlight.Y)
	op.ColorScale.ScaleAlpha(float32(cursor.HighlightAlpha() / 255 * 0.5))
	screen.DrawImage(whiteFill(), op)

	for _, entry := range cursor.Entries() {
		ebitenutil.DebugPrintAt(screen, entry.Label, int(entry.Bounds.X)+8, int(entry.Bounds.CenterY())-8)
	}
}

// cursorDelta 把本tick的按键翻译成光标位移: 上 -1, 下 +1, 无 0
func cursorDelta() int {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW):
		return -1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS):
		return 1
	default:
		return 0
	}
}

// confirmPressed 报告本tick是否按下了确认键
func confirmPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
}
