package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/types"
)

// ErrResourceUnavailable 渲染协作方无法解析实体的视觉资源
// 没有视觉表现游戏无法进行,这个错误在启动阶段上抛并终止会话,
// 不重试
var ErrResourceUnavailable = errors.New("visual resource unavailable")

// artSize 程序生成贴图的边长(像素),绘制时再拉伸到包围盒尺寸
const artSize = 32

// starPalette 星星的五种颜色,变体编号对颜色数取模索引
var starPalette = []color.RGBA{
	{255, 255, 255, 255}, // 白
	{255, 230, 120, 255}, // 黄
	{255, 160, 60, 255},  // 橙
	{255, 80, 80, 255},   // 红
	{120, 160, 255, 255}, // 蓝
}

// ResourceManager 资源管理器
//
// 本仓库没有美术资产,全部贴图按种类和变体程序生成:同一
// (种类, 变体) 的像素内容完全确定。生成的 ebiten 贴图进缓存,
// 每种组合只转换一次。
type ResourceManager struct {
	entities   *config.EntitiesConfig
	imageCache map[string]*ebiten.Image
}

// NewResourceManager 创建资源管理器
//
// 参数:
//   - entities: 实体配置,决定每个种类的变体数量
//
// 返回:
//   - *ResourceManager: 管理器实例
func NewResourceManager(entities *config.EntitiesConfig) *ResourceManager {
	return &ResourceManager{
		entities:   entities,
		imageCache: make(map[string]*ebiten.Image),
	}
}

// variantCount 返回种类的变体数量,未配置视为 0
func (rm *ResourceManager) variantCount(kind types.EntityKind) int {
	if rm.entities == nil {
		return 0
	}
	t, ok := rm.entities.Tuning(kind)
	if !ok {
		return 0
	}
	if t.Variants < 1 {
		return 1
	}
	return t.Variants
}

// Verify 检查每个配置种类的每个变体都能生成贴图
// 启动阶段调用一次;任何组合失败都返回 ErrResourceUnavailable,
// 调用方应终止会话
func (rm *ResourceManager) Verify() error {
	if rm.entities == nil {
		return fmt.Errorf("no entities config: %w", ErrResourceUnavailable)
	}
	for name := range rm.entities.Entities {
		kind := types.KindFromString(name)
		for v := 0; v < rm.variantCount(kind); v++ {
			if _, err := RenderArt(kind, v, rm.variantCount(kind)); err != nil {
				return fmt.Errorf("verify %s variant %d: %w", kind, v, err)
			}
		}
	}
	return nil
}

// EntityImage 按种类和变体返回贴图(实现 systems.ImageSource)
func (rm *ResourceManager) EntityImage(kind types.EntityKind, variant int) (*ebiten.Image, error) {
	key := fmt.Sprintf("%s/%d", kind, variant)
	if img, ok := rm.imageCache[key]; ok {
		return img, nil
	}

	count := rm.variantCount(kind)
	art, err := RenderArt(kind, variant, count)
	if err != nil {
		return nil, err
	}

	img := ebiten.NewImageFromImage(art)
	rm.imageCache[key] = img
	return img, nil
}

// RenderArt 程序生成一张占位贴图
// 纯函数:同一 (种类, 变体) 的像素内容完全确定。变体编号越界或
// 种类未知时返回 ErrResourceUnavailable
func RenderArt(kind types.EntityKind, variant, variantCount int) (*image.RGBA, error) {
	if variant < 0 || (variantCount > 0 && variant >= variantCount) {
		return nil, fmt.Errorf("kind %s has no variant %d: %w", kind, variant, ErrResourceUnavailable)
	}

	img := image.NewRGBA(image.Rect(0, 0, artSize, artSize))
	switch kind {
	case types.KindStar:
		// 小尺寸档画小圆,大尺寸档画大圆,颜色按调色板取
		c := starPalette[variant%len(starPalette)]
		r := artSize / 6
		if variant >= len(starPalette) {
			r = artSize / 4
		}
		fillCircle(img, artSize/2, artSize/2, r, c)
	case types.KindNote:
		c := variantTint(color.RGBA{120, 220, 255, 255}, variant)
		fillCircle(img, artSize/3, artSize*2/3, artSize/5, c)
		fillRect(img, artSize/3+artSize/5-2, artSize/6, 3, artSize/2, c)
	case types.KindBrokenNote:
		c := variantTint(color.RGBA{130, 130, 170, 255}, variant)
		fillCircle(img, artSize/3, artSize*2/3, artSize/5, c)
		fillRect(img, artSize/3+artSize/5-2, artSize/4, 3, artSize/4, c)
	case types.KindLetter:
		c := variantTint(color.RGBA{240, 200, 90, 255}, variant)
		fillRect(img, 4, 4, artSize-8, artSize-8, c)
		fillRect(img, 9, 9, artSize-18, artSize-18, color.RGBA{0, 0, 0, 255})
	case types.KindBlackHole:
		drawRing(img, artSize/2, artSize/2, artSize/2-2, artSize/2-7, color.RGBA{150, 90, 220, 255})
	case types.KindDestroyedShip:
		c := color.RGBA{180, 80, 60, 255}
		fillRect(img, artSize/2-2, 4, 4, artSize-8, c)
		fillRect(img, 4, artSize/2-2, artSize-8, 4, c)
	case types.KindStrafer:
		c := variantTint(color.RGBA{90, 220, 120, 255}, variant)
		fillRect(img, 3, artSize/3, artSize-6, artSize/3, c)
	case types.KindSpinner:
		c := variantTint(color.RGBA{220, 120, 220, 255}, variant)
		fillRect(img, artSize/4, artSize/4, artSize/2, artSize/2, c)
	case types.KindTracker:
		c := variantTint(color.RGBA{240, 90, 90, 255}, variant)
		fillCircle(img, artSize/2, artSize/2, artSize/3, c)
	default:
		return nil, fmt.Errorf("no art for kind %s: %w", kind, ErrResourceUnavailable)
	}
	return img, nil
}

// variantTint 按变体编号给基础色做确定性的亮度偏移
func variantTint(base color.RGBA, variant int) color.RGBA {
	shift := uint8((variant * 17) % 60)
	return color.RGBA{
		R: clampChannel(int(base.R) - int(shift)),
		G: clampChannel(int(base.G) - int(shift)),
		B: clampChannel(int(base.B) - int(shift)),
		A: base.A,
	}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if image.Pt(xx, yy).In(img.Rect) {
				img.SetRGBA(xx, yy, c)
			}
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for yy := cy - r; yy <= cy+r; yy++ {
		for xx := cx - r; xx <= cx+r; xx++ {
			dx, dy := xx-cx, yy-cy
			if dx*dx+dy*dy <= r*r && image.Pt(xx, yy).In(img.Rect) {
				img.SetRGBA(xx, yy, c)
			}
		}
	}
}

func drawRing(img *image.RGBA, cx, cy, outer, inner int, c color.RGBA) {
	for yy := cy - outer; yy <= cy+outer; yy++ {
		for xx := cx - outer; xx <= cx+outer; xx++ {
			dx, dy := xx-cx, yy-cy
			d := dx*dx + dy*dy
			if d <= outer*outer && d >= inner*inner && image.Pt(xx, yy).In(img.Rect) {
				img.SetRGBA(xx, yy, c)
			}
		}
	}
}
