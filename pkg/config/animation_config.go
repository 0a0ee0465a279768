package config

import (
	"fmt"

	"github.com/tonegarden/starsong/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// TwinkleConfig 星星闪烁动画参数
type TwinkleConfig struct {
	Palette      []float64 `yaml:"palette"`      // 透明度关键帧序列
	IncrementMin float64   `yaml:"incrementMin"` // 每颗星游标增量的随机下界
	IncrementMax float64   `yaml:"incrementMax"` // 每颗星游标增量的随机上界
}

// FadeConfig 字母淡出动画参数
type FadeConfig struct {
	Palette   []float64 `yaml:"palette"`   // 透明度关键帧序列(由大到小)
	Increment float64   `yaml:"increment"` // 游标每tick增量
}

// GuidedFlightConfig 引导飞行动画参数
// 位置、透明度、缩放三条时间线共用 pathPoints 个关键帧
type GuidedFlightConfig struct {
	PathPoints   int       `yaml:"pathPoints"`   // 出生点到汇点之间的路径关键点数量
	AlphaBounds  []float64 `yaml:"alphaBounds"`  // 透明度渐变区间 [min, max],播放时反转为由大到小
	ScaleBounds  []float64 `yaml:"scaleBounds"`  // 缩放渐变区间 [min, max],播放时反转为由大到小
	RotationRate float64   `yaml:"rotationRate"` // 飞行中的固定旋转速率(度/tick)
}

// ShiftConfig 黑洞菱形晃动参数
type ShiftConfig struct {
	Offsets   [][]float64 `yaml:"offsets"`   // 位移向量关键帧,每项 [dx, dy]
	Increment float64     `yaml:"increment"` // 游标每tick增量
}

// DriftConfig 破碎音符漂移参数
// 软边界在屏幕外侧: 左/上边界超出屏幕 topLeftMargin 像素,
// 右/下边界超出 bottomRightMargin 像素
type DriftConfig struct {
	JitterInterval    int     `yaml:"jitterInterval"`    // 侧向量重掷间隔(tick)
	TopLeftMargin     float64 `yaml:"topLeftMargin"`     // 左/上软边界超出屏幕的距离
	BottomRightMargin float64 `yaml:"bottomRightMargin"` // 右/下软边界超出屏幕的距离
}

// MenuCursorConfig 菜单光标高亮动画参数
type MenuCursorConfig struct {
	Palette   []float64 `yaml:"palette"`   // 高亮透明度关键帧序列
	Increment float64   `yaml:"increment"` // 游标每tick增量
}

// AnimationConfig 动画参数配置文件结构
type AnimationConfig struct {
	StarTwinkle  TwinkleConfig      `yaml:"starTwinkle"`
	LetterFade   FadeConfig         `yaml:"letterFade"`
	GuidedFlight GuidedFlightConfig `yaml:"guidedFlight"`
	BlackHole    ShiftConfig        `yaml:"blackHoleShift"`
	BrokenNote   DriftConfig        `yaml:"brokenNoteDrift"`
	MenuCursor   MenuCursorConfig   `yaml:"menuCursor"`
}

// LoadAnimation 从 YAML 文件加载动画参数配置
func LoadAnimation(filepath string) (*AnimationConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read animation config file %s: %w", filepath, err)
	}

	var config AnimationConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse animation config YAML from %s: %w", filepath, err)
	}

	if err := validateAnimation(&config); err != nil {
		return nil, fmt.Errorf("invalid animation config in %s: %w", filepath, err)
	}

	return &config, nil
}

// validateAnimation 验证动画参数配置的合法性
// 所有关键帧序列至少要有2帧,增量必须为正,透明度必须落在 [0, 255]
func validateAnimation(config *AnimationConfig) error {
	if err := validatePalette("starTwinkle", config.StarTwinkle.Palette); err != nil {
		return err
	}
	if config.StarTwinkle.IncrementMin <= 0 || config.StarTwinkle.IncrementMin > config.StarTwinkle.IncrementMax {
		return fmt.Errorf("starTwinkle increments must satisfy 0 < min <= max, got [%f, %f]",
			config.StarTwinkle.IncrementMin, config.StarTwinkle.IncrementMax)
	}

	if err := validatePalette("letterFade", config.LetterFade.Palette); err != nil {
		return err
	}
	if config.LetterFade.Increment <= 0 {
		return fmt.Errorf("letterFade increment must be positive, got %f", config.LetterFade.Increment)
	}

	if config.GuidedFlight.PathPoints < 2 {
		return fmt.Errorf("guidedFlight needs at least 2 path points, got %d", config.GuidedFlight.PathPoints)
	}
	if len(config.GuidedFlight.AlphaBounds) != 2 || len(config.GuidedFlight.ScaleBounds) != 2 {
		return fmt.Errorf("guidedFlight alphaBounds and scaleBounds must each have exactly 2 values")
	}
	if config.GuidedFlight.ScaleBounds[0] <= 0 {
		return fmt.Errorf("guidedFlight scale lower bound must be positive, got %f", config.GuidedFlight.ScaleBounds[0])
	}

	if len(config.BlackHole.Offsets) < 2 {
		return fmt.Errorf("blackHoleShift needs at least 2 offsets, got %d", len(config.BlackHole.Offsets))
	}
	for i, off := range config.BlackHole.Offsets {
		if len(off) != 2 {
			return fmt.Errorf("blackHoleShift offset %d must have exactly 2 values, got %d", i, len(off))
		}
	}
	if config.BlackHole.Increment <= 0 {
		return fmt.Errorf("blackHoleShift increment must be positive, got %f", config.BlackHole.Increment)
	}

	if config.BrokenNote.JitterInterval < 1 {
		return fmt.Errorf("brokenNoteDrift jitterInterval must be at least 1, got %d", config.BrokenNote.JitterInterval)
	}

	if err := validatePalette("menuCursor", config.MenuCursor.Palette); err != nil {
		return err
	}
	if config.MenuCursor.Increment <= 0 {
		return fmt.Errorf("menuCursor increment must be positive, got %f", config.MenuCursor.Increment)
	}

	return nil
}

// validatePalette 校验透明度关键帧序列
func validatePalette(name string, palette []float64) error {
	if len(palette) < 2 {
		return fmt.Errorf("%s palette needs at least 2 keyframes, got %d", name, len(palette))
	}
	for i, v := range palette {
		if v < 0 || v > 255 {
			return fmt.Errorf("%s palette value %d out of [0, 255]: %f", name, i, v)
		}
	}
	return nil
}
