package config

import (
	"fmt"

	"github.com/tonegarden/starsong/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// PlayfieldConfig 游戏区尺寸
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`  // 游戏区宽度(像素)
	Height float64 `yaml:"height"` // 游戏区高度(像素)
}

// SpawnBandConfig 屏幕外出生带:实体在距屏幕边缘 [near, far] 的
// 随机位置出生
type SpawnBandConfig struct {
	Near float64 `yaml:"near"` // 出生带内缘到屏幕边缘的距离(像素)
	Far  float64 `yaml:"far"`  // 出生带外缘到屏幕边缘的距离(像素)
}

// FormationConfig 敌人编队行布局
// 横移炮灰的停止线 = firstRowY + 行号 * rowSpacing
type FormationConfig struct {
	FirstRowY  float64 `yaml:"firstRowY"`  // 第一行停止线的Y坐标
	RowSpacing float64 `yaml:"rowSpacing"` // 相邻行的间距(像素)
	Rows       int     `yaml:"rows"`       // 编队行数
}

// SpinnerSpawnConfig 旋转炮灰的出生参数
type SpinnerSpawnConfig struct {
	ScreenBuffer    float64 `yaml:"screenBuffer"`    // 出生Y坐标离上下边缘的最小距离
	OffscreenAmount float64 `yaml:"offscreenAmount"` // 出生点在屏幕外的距离
	StopOffsetMin   float64 `yaml:"stopOffsetMin"`   // 随机停止线离出生点的最小推进量
	StopOffsetMax   float64 `yaml:"stopOffsetMax"`   // 随机停止线离出生点的最大推进量
}

// StraferSpawnConfig 横移炮灰的出生参数
type StraferSpawnConfig struct {
	EdgeMarginX float64 `yaml:"edgeMarginX"` // 出生X坐标离左右边缘的最小距离
	SpawnY      float64 `yaml:"spawnY"`      // 出生中心Y坐标(屏幕上方为负)
}

// SpecialEventConfig 字母场特殊事件参数
type SpecialEventConfig struct {
	NoteThreshold int `yaml:"noteThreshold"` // 每收集多少音符触发一次
	LetterCount   int `yaml:"letterCount"`   // 单次事件生成的字母数量
}

// SinkConfig 汇点位置,相对屏幕中心的偏移
// 主菜单的黑洞放在汇点上,引导飞行的音符向它收敛
type SinkConfig struct {
	OffsetX float64 `yaml:"offsetX"` // 相对屏幕中心的X偏移
	OffsetY float64 `yaml:"offsetY"` // 相对屏幕中心的Y偏移
}

// GameConfig 游戏全局配置文件结构
type GameConfig struct {
	Playfield    PlayfieldConfig    `yaml:"playfield"`
	KillMargin   float64            `yaml:"killMargin"`   // 扩展击杀边界离屏幕边缘的距离
	ScrollSpeed  float64            `yaml:"scrollSpeed"`  // 背景向下滚动速度(像素/tick)
	SpawnBand    SpawnBandConfig    `yaml:"spawnBand"`
	Sink         SinkConfig         `yaml:"sink"`
	Formation    FormationConfig    `yaml:"formation"`
	Spinner      SpinnerSpawnConfig `yaml:"spinner"`
	Strafer      StraferSpawnConfig `yaml:"strafer"`
	SpecialEvent SpecialEventConfig `yaml:"specialEvent"`
}

// LoadGame 从 YAML 文件加载游戏全局配置
func LoadGame(filepath string) (*GameConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	var config GameConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML from %s: %w", filepath, err)
	}

	if err := validateGame(&config); err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", filepath, err)
	}

	return &config, nil
}

// validateGame 验证游戏全局配置的合法性
func validateGame(config *GameConfig) error {
	if config.Playfield.Width <= 0 || config.Playfield.Height <= 0 {
		return fmt.Errorf("playfield dimensions must be positive, got %fx%f", config.Playfield.Width, config.Playfield.Height)
	}

	if config.KillMargin < 0 {
		return fmt.Errorf("killMargin cannot be negative, got %f", config.KillMargin)
	}

	// 击杀边界必须包住出生带,否则实体一出生就会被清除
	if config.KillMargin <= config.SpawnBand.Far {
		return fmt.Errorf("killMargin %f must exceed spawn band far edge %f", config.KillMargin, config.SpawnBand.Far)
	}

	if config.SpawnBand.Near < 0 || config.SpawnBand.Near > config.SpawnBand.Far {
		return fmt.Errorf("spawn band must satisfy 0 <= near <= far, got [%f, %f]", config.SpawnBand.Near, config.SpawnBand.Far)
	}

	if config.Formation.Rows < 1 {
		return fmt.Errorf("formation needs at least 1 row, got %d", config.Formation.Rows)
	}

	if config.Formation.FirstRowY <= 0 || config.Formation.RowSpacing <= 0 {
		return fmt.Errorf("formation layout must be positive, got firstRowY=%f rowSpacing=%f", config.Formation.FirstRowY, config.Formation.RowSpacing)
	}

	if config.Spinner.StopOffsetMin > config.Spinner.StopOffsetMax {
		return fmt.Errorf("spinner stop offset min %f exceeds max %f", config.Spinner.StopOffsetMin, config.Spinner.StopOffsetMax)
	}

	if config.SpecialEvent.NoteThreshold < 1 {
		return fmt.Errorf("specialEvent noteThreshold must be at least 1, got %d", config.SpecialEvent.NoteThreshold)
	}

	return nil
}

// RowStopLine 返回指定编队行的停止线Y坐标
// 行号超出范围时钳制到合法区间
func (c *GameConfig) RowStopLine(row int) float64 {
	if row < 0 {
		row = 0
	}
	if row >= c.Formation.Rows {
		row = c.Formation.Rows - 1
	}
	return c.Formation.FirstRowY + float64(row)*c.Formation.RowSpacing
}

// SinkPoint 返回汇点的屏幕坐标
func (c *GameConfig) SinkPoint() (x, y float64) {
	return c.Playfield.Width/2 + c.Sink.OffsetX, c.Playfield.Height/2 + c.Sink.OffsetY
}
