package config

import (
	"fmt"

	"github.com/tonegarden/starsong/pkg/embedded"
	"github.com/tonegarden/starsong/pkg/types"
	"gopkg.in/yaml.v3"
)

// EntityTuning 单个实体种类的出生参数配置
// 所有字段都是生成工厂的可调输入,不在代码里硬编码
// 用不到的字段留零值即可(如装饰实体没有血量,星星没有巡逻速度)
type EntityTuning struct {
	PopulationOnLoad int       `yaml:"populationOnLoad"` // 场景加载时的初始数量
	BaseSize         []float64 `yaml:"baseSize"`         // 未缩放的包围盒尺寸 [宽, 高](像素)
	SpawnSpeed       float64   `yaml:"spawnSpeed"`       // 进场速度/自由飞行速度上限(像素/tick)
	StrafeSpeed      float64   `yaml:"strafeSpeed"`      // 巡逻速度(像素/tick)
	RotationAmount   float64   `yaml:"rotationAmount"`   // 旋转速率或其随机上限(度/tick)
	ScaleBounds      []float64 `yaml:"scaleBounds"`      // 缩放随机区间 [min, max]
	AlphaBounds      []float64 `yaml:"alphaBounds"`      // 不透明度随机区间 [min, max]
	Health           int       `yaml:"health"`           // 初始生命值(敌人专用)
	Score            int       `yaml:"score"`            // 击杀/收集得分
	SpawnSides       []string  `yaml:"spawnSides"`       // 允许的出生边集合
	Variants         int       `yaml:"variants"`         // 图像变体数量
	DrawLayer        int       `yaml:"drawLayer"`        // 绘制层级
	Damage           int       `yaml:"damage"`           // 接触伤害(字母专用)
	AttackCooldown   int       `yaml:"attackCooldown"`   // 攻击冷却(tick,敌人专用)
	TurnRate         float64   `yaml:"turnRate"`         // 每tick最大转向量(度,追踪炮灰专用)
}

// BaseWidth 返回未缩放的包围盒宽;未配置时返回 1
func (t *EntityTuning) BaseWidth() float64 {
	if len(t.BaseSize) == 2 {
		return t.BaseSize[0]
	}
	return 1
}

// BaseHeight 返回未缩放的包围盒高;未配置时返回 1
func (t *EntityTuning) BaseHeight() float64 {
	if len(t.BaseSize) == 2 {
		return t.BaseSize[1]
	}
	return 1
}

// ScaleMin 返回缩放区间下界;未配置时返回 1
func (t *EntityTuning) ScaleMin() float64 {
	if len(t.ScaleBounds) == 2 {
		return t.ScaleBounds[0]
	}
	return 1
}

// ScaleMax 返回缩放区间上界;未配置时返回 1
func (t *EntityTuning) ScaleMax() float64 {
	if len(t.ScaleBounds) == 2 {
		return t.ScaleBounds[1]
	}
	return 1
}

// AlphaMin 返回不透明度区间下界;未配置时返回 255
func (t *EntityTuning) AlphaMin() float64 {
	if len(t.AlphaBounds) == 2 {
		return t.AlphaBounds[0]
	}
	return 255
}

// AlphaMax 返回不透明度区间上界;未配置时返回 255
func (t *EntityTuning) AlphaMax() float64 {
	if len(t.AlphaBounds) == 2 {
		return t.AlphaBounds[1]
	}
	return 255
}

// EntitiesConfig 实体参数配置文件结构
type EntitiesConfig struct {
	Entities map[string]EntityTuning `yaml:"entities"` // 种类名到参数的映射
}

// requiredKinds 配置文件必须覆盖的实体种类
var requiredKinds = []types.EntityKind{
	types.KindStar,
	types.KindNote,
	types.KindBrokenNote,
	types.KindLetter,
	types.KindBlackHole,
	types.KindDestroyedShip,
	types.KindStrafer,
	types.KindSpinner,
	types.KindTracker,
}

// LoadEntities 从 YAML 文件加载实体参数配置
// 参数:
//
//	filepath - 配置文件路径("assets/" 前缀走嵌入资源)
//
// 返回:
//
//	*EntitiesConfig - 解析后的配置对象
//	error - 如果文件读取、解析或校验失败,返回错误信息
func LoadEntities(filepath string) (*EntitiesConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read entities file %s: %w", filepath, err)
	}

	var config EntitiesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse entities YAML from %s: %w", filepath, err)
	}

	if err := validateEntities(&config); err != nil {
		return nil, fmt.Errorf("invalid entities config in %s: %w", filepath, err)
	}

	return &config, nil
}

// validateEntities 验证实体参数配置的完整性和合法性
func validateEntities(config *EntitiesConfig) error {
	if len(config.Entities) == 0 {
		return fmt.Errorf("at least one entity kind is required")
	}

	for _, kind := range requiredKinds {
		if _, ok := config.Entities[kind.String()]; !ok {
			return fmt.Errorf("missing required entity kind %q", kind.String())
		}
	}

	for name, tuning := range config.Entities {
		if types.KindFromString(name) == types.KindUnknown {
			return fmt.Errorf("entity %s: unknown kind name", name)
		}

		if tuning.PopulationOnLoad < 0 {
			return fmt.Errorf("entity %s: populationOnLoad cannot be negative, got %d", name, tuning.PopulationOnLoad)
		}

		if len(tuning.BaseSize) != 0 {
			if len(tuning.BaseSize) != 2 {
				return fmt.Errorf("entity %s: baseSize must have exactly 2 values, got %d", name, len(tuning.BaseSize))
			}
			if tuning.BaseSize[0] <= 0 || tuning.BaseSize[1] <= 0 {
				return fmt.Errorf("entity %s: baseSize must be positive, got [%f, %f]", name, tuning.BaseSize[0], tuning.BaseSize[1])
			}
		}

		if tuning.SpawnSpeed < 0 {
			return fmt.Errorf("entity %s: spawnSpeed cannot be negative, got %f", name, tuning.SpawnSpeed)
		}

		if tuning.Health < 0 {
			return fmt.Errorf("entity %s: health cannot be negative, got %d", name, tuning.Health)
		}

		if len(tuning.ScaleBounds) != 0 {
			if len(tuning.ScaleBounds) != 2 {
				return fmt.Errorf("entity %s: scaleBounds must have exactly 2 values, got %d", name, len(tuning.ScaleBounds))
			}
			if tuning.ScaleBounds[0] <= 0 {
				return fmt.Errorf("entity %s: scale lower bound must be positive, got %f", name, tuning.ScaleBounds[0])
			}
			if tuning.ScaleBounds[0] > tuning.ScaleBounds[1] {
				return fmt.Errorf("entity %s: scaleBounds min %f exceeds max %f", name, tuning.ScaleBounds[0], tuning.ScaleBounds[1])
			}
		}

		if len(tuning.AlphaBounds) != 0 {
			if len(tuning.AlphaBounds) != 2 {
				return fmt.Errorf("entity %s: alphaBounds must have exactly 2 values, got %d", name, len(tuning.AlphaBounds))
			}
			if tuning.AlphaBounds[0] < 0 || tuning.AlphaBounds[1] > 255 {
				return fmt.Errorf("entity %s: alphaBounds must stay within [0, 255], got [%f, %f]", name, tuning.AlphaBounds[0], tuning.AlphaBounds[1])
			}
			if tuning.AlphaBounds[0] > tuning.AlphaBounds[1] {
				return fmt.Errorf("entity %s: alphaBounds min %f exceeds max %f", name, tuning.AlphaBounds[0], tuning.AlphaBounds[1])
			}
		}

		for _, side := range tuning.SpawnSides {
			if _, ok := types.HeadingFromString(side); !ok {
				return fmt.Errorf("entity %s: unknown spawn side %q", name, side)
			}
		}

		if tuning.Variants < 0 {
			return fmt.Errorf("entity %s: variants cannot be negative, got %d", name, tuning.Variants)
		}
	}

	return nil
}

// Tuning 获取指定种类的参数
// 种类不存在时返回 nil 和 false
func (c *EntitiesConfig) Tuning(kind types.EntityKind) (*EntityTuning, bool) {
	tuning, ok := c.Entities[kind.String()]
	if !ok {
		return nil, false
	}
	return &tuning, true
}

// SpawnHeadings 获取指定种类允许的出生边集合
// 未配置时返回空切片
func (c *EntitiesConfig) SpawnHeadings(kind types.EntityKind) []types.Heading {
	tuning, ok := c.Entities[kind.String()]
	if !ok {
		return nil
	}
	sides := make([]types.Heading, 0, len(tuning.SpawnSides))
	for _, s := range tuning.SpawnSides {
		if h, ok := types.HeadingFromString(s); ok {
			sides = append(sides, h)
		}
	}
	return sides
}
