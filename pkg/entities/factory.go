// Package entities 提供按配置装配实体的生成工厂
//
// 工厂只负责把组件拼到实体管理器里,不做任何逐tick逻辑;
// 所有数值来自配置文件,所有随机来自注入的随机源,便于测试重现。
package entities

import (
	"fmt"
	"math/rand"

	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/types"
)

// Factory 实体生成工厂
// 持有全部配置与随机源,每个场景用同一个工厂实例生成实体
type Factory struct {
	entities *config.EntitiesConfig
	game     *config.GameConfig
	anim     *config.AnimationConfig
	rng      *rand.Rand
}

// NewFactory 创建实体生成工厂
//
// 参数:
//   - entities: 实体参数配置
//   - game: 游戏全局配置
//   - anim: 动画参数配置
//   - rng: 随机源,注入以便测试重现
//
// 返回:
//   - *Factory: 工厂实例
//   - error: 任一配置为 nil 时返回错误
func NewFactory(entities *config.EntitiesConfig, game *config.GameConfig, anim *config.AnimationConfig, rng *rand.Rand) (*Factory, error) {
	if entities == nil || game == nil || anim == nil {
		return nil, fmt.Errorf("factory requires entities, game and animation configs")
	}
	if rng == nil {
		return nil, fmt.Errorf("factory requires a random source")
	}
	return &Factory{
		entities: entities,
		game:     game,
		anim:     anim,
		rng:      rng,
	}, nil
}

// tuning 取种类参数,缺失视为配置错误
func (f *Factory) tuning(kind types.EntityKind) (*config.EntityTuning, error) {
	t, ok := f.entities.Tuning(kind)
	if !ok {
		return nil, fmt.Errorf("no tuning configured for kind %s", kind)
	}
	return t, nil
}

// uniform 返回 [min, max) 内的均匀随机数
func (f *Factory) uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + f.rng.Float64()*(max-min)
}

// pickHeading 从允许的出生边里随机取一个
func (f *Factory) pickHeading(sides []types.Heading) (types.Heading, error) {
	if len(sides) == 0 {
		return 0, fmt.Errorf("no spawn sides configured")
	}
	return sides[f.rng.Intn(len(sides))], nil
}

// pickVariant 随机取一个图像变体编号
func (f *Factory) pickVariant(t *config.EntityTuning) int {
	if t.Variants <= 1 {
		return 0
	}
	return f.rng.Intn(t.Variants)
}

// randomSign 等概率返回 +1 或 -1
func (f *Factory) randomSign() float64 {
	if f.rng.Intn(2) == 0 {
		return 1
	}
	return -1
}

// bandCenter 返回出生带内的随机中心点
// 实体在距屏幕边缘 [near, far] 的屏幕外位置出生,沿边方向均匀分布
func (f *Factory) bandCenter(side types.Heading) (x, y float64) {
	offset := f.uniform(f.game.SpawnBand.Near, f.game.SpawnBand.Far)
	switch side {
	case types.HeadingLeft:
		return -offset, f.uniform(0, f.game.Playfield.Height)
	case types.HeadingRight:
		return f.game.Playfield.Width + offset, f.uniform(0, f.game.Playfield.Height)
	case types.HeadingTop:
		return f.uniform(0, f.game.Playfield.Width), -offset
	default: // HeadingBottom
		return f.uniform(0, f.game.Playfield.Width), f.game.Playfield.Height + offset
	}
}

// inwardVelocity 返回从指定出生边飞向屏幕的随机速度向量
// 朝屏幕的轴分量至少为 1,侧向分量在 [-speed, speed] 内
func (f *Factory) inwardVelocity(side types.Heading, speed float64) (vx, vy float64) {
	if speed < 1 {
		speed = 1
	}
	switch side {
	case types.HeadingLeft:
		return f.uniform(1, speed), f.uniform(-speed, speed)
	case types.HeadingRight:
		return -f.uniform(1, speed), f.uniform(-speed, speed)
	case types.HeadingTop:
		return f.uniform(-speed, speed), f.uniform(1, speed)
	default: // HeadingBottom
		return f.uniform(-speed, speed), -f.uniform(1, speed)
	}
}
