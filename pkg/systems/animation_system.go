package systems

import (
	"math"

	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/ecs"
)

// AnimationSystem 帧动画推进
//
// 每tick做三件事:
//   - 自转: 角度按角速度推进并折回 [0, 360)
//   - 闪烁: 循环游标在调色板上步进,把当前档位写入透明度
//   - 淡出: 一次性游标在淡出序列上步进,播完即移除实体
//
// 游标推进独立于碰撞和移动,同一实体的多条时间线互不干扰。
type AnimationSystem struct {
	em     *ecs.EntityManager
	reaper Reaper
}

// NewAnimationSystem 创建动画系统
//
// 参数:
//   - em: 实体管理器
//   - reaper: 击杀回调(淡出播完的实体交给它移除)
//
// 返回:
//   - *AnimationSystem: 动画系统实例
func NewAnimationSystem(em *ecs.EntityManager, reaper Reaper) *AnimationSystem {
	return &AnimationSystem{em: em, reaper: reaper}
}

// Update 推进本tick快照内所有实体的动画时间线
func (as *AnimationSystem) Update(ids []ecs.EntityID) {
	for _, id := range ids {
		if !as.em.IsAlive(id) {
			continue
		}
		as.advanceSpin(id)
		as.advanceTwinkle(id)
		as.advanceFade(id)
	}
}

// advanceSpin 角度推进,保持在 [0, 360) 区间
func (as *AnimationSystem) advanceSpin(id ecs.EntityID) {
	spin, ok := ecs.GetComponent[*components.SpinComponent](as.em, id)
	if !ok || spin.Rate == 0 {
		return
	}
	spin.Angle = math.Mod(spin.Angle+spin.Rate, 360)
	if spin.Angle < 0 {
		spin.Angle += 360
	}
}

// advanceTwinkle 循环闪烁: 游标步进后按档位取调色板值
func (as *AnimationSystem) advanceTwinkle(id ecs.EntityID) {
	twinkle, ok := ecs.GetComponent[*components.TwinkleComponent](as.em, id)
	if !ok || len(twinkle.Palette) == 0 {
		return
	}
	alpha, ok := ecs.GetComponent[*components.AlphaComponent](as.em, id)
	if !ok {
		return
	}

	twinkle.Cursor.Advance()
	alpha.Value = twinkle.Palette[twinkle.Cursor.Index()]
	alpha.Clamp()
}

// advanceFade 一次性淡出: 未启用时不动,播完通知收割器
func (as *AnimationSystem) advanceFade(id ecs.EntityID) {
	fade, ok := ecs.GetComponent[*components.FadeOutComponent](as.em, id)
	if !ok || !fade.Enabled || len(fade.AlphaValues) == 0 {
		return
	}

	if fade.Cursor.Done() {
		as.reaper.Kill(id)
		return
	}

	alpha, hasAlpha := ecs.GetComponent[*components.AlphaComponent](as.em, id)
	if hasAlpha {
		alpha.Value = fade.AlphaValues[fade.Cursor.Index()]
		alpha.Clamp()
	}
	fade.Cursor.Advance()
}
