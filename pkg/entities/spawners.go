package entities

import (
	"fmt"
	"math"

	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/timeline"
	"github.com/tonegarden/starsong/pkg/types"
)

// starColorWeights 星星颜色的抽取权重: 白40 黄10 橙5 红1 蓝1
// 变体编号 = 尺寸档 * 颜色数 + 颜色下标,贴图表按同样顺序排列
var starColorWeights = []int{40, 10, 5, 1, 1}

// pickStarVariant 按权重抽颜色,再等概率抽尺寸档
func (f *Factory) pickStarVariant() int {
	total := 0
	for _, w := range starColorWeights {
		total += w
	}
	roll := f.rng.Intn(total)
	colorIdx := 0
	for i, w := range starColorWeights {
		if roll < w {
			colorIdx = i
			break
		}
		roll -= w
	}
	sizeClass := f.rng.Intn(2)
	return sizeClass*len(starColorWeights) + colorIdx
}

// SpawnStar 生成一颗背景星星
// onField 为 true 时直接落在游戏区内(场景加载时铺满用),否则从
// 上方出生带进场。星星向下滚动,闪烁游标的增量逐颗随机,节奏错开
func (f *Factory) SpawnStar(em *ecs.EntityManager, tick uint64, onField bool) (ecs.EntityID, error) {
	t, err := f.tuning(types.KindStar)
	if err != nil {
		return 0, err
	}

	scale := f.uniform(t.ScaleMin(), t.ScaleMax())
	w := t.BaseWidth() * scale
	h := t.BaseHeight() * scale

	var cx, cy float64
	if onField {
		cx = f.uniform(0, f.game.Playfield.Width)
		cy = f.uniform(0, f.game.Playfield.Height)
	} else {
		cx, cy = f.bandCenter(types.HeadingTop)
	}

	twinkle := f.anim.StarTwinkle
	increment := f.uniform(twinkle.IncrementMin, twinkle.IncrementMax)
	cursor := timeline.NewCyclicCursor(len(twinkle.Palette), increment)
	// 相位也随机,整片星空不同步闪烁
	cursor.Pos = f.uniform(0, float64(len(twinkle.Palette)))

	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindStar, State: components.StateActive, SpawnedTick: tick})
	pos := &components.PositionComponent{Width: w, Height: h}
	pos.SetCenter(cx, cy)
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.VelocityComponent{VX: 0, VY: f.game.ScrollSpeed})
	em.AddComponent(id, &components.ScaleComponent{Factor: 1})
	em.AddComponent(id, &components.AlphaComponent{Value: twinkle.Palette[cursor.Index()]})
	em.AddComponent(id, &components.TwinkleComponent{Palette: twinkle.Palette, Cursor: cursor})
	em.AddComponent(id, &components.SpriteComponent{Variant: f.pickStarVariant(), DrawLayer: t.DrawLayer})
	return id, nil
}

// SpawnNote 生成一个游戏内音符(可收集品)
// 从允许的出生边带里进场,自由飞行并缓慢自转;得分由速度和缩放
// 折算:飞得快、个头小的音符更值钱
func (f *Factory) SpawnNote(em *ecs.EntityManager, tick uint64) (ecs.EntityID, error) {
	t, err := f.tuning(types.KindNote)
	if err != nil {
		return 0, err
	}
	side, err := f.pickHeading(f.entities.SpawnHeadings(types.KindNote))
	if err != nil {
		return 0, fmt.Errorf("spawn note: %w", err)
	}

	scale := f.uniform(t.ScaleMin(), t.ScaleMax())
	cx, cy := f.bandCenter(side)
	vx, vy := f.inwardVelocity(side, t.SpawnSpeed)
	speed := math.Max(math.Abs(vx), math.Abs(vy))
	score := int(speed) + int((1-scale)*10)
	if score < 1 {
		score = 1
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindNote, State: components.StateActive, SpawnedTick: tick})
	pos := &components.PositionComponent{Width: t.BaseWidth() * scale, Height: t.BaseHeight() * scale}
	pos.SetCenter(cx, cy)
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(id, &components.ScaleComponent{Factor: scale})
	em.AddComponent(id, &components.AlphaComponent{Value: 255})
	em.AddComponent(id, &components.SpinComponent{Rate: f.randomSign() * f.uniform(0, t.RotationAmount)})
	em.AddComponent(id, &components.CollectibleComponent{Score: score})
	em.AddComponent(id, &components.SpriteComponent{Variant: f.pickVariant(t), DrawLayer: t.DrawLayer})
	return id, nil
}

// SpawnMenuNote 生成一个主菜单装饰音符
// 从出生带沿插值路径飞向汇点,透明度与缩放沿反转后的渐变序列同步
// 衰减,路径播完即被移除(音符落入黑洞)
func (f *Factory) SpawnMenuNote(em *ecs.EntityManager, tick uint64) (ecs.EntityID, error) {
	t, err := f.tuning(types.KindNote)
	if err != nil {
		return 0, err
	}
	side, err := f.pickHeading(f.entities.SpawnHeadings(types.KindNote))
	if err != nil {
		return 0, fmt.Errorf("spawn menu note: %w", err)
	}

	gf := f.anim.GuidedFlight
	cx, cy := f.bandCenter(side)
	sinkX, sinkY := f.game.SinkPoint()

	path, err := timeline.BuildPointPath(timeline.Point{X: cx, Y: cy}, timeline.Point{X: sinkX, Y: sinkY}, gf.PathPoints)
	if err != nil {
		return 0, fmt.Errorf("spawn menu note: %w", err)
	}
	alphaRamp, err := timeline.BuildSequence(gf.AlphaBounds[0], gf.AlphaBounds[1], gf.PathPoints)
	if err != nil {
		return 0, fmt.Errorf("spawn menu note: %w", err)
	}
	scaleRamp, err := timeline.BuildSequence(gf.ScaleBounds[0], gf.ScaleBounds[1], gf.PathPoints)
	if err != nil {
		return 0, fmt.Errorf("spawn menu note: %w", err)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindNote, State: components.StateActive, SpawnedTick: tick})
	scale := gf.ScaleBounds[1]
	pos := &components.PositionComponent{Width: t.BaseWidth() * scale, Height: t.BaseHeight() * scale}
	pos.SetCenter(cx, cy)
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.ScaleComponent{Factor: scale})
	em.AddComponent(id, &components.AlphaComponent{Value: gf.AlphaBounds[1]})
	em.AddComponent(id, &components.SpinComponent{Rate: f.randomSign() * gf.RotationRate})
	em.AddComponent(id, &components.GuidedFlightComponent{
		Path:        path,
		AlphaValues: timeline.Reverse(alphaRamp),
		ScaleValues: timeline.Reverse(scaleRamp),
		Cursor:      timeline.NewOneShotCursor(len(path), 1),
	})
	em.AddComponent(id, &components.SpriteComponent{Variant: f.pickVariant(t), DrawLayer: t.DrawLayer})
	return id, nil
}

// SpawnBrokenNote 生成一个破碎音符(死亡菜单装饰)
// 直接落在游戏区内,在软边界里慢速漂移,透明度逐个随机
func (f *Factory) SpawnBrokenNote(em *ecs.EntityManager, tick uint64) (ecs.EntityID, error) {
	t, err := f.tuning(types.KindBrokenNote)
	if err != nil {
		return 0, err
	}
	heading, err := f.pickHeading(f.entities.SpawnHeadings(types.KindBrokenNote))
	if err != nil {
		return 0, fmt.Errorf("spawn broken note: %w", err)
	}

	scale := f.uniform(t.ScaleMin(), t.ScaleMax())

	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindBrokenNote, State: components.StateActive, SpawnedTick: tick})
	pos := &components.PositionComponent{Width: t.BaseWidth() * scale, Height: t.BaseHeight() * scale}
	pos.SetCenter(f.uniform(0, f.game.Playfield.Width), f.uniform(0, f.game.Playfield.Height))
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.ScaleComponent{Factor: 1})
	em.AddComponent(id, &components.AlphaComponent{Value: f.uniform(t.AlphaMin(), t.AlphaMax())})
	em.AddComponent(id, &components.SpinComponent{Rate: f.randomSign() * f.uniform(0, t.RotationAmount)})
	em.AddComponent(id, &components.DriftComponent{Heading: heading, JitterInterval: f.anim.BrokenNote.JitterInterval})
	em.AddComponent(id, &components.SpriteComponent{Variant: f.pickVariant(t), DrawLayer: t.DrawLayer})
	return id, nil
}

// SpawnLetter 生成一个字母(特殊事件实体)
// 从出生带进场,自由飞行,行进方向标签取出生边的反向;参与圆形
// 碰撞与动量传递,接触玩家飞船造成伤害
func (f *Factory) SpawnLetter(em *ecs.EntityManager, tick uint64) (ecs.EntityID, error) {
	t, err := f.tuning(types.KindLetter)
	if err != nil {
		return 0, err
	}
	side, err := f.pickHeading(f.entities.SpawnHeadings(types.KindLetter))
	if err != nil {
		return 0, fmt.Errorf("spawn letter: %w", err)
	}

	scale := f.uniform(t.ScaleMin(), t.ScaleMax())
	cx, cy := f.bandCenter(side)
	vx, vy := f.inwardVelocity(side, t.SpawnSpeed)

	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindLetter, State: components.StateActive, SpawnedTick: tick})
	pos := &components.PositionComponent{Width: t.BaseWidth() * scale, Height: t.BaseHeight() * scale}
	pos.SetCenter(cx, cy)
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(id, &components.ScaleComponent{Factor: scale})
	em.AddComponent(id, &components.AlphaComponent{Value: 255})
	em.AddComponent(id, &components.SpinComponent{Rate: f.randomSign() * f.uniform(0, t.RotationAmount)})
	em.AddComponent(id, &components.FreeFlightComponent{Heading: side.Opposite()})
	em.AddComponent(id, &components.DamageComponent{Amount: t.Damage})
	fade := f.anim.LetterFade
	em.AddComponent(id, &components.FadeOutComponent{
		AlphaValues: fade.Palette,
		Cursor:      timeline.NewOneShotCursor(len(fade.Palette), fade.Increment),
	})
	em.AddComponent(id, &components.SpriteComponent{Variant: f.pickVariant(t), DrawLayer: t.DrawLayer})
	return id, nil
}

// SpawnBlackHole 生成主菜单黑洞
// 固定放在汇点上,沿四个对角位移向量缓慢晃动并持续自转
func (f *Factory) SpawnBlackHole(em *ecs.EntityManager, tick uint64) (ecs.EntityID, error) {
	t, err := f.tuning(types.KindBlackHole)
	if err != nil {
		return 0, err
	}

	shift := f.anim.BlackHole
	offsets := make([]timeline.Point, len(shift.Offsets))
	for i, off := range shift.Offsets {
		offsets[i] = timeline.Point{X: off[0], Y: off[1]}
	}

	scale := f.uniform(t.ScaleMin(), t.ScaleMax())
	sinkX, sinkY := f.game.SinkPoint()

	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindBlackHole, State: components.StateActive, SpawnedTick: tick})
	pos := &components.PositionComponent{Width: t.BaseWidth() * scale, Height: t.BaseHeight() * scale}
	pos.SetCenter(sinkX, sinkY)
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.ScaleComponent{Factor: 1})
	em.AddComponent(id, &components.AlphaComponent{Value: f.uniform(t.AlphaMin(), t.AlphaMax())})
	em.AddComponent(id, &components.SpinComponent{Rate: -t.RotationAmount})
	em.AddComponent(id, &components.ShiftComponent{
		Offsets: offsets,
		Cursor:  timeline.NewCyclicCursor(len(offsets), shift.Increment),
	})
	em.AddComponent(id, &components.SpriteComponent{Variant: 0, DrawLayer: t.DrawLayer})
	return id, nil
}

// SpawnDestroyedShip 生成被击毁的飞船(死亡菜单装饰)
// 停在屏幕中央缓慢自转
func (f *Factory) SpawnDestroyedShip(em *ecs.EntityManager, tick uint64) (ecs.EntityID, error) {
	t, err := f.tuning(types.KindDestroyedShip)
	if err != nil {
		return 0, err
	}

	scale := f.uniform(t.ScaleMin(), t.ScaleMax())

	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindDestroyedShip, State: components.StateActive, SpawnedTick: tick})
	pos := &components.PositionComponent{Width: t.BaseWidth() * scale, Height: t.BaseHeight() * scale}
	pos.SetCenter(f.game.Playfield.Width/2, f.game.Playfield.Height/2)
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.ScaleComponent{Factor: 1})
	em.AddComponent(id, &components.AlphaComponent{Value: 255})
	em.AddComponent(id, &components.SpinComponent{Rate: t.RotationAmount})
	em.AddComponent(id, &components.SpriteComponent{Variant: 0, DrawLayer: t.DrawLayer})
	return id, nil
}

// SpawnStrafer 生成一个横移炮灰
// 从屏幕上方垂直进场,停止线由编队行号决定;到位后按随机初始方向
// 左右巡逻。row 超出编队行数时钳制到最后一行
func (f *Factory) SpawnStrafer(em *ecs.EntityManager, tick uint64, row int) (ecs.EntityID, error) {
	t, err := f.tuning(types.KindStrafer)
	if err != nil {
		return 0, err
	}

	scale := f.uniform(t.ScaleMin(), t.ScaleMax())
	w := t.BaseWidth() * scale
	h := t.BaseHeight() * scale

	margin := f.game.Strafer.EdgeMarginX
	cx := f.uniform(margin, f.game.Playfield.Width-margin)

	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindStrafer, State: components.StateSpawning, SpawnedTick: tick})
	pos := &components.PositionComponent{Width: w, Height: h}
	pos.SetCenter(cx, f.game.Strafer.SpawnY)
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.ScaleComponent{Factor: 1})
	em.AddComponent(id, &components.AlphaComponent{Value: 255})
	em.AddComponent(id, &components.HealthComponent{CurrentHealth: t.Health, MaxHealth: t.Health})
	em.AddComponent(id, &components.ApproachComponent{
		Axis:        components.ApproachVertical,
		Speed:       t.SpawnSpeed,
		StopLine:    f.game.RowStopLine(row),
		HasStopLine: true,
	})
	em.AddComponent(id, &components.StrafeComponent{Direction: f.randomSign(), Speed: t.StrafeSpeed, Row: row})
	em.AddComponent(id, &components.AttackComponent{CooldownTicks: t.AttackCooldown})
	em.AddComponent(id, &components.SpriteComponent{Variant: 0, DrawLayer: t.DrawLayer})
	return id, nil
}

// SpawnSpinner 生成一个旋转炮灰
// at 非 nil 时用调用方给的出生点(象限按出生点相对屏幕中线推断),
// 否则随机取左右一侧;水平切入一段随机距离后停下原地自转
func (f *Factory) SpawnSpinner(em *ecs.EntityManager, tick uint64, at *timeline.Point) (ecs.EntityID, error) {
	t, err := f.tuning(types.KindSpinner)
	if err != nil {
		return 0, err
	}

	scale := f.uniform(t.ScaleMin(), t.ScaleMax())
	w := t.BaseWidth() * scale
	h := t.BaseHeight() * scale

	sp := f.game.Spinner
	var cx, cy float64
	if at != nil {
		cx, cy = at.X, at.Y
	} else {
		cy = f.uniform(sp.ScreenBuffer, f.game.Playfield.Height-sp.ScreenBuffer)
		if f.rng.Intn(2) == 0 {
			cx = -sp.OffscreenAmount
		} else {
			cx = f.game.Playfield.Width + sp.OffscreenAmount
		}
	}

	quadrant := types.QuadTopRight
	if cx < f.game.Playfield.Width/2 {
		quadrant = types.QuadTopLeft
	}

	advance := f.uniform(sp.StopOffsetMin, sp.StopOffsetMax)
	var stopLine float64
	if quadrant.IsLeft() {
		stopLine = cx + advance // 右边缘前推到这里
	} else {
		stopLine = cx - advance // 左边缘后退到这里
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindSpinner, State: components.StateSpawning, SpawnedTick: tick})
	pos := &components.PositionComponent{Width: w, Height: h}
	pos.SetCenter(cx, cy)
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.ScaleComponent{Factor: 1})
	em.AddComponent(id, &components.AlphaComponent{Value: 255})
	em.AddComponent(id, &components.HealthComponent{CurrentHealth: t.Health, MaxHealth: t.Health})
	em.AddComponent(id, &components.SpinComponent{Rate: 0})
	em.AddComponent(id, &components.ApproachComponent{
		Axis:            components.ApproachHorizontal,
		Speed:           t.SpawnSpeed,
		StopLine:        stopLine,
		HasStopLine:     true,
		Quadrant:        quadrant,
		ArrivalSpinRate: -t.RotationAmount,
	})
	em.AddComponent(id, &components.AttackComponent{CooldownTicks: t.AttackCooldown})
	em.AddComponent(id, &components.SpriteComponent{Variant: 0, DrawLayer: t.DrawLayer})
	return id, nil
}

// SpawnTracker 生成一个追踪炮灰
// 从屏幕上方垂直进场到第一编队行,到位后朝目标点限速转向追击
func (f *Factory) SpawnTracker(em *ecs.EntityManager, tick uint64) (ecs.EntityID, error) {
	t, err := f.tuning(types.KindTracker)
	if err != nil {
		return 0, err
	}

	scale := f.uniform(t.ScaleMin(), t.ScaleMax())
	w := t.BaseWidth() * scale
	h := t.BaseHeight() * scale

	margin := f.game.Strafer.EdgeMarginX
	cx := f.uniform(margin, f.game.Playfield.Width-margin)

	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: types.KindTracker, State: components.StateSpawning, SpawnedTick: tick})
	pos := &components.PositionComponent{Width: w, Height: h}
	pos.SetCenter(cx, f.game.Strafer.SpawnY)
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.ScaleComponent{Factor: 1})
	em.AddComponent(id, &components.AlphaComponent{Value: 255})
	em.AddComponent(id, &components.HealthComponent{CurrentHealth: t.Health, MaxHealth: t.Health})
	em.AddComponent(id, &components.ApproachComponent{
		Axis:        components.ApproachVertical,
		Speed:       t.SpawnSpeed,
		StopLine:    f.game.RowStopLine(0),
		HasStopLine: true,
	})
	// 进场朝下,到位后开始向目标收敛
	em.AddComponent(id, &components.SeekComponent{Speed: t.SpawnSpeed, TurnRate: t.TurnRate, Heading: 90})
	em.AddComponent(id, &components.AttackComponent{CooldownTicks: t.AttackCooldown})
	em.AddComponent(id, &components.SpriteComponent{Variant: 0, DrawLayer: t.DrawLayer})
	return id, nil
}
