package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/game"
	"github.com/tonegarden/starsong/pkg/systems"
	"github.com/tonegarden/starsong/pkg/types"
)

// 游戏场景节奏参数
const (
	starReplenishPerTick = 2   // 每tick从上方补充的星星数
	noteSpawnInterval    = 45  // 音符生成间隔(tick)
	enemyWaveInterval    = 600 // 敌人波次间隔(tick)
	strafersPerWave      = 3   // 每波横移炮灰数量
	letterLifetimeTicks  = 600 // 字母开始淡出前的存活时长(tick)

	shipSpeed     = 6  // 飞船移动速度(像素/tick)
	shipHealth    = 3  // 飞船初始生命值
	shipHitRadius = 40 // 敌人开火命中判定的水平半径(像素)
)

// playerShip 玩家飞船
// 飞船不是核心实体,由场景直接持有和移动;核心只通过目标点
// (追踪炮灰)和接触判定(收集、字母伤害)感知它
type playerShip struct {
	pos    components.PositionComponent
	health int
}

// GameplayScene 游戏场景
//
// 滚动星空背景、周期生成的可收集音符、按波次进场的敌人编队。
// 每收集够一定数量的音符触发一次字母场特殊事件;字母接触飞船
// 造成伤害,存活超时后淡出消失。飞船生命归零切到死亡菜单
type GameplayScene struct {
	ctx    *Context
	world  *game.World
	render *systems.RenderSystem
	ship   playerShip

	ticks      int
	collected  int
	nextRow    int
	waveCount  int
	shotsFired int
	// 字母句柄 -> 生成tick,用于调度淡出
	letters map[ecs.EntityID]uint64
}

// NewGameplayScene 创建游戏场景并铺好初始星空
func NewGameplayScene(ctx *Context) (*GameplayScene, error) {
	s := &GameplayScene{
		ctx:     ctx,
		letters: make(map[ecs.EntityID]uint64),
	}

	world, err := game.NewWorld(ctx.Entities, ctx.Game, ctx.Anim, ctx.Stats, s, ctx.RNG)
	if err != nil {
		return nil, fmt.Errorf("gameplay scene: %w", err)
	}
	s.world = world
	s.render = systems.NewRenderSystem(ctx.Resources)

	if tuning, ok := ctx.Entities.Tuning(types.KindStar); ok {
		for i := 0; i < tuning.PopulationOnLoad; i++ {
			if _, err := world.Spawn(types.KindStar, game.SpawnParams{OnField: true}); err != nil {
				return nil, fmt.Errorf("gameplay scene stars: %w", err)
			}
		}
	}

	s.ship = playerShip{
		pos: components.PositionComponent{
			X:      ctx.Game.Playfield.Width/2 - 24,
			Y:      ctx.Game.Playfield.Height - 120,
			Width:  48,
			Height: 48,
		},
		health: shipHealth,
	}
	return s, nil
}

// Fire 接收敌人的开火意图(实现 systems.FireSink)
// 没有弹道仿真,开火按水平对位即时判定: 炮口正对飞船时命中
func (s *GameplayScene) Fire(_ ecs.EntityID, kind types.EntityKind, x, y float64) {
	if kind.IsEnemy() && y < s.ship.pos.Top() {
		dx := x - s.ship.pos.CenterX()
		if dx > -shipHitRadius && dx < shipHitRadius {
			s.ship.health--
		}
	}
}

// Update 推进一个tick
func (s *GameplayScene) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return s.ctx.Scenes.Transition(SceneMenu)
	}

	s.moveShip()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.triggerAttack()
	}

	s.ticks++
	if err := s.replenish(); err != nil {
		return err
	}

	s.world.SetSeekTarget(s.ship.pos.CenterX(), s.ship.pos.CenterY())
	if err := s.world.Tick(); err != nil {
		return err
	}

	if err := s.collectNotes(); err != nil {
		return err
	}
	s.updateLetters()

	if s.ship.health <= 0 {
		return s.ctx.Scenes.Transition(SceneDeath)
	}
	return nil
}

// moveShip 按方向键移动飞船,钳制在游戏区内
func (s *GameplayScene) moveShip() {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		s.ship.pos.X -= shipSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		s.ship.pos.X += shipSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		s.ship.pos.Y -= shipSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		s.ship.pos.Y += shipSpeed
	}

	field := s.ctx.Game.Playfield
	if s.ship.pos.X < 0 {
		s.ship.pos.X = 0
	}
	if s.ship.pos.Right() > field.Width {
		s.ship.pos.X = field.Width - s.ship.pos.Width
	}
	if s.ship.pos.Y < 0 {
		s.ship.pos.Y = 0
	}
	if s.ship.pos.Bottom() > field.Height {
		s.ship.pos.Y = field.Height - s.ship.pos.Height
	}
}

// triggerAttack 玩家开火: 打击飞船正前方最近的敌人
func (s *GameplayScene) triggerAttack() {
	s.shotsFired++

	var target ecs.EntityID
	var targetBottom float64
	em := s.world.Manager()
	for _, kind := range []types.EntityKind{types.KindStrafer, types.KindSpinner, types.KindTracker} {
		for _, id := range s.world.EntitiesOfKind(kind) {
			pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
			if !ok || pos.Bottom() >= s.ship.pos.Top() {
				continue
			}
			if pos.Right() < s.ship.pos.Left() || pos.Left() > s.ship.pos.Right() {
				continue
			}
			if target == 0 || pos.Bottom() > targetBottom {
				target = id
				targetBottom = pos.Bottom()
			}
		}
	}
	if target != 0 {
		s.world.Damage(target, 1)
	}
}

// replenish 周期性生成星星、音符和敌人波次
func (s *GameplayScene) replenish() error {
	for i := 0; i < starReplenishPerTick; i++ {
		if _, err := s.world.Spawn(types.KindStar, game.SpawnParams{}); err != nil {
			return err
		}
	}

	if s.ticks%noteSpawnInterval == 0 {
		limit := 0
		if tuning, ok := s.ctx.Entities.Tuning(types.KindNote); ok {
			limit = tuning.PopulationOnLoad
		}
		if len(s.world.EntitiesOfKind(types.KindNote)) < limit {
			if _, err := s.world.Spawn(types.KindNote, game.SpawnParams{}); err != nil {
				return err
			}
		}
	}

	if s.ticks%enemyWaveInterval == 0 {
		if err := s.spawnWave(); err != nil {
			return err
		}
	}
	return nil
}

// spawnWave 生成一波敌人: 一行横移炮灰,隔波加旋转/追踪炮灰
func (s *GameplayScene) spawnWave() error {
	for i := 0; i < strafersPerWave; i++ {
		if _, err := s.world.Spawn(types.KindStrafer, game.SpawnParams{Row: s.nextRow}); err != nil {
			return err
		}
	}
	s.nextRow = (s.nextRow + 1) % s.ctx.Game.Formation.Rows

	s.waveCount++
	if s.waveCount%2 == 0 {
		if _, err := s.world.Spawn(types.KindSpinner, game.SpawnParams{}); err != nil {
			return err
		}
	}
	if s.waveCount%3 == 0 {
		if _, err := s.world.Spawn(types.KindTracker, game.SpawnParams{}); err != nil {
			return err
		}
	}
	return nil
}

// collectNotes 结算飞船与音符的接触,攒够阈值触发字母场事件
func (s *GameplayScene) collectNotes() error {
	em := s.world.Manager()
	for _, id := range s.world.EntitiesOfKind(types.KindNote) {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok || !pos.Overlaps(&s.ship.pos) {
			continue
		}
		s.world.Collect(id)
		s.collected++

		if s.collected%s.ctx.Game.SpecialEvent.NoteThreshold == 0 {
			if err := s.spawnLetterVolley(); err != nil {
				return err
			}
		}
	}
	return nil
}

// spawnLetterVolley 字母场特殊事件: 放出一波字母
func (s *GameplayScene) spawnLetterVolley() error {
	for i := 0; i < s.ctx.Game.SpecialEvent.LetterCount; i++ {
		id, err := s.world.Spawn(types.KindLetter, game.SpawnParams{})
		if err != nil {
			return err
		}
		s.letters[id] = s.world.CurrentTick()
	}
	return nil
}

// updateLetters 字母结算: 接触飞船造成伤害,存活超时启用淡出
func (s *GameplayScene) updateLetters() {
	em := s.world.Manager()
	for id, spawned := range s.letters {
		if !em.IsAlive(id) {
			delete(s.letters, id)
			continue
		}

		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if ok && pos.Overlaps(&s.ship.pos) {
			if damage, ok := ecs.GetComponent[*components.DamageComponent](em, id); ok {
				s.ship.health -= damage.Amount
			}
			s.world.Kill(id)
			delete(s.letters, id)
			continue
		}

		if s.world.CurrentTick()-spawned >= letterLifetimeTicks {
			s.world.EnableFadeOut(id)
		}
	}
}

// Draw 绘制世界、飞船和状态栏
func (s *GameplayScene) Draw(screen *ebiten.Image) {
	s.render.Draw(screen, s.world.RenderItems())

	// 飞船: 核心之外的实体,直接画一块亮色
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s.ship.pos.Width, s.ship.pos.Height)
	op.GeoM.Translate(s.ship.pos.X, s.ship.pos.Y)
	screen.DrawImage(whiteFill(), op)

	hud := fmt.Sprintf("notes: %d  hull: %d  shots: %d", s.collected, s.ship.health, s.shotsFired)
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
}
