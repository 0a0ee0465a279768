package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tonegarden/starsong/pkg/game"
	"github.com/tonegarden/starsong/pkg/menu"
	"github.com/tonegarden/starsong/pkg/systems"
	"github.com/tonegarden/starsong/pkg/types"
)

// 菜单音符齐射参数: 每隔一段时间放出一波飞向黑洞的音符
const (
	menuVolleySize     = 10
	menuVolleyInterval = 240
)

// MenuScene 主菜单场景
//
// 装饰世界: 满屏闪烁的星星、汇点上的黑洞、周期性飞向黑洞的音符
// 齐射。光标在 Start / Quit 两个条目之间移动
type MenuScene struct {
	ctx    *Context
	world  *game.World
	render *systems.RenderSystem
	cursor *menu.Cursor
	ticks  int
}

// NewMenuScene 创建主菜单场景并铺好装饰
func NewMenuScene(ctx *Context) (*MenuScene, error) {
	world, err := game.NewWorld(ctx.Entities, ctx.Game, ctx.Anim, ctx.Stats, nil, ctx.RNG)
	if err != nil {
		return nil, fmt.Errorf("menu scene: %w", err)
	}

	// 星空铺场
	if tuning, ok := ctx.Entities.Tuning(types.KindStar); ok {
		for i := 0; i < tuning.PopulationOnLoad; i++ {
			if _, err := world.Spawn(types.KindStar, game.SpawnParams{OnField: true}); err != nil {
				return nil, fmt.Errorf("menu scene stars: %w", err)
			}
		}
	}
	if _, err := world.Spawn(types.KindBlackHole, game.SpawnParams{}); err != nil {
		return nil, fmt.Errorf("menu scene black hole: %w", err)
	}

	cursor := menu.NewCursor(ctx.Anim.MenuCursor.Palette, ctx.Anim.MenuCursor.Increment)
	cx := ctx.Game.Playfield.Width / 2
	cy := ctx.Game.Playfield.Height / 2
	cursor.AddEntries(
		menu.Entry{Label: "START", Bounds: menu.Rect{X: cx - 100, Y: cy - 80, Width: 200, Height: 40}, Transition: SceneGameplay},
		menu.Entry{Label: "QUIT", Bounds: menu.Rect{X: cx - 100, Y: cy - 20, Width: 200, Height: 40}, Transition: ""},
	)

	return &MenuScene{
		ctx:    ctx,
		world:  world,
		render: systems.NewRenderSystem(ctx.Resources),
		cursor: cursor,
	}, nil
}

// Update 推进一个tick: 输入 -> 装饰齐射 -> 世界仿真 -> 光标动画
func (s *MenuScene) Update() error {
	if delta := cursorDelta(); delta != 0 {
		if err := s.cursor.Move(delta); err != nil {
			return err
		}
	}
	if confirmPressed() {
		entry, err := s.cursor.Select()
		if err != nil {
			return err
		}
		if entry.Transition == "" {
			return ebiten.Termination
		}
		return s.ctx.Scenes.Transition(entry.Transition)
	}

	s.ticks++
	if s.ticks%menuVolleyInterval == 0 {
		for i := 0; i < menuVolleySize; i++ {
			if _, err := s.world.Spawn(types.KindNote, game.SpawnParams{Guided: true}); err != nil {
				return err
			}
		}
	}

	if err := s.world.Tick(); err != nil {
		return err
	}
	return s.cursor.Tick()
}

// Draw 绘制装饰世界和菜单光标
func (s *MenuScene) Draw(screen *ebiten.Image) {
	s.render.Draw(screen, s.world.RenderItems())
	drawMenuCursor(screen, s.cursor)
}
