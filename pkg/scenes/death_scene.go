package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tonegarden/starsong/pkg/game"
	"github.com/tonegarden/starsong/pkg/menu"
	"github.com/tonegarden/starsong/pkg/systems"
	"github.com/tonegarden/starsong/pkg/types"
)

// DeathScene 死亡菜单场景
//
// 装饰世界: 漫天随机漂移的破碎音符,中央一艘旋转的残骸。
// 光标在 Restart / Quit 两个条目之间移动
type DeathScene struct {
	ctx    *Context
	world  *game.World
	render *systems.RenderSystem
	cursor *menu.Cursor
}

// NewDeathScene 创建死亡菜单场景并铺好装饰
func NewDeathScene(ctx *Context) (*DeathScene, error) {
	world, err := game.NewWorld(ctx.Entities, ctx.Game, ctx.Anim, ctx.Stats, nil, ctx.RNG)
	if err != nil {
		return nil, fmt.Errorf("death scene: %w", err)
	}

	if tuning, ok := ctx.Entities.Tuning(types.KindBrokenNote); ok {
		for i := 0; i < tuning.PopulationOnLoad; i++ {
			if _, err := world.Spawn(types.KindBrokenNote, game.SpawnParams{}); err != nil {
				return nil, fmt.Errorf("death scene debris: %w", err)
			}
		}
	}
	if _, err := world.Spawn(types.KindDestroyedShip, game.SpawnParams{}); err != nil {
		return nil, fmt.Errorf("death scene wreck: %w", err)
	}

	cursor := menu.NewCursor(ctx.Anim.MenuCursor.Palette, ctx.Anim.MenuCursor.Increment)
	cx := ctx.Game.Playfield.Width / 2
	cy := ctx.Game.Playfield.Height / 2
	cursor.AddEntries(
		menu.Entry{Label: "RESTART", Bounds: menu.Rect{X: cx - 100, Y: cy + 100, Width: 200, Height: 40}, Transition: SceneGameplay},
		menu.Entry{Label: "QUIT", Bounds: menu.Rect{X: cx - 100, Y: cy + 160, Width: 200, Height: 40}, Transition: ""},
	)

	return &DeathScene{
		ctx:    ctx,
		world:  world,
		render: systems.NewRenderSystem(ctx.Resources),
		cursor: cursor,
	}, nil
}

// Update 推进一个tick
func (s *DeathScene) Update() error {
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

	if err := s.world.Tick(); err != nil {
		return err
	}
	return s.cursor.Tick()
}

// Draw 绘制装饰世界和菜单光标
func (s *DeathScene) Draw(screen *ebiten.Image) {
	s.render.Draw(screen, s.world.RenderItems())
	drawMenuCursor(screen, s.cursor)
}
