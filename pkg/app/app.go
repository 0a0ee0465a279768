// Package app 把场景管理器包成 ebiten.Game
package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/game"
)

// App 顶层游戏对象,实现 ebiten.Game 接口
// 每tick把 Update/Draw 直接转发给当前活动场景
type App struct {
	scenes *game.SceneManager
	width  int
	height int
}

// New 创建顶层游戏对象,逻辑分辨率取游戏区尺寸
func New(scenes *game.SceneManager, gameCfg *config.GameConfig) *App {
	return &App{
		scenes: scenes,
		width:  int(gameCfg.Playfield.Width),
		height: int(gameCfg.Playfield.Height),
	}
}

// Update 推进当前场景一个tick
func (a *App) Update() error {
	return a.scenes.Update()
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.scenes.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸,与实际窗口尺寸无关
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}
