package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个游戏场景(加载、主菜单、游戏、死亡菜单)
// 每个场景有自己的更新和绘制逻辑
type Scene interface {
	// Update 推进一个仿真tick
	Update() error

	// Draw 把场景画到目标屏幕
	Draw(screen *ebiten.Image)
}
