// Package scenes 实现游戏的四个场景: 加载、主菜单、游戏、死亡菜单
//
// 场景负责三件事: 把输入事件翻译成对核心的离散调用(移动光标、
// 触发攻击),驱动自己世界的每tick仿真,以及把世界的绘制快照交给
// 渲染系统。场景之间用名字切换,具体构造走 Factory。
package scenes

import (
	"fmt"
	"math/rand"

	"github.com/tonegarden/starsong/internal/audio"
	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/game"
)

// 场景名
const (
	SceneLoading  = "loading"
	SceneMenu     = "menu"
	SceneGameplay = "gameplay"
	SceneDeath    = "death"
)

// Context 场景共享的装配件
// 由 main 构造一次,所有场景引用同一份
type Context struct {
	Entities  *config.EntitiesConfig
	Game      *config.GameConfig
	Anim      *config.AnimationConfig
	Stats     game.StatsRecorder
	Resources *game.ResourceManager
	Settings  *game.SettingsManager
	Scenes    *game.SceneManager
	Bridge    *audio.Bridge // 可为 nil(无音频引擎时直接放行)
	RNG       *rand.Rand
}

// Factory 返回按名字构造场景的工厂函数
func Factory(ctx *Context) game.SceneFactory {
	return func(name string) (game.Scene, error) {
		switch name {
		case SceneLoading:
			return NewLoadingScene(ctx), nil
		case SceneMenu:
			return NewMenuScene(ctx)
		case SceneGameplay:
			return NewGameplayScene(ctx)
		case SceneDeath:
			return NewDeathScene(ctx)
		default:
			return nil, fmt.Errorf("unknown scene %q", name)
		}
	}
}
