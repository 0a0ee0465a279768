package scenes

import (
	"context"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tonegarden/starsong/internal/audio"
)

// LoadingScene 加载场景
//
// 整个程序唯一的等待点: 后台协程阻塞在音频引擎的就绪握手上
// (有超时上限),场景本身每tick只轮询结果。握手完成或超时后切到
// 主菜单;没有配置音频桥时直接放行
type LoadingScene struct {
	ctx     *Context
	ticks   int
	started bool
	done    chan error
}

// NewLoadingScene 创建加载场景
func NewLoadingScene(ctx *Context) *LoadingScene {
	return &LoadingScene{
		ctx:  ctx,
		done: make(chan error, 1),
	}
}

// Update 推进一个tick: 启动等待协程(一次),轮询握手结果
func (s *LoadingScene) Update() error {
	s.ticks++

	if !s.started {
		s.started = true
		if s.ctx.Bridge == nil {
			s.done <- nil
		} else {
			bridge := s.ctx.Bridge
			go func() {
				s.done <- bridge.AwaitReady(context.Background(), audio.DefaultTimeout)
			}()
		}
	}

	select {
	case err := <-s.done:
		if err != nil {
			// 没有音频也能玩,超时只降级不中断
			log.Printf("[LoadingScene] 音频引擎未就绪: %v (继续启动)", err)
		}
		return s.ctx.Scenes.Transition(SceneMenu)
	default:
		return nil
	}
}

// Draw 绘制加载进度
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	status := "starting audio engine..."
	if s.ctx.Bridge != nil && s.ctx.Bridge.Opened() {
		status = "loading samples..."
	}
	msg := fmt.Sprintf("%s (%.1fs)", status, float64(s.ticks)/60)
	ebitenutil.DebugPrintAt(screen, msg, int(s.ctx.Game.Playfield.Width/2)-80, int(s.ctx.Game.Playfield.Height/2))
}
