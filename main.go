package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"github.com/tonegarden/starsong/internal/audio"
	"github.com/tonegarden/starsong/pkg/app"
	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/embedded"
	"github.com/tonegarden/starsong/pkg/game"
	"github.com/tonegarden/starsong/pkg/scenes"
)

func main() {
	audioAddr := flag.String("audio-addr", "127.0.0.1:7519", "音频引擎握手监听地址")
	noAudio := flag.Bool("no-audio", false, "不启动音频桥,跳过加载等待")
	flag.Parse()

	// 嵌入资源必须在任何配置加载之前初始化
	embedded.Init(assetsFS)

	entitiesCfg, err := config.LoadEntities("assets/config/entities.yaml")
	if err != nil {
		log.Fatalf("加载实体配置失败: %v", err)
	}
	gameCfg, err := config.LoadGame("assets/config/game.yaml")
	if err != nil {
		log.Fatalf("加载游戏配置失败: %v", err)
	}
	animCfg, err := config.LoadAnimation("assets/config/animation.yaml")
	if err != nil {
		log.Fatalf("加载动画配置失败: %v", err)
	}

	// gdata 打不开时降级运行,设置和统计只存内存
	gdataManager, err := gdata.Open(gdata.Config{AppName: "starsong"})
	if err != nil {
		log.Printf("警告: 本地存储不可用: %v (设置与统计不落盘)", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)
	stats := game.NewStatsTracker(gdataManager)

	resources := game.NewResourceManager(entitiesCfg)
	if err := resources.Verify(); err != nil {
		log.Fatalf("资源检查失败: %v", err)
	}

	var bridge *audio.Bridge
	if !*noAudio {
		bridge = audio.NewBridge()
		if err := bridge.Start(*audioAddr); err != nil {
			log.Printf("警告: 音频桥启动失败: %v (无音频运行)", err)
			bridge = nil
		}
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.Factory(&scenes.Context{
		Entities:  entitiesCfg,
		Game:      gameCfg,
		Anim:      animCfg,
		Stats:     stats,
		Resources: resources,
		Settings:  settings,
		Scenes:    sceneManager,
		Bridge:    bridge,
		RNG:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}))
	if err := sceneManager.Transition(scenes.SceneLoading); err != nil {
		log.Fatalf("进入加载场景失败: %v", err)
	}

	ebiten.SetWindowSize(int(gameCfg.Playfield.Width), int(gameCfg.Playfield.Height))
	ebiten.SetWindowTitle("Starsong")
	ebiten.SetFullscreen(settings.Settings().Fullscreen)

	runErr := ebiten.RunGame(app.New(sceneManager, gameCfg))

	// 正常退出路径: 导出统计、保存设置、释放握手端口
	if err := stats.Export(); err != nil {
		log.Printf("警告: 统计导出失败: %v", err)
	}
	if err := settings.Save(); err != nil {
		log.Printf("警告: 设置保存失败: %v", err)
	}
	if bridge != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := bridge.Teardown(ctx); err != nil {
			log.Printf("警告: 音频桥关闭失败: %v", err)
		}
	}

	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}
