// cmd/simcheck/main.go
// 无头仿真验证程序: 不开窗口,按固定脚本驱动世界若干tick,
// 检查实体数量、接触表和统计事件是否符合预期
//
// 用法:
//
//	go run ./cmd/simcheck -ticks 3600 -seed 1 -verbose
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/tonegarden/starsong/pkg/config"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/game"
	"github.com/tonegarden/starsong/pkg/types"
)

var (
	ticks   = flag.Int("ticks", 3600, "仿真tick数")
	seed    = flag.Int64("seed", 1, "随机种子")
	verbose = flag.Bool("verbose", false, "每600tick打印一次世界状态")
)

// countingSink 记录敌人的开火意图,替代真实弹道
type countingSink struct {
	shots int
}

func (s *countingSink) Fire(_ ecs.EntityID, _ types.EntityKind, _, _ float64) {
	s.shots++
}

func main() {
	flag.Parse()

	entitiesCfg, gameCfg, animCfg := simConfigs()
	stats := game.NewStatsTracker(nil)
	rng := rand.New(rand.NewSource(*seed))
	sink := &countingSink{}

	world, err := game.NewWorld(entitiesCfg, gameCfg, animCfg, stats, sink, rng)
	if err != nil {
		log.Fatalf("装配世界失败: %v", err)
	}

	// 铺场: 星空 + 黑洞,模拟主菜单装饰
	for i := 0; i < 60; i++ {
		if _, err := world.Spawn(types.KindStar, game.SpawnParams{OnField: true}); err != nil {
			log.Fatalf("铺星空失败: %v", err)
		}
	}
	if _, err := world.Spawn(types.KindBlackHole, game.SpawnParams{}); err != nil {
		log.Fatalf("生成黑洞失败: %v", err)
	}

	failures := 0
	for t := 1; t <= *ticks; t++ {
		// 游戏场景的生成脚本: 星星补充、音符、敌人波次、字母齐射
		if _, err := world.Spawn(types.KindStar, game.SpawnParams{}); err != nil {
			log.Fatalf("tick %d 生成星星失败: %v", t, err)
		}
		if t%45 == 0 {
			if _, err := world.Spawn(types.KindNote, game.SpawnParams{}); err != nil {
				log.Fatalf("tick %d 生成音符失败: %v", t, err)
			}
		}
		if t%240 == 0 {
			if _, err := world.Spawn(types.KindNote, game.SpawnParams{Guided: true}); err != nil {
				log.Fatalf("tick %d 生成引导音符失败: %v", t, err)
			}
		}
		if t%600 == 0 {
			for row := 0; row < gameCfg.Formation.Rows; row++ {
				if _, err := world.Spawn(types.KindStrafer, game.SpawnParams{Row: row}); err != nil {
					log.Fatalf("tick %d 生成横移炮灰失败: %v", t, err)
				}
			}
			if _, err := world.Spawn(types.KindSpinner, game.SpawnParams{}); err != nil {
				log.Fatalf("tick %d 生成旋转炮灰失败: %v", t, err)
			}
		}
		if t%900 == 0 {
			for i := 0; i < gameCfg.SpecialEvent.LetterCount; i++ {
				if _, err := world.Spawn(types.KindLetter, game.SpawnParams{}); err != nil {
					log.Fatalf("tick %d 生成字母失败: %v", t, err)
				}
			}
		}

		// 周期性收集最早的音符,走完收集上报路径
		if t%300 == 0 {
			if notes := world.EntitiesOfKind(types.KindNote); len(notes) > 0 {
				world.Collect(notes[0])
			}
		}

		world.SetSeekTarget(gameCfg.Playfield.Width/2, gameCfg.Playfield.Height-120)
		if err := world.Tick(); err != nil {
			log.Fatalf("tick %d 失败: %v", t, err)
		}

		if *verbose && t%600 == 0 {
			fmt.Printf("tick %5d: 实体 %4d 接触对 %3d 绘制项 %4d\n",
				t, world.EntityCount(), world.OverlapPairCount(), len(world.RenderItems()))
		}
	}

	// 边界检查: 击杀边界应该把星星总量压在稳态以下
	if world.EntityCount() > 5000 {
		fmt.Printf("异常: 实体数 %d 超出稳态上限,边界清除可能失效\n", world.EntityCount())
		failures++
	}

	// 统计检查: 收集过音符就必须有收集事件
	noteTotals := stats.Totals(types.KindNote)
	if noteTotals.Spawned > 0 && noteTotals.LifespanCnt == 0 {
		fmt.Println("异常: 音符生成过却没有任何寿命上报")
		failures++
	}

	fmt.Printf("仿真 %d tick 完成: 实体 %d 接触对 %d\n", *ticks, world.EntityCount(), world.OverlapPairCount())
	for _, kind := range []types.EntityKind{types.KindStar, types.KindNote, types.KindLetter, types.KindStrafer, types.KindSpinner} {
		totals := stats.Totals(kind)
		fmt.Printf("  %-8s 生成 %5d 收集 %4d 得分 %5d 寿命上报 %5d\n",
			kind, totals.Spawned, totals.Collected, totals.Score, totals.LifespanCnt)
	}
	fmt.Printf("  敌人开火 %d 次\n", sink.shots)

	if failures > 0 {
		fmt.Printf("检查未通过: %d 项异常\n", failures)
		os.Exit(1)
	}
	fmt.Println("全部检查通过")
}

// simConfigs 返回与 assets/config 同值的三份配置
// 无头程序不带嵌入资源,配置直接写在代码里
func simConfigs() (*config.EntitiesConfig, *config.GameConfig, *config.AnimationConfig) {
	entitiesCfg := &config.EntitiesConfig{
		Entities: map[string]config.EntityTuning{
			"star": {BaseSize: []float64{14, 14}, Variants: 10, ScaleBounds: []float64{0.05, 0.4}, SpawnSides: []string{"top"}},
			"note": {DrawLayer: 1, BaseSize: []float64{48, 96}, Variants: 6, SpawnSpeed: 4,
				RotationAmount: 1.5, ScaleBounds: []float64{0.2, 0.5}, SpawnSides: []string{"left", "top", "right"}},
			"broken_note": {DrawLayer: 1, BaseSize: []float64{48, 96}, Variants: 12, RotationAmount: 1.5,
				ScaleBounds: []float64{0.05, 0.4}, AlphaBounds: []float64{100, 240}, SpawnSides: []string{"left", "top", "right", "bottom"}},
			"letter": {DrawLayer: 3, BaseSize: []float64{56, 56}, Variants: 7, SpawnSpeed: 6,
				RotationAmount: 0.8, ScaleBounds: []float64{0.4, 1.0}, Damage: 1, SpawnSides: []string{"left", "top", "right", "bottom"}},
			"black_hole":     {DrawLayer: 1, BaseSize: []float64{32, 32}, Variants: 1, RotationAmount: 4, ScaleBounds: []float64{4, 4}, AlphaBounds: []float64{150, 150}},
			"destroyed_ship": {DrawLayer: 3, BaseSize: []float64{24, 24}, Variants: 1, RotationAmount: 0.1, ScaleBounds: []float64{5, 5}},
			"strafer": {DrawLayer: 2, BaseSize: []float64{40, 40}, Variants: 2, Health: 20, SpawnSpeed: 8,
				StrafeSpeed: 3, ScaleBounds: []float64{1.5, 1.5}, AttackCooldown: 90, SpawnSides: []string{"top"}},
			"spinner": {DrawLayer: 2, BaseSize: []float64{40, 40}, Variants: 2, Health: 30, SpawnSpeed: 6,
				RotationAmount: 1, ScaleBounds: []float64{1.5, 1.5}, AttackCooldown: 120, SpawnSides: []string{"left", "right"}},
			"tracker": {DrawLayer: 2, BaseSize: []float64{32, 32}, Variants: 2, Health: 2, SpawnSpeed: 4,
				TurnRate: 3, ScaleBounds: []float64{1.5, 1.5}, AttackCooldown: 150, SpawnSides: []string{"top"}},
		},
	}

	gameCfg := &config.GameConfig{
		Playfield:    config.PlayfieldConfig{Width: 1440, Height: 900},
		KillMargin:   150,
		ScrollSpeed:  2,
		SpawnBand:    config.SpawnBandConfig{Near: 20, Far: 100},
		Sink:         config.SinkConfig{OffsetX: 0, OffsetY: 150},
		Formation:    config.FormationConfig{FirstRowY: 150, RowSpacing: 120, Rows: 3},
		Spinner:      config.SpinnerSpawnConfig{ScreenBuffer: 75, OffscreenAmount: 100, StopOffsetMin: 300, StopOffsetMax: 600},
		Strafer:      config.StraferSpawnConfig{EdgeMarginX: 50, SpawnY: -100},
		SpecialEvent: config.SpecialEventConfig{NoteThreshold: 10, LetterCount: 7},
	}

	animCfg := &config.AnimationConfig{
		StarTwinkle: config.TwinkleConfig{Palette: []float64{50, 100, 255, 100}, IncrementMin: 0.1, IncrementMax: 0.5},
		LetterFade:  config.FadeConfig{Palette: []float64{255, 122, 1}, Increment: 0.2},
		GuidedFlight: config.GuidedFlightConfig{
			PathPoints: 20, AlphaBounds: []float64{100, 200}, ScaleBounds: []float64{0.15, 1}, RotationRate: 1,
		},
		BlackHole:  config.ShiftConfig{Offsets: [][]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}, Increment: 0.05},
		BrokenNote: config.DriftConfig{JitterInterval: 360, TopLeftMargin: 10, BottomRightMargin: 20},
		MenuCursor: config.MenuCursorConfig{Palette: []float64{255, 255, 122, 0, 0, 122}, Increment: 0.25},
	}

	return entitiesCfg, gameCfg, animCfg
}
