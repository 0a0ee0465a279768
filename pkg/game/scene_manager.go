package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 按名字构造场景的工厂函数
// 场景切换用名字而不是直接引用,避免场景包之间互相依赖
type SceneFactory func(name string) (Scene, error)

// SceneManager 管理当前活动场景
// 任意时刻只有一个场景的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器
// 初始没有活动场景,先 SetSceneFactory 再 Transition 到首个场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 直接切换到给定场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// Transition 按名字构造并切换场景
func (sm *SceneManager) Transition(name string) error {
	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set, cannot transition to %q", name)
	}

	scene, err := sm.sceneFactory(name)
	if err != nil {
		return fmt.Errorf("transition to %q: %w", name, err)
	}
	log.Printf("[SceneManager] 切换场景: %s", name)
	sm.currentScene = scene
	return nil
}

// Update 推进当前场景一个tick;没有活动场景时什么都不做
func (sm *SceneManager) Update() error {
	if sm.currentScene == nil {
		return nil
	}
	return sm.currentScene.Update()
}

// Draw 绘制当前场景;没有活动场景时什么都不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
