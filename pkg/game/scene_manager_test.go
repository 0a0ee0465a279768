package game

import (
	"fmt"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// stubScene 计数型测试场景
type stubScene struct {
	name    string
	updates int
}

func (s *stubScene) Update() error        { s.updates++; return nil }
func (s *stubScene) Draw(_ *ebiten.Image) {}

func TestSceneManagerStartsEmpty(t *testing.T) {
	sm := NewSceneManager()

	// 没有活动场景时 Update 是安全的空操作
	if err := sm.Update(); err != nil {
		t.Errorf("Update without a scene should be a no-op, got %v", err)
	}
}

func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	scene := &stubScene{name: "menu"}
	sm.SwitchTo(scene)

	for i := 0; i < 3; i++ {
		if err := sm.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	if scene.updates != 3 {
		t.Errorf("Active scene should receive every update, got %d", scene.updates)
	}
}

func TestSceneManagerTransition(t *testing.T) {
	sm := NewSceneManager()

	// 工厂未设置时切换失败
	if err := sm.Transition("menu"); err == nil {
		t.Error("Transition without a factory should fail")
	}

	sm.SetSceneFactory(func(name string) (Scene, error) {
		if name == "missing" {
			return nil, fmt.Errorf("no such scene")
		}
		return &stubScene{name: name}, nil
	})

	if err := sm.Transition("menu"); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if err := sm.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if err := sm.Transition("missing"); err == nil {
		t.Error("Transition to an unknown scene should fail")
	}
}
