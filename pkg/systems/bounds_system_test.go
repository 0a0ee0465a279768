package systems

import (
	"testing"

	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/types"
)

func newDecoration(em *ecs.EntityManager, kind types.EntityKind, x, y, size float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.BehaviorComponent{Kind: kind, State: components.StateActive})
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y, Width: size, Height: size})
	return id
}

// TestBoundsSystem_ScrollingDecorationRemovedBelowScreen 测试滚出下边缘的装饰被移除
func TestBoundsSystem_ScrollingDecorationRemovedBelowScreen(t *testing.T) {
	em := ecs.NewEntityManager()
	reaper := &recordReaper{em: em}
	bs := NewBoundsSystem(em, testGameConfig(), reaper)

	// 上边缘刚越过屏幕底(900)的星星被移除,还差一点的保留
	gone := newDecoration(em, types.KindStar, 700, 901, 4)
	kept := newDecoration(em, types.KindStar, 700, 899, 4)
	stillOnScreen := newDecoration(em, types.KindNote, 300, 500, 30)

	bs.Update(snapshotIDs(em))

	if len(reaper.kills) != 1 || reaper.kills[0] != gone {
		t.Fatalf("kills = %v, want exactly [%d]", reaper.kills, gone)
	}
	for _, id := range []ecs.EntityID{kept, stillOnScreen} {
		behavior, _ := ecs.GetComponent[*components.BehaviorComponent](em, id)
		if behavior.State == components.StateKilled {
			t.Errorf("entity %d removed while still visible", id)
		}
	}
}

// TestBoundsSystem_LetterExtendedBounds 测试字母的四向扩展击杀边界
func TestBoundsSystem_LetterExtendedBounds(t *testing.T) {
	// 游戏区 1440x900,扩展边界 150: 合法区间 X [-150, 1590], Y [-150, 1050]
	tests := []struct {
		name     string
		x, y     float64
		wantKill bool
	}{
		{"左侧完全越界", -200, 400, true},   // right = -160 < -150
		{"左侧压线存活", -185, 400, false},  // right = -145
		{"右侧完全越界", 1595, 400, true},   // left = 1595 > 1590
		{"上方完全越界", 700, -200, true},   // bottom = -160 < -150
		{"下方完全越界", 700, 1055, true},   // top = 1055 > 1050
		{"屏幕外但在扩展边界内", 1500, 400, false}, // left = 1500 <= 1590
		{"屏幕内", 700, 400, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			reaper := &recordReaper{em: em}
			bs := NewBoundsSystem(em, testGameConfig(), reaper)

			newLetterEntity(em, tt.x, tt.y, 40, 0.5, 1, 1, types.HeadingRight)
			bs.Update(snapshotIDs(em))

			gotKill := len(reaper.kills) == 1
			if gotKill != tt.wantKill {
				t.Errorf("letter at (%v, %v): killed = %v, want %v", tt.x, tt.y, gotKill, tt.wantKill)
			}
		})
	}
}

// TestBoundsSystem_HealthDepletedRemoved 测试生命值归零的实体被移除
func TestBoundsSystem_HealthDepletedRemoved(t *testing.T) {
	em := ecs.NewEntityManager()
	reaper := &recordReaper{em: em}
	bs := NewBoundsSystem(em, testGameConfig(), reaper)

	dead := newStraferEntity(em, 300, 150, components.StateActive, 1)
	em.AddComponent(dead, &components.HealthComponent{CurrentHealth: 0, MaxHealth: 20})

	alive := newStraferEntity(em, 500, 150, components.StateActive, 1)
	em.AddComponent(alive, &components.HealthComponent{CurrentHealth: 7, MaxHealth: 20})

	bs.Update(snapshotIDs(em))

	if len(reaper.kills) != 1 || reaper.kills[0] != dead {
		t.Errorf("kills = %v, want exactly [%d]", reaper.kills, dead)
	}
}

// TestBoundsSystem_GuidedNoteExemptFromScrollRule 测试引导飞行音符不受滚动出界规则约束
func TestBoundsSystem_GuidedNoteExemptFromScrollRule(t *testing.T) {
	em := ecs.NewEntityManager()
	reaper := &recordReaper{em: em}
	bs := NewBoundsSystem(em, testGameConfig(), reaper)

	// 菜单音符由引导飞行在路径终点移除,即使位置异常也不走出界规则
	id := newDecoration(em, types.KindNote, 700, 950, 30)
	em.AddComponent(id, &components.GuidedFlightComponent{})

	bs.Update(snapshotIDs(em))

	if len(reaper.kills) != 0 {
		t.Errorf("guided note removed by bounds rule: %v", reaper.kills)
	}
}
