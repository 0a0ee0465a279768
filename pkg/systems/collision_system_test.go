package systems

import (
	"testing"

	"github.com/tonegarden/starsong/pkg/components"
	"github.com/tonegarden/starsong/pkg/ecs"
	"github.com/tonegarden/starsong/pkg/types"
)

// TestResolveLetterImpulse_MomentumTransfer 测试体型悬殊字母对的动量传递
func TestResolveLetterImpulse_MomentumTransfer(t *testing.T) {
	// 小字母(0.3)获得动量: 速度取反后每个分量远离零一个单位
	gotX, gotY := ResolveLetterImpulse(0.3, 0.9, 2, -2, types.HeadingLeft)
	if gotX != -3 || gotY != 3 {
		t.Errorf("small letter impulse = (%v, %v), want (-3, 3)", gotX, gotY)
	}

	// 大字母(0.9)失去动量: 每个分量向零靠近一个单位
	gotX, gotY = ResolveLetterImpulse(0.9, 0.3, -1, 1, types.HeadingRight)
	if gotX != 0 || gotY != 0 {
		t.Errorf("large letter impulse = (%v, %v), want (0, 0)", gotX, gotY)
	}
}

// TestResolveLetterImpulse_SimilarSizes 测试体型相近字母对的近停反弹
func TestResolveLetterImpulse_SimilarSizes(t *testing.T) {
	tests := []struct {
		name         string
		vx, vy       float64
		wantX, wantY float64
	}{
		{"速度取反并钳制到单位", 4, -4, -1, 1},
		{"零分量保持为零", 0, 3, 0, -1},
		{"已是单位速度", -1, 1, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := ResolveLetterImpulse(0.5, 0.6, tt.vx, tt.vy, types.HeadingTop)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("ResolveLetterImpulse(%v, %v) = (%v, %v), want (%v, %v)",
					tt.vx, tt.vy, gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestResolveLetterImpulse_LargeZeroComponent 测试大字母零分量减速越过零点
func TestResolveLetterImpulse_LargeZeroComponent(t *testing.T) {
	// 大字母的零分量向零"靠近"一个单位会越过零点变成 -1
	gotX, gotY := ResolveLetterImpulse(1.0, 0.4, 0, 2, types.HeadingBottom)
	if gotX != -1 || gotY != 1 {
		t.Errorf("large letter zero component = (%v, %v), want (-1, 1)", gotX, gotY)
	}
}

// TestCollisionSystem_LetterResponseOncePerContact 测试字母碰撞响应的去抖
func TestCollisionSystem_LetterResponseOncePerContact(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewCollisionSystem(em, NewOverlapTable())

	// 两个体型相近的字母,圆形范围重叠
	a := newLetterEntity(em, 100, 100, 40, 0.5, 2, 0, types.HeadingRight)
	b := newLetterEntity(em, 130, 100, 40, 0.6, -2, 0, types.HeadingLeft)
	ids := snapshotIDs(em)

	// 持续重叠多个tick,响应只发生在第一个tick
	for i := 0; i < 5; i++ {
		cs.Update(ids)
	}

	flightA, _ := ecs.GetComponent[*components.FreeFlightComponent](em, a)
	flightB, _ := ecs.GetComponent[*components.FreeFlightComponent](em, b)
	if flightA.Heading != types.HeadingLeft {
		t.Errorf("letter A heading = %v, want left (flipped exactly once)", flightA.Heading)
	}
	if flightB.Heading != types.HeadingRight {
		t.Errorf("letter B heading = %v, want right (flipped exactly once)", flightB.Heading)
	}

	// 旋转方向也只翻转一次
	spinA, _ := ecs.GetComponent[*components.SpinComponent](em, a)
	if spinA.Rate != -0.8 {
		t.Errorf("letter A spin rate = %v, want -0.8", spinA.Rate)
	}
}

// TestCollisionSystem_SeparateThenRecontact 测试分离后重新接触会再次响应
func TestCollisionSystem_SeparateThenRecontact(t *testing.T) {
	em := ecs.NewEntityManager()
	table := NewOverlapTable()
	cs := NewCollisionSystem(em, table)

	a := newLetterEntity(em, 100, 100, 40, 0.5, 1, 0, types.HeadingRight)
	b := newLetterEntity(em, 130, 100, 40, 0.6, -1, 0, types.HeadingLeft)
	ids := snapshotIDs(em)

	// 第一次接触
	cs.Update(ids)
	if table.Len() != 1 {
		t.Fatalf("after first contact table len = %d, want 1", table.Len())
	}

	// 拉开距离,接触结束,表记录被清除
	posB, _ := ecs.GetComponent[*components.PositionComponent](em, b)
	posB.X = 500
	cs.Update(ids)
	if table.Len() != 0 {
		t.Fatalf("after separation table len = %d, want 0", table.Len())
	}

	// 再次接触,方向再翻一次,回到初始朝向
	posB.X = 130
	cs.Update(ids)

	flightA, _ := ecs.GetComponent[*components.FreeFlightComponent](em, a)
	if flightA.Heading != types.HeadingRight {
		t.Errorf("letter A heading after recontact = %v, want right (two flips total)", flightA.Heading)
	}
}

// TestCollisionSystem_LetterCircleTest 测试字母用圆形而非矩形做重叠判定
func TestCollisionSystem_LetterCircleTest(t *testing.T) {
	em := ecs.NewEntityManager()
	table := NewOverlapTable()
	cs := NewCollisionSystem(em, table)

	// 对角放置: 矩形有角部重叠,但圆心距 49.5 超过半径和 40,
	// 圆形判定下不算接触
	newLetterEntity(em, 100, 100, 40, 0.5, 1, 0, types.HeadingRight)
	newLetterEntity(em, 135, 135, 40, 0.5, -1, 0, types.HeadingLeft)
	cs.Update(snapshotIDs(em))

	if table.Len() != 0 {
		t.Errorf("diagonal letters with center distance 49.5 and radii 20+20 should not touch, table len = %d", table.Len())
	}
}

// TestCollisionSystem_SpawningAdoptsOpposite 测试进场敌人采用对方巡逻方向的反向
func TestCollisionSystem_SpawningAdoptsOpposite(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewCollisionSystem(em, NewOverlapTable())

	// A 进场中(向右), B 已活跃(向右),包围盒重叠
	a := newStraferEntity(em, 100, 100, components.StateSpawning, 1)
	b := newStraferEntity(em, 120, 100, components.StateActive, 1)
	cs.Update(snapshotIDs(em))

	strafeA, _ := ecs.GetComponent[*components.StrafeComponent](em, a)
	strafeB, _ := ecs.GetComponent[*components.StrafeComponent](em, b)
	if strafeA.Direction != -1 {
		t.Errorf("spawning strafer direction = %v, want -1 (opposite of partner)", strafeA.Direction)
	}
	if strafeB.Direction != 1 {
		t.Errorf("active partner direction = %v, want 1 (unchanged)", strafeB.Direction)
	}
}

// TestCollisionSystem_BothSpawningOrderIndependent 测试双方都进场时的同时采用
func TestCollisionSystem_BothSpawningOrderIndependent(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewCollisionSystem(em, NewOverlapTable())

	// 两个进场中的横移炮灰都向右,双方基于响应前的值同时计算,
	// 结果都是 -1,与处理顺序无关
	a := newStraferEntity(em, 100, 100, components.StateSpawning, 1)
	b := newStraferEntity(em, 120, 100, components.StateSpawning, 1)
	cs.Update(snapshotIDs(em))

	strafeA, _ := ecs.GetComponent[*components.StrafeComponent](em, a)
	strafeB, _ := ecs.GetComponent[*components.StrafeComponent](em, b)
	if strafeA.Direction != -1 || strafeB.Direction != -1 {
		t.Errorf("both-spawning directions = (%v, %v), want (-1, -1)", strafeA.Direction, strafeB.Direction)
	}
}

// TestCollisionSystem_ActivePairMutualFlip 测试活跃敌人对的相互翻转
func TestCollisionSystem_ActivePairMutualFlip(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewCollisionSystem(em, NewOverlapTable())

	a := newStraferEntity(em, 100, 100, components.StateActive, 1)
	b := newStraferEntity(em, 120, 100, components.StateActive, -1)
	ids := snapshotIDs(em)

	// 持续重叠只翻转一次
	cs.Update(ids)
	cs.Update(ids)
	cs.Update(ids)

	strafeA, _ := ecs.GetComponent[*components.StrafeComponent](em, a)
	strafeB, _ := ecs.GetComponent[*components.StrafeComponent](em, b)
	if strafeA.Direction != -1 {
		t.Errorf("strafer A direction = %v, want -1", strafeA.Direction)
	}
	if strafeB.Direction != 1 {
		t.Errorf("strafer B direction = %v, want 1", strafeB.Direction)
	}
}

// TestCollisionSystem_EnemyWithoutStrafeUnaffected 测试无巡逻方向的敌人参与碰撞但不变向
func TestCollisionSystem_EnemyWithoutStrafeUnaffected(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewCollisionSystem(em, NewOverlapTable())

	// 旋转炮灰没有巡逻方向,和它相撞的活跃横移炮灰照常翻转
	spinner := em.CreateEntity()
	em.AddComponent(spinner, &components.BehaviorComponent{Kind: types.KindSpinner, State: components.StateActive})
	em.AddComponent(spinner, &components.PositionComponent{X: 100, Y: 100, Width: 80, Height: 80})

	strafer := newStraferEntity(em, 130, 110, components.StateActive, 1)
	cs.Update(snapshotIDs(em))

	strafe, _ := ecs.GetComponent[*components.StrafeComponent](em, strafer)
	if strafe.Direction != -1 {
		t.Errorf("strafer against spinner direction = %v, want -1", strafe.Direction)
	}
}

// TestCollisionSystem_KilledEntitiesIgnored 测试已击杀实体不参与碰撞
func TestCollisionSystem_KilledEntitiesIgnored(t *testing.T) {
	em := ecs.NewEntityManager()
	table := NewOverlapTable()
	cs := NewCollisionSystem(em, table)

	a := newStraferEntity(em, 100, 100, components.StateActive, 1)
	b := newStraferEntity(em, 120, 100, components.StateActive, 1)

	behaviorB, _ := ecs.GetComponent[*components.BehaviorComponent](em, b)
	behaviorB.State = components.StateKilled
	cs.Update(snapshotIDs(em))

	strafeA, _ := ecs.GetComponent[*components.StrafeComponent](em, a)
	if strafeA.Direction != 1 {
		t.Errorf("strafer colliding with killed entity flipped, direction = %v", strafeA.Direction)
	}
	if table.Len() != 0 {
		t.Errorf("killed entity entered overlap table, len = %d", table.Len())
	}
}
