package systems

import "testing"

// TestOverlapTable_UnorderedPairs 测试实体对不区分顺序
func TestOverlapTable_UnorderedPairs(t *testing.T) {
	table := NewOverlapTable()

	table.Insert(7, 3)
	if !table.Contains(3, 7) || !table.Contains(7, 3) {
		t.Fatal("pair (7,3) not found in both orders")
	}
	if table.Len() != 1 {
		t.Fatalf("len = %d, want 1", table.Len())
	}

	// 重复插入是空操作
	table.Insert(3, 7)
	if table.Len() != 1 {
		t.Errorf("duplicate insert changed len to %d", table.Len())
	}

	table.Remove(7, 3)
	if table.Contains(3, 7) || table.Len() != 0 {
		t.Error("pair survived removal")
	}
}

// TestOverlapTable_PurgeEntity 测试按实体双向清除所有关系
func TestOverlapTable_PurgeEntity(t *testing.T) {
	table := NewOverlapTable()

	// 实体5同时接触 1、2、9,另有与它无关的一对
	table.Insert(5, 1)
	table.Insert(2, 5)
	table.Insert(5, 9)
	table.Insert(1, 2)

	if table.PeerCount(5) != 3 {
		t.Fatalf("peer count = %d, want 3", table.PeerCount(5))
	}

	table.PurgeEntity(5)

	if table.Contains(5, 1) || table.Contains(5, 2) || table.Contains(5, 9) {
		t.Error("relations of purged entity survived")
	}
	if !table.Contains(1, 2) {
		t.Error("unrelated pair removed by purge")
	}
	if table.PeerCount(5) != 0 {
		t.Errorf("purged entity peer count = %d, want 0", table.PeerCount(5))
	}
	// 对端侧的索引同样被清掉,后续以对端为键的清除不会再碰到5
	if table.PeerCount(9) != 0 {
		t.Errorf("peer 9 still indexes purged entity, count = %d", table.PeerCount(9))
	}
	if table.Len() != 1 {
		t.Errorf("len = %d, want 1", table.Len())
	}
}

// TestOverlapTable_PurgeUnknownEntity 测试清除不存在的实体是空操作
func TestOverlapTable_PurgeUnknownEntity(t *testing.T) {
	table := NewOverlapTable()
	table.Insert(1, 2)

	table.PurgeEntity(42)

	if table.Len() != 1 || !table.Contains(1, 2) {
		t.Error("purge of unknown entity disturbed the table")
	}
}
