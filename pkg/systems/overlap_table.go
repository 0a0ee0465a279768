package systems

import "github.com/tonegarden/starsong/pkg/ecs"

// pairKey 无序实体对的规范化键,恒有 low < high
type pairKey struct {
	low, high ecs.EntityID
}

// makePairKey 构造规范化的实体对键
func makePairKey(a, b ecs.EntityID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{low: a, high: b}
}

// OverlapTable 记录当前"接触中"的无序实体对
//
// 这是碰撞系统的去抖记录:一对实体从接触到分离只触发一次响应。
// 表只存句柄,不持有任何实体引用,所以击杀实体不会留下悬垂引用;
// 击杀时 PurgeEntity 会把涉及该句柄的关系双向清掉。
type OverlapTable struct {
	pairs map[pairKey]struct{}
	// 每个句柄当前接触的对端集合,用于按实体快速清除
	peers map[ecs.EntityID]map[ecs.EntityID]struct{}
}

// NewOverlapTable 创建空的接触关系表
func NewOverlapTable() *OverlapTable {
	return &OverlapTable{
		pairs: make(map[pairKey]struct{}),
		peers: make(map[ecs.EntityID]map[ecs.EntityID]struct{}),
	}
}

// Contains 判断实体对是否已记录
func (t *OverlapTable) Contains(a, b ecs.EntityID) bool {
	_, ok := t.pairs[makePairKey(a, b)]
	return ok
}

// Insert 记录实体对(重复插入是空操作)
func (t *OverlapTable) Insert(a, b ecs.EntityID) {
	key := makePairKey(a, b)
	if _, ok := t.pairs[key]; ok {
		return
	}
	t.pairs[key] = struct{}{}
	t.addPeer(a, b)
	t.addPeer(b, a)
}

// Remove 移除实体对(接触结束)
func (t *OverlapTable) Remove(a, b ecs.EntityID) {
	key := makePairKey(a, b)
	if _, ok := t.pairs[key]; !ok {
		return
	}
	delete(t.pairs, key)
	t.removePeer(a, b)
	t.removePeer(b, a)
}

// PurgeEntity 移除涉及指定句柄的所有关系(双向)
// 实体被击杀的那个tick必须调用,保证表里不残留死句柄
func (t *OverlapTable) PurgeEntity(id ecs.EntityID) {
	peerSet, ok := t.peers[id]
	if !ok {
		return
	}
	for peer := range peerSet {
		delete(t.pairs, makePairKey(id, peer))
		t.removePeer(peer, id)
	}
	delete(t.peers, id)
}

// PeerCount 返回句柄当前接触的对端数量
func (t *OverlapTable) PeerCount(id ecs.EntityID) int {
	return len(t.peers[id])
}

// Len 返回当前记录的实体对数量
func (t *OverlapTable) Len() int {
	return len(t.pairs)
}

func (t *OverlapTable) addPeer(id, peer ecs.EntityID) {
	set, ok := t.peers[id]
	if !ok {
		set = make(map[ecs.EntityID]struct{})
		t.peers[id] = set
	}
	set[peer] = struct{}{}
}

func (t *OverlapTable) removePeer(id, peer ecs.EntityID) {
	if set, ok := t.peers[id]; ok {
		delete(set, peer)
		if len(set) == 0 {
			delete(t.peers, id)
		}
	}
}
