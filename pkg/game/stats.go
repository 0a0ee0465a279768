// Package game 把各行为系统装配成完整的实体生命周期管理器,
// 并提供场景框架、设置存储、统计上报和程序生成的占位贴图。
package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"github.com/segmentio/ksuid"
	"github.com/tonegarden/starsong/pkg/types"
	"gopkg.in/yaml.v3"
)

// StatsRecorder 统计协作方接口
// 核心只发事件不等回执;实现方不得阻塞tick
type StatsRecorder interface {
	// EntitySpawned 实体生成
	EntitySpawned(kind types.EntityKind)
	// EntityCollected 收集品被收集
	EntityCollected(kind types.EntityKind, score int)
	// EntityLifespan 实体被移除,上报存活时长(毫秒)
	EntityLifespan(kind types.EntityKind, ms int64)
}

// KindTotals 单个实体种类的累计统计
type KindTotals struct {
	Spawned     int   `yaml:"spawned"`     // 生成总数
	Collected   int   `yaml:"collected"`   // 收集总数
	Score       int   `yaml:"score"`       // 收集得分合计
	LifespanMS  int64 `yaml:"lifespanMs"`  // 存活时长合计(毫秒)
	LifespanCnt int   `yaml:"lifespanCnt"` // 上报过寿命的实体数
}

// SessionStats 一次会话的统计快照,按种类名汇总
type SessionStats struct {
	SessionID string                `yaml:"sessionId"` // ksuid 会话标识,可按时间排序
	Totals    map[string]KindTotals `yaml:"totals"`
}

// StatsTracker 进程内统计实现
// 会话用 ksuid 标识;Export 把累计值序列化成 YAML 存进 gdata,
// gdata 管理器为 nil 时进入降级模式,只记内存不落盘
type StatsTracker struct {
	gdataManager *gdata.Manager
	stats        SessionStats
}

// 存储路径常量
const (
	statsObject = "stats"
)

// NewStatsTracker 创建统计追踪器
//
// 参数:
//   - gdataManager: gdata 存储管理器,可为 nil(降级模式)
//
// 返回:
//   - *StatsTracker: 追踪器实例
func NewStatsTracker(gdataManager *gdata.Manager) *StatsTracker {
	return &StatsTracker{
		gdataManager: gdataManager,
		stats: SessionStats{
			SessionID: ksuid.New().String(),
			Totals:    make(map[string]KindTotals),
		},
	}
}

// SessionID 返回本次会话的标识
func (st *StatsTracker) SessionID() string {
	return st.stats.SessionID
}

// EntitySpawned 记录一次实体生成
func (st *StatsTracker) EntitySpawned(kind types.EntityKind) {
	totals := st.stats.Totals[kind.String()]
	totals.Spawned++
	st.stats.Totals[kind.String()] = totals
}

// EntityCollected 记录一次收集
func (st *StatsTracker) EntityCollected(kind types.EntityKind, score int) {
	totals := st.stats.Totals[kind.String()]
	totals.Collected++
	totals.Score += score
	st.stats.Totals[kind.String()] = totals
}

// EntityLifespan 记录一次实体寿命上报
func (st *StatsTracker) EntityLifespan(kind types.EntityKind, ms int64) {
	totals := st.stats.Totals[kind.String()]
	totals.LifespanMS += ms
	totals.LifespanCnt++
	st.stats.Totals[kind.String()] = totals
}

// Totals 返回指定种类的累计值(不存在时为零值)
func (st *StatsTracker) Totals(kind types.EntityKind) KindTotals {
	return st.stats.Totals[kind.String()]
}

// Export 把会话统计序列化为 YAML 并写入 gdata
// 降级模式下什么都不做,返回 nil
func (st *StatsTracker) Export() error {
	if st.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&st.stats)
	if err != nil {
		return fmt.Errorf("failed to marshal session stats: %w", err)
	}
	if err := st.gdataManager.SaveObjectProp(statsObject, st.stats.SessionID, data); err != nil {
		return fmt.Errorf("failed to save session stats: %w", err)
	}

	log.Printf("[StatsTracker] 会话 %s 统计已导出", st.stats.SessionID)
	return nil
}
