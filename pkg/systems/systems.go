// Package systems 实现每tick流水线上的各个行为系统
//
// 固定执行顺序: 移动 -> 碰撞 -> 攻击 -> 动画 -> 边界/生命 -> 清除。
// 每个系统遍历tick开始时的实体快照,快照按ID升序,所以同一世界状态
// 下每个tick的结果完全确定。tick中途生成的实体下个tick才参与。
package systems

import "errors"

// ErrMissingStopLine 进场状态转移在没有配置停止线时被触发
// 这是装配错误,同步上抛给调用方,不重试
var ErrMissingStopLine = errors.New("approach transition requires a stop line")
