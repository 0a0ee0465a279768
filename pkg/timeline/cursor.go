package timeline

import "math"

// Cursor 关键帧序列上的播放游标
//
// 游标位置是浮点数,支持小数增量(如星星闪烁每 tick 前进 0.1~0.5),
// 取整后才作为关键帧下标。循环游标到达序列末尾后回绕,一次性游标
// 越过末尾即视为播放完毕,由调用方检测 Done 并触发后续动作
// (淡出击杀、引导飞行到达汇点等)。
type Cursor struct {
	Pos       float64 // 当前位置(小数)
	Increment float64 // 每次 Advance 前进的量
	Length    int     // 序列长度
	Cyclic    bool    // true=循环回绕, false=一次性
}

// NewCyclicCursor 创建循环游标
func NewCyclicCursor(length int, increment float64) Cursor {
	return Cursor{Increment: increment, Length: length, Cyclic: true}
}

// NewOneShotCursor 创建一次性游标
func NewOneShotCursor(length int, increment float64) Cursor {
	return Cursor{Increment: increment, Length: length}
}

// Advance 将游标前进一个增量
// 循环游标对序列长度取模(结果恒在 [0, Length) 内),一次性游标直接累加
func (c *Cursor) Advance() {
	c.Pos += c.Increment
	if c.Cyclic && c.Length > 0 {
		c.Pos = math.Mod(c.Pos, float64(c.Length))
		if c.Pos < 0 {
			c.Pos += float64(c.Length)
		}
	}
}

// Done 报告一次性游标是否已越过序列末尾
// 循环游标永远返回 false
func (c *Cursor) Done() bool {
	return !c.Cyclic && c.Pos >= float64(c.Length)
}

// Index 返回当前关键帧下标
// 一次性游标播放完毕后停在最后一帧,保证下标永不越界
func (c *Cursor) Index() int {
	if c.Length == 0 {
		return 0
	}
	idx := int(c.Pos)
	if idx >= c.Length {
		return c.Length - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// Reset 将游标拨回序列起点
func (c *Cursor) Reset() {
	c.Pos = 0
}
