// Package menu 实现菜单导航光标
//
// 光标维护一组有序的可选条目和当前下标,高亮几何随选中条目移动,
// 高亮闪烁由 timeline 的循环游标驱动。包本身不做任何文本排版或
// 像素绘制,渲染协作方只消费 Highlight 几何和 HighlightAlpha。
package menu

import (
	"errors"
	"fmt"

	"github.com/tonegarden/starsong/pkg/timeline"
)

// ErrMissingSelection 在没有注册任何条目时操作光标
var ErrMissingSelection = errors.New("menu has no registered selections")

// Rect 条目的选中区域几何
type Rect struct {
	X, Y          float64 // 左上角坐标
	Width, Height float64
}

// CenterX 返回区域水平中心
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY 返回区域垂直中心
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Entry 一个可选中的菜单条目
type Entry struct {
	Label      string // 条目文本(渲染协作方使用)
	Bounds     Rect   // 选中区域,高亮几何吸附到这里
	Transition string // 选中后要切换到的场景名
}

// Cursor 菜单导航光标
type Cursor struct {
	entries   []Entry
	index     int
	highlight Rect
	palette   []float64
	phase     timeline.Cursor
}

// NewCursor 创建菜单光标
// palette 是高亮透明度关键帧,increment 是每tick的游标增量
func NewCursor(palette []float64, increment float64) *Cursor {
	return &Cursor{
		palette: palette,
		phase:   timeline.NewCyclicCursor(len(palette), increment),
	}
}

// AddEntries 注册可选条目(应在所有操作之前完成)
// 第一个注册的条目成为初始选中项,高亮几何立即吸附过去
func (c *Cursor) AddEntries(entries ...Entry) {
	wasEmpty := len(c.entries) == 0
	c.entries = append(c.entries, entries...)
	if wasEmpty && len(c.entries) > 0 {
		c.highlight = c.entries[0].Bounds
	}
}

// Move 将选中下标移动 delta(可为负),对条目数取模回绕
// 高亮几何吸附到新条目,闪烁相位重置到起点
func (c *Cursor) Move(delta int) error {
	if len(c.entries) == 0 {
		return fmt.Errorf("move cursor: %w", ErrMissingSelection)
	}

	n := len(c.entries)
	c.index = ((c.index+delta)%n + n) % n
	c.highlight = c.entries[c.index].Bounds
	c.phase.Reset()
	return nil
}

// Select 返回当前选中的条目
func (c *Cursor) Select() (Entry, error) {
	if len(c.entries) == 0 {
		return Entry{}, fmt.Errorf("select entry: %w", ErrMissingSelection)
	}
	return c.entries[c.index], nil
}

// Tick 推进一帧高亮闪烁动画
func (c *Cursor) Tick() error {
	if len(c.entries) == 0 {
		return fmt.Errorf("tick cursor: %w", ErrMissingSelection)
	}
	c.phase.Advance()
	return nil
}

// HighlightAlpha 返回当前帧的高亮透明度
func (c *Cursor) HighlightAlpha() float64 {
	if len(c.palette) == 0 {
		return 255
	}
	return c.palette[c.phase.Index()]
}

// Highlight 返回当前高亮几何
func (c *Cursor) Highlight() Rect {
	return c.highlight
}

// Index 返回当前选中下标
func (c *Cursor) Index() int {
	return c.index
}

// Len 返回已注册条目数
func (c *Cursor) Len() int {
	return len(c.entries)
}

// Entries 返回全部条目(渲染协作方遍历绘制)
func (c *Cursor) Entries() []Entry {
	return c.entries
}
