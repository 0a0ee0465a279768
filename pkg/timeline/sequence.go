// Package timeline 提供确定性的关键帧序列生成与播放游标
//
// 所有实体的渐变动画(透明度、缩放、闪烁、引导飞行路径)都由这里的
// 插值序列驱动:先一次性生成固定数量的关键帧,再由 Cursor 按固定
// 增量在序列上推进。序列生成只发生在实体构造阶段,tick 循环内不做
// 任何分配。
package timeline

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter 序列构造参数非法(如关键帧数量不足)
var ErrInvalidParameter = errors.New("invalid timeline parameter")

// Point 二维路径上的一个关键点
type Point struct {
	X, Y float64
}

// BuildSequence 在 start 和 end 之间生成 count 个等距关键帧
// 首元素为 start,末元素为 end,相邻元素间隔恒定 (end-start)/(count-1)
// 参数: count - 关键帧数量,必须 >= 2
// 返回: 关键帧切片;count < 2 时返回 ErrInvalidParameter
func BuildSequence(start, end float64, count int) ([]float64, error) {
	if count < 2 {
		return nil, fmt.Errorf("sequence needs at least 2 keyframes, got %d: %w", count, ErrInvalidParameter)
	}

	step := (end - start) / float64(count-1)
	seq := make([]float64, count)
	for i := range seq {
		seq[i] = start + step*float64(i)
	}
	// 避免浮点累积误差,末帧精确取 end
	seq[count-1] = end
	return seq, nil
}

// BuildPointPath 在两个点之间生成 count 个等距路径关键点
// 两个坐标轴各自按 BuildSequence 的规则插值
func BuildPointPath(start, end Point, count int) ([]Point, error) {
	xs, err := BuildSequence(start.X, end.X, count)
	if err != nil {
		return nil, fmt.Errorf("build point path x axis: %w", err)
	}
	ys, err := BuildSequence(start.Y, end.Y, count)
	if err != nil {
		return nil, fmt.Errorf("build point path y axis: %w", err)
	}

	path := make([]Point, count)
	for i := range path {
		path[i] = Point{X: xs[i], Y: ys[i]}
	}
	return path, nil
}

// Reverse 返回序列的逆序拷贝,原序列不变
// 用于把上升渐变翻转为下降渐变(引导飞行的透明度和缩放都是由大到小)
func Reverse(seq []float64) []float64 {
	out := make([]float64, len(seq))
	for i, v := range seq {
		out[len(seq)-1-i] = v
	}
	return out
}
