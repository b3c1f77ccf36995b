package types

import "math"

// Vec2 二维向量，同时用作世界坐标点
type Vec2 struct {
	X, Y float64
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量相减
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 向量缩放
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Len 向量长度
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize 返回单位向量，零向量原样返回
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// DistanceTo 两点距离
func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Rect 轴对齐矩形，(X, Y) 为左上角
type Rect struct {
	X, Y, W, H float64
}

// MaxX 右边界
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY 下边界
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Contains 判断点是否在矩形内（含边界）
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Expand 向四周扩展 margin
func (r Rect) Expand(margin float64) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Viewport 视口尺寸（逻辑像素）
type Viewport struct {
	Width, Height float64
}

// Bounds 视口矩形，原点在左上角
func (v Viewport) Bounds() Rect {
	return Rect{W: v.Width, H: v.Height}
}

// Center 视口中心
func (v Viewport) Center() Vec2 {
	return Vec2{X: v.Width / 2, Y: v.Height / 2}
}
