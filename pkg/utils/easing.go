package utils

import "math"

// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]
// 超出范围的输入先被截断
//
// 参考：https://easings.net/

// Progress 返回 elapsed / total，截断到 [0, 1]
// total <= 0 时视为已完成
func Progress(elapsed, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return clamp01(elapsed / total)
}

// EaseOutCubic 三次方缓出：开始快，结束慢（爆炸火花外扩）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuad 二次方缓出：比 Cubic 更柔和（动画贴图展开）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
