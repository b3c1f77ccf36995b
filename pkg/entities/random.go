package entities

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource 生成器使用的随机数源
// 可注入，以便测试在固定种子下复现结果
type RandomSource interface {
	// Float64 返回 [0.0, 1.0) 内的随机数
	Float64() float64
	// Intn 返回 [0, n) 内的随机整数
	Intn(n int) int
}

// lockedRand 带互斥锁的 *rand.Rand
// 多个 goroutine 共享同一随机源时每次抽取仍然互相独立
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource 创建线程安全的随机数源
// 如果 seed 为 0，使用当前时间作为种子
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// randomRange 返回 [min, max) 内均匀分布的随机数
// max <= min 时直接返回 min
func randomRange(rng RandomSource, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// randomBool 以概率 p 返回 true（一次伯努利试验）
func randomBool(rng RandomSource, p float64) bool {
	return rng.Float64() < p
}
