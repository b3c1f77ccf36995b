package entities

import (
	"testing"

	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/types"
)

// sequenceRandom 按固定序列返回随机数，序列耗尽后循环
type sequenceRandom struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *sequenceRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *sequenceRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

// recordingSoundPlayer 记录播放过的音效
type recordingSoundPlayer struct {
	played []string
}

func (p *recordingSoundPlayer) PlaySound(soundID string) bool {
	p.played = append(p.played, soundID)
	return true
}

// baseConfigValues 返回一份完整的参数表
func baseConfigValues() map[string]float64 {
	return map[string]float64{
		config.KeyPlayerSpeed:          350,
		config.KeyEnemyHealth:          3,
		config.KeyRedEnemyHealth:       10,
		config.KeyRedEnemyChance:       0.2,
		config.KeyRedEnemyMoveSpeed:    320,
		config.KeyWandererMaxMoveSpeed: 250,
		config.KeySeekerMaxMoveSpeed:   300,
		config.KeyRunnerMoveSpeed:      250,
		config.KeyBouncerMoveSpeed:     400,
	}
}

// newTestConfig 创建测试用配置，overrides 覆盖默认值
func newTestConfig(t *testing.T, overrides map[string]float64) *config.GameConfig {
	t.Helper()
	values := baseConfigValues()
	for k, v := range overrides {
		values[k] = v
	}
	cfg, err := config.NewGameConfig(values)
	if err != nil {
		t.Fatalf("NewGameConfig() error = %v", err)
	}
	return cfg
}

var testViewport = types.Viewport{Width: 1280, Height: 720}

// newTestSpawner 创建测试用生成器
func newTestSpawner(t *testing.T, cfg *config.GameConfig, particles bool, rng RandomSource, sounds SoundPlayer) *Spawner {
	t.Helper()
	s, err := NewSpawner(SpawnerOptions{
		Config:       cfg,
		Capabilities: config.PlatformCapabilities{SupportsParticleEffects: particles},
		Viewport:     testViewport,
		Random:       rng,
		Sounds:       sounds,
	})
	if err != nil {
		t.Fatalf("NewSpawner() error = %v", err)
	}
	return s
}
