package systems

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/geowars/pkg/ecs"
	"github.com/gonewx/geowars/pkg/entities"
	"github.com/gonewx/geowars/pkg/types"
)

// SpawnRule 一种实体的定时生成规则
type SpawnRule struct {
	Kind     types.EntityKind
	Interval float64 // 生成间隔(秒)
	// Anywhere 在视口内随机位置生成（传送门等没有默认出生点的类型）
	Anywhere bool
}

// DefaultSpawnSchedule 默认的敌人生成节奏
func DefaultSpawnSchedule() []SpawnRule {
	return []SpawnRule{
		{Kind: types.KindWanderer, Interval: 1.0},
		{Kind: types.KindSeeker, Interval: 2.0},
		{Kind: types.KindRunner, Interval: 3.5},
		{Kind: types.KindBouncer, Interval: 5.0},
		{Kind: types.KindPortal, Interval: 12.0, Anywhere: true},
	}
}

// SpawnWaveSystem 按规则定时触发生成请求
// 生成失败只记录日志并跳过，不影响其它规则
type SpawnWaveSystem struct {
	entityManager *ecs.EntityManager
	spawner       EntitySpawner
	rng           entities.RandomSource
	viewport      types.Viewport
	rules         []SpawnRule
	timers        []float64
	enabled       bool
	spawned       int
}

// NewSpawnWaveSystem 创建定时生成系统
// rules 为空时使用 DefaultSpawnSchedule
func NewSpawnWaveSystem(em *ecs.EntityManager, spawner EntitySpawner, rng entities.RandomSource, viewport types.Viewport, rules []SpawnRule) *SpawnWaveSystem {
	if len(rules) == 0 {
		rules = DefaultSpawnSchedule()
	}
	if rng == nil {
		rng = entities.NewRandomSource(0)
	}
	log.Debugf("[SpawnWaveSystem] Initialized with %d rules", len(rules))

	return &SpawnWaveSystem{
		entityManager: em,
		spawner:       spawner,
		rng:           rng,
		viewport:      viewport,
		rules:         rules,
		timers:        make([]float64, len(rules)),
		enabled:       true,
	}
}

// Update 推进各规则的计时器，到期时生成
func (s *SpawnWaveSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}

	for i, rule := range s.rules {
		if rule.Interval <= 0 {
			continue
		}
		s.timers[i] += deltaTime
		for s.timers[i] >= rule.Interval {
			s.timers[i] -= rule.Interval
			s.spawn(rule)
		}
	}
}

func (s *SpawnWaveSystem) spawn(rule SpawnRule) {
	req := entities.NewSpawnRequest(rule.Kind)
	if rule.Anywhere {
		req = req.At(s.rng.Float64()*s.viewport.Width, s.rng.Float64()*s.viewport.Height)
	}

	id, err := s.spawner.Spawn(s.entityManager, req)
	if err != nil {
		log.Warnf("[SpawnWaveSystem] Skipping %s: %v", rule.Kind, err)
		return
	}
	s.spawned++
	log.Debugf("[SpawnWaveSystem] Spawned %s (entity %d)", rule.Kind, id)
}

// Spawned 已成功生成的实体数
func (s *SpawnWaveSystem) Spawned() int {
	return s.spawned
}

// Enable 启用定时生成
func (s *SpawnWaveSystem) Enable() {
	s.enabled = true
	log.Debugf("[SpawnWaveSystem] Auto spawn enabled")
}

// Disable 暂停定时生成（玩家死亡到重生之间）
func (s *SpawnWaveSystem) Disable() {
	s.enabled = false
	log.Debugf("[SpawnWaveSystem] Auto spawn disabled")
}
