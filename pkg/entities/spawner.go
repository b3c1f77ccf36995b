package entities

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/ecs"
	"github.com/gonewx/geowars/pkg/types"
)

// spawnRoutine 单个类型的生成例程
type spawnRoutine func(s *Spawner, req SpawnRequest) (*ComposedEntity, error)

// spawnRegistry 类型 -> 生成例程
// 包初始化时建立，之后只读
var spawnRegistry = map[types.EntityKind]spawnRoutine{
	types.KindBackground:           spawnPlaced,
	types.KindBackgroundDecoration: spawnPlaced,
	types.KindPlayer:               spawnPlaced,
	types.KindBullet:               spawnBullet,
	types.KindWanderer:             spawnEnemy,
	types.KindSeeker:               spawnEnemy,
	types.KindRunner:               spawnEnemy,
	types.KindBouncer:              spawnEnemy,
	types.KindExplosion:            spawnPlaced,
	types.KindPortal:               spawnPlaced,
	types.KindCrystal:              spawnPlaced,
}

func init() {
	for _, kind := range types.AllEntityKinds() {
		if _, ok := spawnRegistry[kind]; !ok {
			panic(fmt.Sprintf("entities: no spawn routine registered for %s", kind))
		}
	}
}

// SpawnerOptions 生成器依赖
type SpawnerOptions struct {
	Config       *config.GameConfig
	Capabilities config.PlatformCapabilities
	Viewport     types.Viewport
	Random       RandomSource // nil 时使用时间种子
	Sounds       SoundPlayer  // 可为 nil
}

// Spawner 实体生成分发器
// 配置和平台能力在构造后只读，可被多个 goroutine 同时调用
type Spawner struct {
	placement *PlacementOracle
	variants  *VariantSelector
	composer  *Composer
}

// NewSpawner 创建生成器
// 缺少配置时返回 config.ErrConfigurationMissing
func NewSpawner(opts SpawnerOptions) (*Spawner, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("new spawner: %w: no game config", config.ErrConfigurationMissing)
	}
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = config.DefaultViewport()
	}
	rng := opts.Random
	if rng == nil {
		rng = NewRandomSource(0)
	}

	log.Debugf("[Spawner] Created (viewport=%.0fx%.0f, particles=%v)",
		opts.Viewport.Width, opts.Viewport.Height, opts.Capabilities.SupportsParticleEffects)

	return &Spawner{
		placement: NewPlacementOracle(opts.Viewport, rng),
		variants:  NewVariantSelector(opts.Config, rng),
		composer:  NewComposer(opts.Config, opts.Capabilities, opts.Viewport, rng, opts.Sounds),
	}, nil
}

// Placement 返回生成器使用的出生位置计算器
func (s *Spawner) Placement() *PlacementOracle {
	return s.placement
}

// Dispatch 把生成请求分发给对应类型的例程，返回组合好的实体
// 未注册的类型返回 ErrUnknownKind，且不做任何工作
func (s *Spawner) Dispatch(req SpawnRequest) (*ComposedEntity, error) {
	routine, ok := spawnRegistry[req.Kind]
	if !ok {
		return nil, fmt.Errorf("dispatch: %w: %s", ErrUnknownKind, req.Kind)
	}

	e, err := routine(s, req)
	if err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", req.Kind, err)
	}
	return e, nil
}

// Spawn 分发请求并把结果写入实体存储
func (s *Spawner) Spawn(em *ecs.EntityManager, req SpawnRequest) (ecs.EntityID, error) {
	e, err := s.Dispatch(req)
	if err != nil {
		return 0, err
	}
	return Materialize(em, e)
}

// RegisteredKinds 按类型序号返回注册表中的所有类型
func RegisteredKinds() []types.EntityKind {
	kinds := make([]types.EntityKind, 0, len(spawnRegistry))
	for kind := range spawnRegistry {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// spawnPlaced 位置 + 组合，没有变体和负载
func spawnPlaced(s *Spawner, req SpawnRequest) (*ComposedEntity, error) {
	return s.composer.Compose(ComposeRequest{
		Kind:     req.Kind,
		Position: s.placement.Resolve(req.Kind, req),
	})
}

// spawnEnemy 敌人：先选位置，再选变体
func spawnEnemy(s *Spawner, req SpawnRequest) (*ComposedEntity, error) {
	pos := s.placement.Resolve(req.Kind, req)
	variant := s.variants.Select(req.Kind)
	if variant.IsRed {
		log.Debugf("[Spawner] Red %s (health=%d, speed=%.0f)", req.Kind, variant.Health, variant.MoveSpeed)
	}

	return s.composer.Compose(ComposeRequest{
		Kind:     req.Kind,
		Variant:  variant,
		Position: pos,
	})
}

// spawnBullet 子弹：方向在任何组合工作之前校验
func spawnBullet(s *Spawner, req SpawnRequest) (*ComposedEntity, error) {
	dir, err := directionFromPayload(req.Payload)
	if err != nil {
		return nil, err
	}

	return s.composer.Compose(ComposeRequest{
		Kind:      req.Kind,
		Position:  s.placement.Resolve(req.Kind, req),
		Direction: dir,
	})
}
