package app

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/gonewx/geowars/pkg/components"
	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/ecs"
	"github.com/gonewx/geowars/pkg/entities"
	"github.com/gonewx/geowars/pkg/systems"
	"github.com/gonewx/geowars/pkg/types"
)

const (
	// FireInterval 按住开火时两发子弹的间隔（秒）
	FireInterval = 0.1
	// RespawnDelay 玩家死亡到重生的时间（秒）
	RespawnDelay = 2.0
	// DefaultDecorations 开局生成的背景圆数量
	DefaultDecorations = 12
)

// Input 一帧的玩家输入
type Input struct {
	Move types.Vec2 // 移动方向（未归一化）
	Fire bool
	Aim  types.Vec2 // 瞄准点（世界坐标）
}

// WorldOptions 世界的构造参数
type WorldOptions struct {
	Config       *config.GameConfig
	Capabilities config.PlatformCapabilities
	Viewport     types.Viewport
	Random       entities.RandomSource
	Sounds       entities.SoundPlayer
	Decorations  int                 // 0 时使用 DefaultDecorations，负数表示不生成
	Schedule     []systems.SpawnRule // 为空时使用默认节奏
}

// World 不依赖渲染的游戏世界：实体存储、生成器和逐帧系统
type World struct {
	em       *ecs.EntityManager
	spawner  *entities.Spawner
	viewport types.Viewport

	movement *systems.MovementSystem
	physics  *systems.PhysicsSystem
	lifetime *systems.LifetimeSystem
	waves    *systems.SpawnWaveSystem

	fireCooldown float64
	respawnTimer float64
}

// NewWorld 创建世界并生成背景、装饰和玩家
func NewWorld(opts WorldOptions) (*World, error) {
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = config.DefaultViewport()
	}
	if opts.Random == nil {
		opts.Random = entities.NewRandomSource(0)
	}

	spawner, err := entities.NewSpawner(entities.SpawnerOptions{
		Config:       opts.Config,
		Capabilities: opts.Capabilities,
		Viewport:     opts.Viewport,
		Random:       opts.Random,
		Sounds:       opts.Sounds,
	})
	if err != nil {
		return nil, err
	}

	em := ecs.NewEntityManager()
	w := &World{
		em:       em,
		spawner:  spawner,
		viewport: opts.Viewport,
		movement: systems.NewMovementSystem(em, opts.Viewport, opts.Random),
		physics:  systems.NewPhysicsSystem(em, spawner),
		lifetime: systems.NewLifetimeSystem(em, opts.Viewport),
		waves:    systems.NewSpawnWaveSystem(em, spawner, opts.Random, opts.Viewport, opts.Schedule),
	}

	decorations := opts.Decorations
	if decorations == 0 {
		decorations = DefaultDecorations
	}

	if _, err := spawner.Spawn(em, entities.NewSpawnRequest(types.KindBackground)); err != nil {
		return nil, fmt.Errorf("spawn background: %w", err)
	}
	for i := 0; i < decorations; i++ {
		if _, err := spawner.Spawn(em, entities.NewSpawnRequest(types.KindBackgroundDecoration)); err != nil {
			return nil, fmt.Errorf("spawn decoration: %w", err)
		}
	}
	if _, err := spawner.Spawn(em, entities.NewSpawnRequest(types.KindPlayer)); err != nil {
		return nil, fmt.Errorf("spawn player: %w", err)
	}

	log.Infof("[World] Ready: %d entities, particles=%v", em.EntityCount(), opts.Capabilities.SupportsParticleEffects)
	return w, nil
}

// EntityManager 返回实体存储
func (w *World) EntityManager() *ecs.EntityManager {
	return w.em
}

// Viewport 返回视口尺寸
func (w *World) Viewport() types.Viewport {
	return w.viewport
}

// Stats 返回碰撞结算的累计结果
func (w *World) Stats() systems.PhysicsStats {
	return w.physics.Stats()
}

// Spawned 返回定时生成的实体数
func (w *World) Spawned() int {
	return w.waves.Spawned()
}

// Player 返回当前玩家实体
func (w *World) Player() (ecs.EntityID, bool) {
	return entities.FindEntityByKind(w.em, types.KindPlayer)
}

// Step 推进一帧
func (w *World) Step(dt float64, in Input) {
	if player, ok := w.Player(); ok {
		w.applyInput(player, dt, in)
	} else {
		w.respawn(dt)
	}

	w.waves.Update(dt)
	w.movement.Update(dt)
	w.physics.Update(dt)
	w.lifetime.Update(dt)
	w.em.RemoveMarkedEntities()
}

func (w *World) applyInput(player ecs.EntityID, dt float64, in Input) {
	if move, ok := ecs.GetComponent[*components.MovementComponent](w.em, player); ok {
		move.Direction = in.Move.Normalize()
		if move.Direction.Len() > 0 {
			move.Rotation = math.Atan2(move.Direction.Y, move.Direction.X)
		}
	}

	w.fireCooldown -= dt
	if !in.Fire || w.fireCooldown > 0 {
		return
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](w.em, player)
	if !ok {
		return
	}
	dir := in.Aim.Sub(pos.Vec())
	if dir.Len() == 0 {
		return
	}

	req := entities.NewSpawnRequest(types.KindBullet).
		At(pos.X, pos.Y).
		With(entities.PayloadDirection, dir)
	if _, err := w.spawner.Spawn(w.em, req); err != nil {
		log.Warnf("[World] Failed to fire: %v", err)
		return
	}
	w.fireCooldown = FireInterval
}

// respawn 玩家死亡期间暂停刷怪，延迟后在视口中心重生
func (w *World) respawn(dt float64) {
	if w.respawnTimer == 0 {
		w.waves.Disable()
	}
	w.respawnTimer += dt
	if w.respawnTimer < RespawnDelay {
		return
	}

	if _, err := w.spawner.Spawn(w.em, entities.NewSpawnRequest(types.KindPlayer)); err != nil {
		log.Errorf("[World] Failed to respawn player: %v", err)
		return
	}
	w.respawnTimer = 0
	w.waves.Enable()
	log.Infof("[World] Player respawned")
}
