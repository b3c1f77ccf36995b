package systems

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/geowars/pkg/components"
	"github.com/gonewx/geowars/pkg/ecs"
	"github.com/gonewx/geowars/pkg/entities"
	"github.com/gonewx/geowars/pkg/types"
)

// defaultHitboxSize 视觉附件没有给出尺寸时使用的碰撞盒边长
const defaultHitboxSize = 40.0

// EntitySpawner 系统使用的生成入口（由 entities.Spawner 实现）
type EntitySpawner interface {
	Spawn(em *ecs.EntityManager, req entities.SpawnRequest) (ecs.EntityID, error)
}

// PhysicsStats 碰撞结算的累计结果
type PhysicsStats struct {
	EnemiesKilled     int
	CrystalsCollected int
	PlayerDeaths      int
}

// PhysicsSystem 处理碰撞结算
//   - 子弹 × 敌人：扣 1 点生命，子弹销毁；敌人死亡时在原地生成爆炸和水晶
//   - 玩家 × 水晶：收集
//   - 玩家 × 敌人：玩家死亡并生成爆炸，重生由调用方负责
type PhysicsSystem struct {
	em      *ecs.EntityManager
	spawner EntitySpawner
	stats   PhysicsStats
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - spawner: 爆炸和水晶的生成入口
func NewPhysicsSystem(em *ecs.EntityManager, spawner EntitySpawner) *PhysicsSystem {
	return &PhysicsSystem{
		em:      em,
		spawner: spawner,
	}
}

// Stats 返回累计结果
func (ps *PhysicsSystem) Stats() PhysicsStats {
	return ps.stats
}

// collider 参与本帧碰撞的实体快照
type collider struct {
	id   ecs.EntityID
	kind types.EntityKind
	pos  *components.PositionComponent
	w, h float64
}

// checkAABBCollision 检查两个中心对齐的碰撞盒是否重叠
func checkAABBCollision(a, b collider) bool {
	return a.pos.X+a.w/2 >= b.pos.X-b.w/2 &&
		a.pos.X-a.w/2 <= b.pos.X+b.w/2 &&
		a.pos.Y+a.h/2 >= b.pos.Y-b.h/2 &&
		a.pos.Y-a.h/2 <= b.pos.Y+b.h/2
}

// Update 检测并结算本帧的碰撞
func (ps *PhysicsSystem) Update(deltaTime float64) {
	var bullets, enemies, crystals, players []collider

	ids := ecs.GetEntitiesWith3[*components.PositionComponent, *components.CollidableComponent, *components.KindComponent](ps.em)
	for _, id := range ids {
		if ps.em.IsMarkedForDestruction(id) {
			continue
		}
		col, _ := ecs.GetComponent[*components.CollidableComponent](ps.em, id)
		if !col.Enabled {
			continue
		}
		c := ps.snapshot(id)

		switch {
		case c.kind == types.KindBullet:
			bullets = append(bullets, c)
		case c.kind == types.KindCrystal:
			crystals = append(crystals, c)
		case c.kind == types.KindPlayer:
			players = append(players, c)
		case c.kind.IsEnemy():
			enemies = append(enemies, c)
		}
	}

	for _, bullet := range bullets {
		for _, enemy := range enemies {
			if ps.em.IsMarkedForDestruction(enemy.id) || !checkAABBCollision(bullet, enemy) {
				continue
			}
			ps.em.DestroyEntity(bullet.id)
			ps.damage(enemy)
			// 一颗子弹只能击中一个敌人
			break
		}
	}

	for _, player := range players {
		for _, crystal := range crystals {
			if !ps.em.IsMarkedForDestruction(crystal.id) && checkAABBCollision(player, crystal) {
				ps.em.DestroyEntity(crystal.id)
				ps.stats.CrystalsCollected++
			}
		}
		for _, enemy := range enemies {
			if ps.em.IsMarkedForDestruction(enemy.id) || !checkAABBCollision(player, enemy) {
				continue
			}
			log.Debugf("[PhysicsSystem] Player %d hit by %s", player.id, enemy.kind)
			ps.em.DestroyEntity(player.id)
			ps.stats.PlayerDeaths++
			ps.spawnAt(types.KindExplosion, player.pos)
			break
		}
	}
}

func (ps *PhysicsSystem) snapshot(id ecs.EntityID) collider {
	pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
	kind, _ := ecs.GetComponent[*components.KindComponent](ps.em, id)

	c := collider{id: id, kind: kind.Kind, pos: pos, w: defaultHitboxSize, h: defaultHitboxSize}
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](ps.em, id); ok {
		// 最后一层是主体贴图（水晶的光晕在前）
		for i := len(sprite.Layers) - 1; i >= 0; i-- {
			if l := sprite.Layers[i]; l.Width > 0 && l.Height > 0 {
				c.w, c.h = l.Width, l.Height
				break
			}
		}
	}
	return c
}

func (ps *PhysicsSystem) damage(enemy collider) {
	health, ok := ecs.GetComponent[*components.HealthComponent](ps.em, enemy.id)
	if !ok {
		return
	}
	health.CurrentHealth--
	if !health.IsDead() {
		return
	}

	ps.em.DestroyEntity(enemy.id)
	ps.stats.EnemiesKilled++
	ps.spawnAt(types.KindExplosion, enemy.pos)
	ps.spawnAt(types.KindCrystal, enemy.pos)
}

func (ps *PhysicsSystem) spawnAt(kind types.EntityKind, pos *components.PositionComponent) {
	if ps.spawner == nil {
		return
	}
	if _, err := ps.spawner.Spawn(ps.em, entities.NewSpawnRequest(kind).At(pos.X, pos.Y)); err != nil {
		log.Warnf("[PhysicsSystem] Failed to spawn %s: %v", kind, err)
	}
}
