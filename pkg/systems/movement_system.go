package systems

import (
	"math"

	"github.com/gonewx/geowars/pkg/components"
	"github.com/gonewx/geowars/pkg/ecs"
	"github.com/gonewx/geowars/pkg/entities"
	"github.com/gonewx/geowars/pkg/types"
)

const (
	// wandererTurnRate 游荡者每秒最大转向角（弧度）
	wandererTurnRate = 3.0
	// wandererSpinRate 游荡者贴图自转速度（弧度/秒）
	wandererSpinRate = 2.0
)

// MovementSystem 按 MovementComponent 的行为类型逐帧移动实体
// 玩家的方向由输入层写入 Direction，这里只负责积分和限制在视口内
type MovementSystem struct {
	entityManager *ecs.EntityManager
	bounds        types.Rect
	rng           entities.RandomSource
}

// NewMovementSystem 创建移动系统
// rng 为 nil 时使用时间种子
func NewMovementSystem(em *ecs.EntityManager, viewport types.Viewport, rng entities.RandomSource) *MovementSystem {
	if rng == nil {
		rng = entities.NewRandomSource(0)
	}
	return &MovementSystem{
		entityManager: em,
		bounds:        viewport.Bounds(),
		rng:           rng,
	}
}

// Update 移动所有拥有位置和移动组件的实体
func (s *MovementSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.MovementComponent](s.entityManager)

	for _, id := range ids {
		if s.entityManager.IsMarkedForDestruction(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		move, _ := ecs.GetComponent[*components.MovementComponent](s.entityManager, id)

		switch move.Behavior {
		case components.MovementPlayer:
			s.step(pos, move, deltaTime)
			s.clamp(pos)
		case components.MovementProjectile:
			s.step(pos, move, deltaTime)
		case components.MovementRandomDrift:
			s.step(pos, move, deltaTime)
			wrap(pos, move.Bounds)
		case components.MovementSeeker:
			s.updateSeeker(pos, move, deltaTime)
		case components.MovementWanderer:
			s.updateWanderer(pos, move, deltaTime)
		case components.MovementRunner:
			s.updateRunner(pos, move, deltaTime)
		case components.MovementBouncer:
			s.ensureDirection(move)
			s.step(pos, move, deltaTime)
			s.reflect(pos, move)
		}

		if move.AutoRotate && move.Direction.Len() > 0 {
			move.Rotation = math.Atan2(move.Direction.Y, move.Direction.X)
		}
	}
}

func (s *MovementSystem) step(pos *components.PositionComponent, move *components.MovementComponent, dt float64) {
	pos.X += move.Direction.X * move.Speed * dt
	pos.Y += move.Direction.Y * move.Speed * dt
}

// updateSeeker 每帧按类型重新查找目标，目标不存在时原地等待
func (s *MovementSystem) updateSeeker(pos *components.PositionComponent, move *components.MovementComponent, dt float64) {
	targetID, ok := entities.FindEntityByKind(s.entityManager, move.Target)
	if !ok {
		move.Direction = types.Vec2{}
		return
	}
	target, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, targetID)
	if !ok {
		return
	}

	move.Direction = target.Vec().Sub(pos.Vec()).Normalize()
	move.Rotation = math.Atan2(move.Direction.Y, move.Direction.X)
	s.step(pos, move, dt)
}

// updateWanderer 随机小角度转向，碰到视口边界反弹
func (s *MovementSystem) updateWanderer(pos *components.PositionComponent, move *components.MovementComponent, dt float64) {
	s.ensureDirection(move)

	angle := math.Atan2(move.Direction.Y, move.Direction.X)
	angle += (s.rng.Float64()*2 - 1) * wandererTurnRate * dt
	move.Direction = types.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
	move.Rotation += wandererSpinRate * dt

	s.step(pos, move, dt)
	s.reflect(pos, move)
}

// updateRunner 直线奔跑，碰到视口边界时换一个随机方向
func (s *MovementSystem) updateRunner(pos *components.PositionComponent, move *components.MovementComponent, dt float64) {
	s.ensureDirection(move)
	s.step(pos, move, dt)

	if !s.bounds.Contains(pos.Vec()) {
		s.clamp(pos)
		// 朝视口中心附近的随机方向折返
		center := types.Vec2{X: s.bounds.X + s.bounds.W/2, Y: s.bounds.Y + s.bounds.H/2}
		toCenter := center.Sub(pos.Vec()).Normalize()
		angle := math.Atan2(toCenter.Y, toCenter.X) + (s.rng.Float64()-0.5)*math.Pi/2
		move.Direction = types.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
	}
}

// ensureDirection 没有方向时随机选择一个
func (s *MovementSystem) ensureDirection(move *components.MovementComponent) {
	if move.Direction.Len() > 0 {
		return
	}
	angle := s.rng.Float64() * 2 * math.Pi
	move.Direction = types.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// reflect 越过视口边界时把位置拉回并反转对应方向分量
func (s *MovementSystem) reflect(pos *components.PositionComponent, move *components.MovementComponent) {
	b := s.bounds
	if pos.X < b.X || pos.X > b.MaxX() {
		move.Direction.X = -move.Direction.X
	}
	if pos.Y < b.Y || pos.Y > b.MaxY() {
		move.Direction.Y = -move.Direction.Y
	}
	s.clamp(pos)
}

func (s *MovementSystem) clamp(pos *components.PositionComponent) {
	pos.X = math.Max(s.bounds.X, math.Min(pos.X, s.bounds.MaxX()))
	pos.Y = math.Max(s.bounds.Y, math.Min(pos.Y, s.bounds.MaxY()))
}

// wrap 在矩形内循环：从一侧离开后从对侧进入
func wrap(pos *components.PositionComponent, bounds types.Rect) {
	if bounds.W <= 0 || bounds.H <= 0 {
		return
	}
	if pos.X < bounds.X {
		pos.X += bounds.W
	} else if pos.X > bounds.MaxX() {
		pos.X -= bounds.W
	}
	if pos.Y < bounds.Y {
		pos.Y += bounds.H
	} else if pos.Y > bounds.MaxY() {
		pos.Y -= bounds.H
	}
}
