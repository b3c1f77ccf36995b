package components

import "github.com/gonewx/geowars/pkg/types"

// MovementBehavior 定义移动行为类型
// 生成器只负责附加带参数的行为，行为本身的逐帧逻辑由 MovementSystem 实现
type MovementBehavior int

const (
	// MovementPlayer 玩家控制移动
	MovementPlayer MovementBehavior = iota
	// MovementProjectile 直线飞行的子弹
	MovementProjectile
	// MovementWanderer 游荡者：随机转向
	MovementWanderer
	// MovementSeeker 追踪者：每帧重新查找目标并转向
	MovementSeeker
	// MovementRunner 奔跑者：沿随机方向奔跑，自动朝向速度方向
	MovementRunner
	// MovementBouncer 弹跳者：碰到视口边界反弹
	MovementBouncer
	// MovementRandomDrift 背景漂移：出生时确定方向和速度，在边界矩形内循环
	MovementRandomDrift
)

var movementBehaviorNames = map[MovementBehavior]string{
	MovementPlayer:      "Player",
	MovementProjectile:  "Projectile",
	MovementWanderer:    "Wanderer",
	MovementSeeker:      "Seeker",
	MovementRunner:      "Runner",
	MovementBouncer:     "Bouncer",
	MovementRandomDrift: "RandomDrift",
}

// String 返回行为名称
func (b MovementBehavior) String() string {
	if s, ok := movementBehaviorNames[b]; ok {
		return s
	}
	return "Unknown"
}

// MovementComponent 移动能力
type MovementComponent struct {
	Behavior  MovementBehavior // 行为类型
	Speed     float64          // 移动速度（像素/秒）
	Direction types.Vec2       // 当前方向（单位向量），玩家和追踪者可为零向量

	// Target 追踪目标的角色（按类型查找，不缓存实体ID）
	// 目标可能被销毁后重新生成，所以行为必须每帧重新解析
	Target types.EntityKind

	// Bounds 漂移边界（仅 MovementRandomDrift 使用）
	Bounds types.Rect

	// AutoRotate 是否自动朝向速度方向（平滑旋转）
	AutoRotate bool
	Rotation   float64 // 当前朝向（弧度）
}

// CapabilityType 实现 Capability
func (*MovementComponent) CapabilityType() CapabilityType { return CapabilityMovement }
