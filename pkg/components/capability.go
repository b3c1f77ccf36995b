package components

// CapabilityType 能力类别
// 生成器组合实体时只会附加这几类能力，同一实体可以持有零个或多个
type CapabilityType int

const (
	// CapabilityMovement 移动行为（具体行为由 MovementBehavior 决定）
	CapabilityMovement CapabilityType = iota
	// CapabilityHealth 生命值
	CapabilityHealth
	// CapabilityCollidable 可碰撞标记
	CapabilityCollidable
	// CapabilityLifecycle 生命周期策略（定时过期或离屏清理）
	CapabilityLifecycle
	// CapabilityVisualEffect 粒子类视觉效果，仅在平台支持粒子时附加
	CapabilityVisualEffect
)

var capabilityTypeNames = map[CapabilityType]string{
	CapabilityMovement:     "Movement",
	CapabilityHealth:       "Health",
	CapabilityCollidable:   "Collidable",
	CapabilityLifecycle:    "Lifecycle",
	CapabilityVisualEffect: "VisualEffect",
}

// String 返回能力类别名称
func (t CapabilityType) String() string {
	if s, ok := capabilityTypeNames[t]; ok {
		return s
	}
	return "Unknown"
}

// Capability 可附加到实体上的能力
// 每个能力同时也是一个 ECS 组件（以指针形式存入 EntityManager）
type Capability interface {
	CapabilityType() CapabilityType
}
