package components

// HealthComponent 存储实体的生命值信息
// 用于敌人等可被攻击的实体
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// NewHealthComponent 创建满血的生命值组件
func NewHealthComponent(health int) *HealthComponent {
	return &HealthComponent{CurrentHealth: health, MaxHealth: health}
}

// IsDead 生命值是否耗尽
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}

// CapabilityType 实现 Capability
func (*HealthComponent) CapabilityType() CapabilityType { return CapabilityHealth }
