package components

// LifecyclePolicy 生命周期策略
type LifecyclePolicy int

const (
	// LifecycleExpiry 定时过期：存在时间达到 MaxLifetime 后移除
	LifecycleExpiry LifecyclePolicy = iota
	// LifecycleOffscreenCleanup 离屏清理：位置离开视口后移除
	LifecycleOffscreenCleanup
)

// String 返回策略名称
func (p LifecyclePolicy) String() string {
	switch p {
	case LifecycleExpiry:
		return "Expiry"
	case LifecycleOffscreenCleanup:
		return "OffscreenCleanup"
	default:
		return "Unknown"
	}
}

// LifecycleState 瞬态实体的状态
// Active → Expired 或 Active → OffscreenRemoved，终止状态不会回到 Active
type LifecycleState int

const (
	LifecycleActive LifecycleState = iota
	LifecycleExpired
	LifecycleOffscreenRemoved
)

// String 返回状态名称
func (s LifecycleState) String() string {
	switch s {
	case LifecycleActive:
		return "Active"
	case LifecycleExpired:
		return "Expired"
	case LifecycleOffscreenRemoved:
		return "OffscreenRemoved"
	default:
		return "Unknown"
	}
}

// LifetimeComponent 管理实体的生命周期
// 用于自动清理爆炸、传送门、水晶（定时）和子弹（离屏）
type LifetimeComponent struct {
	Policy          LifecyclePolicy
	MaxLifetime     float64 // 最大生命周期(秒)，仅 LifecycleExpiry 使用
	CurrentLifetime float64 // 当前已存在时间(秒)
	State           LifecycleState
}

// NewExpiryLifetime 创建定时过期的生命周期组件
func NewExpiryLifetime(seconds float64) *LifetimeComponent {
	return &LifetimeComponent{Policy: LifecycleExpiry, MaxLifetime: seconds}
}

// NewOffscreenCleanupLifetime 创建离屏清理的生命周期组件
func NewOffscreenCleanupLifetime() *LifetimeComponent {
	return &LifetimeComponent{Policy: LifecycleOffscreenCleanup}
}

// IsTerminal 是否已进入终止状态
func (l *LifetimeComponent) IsTerminal() bool {
	return l.State != LifecycleActive
}

// CapabilityType 实现 Capability
func (*LifetimeComponent) CapabilityType() CapabilityType { return CapabilityLifecycle }
