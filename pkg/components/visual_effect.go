package components

// VisualEffectKind 粒子类视觉效果
type VisualEffectKind int

const (
	// EffectExhaustTrail 玩家尾焰粒子
	EffectExhaustTrail VisualEffectKind = iota
	// EffectMuzzleFlash 子弹枪口闪光（加色混合贴图）
	EffectMuzzleFlash
	// EffectExplosionParticles 爆炸粒子
	EffectExplosionParticles
)

// String 返回效果名称
func (k VisualEffectKind) String() string {
	switch k {
	case EffectExhaustTrail:
		return "ExhaustTrail"
	case EffectMuzzleFlash:
		return "MuzzleFlash"
	case EffectExplosionParticles:
		return "ExplosionParticles"
	default:
		return "Unknown"
	}
}

// VisualEffectComponent 粒子类视觉效果能力
// 仅影响渲染开销，不参与任何玩法逻辑
type VisualEffectComponent struct {
	Effect  VisualEffectKind
	Texture string  // 效果贴图（可为空，由粒子系统决定）
	Size    float64 // 贴图边长（像素）
}

// CapabilityType 实现 Capability
func (*VisualEffectComponent) CapabilityType() CapabilityType { return CapabilityVisualEffect }
