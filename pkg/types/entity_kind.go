// Package types 定义共享的基础类型
package types

// EntityKind 定义可生成实体的类型
// 这是一个封闭集合：新增类型必须同时在生成器的注册表中登记
type EntityKind int

const (
	// KindUnknown 未知类型（零值，不属于可生成集合）
	KindUnknown EntityKind = iota

	// 背景
	KindBackground           // 背景网格
	KindBackgroundDecoration // 漂浮的背景圆

	// 玩家与子弹
	KindPlayer
	KindBullet

	// 敌人
	KindWanderer // 游荡者
	KindSeeker   // 追踪者，追踪当前玩家
	KindRunner   // 奔跑者
	KindBouncer  // 弹跳者，从左边缘出生

	// 瞬态实体
	KindExplosion
	KindPortal
	KindCrystal
)

// entityKindStringMap 实体类型到配置字符串的映射
var entityKindStringMap = map[EntityKind]string{
	KindBackground:           "background",
	KindBackgroundDecoration: "background_circle",
	KindPlayer:               "player",
	KindBullet:               "bullet",
	KindWanderer:             "wanderer",
	KindSeeker:               "seeker",
	KindRunner:               "runner",
	KindBouncer:              "bouncer",
	KindExplosion:            "explosion",
	KindPortal:               "portal",
	KindCrystal:              "crystal",
}

// stringToEntityKindMap 配置字符串到实体类型的反向映射
var stringToEntityKindMap map[string]EntityKind

func init() {
	stringToEntityKindMap = make(map[string]EntityKind, len(entityKindStringMap))
	for kind, s := range entityKindStringMap {
		stringToEntityKindMap[s] = kind
	}
	// 别名
	stringToEntityKindMap["backgroundcircle"] = KindBackgroundDecoration
	stringToEntityKindMap["decoration"] = KindBackgroundDecoration
}

// String 返回实体类型的字符串表示（用于日志和命令行）
func (k EntityKind) String() string {
	if s, ok := entityKindStringMap[k]; ok {
		return s
	}
	return "unknown"
}

// EntityKindFromString 将字符串转换为 EntityKind
// 无法识别时返回 KindUnknown
func EntityKindFromString(s string) EntityKind {
	if kind, ok := stringToEntityKindMap[s]; ok {
		return kind
	}
	return KindUnknown
}

// AllEntityKinds 按声明顺序返回所有可生成的实体类型
func AllEntityKinds() []EntityKind {
	kinds := make([]EntityKind, 0, len(entityKindStringMap))
	for k := KindBackground; k <= KindCrystal; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsValid 判断是否属于可生成集合
func (k EntityKind) IsValid() bool {
	_, ok := entityKindStringMap[k]
	return ok
}

// IsEnemy 判断是否为敌人
func (k EntityKind) IsEnemy() bool {
	switch k {
	case KindWanderer, KindSeeker, KindRunner, KindBouncer:
		return true
	default:
		return false
	}
}

// HasRedVariant 判断是否存在红色精英变体
// 只有游荡者和追踪者会掷红色概率
func (k EntityKind) HasRedVariant() bool {
	return k == KindWanderer || k == KindSeeker
}

// IsCornerSpawned 判断是否从四个角落锚点出生
func (k EntityKind) IsCornerSpawned() bool {
	switch k {
	case KindWanderer, KindSeeker, KindRunner:
		return true
	default:
		return false
	}
}

// IsTransient 判断是否为带生命周期策略的瞬态实体
func (k EntityKind) IsTransient() bool {
	switch k {
	case KindBullet, KindExplosion, KindPortal, KindCrystal:
		return true
	default:
		return false
	}
}

// IsDecorative 判断是否为纯装饰性背景
func (k EntityKind) IsDecorative() bool {
	return k == KindBackground || k == KindBackgroundDecoration
}

// IsStatic 判断是否为设计上静止的实体（不携带移动能力）
func (k EntityKind) IsStatic() bool {
	switch k {
	case KindPortal, KindCrystal, KindExplosion:
		return true
	default:
		return false
	}
}
