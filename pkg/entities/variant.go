package entities

import (
	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/types"
)

// VariantOutcome 变体选择结果
// 红色精英的生命值和速度总是一起覆盖
type VariantOutcome struct {
	IsRed     bool
	Health    int
	MoveSpeed float64
}

// VariantSelector 敌人变体选择器
type VariantSelector struct {
	cfg *config.GameConfig
	rng RandomSource
}

// NewVariantSelector 创建变体选择器
func NewVariantSelector(cfg *config.GameConfig, rng RandomSource) *VariantSelector {
	return &VariantSelector{cfg: cfg, rng: rng}
}

// Select 为一次生成选择变体
//
// 游荡者/追踪者：掷一次红色概率
//   - 命中：RedEnemyHealth + RedEnemyMoveSpeed（固定值）
//   - 未命中：EnemyHealth + [下限, 上限) 内的随机速度（下限 100/150）
//
// 奔跑者/弹跳者：没有红色变体，不消耗随机数
// 其他类型：返回零值
func (s *VariantSelector) Select(kind types.EntityKind) VariantOutcome {
	switch kind {
	case types.KindWanderer:
		return s.rollRed(config.WandererMinMoveSpeed, s.cfg.WandererMaxMoveSpeed())
	case types.KindSeeker:
		return s.rollRed(config.SeekerMinMoveSpeed, s.cfg.SeekerMaxMoveSpeed())
	case types.KindRunner:
		return VariantOutcome{Health: s.cfg.EnemyHealth(), MoveSpeed: s.cfg.RunnerMoveSpeed()}
	case types.KindBouncer:
		return VariantOutcome{Health: s.cfg.EnemyHealth(), MoveSpeed: s.cfg.BouncerMoveSpeed()}
	default:
		return VariantOutcome{}
	}
}

func (s *VariantSelector) rollRed(minSpeed, maxSpeed float64) VariantOutcome {
	if randomBool(s.rng, s.cfg.RedEnemyChance()) {
		return VariantOutcome{
			IsRed:     true,
			Health:    s.cfg.RedEnemyHealth(),
			MoveSpeed: s.cfg.RedEnemyMoveSpeed(),
		}
	}
	return VariantOutcome{
		Health:    s.cfg.EnemyHealth(),
		MoveSpeed: randomRange(s.rng, minSpeed, maxSpeed),
	}
}
