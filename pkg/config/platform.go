package config

import "github.com/gonewx/geowars/pkg/utils"

// PlatformCapabilities 平台能力
// 启动时确定一次，之后只读；生成过程中不会改变
type PlatformCapabilities struct {
	// SupportsParticleEffects 是否支持粒子类视觉效果
	// 为 false 时实体只是少了 VisualEffect，玩法行为完全相同
	SupportsParticleEffects bool
}

// DetectPlatformCapabilities 根据编译目标和用户设置确定平台能力
//
// 参数：
//   - particlesEnabled: 用户设置中的粒子开关
//
// 实验性原生构建（-tags native）或 GEOWARS_NATIVE_EMULATE=1 时始终关闭粒子
func DetectPlatformCapabilities(particlesEnabled bool) PlatformCapabilities {
	return PlatformCapabilities{
		SupportsParticleEffects: particlesEnabled && !utils.IsExperimentalNative(),
	}
}
