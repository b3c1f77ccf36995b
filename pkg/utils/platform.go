//go:build !native

package utils

import "os"

// IsExperimentalNative 检测当前是否为实验性原生构建
// 原生构建的渲染后端不支持粒子效果
// 桌面端编译时返回 false
// 可以通过设置环境变量 GEOWARS_NATIVE_EMULATE=1 强制启用原生模式（用于本地调试）
func IsExperimentalNative() bool {
	return os.Getenv("GEOWARS_NATIVE_EMULATE") == "1"
}
