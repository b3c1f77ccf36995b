//go:build native

package utils

// IsExperimentalNative 检测当前是否为实验性原生构建
// 使用 -tags native 编译时返回 true
func IsExperimentalNative() bool {
	return true
}
