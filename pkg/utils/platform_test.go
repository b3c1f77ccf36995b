//go:build !native

package utils

import "testing"

// TestIsExperimentalNative_Desktop 测试桌面端编译时 IsExperimentalNative() 返回 false
func TestIsExperimentalNative_Desktop(t *testing.T) {
	t.Setenv("GEOWARS_NATIVE_EMULATE", "")
	if IsExperimentalNative() {
		t.Error("IsExperimentalNative() should return false on desktop")
	}
}

// TestIsExperimentalNative_Emulated 测试环境变量强制启用原生模式
func TestIsExperimentalNative_Emulated(t *testing.T) {
	t.Setenv("GEOWARS_NATIVE_EMULATE", "1")
	if !IsExperimentalNative() {
		t.Error("IsExperimentalNative() should return true when GEOWARS_NATIVE_EMULATE=1")
	}
}
