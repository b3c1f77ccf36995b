package config

import "github.com/gonewx/geowars/pkg/types"

// 布局配置常量
const (
	// ViewportWidth 逻辑视口宽度
	ViewportWidth = 1280.0

	// ViewportHeight 逻辑视口高度
	ViewportHeight = 720.0
)

// DefaultViewport 返回默认逻辑视口
func DefaultViewport() types.Viewport {
	return types.Viewport{Width: ViewportWidth, Height: ViewportHeight}
}
