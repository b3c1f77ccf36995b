package components

// BlendMode 贴图混合模式
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdd
)

// SpriteLayer 单层视觉附件
// 对生成器来说是不透明的令牌，只决定附加与否，由渲染协作方解释
type SpriteLayer struct {
	Texture       string  // 贴图ID，如 "Bullet.png"；程序化图形使用 "shape:" 前缀
	Width         float64 // 显示宽度（像素），0 表示使用原尺寸
	Height        float64 // 显示高度（像素）
	OffsetX       float64 // 相对实体位置的X偏移
	OffsetY       float64 // 相对实体位置的Y偏移
	Blend         BlendMode
	Frames        int     // 动画帧数，0 或 1 表示静态
	FrameDuration float64 // 整段动画时长（秒）
}

// SpriteComponent 存储实体的视觉附件（按绘制顺序）
type SpriteComponent struct {
	Layers []SpriteLayer
}
