package config

// 单位配置常量
// 本文件定义了各类实体的固定参数（与难度无关，不放入参数表）

// Placement Configuration (出生位置配置)
const (
	// SpawnDistance 角落锚点距离屏幕边缘的内缩距离（像素）
	SpawnDistance = 50.0

	// BouncerSpawnHeightMargin 弹跳者出生Y坐标上限距底边的距离
	// 出生Y在 [0, ViewportHeight - BouncerSpawnHeightMargin) 内均匀分布
	BouncerSpawnHeightMargin = 40.0

	// DecorationMargin 背景装饰的活动矩形比视口每边多出的距离
	DecorationMargin = 200.0
)

// Enemy Configuration (敌人配置)
const (
	// WandererMinMoveSpeed 普通游荡者速度下限（像素/秒）
	WandererMinMoveSpeed = 100.0

	// SeekerMinMoveSpeed 普通追踪者速度下限（像素/秒）
	SeekerMinMoveSpeed = 150.0

	// WandererSize 游荡者贴图边长
	WandererSize = 80.0

	// SeekerSize 追踪者贴图边长
	SeekerSize = 60.0

	// RunnerWidth / RunnerHeight 奔跑者贴图尺寸（原图 258x220 缩放 0.25）
	RunnerWidth  = 258 * 0.25
	RunnerHeight = 220 * 0.25

	// BouncerWidth / BouncerHeight 弹跳者贴图尺寸（原图 254x304 缩放 0.25）
	BouncerWidth  = 254 * 0.25
	BouncerHeight = 304 * 0.25
)

// Projectile Configuration (子弹配置)
const (
	// BulletSpeed 子弹飞行速度（像素/秒）
	BulletSpeed = 1200.0

	// MuzzleFlashSize 枪口闪光贴图边长
	MuzzleFlashSize = 96.0

	// MuzzleTextureCount 枪口闪光贴图数量（muzzle_01 ~ muzzle_03）
	MuzzleTextureCount = 3

	// ShootSoundCount 射击音效数量（shoot1.wav ~ shoot8.wav）
	ShootSoundCount = 8
)

// Transient Configuration (瞬态实体配置)
const (
	// ExplosionLifetime 爆炸存在时间（秒）
	ExplosionLifetime = 1.6

	// ExplosionViewOffset 爆炸贴图相对触发点的偏移（贴图 80x80 居中）
	ExplosionViewOffset = 40.0

	// ExplosionFrames 爆炸动画帧数，整段 0.75 秒
	ExplosionFrames        = 48
	ExplosionFrameDuration = 0.75

	// ExplosionSoundCount 爆炸音效数量（explosion-01.wav ~ explosion-08.wav）
	ExplosionSoundCount = 8

	// PortalLifetime 传送门存在时间（秒）
	PortalLifetime = 10.0

	// CrystalLifetime 水晶存在时间（秒）
	CrystalLifetime = 10.0

	// CrystalScale 水晶显示缩放
	CrystalScale = 0.65

	// CrystalSize / CrystalGlowSize 水晶贴图和光晕的原始边长（缩放前）
	CrystalSize     = 32.0
	CrystalGlowSize = 64.0

	// CrystalFrames 水晶动画帧数，整段 1 秒
	CrystalFrames        = 8
	CrystalFrameDuration = 1.0
)

// Background Configuration (背景配置)
const (
	// DecorationMinRadius / DecorationMaxRadius 背景圆半径范围
	DecorationMinRadius = 60.0
	DecorationMaxRadius = 100.0
)
