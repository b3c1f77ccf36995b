package entities

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/gonewx/geowars/pkg/components"
	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/types"
)

// SoundPlayer 音效协作方
// 即发即弃：返回值只表示是否真的播放，生成器不关心
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// ComposeRequest 组合所需的全部已解析输入
type ComposeRequest struct {
	Kind      types.EntityKind
	Variant   VariantOutcome
	Position  types.Vec2
	Direction types.Vec2 // 子弹方向（单位向量），其余类型忽略
}

// Composer 能力组合器
// 为每种类型附加固定的基础能力，再按平台能力叠加可选的粒子效果
type Composer struct {
	cfg      *config.GameConfig
	caps     config.PlatformCapabilities
	viewport types.Viewport
	rng      RandomSource
	sounds   SoundPlayer // 可为 nil
}

// NewComposer 创建能力组合器
//
// 参数：
//   - cfg: 难度参数表（只读）
//   - caps: 平台能力，启动时确定后不再改变
//   - viewport: 视口尺寸
//   - rng: 随机源（音效编号、枪口贴图、背景漂移）
//   - sounds: 音效协作方，可为 nil
func NewComposer(cfg *config.GameConfig, caps config.PlatformCapabilities, viewport types.Viewport, rng RandomSource, sounds SoundPlayer) *Composer {
	return &Composer{
		cfg:      cfg,
		caps:     caps,
		viewport: viewport,
		rng:      rng,
		sounds:   sounds,
	}
}

// Capabilities 返回组合器使用的平台能力
func (c *Composer) Capabilities() config.PlatformCapabilities {
	return c.caps
}

// Compose 组合实体
// 对封闭的类型集合是全函数；未注册的类型返回 ErrUnknownKind
func (c *Composer) Compose(req ComposeRequest) (*ComposedEntity, error) {
	e := &ComposedEntity{Kind: req.Kind, Position: req.Position}

	switch req.Kind {
	case types.KindBackground:
		c.composeBackground(e)
	case types.KindBackgroundDecoration:
		c.composeDecoration(e)
	case types.KindPlayer:
		c.composePlayer(e)
	case types.KindBullet:
		c.composeBullet(e, req.Direction)
	case types.KindWanderer:
		c.composeWanderer(e, req.Variant)
	case types.KindSeeker:
		c.composeSeeker(e, req.Variant)
	case types.KindRunner:
		c.composeRunner(e, req.Variant)
	case types.KindBouncer:
		c.composeBouncer(e, req.Variant)
	case types.KindExplosion:
		c.composeExplosion(e)
	case types.KindPortal:
		c.composePortal(e)
	case types.KindCrystal:
		c.composeCrystal(e)
	default:
		return nil, fmt.Errorf("compose: %w: %d", ErrUnknownKind, int(req.Kind))
	}

	log.Debugf("[Composer] Composed %s at (%.1f, %.1f): %v", e.Kind, e.Position.X, e.Position.Y, e.CapabilityTypes())
	return e, nil
}

func (c *Composer) composeBackground(e *ComposedEntity) {
	e.view(components.SpriteLayer{
		Texture: "shape:grid",
		Width:   c.viewport.Width,
		Height:  c.viewport.Height,
	})
}

// composeDecoration 漂浮背景圆：只有漂移移动，不可碰撞、无生命值
func (c *Composer) composeDecoration(e *ComposedEntity) {
	radius := randomRange(c.rng, config.DecorationMinRadius, config.DecorationMaxRadius)
	minSpeed, maxSpeed := c.cfg.DecorationDriftSpeedRange()
	speed := randomRange(c.rng, minSpeed, maxSpeed)
	angle := c.rng.Float64() * 2 * math.Pi

	e.view(components.SpriteLayer{
		Texture: "shape:circle",
		Width:   radius * 2,
		Height:  radius * 2,
	})
	e.attach(&components.MovementComponent{
		Behavior:  components.MovementRandomDrift,
		Speed:     speed,
		Direction: types.Vec2{X: math.Cos(angle), Y: math.Sin(angle)},
		Bounds:    DecorationBounds(c.viewport),
	})
}

func (c *Composer) composePlayer(e *ComposedEntity) {
	e.view(components.SpriteLayer{Texture: "Player.png"})
	e.attach(&components.CollidableComponent{Enabled: true})
	e.attach(&components.MovementComponent{
		Behavior: components.MovementPlayer,
		Speed:    c.cfg.PlayerSpeed(),
	})

	if c.caps.SupportsParticleEffects {
		e.attach(&components.VisualEffectComponent{Effect: components.EffectExhaustTrail})
	}
}

// composeBullet 子弹：射击音效和枪口闪光在同一个粒子开关下
func (c *Composer) composeBullet(e *ComposedEntity, direction types.Vec2) {
	e.view(components.SpriteLayer{Texture: "Bullet.png"})
	e.attach(&components.CollidableComponent{Enabled: true})
	e.attach(&components.MovementComponent{
		Behavior:  components.MovementProjectile,
		Speed:     config.BulletSpeed,
		Direction: direction,
	})
	e.attach(components.NewOffscreenCleanupLifetime())

	if c.caps.SupportsParticleEffects {
		c.playSound(fmt.Sprintf("shoot%d.wav", c.rng.Intn(config.ShootSoundCount)+1))

		e.attach(&components.VisualEffectComponent{
			Effect:  components.EffectMuzzleFlash,
			Texture: fmt.Sprintf("particles/muzzle_0%d.png", c.rng.Intn(config.MuzzleTextureCount)+1),
			Size:    config.MuzzleFlashSize,
		})
	}
}

func (c *Composer) composeWanderer(e *ComposedEntity, v VariantOutcome) {
	texture := "Wanderer.png"
	if v.IsRed {
		texture = "RedWanderer.png"
	}
	e.view(components.SpriteLayer{Texture: texture, Width: config.WandererSize, Height: config.WandererSize})
	e.view(components.SpriteLayer{Texture: "wanderer_overlay.png", Width: config.WandererSize, Height: config.WandererSize})

	c.attachEnemyBaseline(e, v)
	e.attach(&components.MovementComponent{
		Behavior: components.MovementWanderer,
		Speed:    v.MoveSpeed,
	})
}

// composeSeeker 追踪者：目标按角色（玩家类型）在每帧重新查找
func (c *Composer) composeSeeker(e *ComposedEntity, v VariantOutcome) {
	// 红色追踪者暂无独立贴图
	e.view(components.SpriteLayer{Texture: "Seeker.png", Width: config.SeekerSize, Height: config.SeekerSize})

	c.attachEnemyBaseline(e, v)
	e.attach(&components.MovementComponent{
		Behavior: components.MovementSeeker,
		Speed:    v.MoveSpeed,
		Target:   types.KindPlayer,
	})
}

func (c *Composer) composeRunner(e *ComposedEntity, v VariantOutcome) {
	e.view(components.SpriteLayer{Texture: "Runner.png", Width: config.RunnerWidth, Height: config.RunnerHeight})

	c.attachEnemyBaseline(e, v)
	e.attach(&components.MovementComponent{
		Behavior:   components.MovementRunner,
		Speed:      v.MoveSpeed,
		AutoRotate: true,
	})
}

func (c *Composer) composeBouncer(e *ComposedEntity, v VariantOutcome) {
	e.view(components.SpriteLayer{Texture: "Bouncer.png", Width: config.BouncerWidth, Height: config.BouncerHeight})

	c.attachEnemyBaseline(e, v)
	e.attach(&components.MovementComponent{
		Behavior: components.MovementBouncer,
		Speed:    v.MoveSpeed,
		// 从左边缘出生，向右移动
		Direction: types.Vec2{X: 1, Y: 0},
	})
}

// attachEnemyBaseline 可受伤实体的基础能力
func (c *Composer) attachEnemyBaseline(e *ComposedEntity, v VariantOutcome) {
	e.attach(&components.CollidableComponent{Enabled: true})
	e.attach(components.NewHealthComponent(v.Health))
}

// composeExplosion 爆炸：贴图以触发点为中心，粒子和爆炸音效在同一个开关下
func (c *Composer) composeExplosion(e *ComposedEntity) {
	e.view(components.SpriteLayer{
		Texture:       "explosion.png",
		Width:         2 * config.ExplosionViewOffset,
		Height:        2 * config.ExplosionViewOffset,
		OffsetX:       -config.ExplosionViewOffset,
		OffsetY:       -config.ExplosionViewOffset,
		Frames:        config.ExplosionFrames,
		FrameDuration: config.ExplosionFrameDuration,
	})
	e.attach(components.NewExpiryLifetime(config.ExplosionLifetime))

	if c.caps.SupportsParticleEffects {
		e.attach(&components.VisualEffectComponent{Effect: components.EffectExplosionParticles})

		c.playSound(fmt.Sprintf("explosion-0%d.wav", c.rng.Intn(config.ExplosionSoundCount)+1))
	}
}

func (c *Composer) composePortal(e *ComposedEntity) {
	e.view(components.SpriteLayer{Texture: "Portal.png"})
	e.attach(&components.CollidableComponent{Enabled: true})
	e.attach(components.NewExpiryLifetime(config.PortalLifetime))
}

func (c *Composer) composeCrystal(e *ComposedEntity) {
	// 光晕是普通贴图层，不属于粒子效果
	glow := config.CrystalGlowSize * config.CrystalScale
	e.view(components.SpriteLayer{
		Texture: "particles/light_02.png",
		Width:   glow,
		Height:  glow,
		Blend:   components.BlendAdd,
	})
	e.view(components.SpriteLayer{
		Texture:       "YellowCrystal.png",
		Width:         config.CrystalSize * config.CrystalScale,
		Height:        config.CrystalSize * config.CrystalScale,
		Frames:        config.CrystalFrames,
		FrameDuration: config.CrystalFrameDuration,
	})
	e.attach(&components.CollidableComponent{Enabled: true})
	e.attach(components.NewExpiryLifetime(config.CrystalLifetime))
}

func (c *Composer) playSound(soundID string) {
	if c.sounds == nil {
		return
	}
	c.sounds.PlaySound(soundID)
}
