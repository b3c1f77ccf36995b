package app

import (
	"image/color"
	"math"

	"github.com/gonewx/geowars/pkg/components"
	"github.com/gonewx/geowars/pkg/ecs"
	"github.com/gonewx/geowars/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gridSpacing 背景网格间距（像素）
const gridSpacing = 40

var (
	gridColor       = color.RGBA{R: 30, G: 30, B: 90, A: 255}
	decorationColor = color.RGBA{R: 51, G: 153, B: 178, A: 128}
	decorationEdge  = color.RGBA{R: 255, G: 255, B: 255, A: 77}
	flameColor      = color.RGBA{R: 255, G: 160, B: 40, A: 200}
	muzzleColor     = color.RGBA{R: 120, G: 160, B: 255, A: 110}
	sparkColor      = color.RGBA{R: 255, G: 220, B: 120, A: 255}
)

// textureColors 没有贴图资源时用纯色几何体代替
var textureColors = map[string]color.RGBA{
	"Player.png":             {R: 240, G: 240, B: 240, A: 255},
	"Bullet.png":             {R: 255, G: 255, B: 160, A: 255},
	"Wanderer.png":           {R: 200, G: 80, B: 255, A: 255},
	"RedWanderer.png":        {R: 255, G: 60, B: 60, A: 255},
	"wanderer_overlay.png":   {R: 255, G: 255, B: 255, A: 60},
	"Seeker.png":             {R: 80, G: 180, B: 255, A: 255},
	"Runner.png":             {R: 80, G: 255, B: 120, A: 255},
	"Bouncer.png":            {R: 255, G: 150, B: 40, A: 255},
	"explosion.png":          {R: 255, G: 200, B: 80, A: 200},
	"Portal.png":             {R: 160, G: 60, B: 255, A: 220},
	"YellowCrystal.png":      {R: 255, G: 230, B: 0, A: 255},
	"particles/light_02.png": {R: 255, G: 255, B: 120, A: 70},
}

// defaultSpriteSize 贴图层未给出尺寸时的绘制边长
const defaultSpriteSize = 24

// renderWorld 按实体 ID 顺序绘制所有视觉附件和粒子效果
func renderWorld(screen *ebiten.Image, em *ecs.EntityManager) {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.SpriteComponent](em)
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
		life, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
		move, _ := ecs.GetComponent[*components.MovementComponent](em, id)

		if fx, ok := ecs.GetComponent[*components.VisualEffectComponent](em, id); ok {
			drawEffect(screen, pos, move, life, fx)
		}
		for _, layer := range sprite.Layers {
			drawLayer(screen, pos, move, life, layer)
		}
	}
}

func drawLayer(screen *ebiten.Image, pos *components.PositionComponent, move *components.MovementComponent, life *components.LifetimeComponent, layer components.SpriteLayer) {
	switch layer.Texture {
	case "shape:grid":
		drawGrid(screen, float32(layer.Width), float32(layer.Height))
		return
	case "shape:circle":
		r := float32(layer.Width / 2)
		cx, cy := float32(pos.X)+r, float32(pos.Y)+r
		vector.DrawFilledCircle(screen, cx, cy, r, decorationColor, true)
		vector.StrokeCircle(screen, cx, cy, r, 3, decorationEdge, true)
		return
	}

	clr, ok := textureColors[layer.Texture]
	if !ok {
		clr = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
	w, h := layer.Width, layer.Height
	if w <= 0 || h <= 0 {
		w, h = defaultSpriteSize, defaultSpriteSize
	}

	// 动画贴图：按生命周期推进帧，半径随帧数展开
	if layer.Frames > 1 && layer.FrameDuration > 0 && life != nil {
		progress := utils.Progress(math.Mod(life.CurrentLifetime, layer.FrameDuration), layer.FrameDuration)
		r := float32(w / 2 * utils.Lerp(0.3, 1, utils.EaseOutQuad(progress)))
		cx := float32(pos.X + layer.OffsetX + w/2)
		cy := float32(pos.Y + layer.OffsetY + h/2)
		vector.DrawFilledCircle(screen, cx, cy, r, clr, true)
		return
	}

	x := float32(pos.X + layer.OffsetX - w/2)
	y := float32(pos.Y + layer.OffsetY - h/2)
	if layer.Blend == components.BlendAdd {
		vector.DrawFilledCircle(screen, x+float32(w/2), y+float32(h/2), float32(w/2), clr, true)
		return
	}
	vector.StrokeRect(screen, x, y, float32(w), float32(h), 2, clr, true)

	// 朝向指示
	if move != nil && move.Rotation != 0 {
		cx, cy := float32(pos.X), float32(pos.Y)
		dx := float32(math.Cos(move.Rotation) * w / 2)
		dy := float32(math.Sin(move.Rotation) * h / 2)
		vector.StrokeLine(screen, cx, cy, cx+dx, cy+dy, 2, clr, true)
	}
}

func drawGrid(screen *ebiten.Image, w, h float32) {
	for x := float32(0); x <= w; x += gridSpacing {
		vector.StrokeLine(screen, x, 0, x, h, 1, gridColor, false)
	}
	for y := float32(0); y <= h; y += gridSpacing {
		vector.StrokeLine(screen, 0, y, w, y, 1, gridColor, false)
	}
}

func drawEffect(screen *ebiten.Image, pos *components.PositionComponent, move *components.MovementComponent, life *components.LifetimeComponent, fx *components.VisualEffectComponent) {
	cx, cy := float32(pos.X), float32(pos.Y)

	switch fx.Effect {
	case components.EffectExhaustTrail:
		if move == nil || move.Direction.Len() == 0 {
			return
		}
		for i := 1; i <= 4; i++ {
			d := float32(i * 8)
			r := float32(6 - i)
			vector.DrawFilledCircle(screen, cx-float32(move.Direction.X)*d, cy-float32(move.Direction.Y)*d, r, flameColor, true)
		}

	case components.EffectMuzzleFlash:
		size := float32(fx.Size)
		if size <= 0 {
			size = 32
		}
		vector.DrawFilledCircle(screen, cx, cy, size/6, muzzleColor, true)

	case components.EffectExplosionParticles:
		if life == nil || life.MaxLifetime <= 0 {
			return
		}
		t := utils.EaseOutCubic(utils.Progress(life.CurrentLifetime, life.MaxLifetime))
		radius := float32(utils.Lerp(20, 120, t))
		for i := 0; i < 12; i++ {
			a := float64(i) * math.Pi / 6
			vector.DrawFilledCircle(screen, cx+radius*float32(math.Cos(a)), cy+radius*float32(math.Sin(a)), 2, sparkColor, true)
		}
	}
}
