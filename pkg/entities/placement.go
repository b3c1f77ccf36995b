package entities

import (
	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/types"
)

// PlacementOracle 计算实体的出生位置
// 视口尺寸和随机源在构造时注入，不依赖全局应用上下文
type PlacementOracle struct {
	viewport types.Viewport
	rng      RandomSource

	// anchors 四个角落锚点：左上、右上、右下、左下
	// 构造时根据视口尺寸计算一次
	anchors [4]types.Vec2
}

// NewPlacementOracle 创建出生位置计算器
func NewPlacementOracle(viewport types.Viewport, rng RandomSource) *PlacementOracle {
	d := config.SpawnDistance
	return &PlacementOracle{
		viewport: viewport,
		rng:      rng,
		anchors: [4]types.Vec2{
			{X: d, Y: d},
			{X: viewport.Width - d, Y: d},
			{X: viewport.Width - d, Y: viewport.Height - d},
			{X: d, Y: viewport.Height - d},
		},
	}
}

// Anchors 返回四个角落锚点
func (p *PlacementOracle) Anchors() [4]types.Vec2 {
	return p.anchors
}

// DecorationBounds 背景装饰的活动矩形（视口四周各扩展 DecorationMargin）
func DecorationBounds(viewport types.Viewport) types.Rect {
	return viewport.Bounds().Expand(config.DecorationMargin)
}

// Resolve 计算出生位置
//
// 优先级：
//  1. 请求中的显式位置（原样返回，适用于所有类型）
//  2. 游荡者/追踪者/奔跑者：随机选择一个角落锚点
//  3. 弹跳者：左边缘，Y 在 [0, H-40) 内均匀分布
//  4. 背景装饰：视口外扩矩形内的均匀随机点
//  5. 玩家：视口中心；其余类型：原点
func (p *PlacementOracle) Resolve(kind types.EntityKind, req SpawnRequest) types.Vec2 {
	if req.Position != nil {
		return *req.Position
	}

	switch {
	case kind.IsCornerSpawned():
		return p.anchors[p.rng.Intn(len(p.anchors))]

	case kind == types.KindBouncer:
		y := randomRange(p.rng, 0, p.viewport.Height-config.BouncerSpawnHeightMargin)
		return types.Vec2{X: 0, Y: y}

	case kind == types.KindBackgroundDecoration:
		bounds := DecorationBounds(p.viewport)
		return types.Vec2{
			X: randomRange(p.rng, bounds.X, bounds.MaxX()),
			Y: randomRange(p.rng, bounds.Y, bounds.MaxY()),
		}

	case kind == types.KindPlayer:
		return p.viewport.Center()

	default:
		return types.Vec2{}
	}
}
