package components

import "github.com/gonewx/geowars/pkg/types"

// PositionComponent 存储实体的世界坐标
type PositionComponent struct {
	X float64
	Y float64
}

// Vec 以向量形式返回坐标
func (p *PositionComponent) Vec() types.Vec2 {
	return types.Vec2{X: p.X, Y: p.Y}
}

// KindComponent 记录实体的生成类型
// 创建后不再改变，也用于按角色查找实体（如追踪者查找当前玩家）
type KindComponent struct {
	Kind types.EntityKind
}
