package entities

import (
	"github.com/gonewx/geowars/pkg/components"
	"github.com/gonewx/geowars/pkg/types"
)

// ComposedEntity 组合完成的实体描述
// 交给实体存储（Materialize）之后，生成器不再参与它的生命周期
type ComposedEntity struct {
	Kind         types.EntityKind
	Position     types.Vec2
	Capabilities []components.Capability  // 按附加顺序
	Views        []components.SpriteLayer // 视觉附件，由渲染协作方解释
}

// Has 是否持有指定类别的能力
func (e *ComposedEntity) Has(t components.CapabilityType) bool {
	for _, c := range e.Capabilities {
		if c.CapabilityType() == t {
			return true
		}
	}
	return false
}

// CapabilitiesOf 返回指定类别的所有能力
func (e *ComposedEntity) CapabilitiesOf(t components.CapabilityType) []components.Capability {
	var result []components.Capability
	for _, c := range e.Capabilities {
		if c.CapabilityType() == t {
			result = append(result, c)
		}
	}
	return result
}

// CapabilityTypes 按顺序返回能力类别列表
func (e *ComposedEntity) CapabilityTypes() []components.CapabilityType {
	result := make([]components.CapabilityType, len(e.Capabilities))
	for i, c := range e.Capabilities {
		result[i] = c.CapabilityType()
	}
	return result
}

// Movement 返回移动能力（没有时返回 nil）
func (e *ComposedEntity) Movement() *components.MovementComponent {
	for _, c := range e.Capabilities {
		if m, ok := c.(*components.MovementComponent); ok {
			return m
		}
	}
	return nil
}

// Health 返回生命值能力（没有时返回 nil）
func (e *ComposedEntity) Health() *components.HealthComponent {
	for _, c := range e.Capabilities {
		if h, ok := c.(*components.HealthComponent); ok {
			return h
		}
	}
	return nil
}

// Lifecycle 返回生命周期能力（没有时返回 nil）
func (e *ComposedEntity) Lifecycle() *components.LifetimeComponent {
	for _, c := range e.Capabilities {
		if l, ok := c.(*components.LifetimeComponent); ok {
			return l
		}
	}
	return nil
}

func (e *ComposedEntity) attach(c components.Capability) {
	e.Capabilities = append(e.Capabilities, c)
}

func (e *ComposedEntity) view(layer components.SpriteLayer) {
	e.Views = append(e.Views, layer)
}
