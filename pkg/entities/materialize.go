package entities

import (
	"fmt"

	"github.com/gonewx/geowars/pkg/components"
	"github.com/gonewx/geowars/pkg/ecs"
	"github.com/gonewx/geowars/pkg/types"
)

// Materialize 把组合好的实体写入实体存储
// 每种能力类别最多出现一次；重复时不创建实体并返回错误
func Materialize(em *ecs.EntityManager, e *ComposedEntity) (ecs.EntityID, error) {
	if e == nil {
		return 0, fmt.Errorf("materialize: nil entity")
	}

	seen := make(map[components.CapabilityType]bool, len(e.Capabilities))
	for _, c := range e.Capabilities {
		t := c.CapabilityType()
		if seen[t] {
			return 0, fmt.Errorf("materialize %s: duplicate %s capability", e.Kind, t)
		}
		seen[t] = true
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: e.Position.X, Y: e.Position.Y})
	em.AddComponent(id, &components.KindComponent{Kind: e.Kind})

	layers := make([]components.SpriteLayer, len(e.Views))
	copy(layers, e.Views)
	em.AddComponent(id, &components.SpriteComponent{Layers: layers})

	for _, c := range e.Capabilities {
		em.AddComponent(id, c)
	}
	return id, nil
}

// FindEntityByKind 查找指定类型的第一个存活实体（ID 最小者）
// 已标记删除的实体被跳过
func FindEntityByKind(em *ecs.EntityManager, kind types.EntityKind) (ecs.EntityID, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.KindComponent](em) {
		if em.IsMarkedForDestruction(id) {
			continue
		}
		k, ok := ecs.GetComponent[*components.KindComponent](em, id)
		if ok && k.Kind == kind {
			return id, true
		}
	}
	return 0, false
}
