// Package ecs 提供游戏实体存储
//
// 实体只是一个ID，所有数据都挂在组件上。生成器（pkg/entities）把组合好的实体
// 交给 EntityManager 之后就不再持有它，实体的销毁由各个系统（寿命、离屏清理、死亡）决定。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// componentSet 单个实体挂载的组件，按具体类型索引
type componentSet map[reflect.Type]interface{}

// EntityManager 管理所有实体和组件
// 不是线程安全的，只应在模拟线程上使用
type EntityManager struct {
	nextID   EntityID
	entities map[EntityID]componentSet
	// pending 本帧被标记销毁的实体，帧末统一清理
	pending map[EntityID]struct{}
}

// NewEntityManager 创建一个空的实体存储
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:   1,
		entities: make(map[EntityID]componentSet),
		pending:  make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.entities[id] = make(componentSet)
	return id
}

// Exists 实体是否仍在存储中（已标记但尚未清理的也算）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.entities[id]
	return ok
}

// EntityCount 当前存储中的实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// DestroyEntity 标记实体待删除，实际删除发生在 RemoveMarkedEntities
// 对不存在的实体无效果，重复标记也是安全的
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.entities[id]; !ok {
		return
	}
	em.pending[id] = struct{}{}
}

// IsMarkedForDestruction 实体是否已被标记删除
func (em *EntityManager) IsMarkedForDestruction(id EntityID) bool {
	_, ok := em.pending[id]
	return ok
}

// AddComponent 为实体挂载组件，同类型组件会被覆盖
// 对不存在的实体无效果
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	set, ok := em.entities[id]
	if !ok {
		return
	}
	set[reflect.TypeOf(component)] = component
}

// GetComponent 按类型取组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	comp, ok := em.entities[id][componentType]
	return comp, ok
}

// HasComponent 实体是否挂载了指定类型的组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.entities[id][componentType]
	return ok
}

// RemoveMarkedEntities 清理所有标记删除的实体，返回清理数量
func (em *EntityManager) RemoveMarkedEntities() int {
	removed := len(em.pending)
	for id := range em.pending {
		delete(em.entities, id)
		delete(em.pending, id)
	}
	return removed
}

// GetEntitiesWith 查询同时拥有所有指定组件类型的实体
// 结果按ID升序，保证各系统的遍历顺序在相同种子下可复现
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	var result []EntityID
	for id, set := range em.entities {
		if set.hasAll(componentTypes) {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (s componentSet) hasAll(types []reflect.Type) bool {
	for _, t := range types {
		if _, ok := s[t]; !ok {
			return false
		}
	}
	return true
}
