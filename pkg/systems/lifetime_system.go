package systems

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/geowars/pkg/components"
	"github.com/gonewx/geowars/pkg/ecs"
	"github.com/gonewx/geowars/pkg/types"
)

// expiryEpsilon 累积浮点误差的容差，使 1.6 秒的爆炸在第 1.6 秒准时过期
const expiryEpsilon = 1e-9

// LifetimeSystem 管理实体的生命周期
//
// 状态机：
//   - Expiry: Active -> Expired（累计时间达到 MaxLifetime）
//   - OffscreenCleanup: Active -> OffscreenRemoved（位置离开视口矩形）
//
// 进入终止状态的实体立即标记删除
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	bounds        types.Rect
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager, viewport types.Viewport) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		bounds:        viewport.Bounds(),
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsTerminal() {
			continue
		}

		switch lifetime.Policy {
		case components.LifecycleExpiry:
			lifetime.CurrentLifetime += deltaTime
			if lifetime.CurrentLifetime+expiryEpsilon >= lifetime.MaxLifetime {
				lifetime.State = components.LifecycleExpired
			}

		case components.LifecycleOffscreenCleanup:
			pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
			if ok && !s.bounds.Contains(pos.Vec()) {
				lifetime.State = components.LifecycleOffscreenRemoved
			}
		}

		if lifetime.IsTerminal() {
			log.Debugf("[LifetimeSystem] Entity %d %s", id, lifetime.State)
			s.entityManager.DestroyEntity(id)
		}
	}
}
