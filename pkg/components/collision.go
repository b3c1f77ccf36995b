package components

// CollidableComponent 标记实体参与碰撞检测
// 碰撞盒由渲染附件的尺寸决定，这里只记录开关
type CollidableComponent struct {
	Enabled bool
}

// CapabilityType 实现 Capability
func (*CollidableComponent) CapabilityType() CapabilityType { return CapabilityCollidable }
