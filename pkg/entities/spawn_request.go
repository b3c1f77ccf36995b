package entities

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonewx/geowars/pkg/types"
)

var (
	// ErrUnknownKind 请求的实体类型不在注册表中（上游编程错误）
	ErrUnknownKind = errors.New("unknown entity kind")
	// ErrInvalidPayload 请求缺少必需字段或字段格式错误
	ErrInvalidPayload = errors.New("invalid spawn payload")
)

// PayloadDirection 子弹飞行方向的负载键
const PayloadDirection = "direction"

// SpawnRequest 生成请求
// 由碰撞结算、定时器、传送门事件等玩法触发方创建，只被消费一次
type SpawnRequest struct {
	Kind     types.EntityKind
	Position *types.Vec2    // 显式位置，存在时优先于按类型的默认位置
	Payload  map[string]any // 额外参数，如子弹方向
}

// NewSpawnRequest 创建指定类型的生成请求
func NewSpawnRequest(kind types.EntityKind) SpawnRequest {
	return SpawnRequest{Kind: kind}
}

// At 返回带显式位置的请求副本
func (r SpawnRequest) At(x, y float64) SpawnRequest {
	r.Position = &types.Vec2{X: x, Y: y}
	return r
}

// With 返回附加了负载字段的请求副本
func (r SpawnRequest) With(key string, value any) SpawnRequest {
	payload := make(map[string]any, len(r.Payload)+1)
	for k, v := range r.Payload {
		payload[k] = v
	}
	payload[key] = value
	r.Payload = payload
	return r
}

// directionFromPayload 解析子弹方向
// 支持 types.Vec2、*types.Vec2、[2]float64 和长度为 2 的 []float64，返回单位向量
func directionFromPayload(payload map[string]any) (types.Vec2, error) {
	raw, ok := payload[PayloadDirection]
	if !ok || raw == nil {
		return types.Vec2{}, fmt.Errorf("%w: missing %q", ErrInvalidPayload, PayloadDirection)
	}

	var dir types.Vec2
	switch v := raw.(type) {
	case types.Vec2:
		dir = v
	case *types.Vec2:
		if v == nil {
			return types.Vec2{}, fmt.Errorf("%w: nil %q", ErrInvalidPayload, PayloadDirection)
		}
		dir = *v
	case [2]float64:
		dir = types.Vec2{X: v[0], Y: v[1]}
	case []float64:
		if len(v) != 2 {
			return types.Vec2{}, fmt.Errorf("%w: %q needs 2 components, got %d", ErrInvalidPayload, PayloadDirection, len(v))
		}
		dir = types.Vec2{X: v[0], Y: v[1]}
	default:
		return types.Vec2{}, fmt.Errorf("%w: %q has unsupported type %T", ErrInvalidPayload, PayloadDirection, raw)
	}

	if math.IsNaN(dir.X) || math.IsNaN(dir.Y) || math.IsInf(dir.X, 0) || math.IsInf(dir.Y, 0) {
		return types.Vec2{}, fmt.Errorf("%w: %q is not finite: %v", ErrInvalidPayload, PayloadDirection, dir)
	}
	if dir.Len() == 0 {
		return types.Vec2{}, fmt.Errorf("%w: %q is a zero vector", ErrInvalidPayload, PayloadDirection)
	}
	return dir.Normalize(), nil
}
