package entities

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/gonewx/geowars/pkg/components"
	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/ecs"
	"github.com/gonewx/geowars/pkg/types"
)

const epsilon = 1e-9

func sameTypes(a, b []components.CapabilityType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// requestFor 所有类型通用的请求；子弹需要方向，其余类型忽略负载
func requestFor(kind types.EntityKind) SpawnRequest {
	return NewSpawnRequest(kind).With(PayloadDirection, types.Vec2{X: 1, Y: 0})
}

func TestDispatch_CapabilityTable(t *testing.T) {
	const (
		mv = components.CapabilityMovement
		hp = components.CapabilityHealth
		co = components.CapabilityCollidable
		lc = components.CapabilityLifecycle
		vf = components.CapabilityVisualEffect
	)

	tests := []struct {
		kind         types.EntityKind
		withParticle []components.CapabilityType
		degraded     []components.CapabilityType
	}{
		{types.KindBackground, nil, nil},
		{types.KindBackgroundDecoration, []components.CapabilityType{mv}, []components.CapabilityType{mv}},
		{types.KindPlayer, []components.CapabilityType{co, mv, vf}, []components.CapabilityType{co, mv}},
		{types.KindBullet, []components.CapabilityType{co, mv, lc, vf}, []components.CapabilityType{co, mv, lc}},
		{types.KindWanderer, []components.CapabilityType{co, hp, mv}, []components.CapabilityType{co, hp, mv}},
		{types.KindSeeker, []components.CapabilityType{co, hp, mv}, []components.CapabilityType{co, hp, mv}},
		{types.KindRunner, []components.CapabilityType{co, hp, mv}, []components.CapabilityType{co, hp, mv}},
		{types.KindBouncer, []components.CapabilityType{co, hp, mv}, []components.CapabilityType{co, hp, mv}},
		{types.KindExplosion, []components.CapabilityType{lc, vf}, []components.CapabilityType{lc}},
		{types.KindPortal, []components.CapabilityType{co, lc}, []components.CapabilityType{co, lc}},
		{types.KindCrystal, []components.CapabilityType{co, lc}, []components.CapabilityType{co, lc}},
	}

	if len(tests) != len(types.AllEntityKinds()) {
		t.Fatalf("table covers %d kinds, want %d", len(tests), len(types.AllEntityKinds()))
	}

	cfg := newTestConfig(t, nil)
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			for _, particles := range []bool{true, false} {
				s := newTestSpawner(t, cfg, particles, NewRandomSource(1), nil)
				e, err := s.Dispatch(requestFor(tt.kind))
				if err != nil {
					t.Fatalf("Dispatch(particles=%v) error = %v", particles, err)
				}
				if e.Kind != tt.kind {
					t.Errorf("Kind = %s, want %s", e.Kind, tt.kind)
				}
				if len(e.Views) == 0 {
					t.Errorf("particles=%v: expected at least one view", particles)
				}

				want := tt.degraded
				if particles {
					want = tt.withParticle
				}
				if got := e.CapabilityTypes(); !sameTypes(got, want) {
					t.Errorf("particles=%v: capabilities = %v, want %v", particles, got, want)
				}
			}
		})
	}
}

func TestDispatch_OnlyParticleEffectsDegrade(t *testing.T) {
	cfg := newTestConfig(t, nil)

	for _, kind := range []types.EntityKind{types.KindPlayer, types.KindBullet, types.KindExplosion} {
		t.Run(kind.String(), func(t *testing.T) {
			full, err := newTestSpawner(t, cfg, true, NewRandomSource(3), nil).Dispatch(requestFor(kind))
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			degraded, err := newTestSpawner(t, cfg, false, NewRandomSource(3), nil).Dispatch(requestFor(kind))
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}

			var fullWithoutEffects []components.CapabilityType
			for _, c := range full.CapabilityTypes() {
				if c != components.CapabilityVisualEffect {
					fullWithoutEffects = append(fullWithoutEffects, c)
				}
			}
			if !sameTypes(fullWithoutEffects, degraded.CapabilityTypes()) {
				t.Errorf("degraded = %v, want %v", degraded.CapabilityTypes(), fullWithoutEffects)
			}
			if len(full.CapabilitiesOf(components.CapabilityVisualEffect)) != 1 {
				t.Errorf("full entity should carry exactly one visual effect")
			}
			if degraded.Has(components.CapabilityVisualEffect) {
				t.Errorf("degraded entity carries a visual effect")
			}
		})
	}
}

func TestDispatch_SoundCues(t *testing.T) {
	cfg := newTestConfig(t, nil)

	tests := []struct {
		name      string
		kind      types.EntityKind
		particles bool
		want      []string
	}{
		{"bullet", types.KindBullet, true, []string{"shoot5.wav"}},
		{"bullet degraded", types.KindBullet, false, nil},
		{"explosion", types.KindExplosion, true, []string{"explosion-05.wav"}},
		{"explosion degraded", types.KindExplosion, false, nil},
		{"player has no cue", types.KindPlayer, true, nil},
		{"crystal has no cue", types.KindCrystal, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sounds := &recordingSoundPlayer{}
			rng := &sequenceRandom{floats: []float64{0.5}, ints: []int{4}}
			s := newTestSpawner(t, cfg, tt.particles, rng, sounds)

			if _, err := s.Dispatch(requestFor(tt.kind).At(10, 10)); err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			if len(sounds.played) != len(tt.want) {
				t.Fatalf("played = %v, want %v", sounds.played, tt.want)
			}
			for i := range tt.want {
				if sounds.played[i] != tt.want[i] {
					t.Errorf("played[%d] = %q, want %q", i, sounds.played[i], tt.want[i])
				}
			}
		})
	}
}

func TestDispatch_BulletMuzzleFlashTexture(t *testing.T) {
	cfg := newTestConfig(t, nil)
	rng := &sequenceRandom{ints: []int{4}}
	e, err := newTestSpawner(t, cfg, true, rng, nil).Dispatch(requestFor(types.KindBullet).At(0, 0))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	fx := e.CapabilitiesOf(components.CapabilityVisualEffect)[0].(*components.VisualEffectComponent)
	if fx.Effect != components.EffectMuzzleFlash {
		t.Errorf("Effect = %v, want MuzzleFlash", fx.Effect)
	}
	// 4 % 3 = 1 -> muzzle_02
	if fx.Texture != "particles/muzzle_02.png" {
		t.Errorf("Texture = %q, want particles/muzzle_02.png", fx.Texture)
	}
}

func TestDispatch_CornerSpawnedEnemiesUseAnchors(t *testing.T) {
	cfg := newTestConfig(t, nil)
	s := newTestSpawner(t, cfg, true, NewRandomSource(99), nil)
	anchors := s.Placement().Anchors()

	want := [4]types.Vec2{
		{X: 50, Y: 50},
		{X: 1230, Y: 50},
		{X: 1230, Y: 670},
		{X: 50, Y: 670},
	}
	if anchors != want {
		t.Fatalf("Anchors() = %v, want %v", anchors, want)
	}

	for _, kind := range []types.EntityKind{types.KindWanderer, types.KindSeeker, types.KindRunner} {
		t.Run(kind.String(), func(t *testing.T) {
			seen := make(map[int]bool)
			for i := 0; i < 200; i++ {
				e, err := s.Dispatch(NewSpawnRequest(kind))
				if err != nil {
					t.Fatalf("Dispatch() error = %v", err)
				}
				matched := -1
				for j, a := range anchors {
					if e.Position.DistanceTo(a) < epsilon {
						matched = j
					}
				}
				if matched < 0 {
					t.Fatalf("position %v is not a corner anchor", e.Position)
				}
				seen[matched] = true
			}
			if len(seen) != 4 {
				t.Errorf("only %d of 4 anchors used in 200 spawns", len(seen))
			}
		})
	}
}

func TestDispatch_ExplicitPositionOverridesEveryKind(t *testing.T) {
	cfg := newTestConfig(t, nil)
	s := newTestSpawner(t, cfg, true, NewRandomSource(5), nil)
	want := types.Vec2{X: 123.5, Y: -7}

	for _, kind := range types.AllEntityKinds() {
		e, err := s.Dispatch(requestFor(kind).At(want.X, want.Y))
		if err != nil {
			t.Fatalf("%s: Dispatch() error = %v", kind, err)
		}
		if e.Position != want {
			t.Errorf("%s: Position = %v, want %v", kind, e.Position, want)
		}
	}
}

func TestDispatch_DefaultPositions(t *testing.T) {
	cfg := newTestConfig(t, nil)

	t.Run("player at viewport centre", func(t *testing.T) {
		e, err := newTestSpawner(t, cfg, true, NewRandomSource(1), nil).Dispatch(NewSpawnRequest(types.KindPlayer))
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		if e.Position != (types.Vec2{X: 640, Y: 360}) {
			t.Errorf("Position = %v, want (640, 360)", e.Position)
		}
	})

	t.Run("bouncer on left edge", func(t *testing.T) {
		rng := &sequenceRandom{floats: []float64{0.5}}
		e, err := newTestSpawner(t, cfg, true, rng, nil).Dispatch(NewSpawnRequest(types.KindBouncer))
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		// 0.5 * (720 - 40)
		if e.Position != (types.Vec2{X: 0, Y: 340}) {
			t.Errorf("Position = %v, want (0, 340)", e.Position)
		}
	})

	t.Run("bouncer y range", func(t *testing.T) {
		s := newTestSpawner(t, cfg, true, NewRandomSource(11), nil)
		for i := 0; i < 500; i++ {
			e, err := s.Dispatch(NewSpawnRequest(types.KindBouncer))
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			if e.Position.X != 0 || e.Position.Y < 0 || e.Position.Y >= 680 {
				t.Fatalf("Position = %v, want x=0 and y in [0, 680)", e.Position)
			}
		}
	})

	t.Run("decoration inside expanded viewport", func(t *testing.T) {
		s := newTestSpawner(t, cfg, true, NewRandomSource(13), nil)
		bounds := DecorationBounds(testViewport)
		for i := 0; i < 500; i++ {
			e, err := s.Dispatch(NewSpawnRequest(types.KindBackgroundDecoration))
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			if !bounds.Contains(e.Position) {
				t.Fatalf("Position %v outside %v", e.Position, bounds)
			}
		}
	})
}

func TestDispatch_RedVariantRate(t *testing.T) {
	cfg := newTestConfig(t, nil)
	s := newTestSpawner(t, cfg, false, NewRandomSource(42), nil)

	const draws = 10000
	red := 0
	for i := 0; i < draws; i++ {
		e, err := s.Dispatch(NewSpawnRequest(types.KindWanderer))
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		health := e.Health()
		move := e.Movement()

		switch health.MaxHealth {
		case cfg.RedEnemyHealth():
			red++
			if move.Speed != cfg.RedEnemyMoveSpeed() {
				t.Fatalf("red wanderer speed = %v, want %v", move.Speed, cfg.RedEnemyMoveSpeed())
			}
			if e.Views[0].Texture != "RedWanderer.png" {
				t.Fatalf("red wanderer texture = %q", e.Views[0].Texture)
			}
		case cfg.EnemyHealth():
			if move.Speed < config.WandererMinMoveSpeed || move.Speed >= cfg.WandererMaxMoveSpeed() {
				t.Fatalf("normal wanderer speed = %v, want [%v, %v)", move.Speed, config.WandererMinMoveSpeed, cfg.WandererMaxMoveSpeed())
			}
			if e.Views[0].Texture != "Wanderer.png" {
				t.Fatalf("normal wanderer texture = %q", e.Views[0].Texture)
			}
		default:
			t.Fatalf("unexpected health %d", health.MaxHealth)
		}
	}

	rate := float64(red) / draws
	if math.Abs(rate-0.2) > 0.02 {
		t.Errorf("red rate = %.4f, want 0.2 ± 0.02", rate)
	}
}

func TestDispatch_VariantWithFixedDraws(t *testing.T) {
	cfg := newTestConfig(t, nil)

	tests := []struct {
		name       string
		kind       types.EntityKind
		floats     []float64
		wantHealth int
		wantSpeed  float64
	}{
		{"wanderer red", types.KindWanderer, []float64{0.1}, 10, 320},
		{"wanderer normal", types.KindWanderer, []float64{0.5}, 3, 175},
		{"seeker red", types.KindSeeker, []float64{0.19}, 10, 320},
		{"seeker normal", types.KindSeeker, []float64{0.2, 0.5}, 3, 225},
		{"runner fixed", types.KindRunner, []float64{0.0}, 3, 250},
		{"bouncer fixed", types.KindBouncer, []float64{0.0}, 3, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &sequenceRandom{floats: tt.floats}
			s := newTestSpawner(t, cfg, false, rng, nil)
			// 显式位置：避免弹跳者的出生位置消耗随机数
			e, err := s.Dispatch(NewSpawnRequest(tt.kind).At(1, 1))
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			if got := e.Health().MaxHealth; got != tt.wantHealth {
				t.Errorf("health = %d, want %d", got, tt.wantHealth)
			}
			if got := e.Movement().Speed; math.Abs(got-tt.wantSpeed) > epsilon {
				t.Errorf("speed = %v, want %v", got, tt.wantSpeed)
			}
		})
	}
}

func TestDispatch_SeekerEndToEnd(t *testing.T) {
	cfg := newTestConfig(t, map[string]float64{
		config.KeyRedEnemyChance:     0,
		config.KeyEnemyHealth:        3,
		config.KeySeekerMaxMoveSpeed: 300,
	})
	s := newTestSpawner(t, cfg, true, NewRandomSource(7), nil)
	anchors := s.Placement().Anchors()

	for i := 0; i < 500; i++ {
		e, err := s.Dispatch(NewSpawnRequest(types.KindSeeker))
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		if got := e.Health().MaxHealth; got != 3 {
			t.Fatalf("health = %d, want 3", got)
		}
		move := e.Movement()
		if move.Behavior != components.MovementSeeker || move.Target != types.KindPlayer {
			t.Fatalf("movement = %+v, want Seeker targeting player", move)
		}
		if move.Speed < 150 || move.Speed >= 300 {
			t.Fatalf("speed = %v, want [150, 300)", move.Speed)
		}
		onAnchor := false
		for _, a := range anchors {
			if e.Position.DistanceTo(a) < epsilon {
				onAnchor = true
			}
		}
		if !onAnchor {
			t.Fatalf("position %v is not a corner anchor", e.Position)
		}
	}
}

func TestDispatch_BulletEndToEnd(t *testing.T) {
	cfg := newTestConfig(t, nil)
	s := newTestSpawner(t, cfg, false, NewRandomSource(1), nil)

	req := NewSpawnRequest(types.KindBullet).At(100, 200).With(PayloadDirection, types.Vec2{X: 1, Y: 0})
	e, err := s.Dispatch(req)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if e.Position != (types.Vec2{X: 100, Y: 200}) {
		t.Errorf("Position = %v, want (100, 200)", e.Position)
	}
	move := e.Movement()
	if move.Behavior != components.MovementProjectile || move.Speed != 1200 {
		t.Errorf("movement = %+v, want projectile at 1200", move)
	}
	if move.Direction != (types.Vec2{X: 1, Y: 0}) {
		t.Errorf("Direction = %v, want (1, 0)", move.Direction)
	}
	life := e.Lifecycle()
	if life.Policy != components.LifecycleOffscreenCleanup || life.State != components.LifecycleActive {
		t.Errorf("lifecycle = %+v, want active offscreen cleanup", life)
	}
	if !e.Has(components.CapabilityCollidable) {
		t.Error("bullet is not collidable")
	}
}

func TestDispatch_BulletDirectionIsNormalized(t *testing.T) {
	cfg := newTestConfig(t, nil)
	s := newTestSpawner(t, cfg, false, NewRandomSource(1), nil)

	inputs := []any{
		types.Vec2{X: 3, Y: 4},
		&types.Vec2{X: 3, Y: 4},
		[2]float64{3, 4},
		[]float64{3, 4},
	}
	for _, in := range inputs {
		e, err := s.Dispatch(NewSpawnRequest(types.KindBullet).At(0, 0).With(PayloadDirection, in))
		if err != nil {
			t.Fatalf("%T: Dispatch() error = %v", in, err)
		}
		dir := e.Movement().Direction
		if math.Abs(dir.X-0.6) > epsilon || math.Abs(dir.Y-0.8) > epsilon {
			t.Errorf("%T: Direction = %v, want (0.6, 0.8)", in, dir)
		}
	}
}

func TestDispatch_InvalidPayload(t *testing.T) {
	cfg := newTestConfig(t, nil)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing", nil},
		{"nil value", map[string]any{PayloadDirection: nil}},
		{"nil pointer", map[string]any{PayloadDirection: (*types.Vec2)(nil)}},
		{"zero vector", map[string]any{PayloadDirection: types.Vec2{}}},
		{"NaN", map[string]any{PayloadDirection: types.Vec2{X: math.NaN(), Y: 1}}},
		{"Inf", map[string]any{PayloadDirection: [2]float64{math.Inf(1), 0}}},
		{"short slice", map[string]any{PayloadDirection: []float64{1}}},
		{"wrong type", map[string]any{PayloadDirection: "east"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sounds := &recordingSoundPlayer{}
			s := newTestSpawner(t, cfg, true, NewRandomSource(1), sounds)
			em := ecs.NewEntityManager()

			req := SpawnRequest{Kind: types.KindBullet, Payload: tt.payload}
			_, err := s.Spawn(em, req)
			if !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("Spawn() error = %v, want ErrInvalidPayload", err)
			}
			if em.EntityCount() != 0 {
				t.Errorf("EntityCount() = %d, want 0", em.EntityCount())
			}
			if len(sounds.played) != 0 {
				t.Errorf("sound played for rejected request: %v", sounds.played)
			}
		})
	}
}

func TestDispatch_UnknownKind(t *testing.T) {
	cfg := newTestConfig(t, nil)
	s := newTestSpawner(t, cfg, true, NewRandomSource(1), nil)

	for _, kind := range []types.EntityKind{types.KindUnknown, types.EntityKind(99), types.EntityKind(-1)} {
		e, err := s.Dispatch(NewSpawnRequest(kind))
		if !errors.Is(err, ErrUnknownKind) {
			t.Errorf("kind %d: error = %v, want ErrUnknownKind", int(kind), err)
		}
		if e != nil {
			t.Errorf("kind %d: entity = %+v, want nil", int(kind), e)
		}
	}
}

func TestNewSpawner_RequiresConfig(t *testing.T) {
	_, err := NewSpawner(SpawnerOptions{Viewport: testViewport})
	if !errors.Is(err, config.ErrConfigurationMissing) {
		t.Fatalf("NewSpawner() error = %v, want ErrConfigurationMissing", err)
	}
}

func TestNewSpawner_DefaultsViewport(t *testing.T) {
	s, err := NewSpawner(SpawnerOptions{Config: newTestConfig(t, nil), Random: NewRandomSource(1)})
	if err != nil {
		t.Fatalf("NewSpawner() error = %v", err)
	}
	e, err := s.Dispatch(NewSpawnRequest(types.KindPlayer))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if e.Position != config.DefaultViewport().Center() {
		t.Errorf("Position = %v, want default viewport centre", e.Position)
	}
}

func TestRegisteredKinds(t *testing.T) {
	got := RegisteredKinds()
	want := types.AllEntityKinds()
	if len(got) != len(want) {
		t.Fatalf("RegisteredKinds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RegisteredKinds()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDispatch_ConcurrentCallers(t *testing.T) {
	cfg := newTestConfig(t, nil)
	s := newTestSpawner(t, cfg, true, NewRandomSource(21), nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				for _, kind := range types.AllEntityKinds() {
					if _, err := s.Dispatch(requestFor(kind)); err != nil {
						errs <- err
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Dispatch() error = %v", err)
	}
}

func TestDispatch_DecorationDrift(t *testing.T) {
	cfg := newTestConfig(t, nil)
	s := newTestSpawner(t, cfg, true, NewRandomSource(17), nil)
	minSpeed, maxSpeed := cfg.DecorationDriftSpeedRange()

	for i := 0; i < 200; i++ {
		e, err := s.Dispatch(NewSpawnRequest(types.KindBackgroundDecoration))
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		move := e.Movement()
		if move.Behavior != components.MovementRandomDrift {
			t.Fatalf("Behavior = %v, want RandomDrift", move.Behavior)
		}
		if move.Speed < minSpeed || move.Speed >= maxSpeed {
			t.Fatalf("drift speed = %v, want [%v, %v)", move.Speed, minSpeed, maxSpeed)
		}
		if math.Abs(move.Direction.Len()-1) > 1e-6 {
			t.Fatalf("drift direction %v is not a unit vector", move.Direction)
		}
		if move.Bounds != DecorationBounds(testViewport) {
			t.Fatalf("Bounds = %v, want %v", move.Bounds, DecorationBounds(testViewport))
		}
		diameter := e.Views[0].Width
		if diameter < 2*config.DecorationMinRadius || diameter >= 2*config.DecorationMaxRadius {
			t.Fatalf("diameter = %v, want [120, 200)", diameter)
		}
		if !strings.HasPrefix(e.Views[0].Texture, "shape:") {
			t.Fatalf("decoration texture = %q, want a shape", e.Views[0].Texture)
		}
	}
}

func TestDispatch_ExplosionViewIsCentred(t *testing.T) {
	cfg := newTestConfig(t, nil)
	s := newTestSpawner(t, cfg, false, NewRandomSource(1), nil)

	e, err := s.Dispatch(NewSpawnRequest(types.KindExplosion).At(300, 400))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if e.Position != (types.Vec2{X: 300, Y: 400}) {
		t.Errorf("Position = %v, want (300, 400)", e.Position)
	}
	view := e.Views[0]
	if view.OffsetX != -40 || view.OffsetY != -40 {
		t.Errorf("view offset = (%v, %v), want (-40, -40)", view.OffsetX, view.OffsetY)
	}
	life := e.Lifecycle()
	if life.Policy != components.LifecycleExpiry || life.MaxLifetime != 1.6 {
		t.Errorf("lifecycle = %+v, want 1.6s expiry", life)
	}
}
