package systems

import (
	"testing"

	"github.com/gonewx/geowars/pkg/components"
	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/ecs"
	"github.com/gonewx/geowars/pkg/entities"
	"github.com/gonewx/geowars/pkg/types"
)

func newTestSpawner(t *testing.T, redChance float64) *entities.Spawner {
	t.Helper()
	cfg, err := config.NewGameConfig(map[string]float64{
		config.KeyPlayerSpeed:          350,
		config.KeyEnemyHealth:          2,
		config.KeyRedEnemyHealth:       10,
		config.KeyRedEnemyChance:       redChance,
		config.KeyRedEnemyMoveSpeed:    320,
		config.KeyWandererMaxMoveSpeed: 250,
		config.KeySeekerMaxMoveSpeed:   300,
		config.KeyRunnerMoveSpeed:      250,
		config.KeyBouncerMoveSpeed:     400,
	})
	if err != nil {
		t.Fatalf("NewGameConfig() error = %v", err)
	}
	s, err := entities.NewSpawner(entities.SpawnerOptions{
		Config:   cfg,
		Viewport: testViewport,
		Random:   entities.NewRandomSource(1),
	})
	if err != nil {
		t.Fatalf("NewSpawner() error = %v", err)
	}
	return s
}

func spawn(t *testing.T, s *entities.Spawner, em *ecs.EntityManager, req entities.SpawnRequest) ecs.EntityID {
	t.Helper()
	id, err := s.Spawn(em, req)
	if err != nil {
		t.Fatalf("Spawn(%s) error = %v", req.Kind, err)
	}
	return id
}

func countKind(em *ecs.EntityManager, kind types.EntityKind) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.KindComponent](em) {
		k, _ := ecs.GetComponent[*components.KindComponent](em, id)
		if k.Kind == kind && !em.IsMarkedForDestruction(id) {
			n++
		}
	}
	return n
}

func TestPhysicsBulletKillsEnemy(t *testing.T) {
	em := ecs.NewEntityManager()
	s := newTestSpawner(t, 0)
	system := NewPhysicsSystem(em, s)

	enemy := spawn(t, s, em, entities.NewSpawnRequest(types.KindWanderer).At(500, 500))
	right := types.Vec2{X: 1, Y: 0}

	// 第一颗子弹：扣血但不致死
	b1 := spawn(t, s, em, entities.NewSpawnRequest(types.KindBullet).At(500, 500).With(entities.PayloadDirection, right))
	system.Update(0)
	if !em.IsMarkedForDestruction(b1) {
		t.Error("bullet should be destroyed on hit")
	}
	health, _ := ecs.GetComponent[*components.HealthComponent](em, enemy)
	if health.CurrentHealth != 1 {
		t.Fatalf("CurrentHealth = %d, want 1", health.CurrentHealth)
	}
	em.RemoveMarkedEntities()

	// 第二颗子弹：敌人死亡，原地生成爆炸和水晶
	spawn(t, s, em, entities.NewSpawnRequest(types.KindBullet).At(505, 495).With(entities.PayloadDirection, right))
	system.Update(0)
	if !em.IsMarkedForDestruction(enemy) {
		t.Fatal("enemy should be destroyed")
	}
	if countKind(em, types.KindExplosion) != 1 || countKind(em, types.KindCrystal) != 1 {
		t.Errorf("explosions = %d, crystals = %d, want 1 and 1",
			countKind(em, types.KindExplosion), countKind(em, types.KindCrystal))
	}
	if got := system.Stats().EnemiesKilled; got != 1 {
		t.Errorf("EnemiesKilled = %d, want 1", got)
	}
}

func TestPhysicsBulletMisses(t *testing.T) {
	em := ecs.NewEntityManager()
	s := newTestSpawner(t, 0)
	system := NewPhysicsSystem(em, s)

	spawn(t, s, em, entities.NewSpawnRequest(types.KindSeeker).At(100, 100))
	bullet := spawn(t, s, em, entities.NewSpawnRequest(types.KindBullet).At(900, 600).With(entities.PayloadDirection, []float64{0, 1}))

	system.Update(0)
	if em.IsMarkedForDestruction(bullet) {
		t.Error("bullet destroyed without a hit")
	}
}

func TestPhysicsPlayerCollectsCrystalAndDies(t *testing.T) {
	em := ecs.NewEntityManager()
	s := newTestSpawner(t, 0)
	system := NewPhysicsSystem(em, s)

	player := spawn(t, s, em, entities.NewSpawnRequest(types.KindPlayer))
	center := testViewport.Center()
	crystal := spawn(t, s, em, entities.NewSpawnRequest(types.KindCrystal).At(center.X, center.Y))

	system.Update(0)
	if !em.IsMarkedForDestruction(crystal) {
		t.Error("crystal should be collected")
	}
	if em.IsMarkedForDestruction(player) {
		t.Fatal("player should survive collecting a crystal")
	}

	spawn(t, s, em, entities.NewSpawnRequest(types.KindRunner).At(center.X+10, center.Y))
	system.Update(0)
	if !em.IsMarkedForDestruction(player) {
		t.Fatal("player should die touching an enemy")
	}

	stats := system.Stats()
	if stats.CrystalsCollected != 1 || stats.PlayerDeaths != 1 {
		t.Errorf("Stats() = %+v, want 1 crystal and 1 death", stats)
	}
	if countKind(em, types.KindExplosion) != 1 {
		t.Errorf("expected an explosion at the player position")
	}
}
