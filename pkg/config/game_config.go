package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/gonewx/geowars/pkg/embedded"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigurationMissing 必需参数缺失，游戏不能启动
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrInvalidConfiguration 参数存在但取值非法
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// 参数表的键名
const (
	KeyPlayerSpeed             = "playerSpeed"
	KeyEnemyHealth             = "enemyHealth"
	KeyRedEnemyHealth          = "redEnemyHealth"
	KeyRedEnemyChance          = "redEnemyChance"
	KeyRedEnemyMoveSpeed       = "redEnemyMoveSpeed"
	KeyWandererMaxMoveSpeed    = "wandererMaxMoveSpeed"
	KeySeekerMaxMoveSpeed      = "seekerMaxMoveSpeed"
	KeyRunnerMoveSpeed         = "runnerMoveSpeed"
	KeyBouncerMoveSpeed        = "bouncerMoveSpeed"
	KeyDecorationMinDriftSpeed = "decorationMinDriftSpeed"
	KeyDecorationMaxDriftSpeed = "decorationMaxDriftSpeed"
)

// DefaultGameConfigPath 随程序嵌入的参数表
const DefaultGameConfigPath = "data/geowars.yaml"

// requiredKeys 启动前必须存在的参数
var requiredKeys = []string{
	KeyPlayerSpeed,
	KeyEnemyHealth,
	KeyRedEnemyHealth,
	KeyRedEnemyChance,
	KeyRedEnemyMoveSpeed,
	KeyWandererMaxMoveSpeed,
	KeySeekerMaxMoveSpeed,
	KeyRunnerMoveSpeed,
	KeyBouncerMoveSpeed,
}

// 可选参数的默认值
const (
	DefaultDecorationMinDriftSpeed = 1.0
	DefaultDecorationMaxDriftSpeed = 15.0
)

// GameConfig 难度参数表
// 启动时加载一次，之后只读，可被多个 goroutine 并发读取
type GameConfig struct {
	playerSpeed          float64
	enemyHealth          int
	redEnemyHealth       int
	redEnemyChance       float64
	redEnemyMoveSpeed    float64
	wandererMaxMoveSpeed float64
	seekerMaxMoveSpeed   float64
	runnerMoveSpeed      float64
	bouncerMoveSpeed     float64

	decorationMinDriftSpeed float64
	decorationMaxDriftSpeed float64
}

// LoadGameConfig 从 YAML 文件加载参数表
// 以 "data/" 开头的路径优先从嵌入资源读取，其余路径从磁盘读取
//
// 返回：
//
//	*GameConfig - 解析后的参数表
//	error - 读取、解析或校验失败（缺少参数时可用 errors.Is(err, ErrConfigurationMissing) 判断）
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := readConfigFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", filepath, err)
	}
	return cfg, nil
}

func readConfigFile(filepath string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(filepath) {
		return embedded.ReadFile(filepath)
	}
	return os.ReadFile(filepath)
}

// ParseGameConfig 解析扁平的 键 → 数值 YAML 文档
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var values map[string]float64
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	return NewGameConfig(values)
}

// NewGameConfig 从键值表构建参数表并校验
func NewGameConfig(values map[string]float64) (*GameConfig, error) {
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %v", ErrConfigurationMissing, missing)
	}

	enemyHealth, err := intValue(values, KeyEnemyHealth)
	if err != nil {
		return nil, err
	}
	redEnemyHealth, err := intValue(values, KeyRedEnemyHealth)
	if err != nil {
		return nil, err
	}

	cfg := &GameConfig{
		playerSpeed:             values[KeyPlayerSpeed],
		enemyHealth:             enemyHealth,
		redEnemyHealth:          redEnemyHealth,
		redEnemyChance:          values[KeyRedEnemyChance],
		redEnemyMoveSpeed:       values[KeyRedEnemyMoveSpeed],
		wandererMaxMoveSpeed:    values[KeyWandererMaxMoveSpeed],
		seekerMaxMoveSpeed:      values[KeySeekerMaxMoveSpeed],
		runnerMoveSpeed:         values[KeyRunnerMoveSpeed],
		bouncerMoveSpeed:        values[KeyBouncerMoveSpeed],
		decorationMinDriftSpeed: DefaultDecorationMinDriftSpeed,
		decorationMaxDriftSpeed: DefaultDecorationMaxDriftSpeed,
	}
	if v, ok := values[KeyDecorationMinDriftSpeed]; ok {
		cfg.decorationMinDriftSpeed = v
	}
	if v, ok := values[KeyDecorationMaxDriftSpeed]; ok {
		cfg.decorationMaxDriftSpeed = v
	}

	if err := validateGameConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func intValue(values map[string]float64, key string) (int, error) {
	v := values[key]
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidConfiguration, key, v)
	}
	return int(v), nil
}

// validateGameConfig 验证参数取值的合法性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.redEnemyChance < 0 || cfg.redEnemyChance > 1 {
		return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidConfiguration, KeyRedEnemyChance, cfg.redEnemyChance)
	}

	if cfg.enemyHealth <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfiguration, KeyEnemyHealth, cfg.enemyHealth)
	}
	if cfg.redEnemyHealth <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfiguration, KeyRedEnemyHealth, cfg.redEnemyHealth)
	}

	speeds := map[string]float64{
		KeyPlayerSpeed:             cfg.playerSpeed,
		KeyRedEnemyMoveSpeed:       cfg.redEnemyMoveSpeed,
		KeyWandererMaxMoveSpeed:    cfg.wandererMaxMoveSpeed,
		KeySeekerMaxMoveSpeed:      cfg.seekerMaxMoveSpeed,
		KeyRunnerMoveSpeed:         cfg.runnerMoveSpeed,
		KeyBouncerMoveSpeed:        cfg.bouncerMoveSpeed,
		KeyDecorationMinDriftSpeed: cfg.decorationMinDriftSpeed,
		KeyDecorationMaxDriftSpeed: cfg.decorationMaxDriftSpeed,
	}
	for key, speed := range speeds {
		if speed < 0 {
			return fmt.Errorf("%w: %s cannot be negative, got %v", ErrInvalidConfiguration, key, speed)
		}
	}

	if cfg.decorationMaxDriftSpeed < cfg.decorationMinDriftSpeed {
		return fmt.Errorf("%w: %s (%v) is below %s (%v)", ErrInvalidConfiguration,
			KeyDecorationMaxDriftSpeed, cfg.decorationMaxDriftSpeed,
			KeyDecorationMinDriftSpeed, cfg.decorationMinDriftSpeed)
	}

	return nil
}

// PlayerSpeed 玩家移动速度
func (c *GameConfig) PlayerSpeed() float64 { return c.playerSpeed }

// EnemyHealth 普通敌人生命值
func (c *GameConfig) EnemyHealth() int { return c.enemyHealth }

// RedEnemyHealth 红色精英敌人生命值
func (c *GameConfig) RedEnemyHealth() int { return c.redEnemyHealth }

// RedEnemyChance 红色精英出现概率 [0, 1]
func (c *GameConfig) RedEnemyChance() float64 { return c.redEnemyChance }

// RedEnemyMoveSpeed 红色精英移动速度（固定，不再随机）
func (c *GameConfig) RedEnemyMoveSpeed() float64 { return c.redEnemyMoveSpeed }

// WandererMaxMoveSpeed 普通游荡者速度上限
func (c *GameConfig) WandererMaxMoveSpeed() float64 { return c.wandererMaxMoveSpeed }

// SeekerMaxMoveSpeed 普通追踪者速度上限
func (c *GameConfig) SeekerMaxMoveSpeed() float64 { return c.seekerMaxMoveSpeed }

// RunnerMoveSpeed 奔跑者速度
func (c *GameConfig) RunnerMoveSpeed() float64 { return c.runnerMoveSpeed }

// BouncerMoveSpeed 弹跳者速度
func (c *GameConfig) BouncerMoveSpeed() float64 { return c.bouncerMoveSpeed }

// DecorationDriftSpeedRange 背景装饰漂移速度范围 [min, max)
func (c *GameConfig) DecorationDriftSpeedRange() (float64, float64) {
	return c.decorationMinDriftSpeed, c.decorationMaxDriftSpeed
}
