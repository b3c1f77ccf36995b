// Package app 提供游戏应用的核心包装器
//
// World 负责逐帧逻辑，App 把它接入 Ebitengine 的游戏循环：
// 读取键鼠输入、绘制实体、处理全屏切换。
package app

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/entities"
	"github.com/gonewx/geowars/pkg/game"
	"github.com/gonewx/geowars/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// ConfigPath 难度参数表路径
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// NoParticles 强制关闭粒子效果（及其音效）
	NoParticles bool
	// SoundDir 音效文件目录
	SoundDir string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	world    *World
	settings *game.SettingsManager

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	gameConfig, err := config.LoadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	settings := game.NewSettingsManager(game.OpenStorage("geowars"))
	caps := config.DetectPlatformCapabilities(!cfg.NoParticles && settings.GetSettings().ParticlesEnabled)
	log.Infof("[App] Particle effects: %v", caps.SupportsParticleEffects)

	audioManager := game.NewAudioManager(audio.NewContext(game.SampleRate), cfg.SoundDir, settings)
	if caps.SupportsParticleEffects {
		audioManager.Preload(soundCues())
	}

	world, err := NewWorld(WorldOptions{
		Config:       gameConfig,
		Capabilities: caps,
		Viewport:     config.DefaultViewport(),
		Random:       entities.NewRandomSource(cfg.Seed),
		Sounds:       audioManager,
	})
	if err != nil {
		return nil, err
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{world: world, settings: settings}, nil
}

// soundCues 子弹和爆炸使用的全部音效
func soundCues() []string {
	var cues []string
	for i := 1; i <= config.ShootSoundCount; i++ {
		cues = append(cues, fmt.Sprintf("shoot%d.wav", i))
	}
	for i := 1; i <= config.ExplosionSoundCount; i++ {
		cues = append(cues, fmt.Sprintf("explosion-0%d.wav", i))
	}
	return cues
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if err := a.settings.Save(); err != nil {
			log.Warnf("[App] Failed to save settings: %v", err)
		}
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ViewportWidth, config.ViewportHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
		if !fullscreen {
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		}
	}

	a.world.Step(1.0/float64(ebiten.TPS()), readInput())
	return nil
}

// readInput WASD/方向键移动，鼠标左键或空格朝光标开火
func readInput() Input {
	var in Input
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Move.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.Move.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.Move.Y++
	}

	mx, my := ebiten.CursorPosition()
	in.Aim = types.Vec2{X: float64(mx), Y: float64(my)}
	in.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace)
	return in
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	renderWorld(screen, a.world.EntityManager())

	stats := a.world.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Kills: %d  Crystals: %d  Deaths: %d  Entities: %d",
		stats.EnemiesKilled, stats.CrystalsCollected, stats.PlayerDeaths, a.world.EntityManager().EntityCount()))
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右两边填充黑色，使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ViewportWidth, config.ViewportHeight
}
