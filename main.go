// geowars 是 Geometry Wars 风格的双摇杆射击游戏。
//
// Usage:
//
//	geowars [run]            - 启动游戏窗口（默认命令）
//	geowars spawn <kind>     - 无界面生成实体并打印组合结果
//
// Global flags:
//
//	--config <path>   - 难度参数表（默认使用嵌入的 data/geowars.yaml）
//	--seed <value>    - 随机种子（0 = 使用当前时间）
//	--no-particles    - 关闭粒子效果及其音效
//	--verbose         - 输出调试日志
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gonewx/geowars/pkg/app"
	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig      string
	flagSeed        int64
	flagNoParticles bool
	flagVerbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "geowars",
	Short: "GeoWars - twin-stick arena shooter",
	Long: `GeoWars is a Geometry Wars style arena shooter.

Available commands:
  run     - Start the game window (default)
  spawn   - Spawn entities headlessly and print what was composed

Examples:
  geowars
  geowars run --seed 42 --no-particles
  geowars spawn seeker --count 5
  geowars spawn bullet --at 100,200 --direction 1,0`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runGame,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the game window",
	Long: `Start the game window.

Controls:
  WASD/Arrows  - Move
  Mouse/Space  - Fire towards the cursor
  F11          - Toggle fullscreen
  Esc          - Quit`,
	Args: cobra.NoArgs,
	RunE: runGame,
}

var flagSoundDir string

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultGameConfigPath, "Path to the difficulty parameter table (YAML)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagNoParticles, "no-particles", false, "Disable particle effects and their sound cues")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().StringVar(&flagSoundDir, "sounds", "assets/sounds", "Directory containing shoot*.wav and explosion-*.wav")
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(spawnCmd)
}

// setup 初始化日志和嵌入资源
func setup(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "geowars",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	log.SetDefault(logger)

	embedded.Init(dataFS)
	return nil
}

func runGame(cmd *cobra.Command, args []string) error {
	game, err := app.NewApp(app.Config{
		ConfigPath:  flagConfig,
		Seed:        flagSeed,
		NoParticles: flagNoParticles,
		SoundDir:    flagSoundDir,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(config.ViewportWidth, config.ViewportHeight)
	ebiten.SetWindowTitle("GeoWars")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(game)
}
