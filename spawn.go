package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gonewx/geowars/pkg/config"
	"github.com/gonewx/geowars/pkg/entities"
	"github.com/gonewx/geowars/pkg/types"
	"github.com/spf13/cobra"
)

var (
	flagCount     int
	flagAt        string
	flagDirection string
)

var spawnCmd = &cobra.Command{
	Use:   "spawn <kind>",
	Short: "Spawn entities headlessly and print what was composed",
	Long: `Dispatch spawn requests without opening a window and print the
resolved position, variant and capabilities of every composed entity.

Kinds:
  background, background_circle, player, bullet, wanderer, seeker,
  runner, bouncer, explosion, portal, crystal

Examples:
  geowars spawn wanderer --count 10 --seed 7
  geowars spawn bullet --at 100,200 --direction 1,0
  geowars spawn explosion --at 300,300 --no-particles`,
	Args: cobra.ExactArgs(1),
	RunE: runSpawn,
}

func init() {
	spawnCmd.Flags().IntVarP(&flagCount, "count", "n", 1, "Number of entities to spawn")
	spawnCmd.Flags().StringVar(&flagAt, "at", "", "Explicit position as x,y")
	spawnCmd.Flags().StringVar(&flagDirection, "direction", "", "Bullet direction as x,y")
}

// cueRecorder 记录生成过程中请求的音效
type cueRecorder struct {
	cues []string
}

func (r *cueRecorder) PlaySound(soundID string) bool {
	r.cues = append(r.cues, soundID)
	return true
}

func runSpawn(cmd *cobra.Command, args []string) error {
	kind := types.EntityKindFromString(args[0])
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", entities.ErrUnknownKind, args[0])
	}

	cfg, err := config.LoadGameConfig(flagConfig)
	if err != nil {
		return err
	}

	req := entities.NewSpawnRequest(kind)
	if flagAt != "" {
		at, err := parsePair(flagAt)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		req = req.At(at.X, at.Y)
	}
	if flagDirection != "" {
		dir, err := parsePair(flagDirection)
		if err != nil {
			return fmt.Errorf("--direction: %w", err)
		}
		req = req.With(entities.PayloadDirection, dir)
	}

	sounds := &cueRecorder{}
	spawner, err := entities.NewSpawner(entities.SpawnerOptions{
		Config:       cfg,
		Capabilities: config.DetectPlatformCapabilities(!flagNoParticles),
		Viewport:     config.DefaultViewport(),
		Random:       entities.NewRandomSource(flagSeed),
		Sounds:       sounds,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i := 0; i < flagCount; i++ {
		sounds.cues = sounds.cues[:0]
		e, err := spawner.Dispatch(req)
		if err != nil {
			return err
		}
		printComposed(out, i+1, e, sounds.cues)
	}
	return nil
}

// composedStyles 终端输出样式；写入非终端时渲染器自动退化为纯文本
type composedStyles struct {
	header lipgloss.Style
	label  lipgloss.Style
	red    lipgloss.Style
}

func newComposedStyles(w io.Writer) composedStyles {
	r := lipgloss.NewRenderer(w)
	return composedStyles{
		header: r.NewStyle().Bold(true),
		label:  r.NewStyle().Faint(true).Width(13),
		red:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func (s composedStyles) row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s%s\n", s.label.Render(label), value)
}

func printComposed(w io.Writer, n int, e *entities.ComposedEntity, cues []string) {
	st := newComposedStyles(w)
	fmt.Fprintln(w, st.header.Render(fmt.Sprintf("#%d %s at (%.1f, %.1f)", n, e.Kind, e.Position.X, e.Position.Y)))

	if h := e.Health(); h != nil {
		st.row(w, "health", strconv.Itoa(h.MaxHealth))
	}
	if m := e.Movement(); m != nil {
		var b strings.Builder
		fmt.Fprintf(&b, "%s speed=%.1f", m.Behavior, m.Speed)
		if m.Direction.Len() > 0 {
			fmt.Fprintf(&b, " dir=(%.2f, %.2f)", m.Direction.X, m.Direction.Y)
		}
		if m.Target != types.KindUnknown {
			fmt.Fprintf(&b, " target=%s", m.Target)
		}
		st.row(w, "movement", b.String())
	}
	if l := e.Lifecycle(); l != nil {
		value := l.Policy.String()
		if l.MaxLifetime > 0 {
			value += fmt.Sprintf(" %.1fs", l.MaxLifetime)
		}
		st.row(w, "lifecycle", value)
	}

	caps := make([]string, 0, len(e.Capabilities))
	for _, t := range e.CapabilityTypes() {
		caps = append(caps, t.String())
	}
	st.row(w, "capabilities", strings.Join(caps, ", "))

	views := make([]string, 0, len(e.Views))
	for _, v := range e.Views {
		if strings.HasPrefix(v.Texture, "Red") {
			views = append(views, st.red.Render(v.Texture))
			continue
		}
		views = append(views, v.Texture)
	}
	st.row(w, "views", strings.Join(views, ", "))

	if len(cues) > 0 {
		st.row(w, "sounds", strings.Join(cues, ", "))
	}
}

// parsePair 解析 "x,y"
func parsePair(s string) (types.Vec2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return types.Vec2{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return types.Vec2{}, fmt.Errorf("bad x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return types.Vec2{}, fmt.Errorf("bad y in %q: %w", s, err)
	}
	return types.Vec2{X: x, Y: y}, nil
}
