// Command canvasview opens a floor plan of tables on a pannable, zoomable
// canvas. Drag to pan, scroll or pinch to zoom, click a table to select it.
package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/canvasview"
	"github.com/phanxgames/canvasview/ecs"
)

type options struct {
	configPath    string
	dragThreshold float64
	zoomValue     float64
	pinchPan      bool
	width         int
	height        int
	script        string
	debug         bool
	showFPS       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "canvasview",
		Short:        "Pan and zoom a floor plan of tables",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the demo floor
  canvasview

  # Use a config file and a lower drag threshold
  canvasview --config canvasview.yaml --drag-threshold 4

  # Replay a gesture script and exit when it finishes
  canvasview --script testdata/pinch.json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file")
	f.Float64Var(&opts.dragThreshold, "drag-threshold", canvasview.DefaultDragThreshold, "pixels a press must travel before it pans")
	f.Float64Var(&opts.zoomValue, "zoom-value", canvasview.DefaultZoomValue, "zoom base, in (0, 1)")
	f.BoolVar(&opts.pinchPan, "pinch-pan", false, "let the pinch midpoint pan the canvas")
	f.IntVar(&opts.width, "width", 960, "window width")
	f.IntVar(&opts.height, "height", 640, "window height")
	f.StringVar(&opts.script, "script", "", "JSON gesture script to replay")
	f.BoolVar(&opts.debug, "debug", false, "log at debug level")
	f.BoolVar(&opts.showFPS, "fps", false, "show the FPS overlay")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	canvasview.SetLogger(log)

	cfg := canvasview.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = canvasview.LoadConfigFile(opts.configPath); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("drag-threshold") {
		cfg.DragThreshold = opts.dragThreshold
	}
	if flags.Changed("zoom-value") {
		cfg.ZoomValue = opts.zoomValue
	}
	if flags.Changed("pinch-pan") {
		cfg.PinchPan = opts.pinchPan
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c := canvasview.NewController(cfg)
	c.SetDebugMode(opts.debug)
	bg := canvasview.Color{R: 0.12, G: 0.12, B: 0.14, A: 1}
	c.Style(canvasview.Style{Background: &bg})

	world := donburi.NewWorld()
	c.SetEventSink(ecs.NewDonburiSink(world))
	ecs.GestureEventType.Subscribe(world, func(w donburi.World, e canvasview.GestureEvent) {
		if e.Type == canvasview.EventClick && e.Name != "" {
			log.Info("selected", "name", e.Name, "entity", e.EntityID)
		}
	})

	buildFloor(c)

	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := canvasview.LoadTestScript(data)
		if err != nil {
			return err
		}
		c.SetTestRunner(runner)
	}

	g := canvasview.NewGame(c)
	g.OnUpdate = func() error {
		events.ProcessAllEvents(world)
		return nil
	}
	ebiten.SetWindowTitle("canvasview")
	ebiten.SetWindowSize(opts.width, opts.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.showFPS {
		g.ShowFPS(true)
	}
	return ebiten.RunGame(g)
}

var (
	tableColor    = canvasview.Color{R: 0.55, G: 0.38, B: 0.24, A: 1}
	selectedColor = canvasview.Color{R: 0.95, G: 0.7, B: 0.25, A: 1}
	buttonColor   = canvasview.Color{R: 0.25, G: 0.45, B: 0.8, A: 1}
)

// buildFloor lays out a grid of tables and a reset button.
func buildFloor(c *canvasview.Controller) {
	var selected *canvasview.Element
	for row := 0; row < 4; row++ {
		for col := 0; col < 6; col++ {
			n := row*6 + col + 1
			name := fmt.Sprintf("table-%d", n)
			el := labeled(name, 110, 70)
			el.Color = tableColor
			el.EntityID = uint32(n)
			el.OnClick = func(ctx canvasview.ClickContext) {
				if selected != nil {
					selected.Color = tableColor
				}
				selected = ctx.Element
				selected.Color = selectedColor
			}
			c.Add(name, el, float64(40+col*150), float64(60+row*120))
		}
	}

	reset := labeled("reset view", 110, 32)
	reset.Color = buttonColor
	reset.Interactive = true
	reset.OnClick = func(canvasview.ClickContext) { c.Reset() }
	c.Add("reset", reset, 40, 10)
}

// labeled returns an element whose image is a grey box with the name
// printed on it. Color tints it.
func labeled(name string, w, h int) *canvasview.Element {
	img := ebiten.NewImage(w, h)
	img.Fill(color.Gray{Y: 0x99})
	ebitenutil.DebugPrintAt(img, name, 6, 4)
	el := canvasview.NewElement(float64(w), float64(h))
	el.Image = img
	return el
}
