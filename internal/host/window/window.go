//go:build cgo

// Package window runs a race in a desktop window with ebiten.
package window

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/cxd309/race-engine/internal/engine"
	"github.com/cxd309/race-engine/internal/input"
	"github.com/cxd309/race-engine/internal/kinematics"
	"github.com/cxd309/race-engine/internal/render"
)

// ModelSource hands over a replacement motion model, if one is pending.
type ModelSource interface {
	Take() (kinematics.MotionModel, bool)
}

// Config describes the window.
type Config struct {
	Title         string
	Width, Height int
	Keys          input.KeyMap // nil uses input.DefaultKeyMap
	Models        ModelSource  // optional hot-reload source
	Logger        *zap.Logger
}

// Run opens a window and plays race until the window closes.
func Run(race *engine.Race, cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.Title == "" {
		cfg.Title = "race demo"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	g := &game{
		race:    race,
		scene:   render.NewScene(race.Curve(), race.Obstacles()),
		kbd:     newKeyboard(input.NewTracker(cfg.Keys)),
		models:  cfg.Models,
		logger:  cfg.Logger,
		frame:   race.Frame(),
		whiteSI: whiteSubImage(),
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type game struct {
	race   *engine.Race
	scene  *render.Scene
	kbd    *keyboard
	models ModelSource
	logger *zap.Logger

	frame         engine.Frame
	width, height int

	whiteSI  *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func (g *game) Update() error {
	g.kbd.poll()
	if g.models != nil {
		if m, ok := g.models.Take(); ok {
			if err := g.race.SetModel(m); err != nil {
				g.logger.Error("rejected reloaded model", zap.Error(err))
			} else {
				g.logger.Info("motion model reloaded", zap.Int("frame", g.frame.Index))
			}
		}
	}
	f, err := g.race.Tick(g.kbd.tracker, nil)
	if err != nil {
		return err
	}
	g.frame = f
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Sky)
	b := screen.Bounds()
	for _, p := range g.scene.Build(g.frame, b.Dx(), b.Dy()) {
		g.fill(screen, p)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d  speed %.3f  tps %.0f",
		g.frame.Index, g.frame.Player.Speed, ebiten.ActualTPS()), 8, 8)
}

// Layout keeps the logical screen at the window size and forwards size
// changes to the race camera.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.race.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *game) fill(screen *ebiten.Image, p render.Polygon) {
	var path vector.Path
	path.MoveTo(float32(p.Points[0].X), float32(p.Points[0].Y))
	for _, pt := range p.Points[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()

	g.vertices, g.indices = path.AppendVerticesAndIndicesForFilling(g.vertices[:0], g.indices[:0])
	r, gr, b, a := float32(p.Fill.R)/0xff, float32(p.Fill.G)/0xff, float32(p.Fill.B)/0xff, float32(p.Fill.A)/0xff
	for i := range g.vertices {
		g.vertices[i].SrcX = 1
		g.vertices[i].SrcY = 1
		g.vertices[i].ColorR = r
		g.vertices[i].ColorG = gr
		g.vertices[i].ColorB = b
		g.vertices[i].ColorA = a
	}
	screen.DrawTriangles(g.vertices, g.indices, g.whiteSI, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func whiteSubImage() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}
