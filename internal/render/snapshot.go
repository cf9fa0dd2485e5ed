package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/cxd309/race-engine/internal/engine"
)

// Snapshot renders frames offscreen with gg. It implements engine.Renderer;
// each Render replaces the previous image.
type Snapshot struct {
	scene *Scene
	dc    *gg.Context
}

var _ engine.Renderer = (*Snapshot)(nil)

// NewSnapshot returns a width x height offscreen renderer for scene.
func NewSnapshot(scene *Scene, width, height int) *Snapshot {
	return &Snapshot{scene: scene, dc: gg.NewContext(width, height)}
}

func (s *Snapshot) Render(f engine.Frame) error {
	s.dc.ClearWithColor(gg.FromColor(Sky))
	for _, p := range s.scene.Build(f, s.dc.Width(), s.dc.Height()) {
		s.dc.SetColor(p.Fill)
		s.dc.MoveTo(p.Points[0].X, p.Points[0].Y)
		for _, pt := range p.Points[1:] {
			s.dc.LineTo(pt.X, pt.Y)
		}
		s.dc.ClosePath()
		if err := s.dc.Fill(); err != nil {
			return fmt.Errorf("filling polygon: %w", err)
		}
	}
	return nil
}

// EncodePNG writes the most recent render as PNG.
func (s *Snapshot) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// SavePNG writes the most recent render to path.
func (s *Snapshot) SavePNG(path string) error { return s.dc.SavePNG(path) }

// Close releases the drawing context.
func (s *Snapshot) Close() error { return s.dc.Close() }
