// Package viewer shows a built layout in a resizable native window.
//
// The window is a live container: resizing it resizes the document and
// the layout follows. F1 toggles debug mode on the whole tree, a click
// toggles it on the node under the cursor, and F2 toggles the visibility
// of that node.
package viewer

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/matzehuels/anchorui/pkg/errors"
	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/pipeline"
	"github.com/matzehuels/anchorui/pkg/render/sink"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// Config holds window settings.
type Config struct {
	Title      string
	Width      int
	Height     int
	Background surface.Color
	FPS        int
	Logger     *log.Logger
}

func (c *Config) setDefaults(l *pipeline.Layout) {
	if c.Title == "" {
		c.Title = "anchorui"
		if l.Scene != nil && l.Scene.Label != "" {
			c.Title = l.Scene.Label
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		b := l.Doc.Bounds()
		c.Width, c.Height = int(math.Round(b.Width)), int(math.Round(b.Height))
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// Run opens a window showing l and blocks until the window is closed or
// ctx is done. It must be called from the main goroutine.
func Run(ctx context.Context, l *pipeline.Layout, cfg Config) error {
	cfg.setDefaults(l)
	logger := cfg.Logger

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))

	if !rl.IsWindowReady() {
		return errors.New(errors.ErrCodeInternal, "open window %dx%d", cfg.Width, cfg.Height)
	}
	l.Resize(float64(cfg.Width), float64(cfg.Height))
	logger.Debug("window open", "width", cfg.Width, "height", cfg.Height)

	p := &rlPainter{textures: make(map[uint64]texture)}
	defer p.unload()

	bg := rgba(cfg.Background)
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		if rl.IsWindowResized() {
			w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
			l.Resize(float64(w), float64(h))
			logger.Debug("resized", "width", w, "height", h)
		}

		// Hit testing uses the frame the user clicked on.
		handleInput(l, sink.RenderOps(l.Doc), logger)

		rl.BeginDrawing()
		rl.ClearBackground(bg)
		replay(p, sink.RenderOps(l.Doc))
		rl.EndDrawing()
	}
	return nil
}

func handleInput(l *pipeline.Layout, ops []sink.Op, logger *log.Logger) {
	if rl.IsKeyPressed(rl.KeyF1) {
		l.Root.ToggleDebug()
		logger.Debug("debug toggled", "debug", l.Root.Debug())
	}
	click := rl.IsMouseButtonPressed(rl.MouseLeftButton)
	hide := rl.IsKeyPressed(rl.KeyF2)
	if !click && !hide {
		return
	}
	m := rl.GetMousePosition()
	id, ok := hit(ops, float64(m.X), float64(m.Y))
	if !ok {
		return
	}
	n, ok := l.Root.Find(id)
	if !ok {
		return
	}
	if click {
		n.ToggleDebug()
	}
	if hide {
		n.ToggleVisibility()
	}
	logger.Debug("node toggled", "node", n.Label(), "id", n.IDString(), "debug", n.Debug(), "visible", n.Visible())
}

type texture struct {
	img image.Image
	tex rl.Texture2D
}

type rlPainter struct {
	textures map[uint64]texture
}

func (p *rlPainter) fill(b geom.Box, c surface.Color) {
	rl.DrawRectangleRec(rect(b), rgba(c))
}

func (p *rlPainter) stroke(b geom.Box, width float64, c surface.Color) {
	// DrawRectangleLinesEx draws inside the rectangle; ops carry the
	// centerline of the stroke.
	outer := geom.Box{Left: b.Left - width/2, Top: b.Top - width/2, Width: b.Width + width, Height: b.Height + width}
	rl.DrawRectangleLinesEx(rect(outer), float32(width), rgba(c))
}

func (p *rlPainter) image(id uint64, img image.Image, b geom.Box) {
	t, ok := p.textures[id]
	if !ok || t.img != img {
		if ok {
			rl.UnloadTexture(t.tex)
		}
		t = texture{img: img, tex: rl.LoadTextureFromImage(rl.NewImageFromImage(img))}
		p.textures[id] = t
	}
	src := rl.NewRectangle(0, 0, float32(t.tex.Width), float32(t.tex.Height))
	rl.DrawTexturePro(t.tex, src, rect(b), rl.NewVector2(0, 0), 0, rl.White)
}

func (p *rlPainter) text(s string, x, y, size, anchor float64, c surface.Color) {
	sz := int32(math.Round(size))
	if sz <= 0 {
		return
	}
	w := float64(rl.MeasureText(s, sz))
	rl.DrawText(s, int32(math.Round(x-anchor*w)), int32(math.Round(y-size/2)), sz, rgba(c))
}

func (p *rlPainter) scissor(b geom.Box, on bool) {
	rl.EndScissorMode()
	if on {
		r := rect(b)
		rl.BeginScissorMode(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height))
	}
}

func (p *rlPainter) unload() {
	for id, t := range p.textures {
		rl.UnloadTexture(t.tex)
		delete(p.textures, id)
	}
}

func rect(b geom.Box) rl.Rectangle {
	return rl.NewRectangle(float32(b.Left), float32(b.Top), float32(b.Width), float32(b.Height))
}

func rgba(c surface.Color) color.RGBA {
	n := c.NRGBA()
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}
