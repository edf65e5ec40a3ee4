// Package termsink previews animated elements in the terminal. Each element
// gets a row with a block whose column follows x, whose width follows scale
// and whose colour follows background-color dimmed by opacity.
package termsink

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/config"
	"github.com/go-drift/motion/pkg/surface"
)

// labelWidth is the column the track area starts at.
const labelWidth = 14

// DefaultRange is the x distance, in pixels, the track area spans.
const DefaultRange = 400.0

// Renderer is a surface.Sink drawing onto a tcell screen.
type Renderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	frames map[string]surface.Frame
	last   uint64

	// Range is the x value drawn at the right edge.
	Range float64
}

// New returns a renderer on an initialized screen.
func New(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		frames: map[string]surface.Frame{},
		Range:  DefaultRange,
	}
}

// Open initializes the terminal and returns a renderer on it.
func Open() (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.Clear()
	return New(screen), nil
}

// Screen returns the underlying screen.
func (r *Renderer) Screen() tcell.Screen {
	return r.screen
}

// Publish implements surface.Sink.
func (r *Renderer) Publish(f surface.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames[f.Element] = f
	r.last = max(r.last, f.Seq)
	r.draw()
	return nil
}

// Close restores the terminal.
func (r *Renderer) Close() error {
	r.screen.Fini()
	return nil
}

// Draw repaints every element.
func (r *Renderer) Draw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draw()
}

func (r *Renderer) draw() {
	r.screen.Clear()
	width, height := r.screen.Size()
	track := width - labelWidth
	if track < 1 {
		return
	}

	names := make([]string, 0, len(r.frames))
	for name := range r.frames {
		names = append(names, name)
	}
	sort.Strings(names)

	for row, name := range names {
		if row >= height-1 {
			break
		}
		f := r.frames[name]
		drawText(r.screen, 0, row, tcell.StyleDefault, clip(name, labelWidth-1))

		x := value(f, animation.X, 0)
		col := labelWidth + int(math.Round(x/r.Range*float64(track-1)))
		col = max(labelWidth, min(col, width-1))
		size := max(1, int(math.Round(value(f, animation.Scale, 1)*2)))

		style := tcell.StyleDefault.Foreground(blockColor(f))
		for i := range size {
			if col+i >= width {
				break
			}
			r.screen.SetContent(col+i, row, '█', nil, style)
		}
	}

	status := fmt.Sprintf("frame %d  elements %d  (q to quit)", r.last, len(names))
	drawText(r.screen, 0, height-1, tcell.StyleDefault.Dim(true), status)
	r.screen.Show()
}

// blockColor is background-color (or color) scaled towards black by
// opacity.
func blockColor(f surface.Frame) tcell.Color {
	c := colorful.Color{R: 1, G: 1, B: 1}
	for _, p := range []animation.Property{animation.BackgroundColor, animation.TextColor} {
		raw, ok := f.Values[string(p)]
		if !ok {
			continue
		}
		if parsed, err := config.ParseColor(raw); err == nil {
			c = parsed.Colorful().Clamped()
			break
		}
	}
	opacity := math.Max(0, math.Min(1, value(f, animation.Opacity, 1)))
	c = c.BlendRgb(colorful.Color{}, 1-opacity)
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func value(f surface.Frame, p animation.Property, fallback float64) float64 {
	raw, ok := f.Values[string(p)]
	if !ok {
		return fallback
	}
	v, err := config.ParseValue(p, raw)
	if err != nil {
		return fallback
	}
	return animation.ExtractNumber(v)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// QuitKeys are the keys that end a preview.
var QuitKeys = []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC}

// IsQuit reports whether ev asks to leave the preview.
func IsQuit(ev tcell.Event) bool {
	k, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	if slices.Contains(QuitKeys, k.Key()) {
		return true
	}
	return k.Key() == tcell.KeyRune && k.Rune() == 'q'
}

// WatchQuit polls screen events until a quit key arrives, then calls quit.
// It returns when the screen is finalized.
func (r *Renderer) WatchQuit(quit func()) {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			r.screen.Sync()
			r.Draw()
		}
		if IsQuit(ev) {
			quit()
			return
		}
	}
}
