// Package visualization renders walk heatmaps as images and terminal text.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nvandessel/walkheat/internal/constants"
	"github.com/nvandessel/walkheat/internal/heatmap"
	"github.com/nvandessel/walkheat/internal/lattice"
)

// Options controls image rendering.
type Options struct {
	// CellSize is the edge length of one lattice cell in pixels.
	CellSize int
	// Title is drawn above the plot.
	Title string
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		CellSize: 48,
		Title:    "Random Walk Heatmap",
	}
}

const (
	marginLeft   = 64
	marginTop    = 48
	marginBottom = 56
	barGap       = 24
	barWidth     = 20
	barLabelRoom = 72
	tickLen      = 4
)

var (
	background = color.RGBA{255, 255, 255, 255}
	ink        = color.RGBA{0, 0, 0, 255}
	face       = basicfont.Face7x13
)

// layout locates the plot area, cells and colour bar in pixel space.
type layout struct {
	size   int // lattice half-width
	cell   int
	dim    int // cells per side
	plot   image.Rectangle
	bar    image.Rectangle
	bounds image.Rectangle
}

func newLayout(size, cell int) layout {
	dim := 2*size + 1
	side := dim * cell
	plot := image.Rect(marginLeft, marginTop, marginLeft+side, marginTop+side)
	bar := image.Rect(plot.Max.X+barGap, plot.Min.Y, plot.Max.X+barGap+barWidth, plot.Max.Y)
	return layout{
		size:   size,
		cell:   cell,
		dim:    dim,
		plot:   plot,
		bar:    bar,
		bounds: image.Rect(0, 0, bar.Max.X+barLabelRoom, plot.Max.Y+marginBottom),
	}
}

// cellRect returns the pixel rectangle of lattice coordinate c.
// Larger y is drawn higher up.
func (l layout) cellRect(c lattice.Coord) image.Rectangle {
	col := c.X + l.size
	row := l.size - c.Y
	x0 := l.plot.Min.X + col*l.cell
	y0 := l.plot.Min.Y + row*l.cell
	return image.Rect(x0, y0, x0+l.cell, y0+l.cell)
}

// Hot maps t in [0, 1] onto a black, red, yellow, white ramp.
func Hot(t float64) color.RGBA {
	t = clamp01(t)
	channel := func(v float64) uint8 {
		return uint8(clamp01(v)*255 + 0.5)
	}
	return color.RGBA{
		R: channel(3 * t),
		G: channel(3*t - 1),
		B: channel(3*t - 2),
		A: 255,
	}
}

// Render draws the heatmap over lattice coordinates -size..size. Cells shrink
// when the plot would exceed constants.MaxPlotPixels on a side.
func Render(hm *heatmap.Heatmap, size int, opts Options) *image.RGBA {
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultOptions().CellSize
	}
	if size < 0 {
		size = 0
	}
	l := newLayout(size, cellSize(size, opts.CellSize))
	img := image.NewRGBA(l.bounds)
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	maxCount := hm.MaxCount()
	grid := hm.Grid(size)
	for row := range grid {
		for col, n := range grid[row] {
			c := lattice.Coord{X: col - size, Y: size - row}
			draw.Draw(img, l.cellRect(c), image.NewUniform(Hot(ratio(n, maxCount))), image.Point{}, draw.Src)
		}
	}

	drawGridLines(img, l)
	drawAxes(img, l)
	drawColorBar(img, l, maxCount)

	if opts.Title != "" {
		drawCentered(img, opts.Title, (l.plot.Min.X+l.plot.Max.X)/2, marginTop/2+4)
	}

	return img
}

// cellSize shrinks requested so the plot side stays within
// constants.MaxPlotPixels, never below one pixel per cell.
func cellSize(size, requested int) int {
	dim := 2*size + 1
	return max(1, min(requested, constants.MaxPlotPixels/dim))
}

// RenderPNG encodes the heatmap image as PNG to w.
func RenderPNG(w io.Writer, hm *heatmap.Heatmap, size int, opts Options) error {
	if err := png.Encode(w, Render(hm, size, opts)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNGFile renders the heatmap to path, creating parent directories.
func WritePNGFile(path string, hm *heatmap.Heatmap, size int, opts Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create image directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	if err := RenderPNG(f, hm, size, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func drawGridLines(img *image.RGBA, l layout) {
	for i := 0; i <= l.dim; i++ {
		x := l.plot.Min.X + i*l.cell
		y := l.plot.Min.Y + i*l.cell
		if x == l.plot.Max.X {
			x--
		}
		if y == l.plot.Max.Y {
			y--
		}
		for p := l.plot.Min.Y; p < l.plot.Max.Y; p++ {
			img.Set(x, p, ink)
		}
		for p := l.plot.Min.X; p < l.plot.Max.X; p++ {
			img.Set(p, y, ink)
		}
	}
}

func drawAxes(img *image.RGBA, l layout) {
	half := l.cell / 2
	for v := -l.size; v <= l.size; v++ {
		label := strconv.Itoa(v)

		// x ticks under each column
		x := l.plot.Min.X + (v+l.size)*l.cell + half
		for p := 0; p < tickLen; p++ {
			img.Set(x, l.plot.Max.Y+p, ink)
		}
		drawCentered(img, label, x, l.plot.Max.Y+tickLen+13)

		// y ticks beside each row, largest y on top
		y := l.plot.Min.Y + (l.size-v)*l.cell + half
		for p := 1; p <= tickLen; p++ {
			img.Set(l.plot.Min.X-p, y, ink)
		}
		drawText(img, label, l.plot.Min.X-tickLen-2-textWidth(label), y+4)
	}

	drawCentered(img, "X Coordinate", (l.plot.Min.X+l.plot.Max.X)/2, l.plot.Max.Y+marginBottom-10)
	drawText(img, "Y Coordinate", 4, l.plot.Min.Y-6)
}

func drawColorBar(img *image.RGBA, l layout, maxCount int) {
	h := l.bar.Dy()
	for y := 0; y < h; y++ {
		t := 1 - float64(y)/float64(max(h-1, 1))
		c := Hot(t)
		for x := l.bar.Min.X; x < l.bar.Max.X; x++ {
			img.Set(x, l.bar.Min.Y+y, c)
		}
	}

	textX := l.bar.Max.X + 4
	drawText(img, strconv.Itoa(maxCount), textX, l.bar.Min.Y+10)
	if maxCount > 1 {
		drawText(img, strconv.Itoa(maxCount/2), textX, (l.bar.Min.Y+l.bar.Max.Y)/2+4)
	}
	drawText(img, "0", textX, l.bar.Max.Y)
	drawText(img, "Visit Count", l.bar.Min.X-8, l.bar.Min.Y-6)
}

func drawText(img *image.RGBA, s string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func drawCentered(img *image.RGBA, s string, cx, y int) {
	drawText(img, s, cx-textWidth(s)/2, y)
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

func ratio(n, maxCount int) float64 {
	if maxCount <= 0 {
		return 0
	}
	return float64(n) / float64(maxCount)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
