// Package chart renders evaluation results as side-by-side line plots.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/example/go-kaiju-corpus/internal/metrics"
)

// Series is one line of a panel.
type Series struct {
	Label string
	X     []float64
	Y     []float64
}

// Panel is one plot of the figure.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	// Colors are used for the series in order; missing entries fall back
	// to the plotutil palette.
	Colors []color.Color
}

type Options struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultOptions is a 14x7 inch figure at 100 dpi.
func DefaultOptions() Options {
	return Options{Width: 14 * vg.Inch, Height: 7 * vg.Inch, DPI: 100}
}

var (
	blue   = color.RGBA{B: 255, A: 255}
	red    = color.RGBA{R: 255, A: 255}
	green  = color.RGBA{G: 128, A: 255}
	orange = color.RGBA{R: 255, G: 165, A: 255}
)

// EvaluationPanels builds the edit-distance and unknown-ratio panels, one
// series per variant.
func EvaluationPanels(groups []metrics.VariantResults) []Panel {
	edit := Panel{
		Title:  "Levenshtein Distance Ratio vs. Number of Kaijus",
		XLabel: "Number of Kaijus",
		YLabel: "LDR",
		Colors: []color.Color{blue, red},
	}
	unk := Panel{
		Title:  "Unknown Ratio vs. Number of Kaijus",
		XLabel: "Number of Kaijus",
		YLabel: "Unknown Ratio",
		Colors: []color.Color{green, orange},
	}

	for _, g := range groups {
		label := SeriesLabel(g.Variant)
		es := Series{Label: label}
		us := Series{Label: label}

		for _, r := range g.Results {
			x := float64(r.CorpusSize)
			es.X = append(es.X, x)
			es.Y = append(es.Y, r.EditRatio)
			us.X = append(us.X, x)
			us.Y = append(us.Y, r.UnknownRatio)
		}

		edit.Series = append(edit.Series, es)
		unk.Series = append(unk.Series, us)
	}

	return []Panel{edit, unk}
}

// SeriesLabel shortens a variant name for the legend: "L2SVM" -> "L2".
func SeriesLabel(variant string) string {
	if s := strings.TrimSuffix(variant, "SVM"); s != "" {
		return s
	}
	return variant
}

// Render draws panels side by side and writes the figure to w as PNG.
func Render(w io.Writer, panels []Panel, opts Options) error {
	if len(panels) == 0 {
		return errors.New("no panels to render")
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.DPI <= 0 {
		opts = DefaultOptions()
	}

	row := make([]*plot.Plot, len(panels))
	for i, p := range panels {
		pl, err := newPlot(p)
		if err != nil {
			return fmt.Errorf("panel %q: %w", p.Title, err)
		}
		row[i] = pl
	}

	img := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(row),
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
		PadX:      vg.Points(30),
	}

	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for i, pl := range row {
		pl.Draw(canvases[0][i])
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	return nil
}

// SaveFile renders panels to a PNG file at path, creating its directory.
func SaveFile(path string, panels []Panel, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	if err := Render(f, panels, opts); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func newPlot(p Panel) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.Title.TextStyle.Font.Size = vg.Points(14)
	pl.X.Label.Text = p.XLabel
	pl.X.Label.TextStyle.Font.Size = vg.Points(12)
	pl.Y.Label.Text = p.YLabel
	pl.Y.Label.TextStyle.Font.Size = vg.Points(12)
	pl.Legend.Top = true

	grid := plotter.NewGrid()
	dashes := []vg.Length{vg.Points(4), vg.Points(2)}
	gridColor := color.Gray{Y: 160}
	grid.Vertical.Dashes = dashes
	grid.Vertical.Color = gridColor
	grid.Horizontal.Dashes = dashes
	grid.Horizontal.Color = gridColor
	pl.Add(grid)

	for i, s := range p.Series {
		if len(s.X) != len(s.Y) {
			return nil, fmt.Errorf("series %q has %d x values and %d y values", s.Label, len(s.X), len(s.Y))
		}
		if len(s.X) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(s.X))
		for j := range s.X {
			xys[j].X = s.X[j]
			xys[j].Y = s.Y[j]
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}

		c := plotutil.Color(i)
		if i < len(p.Colors) {
			c = p.Colors[i]
		}

		line.Color = c
		line.Width = vg.Points(2)
		points.Shape = draw.CircleGlyph{}
		points.Color = c
		points.Radius = vg.Points(4)

		pl.Add(line, points)
		pl.Legend.Add(s.Label, line, points)
	}

	return pl, nil
}
