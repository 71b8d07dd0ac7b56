package sliceplot

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// monochrome is a palette of a single color, used for the zero contour.
type monochrome struct{ c color.Color }

func (m monochrome) Colors() []color.Color { return []color.Color{m.c} }

// Plot returns a heat map of g with the surface of the field, its zero
// contour, drawn in black.
func Plot(g *Grid, title string) (*plot.Plot, error) {
	lo, hi := g.Range()
	if lo > hi {
		return nil, fmt.Errorf("grid has no finite samples")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	heat := plotter.NewHeatMap(g, palette.Heat(16, 1))
	heat.Min, heat.Max = lo, hi
	p.Add(heat)
	if lo < 0 && hi > 0 {
		p.Add(plotter.NewContour(g, []float64{0}, monochrome{c: color.Black}))
	}
	return p, nil
}

// Save plots g and writes it to file. The format follows the file extension.
func Save(g *Grid, title, file string, size vg.Length) error {
	p, err := Plot(g, title)
	if err != nil {
		return err
	}
	return p.Save(size, size, file)
}

// WritePNG plots g and writes it to w as a PNG image.
func WritePNG(w io.Writer, g *Grid, title string, size vg.Length) error {
	p, err := Plot(g, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(size, size, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
