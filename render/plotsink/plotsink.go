// Package plotsink renders a scene onto a gonum plot.
//
// It is the only package that depends on the plotting backend; the renderer
// itself emits backend-neutral scenes.
package plotsink

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/hupe1980/meshgo/render"
)

// Render draws the scene primitives, in scene order, onto a new plot.
func Render(scene *render.Scene) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = scene.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	for _, poly := range scene.Polygons {
		pl, err := plotter.NewPolygon(toXYs(poly.XY))
		if err != nil {
			return nil, err
		}
		pl.Color = toColor(poly.Fill)
		pl.LineStyle.Color = toColor(poly.Edge)
		p.Add(pl)
	}

	if scene.Array != nil {
		for i, fill := range scene.Array.Palette {
			chunk := scene.Array.XY[i*scene.Array.Arity : (i+1)*scene.Array.Arity]
			pl, err := plotter.NewPolygon(toXYs(chunk))
			if err != nil {
				return nil, err
			}
			pl.Color = toColor(fill)
			pl.LineStyle.Width = 0
			p.Add(pl)
		}
	}

	for _, curve := range scene.Curves {
		line, err := plotter.NewLine(toXYs(curve.XY))
		if err != nil {
			return nil, err
		}
		line.Color = toColor(curve.Color)
		p.Add(line)
		if curve.Legend != "" {
			p.Legend.Add(curve.Legend, line)
		}
	}

	for _, cloud := range scene.Clouds {
		scatter, err := plotter.NewScatter(toXYs(cloud.XY))
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = toColor(cloud.Color)
		p.Add(scatter)
		if cloud.Legend != "" {
			p.Legend.Add(cloud.Legend, scatter)
		}
	}

	return p, nil
}

func toXYs(points [][2]float64) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt[0]
		xys[i].Y = pt[1]
	}
	return xys
}

func toColor(c render.RGB) color.Color {
	return color.RGBA{
		R: componentByte(c.R),
		G: componentByte(c.G),
		B: componentByte(c.B),
		A: 0xff,
	}
}

func componentByte(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
