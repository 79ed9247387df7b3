package render

import "fmt"

// RGB is a color with components in [0, 1]. Components outside the range are
// clamped on conversion.
type RGB struct {
	R, G, B float64
}

// Hex returns the color in #RRGGBB form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}

// Polygon is a filled 2D polygon with its own fill and edge colors.
type Polygon struct {
	XY   [][2]float64
	Fill RGB
	Edge RGB
}

// PolygonArray batches same-arity edge-less polygons with one fill color per
// polygon. Emitting a single array instead of many polygons keeps large
// scenes cheap for the sink.
type PolygonArray struct {
	// XY holds Arity consecutive points per polygon.
	XY      [][2]float64
	Arity   int
	Palette []RGB
}

// Cloud is a scatter of points.
type Cloud struct {
	XY     [][2]float64
	Color  RGB
	Legend string
}

// Curve is an open polyline.
type Curve struct {
	XY     [][2]float64
	Color  RGB
	Legend string
}

// Scene is what the renderer hands to a plotting sink. Primitives are listed
// in draw order: for 3D scenes, polygons are ordered back-to-front so that
// painting them in sequence realizes the painter's algorithm.
type Scene struct {
	Title    string
	Clouds   []Cloud
	Curves   []Curve
	Polygons []Polygon
	Array    *PolygonArray
}
