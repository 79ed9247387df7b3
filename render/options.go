package render

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/meshgo"
)

// Options contains configuration options for scene emission.
type Options struct {
	// Title labels the emitted scene.
	Title string

	// DrawEdges emits one polygon per face with an edge color. When false,
	// faces are batched into a single PolygonArray.
	DrawEdges bool

	// Shading enables the per-face Phong model. When disabled, faces use
	// FaceColor and EdgeColor as-is.
	Shading bool

	// BackfaceCulling discards faces oriented away from the viewer.
	BackfaceCulling bool

	// Shrink scales each face toward its centroid before drawing to reveal
	// the mesh structure. Values outside [0, 1] are clamped with a warning.
	Shrink float64

	// Rotation is the 3x3 view rotation. nil means no rotation. It must be
	// orthonormal within tolerance.
	Rotation *mat.Dense

	// Phong factors.
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64

	// Colors of the Phong model and of the flat fallback.
	FaceColor    RGB
	EdgeColor    RGB
	AmbientColor RGB
	LightColor   RGB

	Logger *meshgo.Logger
}

// DefaultOptions contains the default configuration options for scene
// emission.
var DefaultOptions = Options{
	Title:           "Mesh",
	DrawEdges:       true,
	Shading:         false,
	BackfaceCulling: false,
	Shrink:          1,
	Ambient:         0.1,
	Diffuse:         0.7,
	Specular:        0.2,
	Shininess:       100,
	FaceColor:       RGB{B: 1},
	EdgeColor:       RGB{R: 1},
	AmbientColor:    RGB{R: 1, G: 1},
	LightColor:      RGB{R: 1, G: 1, B: 1},
}

// Option configures scene emission.
type Option func(*Options)

// WithTitle sets the scene title.
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithEdges toggles per-face edge drawing.
func WithEdges(drawEdges bool) Option {
	return func(o *Options) {
		o.DrawEdges = drawEdges
	}
}

// WithShading toggles the per-face Phong model.
func WithShading(shading bool) Option {
	return func(o *Options) {
		o.Shading = shading
	}
}

// WithBackfaceCulling toggles discarding of faces oriented away from the
// viewer.
func WithBackfaceCulling(culling bool) Option {
	return func(o *Options) {
		o.BackfaceCulling = culling
	}
}

// WithShrink sets the face shrink factor in [0, 1].
func WithShrink(rho float64) Option {
	return func(o *Options) {
		o.Shrink = rho
	}
}

// WithRotation sets an explicit 3x3 rotation matrix.
func WithRotation(rotation *mat.Dense) Option {
	return func(o *Options) {
		o.Rotation = rotation
	}
}

// WithEulerAngles sets the rotation from Euler angles around the x, y and z
// axes, in radians.
func WithEulerAngles(thetaX, thetaY, thetaZ float64) Option {
	return func(o *Options) {
		o.Rotation = eulerRotation(thetaX, thetaY, thetaZ)
	}
}

// WithLogger configures the logger used for clamping warnings.
func WithLogger(logger *meshgo.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func eulerRotation(thetaX, thetaY, thetaZ float64) *mat.Dense {
	sinX, cosX := math.Sincos(thetaX)
	sinY, cosY := math.Sincos(thetaY)
	sinZ, cosZ := math.Sincos(thetaZ)

	r := mat.NewDense(3, 3, nil)
	r.Set(0, 0, cosY*cosZ)
	r.Set(1, 0, -cosY*sinZ)
	r.Set(2, 0, sinY)
	r.Set(0, 1, cosX*sinZ+sinX*sinY*cosZ)
	r.Set(1, 1, cosX*cosZ-sinX*sinY*sinZ)
	r.Set(2, 1, -sinX*cosY)
	r.Set(0, 2, sinX*sinZ-cosX*sinY*cosZ)
	r.Set(1, 2, sinX*cosZ+cosX*sinY*sinZ)
	r.Set(2, 2, cosX*cosY)
	return r
}
