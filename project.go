package locmap

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// degreeLength is the ground length of one degree of latitude in
// millimeters, for computing the printed map scale.
const degreeLength = 111111111.0

// Projector maps geographic coordinates onto a canvas in millimeters using
// an aspect-correct equirectangular projection: one degree of longitude is
// compressed by the cosine of the mid latitude so a square on the ground
// renders square, and north is up. The transform is affine and invertible
// in closed form.
type Projector struct {
	bbox   BoundingBox
	width  float64
	height float64
	xScale float64 // mm per degree of longitude
	yScale float64 // mm per degree of latitude, negative (y grows south)
}

// NewProjector returns a projector for bbox whose canvas covers canvasArea
// mm² exactly.
func NewProjector(bbox BoundingBox, canvasArea float64) (*Projector, error) {
	if err := bbox.Validate(); err != nil {
		return nil, err
	}
	if canvasArea <= 0.0 {
		return nil, fmt.Errorf("canvas area must be positive, got %v", canvasArea)
	}
	// Degrees of longitude shrink by cos(latitude), so the y scale is
	// stretched by its inverse to keep ground proportions.
	aspect := 1.0 / math.Cos(bbox.MidLatitude()*math.Pi/180.0)
	scale := math.Sqrt(canvasArea / (bbox.Width() * bbox.Height() * aspect))
	return &Projector{
		bbox:   bbox,
		width:  scale * bbox.Width(),
		height: scale * aspect * bbox.Height(),
		xScale: scale,
		yScale: -scale * aspect,
	}, nil
}

// BBox returns the bounding box the projector was built for.
func (p *Projector) BBox() BoundingBox { return p.bbox }

// Size returns the canvas width and height in millimeters.
func (p *Projector) Size() (float64, float64) { return p.width, p.height }

// ScaleDenominator returns N for the map scale 1:N at the canvas size,
// rounded to thousands.
func (p *Projector) ScaleDenominator() int {
	return int(math.Round(degreeLength/-p.yScale/1000.0)) * 1000
}

// Project maps a longitude/latitude point to canvas millimeters. The
// northwest corner of the bounding box maps to the origin.
func (p *Projector) Project(pt orb.Point) orb.Point {
	return orb.Point{
		(pt[0] - p.bbox.West) * p.xScale,
		(pt[1] - p.bbox.North) * p.yScale,
	}
}

// Unproject maps canvas millimeters back to longitude/latitude. It inverts
// Project up to floating point rounding.
func (p *Projector) Unproject(pt orb.Point) orb.Point {
	return orb.Point{
		pt[0]/p.xScale + p.bbox.West,
		pt[1]/p.yScale + p.bbox.North,
	}
}

// ProjectFeature projects f's geometry onto the canvas as a new value.
// Every coordinate must lie within the bounding box: classification clips
// geometry before projection, so an outside point is an upstream bug and
// returns a ProjectionError.
func (p *Projector) ProjectFeature(f *Feature) (Projected, error) {
	g, err := p.projectGeometry(f.Geometry)
	if err != nil {
		return Projected{}, err
	}
	return Projected{Feature: f, Geometry: g}, nil
}

func (p *Projector) projectGeometry(g orb.Geometry) (orb.Geometry, error) {
	switch g := g.(type) {
	case orb.LineString:
		pts, err := p.projectPoints(g)
		if err != nil {
			return nil, err
		}
		return orb.LineString(pts), nil
	case orb.Ring:
		pts, err := p.projectPoints(g)
		if err != nil {
			return nil, err
		}
		return orb.Ring(pts), nil
	case orb.Polygon:
		out := make(orb.Polygon, len(g))
		for i, ring := range g {
			pts, err := p.projectPoints(ring)
			if err != nil {
				return nil, err
			}
			out[i] = orb.Ring(pts)
		}
		return out, nil
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(g))
		for i, ls := range g {
			pts, err := p.projectPoints(ls)
			if err != nil {
				return nil, err
			}
			out[i] = orb.LineString(pts)
		}
		return out, nil
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, poly := range g {
			pg, err := p.projectGeometry(poly)
			if err != nil {
				return nil, err
			}
			out[i] = pg.(orb.Polygon)
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot project geometry %T", g)
}

func (p *Projector) projectPoints(pts []orb.Point) ([]orb.Point, error) {
	// Clipped geometry may sit exactly on the box edge; allow a sliver of
	// rounding error beyond it.
	epsX := 1e-9 * p.bbox.Width()
	epsY := 1e-9 * p.bbox.Height()
	out := make([]orb.Point, len(pts))
	for i, pt := range pts {
		if pt[0] < p.bbox.West-epsX || p.bbox.East+epsX < pt[0] ||
			pt[1] < p.bbox.South-epsY || p.bbox.North+epsY < pt[1] {
			return nil, &ProjectionError{Point: pt}
		}
		out[i] = p.Project(pt)
	}
	return out, nil
}
