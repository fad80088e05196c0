package locmap

import (
	"math"

	"github.com/paulmach/orb"
)

// Simplify thins p's geometry with Douglas-Peucker at the given tolerance
// in canvas millimeters. Endpoints survive unchanged, closed rings stay
// closed, and no point is ever added. A ring that degenerates below a
// triangle is dropped; a polygon whose outer ring degenerates is dropped
// whole, leaving a nil geometry. Nonpositive tolerance is a no-op.
func Simplify(p Projected, tolerance float64) Projected {
	if tolerance <= 0.0 {
		return p
	}
	p.Geometry = simplifyGeometry(p.Geometry, tolerance)
	return p
}

func simplifyGeometry(g orb.Geometry, tolerance float64) orb.Geometry {
	switch g := g.(type) {
	case orb.LineString:
		return orb.LineString(simplifyPoints(g, tolerance))
	case orb.Ring:
		pts := simplifyPoints(g, tolerance)
		if len(pts) < 4 {
			return nil
		}
		return orb.Ring(pts)
	case orb.Polygon:
		out := make(orb.Polygon, 0, len(g))
		for i, ring := range g {
			sg := simplifyGeometry(ring, tolerance)
			if sg == nil {
				if i == 0 {
					return nil
				}
				continue
			}
			out = append(out, sg.(orb.Ring))
		}
		return out
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(g))
		for i, ls := range g {
			out[i] = orb.LineString(simplifyPoints(ls, tolerance))
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, 0, len(g))
		for _, poly := range g {
			sg := simplifyGeometry(poly, tolerance)
			if sg == nil {
				continue
			}
			out = append(out, sg.(orb.Polygon))
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return g
}

func simplifyPoints(pts []orb.Point, tolerance float64) []orb.Point {
	out := make([]orb.Point, 0, len(pts))
	if len(pts) <= 2 {
		return append(out, pts...)
	}
	keep := make([]bool, len(pts))
	keep[0], keep[len(pts)-1] = true, true
	douglasPeucker(pts, 0, len(pts)-1, tolerance, keep)
	for i, pt := range pts {
		if keep[i] {
			out = append(out, pt)
		}
	}
	return out
}

// douglasPeucker marks the interior points of pts[first:last+1] that stray
// more than tolerance from the chord, recursing on the farthest one.
func douglasPeucker(pts []orb.Point, first, last int, tolerance float64, keep []bool) {
	if last <= first+1 {
		return
	}
	index, dist := first, 0.0
	for i := first + 1; i < last; i++ {
		if d := chordDistance(pts[i], pts[first], pts[last]); dist < d {
			index, dist = i, d
		}
	}
	if dist <= tolerance {
		return
	}
	keep[index] = true
	douglasPeucker(pts, first, index, tolerance, keep)
	douglasPeucker(pts, index, last, tolerance, keep)
}

// chordDistance is the distance from pt to the line through a and b, or to
// a itself when the chord has zero length, as on a closed ring.
func chordDistance(pt, a, b orb.Point) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	if dx == 0.0 && dy == 0.0 {
		return math.Hypot(pt[0]-a[0], pt[1]-a[1])
	}
	return math.Abs(dy*pt[0]-dx*pt[1]+b[0]*a[1]-b[1]*a[0]) / math.Hypot(dx, dy)
}
