package locmap

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Category tells which map layer a feature belongs to.
type Category int

const (
	// CategoryNone marks features that are discarded or not yet classified.
	CategoryNone Category = iota
	CategoryPark
	CategoryBorder
	CategoryRailroad
	CategoryStreet
)

// Categories lists the renderable categories back to front: parks at the
// bottom, then borders and railroads, with streets on top for legibility.
// This order is fixed.
var Categories = [4]Category{CategoryPark, CategoryBorder, CategoryRailroad, CategoryStreet}

func (c Category) String() string {
	switch c {
	case CategoryPark:
		return "park"
	case CategoryBorder:
		return "border"
	case CategoryRailroad:
		return "railroad"
	case CategoryStreet:
		return "street"
	}
	return "none"
}

// Feature is one fetched map element in WGS84 degrees. Geometry is an
// orb.LineString for an open polyline (street, railway, boundary segment) or
// an orb.Polygon for an area; clipping may split either into its multi
// variant. Category and Tier are zero until Classify assigns them; after
// that the feature is read-only.
type Feature struct {
	ID       string
	Geometry orb.Geometry
	Tags     map[string]string
	Category Category
	Tier     int
}

// Tag returns the value for key, or the empty string.
func (f *Feature) Tag(key string) string { return f.Tags[key] }

// Validate checks the geometry invariants: polylines have at least 2 points
// and every polygon ring has at least 3 points and is closed. An unclosed
// ring is an error, never silently closed.
func (f *Feature) Validate() error {
	return f.validateGeometry(f.Geometry)
}

func (f *Feature) validateGeometry(g orb.Geometry) error {
	switch g := g.(type) {
	case orb.LineString:
		if len(g) < 2 {
			return &MalformedGeometryError{ID: f.ID, Reason: "polyline has fewer than 2 points"}
		}
	case orb.Polygon:
		if len(g) == 0 {
			return &MalformedGeometryError{ID: f.ID, Reason: "polygon has no rings"}
		}
		for _, ring := range g {
			if len(ring) < 3 {
				return &MalformedGeometryError{ID: f.ID, Reason: "ring has fewer than 3 points"}
			}
			if !ring[0].Equal(ring[len(ring)-1]) {
				return &MalformedGeometryError{ID: f.ID, Reason: "ring is not closed"}
			}
		}
	case orb.MultiLineString:
		if len(g) == 0 {
			return &MalformedGeometryError{ID: f.ID, Reason: "multiline has no parts"}
		}
		for _, ls := range g {
			if err := f.validateGeometry(ls); err != nil {
				return err
			}
		}
	case orb.MultiPolygon:
		if len(g) == 0 {
			return &MalformedGeometryError{ID: f.ID, Reason: "multipolygon has no parts"}
		}
		for _, poly := range g {
			if err := f.validateGeometry(poly); err != nil {
				return err
			}
		}
	default:
		return &MalformedGeometryError{ID: f.ID, Reason: fmt.Sprintf("unsupported geometry %T", g)}
	}
	return nil
}

// Projected couples a classified feature with its planar canvas geometry in
// millimeters. The embedded feature keeps its geographic geometry; nothing
// is written back onto it.
type Projected struct {
	*Feature
	Geometry orb.Geometry
}

// Layer groups projected features that share a category.
type Layer struct {
	Category Category
	Features []Projected
}
