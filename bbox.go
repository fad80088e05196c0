package locmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Maximum bounding box spans in degrees. Larger areas hold too much data to
// fetch and render legibly at infobox sizes.
const (
	MaxLatSpan = 2.0
	MaxLonSpan = 5.0
)

// BoundingBox is a geographic region in WGS84 degrees. Boxes spanning the
// antimeridian are not supported.
type BoundingBox struct {
	South, North float64
	West, East   float64
}

// ParseBoundingBox parses "south/north/west/east" in decimal degrees, e.g.
// "40.69/40.84/-74.03/-73.93". Swapped pairs are reordered.
func ParseBoundingBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("bounding box %q must have the format south/north/west/east", s)
	}
	vals := [4]float64{}
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("bounding box %q: bad coordinate %q", s, part)
		}
		vals[i] = f
	}
	bbox := BoundingBox{South: vals[0], North: vals[1], West: vals[2], East: vals[3]}.Normalize()
	if err := bbox.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return bbox, nil
}

// Normalize returns the box with inverted south/north or west/east pairs
// swapped back into order.
func (b BoundingBox) Normalize() BoundingBox {
	if b.North < b.South {
		b.South, b.North = b.North, b.South
	}
	if b.East < b.West {
		b.West, b.East = b.East, b.West
	}
	return b
}

// Validate reports whether the box encloses a usable area.
func (b BoundingBox) Validate() error {
	if b.North <= b.South || b.East <= b.West {
		return fmt.Errorf("%w: %s", ErrEmptyBoundingBox, b)
	}
	if 90.0 < math.Abs(b.South) || 90.0 < math.Abs(b.North) {
		return fmt.Errorf("bounding box %s: latitude out of range", b)
	}
	if MaxLatSpan < b.Height() {
		return fmt.Errorf("%w: covers over %g° of latitude", ErrBoundingBoxTooLarge, MaxLatSpan)
	}
	if MaxLonSpan < b.Width() {
		return fmt.Errorf("%w: covers over %g° of longitude", ErrBoundingBoxTooLarge, MaxLonSpan)
	}
	return nil
}

// Width is the longitude span in degrees.
func (b BoundingBox) Width() float64 { return b.East - b.West }

// Height is the latitude span in degrees.
func (b BoundingBox) Height() float64 { return b.North - b.South }

// MidLatitude is the latitude of the box center.
func (b BoundingBox) MidLatitude() float64 { return (b.South + b.North) / 2.0 }

// Bound returns the box as an orb bound for geometry operations.
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.West, b.South}, Max: orb.Point{b.East, b.North}}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("%v/%v/%v/%v", b.South, b.North, b.West, b.East)
}
