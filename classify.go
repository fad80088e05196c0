package locmap

import (
	"math"
	"sort"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
)

// streetTiers ranks highway values by importance; link roads rank with
// their parent road.
var streetTiers = map[string]int{
	"motorway":       0,
	"motorway_link":  0,
	"trunk":          0,
	"trunk_link":     0,
	"primary":        1,
	"primary_link":   1,
	"secondary":      2,
	"secondary_link": 2,
	"tertiary":       3,
	"tertiary_link":  3,
	"unclassified":   4,
	"residential":    4,
	"living_street":  5,
	"service":        6,
	"track":          6,
}

// Green area tagging drawn as parks.
var (
	parkLeisure = map[string]bool{
		"park": true, "dog_park": true, "pitch": true, "stadium": true,
		"golf_course": true, "garden": true, "nature_reserve": true,
	}
	parkNatural = map[string]bool{
		"grassland": true, "heath": true, "scrub": true, "tundra": true,
		"wood": true, "wetland": true,
	}
	parkLanduse = map[string]bool{
		"farmland": true, "forest": true, "meadow": true, "orchard": true,
		"vineyard": true, "cemetery": true, "recreation_ground": true,
		"village_green": true,
	}
)

// constructionValue resolves construction tagging: highway=construction
// with construction=primary counts as primary.
func constructionValue(tags map[string]string, key string) string {
	v := tags[key]
	if v == "construction" {
		if c := tags["construction"]; c != "" {
			return c
		}
	}
	return v
}

// StreetTier returns the street tier for a tag set, or false when the tags
// name no ranked road.
func StreetTier(tags map[string]string) (int, bool) {
	tier, ok := streetTiers[constructionValue(tags, "highway")]
	return tier, ok
}

// StreetValues lists the highway values whose tier is at most detail, for
// building fetch queries.
func StreetValues(detail int) []string {
	values := make([]string, 0, len(streetTiers))
	for value, tier := range streetTiers {
		if tier <= detail {
			values = append(values, value)
		}
	}
	sort.Strings(values)
	return values
}

func isRailroad(tags map[string]string) bool {
	return constructionValue(tags, "railway") == "rail"
}

func isTramway(tags map[string]string) bool {
	return constructionValue(tags, "railway") == "tram"
}

func isWalkway(tags map[string]string) bool {
	return constructionValue(tags, "highway") == "pedestrian" && tags["area"] != "yes"
}

func isPark(tags map[string]string) bool {
	if parkLeisure[tags["leisure"]] || parkNatural[tags["natural"]] ||
		parkLanduse[constructionValue(tags, "landuse")] {
		return true
	}
	if tags["boundary"] == "protected_area" {
		switch tags["protect_class"] {
		case "1", "1a", "1b":
			return true
		}
	}
	return false
}

// borderLevel returns the admin level of an administrative boundary.
func borderLevel(tags map[string]string) (int, bool) {
	if tags["boundary"] != "administrative" {
		return 0, false
	}
	level, err := strconv.Atoi(tags["admin_level"])
	if err != nil || level < 1 {
		return 0, false
	}
	return level, true
}

// classifyTags maps a tag set to its category and tier under the resolved
// options. Street tagging wins over area tagging on the same element.
func classifyTags(tags map[string]string, res Resolved) (Category, int, bool) {
	if tier, ok := StreetTier(tags); ok && tier <= res.StreetDetail {
		return CategoryStreet, tier, true
	}
	if res.Tramways && isTramway(tags) {
		return CategoryStreet, 2, true
	}
	if res.Walkways && isWalkway(tags) {
		return CategoryStreet, MaxStreetDetail, true
	}
	if res.Railroads && isRailroad(tags) {
		return CategoryRailroad, 0, true
	}
	if res.Parks && isPark(tags) {
		return CategoryPark, 0, true
	}
	if level, ok := borderLevel(tags); ok && 0 < res.BorderDetail && level <= res.BorderDetail {
		return CategoryBorder, level, true
	}
	return CategoryNone, 0, false
}

// Classify assigns a category and tier to every feature that belongs on the
// map and drops the rest: features outside bbox, features no selected
// category claims, malformed geometry (warned), park slivers, and
// boundaries that only trace the bbox edge. Retained geometry is clipped to
// bbox. The input is never modified and its order is preserved; classifying
// the output again yields the same categories and tiers.
//
// bbox must be valid per Validate.
func Classify(features []Feature, bbox BoundingBox, res Resolved, tun Tuning) ([]Feature, []error) {
	proj, err := NewProjector(bbox, tun.CanvasArea)
	if err != nil {
		panic(err)
	}
	bound := bbox.Bound()
	out := make([]Feature, 0, len(features))
	var warnings []error
	streets := 0
	for i := range features {
		f := features[i]
		if err := f.Validate(); err != nil {
			warnings = append(warnings, err)
			continue
		}
		if !bound.Intersects(f.Geometry.Bound()) {
			continue
		}
		category, tier, ok := classifyTags(f.Tags, res)
		if !ok {
			continue
		}
		if category == CategoryPark && !isArea(f.Geometry) {
			continue
		}
		if category == CategoryBorder && onBoundEdge(f.Geometry, bbox) {
			// An admin boundary lying entirely on the bbox edge would just
			// trace the crop rectangle.
			continue
		}
		g := clip.Geometry(bound, orb.Clone(f.Geometry))
		if g == nil || emptyGeometry(g) {
			continue
		}
		if category == CategoryPark && res.ParksAuto && projectedDiagonal(proj, g) < tun.MinParkExtent {
			continue
		}
		f.Geometry = g
		f.Category = category
		f.Tier = tier
		out = append(out, f)
		if category == CategoryStreet {
			streets++
		}
	}
	if streets == 0 {
		warnings = append(warnings, ErrNoStreets)
	}
	return out, warnings
}

func isArea(g orb.Geometry) bool {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return true
	}
	return false
}

func emptyGeometry(g orb.Geometry) bool {
	switch g := g.(type) {
	case orb.LineString:
		return len(g) < 2
	case orb.Polygon:
		return len(g) == 0 || len(g[0]) < 3
	case orb.MultiLineString:
		for _, ls := range g {
			if 2 <= len(ls) {
				return false
			}
		}
		return true
	case orb.MultiPolygon:
		for _, poly := range g {
			if 0 < len(poly) && 3 <= len(poly[0]) {
				return false
			}
		}
		return true
	}
	return true
}

// onBoundEdge reports whether every point of g lies on the bounding box
// edge, within rounding error.
func onBoundEdge(g orb.Geometry, bbox BoundingBox) bool {
	epsX := 1e-9 * bbox.Width()
	epsY := 1e-9 * bbox.Height()
	onEdge := func(pt orb.Point) bool {
		return math.Abs(pt[0]-bbox.West) < epsX || math.Abs(pt[0]-bbox.East) < epsX ||
			math.Abs(pt[1]-bbox.South) < epsY || math.Abs(pt[1]-bbox.North) < epsY
	}
	all := true
	eachPoint(g, func(pt orb.Point) {
		if !onEdge(pt) {
			all = false
		}
	})
	return all
}

func eachPoint(g orb.Geometry, fn func(orb.Point)) {
	switch g := g.(type) {
	case orb.Point:
		fn(g)
	case orb.LineString:
		for _, pt := range g {
			fn(pt)
		}
	case orb.Ring:
		for _, pt := range g {
			fn(pt)
		}
	case orb.Polygon:
		for _, ring := range g {
			eachPoint(ring, fn)
		}
	case orb.MultiLineString:
		for _, ls := range g {
			eachPoint(ls, fn)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			eachPoint(poly, fn)
		}
	}
}

// projectedDiagonal is the diagonal of g's bounding box on the canvas, in
// millimeters.
func projectedDiagonal(proj *Projector, g orb.Geometry) float64 {
	b := g.Bound()
	min := proj.Project(b.Min)
	max := proj.Project(b.Max)
	return math.Hypot(max[0]-min[0], max[1]-min[1])
}
