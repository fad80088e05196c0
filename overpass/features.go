package overpass

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmgeojson"

	locmap "github.com/jkunimune/auto-location-map"
)

// Features converts fetched OSM data to map features. Ways and relations
// become polylines and polygons in lon/lat order, tagged with their element
// ID like "way/123"; plain nodes are dropped. A relation assembled from
// several outlines is split into one feature per part. The result is
// deduplicated by ID and sorted, so overlapping chunked fetches always
// merge into the same population.
func Features(o *osm.OSM) ([]locmap.Feature, error) {
	fc, err := osmgeojson.Convert(o,
		osmgeojson.NoMeta(true),
		osmgeojson.NoRelationMembership(true))
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	features := make([]locmap.Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		id := featureID(f, i)
		if seen[id] {
			continue
		}
		seen[id] = true
		tags, _ := f.Properties["tags"].(map[string]string)
		parts := splitGeometry(f.Geometry)
		for j, g := range parts {
			partID := id
			if 1 < len(parts) {
				partID = fmt.Sprintf("%s/%d", id, j)
			}
			features = append(features, locmap.Feature{ID: partID, Geometry: g, Tags: tags})
		}
	}
	sort.Slice(features, func(i, j int) bool { return lessID(features[i].ID, features[j].ID) })
	return features, nil
}

func featureID(f *geojson.Feature, index int) string {
	if s, ok := f.ID.(string); ok && s != "" {
		return s
	}
	t, _ := f.Properties["type"].(string)
	switch id := f.Properties["id"].(type) {
	case int:
		return fmt.Sprintf("%s/%d", t, id)
	case int64:
		return fmt.Sprintf("%s/%d", t, id)
	case float64:
		return fmt.Sprintf("%s/%.0f", t, id)
	case string:
		return t + "/" + id
	}
	return fmt.Sprintf("feature/%d", index)
}

// splitGeometry flattens multi geometries to their parts and drops points.
func splitGeometry(g orb.Geometry) []orb.Geometry {
	switch g := g.(type) {
	case orb.LineString:
		return []orb.Geometry{g}
	case orb.Polygon:
		return []orb.Geometry{g}
	case orb.MultiLineString:
		parts := make([]orb.Geometry, len(g))
		for i, ls := range g {
			parts[i] = ls
		}
		return parts
	case orb.MultiPolygon:
		parts := make([]orb.Geometry, len(g))
		for i, poly := range g {
			parts[i] = poly
		}
		return parts
	}
	return nil
}

// lessID orders IDs like way/99 before way/123 by comparing slash-separated
// segments numerically where both sides are numbers.
func lessID(a, b string) bool {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		an, aerr := strconv.ParseInt(as[i], 10, 64)
		bn, berr := strconv.ParseInt(bs[i], 10, 64)
		if aerr == nil && berr == nil {
			return an < bn
		}
		return as[i] < bs[i]
	}
	return len(as) < len(bs)
}
