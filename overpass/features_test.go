package overpass

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/tdewolff/test"
)

// testOSM holds two tagged streets, a bench node, and a two-part
// multipolygon park whose outline ways carry no tags of their own.
func testOSM() *osm.OSM {
	return &osm.OSM{
		Nodes: osm.Nodes{
			{ID: 1, Lat: 0.0, Lon: 10.0, Visible: true},
			{ID: 2, Lat: 0.01, Lon: 10.05, Visible: true},
			{ID: 3, Lat: 0.02, Lon: 10.0, Visible: true},
			{ID: 4, Lat: 0.03, Lon: 10.05, Visible: true},
			{ID: 5, Lat: 0.05, Lon: 10.02, Visible: true, Tags: osm.Tags{{Key: "amenity", Value: "bench"}}},
			{ID: 10, Lat: 0.0, Lon: 10.1, Visible: true},
			{ID: 11, Lat: 0.0, Lon: 10.11, Visible: true},
			{ID: 12, Lat: 0.01, Lon: 10.11, Visible: true},
			{ID: 13, Lat: 0.01, Lon: 10.1, Visible: true},
			{ID: 20, Lat: 0.0, Lon: 10.15, Visible: true},
			{ID: 21, Lat: 0.0, Lon: 10.16, Visible: true},
			{ID: 22, Lat: 0.01, Lon: 10.16, Visible: true},
			{ID: 23, Lat: 0.01, Lon: 10.15, Visible: true},
		},
		Ways: osm.Ways{
			{ID: 123, Visible: true,
				Nodes: osm.WayNodes{{ID: 1}, {ID: 2}},
				Tags:  osm.Tags{{Key: "highway", Value: "primary"}}},
			{ID: 99, Visible: true,
				Nodes: osm.WayNodes{{ID: 3}, {ID: 4}},
				Tags:  osm.Tags{{Key: "highway", Value: "residential"}}},
			{ID: 50, Visible: true,
				Nodes: osm.WayNodes{{ID: 10}, {ID: 11}, {ID: 12}, {ID: 13}, {ID: 10}}},
			{ID: 51, Visible: true,
				Nodes: osm.WayNodes{{ID: 20}, {ID: 21}, {ID: 22}, {ID: 23}, {ID: 20}}},
		},
		Relations: osm.Relations{
			{ID: 9, Visible: true,
				Tags: osm.Tags{{Key: "type", Value: "multipolygon"}, {Key: "leisure", Value: "park"}},
				Members: osm.Members{
					{Type: osm.TypeWay, Ref: 50, Role: "outer"},
					{Type: osm.TypeWay, Ref: 51, Role: "outer"},
				}},
		},
	}
}

func TestFeatures(t *testing.T) {
	features, err := Features(testOSM())
	test.Error(t, err)
	ids := make([]string, len(features))
	for i, f := range features {
		ids[i] = f.ID
	}
	test.T(t, ids, []string{"relation/9/0", "relation/9/1", "way/99", "way/123"})

	test.T(t, features[0].Tags["leisure"], "park")
	_, ok := features[0].Geometry.(orb.Polygon)
	test.That(t, ok, "multipolygon parts become polygons")

	line, ok := features[3].Geometry.(orb.LineString)
	test.That(t, ok, "ways become line strings")
	test.T(t, len(line), 2)
	test.T(t, features[3].Tags["highway"], "primary")
	test.Float(t, line[0][0], 10.0)
	test.Float(t, line[0][1], 0.0)
}

func TestFeaturesDeduplicates(t *testing.T) {
	o, again := testOSM(), testOSM()
	o.Nodes = append(o.Nodes, again.Nodes...)
	o.Ways = append(o.Ways, again.Ways...)
	o.Relations = append(o.Relations, again.Relations...)

	features, err := Features(o)
	test.Error(t, err)
	test.T(t, len(features), 4)
}

func TestFeaturesEmpty(t *testing.T) {
	features, err := Features(&osm.OSM{})
	test.Error(t, err)
	test.T(t, len(features), 0)
}

func TestSplitGeometry(t *testing.T) {
	parts := splitGeometry(orb.MultiLineString{{{0, 0}, {1, 0}}, {{2, 0}, {3, 0}}})
	test.T(t, len(parts), 2)
	test.T(t, parts[0], orb.LineString{{0, 0}, {1, 0}})

	test.T(t, len(splitGeometry(orb.Point{1, 2})), 0)
	test.T(t, len(splitGeometry(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})), 1)
}
