package overpass

import (
	"context"
	"math"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmapi"

	locmap "github.com/jkunimune/auto-location-map"
)

// MaxMirrorSpan is the widest longitude slice the main OSM API map call
// accepts without complaint, in degrees.
const MaxMirrorSpan = 0.02

// MirrorFetch loads the bounding box from the main OSM API instead of an
// Overpass server. The API caps request sizes, so the box is cut into
// vertical slices at most maxSpan degrees wide (MaxMirrorSpan when zero)
// and the responses are merged. Everything in the box comes back
// regardless of tags; the classifier filters afterwards.
func MirrorFetch(ctx context.Context, bbox locmap.BoundingBox, maxSpan float64) ([]locmap.Feature, error) {
	merged := &osm.OSM{}
	for _, bounds := range mirrorSlices(bbox, maxSpan) {
		o, err := osmapi.Map(ctx, bounds)
		if err != nil {
			return nil, err
		}
		merged.Nodes = append(merged.Nodes, o.Nodes...)
		merged.Ways = append(merged.Ways, o.Ways...)
		merged.Relations = append(merged.Relations, o.Relations...)
	}
	return Features(merged)
}

func mirrorSlices(bbox locmap.BoundingBox, maxSpan float64) []*osm.Bounds {
	if maxSpan <= 0.0 {
		maxSpan = MaxMirrorSpan
	}
	var slices []*osm.Bounds
	for west := bbox.West; west < bbox.East; west += maxSpan {
		slices = append(slices, &osm.Bounds{
			MinLat: bbox.South, MaxLat: bbox.North,
			MinLon: west, MaxLon: math.Min(west+maxSpan, bbox.East),
		})
	}
	return slices
}
