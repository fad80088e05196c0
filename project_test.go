package locmap

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
	"github.com/wroge/wgs84/v2"
)

func TestProjectorSize(t *testing.T) {
	proj, err := NewProjector(BoundingBox{-0.1, 0.1, 10.0, 10.2}, 10000.0)
	test.Error(t, err)
	w, h := proj.Size()
	test.Float(t, w, 100.0)
	test.Float(t, h, 100.0)
	test.T(t, proj.ScaleDenominator(), 222000)
}

func TestProjectorArea(t *testing.T) {
	var tts = []BoundingBox{
		{-0.1, 0.1, 10.0, 10.2},
		{40.69, 40.84, -74.03, -73.93},
		{-33.55, -33.35, -70.75, -70.55},
		{59.8, 60.1, 10.55, 10.95},
	}
	for _, bbox := range tts {
		t.Run(bbox.String(), func(t *testing.T) {
			proj, err := NewProjector(bbox, 10000.0)
			test.Error(t, err)
			w, h := proj.Size()
			test.Float(t, w*h, 10000.0)
		})
	}
}

func TestProjectorErrors(t *testing.T) {
	_, err := NewProjector(BoundingBox{40.84, 40.84, -74.03, -73.93}, 10000.0)
	test.That(t, errors.Is(err, ErrEmptyBoundingBox), "expected empty bounding box error, got", err)

	_, err = NewProjector(BoundingBox{40.69, 40.84, -74.03, -73.93}, 0.0)
	test.That(t, err != nil, "expected canvas area error")
}

func TestProjectCorners(t *testing.T) {
	bbox := BoundingBox{40.69, 40.84, -74.03, -73.93}
	proj, err := NewProjector(bbox, 10000.0)
	test.Error(t, err)
	w, h := proj.Size()

	nw := proj.Project(orb.Point{bbox.West, bbox.North})
	test.Float(t, nw[0], 0.0)
	test.Float(t, nw[1], 0.0)

	se := proj.Project(orb.Point{bbox.East, bbox.South})
	test.Float(t, se[0], w)
	test.Float(t, se[1], h)
}

func TestProjectRoundTrip(t *testing.T) {
	bbox := BoundingBox{40.69, 40.84, -74.03, -73.93}
	proj, err := NewProjector(bbox, 10000.0)
	test.Error(t, err)
	for _, pt := range []orb.Point{{-74.0, 40.7}, {-73.95, 40.8}, {-74.03, 40.69}} {
		back := proj.Unproject(proj.Project(pt))
		test.Float(t, back[0], pt[0])
		test.Float(t, back[1], pt[1])
	}
}

func TestProjectFeature(t *testing.T) {
	bbox := BoundingBox{-0.1, 0.1, 10.0, 10.2}
	proj, err := NewProjector(bbox, 10000.0)
	test.Error(t, err)
	f := &Feature{ID: "way/1", Geometry: orb.LineString{{10.0, 0.1}, {10.2, -0.1}}}
	p, err := proj.ProjectFeature(f)
	test.Error(t, err)

	// the input keeps its geographic coordinates
	test.T(t, f.Geometry.(orb.LineString)[0], orb.Point{10.0, 0.1})

	w, h := proj.Size()
	pts := p.Geometry.(orb.LineString)
	test.Float(t, pts[0][0], 0.0)
	test.Float(t, pts[0][1], 0.0)
	test.Float(t, pts[1][0], w)
	test.Float(t, pts[1][1], h)
}

func TestProjectFeatureOutside(t *testing.T) {
	bbox := BoundingBox{40.69, 40.84, -74.03, -73.93}
	proj, err := NewProjector(bbox, 10000.0)
	test.Error(t, err)
	f := &Feature{ID: "way/1", Geometry: orb.LineString{{-74.0, 40.7}, {-75.0, 40.7}}}
	_, perr := proj.ProjectFeature(f)
	var pe *ProjectionError
	test.That(t, errors.As(perr, &pe), "expected a projection error, got", perr)
	test.T(t, pe.Point, orb.Point{-75.0, 40.7})
}

// The aspect correction should agree with a proper UTM projection: around
// Santiago the ground ratio of a degree of latitude to a degree of
// longitude, measured in UTM 19S, must match the canvas within a percent.
func TestProjectorAspectUTM(t *testing.T) {
	bbox := BoundingBox{-33.55, -33.35, -70.75, -70.55}
	proj, err := NewProjector(bbox, 10000.0)
	test.Error(t, err)

	utm19S := wgs84.Transform(wgs84.EPSG(4326), wgs84.EPSG(32719))
	lat, lon := bbox.MidLatitude(), (bbox.West+bbox.East)/2.0
	x0, y0, _ := utm19S(lon, lat, 0.0)
	x1, y1, _ := utm19S(lon+0.01, lat, 0.0)
	x2, y2, _ := utm19S(lon, lat+0.01, 0.0)
	groundRatio := math.Hypot(x2-x0, y2-y0) / math.Hypot(x1-x0, y1-y0)

	o := proj.Project(orb.Point{lon, lat})
	e := proj.Project(orb.Point{lon + 0.01, lat})
	n := proj.Project(orb.Point{lon, lat + 0.01})
	canvasRatio := (o[1] - n[1]) / (e[0] - o[0])

	test.That(t, math.Abs(groundRatio-canvasRatio)/groundRatio < 0.01,
		"aspect ratio off from UTM:", canvasRatio, "want about", groundRatio)
}
