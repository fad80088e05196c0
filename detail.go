package locmap

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
)

// Resolved is the concrete selection after every automatic option has been
// decided against the actual feature population.
type Resolved struct {
	StreetDetail     int
	AutoStreetDetail bool // StreetDetail was picked automatically
	Railroads        bool
	Tramways         bool
	Walkways         bool
	Parks            bool
	ParksAuto        bool // parks were enabled automatically, slivers get culled
	BorderDetail     int
}

// Resolve decides the automatic options for the features inside bbox.
// Street detail picks the lowest level whose cumulative projected street
// length reaches TargetStreetDensity times the canvas area; a population
// that never reaches the target yields the maximum detail. Railroads come
// on when there is rail but not so much that it would smother the map.
// Tramways ride along from street detail 3, walkways only at the maximum
// detail. The same options and features always resolve the same way.
func (o Options) Resolve(features []Feature, bbox BoundingBox, tun Tuning) (Resolved, error) {
	if err := bbox.Validate(); err != nil {
		return Resolved{}, err
	}
	proj, err := NewProjector(bbox, tun.CanvasArea)
	if err != nil {
		return Resolved{}, err
	}
	bound := bbox.Bound()
	res := Resolved{BorderDetail: o.BorderDetail}

	if o.StreetDetail == StreetDetailAuto {
		res.AutoStreetDetail = true
		res.StreetDetail = autoStreetDetail(features, bound, proj, tun)
	} else {
		res.StreetDetail = o.StreetDetail
	}

	switch o.Railroads {
	case Yes:
		res.Railroads = true
	case No:
	default:
		length := 0.0
		for i := range features {
			if isRailroad(features[i].Tags) {
				length += clippedLength(&features[i], bound, proj)
			}
		}
		res.Railroads = 0.0 < length && length <= tun.MaxRailDensity*tun.CanvasArea
	}

	switch o.Tramways {
	case Yes:
		res.Tramways = true
	case No:
	default:
		res.Tramways = 3 <= res.StreetDetail
	}

	switch o.Walkways {
	case Yes:
		res.Walkways = true
	case No:
	default:
		res.Walkways = res.StreetDetail == MaxStreetDetail
	}

	switch o.Parks {
	case Yes:
		res.Parks = true
	case No:
	default:
		res.Parks = true
		res.ParksAuto = true
	}

	return res, nil
}

// autoStreetDetail accumulates projected street length per tier and returns
// the lowest detail at which the cumulative length reaches the target.
// Raising the target can only raise the result.
func autoStreetDetail(features []Feature, bound orb.Bound, proj *Projector, tun Tuning) int {
	var lengths [MaxStreetDetail + 1]float64
	for i := range features {
		tier, ok := StreetTier(features[i].Tags)
		if !ok {
			continue
		}
		lengths[tier] += clippedLength(&features[i], bound, proj)
	}
	target := tun.TargetStreetDensity * tun.CanvasArea
	total := 0.0
	for detail, length := range lengths {
		total += length
		if target <= total {
			return detail
		}
	}
	return MaxStreetDetail
}

// clippedLength measures the canvas length in millimeters of the part of f
// inside bound. Malformed features measure zero.
func clippedLength(f *Feature, bound orb.Bound, proj *Projector) float64 {
	if f.Validate() != nil {
		return 0.0
	}
	g := clip.Geometry(bound, orb.Clone(f.Geometry))
	if g == nil {
		return 0.0
	}
	pg, err := proj.projectGeometry(g)
	if err != nil {
		return 0.0
	}
	return planar.Length(pg)
}
